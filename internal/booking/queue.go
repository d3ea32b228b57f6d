package booking

import "github.com/iliyamo/cinema-box-office/internal/model"

// CustomerQueue is the FIFO line of customers awaiting service.  The
// head of a non-empty queue is the customer currently being served.
// Like the inventory, it relies on the engine's lock for concurrency.
type CustomerQueue struct {
	items []*model.Customer
}

// NewCustomerQueue returns an empty queue.
func NewCustomerQueue() *CustomerQueue {
	return &CustomerQueue{}
}

// Enqueue appends a customer to the tail.
func (q *CustomerQueue) Enqueue(c *model.Customer) {
	q.items = append(q.items, c)
}

// Dequeue removes and returns the head, or nil when the queue is empty.
func (q *CustomerQueue) Dequeue() *model.Customer {
	if len(q.items) == 0 {
		return nil
	}
	head := q.items[0]
	q.items[0] = nil // let the dequeued entry be collected
	q.items = q.items[1:]
	return head
}

// PeekFront returns the head without removing it, or nil when empty.
func (q *CustomerQueue) PeekFront() *model.Customer {
	if len(q.items) == 0 {
		return nil
	}
	return q.items[0]
}

// RotateFront moves the head to the tail.  Returns false on an empty
// queue; a single-member queue rotates onto itself.
func (q *CustomerQueue) RotateFront() bool {
	head := q.Dequeue()
	if head == nil {
		return false
	}
	q.Enqueue(head)
	return true
}

// Size returns the number of queued customers.
func (q *CustomerQueue) Size() int {
	return len(q.items)
}

// IsEmpty reports whether the queue has no customers.
func (q *CustomerQueue) IsEmpty() bool {
	return len(q.items) == 0
}

// ToOrderedSequence returns a head-first copy of the queue ordering.
// Mutating the returned slice does not affect the queue.
func (q *CustomerQueue) ToOrderedSequence() []*model.Customer {
	return append([]*model.Customer(nil), q.items...)
}
