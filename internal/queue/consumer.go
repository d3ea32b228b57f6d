package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/cinema-box-office/internal/events"
	"github.com/iliyamo/cinema-box-office/internal/model"
)

// StartSalesConsumer connects to RabbitMQ, declares the box-office
// events queue (durable) and starts consuming.  Purchase-completed
// events are appended to logs/sales.log in a single-line format; every
// other event is acknowledged and ignored.  The function runs a
// reconnect loop and keeps the server operating through broker
// restarts, rejecting messages it cannot process.
func StartSalesConsumer(url string) {
	if url == "" {
		url = DefaultURL
	}
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("sales-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := consumeLoop(conn); err != nil {
			log.Printf("sales-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(eventsQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(eventsQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleMessage(d.Body); err != nil {
			log.Printf("sales-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func handleMessage(body []byte) error {
	var env struct {
		Event     string          `json:"event"`
		Payload   json.RawMessage `json:"payload"`
		EmittedAt time.Time       `json:"emitted_at"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Event != events.PurchaseCompleted {
		return nil
	}
	var receipt model.Receipt
	if err := json.Unmarshal(env.Payload, &receipt); err != nil {
		return fmt.Errorf("unmarshal receipt: %w", err)
	}
	return appendSalesLine(receipt)
}

func appendSalesLine(r model.Receipt) error {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(filepath.Join("logs", "sales.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	codes := "[]"
	if len(r.TicketCodes) > 0 {
		codes = fmt.Sprintf("[%s]", strings.Join(r.TicketCodes, ","))
	}
	line := fmt.Sprintf("[%s] Purchase completed | customer=%q | tickets=%d | total=%.2f | paid=%.2f | change=%.2f | codes=%s\n",
		r.Timestamp.Format(time.RFC3339), r.CustomerName, len(r.Tickets), r.Total, r.AmountPaid, r.Change, codes)

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
