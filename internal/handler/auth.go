package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-box-office/internal/utils"
)

// AuthHandler issues access tokens for box-office staff.  There is a
// single shared staff credential: the bcrypt hash comes from
// configuration and the handler never stores anything.
type AuthHandler struct {
	JWTSecret         string // secret used to sign access tokens
	StaffPasswordHash string // bcrypt hash the submitted password is checked against
	AccessTTLMin      int    // token lifetime in minutes
}

// NewAuthHandler constructs an AuthHandler from the resolved staff
// credential and signing settings.
func NewAuthHandler(jwtSecret, staffPasswordHash string, accessTTLMin int) *AuthHandler {
	return &AuthHandler{
		JWTSecret:         jwtSecret,
		StaffPasswordHash: staffPasswordHash,
		AccessTTLMin:      accessTTLMin,
	}
}

// Login handles POST /v1/auth/login.  The body must contain a JSON
// object with a "password" field.  A correct password yields a signed
// access token; anything else yields 401 without detail.
func (h *AuthHandler) Login(c echo.Context) error {
	var body struct {
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Password == "" || !utils.VerifyPassword(h.StaffPasswordHash, body.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	tok, err := utils.NewAccessToken(h.JWTSecret, "staff", "STAFF", h.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue token"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": tok.Token,
		"expires_at":   tok.Exp.Format(time.RFC3339),
	})
}
