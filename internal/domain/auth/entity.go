// internal/domain/auth/entity.go
package auth

import "time"

// UserSummary is the minimal profile returned with a login response.
type UserSummary struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// AuditContext carries the transport-level facts forwarded to the store for
// audit-trail persistence. The service keeps no audit state of its own.
type AuditContext struct {
	IPAddress string
	UserAgent string
}

// LoginOutcome is the typed decoding of the user_login output parameters.
// Message is store-authored and returned to callers verbatim.
type LoginOutcome struct {
	OK      bool
	Message string
	UserID  int64
}

// RedeemOutcome is the typed decoding of the password_reset_redeem output
// parameters. On success the store has already consumed the token, reset the
// failure counter, unlocked the account and revoked every session.
type RedeemOutcome struct {
	OK      bool
	Message string
	UserID  int64
}

// RegisterOutcome is the typed decoding of the user_register output
// parameters.
type RegisterOutcome struct {
	OK      bool
	Message string
	UserID  int64
}

// ResetRecipient identifies the account a reset email goes to. Only present
// when the requested address exists.
type ResetRecipient struct {
	UserID      int64
	Email       string
	DisplayName string
}

// SessionTicket is what a successful login hands back to the transport
// layer: an opaque bearer token and its current expiry.
type SessionTicket struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
