// internal/domain/auth/dto.go
package auth

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"display_name" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

// LoginRequest authenticates with email/password.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResult is the service-level outcome of a login attempt. When OK is
// false, Message is the store's wording (wrong credentials, lockout, ...).
type LoginResult struct {
	OK      bool           `json:"ok"`
	Message string         `json:"message,omitempty"`
	Ticket  *SessionTicket `json:"ticket,omitempty"`
	User    *UserSummary   `json:"user,omitempty"`
}

// ForgotPasswordRequest starts the reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest redeems a reset token.
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ResetResult is the outcome of a token redemption.
type ResetResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}
