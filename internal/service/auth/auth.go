// internal/service/auth/auth.go
package auth

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	domain "gridiron-service/internal/domain/auth"
	"gridiron-service/internal/pkg/password"
	"gridiron-service/internal/pkg/token"
)

const (
	// DefaultSessionWindow is the sliding-expiry window applied on login and
	// on every successful validation.
	DefaultSessionWindow = 30 * time.Minute

	// DefaultResetTTL bounds how long a staged reset token stays redeemable.
	DefaultResetTTL = 15 * time.Minute

	genericFailure = "the operation could not be completed"

	// resetAccepted is the uniform reply for the forgot-password flow,
	// identical whether or not the address has an account.
	resetAccepted = "if the address has an account, a reset email is on its way"
)

// Store is the persistence contract the session lifecycle runs against.
// Every credential decision (password verification, failure counting,
// lockout, token redemption) belongs to the store; this service only
// sequences calls, mints tokens and hashes passwords.
type Store interface {
	Login(ctx context.Context, email, plainPassword string, audit domain.AuditContext) (*domain.LoginOutcome, error)
	Register(ctx context.Context, email, displayName, passwordHash string) (*domain.RegisterOutcome, error)
	CreateSession(ctx context.Context, userID int64, sessionToken string, expiresAt time.Time, audit domain.AuditContext) error
	ValidateSession(ctx context.Context, sessionToken string, window time.Duration) (bool, int64, error)
	RevokeSession(ctx context.Context, sessionToken string, audit domain.AuditContext) error
	RevokeAllSessions(ctx context.Context, userID int64, audit domain.AuditContext) (int64, error)
	GetUserSummary(ctx context.Context, userID int64) (*domain.UserSummary, bool, error)
	StageReset(ctx context.Context, email, resetToken string, expiresAt time.Time) (*domain.ResetRecipient, bool, error)
	RedeemReset(ctx context.Context, resetToken, newHash string, audit domain.AuditContext) (*domain.RedeemOutcome, error)
}

// Mailer delivers the reset email off the request path.
type Mailer interface {
	SendAsync(to, subject, bodyHTML string)
}

// Notifier pushes session events at connected clients. Logout-all and a
// successful reset both force open connections closed.
type Notifier interface {
	ForceLogout(userID int64, reason string)
}

type Service struct {
	store    Store
	mailer   Mailer
	notifier Notifier
	logger   *zap.Logger

	sessionWindow time.Duration
	resetTTL      time.Duration
	baseURL       string

	now func() time.Time
}

func NewService(store Store, mailer Mailer, notifier Notifier, logger *zap.Logger, sessionWindow, resetTTL time.Duration, baseURL string) *Service {
	if sessionWindow <= 0 {
		sessionWindow = DefaultSessionWindow
	}
	if resetTTL <= 0 {
		resetTTL = DefaultResetTTL
	}
	return &Service{
		store:         store,
		mailer:        mailer,
		notifier:      notifier,
		logger:        logger,
		sessionWindow: sessionWindow,
		resetTTL:      resetTTL,
		baseURL:       baseURL,
		now:           time.Now,
	}
}

// Register validates the password locally, hashes it and hands the hash to
// the store. The plaintext never leaves this function.
func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterOutcome, error) {
	if err := password.Validate(req.Password); err != nil {
		return &domain.RegisterOutcome{OK: false, Message: err.Error()}, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	out, err := s.store.Register(ctx, req.Email, req.DisplayName, string(hash))
	if err != nil {
		s.logger.Error("register failed", zap.String("email", req.Email), zap.Error(err))
		return &domain.RegisterOutcome{OK: false, Message: genericFailure}, nil
	}
	return out, nil
}

// Login delegates the credential decision to the store, then mints an opaque
// session token with a sliding expiry. The store's failure wording (bad
// credentials, lockout) is returned to the caller verbatim.
func (s *Service) Login(ctx context.Context, req domain.LoginRequest, audit domain.AuditContext) (*domain.LoginResult, error) {
	out, err := s.store.Login(ctx, req.Email, req.Password, audit)
	if err != nil {
		s.logger.Error("login failed", zap.String("email", req.Email), zap.Error(err))
		return &domain.LoginResult{OK: false, Message: genericFailure}, nil
	}
	if !out.OK {
		return &domain.LoginResult{OK: false, Message: out.Message}, nil
	}

	ticket := &domain.SessionTicket{
		Token:     token.New(),
		ExpiresAt: s.now().Add(s.sessionWindow),
	}
	if err := s.store.CreateSession(ctx, out.UserID, ticket.Token, ticket.ExpiresAt, audit); err != nil {
		s.logger.Error("session create failed", zap.Int64("user_id", out.UserID), zap.Error(err))
		return &domain.LoginResult{OK: false, Message: genericFailure}, nil
	}

	user, found, err := s.store.GetUserSummary(ctx, out.UserID)
	if err != nil || !found {
		// The session exists even if the profile read failed; return the
		// ticket without the summary rather than failing the login.
		s.logger.Warn("user summary unavailable after login", zap.Int64("user_id", out.UserID), zap.Error(err))
		user = nil
	}

	return &domain.LoginResult{OK: true, Message: out.Message, Ticket: ticket, User: user}, nil
}

// ValidateSession checks the token against the store and, when valid,
// extends its expiry by the sliding window. Every authenticated call makes
// this round trip; nothing is cached here.
func (s *Service) ValidateSession(ctx context.Context, sessionToken string) (int64, bool, error) {
	if !token.Valid(sessionToken) {
		return 0, false, nil
	}
	valid, userID, err := s.store.ValidateSession(ctx, sessionToken, s.sessionWindow)
	if err != nil {
		return 0, false, err
	}
	return userID, valid, nil
}

// Logout revokes one session. Revoking a token that is already invalid,
// expired or unknown succeeds the same way.
func (s *Service) Logout(ctx context.Context, sessionToken string, audit domain.AuditContext) error {
	if !token.Valid(sessionToken) {
		return nil
	}
	return s.store.RevokeSession(ctx, sessionToken, audit)
}

// LogoutAll revokes every session the user has and kicks their live feed
// connections. Returns how many sessions the store revoked.
func (s *Service) LogoutAll(ctx context.Context, userID int64, audit domain.AuditContext) (int64, error) {
	n, err := s.store.RevokeAllSessions(ctx, userID, audit)
	if err != nil {
		return 0, err
	}
	if s.notifier != nil {
		s.notifier.ForceLogout(userID, "signed out everywhere")
	}
	return n, nil
}

// CurrentUser returns the profile summary for an authenticated user.
func (s *Service) CurrentUser(ctx context.Context, userID int64) (*domain.UserSummary, bool, error) {
	return s.store.GetUserSummary(ctx, userID)
}

// RequestPasswordReset stages a single-use token and emails it when the
// address has an account. The reply is identical either way, and failures
// are logged rather than surfaced, so the flow reveals nothing about which
// addresses exist.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) string {
	resetToken := token.New()
	expiresAt := s.now().Add(s.resetTTL)

	recipient, found, err := s.store.StageReset(ctx, email, resetToken, expiresAt)
	if err != nil {
		s.logger.Error("reset staging failed", zap.Error(err))
		return resetAccepted
	}
	if !found {
		return resetAccepted
	}

	if s.mailer != nil {
		subject, body := resetEmail(recipient.DisplayName, s.baseURL, resetToken, s.resetTTL)
		s.mailer.SendAsync(recipient.Email, subject, body)
	}
	return resetAccepted
}

// ResetPasswordWithToken redeems a staged token. Complexity is checked here
// before the store is touched; the store consumes the token atomically, so a
// replay fails with its invalid/expired wording. On success the user's
// sessions are already revoked store-side and live connections are kicked.
func (s *Service) ResetPasswordWithToken(ctx context.Context, req domain.ResetPasswordRequest, audit domain.AuditContext) (*domain.ResetResult, error) {
	if err := password.Validate(req.NewPassword); err != nil {
		return &domain.ResetResult{OK: false, Message: err.Error()}, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	out, err := s.store.RedeemReset(ctx, req.Token, string(hash), audit)
	if err != nil {
		s.logger.Error("reset redemption failed", zap.Error(err))
		return &domain.ResetResult{OK: false, Message: genericFailure}, nil
	}
	if out.OK && s.notifier != nil {
		s.notifier.ForceLogout(out.UserID, "password was reset")
	}
	return &domain.ResetResult{OK: out.OK, Message: out.Message}, nil
}
