// internal/repository/postgres/auth_repo.go
package postgres

import (
	"context"
	"time"

	"gridiron-service/internal/domain/auth"
)

// AuthRepository holds the stored-procedure contracts for the account and
// session lifecycle. Every serialization-sensitive decision (failure
// counters, lockout timestamps, sliding-expiry extension, single-use token
// redemption) happens inside the procedure's own transaction; this layer
// never caches or coordinates.
type AuthRepository struct {
	ex *Executor
}

func NewAuthRepository(ex *Executor) *AuthRepository {
	return &AuthRepository{ex: ex}
}

// Login calls user_login(email, password, ip, user_agent)
// OUT: ok boolean, message text, user_id bigint.
// The procedure verifies the password with crypt() against the stored bcrypt
// hash, counts failures, enforces the lockout window and records the audit
// row. Message is store-authored wording for every failure branch.
func (r *AuthRepository) Login(ctx context.Context, email, plainPassword string, audit auth.AuditContext) (*auth.LoginOutcome, error) {
	ok, msg, out := r.ex.CallWithOutputParams(ctx, "user_login", email, plainPassword, audit.IPAddress, audit.UserAgent)
	if !ok {
		return &auth.LoginOutcome{OK: false, Message: msg}, nil
	}
	return &auth.LoginOutcome{
		OK:      outBool(out, "ok"),
		Message: outString(out, "message"),
		UserID:  outInt64(out, "user_id"),
	}, nil
}

// Register calls user_register(email, display_name, password_hash)
// OUT: ok boolean, message text, user_id bigint.
// The hash is bcrypt, computed by the caller; the store only verifies it at
// login time with crypt().
func (r *AuthRepository) Register(ctx context.Context, email, displayName, passwordHash string) (*auth.RegisterOutcome, error) {
	ok, msg, out := r.ex.CallWithOutputParams(ctx, "user_register", email, displayName, passwordHash)
	if !ok {
		return &auth.RegisterOutcome{OK: false, Message: msg}, nil
	}
	return &auth.RegisterOutcome{
		OK:      outBool(out, "ok"),
		Message: outString(out, "message"),
		UserID:  outInt64(out, "user_id"),
	}, nil
}

// CreateSession calls session_create(user_id, token, expires_at, ip, user_agent).
func (r *AuthRepository) CreateSession(ctx context.Context, userID int64, sessionToken string, expiresAt time.Time, audit auth.AuditContext) error {
	_, err := r.ex.CallNonQuery(ctx, "session_create", userID, sessionToken, expiresAt, audit.IPAddress, audit.UserAgent)
	return err
}

// ValidateSession calls session_validate(token, window_minutes)
// OUT: is_valid boolean, user_id bigint.
// The procedure checks expiry and, when valid, extends it to
// now + window in the same statement, so concurrent validations race only
// inside the store.
func (r *AuthRepository) ValidateSession(ctx context.Context, sessionToken string, window time.Duration) (bool, int64, error) {
	ok, msg, out := r.ex.CallWithOutputParams(ctx, "session_validate", sessionToken, int(window.Minutes()))
	if !ok {
		return false, 0, validationError("session_validate", msg)
	}
	if !outBool(out, "is_valid") {
		return false, 0, nil
	}
	return true, outInt64(out, "user_id"), nil
}

// RevokeSession calls session_revoke(token, ip, user_agent). Revoking an
// already-invalid session is not an error on the store side either.
func (r *AuthRepository) RevokeSession(ctx context.Context, sessionToken string, audit auth.AuditContext) error {
	_, err := r.ex.CallNonQuery(ctx, "session_revoke", sessionToken, audit.IPAddress, audit.UserAgent)
	return err
}

// RevokeAllSessions calls session_revoke_all(user_id, ip, user_agent)
// RETURNS integer — the number of sessions revoked.
func (r *AuthRepository) RevokeAllSessions(ctx context.Context, userID int64, audit auth.AuditContext) (int64, error) {
	return r.ex.CallForCount(ctx, "session_revoke_all", userID, audit.IPAddress, audit.UserAgent)
}

// GetUserSummary calls user_summary(user_id), a 0-or-1 row function with
// columns id, email, display_name, role.
func (r *AuthRepository) GetUserSummary(ctx context.Context, userID int64) (*auth.UserSummary, bool, error) {
	return CallForOptionalRow(ctx, r.ex, "user_summary", []any{userID}, func(rec *Record) (*auth.UserSummary, error) {
		id, err := rec.Int64("id")
		if err != nil {
			return nil, err
		}
		return &auth.UserSummary{
			ID:          id,
			Email:       rec.String("email"),
			DisplayName: rec.String("display_name"),
			Role:        rec.String("role"),
		}, nil
	})
}

// StageReset calls password_reset_stage(email, token, expires_at), a 0-or-1
// row function with columns user_id, email, display_name. No row means the
// address has no account and nothing was stored; the caller must behave
// identically either way.
func (r *AuthRepository) StageReset(ctx context.Context, email, resetToken string, expiresAt time.Time) (*auth.ResetRecipient, bool, error) {
	return CallForOptionalRow(ctx, r.ex, "password_reset_stage", []any{email, resetToken, expiresAt}, func(rec *Record) (*auth.ResetRecipient, error) {
		userID, err := rec.Int64("user_id")
		if err != nil {
			return nil, err
		}
		return &auth.ResetRecipient{
			UserID:      userID,
			Email:       rec.String("email"),
			DisplayName: rec.String("display_name"),
		}, nil
	})
}

// RedeemReset calls password_reset_redeem(token, new_hash, ip, user_agent)
// OUT: ok boolean, message text, user_id bigint.
// The procedure atomically consumes the token, stores the new hash, resets
// the failure counter, clears the lockout and revokes every session for the
// user. A second redemption with the same token fails with the store's
// invalid/expired wording.
func (r *AuthRepository) RedeemReset(ctx context.Context, resetToken, newHash string, audit auth.AuditContext) (*auth.RedeemOutcome, error) {
	ok, msg, out := r.ex.CallWithOutputParams(ctx, "password_reset_redeem", resetToken, newHash, audit.IPAddress, audit.UserAgent)
	if !ok {
		return &auth.RedeemOutcome{OK: false, Message: msg}, nil
	}
	return &auth.RedeemOutcome{
		OK:      outBool(out, "ok"),
		Message: outString(out, "message"),
		UserID:  outInt64(out, "user_id"),
	}, nil
}
