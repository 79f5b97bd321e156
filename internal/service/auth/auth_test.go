// internal/service/auth/auth_test.go
package auth

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	domain "gridiron-service/internal/domain/auth"
	"gridiron-service/internal/pkg/token"
)

// fakeClock lets tests move time forward deterministically.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type fakeUser struct {
	id          int64
	email       string
	displayName string
	hash        string
	failures    int
	lockedUntil time.Time
}

type fakeSession struct {
	userID    int64
	expiresAt time.Time
}

type fakeReset struct {
	userID    int64
	expiresAt time.Time
	used      bool
}

// fakeStore mimics the store-side credential rules: bcrypt verification,
// failure counting with a lockout window, sliding session expiry and
// atomic single-use reset redemption.
type fakeStore struct {
	mu       sync.Mutex
	clock    *fakeClock
	users    map[string]*fakeUser
	sessions map[string]*fakeSession
	resets   map[string]*fakeReset
	nextID   int64

	validateCalls int
}

const (
	maxFailures   = 5
	lockoutWindow = 15 * time.Minute
	msgBadLogin   = "email or password is incorrect"
	msgLocked     = "account is temporarily locked, try again later"
	msgBadToken   = "reset token is invalid or expired"
	msgPwdUpdated = "password updated"
	msgLoginOK    = "welcome back"
	msgRegistered = "account created"
)

func newFakeStore(clock *fakeClock) *fakeStore {
	return &fakeStore{
		clock:    clock,
		users:    make(map[string]*fakeUser),
		sessions: make(map[string]*fakeSession),
		resets:   make(map[string]*fakeReset),
	}
}

func (f *fakeStore) Login(_ context.Context, email, plain string, _ domain.AuditContext) (*domain.LoginOutcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[email]
	if !ok {
		return &domain.LoginOutcome{OK: false, Message: msgBadLogin}, nil
	}
	if f.clock.Now().Before(u.lockedUntil) {
		return &domain.LoginOutcome{OK: false, Message: msgLocked}, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(u.hash), []byte(plain)) != nil {
		u.failures++
		if u.failures >= maxFailures {
			u.lockedUntil = f.clock.Now().Add(lockoutWindow)
			return &domain.LoginOutcome{OK: false, Message: msgLocked}, nil
		}
		return &domain.LoginOutcome{OK: false, Message: msgBadLogin}, nil
	}
	u.failures = 0
	return &domain.LoginOutcome{OK: true, Message: msgLoginOK, UserID: u.id}, nil
}

func (f *fakeStore) Register(_ context.Context, email, displayName, hash string) (*domain.RegisterOutcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.users[email]; exists {
		return &domain.RegisterOutcome{OK: false, Message: "email is already registered"}, nil
	}
	f.nextID++
	f.users[email] = &fakeUser{id: f.nextID, email: email, displayName: displayName, hash: hash}
	return &domain.RegisterOutcome{OK: true, Message: msgRegistered, UserID: f.nextID}, nil
}

func (f *fakeStore) CreateSession(_ context.Context, userID int64, tok string, expiresAt time.Time, _ domain.AuditContext) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[tok] = &fakeSession{userID: userID, expiresAt: expiresAt}
	return nil
}

func (f *fakeStore) ValidateSession(_ context.Context, tok string, window time.Duration) (bool, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.validateCalls++

	s, ok := f.sessions[tok]
	if !ok || !f.clock.Now().Before(s.expiresAt) {
		return false, 0, nil
	}
	s.expiresAt = f.clock.Now().Add(window)
	return true, s.userID, nil
}

func (f *fakeStore) RevokeSession(_ context.Context, tok string, _ domain.AuditContext) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, tok)
	return nil
}

func (f *fakeStore) RevokeAllSessions(_ context.Context, userID int64, _ domain.AuditContext) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.revokeAllLocked(userID), nil
}

func (f *fakeStore) revokeAllLocked(userID int64) int64 {
	var n int64
	for tok, s := range f.sessions {
		if s.userID == userID {
			delete(f.sessions, tok)
			n++
		}
	}
	return n
}

func (f *fakeStore) GetUserSummary(_ context.Context, userID int64) (*domain.UserSummary, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.id == userID {
			return &domain.UserSummary{ID: u.id, Email: u.email, DisplayName: u.displayName, Role: "manager"}, true, nil
		}
	}
	return nil, false, nil
}

func (f *fakeStore) StageReset(_ context.Context, email, tok string, expiresAt time.Time) (*domain.ResetRecipient, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[email]
	if !ok {
		return nil, false, nil
	}
	f.resets[tok] = &fakeReset{userID: u.id, expiresAt: expiresAt}
	return &domain.ResetRecipient{UserID: u.id, Email: u.email, DisplayName: u.displayName}, true, nil
}

func (f *fakeStore) RedeemReset(_ context.Context, tok, newHash string, _ domain.AuditContext) (*domain.RedeemOutcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r, ok := f.resets[tok]
	if !ok || r.used || !f.clock.Now().Before(r.expiresAt) {
		return &domain.RedeemOutcome{OK: false, Message: msgBadToken}, nil
	}
	r.used = true
	for _, u := range f.users {
		if u.id == r.userID {
			u.hash = newHash
			u.failures = 0
			u.lockedUntil = time.Time{}
		}
	}
	f.revokeAllLocked(r.userID)
	return &domain.RedeemOutcome{OK: true, Message: msgPwdUpdated, UserID: r.userID}, nil
}

type fakeMailer struct {
	mu    sync.Mutex
	sends []struct{ to, subject, body string }
}

func (m *fakeMailer) SendAsync(to, subject, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sends = append(m.sends, struct{ to, subject, body string }{to, subject, body})
}

func (m *fakeMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sends)
}

type fakeNotifier struct {
	mu      sync.Mutex
	kicked  []int64
	reasons []string
}

func (n *fakeNotifier) ForceLogout(userID int64, reason string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.kicked = append(n.kicked, userID)
	n.reasons = append(n.reasons, reason)
}

const (
	testEmail    = "fran@example.com"
	testPassword = "Gridiron9"
	testAudit    = "tests"
)

func newTestService(t *testing.T) (*Service, *fakeStore, *fakeMailer, *fakeNotifier, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	store := newFakeStore(clock)
	mailer := &fakeMailer{}
	notifier := &fakeNotifier{}
	svc := NewService(store, mailer, notifier, zap.NewNop(),
		30*time.Minute, 15*time.Minute, "https://gridiron.example.com")
	svc.now = clock.Now
	return svc, store, mailer, notifier, clock
}

func audit() domain.AuditContext {
	return domain.AuditContext{IPAddress: "203.0.113.9", UserAgent: testAudit}
}

func register(t *testing.T, svc *Service) int64 {
	t.Helper()
	out, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:       testEmail,
		DisplayName: "Fran",
		Password:    testPassword,
	})
	if err != nil || !out.OK {
		t.Fatalf("register failed: %+v, %v", out, err)
	}
	return out.UserID
}

func login(t *testing.T, svc *Service) *domain.LoginResult {
	t.Helper()
	result, err := svc.Login(context.Background(),
		domain.LoginRequest{Email: testEmail, Password: testPassword}, audit())
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	return result
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc, store, _, _, _ := newTestService(t)

	out, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email: testEmail, DisplayName: "Fran", Password: "weak",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if out.OK {
		t.Error("weak password accepted")
	}
	if len(store.users) != 0 {
		t.Error("store was touched before the complexity check passed")
	}
}

func TestLoginMintsSlidingSession(t *testing.T) {
	svc, _, _, _, clock := newTestService(t)
	userID := register(t, svc)

	result := login(t, svc)
	if !result.OK {
		t.Fatalf("login rejected: %s", result.Message)
	}
	if result.Ticket == nil || !token.Valid(result.Ticket.Token) {
		t.Fatal("login did not mint a well-formed token")
	}
	if want := clock.Now().Add(30 * time.Minute); !result.Ticket.ExpiresAt.Equal(want) {
		t.Errorf("expiry = %v, want %v", result.Ticket.ExpiresAt, want)
	}
	if result.User == nil || result.User.ID != userID {
		t.Errorf("login result user = %+v", result.User)
	}

	gotID, valid, err := svc.ValidateSession(context.Background(), result.Ticket.Token)
	if err != nil || !valid || gotID != userID {
		t.Errorf("ValidateSession = %d, %v, %v", gotID, valid, err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)
	register(t, svc)

	result, err := svc.Login(context.Background(),
		domain.LoginRequest{Email: testEmail, Password: "Wrong1234"}, audit())
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.OK || result.Message != msgBadLogin {
		t.Errorf("result = %+v, want the store's wording", result)
	}
	if result.Ticket != nil {
		t.Error("failed login produced a ticket")
	}
}

func TestLoginLockoutHoldsEvenWithCorrectPassword(t *testing.T) {
	svc, _, _, _, clock := newTestService(t)
	register(t, svc)

	for i := 0; i < maxFailures; i++ {
		result, err := svc.Login(context.Background(),
			domain.LoginRequest{Email: testEmail, Password: "Wrong1234"}, audit())
		if err != nil || result.OK {
			t.Fatalf("attempt %d: %+v, %v", i, result, err)
		}
	}

	// Correct password during the lockout window still fails, with the
	// lockout wording rather than the bad-credentials one.
	result := login(t, svc)
	if result.OK || result.Message != msgLocked {
		t.Errorf("login during lockout = %+v", result)
	}

	clock.Advance(lockoutWindow + time.Minute)
	if result := login(t, svc); !result.OK {
		t.Errorf("login after lockout expiry = %+v", result)
	}
}

func TestValidateExtendsExpiry(t *testing.T) {
	svc, _, _, _, clock := newTestService(t)
	register(t, svc)
	result := login(t, svc)

	clock.Advance(20 * time.Minute)
	if _, valid, _ := svc.ValidateSession(context.Background(), result.Ticket.Token); !valid {
		t.Fatal("session should still be live at 20 minutes")
	}

	// The validation above slid the window; 20 more minutes is fine now.
	clock.Advance(20 * time.Minute)
	if _, valid, _ := svc.ValidateSession(context.Background(), result.Ticket.Token); !valid {
		t.Fatal("sliding expiry was not extended by validation")
	}

	clock.Advance(31 * time.Minute)
	if _, valid, _ := svc.ValidateSession(context.Background(), result.Ticket.Token); valid {
		t.Fatal("session survived past its extended window")
	}
}

func TestValidateRejectsMalformedTokenWithoutStoreTrip(t *testing.T) {
	svc, store, _, _, _ := newTestService(t)

	for _, tok := range []string{"", "junk", strings.Repeat("g", 32)} {
		if _, valid, err := svc.ValidateSession(context.Background(), tok); valid || err != nil {
			t.Errorf("ValidateSession(%q) = %v, %v", tok, valid, err)
		}
	}
	if store.validateCalls != 0 {
		t.Errorf("malformed tokens reached the store %d times", store.validateCalls)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)
	register(t, svc)
	result := login(t, svc)

	ctx := context.Background()
	if err := svc.Logout(ctx, result.Ticket.Token, audit()); err != nil {
		t.Fatalf("first logout: %v", err)
	}
	if _, valid, _ := svc.ValidateSession(ctx, result.Ticket.Token); valid {
		t.Error("session survived logout")
	}
	if err := svc.Logout(ctx, result.Ticket.Token, audit()); err != nil {
		t.Errorf("second logout: %v", err)
	}
	if err := svc.Logout(ctx, "not-a-token", audit()); err != nil {
		t.Errorf("logout of malformed token: %v", err)
	}
}

func TestLogoutAllRevokesOnlyThatUser(t *testing.T) {
	svc, _, _, notifier, _ := newTestService(t)
	userID := register(t, svc)

	first := login(t, svc)
	second := login(t, svc)

	// A second account with its own session.
	otherOut, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email: "gus@example.com", DisplayName: "Gus", Password: "Separate1",
	})
	if err != nil || !otherOut.OK {
		t.Fatalf("second register: %+v, %v", otherOut, err)
	}
	otherLogin, err := svc.Login(context.Background(),
		domain.LoginRequest{Email: "gus@example.com", Password: "Separate1"}, audit())
	if err != nil || !otherLogin.OK {
		t.Fatalf("second login: %+v, %v", otherLogin, err)
	}

	n, err := svc.LogoutAll(context.Background(), userID, audit())
	if err != nil {
		t.Fatalf("logout-all: %v", err)
	}
	if n != 2 {
		t.Errorf("revoked %d sessions, want 2", n)
	}

	ctx := context.Background()
	if _, valid, _ := svc.ValidateSession(ctx, first.Ticket.Token); valid {
		t.Error("first session survived logout-all")
	}
	if _, valid, _ := svc.ValidateSession(ctx, second.Ticket.Token); valid {
		t.Error("second session survived logout-all")
	}
	if _, valid, _ := svc.ValidateSession(ctx, otherLogin.Ticket.Token); !valid {
		t.Error("another user's session was revoked")
	}

	if len(notifier.kicked) != 1 || notifier.kicked[0] != userID {
		t.Errorf("notifier.kicked = %v", notifier.kicked)
	}
}

func TestForgotPasswordIsUniform(t *testing.T) {
	svc, store, mailer, _, _ := newTestService(t)
	register(t, svc)

	known := svc.RequestPasswordReset(context.Background(), testEmail)
	unknown := svc.RequestPasswordReset(context.Background(), "nobody@example.com")

	if known != unknown {
		t.Errorf("responses differ: %q vs %q", known, unknown)
	}
	if mailer.count() != 1 {
		t.Errorf("sent %d emails, want 1 (only for the real account)", mailer.count())
	}
	if len(store.resets) != 1 {
		t.Errorf("staged %d resets, want 1", len(store.resets))
	}
}

func stagedToken(t *testing.T, store *fakeStore) string {
	t.Helper()
	store.mu.Lock()
	defer store.mu.Unlock()
	if len(store.resets) != 1 {
		t.Fatalf("staged resets = %d, want 1", len(store.resets))
	}
	for tok := range store.resets {
		return tok
	}
	return ""
}

func TestResetFlowEndToEnd(t *testing.T) {
	svc, store, mailer, notifier, _ := newTestService(t)
	userID := register(t, svc)
	session := login(t, svc)

	svc.RequestPasswordReset(context.Background(), testEmail)
	tok := stagedToken(t, store)
	if mailer.count() != 1 || !strings.Contains(mailer.sends[0].body, tok) {
		t.Fatal("reset email does not carry the staged token")
	}

	const newPassword = "Fresh2Start"
	result, err := svc.ResetPasswordWithToken(context.Background(),
		domain.ResetPasswordRequest{Token: tok, NewPassword: newPassword}, audit())
	if err != nil || !result.OK {
		t.Fatalf("redeem: %+v, %v", result, err)
	}

	// Sessions are gone and live connections were kicked.
	if _, valid, _ := svc.ValidateSession(context.Background(), session.Ticket.Token); valid {
		t.Error("old session survived the reset")
	}
	if len(notifier.kicked) == 0 || notifier.kicked[len(notifier.kicked)-1] != userID {
		t.Errorf("notifier.kicked = %v", notifier.kicked)
	}

	// Old password out, new password in.
	oldLogin, _ := svc.Login(context.Background(),
		domain.LoginRequest{Email: testEmail, Password: testPassword}, audit())
	if oldLogin.OK {
		t.Error("old password still accepted")
	}
	newLogin, _ := svc.Login(context.Background(),
		domain.LoginRequest{Email: testEmail, Password: newPassword}, audit())
	if !newLogin.OK {
		t.Errorf("new password rejected: %s", newLogin.Message)
	}
}

func TestResetTokenIsSingleUse(t *testing.T) {
	svc, store, _, _, _ := newTestService(t)
	register(t, svc)
	svc.RequestPasswordReset(context.Background(), testEmail)
	tok := stagedToken(t, store)

	req := domain.ResetPasswordRequest{Token: tok, NewPassword: "Fresh2Start"}
	first, err := svc.ResetPasswordWithToken(context.Background(), req, audit())
	if err != nil || !first.OK {
		t.Fatalf("first redeem: %+v, %v", first, err)
	}
	second, err := svc.ResetPasswordWithToken(context.Background(), req, audit())
	if err != nil {
		t.Fatalf("second redeem: %v", err)
	}
	if second.OK || second.Message != msgBadToken {
		t.Errorf("replayed token = %+v, want the invalid/expired wording", second)
	}
}

func TestResetTokenExpires(t *testing.T) {
	svc, store, _, _, clock := newTestService(t)
	register(t, svc)
	svc.RequestPasswordReset(context.Background(), testEmail)
	tok := stagedToken(t, store)

	clock.Advance(16 * time.Minute)
	result, err := svc.ResetPasswordWithToken(context.Background(),
		domain.ResetPasswordRequest{Token: tok, NewPassword: "Fresh2Start"}, audit())
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if result.OK {
		t.Error("expired token was accepted")
	}
}

func TestResetRejectsWeakPasswordBeforeStore(t *testing.T) {
	svc, store, _, _, _ := newTestService(t)
	register(t, svc)
	svc.RequestPasswordReset(context.Background(), testEmail)
	tok := stagedToken(t, store)

	result, err := svc.ResetPasswordWithToken(context.Background(),
		domain.ResetPasswordRequest{Token: tok, NewPassword: "weak"}, audit())
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if result.OK {
		t.Error("weak password accepted")
	}
	store.mu.Lock()
	used := store.resets[tok].used
	store.mu.Unlock()
	if used {
		t.Error("token consumed before the complexity check passed")
	}
}
