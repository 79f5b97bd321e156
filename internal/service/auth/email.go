// internal/service/auth/email.go
package auth

import (
	"fmt"
	"strings"
	"time"
)

// resetEmail builds the subject and HTML body for a password reset message.
// The link carries the raw token; the token never appears in logs.
func resetEmail(displayName, baseURL, resetToken string, ttl time.Duration) (subject, body string) {
	name := strings.TrimSpace(displayName)
	if name == "" {
		name = "there"
	}
	link := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(baseURL, "/"), resetToken)

	subject = "Reset your Gridiron password"
	body = fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>We received a request to reset your Gridiron password. Click the
		button below to choose a new one. The link works once and expires in
		%d minutes.</p>
		<p style="margin:24px 0;">
			<a href="%s" style="background:#14532d;color:#ffffff;padding:12px 24px;
			text-decoration:none;border-radius:6px;">Reset password</a>
		</p>
		<p>If you didn't ask for this, you can ignore this email; your
		password stays unchanged.</p>`, name, int(ttl.Minutes()), link)
	return subject, body
}
