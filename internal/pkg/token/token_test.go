// internal/pkg/token/token_test.go
package token

import "testing"

func TestNewShape(t *testing.T) {
	tok := New()
	if !Valid(tok) {
		t.Fatalf("New() produced an invalid token: %q", tok)
	}
	if len(tok) != 32 {
		t.Fatalf("token length = %d, want 32", len(tok))
	}
}

func TestNewUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		tok := New()
		if seen[tok] {
			t.Fatalf("duplicate token after %d mints", i)
		}
		seen[tok] = true
	}
}

func TestValidRejects(t *testing.T) {
	cases := []string{
		"",
		"short",
		"zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz",                 // right length, not hex
		"deadbeefdeadbeefdeadbeefdeadbeef00",               // too long
		"deadbeefdeadbeefdeadbeefdeadbee",                  // too short
		"DEADBEEFDEADBEEFDEADBEEFDEADBEEG",                 // bad char
	}
	for _, s := range cases {
		if Valid(s) {
			t.Errorf("Valid(%q) = true, want false", s)
		}
	}
}

func TestValidAcceptsUppercaseHex(t *testing.T) {
	if !Valid("DEADBEEFDEADBEEFDEADBEEFDEADBEEF") {
		t.Error("uppercase hex of the right length should be valid")
	}
}
