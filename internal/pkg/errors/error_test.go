// internal/pkg/errors/error_test.go
package xerrors

import (
	"errors"
	"testing"
)

func TestStoreMessageOnlyForStoreKind(t *testing.T) {
	storeErr := NewStoreError(KindStore, "league_join", "league is full", nil)
	if msg, ok := StoreMessage(storeErr); !ok || msg != "league is full" {
		t.Errorf("StoreMessage = %q, %v", msg, ok)
	}

	transportErr := NewStoreError(KindTransport, "league_join", "database call failed", errors.New("timeout"))
	if _, ok := StoreMessage(transportErr); ok {
		t.Error("transport errors must not expose a surfaceable message")
	}
	if _, ok := StoreMessage(errors.New("plain")); ok {
		t.Error("plain errors must not expose a surfaceable message")
	}
}

func TestIsMapping(t *testing.T) {
	mapErr := NewStoreError(KindMapping, "team_get", "column missing", nil)
	if !IsMapping(mapErr) {
		t.Error("IsMapping = false for a mapping error")
	}
	if IsMapping(NewStoreError(KindStore, "team_get", "x", nil)) {
		t.Error("IsMapping = true for a store error")
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("broken pipe")
	err := NewStoreError(KindTransport, "user_login", "database call failed", cause)
	if !errors.Is(err, cause) {
		t.Error("StoreError does not unwrap to its cause")
	}
}

func TestMessageOrDefault(t *testing.T) {
	if got := MessageOrDefault(errors.New("broken"), "fallback"); got != "broken" {
		t.Errorf("MessageOrDefault = %q", got)
	}
	if got := MessageOrDefault(nil, "fallback"); got != "fallback" {
		t.Errorf("MessageOrDefault on nil = %q", got)
	}
}
