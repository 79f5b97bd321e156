// internal/pkg/token/token.go

// Package token mints the opaque credentials used as session and
// password-reset tokens: 128 bits from crypto/rand, hex encoded, carrying no
// decodable structure.
package token

import (
	"crypto/rand"
	"encoding/hex"
)

const rawLen = 16 // 128 bits

// New returns a fresh opaque token.
func New() string {
	b := make([]byte, rawLen)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms
		panic("token: rand.Read: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// Valid reports whether s has the shape of a token this package minted. Used
// to reject junk before a store round-trip.
func Valid(s string) bool {
	if len(s) != rawLen*2 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
