// internal/pkg/password/password.go

// Package password holds the account password policy checked before any
// store round-trip.
package password

import (
	"errors"
	"unicode"
)

var (
	ErrLength = errors.New("password must be between 8 and 12 characters")
	ErrUpper  = errors.New("password must contain an uppercase letter")
	ErrLower  = errors.New("password must contain a lowercase letter")
	ErrDigit  = errors.New("password must contain a digit")
)

// Validate checks the complexity policy: 8-12 characters with at least one
// uppercase letter, one lowercase letter and one digit.
func Validate(pw string) error {
	runes := []rune(pw)
	if len(runes) < 8 || len(runes) > 12 {
		return ErrLength
	}
	var upper, lower, digit bool
	for _, r := range runes {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper {
		return ErrUpper
	}
	if !lower {
		return ErrLower
	}
	if !digit {
		return ErrDigit
	}
	return nil
}
