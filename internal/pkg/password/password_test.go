// internal/pkg/password/password_test.go
package password

import (
	"errors"
	"testing"
)

func TestValidateAccepts(t *testing.T) {
	for _, pw := range []string{"Abcdef12", "Passw0rdXy", "A1b2C3d4E5f6"} {
		if err := Validate(pw); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", pw, err)
		}
	}
}

func TestValidateLength(t *testing.T) {
	cases := []string{"Ab1", "Abcdef1", "Abcdefghijk12"}
	for _, pw := range cases {
		if err := Validate(pw); !errors.Is(err, ErrLength) {
			t.Errorf("Validate(%q) = %v, want ErrLength", pw, err)
		}
	}
}

func TestValidateLengthCountsRunes(t *testing.T) {
	// 8 runes, more than 8 bytes
	if err := Validate("Abcdé12x"); err != nil {
		t.Errorf("Validate on 8-rune password = %v, want nil", err)
	}
}

func TestValidateClasses(t *testing.T) {
	cases := []struct {
		pw   string
		want error
	}{
		{"abcdef12", ErrUpper},
		{"ABCDEF12", ErrLower},
		{"Abcdefgh", ErrDigit},
	}
	for _, tc := range cases {
		if err := Validate(tc.pw); !errors.Is(err, tc.want) {
			t.Errorf("Validate(%q) = %v, want %v", tc.pw, err, tc.want)
		}
	}
}
