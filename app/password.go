package app

import (
	"errors"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost         = 12
	minPasswordLength  = 8
	PasswordExpiryDays = 60
)

var (
	errPasswordTooShort = errors.New("password must be at least 8 characters long")
	errPasswordTooWeak  = errors.New("password must contain at least one uppercase letter, one lowercase letter, one number, and one special character")
)

// ValidatePassword enforces the account password policy: minimum length
// plus one upper, one lower, one digit and one non-alphanumeric character.
func ValidatePassword(pw string) error {
	runes := []rune(pw)
	if len(runes) < minPasswordLength {
		return errPasswordTooShort
	}
	var upper, lower, digit, special bool
	for _, r := range runes {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r) && !unicode.IsNumber(r):
			special = true
		}
	}
	if !(upper && lower && digit && special) {
		return errPasswordTooWeak
	}
	return nil
}

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// PasswordExpired reports whether a password set at changedAt has aged past
// the expiry policy. Accounts that never recorded a change are not expired.
func PasswordExpired(changedAt time.Time, now time.Time) bool {
	if changedAt.IsZero() {
		return false
	}
	return now.After(changedAt.AddDate(0, 0, PasswordExpiryDays))
}
