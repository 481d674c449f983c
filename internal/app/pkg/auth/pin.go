package auth

import (
	"errors"
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

var pinRe = regexp.MustCompile(`^\d{4,6}$`)

var ErrBadPINFormat = errors.New("pin must be 4 to 6 digits")

// HashPIN validates the caregiver PIN format and bcrypt-hashes it.
func HashPIN(pin string) (string, error) {
	if !pinRe.MatchString(pin) {
		return "", ErrBadPINFormat
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPIN(hash, pin string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}
