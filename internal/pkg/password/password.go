package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrMismatch        = errors.New("password does not match")
)

// Verify checks a plaintext password against its stored bcrypt hash.
// Guests and staff are seeded with hashes; there is no registration path
// that would need the hashing counterpart here.
func Verify(hash, plaintext string) error {
	if hash == "" || plaintext == "" {
		return ErrInvalidPassword
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatch
		}
		return err
	}
	return nil
}
