// Package cryptox hashes and verifies account passwords for the development
// server using argon2id.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	saltSize  = 16
	keyLength = 32
	scheme    = "argon2id"
)

var ErrMalformedHash = errors.New("malformed password hash")

// DeriveKey stretches password with salt using the argon2id parameters shared
// by HashPassword and VerifyPassword.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, keyLength)
}

// HashPassword returns "argon2id$<salt>$<key>" with hex-encoded parts.
func HashPassword(password []byte) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := DeriveKey(password, salt)
	return strings.Join([]string{scheme, hex.EncodeToString(salt), hex.EncodeToString(key)}, "$"), nil
}

// VerifyPassword reports whether password matches encoded. It returns
// ErrMalformedHash when encoded was not produced by HashPassword.
func VerifyPassword(encoded string, password []byte) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 || parts[0] != scheme {
		return false, ErrMalformedHash
	}
	salt, err := hex.DecodeString(parts[1])
	if err != nil {
		return false, ErrMalformedHash
	}
	want, err := hex.DecodeString(parts[2])
	if err != nil || len(want) != keyLength {
		return false, ErrMalformedHash
	}

	got := DeriveKey(password, salt)
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
