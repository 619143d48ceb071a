// Package shared holds sentinel errors and small helpers used by both binaries.
package shared

import "errors"

var (

	// common errors
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")
	ErrorValidation    = errors.New("validation error")

	// auth-specific errors
	ErrorInvalidToken            = errors.New("invalid token")
	ErrorInvalidAuthheaderFormat = errors.New("invalid auth header format")
	ErrorInvalidLoginPassword    = errors.New("invalid login/password")

	// advice-specific errors
	ErrorQuotaExceeded = errors.New("quota exceeded")
)
