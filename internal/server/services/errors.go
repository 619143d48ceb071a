package services

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/decipline/internal/server/auth"
	"github.com/dmitrijs2005/decipline/internal/shared"
)

// StatusOf maps a service error onto an HTTP status and the detail text
// returned to clients.
func StatusOf(err error) (int, string) {
	switch {
	case errors.Is(err, shared.ErrorValidation):
		return http.StatusBadRequest, detail(err, shared.ErrorValidation)
	case errors.Is(err, shared.ErrorInvalidLoginPassword):
		return http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, auth.ErrTokenExpired):
		return http.StatusUnauthorized, "Token expired"
	case errors.Is(err, shared.ErrorInvalidToken), errors.Is(err, shared.ErrorInvalidAuthheaderFormat):
		return http.StatusUnauthorized, "Not authenticated"
	case errors.Is(err, shared.ErrorAlreadyExists):
		return http.StatusConflict, detail(err, shared.ErrorAlreadyExists)
	case errors.Is(err, shared.ErrorNotFound):
		return http.StatusNotFound, detail(err, shared.ErrorNotFound)
	case errors.Is(err, shared.ErrorQuotaExceeded):
		return http.StatusTooManyRequests, shared.ErrorQuotaExceeded.Error()
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// detail strips the sentinel prefix from "sentinel: detail" messages and
// capitalises the rest.
func detail(err, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if msg == "" {
		return ""
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
