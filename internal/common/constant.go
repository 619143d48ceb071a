// Package common contains wire-level constants shared by the Decipline client
// and the development server.
package common

const (
	// AuthorizationHeaderName carries the bearer credential on HTTP requests.
	AuthorizationHeaderName = "Authorization"

	// AuthorizationMetadataKey carries the bearer credential in gRPC metadata.
	AuthorizationMetadataKey = "authorization"

	// BearerPrefix precedes the token in the authorization value.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName correlates a client call with server logs.
	RequestIDHeaderName = "X-Request-ID"
)

// BearerValue formats token as an authorization value.
func BearerValue(token string) string {
	return BearerPrefix + token
}
