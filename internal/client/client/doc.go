// Package client contains the transport layer of the Decipline client.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     signup, login, the current user, profile update, the task list,
//     task generation, completion toggles, billing upgrade and advice.
//  2. HTTPClient, the default JSON-over-HTTP implementation, which adds a
//     bearer credential and an X-Request-ID header to every call.
//  3. GRPCClient, which carries the same JSON shapes as protobuf Struct
//     messages and passes the bearer credential in call metadata.
//  4. Local persistence bootstrap (InitDatabase, RunMigrations) that opens
//     the SQLite state file and applies the embedded goose migrations.
//
// # Error Handling
//
// Non-success replies become *APIError carrying the server's detail text;
// Message extracts it, falling back to "Failed". Rejected credentials match
// ErrUnauthorized and connectivity problems match ErrUnavailable via
// errors.Is.
//
// Both transports honour an optional per-call timeout and an outbound rate
// limit (WithTimeout, WithRateLimit) and are safe for concurrent use.
package client
