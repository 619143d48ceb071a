// Package metadata stores small key/value records in the client's local
// SQLite database. The session token lives here.
package metadata
