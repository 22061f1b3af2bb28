// Package identity persists Waypoint's credential records.
//
// A credential is the username/email/password-hash/name record behind a user
// account. The package stores hashes only: callers (the session service) hash
// the plaintext password before handing the record over, and nothing here
// ever sees or logs plaintext material.
//
// Two implementations are provided: a Postgres store (pgx) for production and
// an in-memory store for dev mode and unit tests.
package identity
