// Package session implements Waypoint's credential and session lifecycle:
// sign-up, password login, access-token issuance, refresh, and expiry checks.
//
// A user has at most one session row, keyed by username. The access token is
// short-lived (default 30 minutes) and replaced on every refresh; the refresh
// token is drawn once at session creation and is never rotated afterwards;
// it is the durable identity of the row. A consequence is that refresh tokens
// currently have no expiry of their own; that matches the historical behavior
// and is tracked as an open security question rather than silently changed.
//
// Transport (HTTP) integration is intentionally out of scope here.
package session
