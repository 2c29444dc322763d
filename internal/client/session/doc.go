// Package session keeps the client's bearer token in durable storage and
// exposes an unverified view of its claims.
//
// The claims are a display hint only: they decide which actions the UI
// offers, never whether the backend permits them. The server re-checks
// every mutating call and answers 401/403 when it disagrees.
package session
