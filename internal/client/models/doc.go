// Package models defines the entities exchanged with the Lost & Found
// backend, the forms users fill in, and the helpers that turn raw server
// values into something printable.
package models
