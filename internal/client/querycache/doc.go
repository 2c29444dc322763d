// Package querycache keeps server-fetched collections keyed by a logical
// resource name.
//
// A value is served from memory while it is fresh (five minutes by
// default). Concurrent queries for one key share a single fetch, a failed
// fetch is retried once before the error is surfaced, and Invalidate forces
// the next query to go to the network regardless of age. Nothing refetches
// on its own: there is no focus or interval trigger.
package querycache
