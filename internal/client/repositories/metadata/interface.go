// Package metadata is the key/value table of the local database. The
// session token and the time it was saved live here.
package metadata

import "context"

// Repository is the key/value view of the metadata table. Absent keys are
// not errors: Get reports them with ok=false and Delete ignores them.
type Repository interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}
