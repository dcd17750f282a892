// Package session holds the per-browser key-value persistence that survives
// process restarts and is used to restore the current identity.
package session

import "context"

// Keys kept per session.
const (
	KeyUser  = "user"
	KeyAdmin = "admin"
)

// Store is a durable key-value store scoped to a single browser session.
// Get reports ok=false for an absent key; absence is not an error.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}
