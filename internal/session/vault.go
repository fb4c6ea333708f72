package session

import "context"

// Vault is the key-value surface the session store persists through. The
// production implementation sits on SQLite; tests use the in-memory variant.
type Vault interface {
	Get(ctx context.Context, key string) (string, bool, error)
	// SetMany writes every pair atomically: either all keys land or none do.
	SetMany(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}
