package db

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Well-known keys in the local store.
const (
	KeyTheme      = "theme"
	KeyCredential = "credential"
)

// KV is the persistent local key/value store.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Store groups the repositories backed by one database handle.
type Store struct {
	Prefs KV
}

var ErrNotFound = errors.New("not found")

// Open returns a Store for a DSN: sqlite://<path> or mem://.
func Open(ctx context.Context, dsn string) (*Store, io.Closer, error) {
	switch {
	case strings.HasPrefix(dsn, "sqlite://"):
		return openSQLite(ctx, dsn)
	case strings.HasPrefix(dsn, "mem://"):
		return &Store{Prefs: newMemStore()}, io.NopCloser(nil), nil
	default:
		return nil, nil, fmt.Errorf("unsupported store dsn %q", dsn)
	}
}
