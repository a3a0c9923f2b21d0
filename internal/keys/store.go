package keys

import (
	"context"
	"errors"

	"github.com/mithrel/viralscript/internal/db"
)

// KeyStore persists a credential string under an id.
type KeyStore interface {
	Get(id string) (string, error)
	Put(id string, value string) error
	Delete(id string) error
}

var ErrKeyNotFound = errors.New("key not found")

// DBStore keeps the credential in the local key/value store.
type DBStore struct {
	KV db.KV
}

func (s *DBStore) Get(id string) (string, error) {
	if s == nil || s.KV == nil {
		return "", ErrKeyNotFound
	}
	val, err := s.KV.Get(context.Background(), id)
	if errors.Is(err, db.ErrNotFound) || (err == nil && val == "") {
		return "", ErrKeyNotFound
	}
	return val, err
}

func (s *DBStore) Put(id string, value string) error {
	return s.KV.Put(context.Background(), id, value)
}

func (s *DBStore) Delete(id string) error {
	if s == nil || s.KV == nil {
		return nil
	}
	return s.KV.Delete(context.Background(), id)
}
