package keys

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const DefaultKeyringService = "viralscript"

// KeyringStore keeps the credential in the system keyring.
type KeyringStore struct {
	Service string
}

func (s *KeyringStore) Get(id string) (string, error) {
	val, err := keyring.Get(s.service(), id)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrKeyNotFound
		}
		return "", err
	}
	if val == "" {
		return "", ErrKeyNotFound
	}
	return val, nil
}

func (s *KeyringStore) Put(id string, value string) error {
	return keyring.Set(s.service(), id, value)
}

func (s *KeyringStore) Delete(id string) error {
	err := keyring.Delete(s.service(), id)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

func (s *KeyringStore) service() string {
	if s != nil && s.Service != "" {
		return s.Service
	}
	return DefaultKeyringService
}

// KeyringAvailable reports whether a system keyring backend answers.
// A missing secret service (no D-Bus session, unsupported platform) counts as unavailable.
func KeyringAvailable() bool {
	_, err := keyring.Get(DefaultKeyringService, "_probe_")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
