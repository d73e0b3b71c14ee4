package storage

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "taskboard"

// KeyringBackend stores values in the operating system keyring. The
// session record carries a bearer token, so it belongs here rather
// than in a plain file.
type KeyringBackend struct {
	ring keyring.Keyring
}

// OpenKeyring opens the system keyring for the application.
func OpenKeyring() (*KeyringBackend, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/taskboard/state",
		FilePasswordFunc:         keyring.FixedStringPrompt("taskboard-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return &KeyringBackend{ring: ring}, nil
}

// Get retrieves a value by key from the system keyring.
func (b *KeyringBackend) Get(key string) (string, error) {
	item, err := b.ring.Get(key)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("getting %q: %w", key, err)
	}
	return string(item.Data), nil
}

// Set stores a value by key in the system keyring.
func (b *KeyringBackend) Set(key string, value string) error {
	err := b.ring.Set(keyring.Item{
		Key:  key,
		Data: []byte(value),
	})
	if err != nil {
		return fmt.Errorf("setting %q: %w", key, err)
	}
	return nil
}

// Delete removes a key from the system keyring.
func (b *KeyringBackend) Delete(key string) error {
	err := b.ring.Remove(key)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("deleting %q: %w", key, err)
	}
	return nil
}
