// Package storage provides the small durable key-value store backing
// client-side state: the persisted session record and the language
// preference.
package storage

import "errors"

// Well-known keys. They match the names the web client uses in browser
// local storage so the persisted records stay interchangeable.
const (
	KeyAuth     = "auth"
	KeyLanguage = "language"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("storage: key not found")

// Backend is a durable string key-value store.
type Backend interface {
	// Get returns the value for key, or ErrNotFound.
	Get(key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(key string, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
}
