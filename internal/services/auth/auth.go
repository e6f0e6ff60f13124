package auth

import (
	"errors"

	"opsnz/metasync/internal/util"
)

const ServiceName = "metasync"

// Keyring entry names for the two Metaname credentials.
const (
	KeyAccountRef = "account-ref"
	KeyAPIToken   = "api-token"
)

var ErrSecretNotFound = errors.New("secret not found in keyring")

type Store interface {
	SetSecret(key string, value string) error
	GetSecret(key string) (string, error)
	DeleteSecret(key string) error
}

// DefaultStore returns the standard auth store backed by the OS keychain.
func DefaultStore() Store {
	return NewKeyringStore(ServiceName)
}

// NormalizeKey normalizes a secret key for consistent keyring lookup.
func NormalizeKey(key string) string {
	return util.NormalizeKey(key)
}
