// Package secrets resolves credentials for the Metaname API.
//
// Resolution order for each secret name: the environment variable of the
// same name, then the configured resolver (if any) fed with the value of
// the <NAME>_REF environment variable, then the OS keyring. The resolver
// is an injected capability so callers can plug in external secret
// managers without process-wide registration.
package secrets

import (
	"errors"
	"fmt"
	"os"

	"opsnz/metasync/internal/services/auth"
)

// Environment variable names the CLI recognises.
const (
	EnvAccountRef = "METANAME_ACCOUNT_REF"
	EnvAPIToken   = "METANAME_API_TOKEN"
)

// MissingSecretError is returned when a secret cannot be resolved by any
// strategy.
type MissingSecretError struct {
	Name string
	Hint string
}

func (e *MissingSecretError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("missing secret %s: %s", e.Name, e.Hint)
	}
	return "missing secret " + e.Name
}

// Resolver resolves a secret from an external source. It receives the
// secret name and the value of <NAME>_REF when set ("" otherwise), and
// returns ("", nil) when it cannot help.
type Resolver func(name, reference string) (string, error)

// Source resolves secrets through the env/resolver chain.
type Source struct {
	resolver  Resolver
	lookupEnv func(string) (string, bool)
}

// Option configures a Source.
type Option func(*Source)

// WithResolver plugs in an external secret resolver.
func WithResolver(r Resolver) Option {
	return func(s *Source) {
		s.resolver = r
	}
}

// WithLookupEnv substitutes the environment lookup; tests inject a map.
func WithLookupEnv(fn func(string) (string, bool)) Option {
	return func(s *Source) {
		s.lookupEnv = fn
	}
}

// NewSource returns a Source reading from the process environment, with
// no external resolver unless one is configured.
func NewSource(opts ...Option) *Source {
	s := &Source{lookupEnv: os.LookupEnv}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get resolves a secret by name.
func (s *Source) Get(name string) (string, error) {
	if value, ok := s.lookupEnv(name); ok && value != "" {
		return value, nil
	}

	reference, _ := s.lookupEnv(name + "_REF")

	if s.resolver != nil {
		value, err := s.resolver(name, reference)
		if err != nil {
			return "", fmt.Errorf("resolving secret %s: %w", name, err)
		}
		if value != "" {
			return value, nil
		}
	}

	if reference != "" {
		return "", &MissingSecretError{
			Name: name,
			Hint: fmt.Sprintf("reference provided via %s_REF but no resolver returned a value", name),
		}
	}
	return "", &MissingSecretError{Name: name}
}

// Credentials resolves the Metaname account reference and API token.
func (s *Source) Credentials() (accountRef, apiToken string, err error) {
	accountRef, err = s.Get(EnvAccountRef)
	if err != nil {
		return "", "", err
	}
	apiToken, err = s.Get(EnvAPIToken)
	if err != nil {
		return "", "", err
	}
	return accountRef, apiToken, nil
}

// keyringKeys maps secret names to their keyring entries.
var keyringKeys = map[string]string{
	EnvAccountRef: auth.KeyAccountRef,
	EnvAPIToken:   auth.KeyAPIToken,
}

// KeyringResolver adapts an auth.Store into a Resolver. Secrets without a
// keyring mapping, and entries absent from the keyring, resolve to "".
func KeyringResolver(store auth.Store) Resolver {
	return func(name, _ string) (string, error) {
		key, ok := keyringKeys[name]
		if !ok {
			return "", nil
		}
		value, err := store.GetSecret(key)
		if errors.Is(err, auth.ErrSecretNotFound) {
			return "", nil
		}
		if err != nil {
			return "", err
		}
		return value, nil
	}
}
