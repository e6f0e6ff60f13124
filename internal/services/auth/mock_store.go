package auth

// MockStore is an in-memory auth store for testing.
type MockStore struct {
	secrets map[string]string
}

func NewMockStore() *MockStore {
	return &MockStore{secrets: make(map[string]string)}
}

func (m *MockStore) SetSecret(key string, value string) error {
	m.secrets[NormalizeKey(key)] = value
	return nil
}

func (m *MockStore) GetSecret(key string) (string, error) {
	value, ok := m.secrets[NormalizeKey(key)]
	if !ok {
		return "", ErrSecretNotFound
	}
	return value, nil
}

func (m *MockStore) DeleteSecret(key string) error {
	key = NormalizeKey(key)
	if _, ok := m.secrets[key]; !ok {
		return ErrSecretNotFound
	}
	delete(m.secrets, key)
	return nil
}
