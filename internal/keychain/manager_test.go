// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package keychain

import (
	"sync"
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapBackend is an in-memory keychainBackend.
type mapBackend struct {
	mu   sync.Mutex
	data map[string]string
}

func (b *mapBackend) Set(key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = value
	return nil
}

func (b *mapBackend) Get(key string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (b *mapBackend) Delete(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.data, key)
	return nil
}

func managers() map[string]*Manager {
	return map[string]*Manager{
		"keyring": NewWithKeyring(keyring.NewArrayKeyring(nil)),
		"backend": {backend: &mapBackend{data: map[string]string{}}},
	}
}

func TestCredentialRoundTrip(t *testing.T) {
	for name, m := range managers() {
		t.Run(name, func(t *testing.T) {
			_, err := m.LoadAPIKey()
			require.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, m.SaveAPIKey("pok_123"))
			key, err := m.LoadAPIKey()
			require.NoError(t, err)
			assert.Equal(t, "pok_123", key)

			// saving a token replaces the key
			require.NoError(t, m.SaveAccessToken("tok_456"))
			tok, err := m.LoadAccessToken()
			require.NoError(t, err)
			assert.Equal(t, "tok_456", tok)
			_, err = m.LoadAPIKey()
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestAuthStateAndClear(t *testing.T) {
	for name, m := range managers() {
		t.Run(name, func(t *testing.T) {
			state, err := m.LoadAuthState()
			require.NoError(t, err)
			assert.Nil(t, state)

			require.NoError(t, m.SaveAuthState([]byte(`{"method":"api_key"}`)))
			require.NoError(t, m.SaveAPIKey("pok_123"))

			state, err = m.LoadAuthState()
			require.NoError(t, err)
			assert.JSONEq(t, `{"method":"api_key"}`, string(state))

			require.NoError(t, m.ClearAuth())
			state, err = m.LoadAuthState()
			require.NoError(t, err)
			assert.Nil(t, state)
			_, err = m.LoadAPIKey()
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}
