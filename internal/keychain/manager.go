// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain stores the Imply credential and the login state in the OS
// credential store. On macOS the security command is preferred; elsewhere, or when
// it is missing, the keyring library opens the platform's native backend (Keychain,
// Windows Credential Manager, Secret Service, KWallet or pass). Secrets are never
// written to plain files.
package keychain

import (
	"runtime"
	"sync"

	"github.com/99designs/keyring"
	"github.com/cockroachdb/errors"
)

// ServiceName is the namespace of every stored item.
const ServiceName = "imply-druid-mcp"

// Item keys.
const (
	KeyAPIKey      = "imply_api_key"
	KeyAccessToken = "imply_access_token"
	KeyAuthState   = "auth_state"
)

// ErrNotFound is returned when a key is absent or empty.
var ErrNotFound = errors.New("not found in keychain")

// keychainBackend is the storage a Manager writes through.
type keychainBackend interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Delete(key string) error
}

// ringBackend adapts a keyring.Keyring to keychainBackend.
type ringBackend struct {
	ring keyring.Keyring
}

func (r ringBackend) Set(key, value string) error {
	return r.ring.Set(keyring.Item{Key: key, Label: ServiceName + " " + key, Data: []byte(value)})
}

func (r ringBackend) Get(key string) (string, error) {
	it, err := r.ring.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return string(it.Data), nil
}

func (r ringBackend) Delete(key string) error {
	if err := r.ring.Remove(key); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return err
	}
	return nil
}

// Manager serializes access to one backend. It is safe for concurrent use.
type Manager struct {
	mu      sync.RWMutex
	backend keychainBackend
}

var (
	sharedMu      sync.Mutex
	sharedManager *Manager
)

// NewManager opens the platform credential store.
func NewManager() (*Manager, error) {
	if runtime.GOOS == "darwin" {
		if b, err := newSecurityBackend(); err == nil {
			return &Manager{backend: b}, nil
		}
	}
	ring, err := openRing()
	if err != nil {
		return nil, err
	}
	return NewWithKeyring(ring), nil
}

// NewWithKeyring wraps an opened keyring, such as keyring.NewArrayKeyring in tests.
func NewWithKeyring(ring keyring.Keyring) *Manager {
	return &Manager{backend: ringBackend{ring: ring}}
}

// GetManager returns the process-wide Manager, opening it on first use. A failed
// open is retried on the next call.
func GetManager() (*Manager, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if sharedManager == nil {
		m, err := NewManager()
		if err != nil {
			return nil, err
		}
		sharedManager = m
	}
	return sharedManager, nil
}

// nativeBackends lists the keyring backends allowed on each OS.
func nativeBackends() ([]keyring.BackendType, error) {
	switch runtime.GOOS {
	case "darwin":
		return []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend}, nil
	case "windows":
		return []keyring.BackendType{keyring.WinCredBackend}, nil
	case "linux", "freebsd", "openbsd":
		return []keyring.BackendType{keyring.SecretServiceBackend, keyring.KWalletBackend, keyring.PassBackend}, nil
	}
	return nil, errors.Newf("secure storage is not supported on %s", runtime.GOOS)
}

func openRing() (keyring.Keyring, error) {
	backends, err := nativeBackends()
	if err != nil {
		return nil, err
	}
	ring, err := keyring.Open(keyring.Config{
		ServiceName:              ServiceName,
		AllowedBackends:          backends,
		PassPrefix:               ServiceName,
		KeychainTrustApplication: true,
		LibSecretCollectionName:  "login",
		KWalletAppID:             ServiceName,
		KWalletFolder:            ServiceName,
		WinCredPrefix:            ServiceName,
	})
	if err != nil {
		return nil, errors.WithHint(
			errors.Wrap(err, "opening the OS credential store"),
			"install gnome-keyring or pass, or set IMPLY_API_KEY in the environment")
	}
	return ring, nil
}

func (m *Manager) load(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, err := m.backend.Get(key)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", ErrNotFound
	}
	return v, nil
}

// replace stores value under key and removes the keys in drop.
func (m *Manager) replace(key, value string, drop ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.backend.Set(key, value); err != nil {
		return errors.Wrapf(err, "storing %s", key)
	}
	for _, k := range drop {
		_ = m.backend.Delete(k)
	}
	return nil
}

// SaveAPIKey stores the API key and drops a stored access token, so exactly one
// credential is kept.
func (m *Manager) SaveAPIKey(apiKey string) error {
	return m.replace(KeyAPIKey, apiKey, KeyAccessToken)
}

// SaveAccessToken stores the access token and drops a stored API key.
func (m *Manager) SaveAccessToken(token string) error {
	return m.replace(KeyAccessToken, token, KeyAPIKey)
}

func (m *Manager) LoadAPIKey() (string, error)      { return m.load(KeyAPIKey) }
func (m *Manager) LoadAccessToken() (string, error) { return m.load(KeyAccessToken) }

// SaveAuthState stores the serialized login state.
func (m *Manager) SaveAuthState(data []byte) error {
	return m.replace(KeyAuthState, string(data))
}

// LoadAuthState returns the serialized login state, or nil when none is stored.
func (m *Manager) LoadAuthState() ([]byte, error) {
	v, err := m.load(KeyAuthState)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(v), nil
}

// ClearAuth removes both credentials and the login state.
func (m *Manager) ClearAuth() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var errs error
	for _, k := range []string{KeyAPIKey, KeyAccessToken, KeyAuthState} {
		if err := m.backend.Delete(k); err != nil && !errors.Is(err, ErrNotFound) {
			errs = errors.CombineErrors(errs, err)
		}
	}
	return errs
}
