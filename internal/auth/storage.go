// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// Store is the subset of the keychain manager used by the service.
type Store interface {
	SaveAPIKey(apiKey string) error
	SaveAccessToken(token string) error
	LoadAPIKey() (string, error)
	LoadAccessToken() (string, error)
	SaveAuthState(data []byte) error
	LoadAuthState() ([]byte, error)
	ClearAuth() error
}

// loadState reads the auth state. Missing state yields the zero value.
func loadState(store Store) (State, error) {
	var s State
	data, err := store.LoadAuthState()
	if err != nil {
		return s, errors.Wrap(err, "loading auth state")
	}
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, errors.Wrap(err, "decoding auth state")
	}
	return s, nil
}

func saveState(store Store, s State) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return errors.Wrap(store.SaveAuthState(b), "saving auth state")
}
