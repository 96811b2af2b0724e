// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"druidmcp/server/internal/config"
	apperrors "druidmcp/server/internal/errors"
	"druidmcp/server/internal/imply"
)

// Connector builds an API client for a configuration.
type Connector func(cfg *config.Config) (imply.API, error)

// Service verifies credentials and keeps them in a Store.
type Service struct {
	store   Store
	connect Connector
	now     func() time.Time
}

// NewService constructs a Service. A nil connector uses imply.New.
func NewService(store Store, connect Connector) *Service {
	if connect == nil {
		connect = func(cfg *config.Config) (imply.API, error) { return imply.New(cfg) }
	}
	return &Service{store: store, connect: connect, now: time.Now}
}

// Login checks secret against the API by listing tables and, when the call succeeds,
// stores it as the only credential. method is config.AuthAPIKey or config.AuthAccessToken.
func (s *Service) Login(ctx context.Context, cfg *config.Config, method, secret string) (State, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return State{}, apperrors.New(apperrors.Validation, "a credential is required")
	}

	candidate := *cfg
	candidate.APIKey, candidate.AccessToken = "", ""
	switch method {
	case config.AuthAPIKey:
		candidate.APIKey = secret
	case config.AuthAccessToken:
		candidate.AccessToken = secret
	default:
		return State{}, apperrors.Validationf("unknown auth method %q", method)
	}
	candidate.CredentialSource = "flag"
	if err := candidate.Validate(); err != nil {
		return State{}, err
	}

	client, err := s.connect(&candidate)
	if err != nil {
		return State{}, err
	}
	if _, err := client.ListTables(ctx); err != nil {
		return State{}, errors.Wrap(err, "verifying credential")
	}

	if method == config.AuthAPIKey {
		err = s.store.SaveAPIKey(secret)
	} else {
		err = s.store.SaveAccessToken(secret)
	}
	if err != nil {
		return State{}, apperrors.Wrap(apperrors.Credentials, "could not store the credential in the OS keychain", err)
	}

	st := State{
		Method:       method,
		Organization: candidate.Organization,
		Project:      candidate.ProjectID,
		SavedAt:      s.now().UTC(),
	}
	if err := saveState(s.store, st); err != nil {
		return State{}, apperrors.Wrap(apperrors.Credentials, "could not store the login state", err)
	}
	return st, nil
}

// Logout removes the stored credential and state.
func (s *Service) Logout() error {
	if err := s.store.ClearAuth(); err != nil {
		return apperrors.Wrap(apperrors.Credentials, "could not clear the OS keychain", err)
	}
	return nil
}

// Status returns the stored login state.
func (s *Service) Status() (State, error) {
	return loadState(s.store)
}
