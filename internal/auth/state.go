// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package auth manages the Imply credential kept in the OS keychain: verifying it
// against the API before it is stored, removing it, and reporting what is stored.
package auth

import "time"

// State describes the stored credential for display. It never holds the secret itself.
type State struct {
	Method       string    `json:"method"`
	Organization string    `json:"organization,omitempty"`
	Project      string    `json:"project,omitempty"`
	SavedAt      time.Time `json:"saved_at"`
}

// LoggedIn reports whether a credential has been stored.
func (s State) LoggedIn() bool { return s.Method != "" }
