// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

//go:build !darwin

package keychain

import "github.com/cockroachdb/errors"

var errNoSecurityCommand = errors.New("the security command is only available on macOS")

// securityBackend exists on every platform so NewManager compiles; outside macOS it
// cannot be constructed.
type securityBackend struct{}

func newSecurityBackend() (*securityBackend, error) { return nil, errNoSecurityCommand }

func (*securityBackend) Set(string, string) error   { return errNoSecurityCommand }
func (*securityBackend) Get(string) (string, error) { return "", errNoSecurityCommand }
func (*securityBackend) Delete(string) error        { return errNoSecurityCommand }
