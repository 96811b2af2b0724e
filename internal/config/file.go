// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package config

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"druidmcp/server/internal/xdg"
)

// DefaultPath returns the path of the YAML config file in the XDG config dir.
func DefaultPath() (string, error) {
	return xdg.ConfigFile()
}

// ReadFile reads a YAML config file. Credentials in the file are ignored.
func ReadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return &c, nil
}

// Save writes the non-secret part of c with 0600 permissions.
func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

// SetFileValue updates one key in the config file, creating the file if needed.
// Credentials are refused; use the login command to store them in the keychain.
func SetFileValue(path, key, value string) error {
	f, ok := fieldByKey(key)
	if !ok {
		return errors.Newf("unknown setting %q", key)
	}
	if f.secret {
		return errors.Newf("%s is a credential and is never written to the config file; use the login command", f.key)
	}
	c, err := ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		c = &Config{}
	}
	if err := f.set(c, value); err != nil {
		return err
	}
	return Save(path, c)
}
