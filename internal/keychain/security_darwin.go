// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

//go:build darwin

package keychain

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
)

// securityBackend stores generic passwords through /usr/bin/security. Entries use
// ServiceName as the account and the key as the service.
type securityBackend struct {
	path string
}

func newSecurityBackend() (*securityBackend, error) {
	path, err := exec.LookPath("security")
	if err != nil {
		return nil, errors.Wrap(err, "locating the security command")
	}
	return &securityBackend{path: path}, nil
}

// tracef writes to stderr only; stdout carries the MCP stdio transport.
func tracef(format string, args ...any) {
	if os.Getenv("IMPLY_DRUID_MCP_VERBOSE") == "1" {
		fmt.Fprintf(os.Stderr, "[keychain] "+format+"\n", args...)
	}
}

// run executes security with args and returns trimmed stdout. A missing item is
// reported as ErrNotFound.
func (s *securityBackend) run(args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(s.path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if strings.Contains(msg, "could not be found") {
			return "", ErrNotFound
		}
		return "", errors.Wrapf(err, "security %s: %s", args[0], msg)
	}
	return strings.TrimSpace(stdout.String()), nil
}

func (s *securityBackend) Set(key, value string) error {
	tracef("storing %s (%d bytes)", key, len(value))
	if err := s.Delete(key); err != nil {
		tracef("removing previous %s: %v", key, err)
	}
	_, err := s.run("add-generic-password", "-a", ServiceName, "-s", key, "-w", value, "-U")
	return err
}

func (s *securityBackend) Get(key string) (string, error) {
	return s.run("find-generic-password", "-a", ServiceName, "-s", key, "-w")
}

func (s *securityBackend) Delete(key string) error {
	_, err := s.run("delete-generic-password", "-a", ServiceName, "-s", key)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}
