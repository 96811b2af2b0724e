// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"sync"
	"time"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"

	"druidmcp/server/internal/config"
	"druidmcp/server/internal/keychain"
)

// keychainCredentials opens the OS keychain only when the loader asks for a credential.
type keychainCredentials struct{}

func (keychainCredentials) LoadAPIKey() (string, error) {
	km, err := keychain.GetManager()
	if err != nil {
		return "", err
	}
	return km.LoadAPIKey()
}

func (keychainCredentials) LoadAccessToken() (string, error) {
	km, err := keychain.GetManager()
	if err != nil {
		return "", err
	}
	return km.LoadAccessToken()
}

// configOptions builds loader options from the global flags.
func configOptions(withKeychain bool) config.Options {
	overrides := map[string]string{}
	if flagLogLevel != "" {
		overrides[config.EnvLogLevel] = flagLogLevel
	}
	if flagLogFormat != "" {
		overrides[config.EnvLogFormat] = flagLogFormat
	}
	opts := config.Options{
		ConfigFile: flagConfigFile,
		EnvFile:    flagEnvFile,
		Overrides:  overrides,
	}
	if withKeychain {
		opts.Credentials = keychainCredentials{}
	}
	return opts
}

// configPath returns the config file the commands read and write.
func configPath() (string, error) {
	if flagConfigFile != "" {
		return flagConfigFile, nil
	}
	return config.DefaultPath()
}

// startSpinner shows text with an animated frame until the returned function is called.
// The cursor is hidden meanwhile and the line is removed afterwards.
func startSpinner(text string) func() {
	frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	cursor.Hide()
	area, err := pterm.DefaultArea.WithRemoveWhenDone(true).Start()
	if err != nil {
		cursor.Show()
		return func() {}
	}

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		t := time.NewTicker(120 * time.Millisecond)
		defer t.Stop()
		i := 0
		for {
			select {
			case <-t.C:
				area.Update(fmt.Sprintf("%s %s", frames[i%len(frames)], text))
				i++
			case <-stop:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			wg.Wait()
			_ = area.Stop()
			cursor.Show()
		})
	}
}

// printBox prints body in a padded box with a cyan title.
func printBox(title, body string) {
	pterm.DefaultBox.
		WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint(title)).
		WithPadding(1).
		Println(body)
}
