// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package config

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Environment variable names.
const (
	EnvOrganization   = "IMPLY_ORGANIZATION"
	EnvRegion         = "IMPLY_REGION"
	EnvCloudProvider  = "IMPLY_CLOUD_PROVIDER"
	EnvProjectID      = "IMPLY_PROJECT_ID"
	EnvProjectURL     = "IMPLY_PROJECT_URL"
	EnvBaseURL        = "IMPLY_BASE_URL"
	EnvAPIKey         = "IMPLY_API_KEY"
	EnvAccessToken    = "IMPLY_ACCESS_TOKEN"
	EnvServerName     = "MCP_SERVER_NAME"
	EnvLogLevel       = "LOG_LEVEL"
	EnvLogFormat      = "LOG_FORMAT"
	EnvQueryTimeout   = "DEFAULT_QUERY_TIMEOUT_MS"
	EnvMaxQueryLength = "MAX_QUERY_LENGTH"
	EnvHTTPTimeout    = "IMPLY_HTTP_TIMEOUT_SECONDS"
	EnvMaxDisplayRows = "MAX_DISPLAY_ROWS"
	EnvRequestsPerSec = "IMPLY_REQUESTS_PER_SECOND"
)

// field binds one setting to its environment variable and config file key.
type field struct {
	env    string
	key    string
	secret bool
	set    func(c *Config, v string) error
	get    func(c *Config) string
}

func str(p func(c *Config) *string) (func(*Config, string) error, func(*Config) string) {
	return func(c *Config, v string) error {
			*p(c) = strings.TrimSpace(v)
			return nil
		}, func(c *Config) string {
			return *p(c)
		}
}

func positiveInt(name string, p func(c *Config) *int) (func(*Config, string) error, func(*Config) string) {
	return func(c *Config, v string) error {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil || n <= 0 {
				return errors.Newf("%s must be a positive integer, got %q", name, v)
			}
			*p(c) = n
			return nil
		}, func(c *Config) string {
			return strconv.Itoa(*p(c))
		}
}

var fields = func() []field {
	var fs []field
	add := func(env, key string, secret bool, set func(*Config, string) error, get func(*Config) string) {
		fs = append(fs, field{env: env, key: key, secret: secret, set: set, get: get})
	}
	s, g := str(func(c *Config) *string { return &c.Organization })
	add(EnvOrganization, "organization", false, s, g)
	s, g = str(func(c *Config) *string { return &c.Region })
	add(EnvRegion, "region", false, s, g)
	add(EnvCloudProvider, "cloud_provider", false,
		func(c *Config, v string) error {
			c.CloudProvider = strings.ToLower(strings.TrimSpace(v))
			return nil
		},
		func(c *Config) string { return c.CloudProvider })
	s, g = str(func(c *Config) *string { return &c.ProjectID })
	add(EnvProjectID, "project_id", false, s, g)
	s, g = str(func(c *Config) *string { return &c.ProjectURL })
	add(EnvProjectURL, "project_url", false, s, g)
	s, g = str(func(c *Config) *string { return &c.BaseURLOverride })
	add(EnvBaseURL, "base_url", false, s, g)
	s, g = str(func(c *Config) *string { return &c.APIKey })
	add(EnvAPIKey, "api_key", true, s, g)
	s, g = str(func(c *Config) *string { return &c.AccessToken })
	add(EnvAccessToken, "access_token", true, s, g)
	s, g = str(func(c *Config) *string { return &c.ServerName })
	add(EnvServerName, "server_name", false, s, g)
	s, g = str(func(c *Config) *string { return &c.LogLevel })
	add(EnvLogLevel, "log_level", false, s, g)
	s, g = str(func(c *Config) *string { return &c.LogFormat })
	add(EnvLogFormat, "log_format", false, s, g)
	s, g = positiveInt(EnvQueryTimeout, func(c *Config) *int { return &c.DefaultQueryTimeoutMS })
	add(EnvQueryTimeout, "default_query_timeout_ms", false, s, g)
	s, g = positiveInt(EnvMaxQueryLength, func(c *Config) *int { return &c.MaxQueryLength })
	add(EnvMaxQueryLength, "max_query_length", false, s, g)
	s, g = positiveInt(EnvHTTPTimeout, func(c *Config) *int { return &c.HTTPTimeoutSeconds })
	add(EnvHTTPTimeout, "http_timeout_seconds", false, s, g)
	s, g = positiveInt(EnvMaxDisplayRows, func(c *Config) *int { return &c.MaxDisplayRows })
	add(EnvMaxDisplayRows, "max_display_rows", false, s, g)
	add(EnvRequestsPerSec, "requests_per_second", false,
		func(c *Config, v string) error {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil || f < 0 {
				return errors.Newf("%s must be a non-negative number, got %q", EnvRequestsPerSec, v)
			}
			c.RequestsPerSecond = f
			return nil
		},
		func(c *Config) string { return strconv.FormatFloat(c.RequestsPerSecond, 'f', -1, 64) })
	return fs
}()

func fieldByKey(key string) (field, bool) {
	k := strings.ToLower(strings.TrimSpace(key))
	for _, f := range fields {
		if f.key == k || strings.EqualFold(f.env, k) {
			return f, true
		}
	}
	return field{}, false
}

// Keys lists the settable config file keys in alphabetical order.
func Keys() []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.key)
	}
	sort.Strings(out)
	return out
}

// Setting is one displayable setting.
type Setting struct {
	Key   string
	Env   string
	Value string
}

// Settings returns every setting of c in declaration order, with secrets redacted.
func (c *Config) Settings() []Setting {
	out := make([]Setting, 0, len(fields))
	for _, f := range fields {
		v := f.get(c)
		if f.secret {
			v = redact(v)
		}
		out = append(out, Setting{Key: f.key, Env: f.env, Value: v})
	}
	return out
}

func redact(v string) string {
	if v == "" {
		return ""
	}
	return "***"
}
