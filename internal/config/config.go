// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package config loads the process-wide server configuration.
//
// Settings are layered, lowest precedence first: built-in defaults, the YAML file in
// the XDG config dir, a .env file, the process environment and finally explicit
// command-line overrides. Credentials are never written to the config file; when
// none is configured, the OS keychain is consulted. The result is read-only after
// Load returns.
package config

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"

	apperrors "druidmcp/server/internal/errors"
	"druidmcp/server/internal/manifest"
	"druidmcp/server/internal/projecturl"
)

// Defaults.
const (
	DefaultRegion             = "us-east-1"
	DefaultCloudProvider      = "aws"
	DefaultServerName         = "Imply Druid MCP Server"
	DefaultLogLevel           = "INFO"
	DefaultLogFormat          = "text"
	DefaultQueryTimeoutMS     = 30000
	DefaultMaxQueryLength     = 10000
	DefaultHTTPTimeoutSeconds = 60
	DefaultMaxDisplayRows     = 100
)

// Auth methods, as reported by AuthMethod.
const (
	AuthAPIKey      = "api_key"
	AuthAccessToken = "access_token"
)

// Config holds the server settings.
type Config struct {
	Organization    string `yaml:"organization,omitempty"`
	Region          string `yaml:"region,omitempty"`
	CloudProvider   string `yaml:"cloud_provider,omitempty"`
	ProjectID       string `yaml:"project_id,omitempty"`
	ProjectURL      string `yaml:"project_url,omitempty"`
	BaseURLOverride string `yaml:"base_url,omitempty"`

	APIKey      string `yaml:"-"`
	AccessToken string `yaml:"-"`

	ServerName            string  `yaml:"server_name,omitempty"`
	LogLevel              string  `yaml:"log_level,omitempty"`
	LogFormat             string  `yaml:"log_format,omitempty"`
	DefaultQueryTimeoutMS int     `yaml:"default_query_timeout_ms,omitempty"`
	MaxQueryLength        int     `yaml:"max_query_length,omitempty"`
	HTTPTimeoutSeconds    int     `yaml:"http_timeout_seconds,omitempty"`
	MaxDisplayRows        int     `yaml:"max_display_rows,omitempty"`
	RequestsPerSecond     float64 `yaml:"requests_per_second,omitempty"`

	// Endpoints overrides entries of the built-in endpoint table, keyed by tool name.
	Endpoints map[string]manifest.Endpoint `yaml:"endpoints,omitempty"`

	// CredentialSource records where the credential came from: "env", "keychain" or
	// "flag" for one supplied on the command line.
	CredentialSource string `yaml:"-"`
}

// CredentialStore is the subset of the keychain the loader needs.
type CredentialStore interface {
	LoadAPIKey() (string, error)
	LoadAccessToken() (string, error)
}

// Options controls Load.
type Options struct {
	// ConfigFile is the YAML file to read. Empty selects the XDG default, which may be absent.
	ConfigFile string
	// EnvFile is the dotenv file to read. Empty selects ".env", which may be absent.
	EnvFile string
	// Overrides are applied last, keyed by environment variable name or file key.
	Overrides map[string]string
	// Credentials is consulted when no credential is configured. Nil skips it.
	Credentials CredentialStore
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Load builds the configuration and validates it.
func Load(opts Options) (*Config, error) {
	c, err := Resolve(opts)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Resolve builds the configuration without validating it. Commands that only display
// configuration use it so that an incomplete setup can still be inspected.
func Resolve(opts Options) (*Config, error) {
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	c := &Config{}
	explicitFile := opts.ConfigFile != ""
	path := opts.ConfigFile
	if !explicitFile {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		fc, err := ReadFile(path)
		switch {
		case err == nil:
			c = fc
		case errors.Is(err, os.ErrNotExist) && !explicitFile:
		default:
			return nil, apperrors.Wrap(apperrors.Config, "reading config file", err)
		}
	}

	dotenv, err := readDotenv(opts.EnvFile)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Config, "reading env file", err)
	}

	var problems []string
	for _, f := range fields {
		v, ok := lookup(f.env)
		if !ok {
			v, ok = dotenv[f.env]
		}
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		if err := f.set(c, v); err != nil {
			problems = append(problems, err.Error())
		} else if f.secret {
			c.CredentialSource = "env"
		}
	}
	for k, v := range opts.Overrides {
		f, ok := fieldByKey(k)
		if !ok {
			problems = append(problems, "unknown setting "+k)
			continue
		}
		if err := f.set(c, v); err != nil {
			problems = append(problems, err.Error())
		} else if f.secret {
			c.CredentialSource = "flag"
		}
	}
	if len(problems) > 0 {
		return nil, apperrors.New(apperrors.Config, strings.Join(problems, "; "))
	}

	if err := c.applyProjectURL(); err != nil {
		return nil, apperrors.Wrap(apperrors.Config, "parsing "+EnvProjectURL, err)
	}
	c.applyDefaults()

	if c.APIKey == "" && c.AccessToken == "" && opts.Credentials != nil {
		if key, err := opts.Credentials.LoadAPIKey(); err == nil && key != "" {
			c.APIKey = key
			c.CredentialSource = "keychain"
		} else if tok, err := opts.Credentials.LoadAccessToken(); err == nil && tok != "" {
			c.AccessToken = tok
			c.CredentialSource = "keychain"
		}
	}
	return c, nil
}

// readDotenv reads the dotenv file into a map without touching the process environment.
// The default ".env" may be missing; an explicitly named file must exist.
func readDotenv(path string) (map[string]string, error) {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return map[string]string{}, nil
		}
		return nil, err
	}
	return godotenv.Read(path)
}

// applyProjectURL fills organization, region, provider and project from ProjectURL
// wherever those are not set explicitly.
func (c *Config) applyProjectURL() error {
	if c.ProjectURL == "" {
		return nil
	}
	info, err := projecturl.Parse(c.ProjectURL)
	if err != nil {
		return err
	}
	if c.Organization == "" {
		c.Organization = info.Organization
	}
	if c.Region == "" {
		c.Region = info.Region
	}
	if c.CloudProvider == "" {
		c.CloudProvider = string(info.Provider)
	}
	if c.ProjectID == "" {
		c.ProjectID = info.ProjectID
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.CloudProvider == "" {
		c.CloudProvider = DefaultCloudProvider
	}
	c.CloudProvider = strings.ToLower(c.CloudProvider)
	if c.ServerName == "" {
		c.ServerName = DefaultServerName
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
	if c.DefaultQueryTimeoutMS == 0 {
		c.DefaultQueryTimeoutMS = DefaultQueryTimeoutMS
	}
	if c.MaxQueryLength == 0 {
		c.MaxQueryLength = DefaultMaxQueryLength
	}
	if c.HTTPTimeoutSeconds == 0 {
		c.HTTPTimeoutSeconds = DefaultHTTPTimeoutSeconds
	}
	if c.MaxDisplayRows == 0 {
		c.MaxDisplayRows = DefaultMaxDisplayRows
	}
}

// Validate reports every problem with c at once.
func (c *Config) Validate() error {
	var problems []string
	if c.Organization == "" {
		problems = append(problems, EnvOrganization+" is required")
	}
	if c.ProjectID == "" {
		problems = append(problems, EnvProjectID+" is required")
	}
	if c.APIKey == "" && c.AccessToken == "" {
		problems = append(problems, "either "+EnvAPIKey+" or "+EnvAccessToken+" must be provided")
	}
	if _, ok := projecturl.ParseProvider(c.CloudProvider); !ok {
		problems = append(problems, EnvCloudProvider+" must be one of aws, gcp, azure")
	}
	if c.BaseURLOverride != "" &&
		!strings.HasPrefix(c.BaseURLOverride, "https://") && !strings.HasPrefix(c.BaseURLOverride, "http://") {
		problems = append(problems, EnvBaseURL+" must be an http(s) URL")
	}
	if c.DefaultQueryTimeoutMS < 0 || c.MaxQueryLength < 0 || c.HTTPTimeoutSeconds < 0 || c.MaxDisplayRows < 0 {
		problems = append(problems, "numeric limits must be positive")
	}
	if c.RequestsPerSecond < 0 {
		problems = append(problems, EnvRequestsPerSec+" must not be negative")
	}
	if _, err := c.EndpointTable(); err != nil {
		problems = append(problems, err.Error())
	}
	if len(problems) > 0 {
		return apperrors.New(apperrors.Config, strings.Join(problems, "; "))
	}
	return nil
}

// BaseURL returns the API root without a trailing slash.
func (c *Config) BaseURL() string {
	if c.BaseURLOverride != "" {
		return strings.TrimRight(c.BaseURLOverride, "/")
	}
	return projecturl.BaseURL(c.Organization, c.Region, c.CloudProvider)
}

// AuthHeader returns the Authorization header value. The API key wins when both
// credentials are present.
func (c *Config) AuthHeader() string {
	if c.APIKey != "" {
		return "Basic " + c.APIKey
	}
	if c.AccessToken != "" {
		return "Bearer " + c.AccessToken
	}
	return ""
}

// AuthMethod returns AuthAPIKey, AuthAccessToken or "".
func (c *Config) AuthMethod() string {
	switch {
	case c.APIKey != "":
		return AuthAPIKey
	case c.AccessToken != "":
		return AuthAccessToken
	}
	return ""
}

// Secrets returns the configured credentials, for log masking.
func (c *Config) Secrets() []string {
	return []string{c.APIKey, c.AccessToken}
}

// EndpointTable returns the built-in endpoint table with the configured overrides applied.
func (c *Config) EndpointTable() (manifest.Endpoints, error) {
	return manifest.Default().Merge(c.Endpoints)
}
