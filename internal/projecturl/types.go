// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package projecturl parses Imply cloud API URLs into the organization, region,
// cloud provider and project they address, and builds the API base URL back from
// those parts.
package projecturl

import (
	"fmt"
	"strings"
)

// Provider is a cloud provider hosting an Imply organization.
type Provider string

const (
	ProviderAWS   Provider = "aws"
	ProviderGCP   Provider = "gcp"
	ProviderAzure Provider = "azure"
)

// Providers lists every supported provider.
var Providers = []Provider{ProviderAWS, ProviderGCP, ProviderAzure}

// ParseProvider lower-cases s and reports whether it names a supported provider.
func ParseProvider(s string) (Provider, bool) {
	p := Provider(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Providers {
		if p == known {
			return p, true
		}
	}
	return p, false
}

// APIDomain is the DNS suffix shared by every Imply cloud API host.
const APIDomain = "api.imply.io"

// Info contains the parts of a parsed project URL.
type Info struct {
	Organization string
	Region       string
	Provider     Provider
	// ProjectID is empty when the URL only names the organization endpoint.
	ProjectID string
	Original  string
}

// BaseURL returns the API root for the organization, without a trailing slash.
func (i *Info) BaseURL() string {
	return BaseURL(i.Organization, i.Region, string(i.Provider))
}

// BaseURL builds https://{organization}.{region}.{provider}.api.imply.io.
func BaseURL(organization, region, provider string) string {
	return fmt.Sprintf("https://%s.%s.%s.%s", organization, region, provider, APIDomain)
}

// ParseError represents an error that occurred during project URL parsing.
type ParseError struct {
	URL    string
	Reason string
	Hint   string
}

func (e *ParseError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("invalid project URL: %s\nHint: %s", e.Reason, e.Hint)
	}
	return fmt.Sprintf("invalid project URL: %s", e.Reason)
}

// NewParseError creates a new ParseError.
func NewParseError(url, reason, hint string) *ParseError {
	return &ParseError{
		URL:    url,
		Reason: reason,
		Hint:   hint,
	}
}
