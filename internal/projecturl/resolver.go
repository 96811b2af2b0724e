// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package projecturl

import (
	"net/url"
	"strings"
)

const exampleURL = "https://acme.us-east-1.aws.api.imply.io/v1/projects/<project-id>"

// Parse parses an Imply API URL of the form
// https://{org}.{region}.{provider}.api.imply.io[/v1/projects/{id}[/...]].
func Parse(raw string) (*Info, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, NewParseError(raw, "empty URL", "provide a URL like "+exampleURL)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, NewParseError(raw, "malformed URL", "provide a URL like "+exampleURL)
	}
	if u.Scheme != "https" {
		return nil, NewParseError(raw, "scheme must be https", "provide a URL like "+exampleURL)
	}
	if u.User != nil {
		return nil, NewParseError(raw, "credentials must not be embedded in the URL", "set IMPLY_API_KEY instead")
	}

	host := strings.ToLower(u.Hostname())
	if !strings.HasSuffix(host, "."+APIDomain) {
		return nil, NewParseError(raw, "host is not an Imply API host", "the host must end with ."+APIDomain)
	}
	labels := strings.Split(strings.TrimSuffix(host, "."+APIDomain), ".")
	if len(labels) != 3 {
		return nil, NewParseError(raw, "host must have the form {organization}.{region}.{provider}."+APIDomain, "")
	}
	for _, l := range labels {
		if l == "" {
			return nil, NewParseError(raw, "host contains an empty label", "")
		}
	}
	provider, ok := ParseProvider(labels[2])
	if !ok {
		return nil, NewParseError(raw, "unsupported cloud provider "+labels[2], "use aws, gcp or azure")
	}

	info := &Info{
		Organization: labels[0],
		Region:       labels[1],
		Provider:     provider,
		Original:     raw,
	}

	projectID, err := projectFromPath(u)
	if err != nil {
		return nil, NewParseError(raw, err.Error(), "provide a URL like "+exampleURL)
	}
	info.ProjectID = projectID
	return info, nil
}

type pathError string

func (e pathError) Error() string { return string(e) }

// projectFromPath extracts the project ID from /v1/projects/{id}/...; an empty path
// yields an empty ID.
func projectFromPath(u *url.URL) (string, error) {
	p := strings.Trim(u.EscapedPath(), "/")
	if p == "" {
		return "", nil
	}
	parts := strings.Split(p, "/")
	if len(parts) < 3 || parts[0] != "v1" || parts[1] != "projects" {
		return "", pathError("path must start with /v1/projects/{project-id}")
	}
	id, err := url.PathUnescape(parts[2])
	if err != nil || id == "" {
		return "", pathError("project ID is not a valid path segment")
	}
	return id, nil
}
