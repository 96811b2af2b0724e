// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package projecturl

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantOrg    string
		wantRegion string
		wantProv   Provider
		wantProj   string
		wantErr    bool
	}{
		{
			name:       "organization endpoint",
			input:      "https://acme.us-east-1.aws.api.imply.io",
			wantOrg:    "acme",
			wantRegion: "us-east-1",
			wantProv:   ProviderAWS,
		},
		{
			name:       "project URL",
			input:      "https://acme.eu-central-1.aws.api.imply.io/v1/projects/12375ffx-f7c8-4f5a-9f3b-0123456789ab",
			wantOrg:    "acme",
			wantRegion: "eu-central-1",
			wantProv:   ProviderAWS,
			wantProj:   "12375ffx-f7c8-4f5a-9f3b-0123456789ab",
		},
		{
			name:       "nested path and upper-case host",
			input:      "https://Acme.europe-west1.GCP.api.imply.io/v1/projects/p1/tables/wiki",
			wantOrg:    "acme",
			wantRegion: "europe-west1",
			wantProv:   ProviderGCP,
			wantProj:   "p1",
		},
		{name: "empty", input: "", wantErr: true},
		{name: "http scheme", input: "http://acme.us-east-1.aws.api.imply.io", wantErr: true},
		{name: "foreign host", input: "https://acme.us-east-1.aws.example.com", wantErr: true},
		{name: "missing region", input: "https://acme.aws.api.imply.io", wantErr: true},
		{name: "unknown provider", input: "https://acme.us-east-1.ibm.api.imply.io", wantErr: true},
		{name: "embedded credentials", input: "https://u:p@acme.us-east-1.aws.api.imply.io", wantErr: true},
		{name: "wrong path", input: "https://acme.us-east-1.aws.api.imply.io/v2/things", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", info)
				}
				var pe *ParseError
				if !errors.As(err, &pe) {
					t.Fatalf("expected *ParseError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if info.Organization != tt.wantOrg || info.Region != tt.wantRegion ||
				info.Provider != tt.wantProv || info.ProjectID != tt.wantProj {
				t.Errorf("Parse() = %+v", info)
			}
		})
	}
}

func TestBaseURL(t *testing.T) {
	info := &Info{Organization: "acme", Region: "us-east-1", Provider: ProviderAzure}
	if got, want := info.BaseURL(), "https://acme.us-east-1.azure.api.imply.io"; got != want {
		t.Errorf("BaseURL() = %s, want %s", got, want)
	}
}

func TestParseProvider(t *testing.T) {
	if p, ok := ParseProvider(" AWS "); !ok || p != ProviderAWS {
		t.Errorf("ParseProvider(AWS) = %s, %v", p, ok)
	}
	if _, ok := ParseProvider("ibm"); ok {
		t.Error("ParseProvider(ibm) should fail")
	}
}

func TestParseErrorMessage(t *testing.T) {
	err := NewParseError("x", "empty URL", "provide one")
	if got, want := err.Error(), "invalid project URL: empty URL\nHint: provide one"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
