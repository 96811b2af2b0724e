// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

package errors

import (
	"testing"

	cerrors "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name     string
		err      *E
		expected string
	}{
		{
			name:     "message only",
			err:      New(Validation, "SQL query is required"),
			expected: "validation: SQL query is required",
		},
		{
			name:     "wrapped cause",
			err:      Wrap(Network, "request failed", cerrors.New("dial tcp: refused")),
			expected: "network: request failed: dial tcp: refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestKindOfThroughWrapping(t *testing.T) {
	base := Validationf("Query too long. Maximum length: %d", 10)
	wrapped := cerrors.Wrap(base, "execute_sql_query")

	assert.Equal(t, Validation, KindOf(wrapped))
	assert.True(t, IsValidation(wrapped))

	e, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, "Query too long. Maximum length: 10", e.Message)
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(cerrors.New("boom")))
	assert.False(t, IsValidation(nil))
}
