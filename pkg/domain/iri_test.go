package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "xapi/pkg/domain-errors"
)

func TestParseIRI(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"http verb id", "http://example.com/xapi/verbs#sent-a-statement", false},
		{"https with query", "https://example.com/activity?id=1", false},
		{"mailto scheme", "mailto:bob@example.com", false},
		{"urn", "urn:uuid:550e8400-e29b-41d4-a716-446655440000", false},
		{"non-ascii path", "http://example.com/activités/1", false},
		{"empty", "", true},
		{"relative path", "verbs/sent", true},
		{"scheme relative", "//example.com/verbs/sent", true},
		{"embedded space", "http://example.com/a b", true},
		{"trailing newline", "http://example.com/a\n", true},
		{"bad percent escape", "http://example.com/%zz", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iri, err := ParseIRI(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeFormat))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, iri.String())
		})
	}
}

func TestMustIRI(t *testing.T) {
	assert.Panics(t, func() { MustIRI("not absolute") })
	assert.NotPanics(t, func() { MustIRI("http://adlnet.gov/expapi/verbs/voided") })
}
