package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "xapi/pkg/domain-errors"
)

// TestParseStatementID_Invariants validates the parsing invariant:
// "ids must be valid, non-empty, non-nil UUIDs"
func TestParseStatementID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseStatementID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeFormat))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseStatementID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeFormat))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseStatementID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeFormat))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		id, err := ParseStatementID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, StatementID(validUUID), id)
		assert.Equal(t, validUUID.String(), id.String())
	})
}

func TestParseID_HostileInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Path traversal", "../../../etc/passwd", true},
		{"Null byte injection", "550e8400\x00-e29b-41d4-a716-446655440000", true},
		{"Oversized input", strings.Repeat("a", 1000), true},
		{"Unicode zero-width space", "550e8400\u200B-e29b-41d4-a716-446655440000", true},
		{"Empty string", "", true},
		{"Nil UUID", uuid.Nil.String(), true},
		{"Whitespace only", "   ", true},
		{"Uppercase valid UUID", "550E8400-E29B-41D4-A716-446655440000", false},
		{"Valid UUID lowercase", "550e8400-e29b-41d4-a716-446655440000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errStatement := ParseStatementID(tt.input)
			_, errRegistration := ParseRegistrationID(tt.input)
			if tt.wantErr {
				require.Error(t, errStatement)
				require.Error(t, errRegistration)
				assert.True(t, dErrors.HasCode(errStatement, dErrors.CodeFormat))
				assert.True(t, dErrors.HasCode(errRegistration, dErrors.CodeFormat))
			} else {
				require.NoError(t, errStatement)
				require.NoError(t, errRegistration)
			}
		})
	}
}

func TestNewIDs(t *testing.T) {
	a := NewStatementID()
	b := NewStatementID()
	assert.False(t, a.IsNil())
	assert.NotEqual(t, a, b)
	assert.False(t, NewRegistrationID().IsNil())
	assert.True(t, StatementID{}.IsNil())
}
