package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidationError_EmptyIsNil(t *testing.T) {
	assert.NoError(t, NewValidationError(nil))
	assert.NoError(t, NewValidationError([]FieldError{}))
}

func TestValidationError_CollectsAllKeys(t *testing.T) {
	err := NewValidationError([]FieldError{
		{Key: "invalid_value", Args: []any{"123", `\d{8}`}},
		{Key: "qualifier_not_found", Args: []any{"lot"}},
	})
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Fields, 2)
	assert.Contains(t, err.Error(), "invalid_value")
	assert.Contains(t, err.Error(), "qualifier_not_found")
}

func TestConflictError_MatchesSentinel(t *testing.T) {
	err := fmt.Errorf("updating link: %w", &ConflictError{Identity: "https://example.com/p gs1:pip"})
	assert.True(t, errors.Is(err, ErrConflict))

	var ce *ConflictError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "https://example.com/p gs1:pip", ce.Identity)
}
