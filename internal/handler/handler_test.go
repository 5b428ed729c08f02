package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediflow/clinic-api/pkg/errors"
)

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	for _, raw := range []string{"abc", "", "0", "-3", "1.5"} {
		_, err := ParseID(raw)
		assert.True(t, errors.IsValidation(err), "expected validation error for %q", raw)
	}
}
