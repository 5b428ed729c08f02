package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDataLoads(t *testing.T) {
	patients, err := Patients()
	require.NoError(t, err)
	assert.NotEmpty(t, patients)

	appointments, err := Appointments()
	require.NoError(t, err)
	assert.NotEmpty(t, appointments)

	records, err := Records()
	require.NoError(t, err)
	assert.NotEmpty(t, records)

	// Identifiers are unique so the next-id rule never collides.
	seen := map[int]bool{}
	for _, p := range patients {
		assert.False(t, seen[p.ID], "duplicate patient id %d", p.ID)
		seen[p.ID] = true
	}

	for _, r := range records {
		assert.NotEmpty(t, r.Diagnosis)
	}
}
