package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenario_AddDuplicateUpdateRemove(t *testing.T) {
	s := New()

	_, err := s.Add(101, "Alice", []float64{90, 80})
	require.NoError(t, err)
	r, ok := s.Get(101)
	require.True(t, ok)
	assert.Equal(t, 85.0, r.Average)

	_, err = s.Add(101, "Bob", []float64{70})
	require.Error(t, err)
	assert.True(t, IsDuplicateKey(err))

	require.True(t, s.Update(101, "Alice Smith", []float64{100}))
	r, ok = s.Get(101)
	require.True(t, ok)
	assert.Equal(t, 100.0, r.Average)

	found := s.FindByName("alice")
	require.Len(t, found, 1)
	assert.Equal(t, 101, found[0].ID)
	assert.Equal(t, "Alice Smith", found[0].Name)

	s.Remove(101)
	_, ok = s.Get(101)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
	assertInvariants(t, s)
}
