package accession

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDGenerator(t *testing.T) {
	gen := NewUUIDGenerator()

	first, err := gen.Generate("imaging", "image")
	require.NoError(t, err)
	second, err := gen.Generate("imaging", "image")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(first, "IMAGING-IMAGE-"))
	_, err = uuid.Parse(strings.TrimPrefix(first, "IMAGING-IMAGE-"))
	assert.NoError(t, err)

	_, err = gen.Generate("", "image")
	assert.Error(t, err)
}

func TestSequenceGenerator(t *testing.T) {
	gen := NewSequenceGenerator("TEST")

	first, err := gen.Generate("imaging", "image")
	require.NoError(t, err)
	assert.Equal(t, "TEST-IMAGE-000001", first)

	second, err := gen.Generate("imaging", "image")
	require.NoError(t, err)
	assert.Equal(t, "TEST-IMAGE-000002", second)

	// Counters are independent per object type.
	other, err := gen.Generate("imaging", "study")
	require.NoError(t, err)
	assert.Equal(t, "TEST-STUDY-000001", other)

	_, err = gen.Generate("imaging", "")
	assert.Error(t, err)
}
