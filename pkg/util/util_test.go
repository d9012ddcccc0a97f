package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatch(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	chunks := Batch(items, 2)
	require.Len(t, chunks, 3)
	assert.Equal(t, []int{5}, chunks[2])

	assert.Equal(t, [][]int{items}, Batch(items, 0))
	assert.Nil(t, Batch([]int{}, 0))
	assert.Nil(t, Batch([]int(nil), 3))
}

func TestBatchCopiesChunks(t *testing.T) {
	items := []string{"a", "b", "c"}
	chunks := Batch(items, 2)
	chunks[0][0] = "z"
	assert.Equal(t, "a", items[0])
}

func TestFingerprintIsStable(t *testing.T) {
	a, err := Fingerprint(map[string]any{"b": 2, "a": 1})
	require.NoError(t, err)
	b, err := Fingerprint(map[string]any{"a": 1, "b": 2})
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	c, err := Fingerprint(map[string]any{"a": 1, "b": 3})
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestFingerprintRejectsUnencodable(t *testing.T) {
	_, err := Fingerprint(func() {})
	assert.Error(t, err)
}
