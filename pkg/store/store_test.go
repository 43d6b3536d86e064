package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundedPutGet(t *testing.T) {
	s := NewBounded[string]()

	require.NoError(t, s.Put("a", "alpha"))
	require.NoError(t, s.Put("b", "beta"))

	v, ok := s.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "alpha", v)

	_, ok = s.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, 2, s.Len())
}

func TestBoundedUpsertKeepsPosition(t *testing.T) {
	s := NewBounded[int]()

	require.NoError(t, s.Put("a", 1))
	require.NoError(t, s.Put("b", 2))
	require.NoError(t, s.Put("a", 10))

	assert.Equal(t, []string{"a", "b"}, s.Keys())
	assert.Equal(t, []int{10, 2}, s.Values())
	assert.Equal(t, 2, s.Len())
}

func TestBoundedCapacityEviction(t *testing.T) {
	var evicted []string
	s := NewBounded[int](
		WithCapacity[int](3),
		WithOnEvict[int](func(key string, _ int) {
			evicted = append(evicted, key)
		}),
	)

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Put(fmt.Sprintf("k%d", i), i))
	}

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"k0", "k1"}, evicted, "oldest entries evicted first")
	assert.Equal(t, []string{"k2", "k3", "k4"}, s.Keys())
}

func TestBoundedMaxAgeExpiry(t *testing.T) {
	var evicted []string
	s := NewBounded[int](
		WithMaxAge[int](10*time.Millisecond),
		WithOnEvict[int](func(key string, _ int) {
			evicted = append(evicted, key)
		}),
	)

	require.NoError(t, s.Put("old", 1))
	time.Sleep(20 * time.Millisecond)

	_, ok := s.Get("old")
	assert.False(t, ok)

	assert.Equal(t, 0, s.Len())
	assert.Contains(t, evicted, "old")
}

func TestBoundedDeleteAndClear(t *testing.T) {
	s := NewBounded[int]()

	require.NoError(t, s.Put("a", 1))
	require.NoError(t, s.Put("b", 2))

	require.NoError(t, s.Delete("a"))
	assert.Equal(t, 1, s.Len())
	// Deleting a missing key is not an error
	require.NoError(t, s.Delete("a"))

	require.NoError(t, s.Clear())
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Keys())
}

func TestBoundedInsertionOrder(t *testing.T) {
	s := NewBounded[int]()

	require.NoError(t, s.Put("first", 1))
	require.NoError(t, s.Put("second", 2))
	require.NoError(t, s.Put("third", 3))

	assert.Equal(t, []string{"first", "second", "third"}, s.Keys())
	assert.Equal(t, []int{1, 2, 3}, s.Values())
}
