package seedstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomagicln/quickprop/pkg/check"
	"github.com/nomagicln/quickprop/pkg/prop"
	"github.com/nomagicln/quickprop/pkg/rng"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "failures.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPutGetRoundTrip(t *testing.T) {
	s := openTestStore(t)

	seed := rng.FromInt64(42)
	require.NoError(t, s.Put("list reversal", seed, []any{1, "ab"}))

	got, found, err := s.Get("list reversal")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, seed, got)
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)
	_, found, err := s.Get("never recorded")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPutReplacesPrevious(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Put("p", rng.FromInt64(1), nil))
	require.NoError(t, s.Put("p", rng.FromInt64(2), nil))

	got, found, err := s.Get("p")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, rng.FromInt64(2), got)
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Put("p", rng.FromInt64(1), nil))
	require.NoError(t, s.Delete("p"))

	_, found, err := s.Get("p")
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting a missing entry is not an error.
	require.NoError(t, s.Delete("p"))
}

func TestStorePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "failures.db")

	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Put("p", rng.FromInt64(7), []any{80}))
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	defer second.Close()

	got, found, err := second.Get("p")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, rng.FromInt64(7), got)
}

func TestCheckRecordsFalsification(t *testing.T) {
	s := openTestStore(t)
	cfg := check.DefaultConfig().WithMaxTest(5000).WithEndSize(1000)

	res, err := s.Check("x below 80", prop.ForAll(func(x int) bool { return x < 80 }), cfg)
	require.NoError(t, err)
	require.Equal(t, check.Falsifiable, res.Status)

	stored, found, err := s.Get("x below 80")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, res.Seed, stored)
}

func TestCheckReplaysStoredSeedFirst(t *testing.T) {
	s := openTestStore(t)
	cfg := check.DefaultConfig().WithMaxTest(5000).WithEndSize(1000)
	condition := func(x int) bool { return x < 80 }

	first, err := s.Check("x below 80", prop.ForAll(condition), cfg)
	require.NoError(t, err)
	require.Equal(t, check.Falsifiable, first.Status)

	// The second run replays the recorded seed and reproduces the
	// failure exactly, including the shrunk arguments.
	second, err := s.Check("x below 80", prop.ForAll(condition), cfg)
	require.NoError(t, err)
	assert.Equal(t, check.Falsifiable, second.Status)
	assert.Equal(t, first.Seed, second.Seed)
	assert.Equal(t, first.Args, second.Args)
}

func TestCheckClearsStaleEntryOnPass(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Put("fixed property", rng.FromInt64(5), nil))

	res, err := s.Check("fixed property", prop.ForAll(func(x int) bool { return true }), check.DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, check.Success, res.Status)

	_, found, err := s.Get("fixed property")
	require.NoError(t, err)
	assert.False(t, found, "stale failure entry should be cleared once the property passes")
}
