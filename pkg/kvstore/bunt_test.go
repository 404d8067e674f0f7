package kvstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuntGetSetDelete(t *testing.T) {
	ctx := context.Background()
	s, err := OpenBunt(Memory)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "k", "v1"))
	require.NoError(t, s.Set(ctx, "k", "v2"))
	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", v)

	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, s.Delete(ctx, "k"), "deleting twice is fine")
}

func TestBuntListByPrefix(t *testing.T) {
	ctx := context.Background()
	s, err := OpenBunt(Memory)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set(ctx, "ticket:2:5", "b"))
	require.NoError(t, s.Set(ctx, "ticket:2:1", "a"))
	require.NoError(t, s.Set(ctx, "ticket:3:1", "c"))
	require.NoError(t, s.Set(ctx, "other", "x"))

	got, err := s.List(ctx, "ticket:2:")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestBuntSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.db")

	s, err := OpenBunt(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "eventHubUser", `{"id":"1"}`))
	require.NoError(t, s.Close())

	s, err = OpenBunt(path)
	require.NoError(t, err)
	defer s.Close()
	v, err := s.Get(ctx, "eventHubUser")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"1"}`, v)
}
