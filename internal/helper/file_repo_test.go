package helper

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yulcat/help-rota/internal/store"
)

type capturePub struct {
	count int
}

func (p *capturePub) Publish(string, any) { p.count++ }

func TestFileRepo_RegisterTrimsAndDeduplicates(t *testing.T) {
	st, err := store.New(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	pub := &capturePub{}
	repo := NewFileRepo(st, pub)

	first, err := repo.Register("  Sam ")
	require.NoError(t, err)
	assert.Equal(t, "Sam", first.Name)
	assert.False(t, first.JoinedAt.IsZero())
	assert.Equal(t, 1, pub.count)

	again, err := repo.Register("Sam")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Len(t, repo.List(), 1)
	// The idempotent branch is a pure read: no broadcast.
	assert.Equal(t, 1, pub.count)
}

func TestFileRepo_RegisterBlankName(t *testing.T) {
	st, err := store.New(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	repo := NewFileRepo(st, nil)

	_, err = repo.Register("   ")
	assert.ErrorIs(t, err, ErrBlankName)
	assert.Empty(t, repo.List())
}

func TestFileRepo_PersistsAcrossReopen(t *testing.T) {
	st, err := store.New(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	repo := NewFileRepo(st, nil)
	sam, err := repo.Register("Sam")
	require.NoError(t, err)
	_, err = repo.Register("Kim")
	require.NoError(t, err)

	reopened := NewFileRepo(st, nil)
	list := reopened.List()
	require.Len(t, list, 2)
	assert.Equal(t, sam.ID, list[0].ID)

	// Dedup keeps working against the reloaded roster.
	again, err := reopened.Register("Sam")
	require.NoError(t, err)
	assert.Equal(t, sam.ID, again.ID)
	assert.Len(t, reopened.List(), 2)
}
