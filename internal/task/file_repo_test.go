package task

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yulcat/help-rota/internal/store"
)

type capturePub struct {
	channels []string
}

func (p *capturePub) Publish(channel string, payload any) {
	p.channels = append(p.channels, channel)
}

func newTestRepo(t *testing.T) (*FileRepo, *capturePub) {
	t.Helper()
	st, err := store.New(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	pub := &capturePub{}
	return NewFileRepo(st, pub), pub
}

func TestFileRepo_CreateRequiresTitle(t *testing.T) {
	repo, pub := newTestRepo(t)

	_, err := repo.Create(CreateInput{Title: "   "})
	assert.ErrorIs(t, err, ErrEmptyTitle)
	assert.Empty(t, repo.List())
	assert.Empty(t, pub.channels)
}

func TestFileRepo_CreatePrependsNewestFirst(t *testing.T) {
	repo, pub := newTestRepo(t)

	first, err := repo.Create(CreateInput{Title: "older"})
	require.NoError(t, err)
	second, err := repo.Create(CreateInput{Title: "newer", Category: "errands"})
	require.NoError(t, err)

	list := repo.List()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	assert.Equal(t, DefaultCategory, first.Category)
	assert.Equal(t, "errands", second.Category)
	assert.Equal(t, []string{Channel, Channel}, pub.channels)
}

func TestFileRepo_ClaimCompleteUnclaimLifecycle(t *testing.T) {
	repo, _ := newTestRepo(t)

	created, err := repo.Create(CreateInput{Title: "buy milk"})
	require.NoError(t, err)
	assert.Equal(t, StatusWaiting, created.Status)
	assert.Nil(t, created.ClaimedBy)
	assert.Nil(t, created.ClaimedAt)

	claimed, err := repo.Claim(created.ID, "Sam")
	require.NoError(t, err)
	assert.Equal(t, StatusReserved, claimed.Status)
	require.NotNil(t, claimed.ClaimedBy)
	assert.Equal(t, "Sam", *claimed.ClaimedBy)
	assert.NotNil(t, claimed.ClaimedAt)

	done, err := repo.Complete(created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusDone, done.Status)
	assert.NotNil(t, done.CompletedAt)
	require.NotNil(t, done.ClaimedBy)
	assert.Equal(t, "Sam", *done.ClaimedBy)

	back, err := repo.Unclaim(created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusWaiting, back.Status)
	assert.Nil(t, back.ClaimedBy)
	assert.Nil(t, back.ClaimedAt)
	// Unclaiming a done task does not clear the completion timestamp.
	assert.NotNil(t, back.CompletedAt)
}

func TestFileRepo_ClaimFieldsAreCoPresent(t *testing.T) {
	repo, _ := newTestRepo(t)

	created, err := repo.Create(CreateInput{Title: "rake leaves"})
	require.NoError(t, err)

	_, err = repo.Claim(created.ID, "Kim")
	require.NoError(t, err)
	_, err = repo.Claim(created.ID, "Lee") // re-claim overwrites, last write wins
	require.NoError(t, err)

	for _, tk := range repo.List() {
		assert.Equal(t, tk.ClaimedBy == nil, tk.ClaimedAt == nil)
	}
	got := repo.List()[0]
	require.NotNil(t, got.ClaimedBy)
	assert.Equal(t, "Lee", *got.ClaimedBy)
}

func TestFileRepo_TransitionsOnMissingID(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.Claim("task_missing", "Sam")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.Unclaim("task_missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.Complete("task_missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.Update("task_missing", Patch{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileRepo_DeleteIsIdempotent(t *testing.T) {
	repo, pub := newTestRepo(t)

	created, err := repo.Create(CreateInput{Title: "water plants"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(created.ID))
	assert.Empty(t, repo.List())

	published := len(pub.channels)
	require.NoError(t, repo.Delete(created.ID))
	assert.Empty(t, repo.List())
	// The no-op branch neither saves nor broadcasts.
	assert.Len(t, pub.channels, published)
}

func TestFileRepo_UpdateIsRawOverwrite(t *testing.T) {
	repo, _ := newTestRepo(t)

	created, err := repo.Create(CreateInput{Title: "shopping"})
	require.NoError(t, err)

	title := "weekly shopping"
	status := StatusDone
	updated, err := repo.Update(created.ID, Patch{Title: &title, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "weekly shopping", updated.Title)
	// The escape hatch bypasses the state machine: status flips without
	// completedAt being set.
	assert.Equal(t, StatusDone, updated.Status)
	assert.Nil(t, updated.CompletedAt)
}

func TestFileRepo_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	st, err := store.New(dir, zerolog.Nop())
	require.NoError(t, err)

	repo := NewFileRepo(st, nil)
	created, err := repo.Create(CreateInput{Title: "carry boxes", Twin: "pairs with attic clearout"})
	require.NoError(t, err)
	_, err = repo.Claim(created.ID, "Sam")
	require.NoError(t, err)

	reopened := NewFileRepo(st, nil)
	list := reopened.List()
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
	assert.Equal(t, StatusReserved, list[0].Status)
	require.NotNil(t, list[0].ClaimedBy)
	assert.Equal(t, "Sam", *list[0].ClaimedBy)
	assert.Equal(t, "pairs with attic clearout", list[0].Twin)
}
