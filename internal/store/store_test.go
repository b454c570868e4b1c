package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LoadMissingLeavesFallback(t *testing.T) {
	st, err := New(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	doc := []string{"fallback"}
	found := st.Load("tasks", &doc)
	assert.False(t, found)
	assert.Equal(t, []string{"fallback"}, doc)
}

func TestStore_SaveThenLoad(t *testing.T) {
	st, err := New(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	in := map[string]string{"pin": "1234"}
	require.NoError(t, st.Save("config", in))

	var out map[string]string
	found := st.Load("config", &out)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestStore_UnparsableDocumentDegradesToFallback(t *testing.T) {
	dir := t.TempDir()
	st, err := New(dir, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "tasks.json"), []byte("{garbage"), 0o644))

	doc := []int{}
	found := st.Load("tasks", &doc)
	assert.False(t, found)
	assert.Empty(t, doc)
}
