package index

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()

	idx, err := OpenInMemory(nil)
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	return idx
}

func TestIndex_StageAddition(t *testing.T) {
	idx := newTestIndex(t)

	require.NoError(t, idx.StageAddition("a.txt", []byte("alpha")))

	content, ok, err := idx.Addition("a.txt")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("alpha"), content)

	// Restaging replaces the bytes
	require.NoError(t, idx.StageAddition("a.txt", []byte("beta")))
	content, _, err = idx.Addition("a.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("beta"), content)
}

func TestIndex_EmptyFile(t *testing.T) {
	idx := newTestIndex(t)

	require.NoError(t, idx.StageAddition("empty", nil))

	content, ok, err := idx.Addition("empty")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, content)
}

// TestIndex_SetsAreDisjoint verifies staging one way cancels the other.
func TestIndex_SetsAreDisjoint(t *testing.T) {
	idx := newTestIndex(t)

	require.NoError(t, idx.StageAddition("f", []byte("x")))
	require.NoError(t, idx.StageRemoval("f"))

	added, err := idx.IsStagedForAddition("f")
	require.NoError(t, err)
	assert.False(t, added)
	removed, err := idx.Snapshot()
	require.NoError(t, err)
	assert.True(t, removed.IsRemoved("f"))

	require.NoError(t, idx.StageAddition("f", []byte("y")))

	snapshot, err := idx.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"f": []byte("y")}, snapshot.Additions)
	assert.Empty(t, snapshot.Removals)
}

func TestIndex_Unstage(t *testing.T) {
	idx := newTestIndex(t)

	require.NoError(t, idx.StageAddition("a", []byte("1")))
	require.NoError(t, idx.StageRemoval("b"))
	require.NoError(t, idx.Unstage("a"))
	require.NoError(t, idx.Unstage("b"))
	require.NoError(t, idx.Unstage("never-staged"))

	snapshot, err := idx.Snapshot()
	require.NoError(t, err)
	assert.True(t, snapshot.IsEmpty())
}

func TestIndex_SnapshotAndClear(t *testing.T) {
	idx := newTestIndex(t)

	require.NoError(t, idx.StageAddition("b.txt", []byte("b")))
	require.NoError(t, idx.StageAddition("a.txt", []byte("a")))
	require.NoError(t, idx.StageRemoval("z.txt"))
	require.NoError(t, idx.StageRemoval("c.txt"))

	snapshot, err := idx.Snapshot()
	require.NoError(t, err)
	assert.Len(t, snapshot.Additions, 2)
	assert.Equal(t, []string{"c.txt", "z.txt"}, snapshot.Removals)
	assert.True(t, snapshot.IsRemoved("z.txt"))
	assert.False(t, snapshot.IsRemoved("a.txt"))

	require.NoError(t, idx.Clear())

	snapshot, err = idx.Snapshot()
	require.NoError(t, err)
	assert.True(t, snapshot.IsEmpty())
}

// TestIndex_Persistence verifies staged entries survive reopening the database.
func TestIndex_Persistence(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "index")

	idx, err := Open(dir, nil)
	require.NoError(t, err)
	require.NoError(t, idx.StageAddition("kept.txt", []byte("kept")))
	require.NoError(t, idx.StageRemoval("gone.txt"))
	require.NoError(t, idx.Close())

	reopened, err := Open(dir, nil)
	require.NoError(t, err)
	defer reopened.Close()

	snapshot, err := reopened.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"kept.txt": []byte("kept")}, snapshot.Additions)
	assert.Equal(t, []string{"gone.txt"}, snapshot.Removals)
}
