package refs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KostasZigo/gitlet/internal/constants"
	"github.com/KostasZigo/gitlet/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	gitletDir := filepath.Join(t.TempDir(), constants.Gitlet)
	require.NoError(t, os.MkdirAll(filepath.Join(gitletDir, constants.Refs, constants.Heads), constants.DirPerms))
	return NewStore(gitletDir, nil), gitletDir
}

func TestStore_Init(t *testing.T) {
	store, gitletDir := newTestStore(t)
	commit := testutils.RandomHash()

	require.NoError(t, store.Init("main", commit))

	testutils.AssertFileContent(t, filepath.Join(gitletDir, constants.Head), "ref: refs/heads/main\n")
	testutils.AssertFileContent(t, filepath.Join(gitletDir, "refs", "heads", "main"), commit+"\n")

	head, err := store.Head()
	require.NoError(t, err)
	assert.Equal(t, &Branch{Name: "main", CommitHash: commit, IsHead: true}, head)
}

// TestStore_SingleHead verifies exactly one listed branch carries IsHead.
func TestStore_SingleHead(t *testing.T) {
	store, _ := newTestStore(t)
	commit := testutils.RandomHash()
	require.NoError(t, store.Init("main", commit))
	require.NoError(t, store.Create("feature", commit))
	require.NoError(t, store.Create("bugfix", commit))

	require.NoError(t, store.SetHead("feature"))

	branches, err := store.List()
	require.NoError(t, err)
	require.Len(t, branches, 3)

	var names, heads []string
	for _, b := range branches {
		names = append(names, b.Name)
		if b.IsHead {
			heads = append(heads, b.Name)
		}
	}
	assert.Equal(t, []string{"bugfix", "feature", "main"}, names)
	assert.Equal(t, []string{"feature"}, heads)
}

func TestStore_CreateDuplicate(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Init("main", testutils.RandomHash()))

	err := store.Create("main", testutils.RandomHash())
	assert.ErrorIs(t, err, ErrBranchExists)
}

func TestStore_UpdateAndDelete(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Init("main", testutils.RandomHash()))
	require.NoError(t, store.Create("other", testutils.RandomHash()))

	next := testutils.RandomHash()
	require.NoError(t, store.Update("other", next))
	other, err := store.Get("other")
	require.NoError(t, err)
	assert.Equal(t, next, other.CommitHash)
	assert.False(t, other.IsHead)

	require.NoError(t, store.Delete("other"))
	assert.False(t, store.Exists("other"))

	_, err = store.Get("other")
	assert.ErrorIs(t, err, ErrBranchNotFound)
	assert.ErrorIs(t, store.Delete("other"), ErrBranchNotFound)
	assert.ErrorIs(t, store.Update("other", next), ErrBranchNotFound)
}

func TestStore_SetHeadUnknown(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Init("main", testutils.RandomHash()))

	assert.ErrorIs(t, store.SetHead("ghost"), ErrBranchNotFound)

	name, err := store.HeadName()
	require.NoError(t, err)
	assert.Equal(t, "main", name)
}

func TestValidateName(t *testing.T) {
	for _, name := range []string{"", ".hidden", "a/b", "with space", "back\\slash"} {
		assert.ErrorIs(t, ValidateName(name), ErrInvalidName, name)
	}
	for _, name := range []string{"main", "feature-1", "v2.0"} {
		assert.NoError(t, ValidateName(name), name)
	}
}

// TestStore_CorruptRefs verifies damaged HEAD and branch files are reported.
func TestStore_CorruptRefs(t *testing.T) {
	store, gitletDir := newTestStore(t)
	require.NoError(t, store.Init("main", testutils.RandomHash()))

	testutils.CreateTestFile(t, filepath.Join(gitletDir, "refs", "heads"), "broken", []byte("not-a-hash\n"))
	_, err := store.Get("broken")
	assert.ErrorContains(t, err, "invalid commit id")

	testutils.CreateTestFile(t, gitletDir, constants.Head, []byte("garbage"))
	_, err = store.HeadName()
	assert.ErrorContains(t, err, "invalid HEAD content")
}
