package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Clean(t *testing.T) {
	repo, _ := newTestRepository(t)

	status, err := repo.Status()
	require.NoError(t, err)
	assert.Equal(t, &Status{CurrentBranch: "main", Branches: []string{"main"}}, status)
}

func TestStatus_AllSections(t *testing.T) {
	repo, root := newTestRepository(t)
	writeFile(t, root, "tracked-mod.txt", "v1")
	writeFile(t, root, "tracked-del.txt", "v1")
	writeFile(t, root, "removed.txt", "v1")
	writeFile(t, root, "clean.txt", "v1")
	for _, name := range []string{"tracked-mod.txt", "tracked-del.txt", "removed.txt", "clean.txt"} {
		require.NoError(t, repo.Add(name))
	}
	_, err := repo.Commit("base")
	require.NoError(t, err)

	mustBranch(t, repo, "other")

	writeFile(t, root, "staged.txt", "s")
	require.NoError(t, repo.Add("staged.txt"))
	writeFile(t, root, "staged-then-edited.txt", "s1")
	require.NoError(t, repo.Add("staged-then-edited.txt"))
	writeFile(t, root, "staged-then-edited.txt", "s2")
	writeFile(t, root, "staged-then-deleted.txt", "s")
	require.NoError(t, repo.Add("staged-then-deleted.txt"))
	require.NoError(t, os.Remove(filepath.Join(root, "staged-then-deleted.txt")))

	require.NoError(t, repo.Remove("removed.txt"))
	writeFile(t, root, "tracked-mod.txt", "v2")
	require.NoError(t, os.Remove(filepath.Join(root, "tracked-del.txt")))
	writeFile(t, root, "untracked.txt", "u")

	status, err := repo.Status()
	require.NoError(t, err)

	assert.Equal(t, "main", status.CurrentBranch)
	assert.Equal(t, []string{"main", "other"}, status.Branches)
	assert.Equal(t, []string{"staged-then-deleted.txt", "staged-then-edited.txt", "staged.txt"}, status.Staged)
	assert.Equal(t, []string{"removed.txt"}, status.Removed)
	assert.Equal(t, []FileChange{
		{Name: "staged-then-deleted.txt", Kind: Deleted},
		{Name: "staged-then-edited.txt", Kind: Modified},
		{Name: "tracked-del.txt", Kind: Deleted},
		{Name: "tracked-mod.txt", Kind: Modified},
	}, status.Modified)
	assert.Equal(t, []string{"untracked.txt"}, status.Untracked)
}

// TestStatus_RecreatedAfterRemoval verifies a removed file written back to
// disk shows up as untracked.
func TestStatus_RecreatedAfterRemoval(t *testing.T) {
	repo, root := newTestRepository(t)
	commitFile(t, repo, "f.txt", "v1", "base")

	require.NoError(t, repo.Remove("f.txt"))
	writeFile(t, root, "f.txt", "v2")

	status, err := repo.Status()
	require.NoError(t, err)
	assert.Equal(t, []string{"f.txt"}, status.Removed)
	assert.Equal(t, []string{"f.txt"}, status.Untracked)
	assert.Empty(t, status.Modified)
}
