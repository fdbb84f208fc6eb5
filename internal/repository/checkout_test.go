package repository

import (
	"path/filepath"
	"testing"

	"github.com/KostasZigo/gitlet/internal/apperr"
	"github.com/KostasZigo/gitlet/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutFile(t *testing.T) {
	repo, root := newTestRepository(t)
	commitFile(t, repo, "f.txt", "committed", "base")

	writeFile(t, root, "f.txt", "scratch")
	require.NoError(t, repo.Add("f.txt"))

	require.NoError(t, repo.CheckoutFile("f.txt"))
	assertWorkingFile(t, root, "f.txt", "committed")

	// The staged copy is left alone
	status, err := repo.Status()
	require.NoError(t, err)
	assert.Equal(t, []string{"f.txt"}, status.Staged)

	assert.ErrorIs(t, repo.CheckoutFile("absent.txt"), apperr.ErrNoSuchFileInCommit)
}

func TestCheckoutFileAt(t *testing.T) {
	repo, root := newTestRepository(t)
	c1 := commitFile(t, repo, "f.txt", "v1", "one")
	commitFile(t, repo, "f.txt", "v2", "two")

	require.NoError(t, repo.CheckoutFileAt(c1.Hash()[:6], "f.txt"))
	assertWorkingFile(t, root, "f.txt", "v1")

	assert.ErrorIs(t, repo.CheckoutFileAt(c1.Hash(), "absent.txt"), apperr.ErrNoSuchFileInCommit)
	assert.ErrorIs(t, repo.CheckoutFileAt("0000000", "f.txt"), apperr.ErrNoSuchCommit)
}

func TestCheckoutBranch(t *testing.T) {
	repo, root := newTestRepository(t)
	commitFile(t, repo, "shared.txt", "base", "base")
	mustBranch(t, repo, "other")

	commitFile(t, repo, "main-only.txt", "m", "main work")
	writeFile(t, root, "shared.txt", "main edit")
	require.NoError(t, repo.Add("shared.txt"))

	mustCheckout(t, repo, "other")

	assertWorkingFile(t, root, "shared.txt", "base")
	testutils.AssertFileNotExists(t, filepath.Join(root, "main-only.txt"))

	name, err := repo.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "other", name)

	status, err := repo.Status()
	require.NoError(t, err)
	assert.Empty(t, status.Staged)
}

func TestCheckoutBranch_Errors(t *testing.T) {
	repo, _ := newTestRepository(t)

	assert.ErrorIs(t, repo.CheckoutBranch("ghost"), apperr.ErrNoSuchBranch)
	assert.ErrorIs(t, repo.CheckoutBranch("main"), apperr.ErrAlreadyOnBranch)
}

// TestCheckoutBranch_UntrackedFile verifies an untracked file blocks the
// switch and the working directory is left unchanged.
func TestCheckoutBranch_UntrackedFile(t *testing.T) {
	repo, root := newTestRepository(t)
	commitFile(t, repo, "f.txt", "main", "base")
	mustBranch(t, repo, "other")
	writeFile(t, root, "u", "precious")

	err := repo.CheckoutBranch("other")
	assert.ErrorIs(t, err, apperr.ErrUntrackedFile)

	assertWorkingFile(t, root, "u", "precious")
	assertWorkingFile(t, root, "f.txt", "main")
	name, err := repo.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "main", name)
}

func TestReset(t *testing.T) {
	repo, root := newTestRepository(t)
	c1 := commitFile(t, repo, "a.txt", "a1", "one")
	commitFile(t, repo, "b.txt", "b", "two")
	writeFile(t, root, "a.txt", "dirty")
	require.NoError(t, repo.Add("a.txt"))

	require.NoError(t, repo.Reset(c1.Hash()[:10]))

	assertWorkingFile(t, root, "a.txt", "a1")
	testutils.AssertFileNotExists(t, filepath.Join(root, "b.txt"))

	head, err := repo.CurrentCommit()
	require.NoError(t, err)
	assert.Equal(t, c1.Hash(), head.Hash())

	name, err := repo.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "main", name)

	status, err := repo.Status()
	require.NoError(t, err)
	assert.Empty(t, status.Staged)
}

func TestReset_Errors(t *testing.T) {
	repo, root := newTestRepository(t)
	c1 := commitFile(t, repo, "a.txt", "a1", "one")

	assert.ErrorIs(t, repo.Reset("ffffffff"), apperr.ErrNoSuchCommit)

	writeFile(t, root, "u", "untracked")
	assert.ErrorIs(t, repo.Reset(c1.Hash()), apperr.ErrUntrackedFile)
}

func TestBranches(t *testing.T) {
	repo, _ := newTestRepository(t)

	mustBranch(t, repo, "feature")
	assert.ErrorIs(t, repo.CreateBranch("feature"), apperr.ErrBranchAlreadyExists)
	assert.ErrorIs(t, repo.CreateBranch("a/b"), apperr.ErrInvalidBranchName)

	// Creating a branch does not switch to it
	name, err := repo.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "main", name)

	assert.ErrorIs(t, repo.RemoveBranch("main"), apperr.ErrCannotRemoveActive)
	assert.ErrorIs(t, repo.RemoveBranch("ghost"), apperr.ErrBranchDoesNotExist)

	require.NoError(t, repo.RemoveBranch("feature"))
	assert.ErrorIs(t, repo.CheckoutBranch("feature"), apperr.ErrNoSuchBranch)
}
