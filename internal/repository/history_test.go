package repository

import (
	"testing"

	"github.com/KostasZigo/gitlet/internal/apperr"
	"github.com/KostasZigo/gitlet/internal/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_FirstParentChain(t *testing.T) {
	repo, _ := newTestRepository(t)
	c1 := commitFile(t, repo, "a.txt", "1", "one")
	c2 := commitFile(t, repo, "a.txt", "2", "two")

	history, err := repo.Log()
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, c2.Hash(), history[0].Hash())
	assert.Equal(t, c1.Hash(), history[1].Hash())
	assert.Equal(t, constants.InitialCommitMessage, history[2].Message())
}

// TestGlobalLog_IncludesOtherBranches verifies commits unreachable from HEAD
// are still listed.
func TestGlobalLog_IncludesOtherBranches(t *testing.T) {
	repo, _ := newTestRepository(t)
	mustBranch(t, repo, "side")
	mainCommit := commitFile(t, repo, "a.txt", "main", "on main")
	mustCheckout(t, repo, "side")
	sideCommit := commitFile(t, repo, "b.txt", "side", "on side")

	commits, err := repo.GlobalLog()
	require.NoError(t, err)

	var ids []string
	for _, commit := range commits {
		ids = append(ids, commit.Hash())
	}
	assert.Len(t, ids, 3)
	assert.Contains(t, ids, mainCommit.Hash())
	assert.Contains(t, ids, sideCommit.Hash())
	assert.IsIncreasing(t, ids)
}

func TestFind(t *testing.T) {
	repo, _ := newTestRepository(t)
	c1 := commitFile(t, repo, "a.txt", "1", "same message")
	c2 := commitFile(t, repo, "a.txt", "2", "same message")
	commitFile(t, repo, "a.txt", "3", "different")

	ids, err := repo.Find("same message")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{c1.Hash(), c2.Hash()}, ids)

	_, err = repo.Find("same")
	assert.ErrorIs(t, err, apperr.ErrNoMatchingCommit)
}
