package merge

import (
	"fmt"
	"testing"
	"time"

	"github.com/KostasZigo/gitlet/internal/objects"
)

// memoryGraph is an in-memory CommitReader that counts reads.
type memoryGraph struct {
	commits map[string]*objects.Commit
	reads   map[string]int
	clock   time.Time
}

func newMemoryGraph() *memoryGraph {
	return &memoryGraph{
		commits: make(map[string]*objects.Commit),
		reads:   make(map[string]int),
		clock:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (g *memoryGraph) ReadCommit(hash string) (*objects.Commit, error) {
	g.reads[hash]++
	commit, ok := g.commits[hash]
	if !ok {
		return nil, fmt.Errorf("%w: %s", objects.ErrObjectNotFound, hash)
	}
	return commit, nil
}

// commit adds a commit with the given parents and returns its id.
func (g *memoryGraph) commit(t *testing.T, message, parent, mergeParent string) string {
	t.Helper()

	tree, err := objects.NewTree(nil)
	if err != nil {
		t.Fatalf("Failed to create tree: %v", err)
	}

	g.clock = g.clock.Add(time.Minute)
	commit, err := objects.NewCommit(tree, parent, mergeParent, message, g.clock)
	if err != nil {
		t.Fatalf("Failed to create commit %q: %v", message, err)
	}
	g.commits[commit.Hash()] = commit
	return commit.Hash()
}
