package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/KostasZigo/gitlet/internal/objects"
	"github.com/KostasZigo/gitlet/testutils"
	"go.uber.org/zap"
)

// testClock returns strictly increasing timestamps, one second apart.
func testClock() func() time.Time {
	current := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

// newTestRepository initializes and opens a repository in a temp directory.
func newTestRepository(t *testing.T, opts ...Option) (*Repository, string) {
	t.Helper()

	root := t.TempDir()
	if err := Init(root); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	opts = append([]Option{WithLogger(zap.NewNop()), WithClock(testClock())}, opts...)
	repo, err := Open(root, opts...)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	return repo, root
}

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()
	testutils.CreateTestFile(t, root, name, []byte(content))
}

// commitFile writes, stages and commits one file.
func commitFile(t *testing.T, repo *Repository, name, content, message string) *objects.Commit {
	t.Helper()

	writeFile(t, repo.Root(), name, content)
	if err := repo.Add(name); err != nil {
		t.Fatalf("Add(%s) failed: %v", name, err)
	}
	commit, err := repo.Commit(message)
	if err != nil {
		t.Fatalf("Commit(%q) failed: %v", message, err)
	}
	return commit
}

func mustCheckout(t *testing.T, repo *Repository, branch string) {
	t.Helper()
	if err := repo.CheckoutBranch(branch); err != nil {
		t.Fatalf("CheckoutBranch(%s) failed: %v", branch, err)
	}
}

func mustBranch(t *testing.T, repo *Repository, branch string) {
	t.Helper()
	if err := repo.CreateBranch(branch); err != nil {
		t.Fatalf("CreateBranch(%s) failed: %v", branch, err)
	}
}

func assertWorkingFile(t *testing.T, root, name, want string) {
	t.Helper()
	testutils.AssertFileContent(t, filepath.Join(root, name), want)
}
