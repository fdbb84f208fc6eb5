package objects

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/KostasZigo/gitlet/internal/constants"
	"github.com/KostasZigo/gitlet/testutils"
	"github.com/KostasZigo/gitlet/utils"
)

// newTestStore creates an object store over a temporary repository.
func newTestStore(t *testing.T) (*ObjectStore, string) {
	t.Helper()

	repoPath := testutils.SetupTestRepoWithGitletDir(t)
	return NewObjectStore(repoPath), repoPath
}

// objectFilePath returns the on-disk location of hash inside repoPath.
func objectFilePath(repoPath, hash string) string {
	return filepath.Join(repoPath, constants.Gitlet, constants.Objects, hash[:2], hash[2:])
}

// assertBlobHash verifies blob hash matches expected value for given content.
func assertBlobHash(t *testing.T, blob *Blob, content []byte) {
	t.Helper()

	expectedHash, err := utils.ComputeHash(content, utils.BlobObjectType)
	if err != nil {
		t.Fatalf("Hash computation failed: %v", err)
	}

	if blob.Hash() != expectedHash {
		t.Fatalf("Expected hash [%s], got [%s]", expectedHash, blob.Hash())
	}
}

// assertBlobContent verifies blob stores exact content and correct size.
func assertBlobContent(t *testing.T, blob *Blob, expectedContent []byte) {
	t.Helper()

	if blob.Size() != len(expectedContent) {
		t.Fatalf("Expected size %d, got %d", len(expectedContent), blob.Size())
	}

	if string(blob.Content()) != string(expectedContent) {
		t.Fatalf("Expected content [%q], got [%q]", expectedContent, blob.Content())
	}
}

// createTree creates tree from a file mapping and fails test on error.
func createTree(t *testing.T, files map[string]string) *Tree {
	t.Helper()

	tree, err := NewTreeFromFiles(files)
	if err != nil {
		t.Fatalf("Failed to create tree: %v", err)
	}

	return tree
}

// createCommit creates a commit over files and fails test on error.
func createCommit(t *testing.T, files map[string]string, parentHash, mergeParentHash, message string, ts time.Time) *Commit {
	t.Helper()

	commit, err := NewCommit(createTree(t, files), parentHash, mergeParentHash, message, ts)
	if err != nil {
		t.Fatalf("Failed to create commit: %v", err)
	}

	return commit
}

// createAndStoreCommit creates a commit with random content, stores it, and returns it.
func createAndStoreCommit(t *testing.T, store *ObjectStore, parentHash string) *Commit {
	t.Helper()

	blob := NewBlob([]byte(testutils.RandomString(16)))
	if err := store.Store(blob); err != nil {
		t.Fatalf("Failed to store blob: %v", err)
	}

	commit := createCommit(t, map[string]string{"file.txt": blob.Hash()}, parentHash, "",
		testutils.RandomString(10), time.Now().UTC())
	if err := store.StoreCommit(commit); err != nil {
		t.Fatalf("Failed to store commit: %v", err)
	}

	return commit
}

// assertCommitEqual verifies two commits match in all fields.
func assertCommitEqual(t *testing.T, actual, expected *Commit) {
	t.Helper()

	if actual.Hash() != expected.Hash() {
		t.Errorf("Hash mismatch: expected [%s], got [%s]", expected.Hash(), actual.Hash())
	}
	if actual.Tree().Hash() != expected.Tree().Hash() {
		t.Errorf("Tree hash mismatch: expected [%s], got [%s]", expected.Tree().Hash(), actual.Tree().Hash())
	}
	if actual.ParentHash() != expected.ParentHash() {
		t.Errorf("Parent mismatch: expected [%s], got [%s]", expected.ParentHash(), actual.ParentHash())
	}
	if actual.MergeParentHash() != expected.MergeParentHash() {
		t.Errorf("Merge parent mismatch: expected [%s], got [%s]", expected.MergeParentHash(), actual.MergeParentHash())
	}
	if actual.Message() != expected.Message() {
		t.Errorf("Message mismatch: expected [%s], got [%s]", expected.Message(), actual.Message())
	}
	if !actual.Timestamp().Equal(expected.Timestamp()) {
		t.Errorf("Timestamp mismatch: expected [%s], got [%s]",
			expected.Timestamp().Format(time.RFC3339Nano), actual.Timestamp().Format(time.RFC3339Nano))
	}
}

// corruptObject overwrites the stored file for hash with raw bytes.
func corruptObject(t *testing.T, repoPath, hash string, data []byte) {
	t.Helper()

	if err := os.WriteFile(objectFilePath(repoPath, hash), data, constants.FilePerms); err != nil {
		t.Fatalf("Failed to corrupt object: %v", err)
	}
}
