package repository

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/KostasZigo/gitlet/internal/apperr"
	"github.com/KostasZigo/gitlet/internal/index"
	"github.com/KostasZigo/gitlet/internal/objects"
	"github.com/KostasZigo/gitlet/internal/worktree"
	"go.uber.org/zap"
)

// Add stages the current contents of a working file. Contents equal to the
// version in the current commit leave the path unstaged.
func (r *Repository) Add(name string) error {
	if !worktree.ValidName(name) || !r.worktree.Exists(name) {
		return apperr.ErrNoSuchFile
	}

	content, err := r.worktree.Read(name)
	if errors.Is(err, fs.ErrNotExist) {
		return apperr.ErrNoSuchFile
	}
	if err != nil {
		return err
	}

	head, err := r.CurrentCommit()
	if err != nil {
		return err
	}
	return r.stage(head, name, content)
}

func (r *Repository) stage(head *objects.Commit, name string, content []byte) error {
	blob := objects.NewBlob(content)
	if tracked, ok := head.BlobHash(name); ok && tracked == blob.Hash() {
		r.logger.Debug("File matches current commit", zap.String("file", name))
		return r.index.Unstage(name)
	}
	return r.index.StageAddition(name, content)
}

// Remove unstages a file and records its removal. The working file is
// deleted only when the current commit tracks it.
func (r *Repository) Remove(name string) error {
	head, err := r.CurrentCommit()
	if err != nil {
		return err
	}

	staged, err := r.index.IsStagedForAddition(name)
	if err != nil {
		return err
	}
	tracked := head.Tracks(name)
	if !staged && !tracked {
		return apperr.ErrNothingToRemove
	}

	if err := r.index.StageRemoval(name); err != nil {
		return err
	}
	if tracked && worktree.ValidName(name) {
		return r.worktree.Remove(name)
	}
	return nil
}

// Commit records the staged changes on top of the current commit.
func (r *Repository) Commit(message string) (*objects.Commit, error) {
	return r.commit(message, "")
}

func (r *Repository) commit(message, mergeParent string) (*objects.Commit, error) {
	if message == "" {
		return nil, apperr.ErrEmptyCommitMessage
	}

	staging, err := r.index.Snapshot()
	if err != nil {
		return nil, err
	}
	if staging.IsEmpty() {
		return nil, apperr.ErrNothingStaged
	}

	parent, err := r.CurrentCommit()
	if err != nil {
		return nil, err
	}

	tree, err := r.buildTree(parent, staging)
	if err != nil {
		return nil, err
	}

	commit, err := objects.NewCommit(tree, parent.Hash(), mergeParent, message, r.now())
	if err != nil {
		return nil, fmt.Errorf("failed to create commit: %w", err)
	}
	if err := r.objects.StoreCommit(commit); err != nil {
		return nil, fmt.Errorf("failed to store commit: %w", err)
	}
	if err := r.updateActiveBranch(commit.Hash()); err != nil {
		return nil, err
	}
	if err := r.index.Clear(); err != nil {
		return nil, err
	}

	r.logger.Debug("Created commit",
		zap.String("commit", commit.Hash()),
		zap.String("parent", parent.Hash()),
		zap.String("merge_parent", mergeParent),
		zap.Int("files", len(tree.Entries())))
	return commit, nil
}

// buildTree carries over the parent's files that are neither staged nor
// removed and stores a blob for every staged addition.
func (r *Repository) buildTree(parent *objects.Commit, staging *index.Staging) (*objects.Tree, error) {
	files := parent.Files()
	for _, name := range staging.Removals {
		delete(files, name)
	}

	for name, content := range staging.Additions {
		blob := objects.NewBlob(content)
		if err := r.objects.Store(blob); err != nil {
			return nil, fmt.Errorf("failed to store blob for %s: %w", name, err)
		}
		files[name] = blob.Hash()
	}

	tree, err := objects.NewTreeFromFiles(files)
	if err != nil {
		return nil, fmt.Errorf("failed to build tree: %w", err)
	}
	return tree, nil
}
