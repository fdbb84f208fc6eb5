package repository

import (
	"errors"

	"github.com/KostasZigo/gitlet/internal/apperr"
	"github.com/KostasZigo/gitlet/internal/objects"
	"github.com/KostasZigo/gitlet/internal/refs"
	"go.uber.org/zap"
)

// CheckoutFile restores name from the current commit.
func (r *Repository) CheckoutFile(name string) error {
	head, err := r.CurrentCommit()
	if err != nil {
		return err
	}
	return r.restoreFile(head, name)
}

// CheckoutFileAt restores name from the commit identified by prefix.
func (r *Repository) CheckoutFileAt(prefix, name string) error {
	commit, err := r.ResolveCommit(prefix)
	if err != nil {
		return err
	}
	return r.restoreFile(commit, name)
}

// restoreFile overwrites one working file without the untracked scan and
// without touching the staging index.
func (r *Repository) restoreFile(commit *objects.Commit, name string) error {
	hash, ok := commit.BlobHash(name)
	if !ok {
		return apperr.ErrNoSuchFileInCommit
	}
	content, err := r.readBlob(hash)
	if err != nil {
		return err
	}
	return r.worktree.Write(name, content)
}

// CheckoutBranch replaces the working directory with the branch's commit
// and makes it the active branch.
func (r *Repository) CheckoutBranch(name string) error {
	branch, err := r.refs.Get(name)
	if errors.Is(err, refs.ErrBranchNotFound) {
		return apperr.ErrNoSuchBranch
	}
	if err != nil {
		return err
	}
	if branch.IsHead {
		return apperr.ErrAlreadyOnBranch
	}

	target, err := r.objects.ReadCommit(branch.CommitHash)
	if err != nil {
		return err
	}
	if err := r.materialize(target); err != nil {
		return err
	}
	if err := r.refs.SetHead(name); err != nil {
		return err
	}
	r.logger.Debug("Switched branch", zap.String("branch", name), zap.String("commit", target.Hash()))
	return r.index.Clear()
}

// Reset replaces the working directory with the given commit and moves
// the active branch to it.
func (r *Repository) Reset(prefix string) error {
	target, err := r.ResolveCommit(prefix)
	if err != nil {
		return err
	}
	if err := r.materialize(target); err != nil {
		return err
	}
	if err := r.updateActiveBranch(target.Hash()); err != nil {
		return err
	}
	r.logger.Debug("Reset active branch", zap.String("commit", target.Hash()))
	return r.index.Clear()
}

// materialize writes target's files over the working directory once the
// untracked scan passes. All blobs are loaded before anything is deleted.
func (r *Repository) materialize(target *objects.Commit) error {
	tracked, err := r.trackedFunc()
	if err != nil {
		return err
	}

	contents := make(map[string][]byte)
	for name, hash := range target.Files() {
		content, err := r.readBlob(hash)
		if err != nil {
			return err
		}
		contents[name] = content
	}
	return r.worktree.Replace(tracked, contents)
}

// trackedFunc reports whether a working file is staged for addition or
// tracked by the current commit.
func (r *Repository) trackedFunc() (func(string) bool, error) {
	head, err := r.CurrentCommit()
	if err != nil {
		return nil, err
	}
	staging, err := r.index.Snapshot()
	if err != nil {
		return nil, err
	}
	return func(name string) bool {
		_, staged := staging.Additions[name]
		return staged || head.Tracks(name)
	}, nil
}

// CreateBranch adds a branch pointing at the current commit. HEAD stays.
func (r *Repository) CreateBranch(name string) error {
	if err := refs.ValidateName(name); err != nil {
		return apperr.ErrInvalidBranchName
	}
	if r.refs.Exists(name) {
		return apperr.ErrBranchAlreadyExists
	}
	head, err := r.CurrentCommit()
	if err != nil {
		return err
	}
	return r.refs.Create(name, head.Hash())
}

// RemoveBranch deletes a branch pointer; its commits stay in the store.
func (r *Repository) RemoveBranch(name string) error {
	if !r.refs.Exists(name) {
		return apperr.ErrBranchDoesNotExist
	}
	current, err := r.refs.HeadName()
	if err != nil {
		return err
	}
	if current == name {
		return apperr.ErrCannotRemoveActive
	}
	return r.refs.Delete(name)
}
