package repository

import (
	"errors"
	"fmt"

	"github.com/KostasZigo/gitlet/internal/apperr"
	"github.com/KostasZigo/gitlet/internal/constants"
	"github.com/KostasZigo/gitlet/internal/merge"
	"github.com/KostasZigo/gitlet/internal/objects"
	"github.com/KostasZigo/gitlet/internal/refs"
	"go.uber.org/zap"
)

// MergeResult describes the outcome of a successful merge. Commit is nil
// for a fast-forward.
type MergeResult struct {
	FastForward bool
	Conflict    bool
	Base        string
	Commit      *objects.Commit
}

// Merge merges the named branch into the active one.
func (r *Repository) Merge(branchName string) (*MergeResult, error) {
	tracked, err := r.trackedFunc()
	if err != nil {
		return nil, err
	}
	if err := r.worktree.CheckUntracked(tracked); err != nil {
		return nil, err
	}

	staging, err := r.index.Snapshot()
	if err != nil {
		return nil, err
	}
	if !staging.IsEmpty() {
		return nil, apperr.ErrUncommittedChanges
	}

	branch, err := r.refs.Get(branchName)
	if errors.Is(err, refs.ErrBranchNotFound) {
		return nil, apperr.ErrBranchDoesNotExist
	}
	if err != nil {
		return nil, err
	}
	if branch.IsHead {
		return nil, apperr.ErrCannotMergeSelf
	}

	currentName, err := r.refs.HeadName()
	if err != nil {
		return nil, err
	}
	head, err := r.CurrentCommit()
	if err != nil {
		return nil, err
	}
	other, err := r.objects.ReadCommit(branch.CommitHash)
	if err != nil {
		return nil, err
	}

	resolver := r.resolver()
	merged, err := resolver.IsAncestor(other.Hash(), head.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to walk history: %w", err)
	}
	if merged {
		return nil, apperr.ErrBranchIsAncestor
	}

	base, err := resolver.Base(head.Hash(), other.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to find merge base: %w", err)
	}
	if base == head.Hash() {
		if err := r.CheckoutBranch(branchName); err != nil {
			return nil, err
		}
		return &MergeResult{FastForward: true, Base: base}, nil
	}

	split, err := r.objects.ReadCommit(base)
	if err != nil {
		return nil, err
	}

	conflict, err := r.applyMerge(head, merge.Classify(split.Files(), head.Files(), other.Files()))
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf(constants.MergeCommitFormat, branchName, currentName)
	commit, err := r.commit(message, other.Hash())
	if err != nil {
		return nil, err
	}

	return &MergeResult{Conflict: conflict, Base: base, Commit: commit}, nil
}

// applyMerge writes and stages every change and reports whether any path
// conflicted.
func (r *Repository) applyMerge(head *objects.Commit, changes []merge.Change) (bool, error) {
	var conflict bool

	for _, change := range changes {
		r.logger.Debug("Merge action",
			zap.String("file", change.Path),
			zap.Stringer("action", change.Action))

		switch change.Action {
		case merge.TakeOther, merge.AddFromOther:
			content, err := r.readBlob(change.OtherBlob)
			if err != nil {
				return false, err
			}
			if err := r.writeAndStage(head, change.Path, content); err != nil {
				return false, err
			}

		case merge.Remove:
			if err := r.Remove(change.Path); err != nil {
				return false, err
			}

		case merge.Conflict:
			headContent, err := r.readBlob(change.HeadBlob)
			if err != nil {
				return false, err
			}
			otherContent, err := r.readBlob(change.OtherBlob)
			if err != nil {
				return false, err
			}
			if err := r.writeAndStage(head, change.Path, merge.ConflictContent(headContent, otherContent)); err != nil {
				return false, err
			}
			conflict = true
		}
	}
	return conflict, nil
}

func (r *Repository) writeAndStage(head *objects.Commit, name string, content []byte) error {
	if err := r.worktree.Write(name, content); err != nil {
		return err
	}
	return r.stage(head, name, content)
}
