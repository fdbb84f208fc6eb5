package repository

import (
	"slices"
	"strings"

	"github.com/KostasZigo/gitlet/internal/apperr"
	"github.com/KostasZigo/gitlet/internal/objects"
)

// Log returns the first-parent history of the current commit, newest first.
func (r *Repository) Log() ([]*objects.Commit, error) {
	commit, err := r.CurrentCommit()
	if err != nil {
		return nil, err
	}

	history := []*objects.Commit{commit}
	for !commit.IsInitialCommit() {
		if commit, err = r.objects.ReadCommit(commit.ParentHash()); err != nil {
			return nil, err
		}
		history = append(history, commit)
	}
	return history, nil
}

// GlobalLog returns every commit ever made, ordered by id.
func (r *Repository) GlobalLog() ([]*objects.Commit, error) {
	commits, err := r.objects.Commits()
	if err != nil {
		return nil, err
	}
	slices.SortFunc(commits, func(a, b *objects.Commit) int {
		return strings.Compare(a.Hash(), b.Hash())
	})
	return commits, nil
}

// Find returns the ids of the commits whose message is exactly message.
func (r *Repository) Find(message string) ([]string, error) {
	commits, err := r.GlobalLog()
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, commit := range commits {
		if commit.Message() == message {
			ids = append(ids, commit.Hash())
		}
	}
	if len(ids) == 0 {
		return nil, apperr.ErrNoMatchingCommit
	}
	return ids, nil
}
