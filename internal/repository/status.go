package repository

import (
	"bytes"
	"slices"

	"github.com/KostasZigo/gitlet/internal/objects"
)

type ChangeKind string

const (
	Modified ChangeKind = "modified"
	Deleted  ChangeKind = "deleted"
)

// FileChange is a working-directory difference that is not staged.
type FileChange struct {
	Name string
	Kind ChangeKind
}

// Status describes branches, staged state and the working directory.
// Every list is sorted.
type Status struct {
	CurrentBranch string
	Branches      []string
	Staged        []string
	Removed       []string
	Modified      []FileChange
	Untracked     []string
}

func (r *Repository) Status() (*Status, error) {
	branches, err := r.refs.List()
	if err != nil {
		return nil, err
	}
	head, err := r.CurrentCommit()
	if err != nil {
		return nil, err
	}
	staging, err := r.index.Snapshot()
	if err != nil {
		return nil, err
	}
	files, err := r.worktree.Files()
	if err != nil {
		return nil, err
	}

	status := &Status{}
	for _, branch := range branches {
		status.Branches = append(status.Branches, branch.Name)
		if branch.IsHead {
			status.CurrentBranch = branch.Name
		}
	}

	for name := range staging.Additions {
		status.Staged = append(status.Staged, name)
	}
	slices.Sort(status.Staged)

	// Removal markers for files the current commit no longer tracks are
	// not shown.
	for _, name := range staging.Removals {
		if head.Tracks(name) {
			status.Removed = append(status.Removed, name)
		}
	}

	present := make(map[string]bool, len(files))
	for _, name := range files {
		present[name] = true

		_, staged := staging.Additions[name]
		if (!staged && !head.Tracks(name)) || staging.IsRemoved(name) {
			status.Untracked = append(status.Untracked, name)
		}
	}

	status.Modified, err = r.unstagedChanges(head, staging.Additions, staging.IsRemoved, present)
	if err != nil {
		return nil, err
	}
	return status, nil
}

func (r *Repository) unstagedChanges(head *objects.Commit, additions map[string][]byte,
	removed func(string) bool, present map[string]bool) ([]FileChange, error) {
	var changes []FileChange

	names := head.Paths()
	for name := range additions {
		if !head.Tracks(name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	for _, name := range names {
		staged, isStaged := additions[name]

		if !present[name] {
			if isStaged || !removed(name) {
				changes = append(changes, FileChange{Name: name, Kind: Deleted})
			}
			continue
		}
		if removed(name) {
			continue
		}

		content, err := r.worktree.Read(name)
		if err != nil {
			return nil, err
		}
		if isStaged {
			if !bytes.Equal(content, staged) {
				changes = append(changes, FileChange{Name: name, Kind: Modified})
			}
			continue
		}
		if tracked, _ := head.BlobHash(name); objects.NewBlob(content).Hash() != tracked {
			changes = append(changes, FileChange{Name: name, Kind: Modified})
		}
	}
	return changes, nil
}
