package objects

import (
	"errors"
	"fmt"

	"github.com/KostasZigo/gitlet/internal/apperr"
	"github.com/KostasZigo/gitlet/utils"
)

// CommitIDs lists the ids of every stored commit, in no particular order.
// Only object headers are decompressed.
func (store *ObjectStore) CommitIDs() ([]string, error) {
	return store.commitIDs("")
}

func (store *ObjectStore) commitIDs(prefix string) ([]string, error) {
	hashes, err := store.Hashes(prefix)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, hash := range hashes {
		objectType, err := store.ObjectType(hash)
		if errors.Is(err, ErrObjectNotFound) {
			store.logger.Sugar().Debugw("Skipping unreadable object", "hash", hash, "error", err)
			continue
		}
		if err != nil {
			return nil, err
		}
		if objectType == utils.CommitObjectType {
			ids = append(ids, hash)
		}
	}
	return ids, nil
}

// Commits loads every stored commit, in no particular order.
func (store *ObjectStore) Commits() ([]*Commit, error) {
	ids, err := store.CommitIDs()
	if err != nil {
		return nil, err
	}

	commits := make([]*Commit, 0, len(ids))
	for _, id := range ids {
		commit, err := store.ReadCommit(id)
		if err != nil {
			return nil, fmt.Errorf("failed to read commit %s: %w", id, err)
		}
		commits = append(commits, commit)
	}
	return commits, nil
}

// FindCommit resolves a full or abbreviated commit id. Unknown and
// ambiguous prefixes both fail with apperr.ErrNoSuchCommit.
func (store *ObjectStore) FindCommit(prefix string) (*Commit, error) {
	if utils.IsHexHash(prefix) {
		commit, err := store.ReadCommit(prefix)
		if errors.Is(err, ErrObjectNotFound) {
			return nil, apperr.ErrNoSuchCommit
		}
		return commit, err
	}
	if prefix == "" {
		return nil, apperr.ErrNoSuchCommit
	}

	ids, err := store.commitIDs(prefix)
	if err != nil {
		return nil, err
	}
	if len(ids) != 1 {
		store.logger.Sugar().Debugw("Commit prefix did not resolve", "prefix", prefix, "matches", len(ids))
		return nil, apperr.ErrNoSuchCommit
	}

	commit, err := store.ReadCommit(ids[0])
	if errors.Is(err, ErrObjectNotFound) {
		return nil, apperr.ErrNoSuchCommit
	}
	return commit, err
}
