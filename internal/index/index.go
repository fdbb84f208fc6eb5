// Package index is the staging area: files staged for addition with their
// bytes, and files staged for removal. It is persisted in a badger database
// under .gitlet/index so staged state survives between invocations.
package index

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/KostasZigo/gitlet/internal/logging"
	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

const (
	addPrefix    = "add/"
	removePrefix = "rm/"
)

var removalMarker = []byte{1}

// Staging is a point-in-time copy of the index. A path never appears in
// both sets.
type Staging struct {
	Additions map[string][]byte
	Removals  []string
}

// IsEmpty reports whether nothing is staged.
func (s *Staging) IsEmpty() bool {
	return len(s.Additions) == 0 && len(s.Removals) == 0
}

// IsRemoved reports whether name is staged for removal.
func (s *Staging) IsRemoved(name string) bool {
	_, found := slices.BinarySearch(s.Removals, name)
	return found
}

type Index struct {
	db     *badger.DB
	logger *zap.Logger
}

// Open opens (creating if needed) the index database in dir.
func Open(dir string, logger *zap.Logger) (*Index, error) {
	return open(badger.DefaultOptions(dir), logger)
}

// OpenInMemory opens an index that lives only as long as the process.
func OpenInMemory(logger *zap.Logger) (*Index, error) {
	return open(badger.DefaultOptions("").WithInMemory(true), logger)
}

func open(opts badger.Options, logger *zap.Logger) (*Index, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	// The index holds a handful of small entries; the default 64MB memtable
	// and 1GB value log are far beyond what it needs.
	opts = opts.
		WithLogger(logging.NewBadgerLogger(logger)).
		WithMemTableSize(8 << 20).
		WithValueLogFileSize(16 << 20).
		WithNumVersionsToKeep(1)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open staging index: %w", err)
	}
	return &Index{db: db, logger: logger}, nil
}

func (idx *Index) Close() error {
	if err := idx.db.Close(); err != nil {
		return fmt.Errorf("failed to close staging index: %w", err)
	}
	return nil
}

func addKey(name string) []byte {
	return []byte(addPrefix + name)
}

func removeKey(name string) []byte {
	return []byte(removePrefix + name)
}

func deleteIfPresent(txn *badger.Txn, key []byte) error {
	if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	} else if err != nil {
		return err
	}
	return txn.Delete(key)
}

// StageAddition records content for name and drops any pending removal.
func (idx *Index) StageAddition(name string, content []byte) error {
	err := idx.db.Update(func(txn *badger.Txn) error {
		if err := deleteIfPresent(txn, removeKey(name)); err != nil {
			return err
		}
		if content == nil {
			content = []byte{}
		}
		return txn.Set(addKey(name), content)
	})
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", name, err)
	}
	idx.logger.Debug("Staged for addition", zap.String("file", name), zap.Int("size", len(content)))
	return nil
}

// StageRemoval marks name for removal and drops any pending addition.
func (idx *Index) StageRemoval(name string) error {
	err := idx.db.Update(func(txn *badger.Txn) error {
		if err := deleteIfPresent(txn, addKey(name)); err != nil {
			return err
		}
		return txn.Set(removeKey(name), removalMarker)
	})
	if err != nil {
		return fmt.Errorf("failed to stage removal of %s: %w", name, err)
	}
	idx.logger.Debug("Staged for removal", zap.String("file", name))
	return nil
}

// Unstage forgets name in both sets.
func (idx *Index) Unstage(name string) error {
	err := idx.db.Update(func(txn *badger.Txn) error {
		if err := deleteIfPresent(txn, addKey(name)); err != nil {
			return err
		}
		return deleteIfPresent(txn, removeKey(name))
	})
	if err != nil {
		return fmt.Errorf("failed to unstage %s: %w", name, err)
	}
	return nil
}

// Addition returns the staged bytes for name.
func (idx *Index) Addition(name string) ([]byte, bool, error) {
	var content []byte
	err := idx.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(addKey(name))
		if err != nil {
			return err
		}
		content, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read staged %s: %w", name, err)
	}
	return content, true, nil
}

// IsStagedForAddition reports whether name has staged content.
func (idx *Index) IsStagedForAddition(name string) (bool, error) {
	_, ok, err := idx.Addition(name)
	return ok, err
}

// Snapshot reads both sets in a single transaction.
func (idx *Index) Snapshot() (*Staging, error) {
	staging := &Staging{Additions: make(map[string][]byte)}

	err := idx.db.View(func(txn *badger.Txn) error {
		return scan(txn, func(key string, item *badger.Item) error {
			switch {
			case strings.HasPrefix(key, addPrefix):
				content, err := item.ValueCopy(nil)
				if err != nil {
					return err
				}
				staging.Additions[strings.TrimPrefix(key, addPrefix)] = content
			case strings.HasPrefix(key, removePrefix):
				staging.Removals = append(staging.Removals, strings.TrimPrefix(key, removePrefix))
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read staging index: %w", err)
	}

	slices.Sort(staging.Removals)
	return staging, nil
}

// Clear empties the index in one transaction.
func (idx *Index) Clear() error {
	err := idx.db.Update(func(txn *badger.Txn) error {
		var keys [][]byte
		err := scan(txn, func(_ string, item *badger.Item) error {
			keys = append(keys, item.KeyCopy(nil))
			return nil
		})
		if err != nil {
			return err
		}
		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to clear staging index: %w", err)
	}
	idx.logger.Debug("Staging index cleared")
	return nil
}

// scan visits every staged key, additions first.
func scan(txn *badger.Txn, visit func(key string, item *badger.Item) error) error {
	for _, prefix := range [][]byte{[]byte(addPrefix), []byte(removePrefix)} {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			if err := visit(string(item.Key()), item); err != nil {
				it.Close()
				return err
			}
		}
		it.Close()
	}
	return nil
}
