// Package merge finds the split point of two commits and classifies every
// tracked path for a three-way merge.
package merge

import (
	"fmt"

	"github.com/KostasZigo/gitlet/internal/objects"
	"go.uber.org/zap"
)

// Strategy selects how the merge base is chosen.
type Strategy string

const (
	// StrategyBFS walks breadth-first from HEAD's commit, first parent
	// before merge parent, and returns the first commit that is also an
	// ancestor of the other commit. On histories with several merges this
	// is not always the lowest common ancestor.
	StrategyBFS Strategy = "bfs"

	// StrategyLCA returns a common ancestor that is not a proper ancestor
	// of any other common ancestor, preferring the one BFS reaches first.
	StrategyLCA Strategy = "lca"
)

// CommitReader loads commits by id. *objects.ObjectStore satisfies it.
type CommitReader interface {
	ReadCommit(hash string) (*objects.Commit, error)
}

// Resolver answers ancestry questions over the commit DAG. Parent lists
// and ancestor sets are memoized, so repeated queries over the same
// history read each commit once.
type Resolver struct {
	reader    CommitReader
	strategy  Strategy
	logger    *zap.Logger
	parents   map[string][]string
	ancestors map[string]map[string]struct{}
}

func NewResolver(reader CommitReader, strategy Strategy, logger *zap.Logger) *Resolver {
	if strategy == "" {
		strategy = StrategyBFS
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		reader:    reader,
		strategy:  strategy,
		logger:    logger,
		parents:   make(map[string][]string),
		ancestors: make(map[string]map[string]struct{}),
	}
}

func (r *Resolver) parentsOf(hash string) ([]string, error) {
	if parents, ok := r.parents[hash]; ok {
		return parents, nil
	}
	commit, err := r.reader.ReadCommit(hash)
	if err != nil {
		return nil, fmt.Errorf("failed to load commit %s: %w", hash, err)
	}
	parents := commit.Parents()
	r.parents[hash] = parents
	return parents, nil
}

// ancestorSet returns hash and everything reachable from it.
func (r *Resolver) ancestorSet(hash string) (map[string]struct{}, error) {
	if set, ok := r.ancestors[hash]; ok {
		return set, nil
	}

	set := make(map[string]struct{})
	work := []string{hash}
	for len(work) > 0 {
		current := work[len(work)-1]
		work = work[:len(work)-1]
		if _, seen := set[current]; seen {
			continue
		}
		set[current] = struct{}{}

		parents, err := r.parentsOf(current)
		if err != nil {
			return nil, err
		}
		work = append(work, parents...)
	}

	r.ancestors[hash] = set
	return set, nil
}

// IsAncestor reports whether ancestor equals descendant or is reachable
// from it through parent links.
func (r *Resolver) IsAncestor(ancestor, descendant string) (bool, error) {
	set, err := r.ancestorSet(descendant)
	if err != nil {
		return false, err
	}
	_, ok := set[ancestor]
	return ok, nil
}

// bfsOrder calls visit for each commit reachable from start in
// breadth-first order until visit returns true.
func (r *Resolver) bfsOrder(start string, visit func(hash string, parents []string) bool) error {
	visited := map[string]struct{}{start: {}}
	queue := []string{start}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		parents, err := r.parentsOf(node)
		if err != nil {
			return err
		}
		if visit(node, parents) {
			return nil
		}

		for _, parent := range parents {
			if _, seen := visited[parent]; seen {
				continue
			}
			visited[parent] = struct{}{}
			queue = append(queue, parent)
		}
	}
	return nil
}

// Base returns the split point of head and other.
func (r *Resolver) Base(head, other string) (string, error) {
	var (
		base string
		err  error
	)
	switch r.strategy {
	case StrategyBFS:
		base, err = r.bfsBase(head, other)
	case StrategyLCA:
		base, err = r.lcaBase(head, other)
	default:
		return "", fmt.Errorf("unknown merge base strategy %q", r.strategy)
	}
	if err != nil {
		return "", err
	}

	r.logger.Debug("Merge base resolved",
		zap.String("strategy", string(r.strategy)),
		zap.String("head", head),
		zap.String("other", other),
		zap.String("base", base))
	return base, nil
}

func (r *Resolver) bfsBase(head, other string) (string, error) {
	otherAncestors, err := r.ancestorSet(other)
	if err != nil {
		return "", err
	}

	var base string
	err = r.bfsOrder(head, func(hash string, parents []string) bool {
		_, common := otherAncestors[hash]
		if common || len(parents) == 0 {
			base = hash
			return true
		}
		return false
	})
	if err != nil {
		return "", err
	}
	if base == "" {
		return "", fmt.Errorf("no common ancestor of %s and %s", head, other)
	}
	return base, nil
}

func (r *Resolver) lcaBase(head, other string) (string, error) {
	otherAncestors, err := r.ancestorSet(other)
	if err != nil {
		return "", err
	}

	// Common ancestors in BFS order from head
	var common []string
	err = r.bfsOrder(head, func(hash string, _ []string) bool {
		if _, ok := otherAncestors[hash]; ok {
			common = append(common, hash)
		}
		return false
	})
	if err != nil {
		return "", err
	}
	if len(common) == 0 {
		return "", fmt.Errorf("no common ancestor of %s and %s", head, other)
	}

	// Everything strictly behind some common ancestor is dominated
	dominated := make(map[string]struct{})
	var work []string
	for _, hash := range common {
		parents, err := r.parentsOf(hash)
		if err != nil {
			return "", err
		}
		work = append(work, parents...)
	}
	for len(work) > 0 {
		current := work[len(work)-1]
		work = work[:len(work)-1]
		if _, seen := dominated[current]; seen {
			continue
		}
		dominated[current] = struct{}{}

		parents, err := r.parentsOf(current)
		if err != nil {
			return "", err
		}
		work = append(work, parents...)
	}

	for _, hash := range common {
		if _, ok := dominated[hash]; !ok {
			return hash, nil
		}
	}
	return "", fmt.Errorf("no lowest common ancestor of %s and %s", head, other)
}
