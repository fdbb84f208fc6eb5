package objects

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/KostasZigo/gitlet/internal/constants"
	"github.com/KostasZigo/gitlet/utils"
)

// Commit is an immutable snapshot of the repository: a tree, its parents,
// a timestamp and a message.
type Commit struct {
	hash            string
	tree            *Tree
	parentHash      string
	mergeParentHash string
	timestamp       time.Time
	message         string
}

// NewCommit creates a commit over tree. mergeParentHash is empty unless the
// commit records a merge.
func NewCommit(tree *Tree, parentHash, mergeParentHash, message string, timestamp time.Time) (*Commit, error) {
	if tree == nil {
		return nil, fmt.Errorf("commit requires a tree")
	}
	if mergeParentHash != "" && parentHash == "" {
		return nil, fmt.Errorf("merge commit requires a first parent")
	}

	content := buildCommitContent(tree.Hash(), parentHash, mergeParentHash, message, timestamp)
	hash, err := utils.ComputeHash(content, utils.CommitObjectType)
	if err != nil {
		return nil, fmt.Errorf("failed to compute hash for commit: %v", err)
	}

	return &Commit{
		hash:            hash,
		tree:            tree,
		parentHash:      parentHash,
		mergeParentHash: mergeParentHash,
		timestamp:       timestamp,
		message:         message,
	}, nil
}

// NewInitialCommit creates the root commit written by init: an empty tree
// at the Unix epoch.
func NewInitialCommit() (*Commit, error) {
	tree, err := NewTree(nil)
	if err != nil {
		return nil, err
	}
	return NewCommit(tree, "", "", constants.InitialCommitMessage, time.Unix(0, 0).UTC())
}

// buildCommitContent renders the canonical commit encoding. Field order is
// fixed and the timestamp is always RFC3339Nano in UTC, so the id never
// depends on the local time zone or locale.
func buildCommitContent(treeHash, parentHash, mergeParentHash, message string, timestamp time.Time) []byte {
	var buf bytes.Buffer

	buf.WriteString(constants.CommitFormatLine)
	buf.WriteByte('\n')

	fmt.Fprintf(&buf, "%s%s\n", constants.CommitTreePrefix, treeHash)

	if parentHash != "" {
		fmt.Fprintf(&buf, "%s%s\n", constants.CommitParentPrefix, parentHash)
	}
	if mergeParentHash != "" {
		fmt.Fprintf(&buf, "%s%s\n", constants.CommitMergeParentPrefix, mergeParentHash)
	}

	fmt.Fprintf(&buf, "%s%s\n", constants.CommitTimestampPrefix, timestamp.UTC().Format(time.RFC3339Nano))

	// Blank line before message
	buf.WriteByte('\n')

	// The message is always followed by exactly one newline
	buf.WriteString(message)
	buf.WriteByte('\n')

	return buf.Bytes()
}

// commitHeader holds the decoded header of a stored commit; the tree is
// resolved separately by the store.
type commitHeader struct {
	treeHash        string
	parentHash      string
	mergeParentHash string
	timestamp       time.Time
	message         string
}

func parseCommitContent(content []byte) (*commitHeader, error) {
	text := string(content)

	headerEnd := strings.Index(text, "\n\n")
	if headerEnd == -1 {
		return nil, fmt.Errorf("invalid commit format: missing message separator")
	}
	if !strings.HasSuffix(text, "\n") {
		return nil, fmt.Errorf("invalid commit format: message not terminated")
	}

	lines := strings.Split(text[:headerEnd], "\n")
	if lines[0] != constants.CommitFormatLine {
		return nil, fmt.Errorf("unsupported commit format: %q", lines[0])
	}

	header := &commitHeader{
		message: text[headerEnd+2 : len(text)-1],
	}

	var haveTimestamp bool
	for _, line := range lines[1:] {
		switch {
		case strings.HasPrefix(line, constants.CommitTreePrefix):
			header.treeHash = strings.TrimPrefix(line, constants.CommitTreePrefix)
		case strings.HasPrefix(line, constants.CommitParentPrefix):
			header.parentHash = strings.TrimPrefix(line, constants.CommitParentPrefix)
		case strings.HasPrefix(line, constants.CommitMergeParentPrefix):
			header.mergeParentHash = strings.TrimPrefix(line, constants.CommitMergeParentPrefix)
		case strings.HasPrefix(line, constants.CommitTimestampPrefix):
			ts, err := time.Parse(time.RFC3339Nano, strings.TrimPrefix(line, constants.CommitTimestampPrefix))
			if err != nil {
				return nil, fmt.Errorf("invalid commit timestamp: %w", err)
			}
			header.timestamp = ts
			haveTimestamp = true
		default:
			return nil, fmt.Errorf("invalid commit header line: %q", line)
		}
	}

	if !utils.IsHexHash(header.treeHash) {
		return nil, fmt.Errorf("invalid commit format: bad tree hash %q", header.treeHash)
	}
	if !haveTimestamp {
		return nil, fmt.Errorf("invalid commit format: missing timestamp")
	}

	return header, nil
}

func (c *Commit) Hash() string {
	return c.hash
}

func (c *Commit) Type() utils.ObjectType {
	return utils.CommitObjectType
}

func (c *Commit) Content() []byte {
	return buildCommitContent(c.tree.Hash(), c.parentHash, c.mergeParentHash, c.message, c.timestamp)
}

func (c *Commit) Size() int {
	return len(c.Content())
}

func (c *Commit) Header() string {
	return fmt.Sprintf("commit %d\x00", c.Size())
}

func (c *Commit) Data() []byte {
	return append([]byte(c.Header()), c.Content()...)
}

func (c *Commit) Tree() *Tree {
	return c.tree
}

func (c *Commit) ParentHash() string {
	return c.parentHash
}

func (c *Commit) MergeParentHash() string {
	return c.mergeParentHash
}

// Parents returns the first parent followed by the merge parent, skipping
// whichever is absent.
func (c *Commit) Parents() []string {
	parents := make([]string, 0, 2)
	if c.parentHash != "" {
		parents = append(parents, c.parentHash)
	}
	if c.mergeParentHash != "" {
		parents = append(parents, c.mergeParentHash)
	}
	return parents
}

func (c *Commit) Timestamp() time.Time {
	return c.timestamp
}

func (c *Commit) Message() string {
	return c.message
}

func (c *Commit) IsInitialCommit() bool {
	return c.parentHash == ""
}

func (c *Commit) IsMerge() bool {
	return c.mergeParentHash != ""
}

// Files returns the tracked file name -> blob hash mapping.
func (c *Commit) Files() map[string]string {
	return c.tree.Files()
}

// BlobHash returns the blob recorded for name, if tracked.
func (c *Commit) BlobHash(name string) (string, bool) {
	entry, ok := c.tree.FindEntry(name)
	if !ok {
		return "", false
	}
	return entry.Hash(), true
}

// Tracks reports whether name is part of this commit's tree.
func (c *Commit) Tracks(name string) bool {
	_, ok := c.tree.FindEntry(name)
	return ok
}

// Paths returns the tracked file names in sorted order.
func (c *Commit) Paths() []string {
	paths := make([]string, 0, len(c.tree.entries))
	for _, entry := range c.tree.entries {
		paths = append(paths, entry.name)
	}
	slices.Sort(paths)
	return paths
}

func (c *Commit) String() string {
	return fmt.Sprintf("Commit{hash: %s, tree: %s, parent: %s, merge-parent: %s, message: %q}",
		c.hash, c.tree.Hash(), c.parentHash, c.mergeParentHash, c.message)
}
