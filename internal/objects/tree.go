package objects

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"

	"github.com/KostasZigo/gitlet/internal/constants"
	"github.com/KostasZigo/gitlet/utils"
)

type FileMode string

// ModeRegularFile is the only mode gitlet records; executable bits and
// directories are not tracked.
const ModeRegularFile FileMode = "100644"

func (m FileMode) IsValid() bool {
	return m == ModeRegularFile
}

// TreeEntry represents a single entry in a tree object
type TreeEntry struct {
	mode FileMode
	name string
	hash string // hex id of the blob holding the file contents
}

func NewTreeEntry(mode FileMode, name string, hash string) (*TreeEntry, error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("invalid file mode: %s", mode)
	}
	if name == "" || strings.ContainsAny(name, "/\x00") {
		return nil, fmt.Errorf("invalid tree entry name: %q", name)
	}
	if !utils.IsHexHash(hash) {
		return nil, fmt.Errorf("invalid blob hash for %s: %q", name, hash)
	}
	return &TreeEntry{
		mode: mode,
		name: name,
		hash: hash,
	}, nil
}

func (e *TreeEntry) Mode() FileMode {
	return e.mode
}

func (e *TreeEntry) Name() string {
	return e.name
}

func (e *TreeEntry) Hash() string {
	return e.hash
}

// Tree is the path -> blob mapping of a commit. It is flat: every entry is
// a regular file at the top of the working directory.
type Tree struct {
	entries []TreeEntry
	hash    string
}

// NewTree creates a tree object from the list of Tree Entries
func NewTree(treeEntries []TreeEntry) (*Tree, error) {
	// Entries are kept sorted by name so equal mappings hash equally
	entries := make([]TreeEntry, len(treeEntries))
	copy(entries, treeEntries)

	slices.SortStableFunc(entries, func(a, b TreeEntry) int {
		return strings.Compare(a.name, b.name)
	})
	for i := 1; i < len(entries); i++ {
		if entries[i].name == entries[i-1].name {
			return nil, fmt.Errorf("duplicate tree entry: %s", entries[i].name)
		}
	}

	treeContent := buildTreeContent(entries)
	hash, err := utils.ComputeHash(treeContent, utils.TreeObjectType)
	if err != nil {
		return nil, fmt.Errorf("failed to compute hash for tree: %v", err)
	}

	return &Tree{
		entries: entries,
		hash:    hash,
	}, nil
}

// NewTreeFromFiles builds a tree from a file name -> blob hash mapping.
func NewTreeFromFiles(files map[string]string) (*Tree, error) {
	entries := make([]TreeEntry, 0, len(files))
	for name, hash := range files {
		entry, err := NewTreeEntry(ModeRegularFile, name, hash)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return NewTree(entries)
}

// buildTreeContent creates the raw tree content
// <mode> <name>\0<20-byte binary SHA> , ex:
// 100644 README.md\0[binary SHA for README blob]
// 100644 main.go\0[binary SHA for main.go blob]
func buildTreeContent(entries []TreeEntry) []byte {
	var buf bytes.Buffer

	for _, entry := range entries {
		buf.WriteString(string(entry.Mode()))
		buf.WriteByte(' ')
		buf.WriteString(entry.Name())
		buf.WriteByte(constants.NullByte)

		// Convert hex hash to binary hash
		hashBytes, _ := hex.DecodeString(entry.Hash())
		buf.Write(hashBytes)
	}

	return buf.Bytes()
}

// parseTree decodes tree content written by buildTreeContent.
func parseTree(content []byte) (*Tree, error) {
	var entries []TreeEntry

	for len(content) > 0 {
		space := bytes.IndexByte(content, ' ')
		if space == -1 {
			return nil, fmt.Errorf("invalid tree format: missing mode separator")
		}
		mode := FileMode(content[:space])
		content = content[space+1:]

		null := bytes.IndexByte(content, constants.NullByte)
		if null == -1 {
			return nil, fmt.Errorf("invalid tree format: missing name terminator")
		}
		name := string(content[:null])
		content = content[null+1:]

		if len(content) < constants.HashByteLength {
			return nil, fmt.Errorf("invalid tree format: truncated hash for %s", name)
		}
		hash := hex.EncodeToString(content[:constants.HashByteLength])
		content = content[constants.HashByteLength:]

		entry, err := NewTreeEntry(mode, name, hash)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}

	return NewTree(entries)
}

// Hash returns the SHA-1 hash of the tree
func (t *Tree) Hash() string {
	return t.hash
}

func (t *Tree) Type() utils.ObjectType {
	return utils.TreeObjectType
}

// Entries returns all tree entries
func (t *Tree) Entries() []TreeEntry {
	return t.entries
}

// Files returns the tree as a file name -> blob hash mapping.
func (t *Tree) Files() map[string]string {
	files := make(map[string]string, len(t.entries))
	for _, entry := range t.entries {
		files[entry.name] = entry.hash
	}
	return files
}

// Size returns the size of the tree content
func (t *Tree) Size() int {
	return len(buildTreeContent(t.entries))
}

// Content returns the raw tree content
func (t *Tree) Content() []byte {
	return buildTreeContent(t.entries)
}

// Header returns the object header
func (t *Tree) Header() string {
	return fmt.Sprintf("tree %d\x00", t.Size())
}

func (t *Tree) Data() []byte {
	header := t.Header()
	data := append([]byte(header), t.Content()...)
	return data
}

// String returns a human-readable representation
func (t *Tree) String() string {
	return fmt.Sprintf("Tree{hash: %s, entries: %d}", t.hash, len(t.entries))
}

// FindEntry finds an entry by name
func (t *Tree) FindEntry(name string) (*TreeEntry, bool) {
	for _, entry := range t.entries {
		if entry.Name() == name {
			return &entry, true
		}
	}
	return nil, false
}
