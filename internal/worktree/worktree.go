// Package worktree reads and rewrites the files at the top of the working
// directory. Subdirectories (including .gitlet) are never tracked.
package worktree

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/KostasZigo/gitlet/internal/apperr"
	"github.com/KostasZigo/gitlet/internal/constants"
	"go.uber.org/zap"
)

// TrackedFunc reports whether a working file is staged for addition or
// tracked by the current commit.
type TrackedFunc func(name string) bool

type WorkTree struct {
	root   string
	logger *zap.Logger
}

func New(root string, logger *zap.Logger) *WorkTree {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkTree{root: root, logger: logger}
}

func (w *WorkTree) Root() string {
	return w.root
}

// Path returns the absolute location of a working file.
func (w *WorkTree) Path(name string) string {
	return filepath.Join(w.root, name)
}

// ValidName reports whether name refers to a top-level file gitlet can track.
func ValidName(name string) bool {
	return name != "" && name != "." && name != ".." && name != constants.Gitlet &&
		!strings.ContainsAny(name, "/\\\x00")
}

// Files lists the regular files at the top of the working directory, sorted.
func (w *WorkTree) Files() ([]string, error) {
	entries, err := os.ReadDir(w.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list working directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !ValidName(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	slices.Sort(names)
	return names, nil
}

// Exists reports whether name is a regular file in the working directory.
func (w *WorkTree) Exists(name string) bool {
	if !ValidName(name) {
		return false
	}
	info, err := os.Lstat(w.Path(name))
	return err == nil && info.Mode().IsRegular()
}

// Read returns the contents of a working file. A missing file yields an
// error wrapping fs.ErrNotExist.
func (w *WorkTree) Read(name string) ([]byte, error) {
	if !ValidName(name) {
		return nil, fmt.Errorf("invalid file name %q: %w", name, fs.ErrNotExist)
	}
	content, err := os.ReadFile(w.Path(name))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return content, nil
}

// Write replaces a working file with content.
func (w *WorkTree) Write(name string, content []byte) error {
	if !ValidName(name) {
		return fmt.Errorf("invalid file name %q", name)
	}
	if err := os.WriteFile(w.Path(name), content, constants.FilePerms); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	w.logger.Debug("Wrote working file", zap.String("file", name), zap.Int("size", len(content)))
	return nil
}

// Remove deletes a working file; a file that is already gone is not an error.
func (w *WorkTree) Remove(name string) error {
	if !ValidName(name) {
		return fmt.Errorf("invalid file name %q", name)
	}
	if err := os.Remove(w.Path(name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", name, err)
	}
	w.logger.Debug("Removed working file", zap.String("file", name))
	return nil
}

// CheckUntracked fails with the untracked-file error if any working file
// is neither staged nor tracked.
func (w *WorkTree) CheckUntracked(tracked TrackedFunc) error {
	files, err := w.Files()
	if err != nil {
		return err
	}
	for _, name := range files {
		if !tracked(name) {
			w.logger.Debug("Untracked file blocks operation", zap.String("file", name))
			return apperr.ErrUntrackedFile
		}
	}
	return nil
}

// Replace swaps the working directory over to target (name -> contents).
// The untracked scan runs first and nothing is touched if it fails; then
// every tracked working file is deleted and target is written out.
func (w *WorkTree) Replace(tracked TrackedFunc, target map[string][]byte) error {
	if err := w.CheckUntracked(tracked); err != nil {
		return err
	}

	files, err := w.Files()
	if err != nil {
		return err
	}
	for _, name := range files {
		if err := w.Remove(name); err != nil {
			return err
		}
	}

	names := make([]string, 0, len(target))
	for name := range target {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		if err := w.Write(name, target[name]); err != nil {
			return err
		}
	}
	return nil
}
