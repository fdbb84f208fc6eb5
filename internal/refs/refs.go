// Package refs stores branch pointers under .gitlet/refs/heads and the HEAD
// file naming the active branch.
package refs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/KostasZigo/gitlet/internal/constants"
	"github.com/KostasZigo/gitlet/utils"
	"go.uber.org/zap"
)

var (
	ErrBranchNotFound = errors.New("branch not found")
	ErrBranchExists   = errors.New("branch already exists")
	ErrInvalidName    = errors.New("invalid branch name")
)

// Branch is a named pointer to a commit. IsHead is derived from HEAD, so at
// most one branch ever reports it.
type Branch struct {
	Name       string
	CommitHash string
	IsHead     bool
}

// Store reads and writes refs inside a .gitlet directory.
type Store struct {
	gitletDir string
	logger    *zap.Logger
}

func NewStore(gitletDir string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{gitletDir: gitletDir, logger: logger}
}

func (s *Store) headsDir() string {
	return filepath.Join(s.gitletDir, constants.Refs, constants.Heads)
}

func (s *Store) branchPath(name string) string {
	return filepath.Join(s.headsDir(), name)
}

func (s *Store) headPath() string {
	return filepath.Join(s.gitletDir, constants.Head)
}

// ValidateName rejects names that cannot be stored as a single ref file.
func ValidateName(name string) error {
	if name == "" || strings.HasPrefix(name, ".") || strings.ContainsAny(name, "/\\\x00 \t\n") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Init writes the first branch and points HEAD at it.
func (s *Store) Init(name, commitHash string) error {
	if err := s.Create(name, commitHash); err != nil {
		return err
	}
	return s.SetHead(name)
}

// Exists reports whether a branch called name exists.
func (s *Store) Exists(name string) bool {
	if ValidateName(name) != nil {
		return false
	}
	info, err := os.Stat(s.branchPath(name))
	return err == nil && !info.IsDir()
}

// Get loads a branch by name.
func (s *Store) Get(name string) (*Branch, error) {
	if err := ValidateName(name); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBranchNotFound, name)
	}

	data, err := os.ReadFile(s.branchPath(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrBranchNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read branch %s: %w", name, err)
	}

	hash := strings.TrimSpace(string(data))
	if !utils.IsHexHash(hash) {
		return nil, fmt.Errorf("branch %s holds invalid commit id %q", name, hash)
	}

	headName, err := s.HeadName()
	if err != nil {
		return nil, err
	}

	return &Branch{Name: name, CommitHash: hash, IsHead: headName == name}, nil
}

// List returns every branch sorted by name.
func (s *Store) List() ([]*Branch, error) {
	entries, err := os.ReadDir(s.headsDir())
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || ValidateName(entry.Name()) != nil {
			continue
		}
		names = append(names, entry.Name())
	}
	slices.Sort(names)

	branches := make([]*Branch, 0, len(names))
	for _, name := range names {
		branch, err := s.Get(name)
		if err != nil {
			return nil, err
		}
		branches = append(branches, branch)
	}
	return branches, nil
}

// Create adds a new branch pointing at commitHash.
func (s *Store) Create(name, commitHash string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if s.Exists(name) {
		return fmt.Errorf("%w: %s", ErrBranchExists, name)
	}
	if err := os.MkdirAll(s.headsDir(), constants.DirPerms); err != nil {
		return fmt.Errorf("failed to create refs directory: %w", err)
	}
	return s.write(name, commitHash)
}

// Update moves an existing branch to commitHash.
func (s *Store) Update(name, commitHash string) error {
	if !s.Exists(name) {
		return fmt.Errorf("%w: %s", ErrBranchNotFound, name)
	}
	return s.write(name, commitHash)
}

func (s *Store) write(name, commitHash string) error {
	if !utils.IsHexHash(commitHash) {
		return fmt.Errorf("invalid commit id %q for branch %s", commitHash, name)
	}
	if err := os.WriteFile(s.branchPath(name), []byte(commitHash+"\n"), constants.FilePerms); err != nil {
		return fmt.Errorf("failed to write branch %s: %w", name, err)
	}
	s.logger.Debug("Branch moved", zap.String("branch", name), zap.String("commit", commitHash))
	return nil
}

// Delete removes a branch. The caller guards against deleting the active one.
func (s *Store) Delete(name string) error {
	if !s.Exists(name) {
		return fmt.Errorf("%w: %s", ErrBranchNotFound, name)
	}
	if err := os.Remove(s.branchPath(name)); err != nil {
		return fmt.Errorf("failed to delete branch %s: %w", name, err)
	}
	s.logger.Debug("Branch deleted", zap.String("branch", name))
	return nil
}

// HeadName returns the name of the active branch.
func (s *Store) HeadName() (string, error) {
	data, err := os.ReadFile(s.headPath())
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", constants.Head, err)
	}

	content := strings.TrimSuffix(string(data), "\n")
	name, ok := strings.CutPrefix(content, constants.DefaultRefPrefix)
	if !ok || ValidateName(name) != nil {
		return "", fmt.Errorf("invalid %s content %q", constants.Head, content)
	}
	return name, nil
}

// Head returns the active branch.
func (s *Store) Head() (*Branch, error) {
	name, err := s.HeadName()
	if err != nil {
		return nil, err
	}
	return s.Get(name)
}

// SetHead makes name the active branch.
func (s *Store) SetHead(name string) error {
	if !s.Exists(name) {
		return fmt.Errorf("%w: %s", ErrBranchNotFound, name)
	}
	content := constants.DefaultRefPrefix + name + "\n"
	if err := os.WriteFile(s.headPath(), []byte(content), constants.FilePerms); err != nil {
		return fmt.Errorf("failed to write %s: %w", constants.Head, err)
	}
	s.logger.Debug("HEAD moved", zap.String("branch", name))
	return nil
}
