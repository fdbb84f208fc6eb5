// Package repository is the handle every gitlet command runs against. It
// composes the object store, refs, staging index and working tree of one
// repository rooted at a directory.
package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/KostasZigo/gitlet/internal/apperr"
	"github.com/KostasZigo/gitlet/internal/config"
	"github.com/KostasZigo/gitlet/internal/constants"
	"github.com/KostasZigo/gitlet/internal/index"
	"github.com/KostasZigo/gitlet/internal/logging"
	"github.com/KostasZigo/gitlet/internal/merge"
	"github.com/KostasZigo/gitlet/internal/objects"
	"github.com/KostasZigo/gitlet/internal/refs"
	"github.com/KostasZigo/gitlet/internal/worktree"
	"go.uber.org/zap"
)

type Repository struct {
	root      string
	gitletDir string
	config    *config.Config
	logger    *zap.Logger
	now       func() time.Time

	objects  *objects.ObjectStore
	refs     *refs.Store
	index    *index.Index
	worktree *worktree.WorkTree
}

type options struct {
	logger *zap.Logger
	config *config.Config
	now    func() time.Time
}

type Option func(*options)

// WithLogger replaces the logger built from the configured log level.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithConfig skips loading config.yml and uses cfg instead.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithClock sets the source of commit timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) *options {
	o := &options{now: time.Now}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// IsRepository reports whether root holds a .gitlet directory.
func IsRepository(root string) bool {
	info, err := os.Stat(filepath.Join(root, constants.Gitlet))
	return err == nil && info.IsDir()
}

// Init creates a repository at root: the metadata directories, config.yml,
// the initial commit and the default branch pointing at it.
func Init(root string, opts ...Option) error {
	o := buildOptions(opts)
	logger := o.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// Resolves and adds OS specific separator
	gitletDir := filepath.Join(root, constants.Gitlet)

	if err := checkRepositoryDoesNotExist(gitletDir); err != nil {
		return err
	}

	// Anything created before a failure is removed again so that a retry
	// does not find a half-built repository.
	var initSuccess bool
	defer func() {
		if !initSuccess {
			cleanupRepository(gitletDir, logger)
		}
	}()

	directories := []string{
		gitletDir,
		filepath.Join(gitletDir, constants.Objects),
		filepath.Join(gitletDir, constants.Refs),
		filepath.Join(gitletDir, constants.Refs, constants.Heads),
	}
	for _, directory := range directories {
		if err := os.MkdirAll(directory, constants.DirPerms); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", directory, err)
		}
	}

	cfg := o.config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Save(gitletDir); err != nil {
		return err
	}

	store := objects.NewObjectStore(root,
		objects.WithCompressionLevel(cfg.CompressionLevel),
		objects.WithLogger(logger))

	initial, err := objects.NewInitialCommit()
	if err != nil {
		return fmt.Errorf("failed to create initial commit: %w", err)
	}
	if err := store.StoreCommit(initial); err != nil {
		return fmt.Errorf("failed to store initial commit: %w", err)
	}

	if err := refs.NewStore(gitletDir, logger).Init(cfg.DefaultBranch, initial.Hash()); err != nil {
		return fmt.Errorf("failed to create branch %s: %w", cfg.DefaultBranch, err)
	}

	idx, err := index.Open(filepath.Join(gitletDir, constants.Index), logger)
	if err != nil {
		return err
	}
	if err := idx.Close(); err != nil {
		return err
	}

	logger.Debug("Initialized repository",
		zap.String("path", gitletDir),
		zap.String("repository", cfg.RepositoryID),
		zap.String("commit", initial.Hash()))

	initSuccess = true
	return nil
}

func checkRepositoryDoesNotExist(path string) error {
	_, err := os.Stat(path)

	// If path doesn't exist there is no error
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to check repository path: %w", err)
	}

	return apperr.ErrAlreadyInitialized
}

// Removes the entire .gitlet directory if it exists
func cleanupRepository(gitletDir string, logger *zap.Logger) {
	if _, err := os.Stat(gitletDir); err != nil {
		return
	}

	logger.Debug("Cleaning up partial repository initialization", zap.String("path", gitletDir))
	if err := os.RemoveAll(gitletDir); err != nil {
		logger.Warn("Failed to cleanup repository directory",
			zap.String("path", gitletDir),
			zap.Error(err))
	}
}

// Open returns a handle on the repository at root. The caller must Close it.
func Open(root string, opts ...Option) (*Repository, error) {
	if !IsRepository(root) {
		return nil, apperr.ErrNotInitialized
	}
	o := buildOptions(opts)
	gitletDir := filepath.Join(root, constants.Gitlet)

	cfg := o.config
	if cfg == nil {
		var err error
		if cfg, err = config.Load(gitletDir); err != nil {
			return nil, err
		}
	}

	logger := o.logger
	if logger == nil {
		var err error
		if logger, err = logging.NewLogger(cfg.LogLevel); err != nil {
			return nil, fmt.Errorf("failed to build logger: %w", err)
		}
	}
	logger = logger.With(zap.String("repository", cfg.RepositoryID))

	idx, err := index.Open(filepath.Join(gitletDir, constants.Index), logger)
	if err != nil {
		return nil, err
	}

	return &Repository{
		root:      root,
		gitletDir: gitletDir,
		config:    cfg,
		logger:    logger,
		now:       o.now,
		objects: objects.NewObjectStore(root,
			objects.WithCompressionLevel(cfg.CompressionLevel),
			objects.WithCacheSize(cfg.ObjectCacheSize),
			objects.WithLogger(logger)),
		refs:     refs.NewStore(gitletDir, logger),
		index:    idx,
		worktree: worktree.New(root, logger),
	}, nil
}

func (r *Repository) Close() error {
	err := r.index.Close()
	_ = r.logger.Sync()
	return err
}

func (r *Repository) Root() string {
	return r.root
}

func (r *Repository) Config() *config.Config {
	return r.config
}

// CurrentBranch returns the name of the active branch.
func (r *Repository) CurrentBranch() (string, error) {
	return r.refs.HeadName()
}

// SetCurrentBranch points HEAD at an existing branch without touching the
// working directory.
func (r *Repository) SetCurrentBranch(name string) error {
	err := r.refs.SetHead(name)
	if errors.Is(err, refs.ErrBranchNotFound) {
		return apperr.ErrNoSuchBranch
	}
	return err
}

// CurrentCommit returns the commit the active branch points at.
func (r *Repository) CurrentCommit() (*objects.Commit, error) {
	head, err := r.refs.Head()
	if err != nil {
		return nil, err
	}
	commit, err := r.objects.ReadCommit(head.CommitHash)
	if err != nil {
		return nil, fmt.Errorf("failed to load commit of branch %s: %w", head.Name, err)
	}
	return commit, nil
}

// updateActiveBranch moves the active branch to commitHash.
func (r *Repository) updateActiveBranch(commitHash string) error {
	name, err := r.refs.HeadName()
	if err != nil {
		return err
	}
	return r.refs.Update(name, commitHash)
}

// ResolveCommit finds a commit by full or abbreviated id.
func (r *Repository) ResolveCommit(prefix string) (*objects.Commit, error) {
	return r.objects.FindCommit(prefix)
}

// WriteBlob stores content as a blob and returns its id.
func (r *Repository) WriteBlob(content []byte) (string, error) {
	blob := objects.NewBlob(content)
	if err := r.objects.Store(blob); err != nil {
		return "", fmt.Errorf("failed to store object: %w", err)
	}
	return blob.Hash(), nil
}

func (r *Repository) readBlob(hash string) ([]byte, error) {
	if hash == "" {
		return nil, nil
	}
	blob, err := r.objects.Read(hash)
	if err != nil {
		return nil, fmt.Errorf("failed to read blob %s: %w", hash, err)
	}
	return blob.Content(), nil
}

func (r *Repository) resolver() *merge.Resolver {
	return merge.NewResolver(r.objects, merge.Strategy(r.config.MergeBaseStrategy), r.logger)
}
