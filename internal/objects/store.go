package objects

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/KostasZigo/gitlet/internal/constants"
	"github.com/KostasZigo/gitlet/utils"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/klauspost/compress/zlib"
	"go.uber.org/zap"
)

// ErrObjectNotFound is returned (wrapped) for any object that cannot be
// served: missing, undecodable, of another type, or failing verification.
var ErrObjectNotFound = errors.New("object not found")

var objectsRelativeFilePath string = filepath.Join(constants.Gitlet, constants.Objects)

const defaultCacheSize = 512

// ObjectStore manages storage of gitlet objects
type ObjectStore struct {
	repoPath         string // Path to repository root
	compressionLevel int
	cache            *lru.Cache[string, Object]
	logger           *zap.Logger
}

type StoreOption func(*ObjectStore)

// WithCompressionLevel sets the zlib level used for new objects.
func WithCompressionLevel(level int) StoreOption {
	return func(s *ObjectStore) {
		s.compressionLevel = level
	}
}

// WithCacheSize bounds the number of decoded objects kept in memory.
func WithCacheSize(size int) StoreOption {
	return func(s *ObjectStore) {
		if size <= 0 {
			return
		}
		if cache, err := lru.New[string, Object](size); err == nil {
			s.cache = cache
		}
	}
}

func WithLogger(logger *zap.Logger) StoreOption {
	return func(s *ObjectStore) {
		s.logger = logger
	}
}

func NewObjectStore(repoPath string, opts ...StoreOption) *ObjectStore {
	cache, _ := lru.New[string, Object](defaultCacheSize)
	store := &ObjectStore{
		repoPath:         repoPath,
		compressionLevel: zlib.DefaultCompression,
		cache:            cache,
		logger:           zap.NewNop(),
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (store *ObjectStore) objectsDir() string {
	return filepath.Join(store.repoPath, objectsRelativeFilePath)
}

func (store *ObjectStore) objectPath(hash string) string {
	return filepath.Join(store.objectsDir(), hash[:constants.HashDirPrefixLength], hash[constants.HashDirPrefixLength:])
}

// Store saves an object to .gitlet/objects/<first 2 chars>/<rest>
// Returns nil if object already exists
func (store *ObjectStore) Store(object Object) error {
	hash := object.Hash()

	// Calculate object path: .gitlet/objects/ab/cdef123...
	objectFile := store.objectPath(hash)
	objectDir := filepath.Dir(objectFile)

	// Check if object already exists (content-addressable)
	if store.Exists(hash) {
		store.logger.Debug("Object with this hash already exists",
			zap.String("hash", hash))
		return nil
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(objectDir, constants.DirPerms); err != nil {
		return fmt.Errorf("failed to create object directory: %w", err)
	}

	// Compress object content
	compressedData, err := store.compressObject(object)
	if err != nil {
		return fmt.Errorf("failed to compress object: %w", err)
	}

	// Write compressed object data to file
	if err := writeFileAtomic(objectFile, compressedData, constants.FilePerms); err != nil {
		return fmt.Errorf("failed to write object file: %w", err)
	}

	store.cache.Add(hash, object)
	store.logger.Debug("Stored object",
		zap.String("hash", hash),
		zap.String("type", string(object.Type())))

	return nil
}

func (store *ObjectStore) compressObject(object Object) ([]byte, error) {
	data := object.Data()

	// Compress with zlib
	var buffer bytes.Buffer
	// Create a new writer that compresses and writes data to the buffer
	writer, err := zlib.NewWriterLevel(&buffer, store.compressionLevel)
	if err != nil {
		return nil, err
	}

	if _, err := writer.Write(data); err != nil {
		return nil, err
	}

	// Call Close in order to flush any buffered data
	if err := writer.Close(); err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}

// readRaw decompresses an object and splits it into type and content.
func (store *ObjectStore) readRaw(hash string) (utils.ObjectType, []byte, error) {
	if !utils.IsHexHash(hash) {
		return "", nil, fmt.Errorf("%w: invalid hash %q", ErrObjectNotFound, hash)
	}

	// Read compressed file
	compressedData, err := os.ReadFile(store.objectPath(hash))
	if err != nil {
		return "", nil, fmt.Errorf("%w: failed to read object file %s: %v", ErrObjectNotFound, hash, err)
	}

	// Decompress
	reader, err := zlib.NewReader(bytes.NewReader(compressedData))
	if err != nil {
		return "", nil, fmt.Errorf("%w: failed to create new reader for decompressed data: %v", ErrObjectNotFound, err)
	}
	defer reader.Close()

	var buffer bytes.Buffer
	if _, err := buffer.ReadFrom(reader); err != nil {
		return "", nil, fmt.Errorf("%w: failed to read decompressed data: %v", ErrObjectNotFound, err)
	}

	data := buffer.Bytes()

	// Find null byte separator
	nullByteIndex := bytes.IndexByte(data, constants.NullByte)
	if nullByteIndex == -1 {
		return "", nil, fmt.Errorf("%w: invalid object format: no null byte found", ErrObjectNotFound)
	}

	objectType, size, err := parseHeader(string(data[:nullByteIndex]))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrObjectNotFound, err)
	}

	// Extract content (after null byte)
	content := data[nullByteIndex+1:]
	if len(content) != size {
		return "", nil, fmt.Errorf("%w: size mismatch for %s: header %d, content %d",
			ErrObjectNotFound, hash, size, len(content))
	}

	return objectType, content, nil
}

// parseHeader splits "<type> <size>" and validates both parts.
func parseHeader(header string) (utils.ObjectType, int, error) {
	typeName, sizeText, ok := strings.Cut(header, " ")
	if !ok {
		return "", 0, fmt.Errorf("invalid object header %q", header)
	}

	objectType := utils.ObjectType(typeName)
	if !objectType.IsValid() {
		return "", 0, fmt.Errorf("unknown object type %q", typeName)
	}

	size, err := strconv.Atoi(sizeText)
	if err != nil || size < 0 {
		return "", 0, fmt.Errorf("invalid object size %q", sizeText)
	}
	return objectType, size, nil
}

// readTyped returns the content of hash after checking its type.
func (store *ObjectStore) readTyped(hash string, want utils.ObjectType) ([]byte, error) {
	objectType, content, err := store.readRaw(hash)
	if err != nil {
		return nil, err
	}
	if objectType != want {
		return nil, fmt.Errorf("%w: %s is a %s, not a %s", ErrObjectNotFound, hash, objectType, want)
	}
	return content, nil
}

// verify rejects objects whose recomputed hash differs from the requested one.
func verify(hash string, object Object) error {
	if object.Hash() != hash {
		return fmt.Errorf("%w: hash mismatch: expected %s, got %s", ErrObjectNotFound, hash, object.Hash())
	}
	return nil
}

// Read reads a blob from storage by hash
func (store *ObjectStore) Read(hash string) (*Blob, error) {
	if cached, ok := store.cache.Get(hash); ok {
		if blob, ok := cached.(*Blob); ok {
			return blob, nil
		}
	}

	content, err := store.readTyped(hash, utils.BlobObjectType)
	if err != nil {
		return nil, err
	}

	blob := NewBlob(content)
	if err := verify(hash, blob); err != nil {
		return nil, err
	}

	store.cache.Add(hash, blob)
	return blob, nil
}

// ReadTree reads a tree from storage by hash
func (store *ObjectStore) ReadTree(hash string) (*Tree, error) {
	if cached, ok := store.cache.Get(hash); ok {
		if tree, ok := cached.(*Tree); ok {
			return tree, nil
		}
	}

	content, err := store.readTyped(hash, utils.TreeObjectType)
	if err != nil {
		return nil, err
	}

	tree, err := parseTree(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrObjectNotFound, err)
	}
	if err := verify(hash, tree); err != nil {
		return nil, err
	}

	store.cache.Add(hash, tree)
	return tree, nil
}

// ReadCommit reads a commit and its tree from storage by hash
func (store *ObjectStore) ReadCommit(hash string) (*Commit, error) {
	if cached, ok := store.cache.Get(hash); ok {
		if commit, ok := cached.(*Commit); ok {
			return commit, nil
		}
	}

	content, err := store.readTyped(hash, utils.CommitObjectType)
	if err != nil {
		return nil, err
	}

	header, err := parseCommitContent(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrObjectNotFound, err)
	}

	tree, err := store.ReadTree(header.treeHash)
	if err != nil {
		return nil, fmt.Errorf("commit %s: %w", hash, err)
	}

	commit, err := NewCommit(tree, header.parentHash, header.mergeParentHash, header.message, header.timestamp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrObjectNotFound, err)
	}
	if err := verify(hash, commit); err != nil {
		return nil, err
	}

	store.cache.Add(hash, commit)
	return commit, nil
}

// StoreCommit stores a commit together with its tree.
func (store *ObjectStore) StoreCommit(commit *Commit) error {
	if err := store.Store(commit.Tree()); err != nil {
		return fmt.Errorf("failed to store tree: %w", err)
	}
	return store.Store(commit)
}

// Exists checks if an object exists in storage
func (store *ObjectStore) Exists(hash string) bool {
	if !utils.IsHexHash(hash) {
		return false
	}
	info, err := os.Stat(store.objectPath(hash))
	return err == nil && info.Mode().IsRegular()
}

// ObjectType reads only the header of an object to report its type.
func (store *ObjectStore) ObjectType(hash string) (utils.ObjectType, error) {
	if !utils.IsHexHash(hash) {
		return "", fmt.Errorf("%w: invalid hash %q", ErrObjectNotFound, hash)
	}

	file, err := os.Open(store.objectPath(hash))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrObjectNotFound, err)
	}
	defer file.Close()

	reader, err := zlib.NewReader(file)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrObjectNotFound, err)
	}
	defer reader.Close()

	header, err := bufio.NewReader(reader).ReadString(constants.NullByte)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("%w: %v", ErrObjectNotFound, err)
	}
	if !strings.HasSuffix(header, string(constants.NullByte)) {
		return "", fmt.Errorf("%w: invalid object format: no null byte found", ErrObjectNotFound)
	}

	objectType, _, err := parseHeader(strings.TrimSuffix(header, string(constants.NullByte)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrObjectNotFound, err)
	}
	return objectType, nil
}

// Hashes lists every stored object id whose hex form starts with prefix.
func (store *ObjectStore) Hashes(prefix string) ([]string, error) {
	shards, err := os.ReadDir(store.objectsDir())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list objects: %w", err)
	}

	var hashes []string
	for _, shard := range shards {
		if !shard.IsDir() || len(shard.Name()) != constants.HashDirPrefixLength {
			continue
		}
		if !shardMatches(shard.Name(), prefix) {
			continue
		}

		files, err := os.ReadDir(filepath.Join(store.objectsDir(), shard.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to list objects in %s: %w", shard.Name(), err)
		}
		for _, file := range files {
			hash := shard.Name() + file.Name()
			if file.IsDir() || !utils.IsHexHash(hash) || !strings.HasPrefix(hash, prefix) {
				continue
			}
			hashes = append(hashes, hash)
		}
	}
	return hashes, nil
}

func shardMatches(shard, prefix string) bool {
	if len(prefix) >= constants.HashDirPrefixLength {
		return shard == prefix[:constants.HashDirPrefixLength]
	}
	return strings.HasPrefix(shard, prefix)
}
