package constants

import (
	"os"

	"github.com/multiformats/go-multihash"
)

// Command name constants used in tests and error messages.
// Cobra Use fields remain inline for CLI discoverability.
const (
	InitCmdName       = "init"
	AddCmdName        = "add"
	CommitCmdName     = "commit"
	RmCmdName         = "rm"
	LogCmdName        = "log"
	GlobalLogCmdName  = "global-log"
	FindCmdName       = "find"
	StatusCmdName     = "status"
	CheckoutCmdName   = "checkout"
	BranchCmdName     = "branch"
	RmBranchCmdName   = "rm-branch"
	ResetCmdName      = "reset"
	MergeCmdName      = "merge"
	HashObjectCmdName = "hash-object"
)

// Repository directory and file names define the gitlet metadata structure.
const (
	// Gitlet is the repository metadata directory.
	Gitlet = ".gitlet"

	// Objects stores content-addressable objects (blobs, trees, commits).
	Objects = "objects"

	// Refs contains branch references.
	Refs = "refs"

	// Heads stores branch pointers under refs/.
	Heads = "heads"

	// Head names the active branch.
	Head = "HEAD"

	// Index holds the staging index database.
	Index = "index"

	// ConfigFile is the repository configuration file.
	ConfigFile = "config.yml"

	// EnvFile holds optional KEY=VALUE overrides for the repository.
	EnvFile = ".env"
)

// Default repository values.
const (
	// DefaultBranch is the initial branch name for new repositories.
	DefaultBranch = "main"

	// DefaultRefPrefix is prepended to branch names in HEAD file.
	DefaultRefPrefix = "ref: refs/heads/"

	// InitialCommitMessage is the message of the root commit created by init.
	InitialCommitMessage = "initial commit"

	// MergeCommitFormat builds the message of a merge commit from the given
	// branch name and the active branch name.
	MergeCommitFormat = "Merged %s into %s."
)

// File system permissions for created files and directories.
const (
	// DirPerms grants read/write/execute to owner, read/execute to others (rwxr-xr-x).
	DirPerms os.FileMode = 0755

	// FilePerms grants read/write to owner, read-only to others (rw-r--r--).
	FilePerms os.FileMode = 0644
)

// Cryptographic hash properties.
const (
	// HashCode is the multihash function used for object ids.
	HashCode = multihash.SHA1

	// HashByteLength is byte length of SHA-1 hash (20 bytes).
	HashByteLength = 20

	// HashStringLength is hex string length of SHA-1 hash (40 characters).
	HashStringLength = 40

	// HashDirPrefixLength is subdirectory prefix length under objects/ (2 characters).
	HashDirPrefixLength = 2

	// ShortHashLength is the abbreviated id length shown for merge parents.
	ShortHashLength = 7
)

// Object type prefixes used in object headers and commit metadata.
const (
	// CommitFormatLine opens every commit object and carries the encoding version.
	CommitFormatLine = "gitlet-commit 1"

	// CommitTreePrefix marks the tree line in commit objects.
	CommitTreePrefix = "tree "

	// CommitParentPrefix marks the first parent line in commit objects.
	CommitParentPrefix = "parent "

	// CommitMergeParentPrefix marks the second parent line of merge commits.
	CommitMergeParentPrefix = "merge-parent "

	// CommitTimestampPrefix marks the timestamp line in commit objects.
	CommitTimestampPrefix = "timestamp "
)

// Object format constants.
const (
	// NullByte separates header from content in gitlet objects.
	NullByte = '\x00'
)

// Conflict markers written into files that both branches changed differently.
const (
	ConflictHeadMarker  = "<<<<<<< HEAD\n"
	ConflictSeparator   = "=======\n"
	ConflictOtherMarker = ">>>>>>>\n"
)

// LogDateFormat renders commit timestamps in log output.
const LogDateFormat = "Mon Jan 2 15:04:05 2006 -0700"
