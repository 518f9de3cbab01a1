// Package vcs provides version control system abstractions.
//
// This is the version-control capability consumed by the mining pipeline
// (spec §6): open/clone, tag listing, filtered file listing, file content
// at a commit, commit-log traversal optionally restricted to a path, and
// rename-aware tree diffing. The concrete implementation wraps go-git;
// callers never import go-git directly so the pipeline stays testable
// against an in-memory fake.
package vcs

import (
	"context"
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Repository provides access to git repository operations.
type Repository interface {
	// Head returns a reference to the HEAD commit.
	Head() (Reference, error)
	// Log returns a commit iterator starting from HEAD.
	Log(opts *LogOptions) (CommitIterator, error)
	// LogFrom returns a commit iterator reachable from head, optionally
	// restricted to commits that touch path (empty path means unrestricted).
	LogFrom(head plumbing.Hash, path string) (CommitIterator, error)
	// CommitObject returns the commit with the given hash.
	CommitObject(hash plumbing.Hash) (Commit, error)
	// Tags returns every tag reference as name -> the commit it points at.
	// Lightweight and annotated tags are both resolved to their commit.
	Tags() (map[string]plumbing.Hash, error)
	// Heads returns the hash of every branch reference, used to seed a
	// whole-DAG scan (spec §4.3: "reachable from every head").
	Heads() ([]plumbing.Hash, error)
	// Blame returns blame information for a file at a specific commit.
	Blame(commit Commit, path string) (*BlameResult, error)
	// BlameAtHead returns blame information for a file at HEAD using native git.
	// This is much faster than Blame() for large repositories.
	BlameAtHead(path string) (*BlameResult, error)
	// RepoPath returns the root path of the repository.
	RepoPath() string
}

// Reference represents a git reference (branch, tag, HEAD).
type Reference interface {
	Hash() plumbing.Hash
}

// LogOptions configures the commit log query.
type LogOptions struct {
	Since *time.Time
}

// CommitIterator iterates over commits.
type CommitIterator interface {
	ForEach(fn func(Commit) error) error
	Close()
}

// Commit represents a git commit.
type Commit interface {
	// Hash returns the commit hash.
	Hash() plumbing.Hash
	// NumParents returns the number of parent commits.
	NumParents() int
	// Parent returns the nth parent commit.
	Parent(n int) (Commit, error)
	// Tree returns the tree object for this commit.
	Tree() (Tree, error)
	// Stats returns file stats for this commit.
	Stats() (object.FileStats, error)
	// Author returns commit author information.
	Author() object.Signature
	// Message returns the commit message.
	Message() string
}

// TreeEntry represents a file or directory in a git tree.
type TreeEntry struct {
	Path  string
	Size  int64
	IsDir bool
}

// Tree represents a git tree object.
type Tree interface {
	// Diff computes differences between this tree and another, with
	// rename detection enabled (spec §6: "rename detection on").
	Diff(to Tree) (Changes, error)
	// Entries returns all files in the tree (recursively).
	Entries() ([]TreeEntry, error)
	// Files returns paths ending in suffix whose path does not contain
	// excludeSubstr (case-insensitive). Used to enumerate non-test source
	// files (spec §4.7: "does not contain the substring 'test'").
	Files(suffix, excludeSubstr string) ([]string, error)
	// File returns the raw content of path in this tree.
	File(path string) ([]byte, error)
}

// MatchesSourceFilter reports whether path passes the standard "suffix,
// no excluded substring (case-insensitive)" filter used throughout the
// pipeline for picking non-test source files.
func MatchesSourceFilter(path, suffix, excludeSubstr string) bool {
	if suffix != "" && !strings.HasSuffix(path, suffix) {
		return false
	}
	if excludeSubstr == "" {
		return true
	}
	return !strings.Contains(strings.ToLower(path), strings.ToLower(excludeSubstr))
}

// Changes represents a collection of file changes between trees.
type Changes []Change

// Change represents a single file change.
type Change interface {
	// From returns the source file name (empty for new files).
	FromName() string
	// To returns the destination file name (empty for deleted files).
	ToName() string
	// Action classifies the change (spec §4.4 restricts to "modify").
	Action() ChangeAction
	// Patch computes the patch for this change.
	Patch() (Patch, error)
}

// ChangeAction classifies a tree diff entry.
type ChangeAction int

const (
	ActionModify ChangeAction = iota
	ActionInsert
	ActionDelete
)

// Patch represents a diff patch.
type Patch interface {
	FilePatches() []FilePatch
}

// FilePatch represents changes to a single file.
type FilePatch interface {
	Chunks() []Chunk
}

// Chunk represents a chunk of changes within a file patch.
type Chunk interface {
	Type() ChunkType
	Content() string
}

// ChunkType represents the type of change in a chunk.
type ChunkType int

const (
	ChunkEqual ChunkType = iota
	ChunkAdd
	ChunkDelete
)

// BlameResult contains blame information for a file.
type BlameResult struct {
	Lines []BlameLine
}

// BlameLine represents a single line in a blame result.
type BlameLine struct {
	Author     string
	AuthorName string
	Text       string
}

// Opener opens git repositories.
type Opener interface {
	// PlainOpen opens an existing git repository.
	PlainOpen(path string) (Repository, error)
	// PlainOpenWithDetect opens a git repository, detecting .git in parent directories.
	PlainOpenWithDetect(path string) (Repository, error)
	// Clone fetches remote into local and opens it.
	Clone(remote, local string) (Repository, error)
}

// ContextAwareRepository extends Repository with context-aware operations.
type ContextAwareRepository interface {
	Repository
	// LogWithContext returns a commit iterator with context support.
	LogWithContext(ctx context.Context, opts *LogOptions) (CommitIterator, error)
}
