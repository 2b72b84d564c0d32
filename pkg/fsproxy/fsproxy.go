// Package fsproxy provides the directory-enumeration seam the matcher walks
// through. The Proxy interface abstracts over the real filesystem and
// in-memory test filesystems so the tree walker never touches the OS
// directly.
package fsproxy

// DefaultMaxPathLength is the path length limit advertised by proxies that
// have no better number from the underlying filesystem.
const DefaultMaxPathLength = 4096

// DirIterator yields the entries of a single directory, one at a time.
// Next must be called before the first entry is available. The caller that
// opened the iterator owns it and must Close it on every exit path.
type DirIterator interface {
	// Next advances to the next entry, returning false when the directory
	// is exhausted.
	Next() bool

	// Name returns the base name of the current entry.
	Name() string

	// IsDirectory reports whether the current entry is a directory.
	IsDirectory() bool

	// Close releases the handle backing the iterator.
	Close() error
}

// Proxy is the capability the tree walker consumes: opening directory
// listings and advertising how long a path may grow.
type Proxy interface {
	// NewDirIterator opens a listing of the entries in path. An empty path
	// means the current directory. Opening a missing or unreadable
	// directory returns an error; the walker treats that as zero entries.
	NewDirIterator(path string) (DirIterator, error)

	// MaxPathLength returns the longest path, in bytes, the proxy can
	// address.
	MaxPathLength() int
}
