package fsproxy

import (
	"io/fs"
	"os"
)

// OS is a Proxy over the real filesystem.
type OS struct{}

// NewOS creates a Proxy backed by the operating system.
func NewOS() *OS {
	return &OS{}
}

func (*OS) MaxPathLength() int {
	return DefaultMaxPathLength
}

func (*OS) NewDirIterator(path string) (DirIterator, error) {
	if path == "" {
		path = "."
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &osDirIterator{f: f}, nil
}

// osDirIterator reads directory entries in small batches so very large
// directories do not force one giant allocation up front.
type osDirIterator struct {
	f     *os.File
	batch []fs.DirEntry
	cur   fs.DirEntry
	done  bool
}

const osReadBatchSize = 128

func (it *osDirIterator) Next() bool {
	if it.done {
		return false
	}
	if len(it.batch) == 0 {
		batch, err := it.f.ReadDir(osReadBatchSize)
		if err != nil || len(batch) == 0 {
			it.done = true
			it.cur = nil
			return false
		}
		it.batch = batch
	}
	it.cur = it.batch[0]
	it.batch = it.batch[1:]
	return true
}

func (it *osDirIterator) Name() string {
	if it.cur == nil {
		return ""
	}
	return it.cur.Name()
}

func (it *osDirIterator) IsDirectory() bool {
	if it.cur == nil {
		return false
	}
	return it.cur.IsDir()
}

func (it *osDirIterator) Close() error {
	return it.f.Close()
}
