package fsproxy

import (
	"io/fs"
	"os"

	"github.com/spf13/afero"
)

// AferoProxy is a Proxy over any afero filesystem. With afero.NewMemMapFs
// it doubles as the in-memory test filesystem for walker tests.
type AferoProxy struct {
	fs      afero.Fs
	maxPath int
}

// NewAfero creates a Proxy backed by the given afero filesystem.
func NewAfero(aferoFs afero.Fs) *AferoProxy {
	return &AferoProxy{fs: aferoFs, maxPath: DefaultMaxPathLength}
}

// WithMaxPathLength overrides the advertised path length limit. Used by
// tests that exercise the walker's resource-exhaustion handling.
func (a *AferoProxy) WithMaxPathLength(n int) *AferoProxy {
	a.maxPath = n
	return a
}

func (a *AferoProxy) MaxPathLength() int {
	return a.maxPath
}

func (a *AferoProxy) NewDirIterator(path string) (DirIterator, error) {
	if path == "" {
		path = "."
	}
	info, err := a.fs.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrInvalid}
	}
	f, err := a.fs.Open(path)
	if err != nil {
		return nil, err
	}
	infos, err := f.Readdir(-1)
	closeErr := f.Close()
	if err != nil {
		return nil, err
	}
	if closeErr != nil {
		return nil, closeErr
	}
	return &aferoDirIterator{infos: infos, index: -1}, nil
}

// aferoDirIterator walks a pre-read entry slice; afero filesystems have no
// OS handle worth holding open across the iteration.
type aferoDirIterator struct {
	infos []os.FileInfo
	index int
}

func (it *aferoDirIterator) Next() bool {
	if it.index+1 >= len(it.infos) {
		it.index = len(it.infos)
		return false
	}
	it.index++
	return true
}

func (it *aferoDirIterator) Name() string {
	if it.index < 0 || it.index >= len(it.infos) {
		return ""
	}
	return it.infos[it.index].Name()
}

func (it *aferoDirIterator) IsDirectory() bool {
	if it.index < 0 || it.index >= len(it.infos) {
		return false
	}
	return it.infos[it.index].IsDir()
}

func (it *aferoDirIterator) Close() error {
	return nil
}
