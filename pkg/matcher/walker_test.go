package matcher

import (
	"sort"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/pathmatch/pkg/errors"
	"github.com/arthur-debert/pathmatch/pkg/fsproxy"
)

// newTestFs builds an in-memory tree. Entries ending in "/" are
// directories, everything else is an empty file.
func newTestFs(t *testing.T, entries ...string) afero.Fs {
	t.Helper()
	memFs := afero.NewMemMapFs()
	for _, entry := range entries {
		if entry[len(entry)-1] == '/' {
			require.NoError(t, memFs.MkdirAll(entry[:len(entry)-1], 0755))
		} else {
			require.NoError(t, afero.WriteFile(memFs, entry, nil, 0644))
		}
	}
	return memFs
}

// matchAll runs one walk and returns the reported paths as a sorted slice.
func matchAll(t *testing.T, fs afero.Fs, pattern string) []string {
	t.Helper()
	m := New(fsproxy.NewAfero(fs))
	var got []string
	err := m.Match(pattern, func(path string, isDir bool) bool {
		got = append(got, path)
		return true
	})
	require.NoError(t, err)
	sort.Strings(got)
	return got
}

func TestMatchLiteralPath(t *testing.T) {
	fs := newTestFs(t, "root/sub/y.txt", "root/x.txt")

	assert.Equal(t, []string{"root/sub/y.txt"}, matchAll(t, fs, "root/sub/y.txt"))
	assert.Equal(t, []string{"root/x.txt"}, matchAll(t, fs, "root/x.txt"))
	assert.Empty(t, matchAll(t, fs, "root/sub/missing.txt"))
}

func TestMatchLiteralLastSegmentIsCaseInsensitive(t *testing.T) {
	fs := newTestFs(t, "root/File.TXT")

	assert.Equal(t, []string{"root/File.TXT"}, matchAll(t, fs, "root/file.txt"))
}

func TestMatchSingleWildcardLastSegment(t *testing.T) {
	fs := newTestFs(t, "root/x.txt", "root/y.txt", "root/z.log", "root/sub/")

	assert.Equal(t,
		[]string{"root/x.txt", "root/y.txt"},
		matchAll(t, fs, "root/*.txt"))
	assert.Equal(t,
		[]string{"root/x.txt", "root/y.txt", "root/z.log"},
		matchAll(t, fs, "root/?.*"))
}

func TestMatchSingleWildcardIntermediateSegment(t *testing.T) {
	fs := newTestFs(t,
		"apps/web/main.go",
		"apps/worker/main.go",
		"apps/web/util.go",
		"docs/web/main.go",
	)

	assert.Equal(t,
		[]string{"apps/web/main.go", "apps/worker/main.go"},
		matchAll(t, fs, "apps/w*/main.go"))
}

func TestMatchEllipsisEndToEnd(t *testing.T) {
	// The canonical scenario: root/{x.txt, sub/{y.txt, z.log}}.
	fs := newTestFs(t, "root/x.txt", "root/sub/y.txt", "root/sub/z.log")

	assert.Equal(t,
		[]string{"root/sub/y.txt", "root/x.txt"},
		matchAll(t, fs, "root/.../*.txt"))
	assert.Equal(t,
		[]string{"root/sub/z.log"},
		matchAll(t, fs, "root/.../*.log"))
}

func TestMatchDoubleAsteriskSynonym(t *testing.T) {
	fs := newTestFs(t, "root/x.txt", "root/sub/y.txt", "root/sub/z.log")

	assert.Equal(t,
		[]string{"root/sub/y.txt", "root/x.txt"},
		matchAll(t, fs, "root/**/*.txt"))
}

func TestMatchBareEllipsisReportsEverything(t *testing.T) {
	fs := newTestFs(t, "a/b/c.txt", "a/d.log")

	assert.Equal(t,
		[]string{"a", "a/b", "a/b/c.txt", "a/d.log"},
		matchAll(t, fs, "..."))
}

func TestMatchEllipsisWithLiteralPrefix(t *testing.T) {
	fs := newTestFs(t,
		"lib/app-core/x.txt",
		"lib/app-util/y.txt",
		"lib/vendor/z.txt",
	)

	// "app..." filters the immediate children of lib before descending.
	got := matchAll(t, fs, "lib/app.../*.txt")
	assert.Equal(t, []string{"lib/app-core/x.txt", "lib/app-util/y.txt"}, got)
}

func TestMatchEllipsisGluedSuffix(t *testing.T) {
	fs := newTestFs(t, "abc/def/ghi/jkl", "abc/def/other")

	assert.Equal(t, []string{"abc/def/ghi/jkl"}, matchAll(t, fs, "ab...kl"))
}

func TestMatchEllipsisIntermediateLiteral(t *testing.T) {
	fs := newTestFs(t,
		"src/a/testdata/one.golden",
		"src/b/c/testdata/two.golden",
		"src/b/c/other/two.golden",
	)

	assert.Equal(t,
		[]string{"src/a/testdata/one.golden", "src/b/c/testdata/two.golden"},
		matchAll(t, fs, "src/.../testdata/*.golden"))
}

func TestMatchDirectoriesOnly(t *testing.T) {
	fs := newTestFs(t, "root/sub/", "root/sub2/", "root/file")

	assert.Equal(t, []string{"root/sub", "root/sub2"}, matchAll(t, fs, "root/*/"))
	assert.Equal(t,
		[]string{"root", "root/sub", "root/sub2"},
		matchAll(t, fs, ".../"))
}

func TestMatchEarlyStop(t *testing.T) {
	fs := newTestFs(t, "root/a.txt", "root/b.txt", "root/c.txt")

	m := New(fsproxy.NewAfero(fs))
	calls := 0
	err := m.Match("root/*.txt", func(path string, isDir bool) bool {
		calls++
		return false
	})

	require.NoError(t, err, "early stop is not an error")
	assert.Equal(t, 1, calls)
}

func TestMatchEarlyStopInsideEllipsis(t *testing.T) {
	fs := newTestFs(t, "a/b/c/d.txt", "a/e.txt", "a/f.txt")

	m := New(fsproxy.NewAfero(fs))
	calls := 0
	err := m.Match("a/...", func(path string, isDir bool) bool {
		calls++
		return false
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestMatchNoCallback(t *testing.T) {
	m := New(fsproxy.NewAfero(afero.NewMemMapFs()))

	err := m.Match("a/b", nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoCallback))
}

func TestMatchEmptyPattern(t *testing.T) {
	m := New(fsproxy.NewAfero(afero.NewMemMapFs()))
	cb := func(path string, isDir bool) bool { return true }

	for _, pattern := range []string{"", ".", "./", "/"} {
		err := m.Match(pattern, cb)
		require.Error(t, err, "pattern %q", pattern)
		assert.True(t, errors.IsErrorCode(err, errors.ErrEmptyPattern), "pattern %q", pattern)
	}
}

func TestMatchZeroMatchesIsNotAnError(t *testing.T) {
	fs := newTestFs(t, "root/x.txt")

	m := New(fsproxy.NewAfero(fs))
	calls := 0
	err := m.Match("root/*.log", func(path string, isDir bool) bool {
		calls++
		return true
	})

	require.NoError(t, err)
	assert.Zero(t, calls)
}

func TestMatchMissingRootYieldsNothing(t *testing.T) {
	fs := newTestFs(t, "present/x.txt")

	assert.Empty(t, matchAll(t, fs, "absent/*.txt"))
	assert.Empty(t, matchAll(t, fs, "absent/.../x"))
}

func TestMatchPathLengthOverflow(t *testing.T) {
	fs := newTestFs(t, "root/sub/deep/file.txt")
	proxy := fsproxy.NewAfero(fs).WithMaxPathLength(8)

	m := New(proxy)
	err := m.Match("root/.../*.txt", func(path string, isDir bool) bool { return true })

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrResourceExhausted))
}

func TestMatchParentResolvedStatically(t *testing.T) {
	// "sub/.." cancels during normalization, so the walker never visits
	// the intermediate directory at all.
	fs := newTestFs(t, "side/x.txt")

	m := New(fsproxy.NewAfero(fs))
	var got []string
	err := m.Match("side/sub/../x.txt", func(path string, isDir bool) bool {
		got = append(got, path)
		return true
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"side/x.txt"}, got)
}

func TestMatchReportsDirectoryFlag(t *testing.T) {
	fs := newTestFs(t, "root/sub/", "root/file.txt")

	m := New(fsproxy.NewAfero(fs))
	flags := make(map[string]bool)
	err := m.Match("root/*", func(path string, isDir bool) bool {
		flags[path] = isDir
		return true
	})

	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"root/sub": true, "root/file.txt": false}, flags)
}

func TestMatchDoesNotReportDotEntries(t *testing.T) {
	fs := newTestFs(t, "root/a")

	for _, path := range matchAll(t, fs, "root/*") {
		assert.NotContains(t, []string{"root/.", "root/.."}, path)
	}
}

func TestMatcherReusableAcrossCalls(t *testing.T) {
	fs := newTestFs(t, "root/x.txt", "root/sub/y.txt")
	m := New(fsproxy.NewAfero(fs))

	for i := 0; i < 2; i++ {
		var got []string
		err := m.Match("root/.../*.txt", func(path string, isDir bool) bool {
			got = append(got, path)
			return true
		})
		require.NoError(t, err)
		sort.Strings(got)
		assert.Equal(t, []string{"root/sub/y.txt", "root/x.txt"}, got)
	}
}
