package matcher

import (
	goerrors "errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/pathmatch/pkg/errors"
	"github.com/arthur-debert/pathmatch/pkg/fsproxy"
	"github.com/arthur-debert/pathmatch/pkg/logging"
)

// MatchFunc is called once for every matching tree entry, with the full
// matched path (relative unless the pattern was anchored) and whether the
// entry is a directory. Returning false stops the walk; that is a normal
// early termination, not an error.
type MatchFunc func(path string, isDir bool) bool

// errStopWalk propagates a callback's stop request up through the
// recursion. It never escapes Match.
var errStopWalk = goerrors.New("walk stopped by callback")

// Matcher walks a directory tree through a fsproxy.Proxy, reporting every
// entry whose path matches a wildcard pattern.
//
// A Matcher holds per-walk state (the directories-only flag and the
// ellipsis remainder), so at most one Match call may be in flight per
// instance. For concurrent matching, construct one Matcher per goroutine;
// they are cheap and share nothing.
type Matcher struct {
	proxy fsproxy.Proxy
	log   zerolog.Logger

	callback MatchFunc
	dirsOnly bool
	maxPath  int

	// Ellipsis state, live only while a fetch-all is in progress: the
	// rendered pattern from the multi-wild segment onward, and the offset
	// into the accumulated path where its matching starts.
	remainder string
	anchor    int
}

// New creates a Matcher that enumerates directories through proxy.
func New(proxy fsproxy.Proxy) *Matcher {
	return &Matcher{
		proxy: proxy,
		log:   logging.GetLogger("matcher"),
	}
}

// Match walks the tree according to pattern and calls fn for every
// matching entry. It returns nil when the walk ran to completion or was
// deliberately stopped by the callback; finding zero matches is not an
// error. It returns a coded error when fn is nil (NO_CALLBACK), when the
// pattern normalizes to nothing (EMPTY_PATTERN), or when a matched path
// would exceed the proxy's path length limit (RESOURCE_EXHAUSTED).
func (m *Matcher) Match(pattern string, fn MatchFunc) error {
	if fn == nil {
		return errors.New(errors.ErrNoCallback, "match callback is required")
	}

	pat := Normalize(pattern)
	if pat.IsEmpty() {
		return errors.Newf(errors.ErrEmptyPattern, "pattern %q has no matchable segments", pattern)
	}

	m.callback = fn
	m.dirsOnly = pat.DirsOnly
	m.maxPath = m.proxy.MaxPathLength()
	m.remainder = ""
	m.anchor = 0

	segs := pat.Segments
	root := ""
	if segs[0].Kind == SegRootAnchor {
		root = "/"
		segs = segs[1:]
	}

	m.log.Debug().
		Str("pattern", pattern).
		Str("normalized", pat.String()).
		Bool("dirsOnly", pat.DirsOnly).
		Msg("starting match walk")

	err := m.matchDir(root, segs)
	if goerrors.Is(err, errStopWalk) {
		return nil
	}
	return err
}

// matchDir matches the remaining segments against the tree below dir.
// dir is the accumulated path so far: empty for the starting directory,
// otherwise ending in a slash.
func (m *Matcher) matchDir(dir string, segs []Segment) error {
	if len(segs) == 0 {
		return nil
	}
	seg, rest := segs[0], segs[1:]

	if seg.Kind == SegMultiWild {
		return m.matchEllipsis(dir, segs)
	}

	// A literal segment with more pattern to come descends straight into
	// the named child; there is no need to enumerate its siblings. If the
	// child does not exist, the next level's enumeration comes up empty.
	if seg.Kind == SegLiteral && len(rest) > 0 {
		child, err := m.appendPath(dir, seg.Text)
		if err != nil {
			return err
		}
		return m.matchDir(child+"/", rest)
	}

	it, err := m.proxy.NewDirIterator(enumPath(dir))
	if err != nil {
		// Unreadable or vanished directories yield zero entries; sibling
		// branches keep going.
		m.log.Debug().Err(err).Str("dir", dir).Msg("cannot enumerate directory")
		return nil
	}
	defer func() { _ = it.Close() }()

	for it.Next() {
		name := it.Name()
		if isDotsDir(name) {
			continue
		}
		if !WildComp(seg.Text, name) {
			continue
		}

		if len(rest) > 0 {
			if !it.IsDirectory() {
				continue
			}
			child, err := m.appendPath(dir, name)
			if err != nil {
				return err
			}
			if err := m.matchDir(child+"/", rest); err != nil {
				return err
			}
			continue
		}

		if m.dirsOnly && !it.IsDirectory() {
			continue
		}
		full, err := m.appendPath(dir, name)
		if err != nil {
			return err
		}
		if !m.callback(full, it.IsDirectory()) {
			return errStopWalk
		}
	}

	return nil
}

// matchEllipsis handles a segment containing the directory-spanning
// wildcard: the rest of the tree below dir is fetched recursively, with
// reporting filtered by the pattern remainder.
func (m *Matcher) matchEllipsis(dir string, segs []Segment) error {
	seg := segs[0]
	markIdx := strings.Index(seg.Text, "...")
	prefix := seg.Text[:markIdx]

	if seg.Text == "..." && len(segs) == 1 {
		// A bare trailing "..." reports the whole subtree; no remainder
		// matching is needed.
		m.remainder = ""
	} else {
		m.remainder = renderSegments(segs)
		m.anchor = len(dir)
	}

	// A literal prefix glued to the wildcard ("abc.../x") filters the
	// immediate children before the recursive fetch descends.
	filter := ""
	if prefix != "" {
		filter = prefix + "*"
	}

	return m.fetchAll(dir, filter)
}

// fetchAll recursively visits every entry below dir. The walk itself is
// unconditional; prefixFilter (first level only) and the saved remainder
// pattern filter what gets reported, not what gets visited, since the
// remainder may match arbitrarily deep suffixes.
func (m *Matcher) fetchAll(dir string, prefixFilter string) error {
	it, err := m.proxy.NewDirIterator(enumPath(dir))
	if err != nil {
		m.log.Debug().Err(err).Str("dir", dir).Msg("cannot enumerate directory")
		return nil
	}
	defer func() { _ = it.Close() }()

	for it.Next() {
		name := it.Name()
		if isDotsDir(name) {
			continue
		}
		isDir := it.IsDirectory()

		if m.dirsOnly && !isDir {
			continue
		}
		if prefixFilter != "" && !WildComp(prefixFilter, name) {
			continue
		}

		full, err := m.appendPath(dir, name)
		if err != nil {
			return err
		}

		if m.remainder == "" || PathMatch(m.remainder, full[m.anchor:]) {
			if !m.callback(full, isDir) {
				return errStopWalk
			}
		}

		if isDir {
			if err := m.fetchAll(full+"/", ""); err != nil {
				return err
			}
		}
	}

	return nil
}

// appendPath joins an entry name onto the accumulated path, enforcing the
// proxy's path length limit as a hard error rather than silently dropping
// the branch.
func (m *Matcher) appendPath(dir, name string) (string, error) {
	if len(dir)+len(name) > m.maxPath {
		return "", errors.Newf(errors.ErrResourceExhausted,
			"matched path under %q exceeds the maximum path length %d", dir, m.maxPath).
			WithDetail("entry", name)
	}
	return dir + name, nil
}

// enumPath converts an accumulated path into the form the proxy opens:
// the trailing slash goes, except on the filesystem root, and the empty
// path stays empty (the proxy's spelling of the current directory).
func enumPath(dir string) string {
	if dir == "" || dir == "/" {
		return dir
	}
	return strings.TrimSuffix(dir, "/")
}

// isDotsDir reports whether name is the "." or ".." directory entry.
func isDotsDir(name string) bool {
	return name == "." || name == ".."
}

// renderSegments joins segment texts back into canonical pattern form for
// remainder matching with PathMatch.
func renderSegments(segs []Segment) string {
	parts := make([]string, 0, len(segs))
	for _, seg := range segs {
		parts = append(parts, seg.Text)
	}
	return strings.Join(parts, "/")
}
