// Package output turns matcher results into lines on a terminal. The
// Reporter is shaped to plug straight into matcher.Match as its callback.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/pathmatch/pkg/errors"
)

// ColorMode controls whether reported paths are styled.
type ColorMode int

const (
	// ColorAuto styles output only when writing to a color-capable terminal.
	ColorAuto ColorMode = iota
	// ColorAlways styles output unconditionally.
	ColorAlways
	// ColorNever emits plain text.
	ColorNever
)

// ParseColorMode parses a configuration value into a ColorMode.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, errors.Newf(errors.ErrInvalidInput, "unknown color mode: %s", s)
	}
}

// Enabled reports whether the mode resolves to styled output for w.
func (m ColorMode) Enabled(w io.Writer) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}

// Options configures a Reporter.
type Options struct {
	// Slash is the separator to use in printed paths, '/' or '\\'.
	Slash byte

	// Absolute prints absolute paths.
	Absolute bool

	// FilesOnly suppresses directory matches. The walk still continues,
	// only the printing is skipped.
	FilesOnly bool

	// Limit stops the walk after this many printed matches; 0 means
	// unlimited.
	Limit int

	// Color styles directory entries.
	Color bool
}

// Reporter prints matched paths one per line. Its Report method satisfies
// matcher.MatchFunc.
type Reporter struct {
	w    io.Writer
	opts Options

	count int
}

// NewReporter returns a Reporter writing to w.
func NewReporter(w io.Writer, opts Options) *Reporter {
	if opts.Slash == 0 {
		opts.Slash = '/'
	}
	return &Reporter{w: w, opts: opts}
}

// Report prints one match and returns false once the configured limit has
// been reached.
func (r *Reporter) Report(path string, isDir bool) bool {
	if r.opts.FilesOnly && isDir {
		return true
	}

	display := path
	if r.opts.Absolute {
		if abs, err := filepath.Abs(path); err == nil {
			display = abs
		}
	}
	display = applySlash(display, r.opts.Slash)

	if r.opts.Color && isDir {
		display = DirectoryStyle.Render(display)
	}
	fmt.Fprintln(r.w, display)

	r.count++
	return r.opts.Limit <= 0 || r.count < r.opts.Limit
}

// Count returns the number of matches printed so far.
func (r *Reporter) Count() int {
	return r.count
}

// Reset clears the match counter so the limit applies afresh to the next
// pattern.
func (r *Reporter) Reset() {
	r.count = 0
}

// applySlash rewrites every separator in path to the configured one.
func applySlash(path string, slash byte) string {
	return strings.Map(func(c rune) rune {
		if c == '/' || c == '\\' {
			return rune(slash)
		}
		return c
	}, path)
}
