package matcher

import "strings"

// SegmentKind classifies one normalized path segment.
type SegmentKind int

const (
	// SegLiteral is a segment with no wildcard characters, matched by
	// exact (case-insensitive) name.
	SegLiteral SegmentKind = iota

	// SegSingleWild contains '?' or '*' but no directory-spanning
	// wildcard; it is confined to one path segment.
	SegSingleWild

	// SegMultiWild contains the directory-spanning "..." wildcard,
	// possibly glued to literal or single-wild text ("abc...", "a...b").
	SegMultiWild

	// SegRootAnchor marks a pattern that began with a separator. It can
	// only be the first segment, and appears at most once.
	SegRootAnchor
)

// Segment is one path component of a normalized pattern. For every kind
// but SegRootAnchor, Text holds the canonical segment text, with "..." as
// the only spelling of the directory-spanning wildcard.
type Segment struct {
	Kind SegmentKind
	Text string
}

// Pattern is the result of normalizing a raw wildcard pattern: an ordered
// segment sequence plus the directories-only flag set by a trailing
// separator in the original pattern.
type Pattern struct {
	Segments []Segment
	DirsOnly bool
}

// IsEmpty reports whether the pattern has no matchable segments. Matching
// an empty pattern is an error, not a match-everything.
func (p Pattern) IsEmpty() bool {
	for _, seg := range p.Segments {
		if seg.Kind != SegRootAnchor {
			return false
		}
	}
	return true
}

// String renders the canonical form of the pattern. Normalizing the
// rendered form yields the same segment sequence again.
func (p Pattern) String() string {
	var b strings.Builder
	for i, seg := range p.Segments {
		if seg.Kind == SegRootAnchor {
			b.WriteByte('/')
			continue
		}
		if i > 0 && p.Segments[i-1].Kind != SegRootAnchor {
			b.WriteByte('/')
		}
		b.WriteString(seg.Text)
	}
	if p.DirsOnly {
		b.WriteByte('/')
	}
	return b.String()
}

// multiWildMark is the internal spelling of the directory-spanning
// wildcard during normalization. NUL cannot appear in a user pattern, so
// the marker never collides with literal segment content.
const multiWildMark = "\x00"

// Normalize parses a raw wildcard pattern into its canonical segment
// sequence. Backslashes become forward slashes, "**" becomes "...", runs
// of separators and of directory-spanning wildcards collapse, "." segments
// drop, and ".." segments cancel a preceding literal segment where that is
// statically resolvable. A trailing separator sets the directories-only
// flag instead of producing an empty segment.
//
// Normalize is pure and deterministic; an empty or all-separator input
// yields an empty segment sequence, which Matcher.Match rejects.
func Normalize(raw string) Pattern {
	s := strings.ReplaceAll(raw, "\\", "/")
	s = markMultiWilds(s)

	var p Pattern

	// A trailing separator run means directories only; it contributes no
	// segment of its own.
	if trimmed := strings.TrimRight(s, "/"); trimmed != s {
		p.DirsOnly = true
		s = trimmed
	}

	// A leading separator anchors the walk at the filesystem root.
	if strings.HasPrefix(s, "/") {
		p.Segments = append(p.Segments, Segment{Kind: SegRootAnchor})
		s = strings.TrimLeft(s, "/")
	}

	for _, part := range strings.Split(s, "/") {
		if part == "" || part == "." {
			continue
		}
		seg := makeSegment(part)

		// A ".." cancels a preceding literal segment. It cannot cancel
		// across a wildcard boundary, above the root anchor, or into
		// another "..", in which case it stays literal.
		if seg.Kind == SegLiteral && seg.Text == ".." {
			if n := len(p.Segments); n > 0 {
				prev := p.Segments[n-1]
				if prev.Kind == SegLiteral && prev.Text != ".." {
					p.Segments = p.Segments[:n-1]
					continue
				}
			}
		}

		p.Segments = append(p.Segments, seg)
	}

	return p
}

// makeSegment classifies one split segment and restores the canonical
// "..." spelling for the internal multi-wild marker.
func makeSegment(text string) Segment {
	if strings.Contains(text, multiWildMark) {
		return Segment{
			Kind: SegMultiWild,
			Text: strings.ReplaceAll(text, multiWildMark, "..."),
		}
	}
	if strings.ContainsAny(text, "*?") {
		return Segment{Kind: SegSingleWild, Text: text}
	}
	return Segment{Kind: SegLiteral, Text: text}
}

// markMultiWilds rewrites every directory-spanning wildcard token ("..."
// or a run of two or more asterisks) as the internal marker, collapsing
// runs of such tokens, and of separators between them, into a single
// marker. The collapse keeps pathological patterns like ".../.../..."
// from producing redundant wildcard segments.
func markMultiWilds(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	i := 0
	for i < len(s) {
		tok := multiWildTokenLen(s, i)
		if tok == 0 {
			b.WriteByte(s[i])
			i++
			continue
		}
		i += tok
		for {
			// More tokens glued directly on.
			if tok := multiWildTokenLen(s, i); tok > 0 {
				i += tok
				continue
			}
			// Tokens separated from the run only by separators.
			j := i
			for j < len(s) && s[j] == '/' {
				j++
			}
			if tok := multiWildTokenLen(s, j); j > i && tok > 0 {
				i = j + tok
				continue
			}
			break
		}
		b.WriteString(multiWildMark)
	}
	return b.String()
}

// multiWildTokenLen returns the length of the directory-spanning wildcard
// token at offset i, or 0 if there is none. A run of two or more
// asterisks counts as one token.
func multiWildTokenLen(s string, i int) int {
	if strings.HasPrefix(s[i:], "...") {
		return 3
	}
	if i+1 < len(s) && s[i] == '*' && s[i+1] == '*' {
		j := i
		for j < len(s) && s[j] == '*' {
			j++
		}
		return j - i
	}
	return 0
}
