package matcher

import "strings"

// isSlashByte reports whether c is a forward or backward slash.
func isSlashByte(c byte) bool {
	return c == '/' || c == '\\'
}

// isEllipsisAt reports whether s begins with "..." at offset i.
func isEllipsisAt(s string, i int) bool {
	return strings.HasPrefix(s[i:], "...")
}

// isDoubleAsteriskAt reports whether s begins with "**" at offset i.
func isDoubleAsteriskAt(s string, i int) bool {
	return i+1 < len(s) && s[i] == '*' && s[i+1] == '*'
}

// isMultiWildAt reports whether s begins, at offset i, with a wildcard that
// matches multiple characters ('*', "**" or "...").
func isMultiWildAt(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	return s[i] == '*' || isEllipsisAt(s, i)
}

// PathMatch reports whether path matches pattern, where pattern and path
// operate over path syntax. In the pattern, '?' matches any single
// character except a slash, '*' matches any run of characters except
// slashes, and "..." or "**" matches any run of characters including
// slashes. Literal characters compare without regard to ASCII case.
// Forward and backward slashes are interchangeable on both sides, and a
// run of slashes compares as a single slash.
//
// A multi-character wildcard followed by slashes can match the empty
// string, so ".../foo" matches "foo". Use a question mark ("...?/foo") to
// defeat that rule.
//
// PathMatch is pure and safe for concurrent use.
func PathMatch(pattern, path string) bool {
	pi, si := 0, 0

	// Scan through the pattern and path until we hit a multi-character
	// wildcard or either string runs out.
	for pi < len(pattern) && si < len(path) {
		if isSlashByte(path[si]) {
			// Consume repeated slashes on the path.
			for si+1 < len(path) && isSlashByte(path[si+1]) {
				si++
			}
		}

		if isSlashByte(pattern[pi]) {
			if !isSlashByte(path[si]) {
				return false
			}
			// Consume repeated slashes on the pattern. Slash direction is
			// irrelevant, so the separators themselves always match here.
			for pi+1 < len(pattern) && isSlashByte(pattern[pi+1]) {
				pi++
			}
			pi++
			si++
			continue
		}

		if isMultiWildAt(pattern, pi) {
			break
		}

		if pattern[pi] != '?' {
			if foldByte(pattern[pi]) != foldByte(path[si]) {
				return false
			}
		} else if isSlashByte(path[si]) {
			// '?' matches anything but a slash.
			return false
		}

		pi++
		si++
	}

	// Unless we stopped on a multi-character wildcard, the only way to
	// match is for both the pattern and the path to be exhausted.
	if !isMultiWildAt(pattern, pi) {
		return pi == len(pattern) && si == len(path)
	}

	// Collapse the run of multi-character wildcards. A sequence of
	// asterisks is equivalent to a single asterisk, and a sequence of
	// ellipses and asterisks is equivalent to a single ellipsis. Without
	// this collapse, patterns like "***...***" yield exponential runtimes.
	ellipsis := false
	for isMultiWildAt(pattern, pi) {
		switch {
		case isEllipsisAt(pattern, pi):
			pi += 3
			ellipsis = true
		case isDoubleAsteriskAt(pattern, pi):
			pi += 2
			ellipsis = true
		default:
			pi++
		}
	}

	// A trailing ellipsis matches any remainder of the path.
	if ellipsis && pi == len(pattern) {
		return true
	}

	// A multi-character wildcard followed by any number of slashes can
	// match the empty string, so ".../foo" matches "foo".
	if pi < len(pattern) && isSlashByte(pattern[pi]) {
		j := pi + 1
		for j < len(pattern) && isSlashByte(pattern[j]) {
			j++
		}
		if PathMatch(pattern[j:], path[si:]) {
			return true
		}
	}

	if ellipsis {
		// Nibble away at the path, across slashes, until we match or
		// exhaust the path.
		for {
			if PathMatch(pattern[pi:], path[si:]) {
				return true
			}
			if si == len(path) {
				return false
			}
			si++
		}
	}

	// An asterisk nibbles away at the path only up to the next slash.
	for si < len(path) && !isSlashByte(path[si]) {
		if PathMatch(pattern[pi:], path[si:]) {
			return true
		}
		si++
	}

	// Test the remainder of the pattern against the remainder of the path.
	return PathMatch(pattern[pi:], path[si:])
}
