package matcher

// foldByte lowercases a single ASCII byte. Case folding is ASCII-only:
// multi-byte runes compare exactly, byte for byte.
func foldByte(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// WildComp reports whether s matches pattern in its entirety. In the
// pattern, '?' matches exactly one character, '*' matches zero or more
// characters, and every other character matches itself without regard to
// ASCII case. An empty pattern matches only the empty string.
//
// WildComp is pure and safe for concurrent use.
func WildComp(pattern, s string) bool {
	pi, si := 0, 0

	// Scan through the single-character matches.
	for pi < len(pattern) && si < len(s) {
		c := pattern[pi]
		if c == '*' {
			break
		}
		if c != '?' && foldByte(c) != foldByte(s[si]) {
			return false
		}
		pi++
		si++
	}

	// Unless we stopped on an asterisk, the only way to match is for both
	// the pattern and the string to be exhausted.
	if pi == len(pattern) || pattern[pi] != '*' {
		return pi == len(pattern) && si == len(s)
	}

	// A run of asterisks is equivalent to a single asterisk.
	for pi < len(pattern) && pattern[pi] == '*' {
		pi++
	}

	// A trailing asterisk matches any remainder, including nothing.
	if pi == len(pattern) {
		return true
	}

	// Eat away at the string until the rest of the pattern matches or the
	// string is exhausted.
	for {
		if WildComp(pattern[pi:], s[si:]) {
			return true
		}
		if si == len(s) {
			return false
		}
		si++
	}
}
