// Package matcher implements wildcard path matching over filesystem trees.
//
// Patterns may contain three wildcards: '?' matches any single character,
// '*' matches any run of characters within one path segment, and '...'
// (or its synonym '**') matches any run of characters including path
// separators, spanning directories. Literal characters compare without
// regard to ASCII case, and '/' and '\' are interchangeable.
//
// The package exposes three layers:
//
//   - WildComp and PathMatch, pure string predicates implementing the
//     character-level and path-level matching rules.
//   - Normalize, which parses a raw pattern into a canonical sequence of
//     path segments.
//   - Matcher, which walks a directory tree through a fsproxy.Proxy and
//     reports every entry whose path matches the pattern.
package matcher
