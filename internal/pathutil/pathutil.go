// Package pathutil holds the pure path-string helpers shared by the scanner
// and the presentation layers.
package pathutil

import (
	"path/filepath"
	"strings"
)

// DefaultDelimiter leaves paths with their native separators
const DefaultDelimiter = "Default"

// isSeparator reports whether r separates path segments. Both separators are
// accepted regardless of platform so paths from any OS compare the same way.
func isSeparator(r rune) bool {
	return r == '/' || r == '\\'
}

// Segments splits a path at every '/' or '\'. Empty segments are kept, so a
// leading separator produces a leading "" segment.
func Segments(path string) []string {
	var parts []string
	start := 0
	for i, r := range path {
		if isSeparator(r) {
			parts = append(parts, path[start:i])
			start = i + 1
		}
	}
	return append(parts, path[start:])
}

// CommonPrefixLength returns the number of leading bytes shared, segment by
// segment, by all paths. The offset includes the separator following the
// last shared segment and is clamped to the shortest path, so it can be used
// to slice every input. Fewer than two paths, or paths sharing nothing but
// the filesystem root, give 0.
func CommonPrefixLength(paths []string) int {
	if len(paths) < 2 {
		return 0
	}

	parts := make([][]string, len(paths))
	minSegments := -1
	shortest := len(paths[0])
	for i, p := range paths {
		parts[i] = Segments(p)
		if minSegments < 0 || len(parts[i]) < minSegments {
			minSegments = len(parts[i])
		}
		if len(p) < shortest {
			shortest = len(p)
		}
	}

	length := 0
	named := false
	for i := 0; i < minSegments; i++ {
		segment := parts[0][i]
		matched := true
		for j := 1; j < len(parts); j++ {
			if parts[j][i] != segment {
				matched = false
				break
			}
		}
		if !matched {
			break
		}
		if segment != "" {
			named = true
		}
		length += len(segment) + 1
	}

	if !named {
		return 0
	}
	if length > shortest {
		length = shortest
	}
	return length
}

// TrimSlashes removes one leading and one trailing separator
func TrimSlashes(path string) string {
	if path != "" && isSeparator(rune(path[0])) {
		path = path[1:]
	}
	if path != "" && isSeparator(rune(path[len(path)-1])) {
		path = path[:len(path)-1]
	}
	return path
}

// ReplaceSeparators rewrites every separator in path to delim. An empty or
// "Default" delimiter returns path unchanged.
func ReplaceSeparators(path, delim string) string {
	if delim == "" || delim == DefaultDelimiter {
		return path
	}
	var b strings.Builder
	b.Grow(len(path))
	for _, r := range path {
		if isSeparator(r) {
			b.WriteString(delim)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Join joins path parts with the native separator, then applies delim
func Join(delim string, parts ...string) string {
	return ReplaceSeparators(filepath.Join(parts...), delim)
}

// EndsWithAny reports whether path ends with any of the non-empty suffixes
func EndsWithAny(path string, suffixes []string) bool {
	for _, s := range suffixes {
		if s != "" && strings.HasSuffix(path, s) {
			return true
		}
	}
	return false
}
