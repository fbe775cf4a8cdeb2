package constraint

import (
	"path"
	"strings"
)

// NormalizePath prepares a file path or glob pattern for matching:
// backslashes become forward slashes, redundant elements are cleaned, and a
// leading "./" is dropped. Matching stays case-sensitive; normalization never
// changes letter case.
func NormalizePath(p string) string {
	if p == "" {
		return ""
	}
	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean(p)
	if p == "." {
		return ""
	}
	return p
}

// NormalizePaths normalizes a list of paths, dropping entries that normalize
// to empty.
func NormalizePaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if n := NormalizePath(p); n != "" {
			out = append(out, n)
		}
	}
	return out
}
