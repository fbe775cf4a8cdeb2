package decision

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/c360studio/provgraph/provenance"
)

// Trace returns every decision whose affected files include the given path,
// oldest first with ties broken by ID. A file no decision touches yields an
// empty trace, not an error; a blank path is rejected with ErrEmptyInput.
func Trace(filePath string, decisions []Decision) ([]Decision, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, fmt.Errorf("file path: %w", provenance.ErrEmptyInput)
	}
	target := normalizePath(filePath)

	matched := make([]Decision, 0)
	for _, d := range decisions {
		for _, f := range d.AffectedFiles {
			if normalizePath(f) == target {
				matched = append(matched, d)
				break
			}
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	return matched, nil
}

// Overlapping returns the decisions that touch any of the given files, in
// input order.
func Overlapping(files []string, decisions []Decision) []Decision {
	overlapping := make([]Decision, 0)
	for _, d := range decisions {
		if d.Touches(files) {
			overlapping = append(overlapping, d)
		}
	}
	return overlapping
}

// normalizePath squashes separators so "src\auth\login.ts" and
// "src/auth/login.ts" compare equal. Case is preserved.
func normalizePath(p string) string {
	if p == "" {
		return ""
	}
	p = strings.ReplaceAll(p, `\`, "/")
	p = path.Clean(p)
	if p == "." {
		return ""
	}
	return p
}
