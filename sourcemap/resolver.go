// Package sourcemap resolves changed file paths to the logical components
// they belong to, so component-scoped constraints get a chance to match
// file-only change requests.
package sourcemap

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Rule maps a file glob to a component name. Rules are checked in
// declaration order; the first matching rule claims the file.
type Rule struct {
	Pattern   string `json:"pattern" yaml:"pattern"`
	Component string `json:"component" yaml:"component"`
}

// ComponentsFile is the components.yaml structure.
type ComponentsFile struct {
	Version string `yaml:"version"`
	Rules   []Rule `yaml:"rules"`
}

// LoadRules reads component mapping rules from a YAML file. Patterns are
// normalized and validated; a malformed glob or a blank component name fails
// the load.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read components file: %w", err)
	}

	var file ComponentsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse components file: %w", err)
	}

	for i := range file.Rules {
		r := &file.Rules[i]
		r.Pattern = normalizePath(strings.TrimSpace(r.Pattern))
		if r.Pattern == "" {
			return nil, fmt.Errorf("rule %d: empty pattern", i)
		}
		if !doublestar.ValidatePattern(r.Pattern) {
			return nil, fmt.Errorf("rule %d: malformed glob %q", i, r.Pattern)
		}
		if strings.TrimSpace(r.Component) == "" {
			return nil, fmt.Errorf("rule %d: empty component name", i)
		}
	}

	return file.Rules, nil
}

// Resolver maps file paths to component names. Declared rules are consulted
// first; when none claims a file and a source root is set, the file content
// is inspected (Go package clause, TypeScript exported declarations).
// Per-file resolution failures are non-fatal: the file just contributes no
// components.
type Resolver struct {
	rules []Rule
	root  string
}

// New builds a resolver over the given rules. root is the directory file
// paths are relative to; leave it empty to disable source inspection.
func New(rules []Rule, root string) *Resolver {
	return &Resolver{rules: rules, root: root}
}

// Resolve maps the files to the set of component names they belong to,
// sorted and deduplicated.
func (r *Resolver) Resolve(ctx context.Context, files []string) []string {
	seen := make(map[string]bool)
	components := make([]string, 0)

	for _, file := range files {
		for _, name := range r.resolveFile(ctx, normalizePath(file)) {
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			components = append(components, name)
		}
	}

	sort.Strings(components)
	return components
}

func (r *Resolver) resolveFile(ctx context.Context, file string) []string {
	if file == "" {
		return nil
	}

	for _, rule := range r.rules {
		ok, err := doublestar.Match(rule.Pattern, file)
		if err != nil {
			continue // patterns are validated at load time
		}
		if ok {
			return []string{rule.Component}
		}
	}

	if r.root == "" {
		return nil
	}

	full := filepath.Join(r.root, filepath.FromSlash(file))
	switch {
	case strings.HasSuffix(file, ".go"):
		name, err := goPackage(full)
		if err != nil {
			return nil
		}
		return []string{name}
	case strings.HasSuffix(file, ".ts"), strings.HasSuffix(file, ".tsx"):
		names, err := typescriptExports(ctx, full)
		if err != nil {
			return nil
		}
		return names
	}
	return nil
}

// normalizePath squashes separators so rule patterns and request paths
// compare consistently. Case is preserved.
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
