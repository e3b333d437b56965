package config

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// PathMatcher matches slash-separated relative paths against glob patterns.
// `*` stops at a slash and `**` crosses them. A pattern without a slash
// matches the base name at any depth, as in .gitignore.
type PathMatcher struct {
	patterns []string
	full     []glob.Glob
	base     []glob.Glob
}

// NewPathMatcher compiles patterns. An empty list matches nothing.
func NewPathMatcher(patterns []string) (*PathMatcher, error) {
	matcher := &PathMatcher{patterns: patterns}
	for _, pattern := range patterns {
		pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")
		if pattern == "" {
			continue
		}
		compiled, err := glob.Compile(strings.TrimSuffix(pattern, "/"), '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		if strings.Contains(strings.TrimSuffix(pattern, "/"), "/") {
			matcher.full = append(matcher.full, compiled)
		} else {
			matcher.base = append(matcher.base, compiled)
		}
	}
	return matcher, nil
}

// Empty reports whether the matcher has no patterns.
func (m *PathMatcher) Empty() bool {
	return m == nil || len(m.full)+len(m.base) == 0
}

// Patterns returns the source patterns.
func (m *PathMatcher) Patterns() []string {
	if m == nil {
		return nil
	}
	return m.patterns
}

// Match reports whether rel matches any pattern. rel may use the OS
// separator.
func (m *PathMatcher) Match(rel string) bool {
	if m.Empty() {
		return false
	}
	rel = strings.TrimPrefix(filepath.ToSlash(rel), "./")
	for _, g := range m.full {
		if g.Match(rel) {
			return true
		}
	}
	base := path.Base(rel)
	for _, g := range m.base {
		if g.Match(base) {
			return true
		}
	}
	return false
}

// MatchDir reports whether the directory rel, or any of its parents, is
// matched. Discovery uses it to prune whole trees.
func (m *PathMatcher) MatchDir(rel string) bool {
	if m.Empty() {
		return false
	}
	rel = strings.TrimSuffix(strings.TrimPrefix(filepath.ToSlash(rel), "./"), "/")
	for _, g := range m.full {
		if g.Match(rel) || g.Match(rel+"/") {
			return true
		}
	}
	for _, segment := range strings.Split(rel, "/") {
		for _, g := range m.base {
			if g.Match(segment) {
				return true
			}
		}
	}
	return false
}
