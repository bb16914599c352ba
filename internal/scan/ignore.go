package scan

import (
	"regexp"
	"strings"

	"ccs/internal/logging"
)

// IgnoreMatcher matches file paths against ignore patterns. Each pattern
// is tried as a regular expression; one that fails to compile degrades to
// a plain substring match.
type IgnoreMatcher struct {
	patterns []ignorePattern
}

type ignorePattern struct {
	raw string
	re  *regexp.Regexp // nil means substring match
}

// NewIgnoreMatcher compiles the given patterns.
func NewIgnoreMatcher(patterns []string, logger *logging.Logger) *IgnoreMatcher {
	m := &IgnoreMatcher{}
	for _, raw := range patterns {
		if raw == "" {
			continue
		}
		re, err := regexp.Compile(raw)
		if err != nil {
			logger.Debug("Ignore pattern is not a valid regexp, using substring match", map[string]interface{}{
				"pattern": raw,
				"error":   err.Error(),
			})
			re = nil
		}
		m.patterns = append(m.patterns, ignorePattern{raw: raw, re: re})
	}
	return m
}

// Match reports whether the path matches any ignore pattern.
// Paths are normalized to forward slashes before matching.
func (m *IgnoreMatcher) Match(path string) bool {
	normalized := strings.ReplaceAll(path, "\\", "/")
	for _, p := range m.patterns {
		if p.re != nil {
			if p.re.MatchString(normalized) {
				return true
			}
		} else if strings.Contains(normalized, p.raw) {
			return true
		}
	}
	return false
}
