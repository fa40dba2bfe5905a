// Package ignore drops entries from a path list using gitignore-style patterns.
package ignore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Pattern encapsulates a compiled pattern, a negation flag, and where it came from.
type Pattern struct {
	Regexp *regexp.Regexp // Compiled regular expression for the pattern.
	Negate bool           // Pattern started with '!'.
	Source string         // File the pattern was read from, empty for inline patterns.
	LineNo int            // Line number in the source (1-based).
	Line   string         // Original pattern line.
}

// Matcher holds an ordered set of patterns. Later patterns win.
type Matcher struct {
	patterns []*Pattern
	logger   *zap.Logger
}

// NewMatcher creates an empty Matcher. A nil logger is replaced by a no-op one.
func NewMatcher(logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{logger: logger}
}

// Load builds a Matcher from the given ignore files in order. Files that do
// not exist are skipped.
func Load(logger *zap.Logger, files ...string) (*Matcher, error) {
	m := NewMatcher(logger)
	for _, file := range files {
		if file == "" {
			continue
		}
		if err := m.CompileFile(file); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Len returns the number of compiled patterns.
func (m *Matcher) Len() int {
	return len(m.patterns)
}

// CompileLines adds inline pattern lines.
func (m *Matcher) CompileLines(lines ...string) {
	m.compile("", lines)
}

// CompileFile reads an ignore file and adds its patterns.
func (m *Matcher) CompileFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			m.logger.Debug("Ignore file does not exist and will be skipped", zap.String("file", path))
			return nil
		}
		m.logger.Error("Failed to read ignore file", zap.String("file", path), zap.Error(err))
		return fmt.Errorf("failed to read ignore file %s: %w", path, err)
	}

	before := len(m.patterns)
	m.compile(path, strings.Split(string(content), "\n"))
	m.logger.Debug("Loaded ignore file",
		zap.String("file", path),
		zap.Int("patternCount", len(m.patterns)-before))
	return nil
}

func (m *Matcher) compile(source string, lines []string) {
	for i, line := range lines {
		re, negate, ok := parsePatternLine(line)
		if !ok {
			continue
		}
		p := &Pattern{Regexp: re, Negate: negate, Source: source, LineNo: i + 1, Line: line}
		m.patterns = append(m.patterns, p)
		m.logger.Debug("Compiled ignore pattern",
			zap.String("source", source),
			zap.Int("lineNo", p.LineNo),
			zap.String("pattern", strings.TrimSpace(line)),
			zap.Bool("negate", negate))
	}
}

// Matches reports whether path is excluded.
func (m *Matcher) Matches(path string) bool {
	matched, _ := m.MatchesWithPattern(path)
	return matched
}

// MatchesWithPattern reports whether path is excluded and which pattern decided it.
func (m *Matcher) MatchesWithPattern(path string) (bool, *Pattern) {
	normalized := normalizePath(path)

	matched := false
	var decided *Pattern
	for _, p := range m.patterns {
		if p.Regexp.MatchString(normalized) {
			matched = !p.Negate
			decided = p
		}
	}
	return matched, decided
}

// Filter returns the paths that are not excluded, keeping their order.
func (m *Matcher) Filter(paths []string) []string {
	if len(m.patterns) == 0 {
		return paths
	}

	kept := make([]string, 0, len(paths))
	for _, path := range paths {
		if matched, p := m.MatchesWithPattern(path); matched {
			m.logger.Debug("Excluded path",
				zap.String("path", path),
				zap.String("pattern", strings.TrimSpace(p.Line)),
				zap.String("source", p.Source))
			continue
		}
		kept = append(kept, path)
	}
	return kept
}

// parsePatternLine returns the compiled regex for one line. ok is false for
// blank lines, comments, and patterns that fail to compile.
func parsePatternLine(line string) (re *regexp.Regexp, negate bool, ok bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil, false, false
	}

	if strings.HasPrefix(trimmed, "!") {
		negate = true
		trimmed = strings.TrimPrefix(trimmed, "!")
	}
	if strings.HasPrefix(trimmed, `\#`) || strings.HasPrefix(trimmed, `\!`) {
		trimmed = trimmed[1:]
	}
	if trimmed == "" {
		return nil, false, false
	}

	re, err := regexp.Compile(translate(trimmed))
	if err != nil {
		return nil, false, false
	}
	return re, negate, true
}

// normalizePath converts separators to forward slashes and drops a leading "./".
func normalizePath(path string) string {
	return strings.TrimPrefix(filepath.ToSlash(path), "./")
}
