// File: pkg/feed/minify.go
package feed

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ws matches one Unicode whitespace character. RE2's \s is ASCII only, so the
// class adds vertical tab, NEL, the Z categories and the \x1c-\x1f separators.
const ws = `[\s\v\x{85}\p{Z}\x1c-\x1f]`

// Precompiled regular expressions used by the default rule table.
var (
	IndentPattern          = regexp.MustCompile(`\n` + ws + `+`)
	LineCommentPattern     = regexp.MustCompile(ws + `*//(.*)`)
	TrailingCommaPattern   = regexp.MustCompile(`,` + ws)
	PunctuationPattern     = regexp.MustCompile(ws + `*([<=>?:;&|{}()"']+?)` + ws + `*`)
	BarePunctuationPattern = regexp.MustCompile(ws + `*([<=>?:;&|{}()]+?)` + ws + `*`)
	SelfClosingPattern     = regexp.MustCompile(ws + `/>`)
	DanglingCommaPattern   = regexp.MustCompile(`,}`)
	EmptyJSXCommentPattern = regexp.MustCompile(`\{/\*.*\*/\}`)
)

// DefaultKeepMarkers are the comment prefixes that survive line-comment stripping.
var DefaultKeepMarkers = []string{"client/", "server/"}

// Rule is a single regex substitution. Replacement may reference capture groups
// using regexp template syntax (${1}).
type Rule struct {
	Name        string
	Pattern     *regexp.Regexp
	Replacement string
	// Protect reports whether the match at loc must be left alone. loc holds
	// absolute submatch indexes into text. A protected match is skipped and the
	// search resumes one character after the match start.
	Protect func(text string, loc []int) bool
}

// Apply runs the rule over text once, replacing every non-overlapping match.
func (r Rule) Apply(text string) string {
	if r.Protect == nil {
		return r.Pattern.ReplaceAllString(text, r.Replacement)
	}

	var b strings.Builder
	copied := 0
	search := 0
	for search <= len(text) {
		loc := r.Pattern.FindStringSubmatchIndex(text[search:])
		if loc == nil {
			break
		}
		for i := range loc {
			if loc[i] >= 0 {
				loc[i] += search
			}
		}

		if r.Protect(text, loc) {
			search = nextRune(text, loc[0])
			continue
		}

		b.WriteString(text[copied:loc[0]])
		b.Write(r.Pattern.ExpandString(nil, r.Replacement, text, loc))
		copied = loc[1]
		search = loc[1]
		if loc[1] == loc[0] {
			search = nextRune(text, loc[0])
			b.WriteString(text[copied:min(search, len(text))])
			copied = min(search, len(text))
		}
	}
	b.WriteString(text[copied:])
	return b.String()
}

// nextRune returns the offset just past the rune starting at i, or len(text)+1
// when i is already at the end.
func nextRune(text string, i int) int {
	if i >= len(text) {
		return len(text) + 1
	}
	_, size := utf8.DecodeRuneInString(text[i:])
	return i + size
}

// KeepMarkerProtector protects a line-comment match whose text after "//",
// ignoring leading whitespace, starts with one of markers. The check looks
// past the end of the line, the same way a lookahead would.
func KeepMarkerProtector(markers []string) func(text string, loc []int) bool {
	keep := append([]string(nil), markers...)
	return func(text string, loc []int) bool {
		if len(loc) < 4 || loc[2] < 0 {
			return false
		}
		rest := strings.TrimLeftFunc(text[loc[2]:], isSpace)
		for _, marker := range keep {
			if marker != "" && strings.HasPrefix(rest, marker) {
				return true
			}
		}
		return false
	}
}

// isSpace is the rune form of ws.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || unicode.In(r, unicode.Z) || (r >= 0x1c && r <= 0x1f)
}

// Options tunes the default rule table.
type Options struct {
	KeepMarkers []string // Comment prefixes preserved by the line-comment rule.
	StripQuotes bool     // Also strip whitespace around ' and " characters.
}

// DefaultOptions returns the options the tool runs with unless configured otherwise.
func DefaultOptions() Options {
	return Options{
		KeepMarkers: append([]string(nil), DefaultKeepMarkers...),
		StripQuotes: true,
	}
}

// DefaultRules builds the ordered rule table. Later rules see the output of
// earlier ones, so the order is part of the behavior.
func DefaultRules(opts Options) []Rule {
	lineComment := Rule{Name: "line-comment", Pattern: LineCommentPattern}
	if len(opts.KeepMarkers) > 0 {
		lineComment.Protect = KeepMarkerProtector(opts.KeepMarkers)
	}

	punctuation := BarePunctuationPattern
	if opts.StripQuotes {
		punctuation = PunctuationPattern
	}

	return []Rule{
		{Name: "indent", Pattern: IndentPattern, Replacement: "\n"},
		lineComment,
		{Name: "trailing-comma", Pattern: TrailingCommaPattern, Replacement: ","},
		{Name: "punctuation", Pattern: punctuation, Replacement: "${1}"},
		{Name: "self-closing", Pattern: SelfClosingPattern, Replacement: "/>"},
		{Name: "dangling-comma", Pattern: DanglingCommaPattern, Replacement: "}"},
		{Name: "empty-jsx-comment", Pattern: EmptyJSXCommentPattern},
	}
}

// Minifier applies a fixed, ordered rule table. It is not a parser: matches
// inside string, template or regex literals are rewritten like any other text.
type Minifier struct {
	rules []Rule
}

// NewMinifier builds a Minifier over DefaultRules(opts).
func NewMinifier(opts Options) *Minifier {
	return NewMinifierWithRules(DefaultRules(opts)...)
}

// NewMinifierWithRules builds a Minifier over an explicit rule list.
func NewMinifierWithRules(rules ...Rule) *Minifier {
	return &Minifier{rules: append([]Rule(nil), rules...)}
}

// Minify folds every rule over text in order.
func (m *Minifier) Minify(text string) string {
	for _, rule := range m.rules {
		text = rule.Apply(text)
	}
	return text
}

// Rules returns a copy of the rule table.
func (m *Minifier) Rules() []Rule {
	return append([]Rule(nil), m.rules...)
}
