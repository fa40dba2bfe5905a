// File: pkg/ignore/patterns.go
package ignore

import (
	"regexp"
	"strings"
)

// Precompiled regular expressions used in pattern translation.
var (
	DoubleStarMiddlePattern      = regexp.MustCompile(`/\*\*/`)
	DoubleStarTrailingPattern    = regexp.MustCompile(`/\*\*$`)
	DoubleStarLeadingPattern     = regexp.MustCompile(`^\*\*/`)
	SingleStarReplacementPattern = regexp.MustCompile(`\*`)
)

// doubleStar stands in for translated '**' segments so the single-star pass
// leaves them alone.
const doubleStar = "\x00"

// translate turns one gitignore-style pattern into an anchored regex source.
func translate(pattern string) string {
	rooted := strings.HasPrefix(pattern, "/")
	dirOnly := strings.HasSuffix(pattern, "/")
	body := strings.TrimSuffix(strings.TrimPrefix(pattern, "/"), "/")

	body = regexp.QuoteMeta(body)
	// QuoteMeta escaped the wildcards; restore them before translating.
	body = strings.ReplaceAll(body, `\*`, "*")
	body = strings.ReplaceAll(body, `\?`, "?")

	body = DoubleStarMiddlePattern.ReplaceAllString(body, "/"+doubleStar+"mid")
	body = DoubleStarTrailingPattern.ReplaceAllString(body, "/"+doubleStar+"tail")
	body = DoubleStarLeadingPattern.ReplaceAllString(body, doubleStar+"lead/")
	body = SingleStarReplacementPattern.ReplaceAllString(body, `[^/]*`)
	body = strings.ReplaceAll(body, "?", `[^/]`)

	body = strings.ReplaceAll(body, "/"+doubleStar+"mid", `(/|/.+/)`)
	body = strings.ReplaceAll(body, "/"+doubleStar+"tail", `(/.*)?`)
	body = strings.ReplaceAll(body, doubleStar+"lead/", `(.*/)?`)

	if dirOnly {
		body += `/.*`
	} else {
		body += `(/.*)?`
	}
	if rooted {
		return "^" + body + "$"
	}
	return "^(|.*/)" + body + "$"
}
