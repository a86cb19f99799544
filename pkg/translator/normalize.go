package translator

import (
	"regexp"
	"strings"

	sqlgate "github.com/vidstat/statbot/pkg/sql"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Normalize strips the formatting artifacts completion backends wrap around
// SQL and produces canonical single-line statement text. The transform is
// deterministic and idempotent; order matters:
//
//  1. trim surrounding whitespace
//  2. strip a single leading byte-order-mark
//  3. remove markdown code fences (the ```sql opener and generic ``` closer)
//  4. strip one matching pair of outer quotes spanning the whole string
//  5. collapse every whitespace run (including newlines) to a single space
//  6. strip at most one trailing statement terminator
//  7. final trim
//
// An empty input yields an empty output; emptiness is the caller's signal
// that the backend produced nothing, not an error here.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "\uFEFF")

	s = strings.ReplaceAll(s, "```sql", "")
	s = strings.ReplaceAll(s, "```", "")
	s = strings.TrimSpace(s)

	// One pass only: nested quoting inside the body stays untouched.
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			s = strings.TrimSpace(s[1 : len(s)-1])
		}
	}

	s = whitespaceRun.ReplaceAllString(s, " ")
	s = sqlgate.StripTrailingSemicolon(s)

	return strings.TrimSpace(s)
}
