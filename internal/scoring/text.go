package scoring

import (
	"regexp"
	"strings"
)

const (
	RedactionMarker      = "***"
	Ellipsis             = "..."
	DefaultSummaryLength = 100
)

// Denylist is applied in this order. Terms are matched anywhere, including
// inside longer words.
var Denylist = []string{"spam", "bad", "evil", "hate", "xxx"}

var denyPatterns = compileDenylist(Denylist)

// compileDenylist builds one case-insensitive pattern per term. Folding is
// ASCII only; (?i) would also fold U+017F onto 's'.
func compileDenylist(terms []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(terms))
	for _, term := range terms {
		var b strings.Builder
		for _, r := range term {
			lo, up := strings.ToLower(string(r)), strings.ToUpper(string(r))
			if lo == up {
				b.WriteString(regexp.QuoteMeta(lo))
				continue
			}
			b.WriteString("[" + lo + up + "]")
		}
		out = append(out, regexp.MustCompile(b.String()))
	}
	return out
}

// Redact replaces every occurrence of each denylisted term with ***.
func Redact(text string) string {
	for _, re := range denyPatterns {
		text = re.ReplaceAllLiteralString(text, RedactionMarker)
	}
	return text
}

// Summarize keeps the first max characters of text and appends an ellipsis
// when text was longer than max. Lengths count characters, not bytes.
func Summarize(text string, max int) string {
	if text == "" {
		return ""
	}
	if max < 0 {
		max = 0
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + Ellipsis
}
