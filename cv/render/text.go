package render

import (
	"regexp"
	"sort"
	"strings"
)

// maxTokenLen is the longest unbroken token the PDF layout engine can wrap.
const maxTokenLen = 45

var latin1Replacements = map[rune]string{
	'‘': "'",
	'’': "'",
	'“': `"`,
	'”': `"`,
	'–': "-",
	'—': "-",
	'•': "-",
	'…': "...",
	' ': " ",
	'→': "->",
}

// safeText maps text onto the latin-1 repertoire the built-in PDF fonts
// cover, and splits unbroken tokens longer than the layout engine can wrap.
func safeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if repl, ok := latin1Replacements[r]; ok {
			b.WriteString(repl)
			continue
		}
		if r <= 0xFF {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('?')
	}
	return chunkLongTokens(b.String(), maxTokenLen)
}

func chunkLongTokens(s string, max int) string {
	fields := strings.Split(s, " ")
	for i, f := range fields {
		if len(f) <= max {
			continue
		}
		var parts []string
		for len(f) > max {
			parts = append(parts, f[:max])
			f = f[max:]
		}
		if f != "" {
			parts = append(parts, f)
		}
		fields[i] = strings.Join(parts, " ")
	}
	return strings.Join(fields, " ")
}

// span is a run of text with a single weight.
type span struct {
	text string
	bold bool
}

// boldSpans parses ** markers into styled spans. Markers never survive into
// the output; an unbalanced trailing marker is dropped.
func boldSpans(s string) []span {
	parts := strings.Split(s, "**")
	spans := make([]span, 0, len(parts))
	for i, p := range parts {
		if p == "" {
			continue
		}
		spans = append(spans, span{text: p, bold: i%2 == 1})
	}
	return spans
}

// plainText strips ** markers without styling.
func plainText(s string) string {
	return strings.ReplaceAll(s, "**", "")
}

var paragraphSplitRe = regexp.MustCompile(`\n[ \t]*\n+`)

// Paragraphs splits body text on blank lines into trimmed paragraphs.
func Paragraphs(s string) []string {
	raw := paragraphSplitRe.Split(strings.ReplaceAll(s, "\r\n", "\n"), -1)
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

var bulletPrefixRe = regexp.MustCompile(`^[-*\x{2022}]\s*`)

// SplitHighlights breaks a highlight value into individual bullet lines.
// Generated highlights sometimes arrive as one string with embedded newlines
// or leading bullet markers.
func SplitHighlights(s string) []string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(bulletPrefixRe.ReplaceAllString(strings.TrimSpace(line), ""))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

var yearsClaimRe = regexp.MustCompile(`(?i)\(?\b\d+\s*\+?\s*(?:years?|yrs?)\b(?:\s+of)?(?:\s+(?:professional\s+|hands-on\s+)?experience)?\)?`)

var spaceRunRe = regexp.MustCompile(`[ \t]{2,}`)

// RemoveYearsClaims strips "N years of experience" phrasing so documents
// never state a total experience figure.
func RemoveYearsClaims(s string) string {
	s = yearsClaimRe.ReplaceAllString(s, "")
	s = spaceRunRe.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, " ,", ",")
	s = strings.ReplaceAll(s, " .", ".")
	return strings.TrimSpace(s)
}

var numberEmphasisRe = regexp.MustCompile(`(^|[^\w*%.])(~?\d+(?:\.\d+)?%?)($|[^\w*%])`)

// EmphasizeKeywords wraps skill keywords and standalone figures in bold
// markers. Longer keywords run first so substrings never split a match.
func EmphasizeKeywords(text string, keywords []string) string {
	cleaned := make([]string, 0, len(keywords))
	seen := map[string]struct{}{}
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		key := strings.ToLower(kw)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		cleaned = append(cleaned, kw)
	}
	sort.Slice(cleaned, func(i, j int) bool { return len(cleaned[i]) > len(cleaned[j]) })

	for _, kw := range cleaned {
		re := regexp.MustCompile(`(?i)(^|[^\w*])(` + regexp.QuoteMeta(kw) + `)($|[^\w*])`)
		text = re.ReplaceAllString(text, "$1**$2**$3")
	}
	text = numberEmphasisRe.ReplaceAllString(text, "$1**$2**$3")
	return text
}
