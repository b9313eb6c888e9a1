package util

import (
	"strings"
	"unicode"
)

// maxFileNameLen bounds sanitized names so Content-Disposition header values
// stay within common proxy limits.
const maxFileNameLen = 150

// fallbackFileStem is used when sanitization leaves nothing.
const fallbackFileStem = "cv"

// FileStem maps an arbitrary string to a filesystem-and-header-safe filename
// stem: unsafe characters become underscores, whitespace becomes underscores,
// runs collapse to one, and the result is truncated. FileStem is idempotent
// and total; the empty string maps to a fixed placeholder.
func FileStem(raw string) string {
	s := stemComponent(raw)
	if s == "" {
		return fallbackFileStem
	}
	return s
}

// JoinFileStem sanitizes each component and joins the non-empty ones with a
// single underscore, so an empty component never doubles the separator.
func JoinFileStem(components ...string) string {
	parts := make([]string, 0, len(components))
	for _, c := range components {
		if s := stemComponent(c); s != "" {
			parts = append(parts, s)
		}
	}
	joined := strings.Trim(truncateRunes(strings.Join(parts, "_"), maxFileNameLen), "_")
	if joined == "" {
		return fallbackFileStem
	}
	return joined
}

// CoverLetterTitle builds the human-readable cover letter filename form
// "{Name} cover letter | {Company} | {Role}" with unsafe characters replaced
// but spaces preserved. Empty components are omitted.
func CoverLetterTitle(fullName, companyName, roleTitle string) string {
	title := strings.TrimSpace(fullName) + " cover letter"
	for _, part := range []string{companyName, roleTitle} {
		if strings.TrimSpace(part) != "" {
			title += " | " + strings.TrimSpace(part)
		}
	}
	s := strings.TrimSpace(strings.Trim(truncateRunes(replaceUnsafe(title), maxFileNameLen), "_"))
	s = strings.TrimSpace(s)
	if s == "" {
		return fallbackFileStem
	}
	return s
}

func stemComponent(raw string) string {
	s := replaceUnsafe(raw)
	s = strings.ReplaceAll(s, " ", "_")
	s = collapseRuns(s, '_')
	s = strings.Trim(truncateRunes(strings.Trim(s, "_"), maxFileNameLen), "_")
	return s
}

// replaceUnsafe trims the input, replaces every run of characters outside
// {letters, digits, space, hyphen, underscore, period} with one underscore,
// and collapses whitespace runs to a single space.
func replaceUnsafe(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	lastSpace := false
	lastUnderscore := false
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteByte(' ')
			}
			lastSpace = true
			lastUnderscore = false
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '.':
			b.WriteRune(r)
			lastSpace = false
			lastUnderscore = false
		default:
			// '_' itself and every unsafe character: a run yields one '_'.
			if !lastUnderscore {
				b.WriteByte('_')
			}
			lastSpace = false
			lastUnderscore = true
		}
	}
	return strings.TrimSpace(b.String())
}

func collapseRuns(s string, c byte) string {
	double := string([]byte{c, c})
	single := string(c)
	for strings.Contains(s, double) {
		s = strings.ReplaceAll(s, double, single)
	}
	return s
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
