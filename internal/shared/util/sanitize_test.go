package util

import (
	"strings"
	"testing"
	"unicode"
)

func TestFileStemBasic(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Jane Doe", "Jane_Doe"},
		{"  Jane   Doe  ", "Jane_Doe"},
		{"Jane/Doe\\CV", "Jane_Doe_CV"},
		{"a<b>c:d\"e|f?g*h", "a_b_c_d_e_f_g_h"},
		{"", "cv"},
		{"///", "cv"},
		{"résumé", "résumé"},
		{"v1.2-final", "v1.2-final"},
	}
	for _, tc := range cases {
		if got := FileStem(tc.in); got != tc.want {
			t.Fatalf("FileStem(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFileStemIdempotent(t *testing.T) {
	inputs := []string{
		"Jane Doe", "a//b", "  spaced  out  ", "", "___", "x<>y",
		strings.Repeat("long ", 100), "emoji \U0001F600 name",
	}
	for _, in := range inputs {
		once := FileStem(in)
		twice := FileStem(once)
		if once != twice {
			t.Fatalf("FileStem not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestFileStemCharset(t *testing.T) {
	got := FileStem("weird \x00 input / with * stuff ?")
	for _, r := range got {
		ok := unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '.'
		if !ok {
			t.Fatalf("unexpected rune %q in %q", r, got)
		}
	}
}

func TestFileStemTruncates(t *testing.T) {
	long := strings.Repeat("abcde ", 100)
	got := FileStem(long)
	if len([]rune(got)) > 150 {
		t.Fatalf("expected at most 150 runes, got %d", len([]rune(got)))
	}
	if strings.HasSuffix(got, "_") {
		t.Fatalf("expected no trailing underscore after truncation: %q", got)
	}
}

func TestJoinFileStemSkipsEmptyComponents(t *testing.T) {
	got := JoinFileStem("Jane Doe", "", "Backend Engineer")
	if got != "Jane_Doe_Backend_Engineer" {
		t.Fatalf("JoinFileStem = %q", got)
	}
	if JoinFileStem("", "", "") != "cv" {
		t.Fatalf("expected fallback stem for all-empty components")
	}
}

func TestCoverLetterTitle(t *testing.T) {
	got := CoverLetterTitle("Jane Doe", "Acme Corp", "Backend Engineer")
	if got != "Jane Doe cover letter _ Acme Corp _ Backend Engineer" {
		t.Fatalf("CoverLetterTitle = %q", got)
	}

	got = CoverLetterTitle("Jane Doe", "", "")
	if got != "Jane Doe cover letter" {
		t.Fatalf("CoverLetterTitle without extras = %q", got)
	}
}
