package jobposting

import (
	"errors"
	"strings"
	"testing"
)

func TestParseActorItemsTopLevelShape(t *testing.T) {
	details, err := parseActorItems([]byte(`[{
		"title": "Go Developer",
		"company": "Acme",
		"location": "Remote",
		"description": "Build and run Go services."
	}]`))
	if err != nil {
		t.Fatalf("parseActorItems: %v", err)
	}
	if details.Title != "Go Developer" || details.Company != "Acme" {
		t.Fatalf("unexpected details: %+v", details)
	}
}

func TestParseActorItemsSingleObject(t *testing.T) {
	details, err := parseActorItems([]byte(`{
		"job": {"title": "Go Developer", "description": "Build services."},
		"company_name": "Acme"
	}`))
	if err != nil {
		t.Fatalf("parseActorItems: %v", err)
	}
	if details.Title != "Go Developer" {
		t.Fatalf("nested job title not found: %+v", details)
	}
	if details.Company != "Acme" {
		t.Fatalf("company_name not found: %+v", details)
	}
}

func TestParseActorItemsNoDescription(t *testing.T) {
	if _, err := parseActorItems([]byte(`[{"title": "Go Developer"}]`)); !errors.Is(err, ErrEmptyPosting) {
		t.Fatalf("expected ErrEmptyPosting, got %v", err)
	}
}

func TestParseActorItemsMalformed(t *testing.T) {
	if _, err := parseActorItems([]byte(`"just a string"`)); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestStripHTML(t *testing.T) {
	in := `<div>We need a <b>Go</b> engineer.<br/>Responsibilities:</div><li>Build APIs</li><li>Review &amp; mentor</li>`
	got := stripHTML(in)
	if strings.ContainsAny(got, "<>") {
		t.Fatalf("tags survived: %q", got)
	}
	for _, want := range []string{"We need a Go engineer.", "Build APIs", "Review & mentor"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in %q", want, got)
		}
	}
	if strings.Contains(got, "\n\n\n") {
		t.Fatalf("blank line runs not collapsed: %q", got)
	}
}
