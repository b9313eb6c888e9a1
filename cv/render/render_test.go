package render

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/ledongthuc/pdf"

	"cvmaker-backend/cv/model"
)

func sampleCV() model.CvData {
	data := model.Empty()
	data.Header = model.Header{
		FullName: "Jane Doe",
		JobTitle: "Backend Engineer",
		Location: "Lisbon, Portugal",
		Phone:    "+351 555 000",
		Email:    "jane@example.com",
		GitHub:   "github.com/jane",
		LinkedIn: "linkedin.com/in/jane",
	}
	data.ProfessionalSummary = "Engineer focused on **Go** services and operability."
	data.CoreSkills.LanguagesFrameworks = []string{"Go", "Python"}
	data.CoreSkills.DatabasesTools = []string{"PostgreSQL", "Redis"}
	data.CoreSkills.TestingDevOps = []string{"Docker", "GitHub Actions"}
	data.CoreSkills.DevelopmentPractices = []string{"TDD", "Code review"}
	data.ProfessionalExperience = []model.Experience{
		{
			Title:    "Senior Engineer",
			Company:  "Acme",
			Duration: "2021 - 2024",
			Highlights: []string{
				"Cut p99 latency by **40%** across the fleet",
				"Led migration to **PostgreSQL**",
			},
		},
	}
	data.PersonalProjects = []model.Project{
		{
			Name:       "cvgen",
			TechStack:  []string{"Go", "fpdf"},
			Highlights: []string{"Generates tailored CVs"},
		},
	}
	data.Education = []string{"BSc Computer Science, IST, Lisbon, 2019"}
	data.TrainingCertifications = []string{"AWS Solutions Architect"}
	return data
}

func sampleMeta() Meta {
	return Meta{FullName: "Jane Doe", RoleTitle: "Backend Engineer", CompanyName: "Acme"}
}

func extractPDFText(t *testing.T, payload []byte) string {
	t.Helper()
	reader, err := pdf.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		t.Fatalf("open generated pdf: %v", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		t.Fatalf("extract pdf text: %v", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		t.Fatalf("read pdf text: %v", err)
	}
	return buf.String()
}

func TestForFormat(t *testing.T) {
	cases := []struct {
		format    string
		mediaType string
	}{
		{"", MediaTypePDF},
		{"pdf", MediaTypePDF},
		{"PDF", MediaTypePDF},
		{"docx", MediaTypeDOCX},
		{"DOCX", MediaTypeDOCX},
		{" Docx ", MediaTypeDOCX},
	}
	for _, tc := range cases {
		r, err := ForFormat(tc.format)
		if err != nil {
			t.Fatalf("ForFormat(%q): %v", tc.format, err)
		}
		if r.MediaType() != tc.mediaType {
			t.Fatalf("ForFormat(%q) media type = %q", tc.format, r.MediaType())
		}
	}

	if _, err := ForFormat("html"); err == nil {
		t.Fatalf("expected error for html format")
	}
}

func TestPDFRenderCVContainsContentAndNoMarkers(t *testing.T) {
	payload, err := (&PDFRenderer{}).RenderCV(sampleCV(), sampleMeta())
	if err != nil {
		t.Fatalf("RenderCV: %v", err)
	}
	if !bytes.HasPrefix(payload, []byte("%PDF-")) {
		t.Fatalf("missing PDF magic")
	}

	text := extractPDFText(t, payload)
	for _, want := range []string{"Jane Doe", "Backend Engineer", "PROFESSIONAL SUMMARY", "Acme", "cvgen"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in extracted text", want)
		}
	}
	if strings.Contains(text, "**") {
		t.Fatalf("bold markers leaked into PDF text")
	}
}

func sparseCV() model.CvData {
	data := model.Empty()
	data.Header.FullName = "Jane Doe"
	data.Education = []string{"BSc Computer Science, IST, Lisbon, 2019"}
	return data
}

func TestPDFRenderCVOmitsEmptySections(t *testing.T) {
	payload, err := (&PDFRenderer{}).RenderCV(sparseCV(), Meta{FullName: "Jane Doe"})
	if err != nil {
		t.Fatalf("RenderCV: %v", err)
	}
	text := extractPDFText(t, payload)
	for _, heading := range []string{"PROFESSIONAL SUMMARY", "CORE SKILLS", "PROFESSIONAL EXPERIENCE", "PERSONAL PROJECTS"} {
		if strings.Contains(text, heading) {
			t.Fatalf("empty section rendered heading %q", heading)
		}
	}
	for _, want := range []string{"Jane Doe", "EDUCATION", "BSc Computer Science"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in extracted text", want)
		}
	}
}

func TestDOCXRenderCVOmitsEmptySections(t *testing.T) {
	payload, err := (&DOCXRenderer{}).RenderCV(sparseCV(), Meta{FullName: "Jane Doe"})
	if err != nil {
		t.Fatalf("RenderCV: %v", err)
	}
	doc := readDocxPart(t, payload, "word/document.xml")
	for _, heading := range []string{"Professional Summary", "Core Skills", "Professional Experience", "Personal Projects"} {
		if strings.Contains(doc, heading) {
			t.Fatalf("empty section rendered heading %q", heading)
		}
	}
	for _, want := range []string{"Jane Doe", "Education", "BSc Computer Science"} {
		if !strings.Contains(doc, want) {
			t.Fatalf("expected %q in document.xml", want)
		}
	}
}

func TestPDFRenderCoverLetter(t *testing.T) {
	body := "Dear Hiring Manager,\n\nI am writing to apply.\n\nSincerely,\nJane Doe"
	payload, err := (&PDFRenderer{}).RenderCoverLetter(body, sampleMeta())
	if err != nil {
		t.Fatalf("RenderCoverLetter: %v", err)
	}
	text := extractPDFText(t, payload)
	for _, want := range []string{"Dear Hiring Manager,", "Sincerely,"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in extracted text", want)
		}
	}
}

func readDocxPart(t *testing.T, payload []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		t.Fatalf("open generated docx: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		return string(content)
	}
	t.Fatalf("part %s not found", name)
	return ""
}

func TestDOCXRenderCVPackageShape(t *testing.T) {
	payload, err := (&DOCXRenderer{}).RenderCV(sampleCV(), sampleMeta())
	if err != nil {
		t.Fatalf("RenderCV: %v", err)
	}

	for _, part := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"word/document.xml",
		"word/styles.xml",
		"word/numbering.xml",
	} {
		readDocxPart(t, payload, part)
	}

	doc := readDocxPart(t, payload, "word/document.xml")
	for _, want := range []string{"Jane Doe", "Professional Summary", "Senior Engineer", "BSc Computer Science"} {
		if !strings.Contains(doc, want) {
			t.Fatalf("expected %q in document.xml", want)
		}
	}
	if strings.Contains(doc, "**") {
		t.Fatalf("bold markers leaked into document.xml")
	}
	if !strings.Contains(doc, `<w:numId w:val="1"/>`) {
		t.Fatalf("expected bullet numbering reference")
	}
}

func TestDOCXRenderCVEscapesXML(t *testing.T) {
	data := sampleCV()
	data.ProfessionalSummary = `Works on <fast> & "reliable" systems`
	payload, err := (&DOCXRenderer{}).RenderCV(data, sampleMeta())
	if err != nil {
		t.Fatalf("RenderCV: %v", err)
	}
	doc := readDocxPart(t, payload, "word/document.xml")
	if strings.Contains(doc, "<fast>") {
		t.Fatalf("unescaped angle brackets in document.xml")
	}
	if !strings.Contains(doc, "&lt;fast&gt;") {
		t.Fatalf("expected escaped text in document.xml")
	}
}

func TestDOCXRenderCoverLetterParagraphs(t *testing.T) {
	body := "Dear Hiring Manager,\n\nI am writing to apply.\n\nSincerely,\nJane Doe"
	payload, err := (&DOCXRenderer{}).RenderCoverLetter(body, sampleMeta())
	if err != nil {
		t.Fatalf("RenderCoverLetter: %v", err)
	}
	doc := readDocxPart(t, payload, "word/document.xml")
	for _, want := range []string{"Dear Hiring Manager,", "I am writing to apply.", "Sincerely,"} {
		if !strings.Contains(doc, want) {
			t.Fatalf("expected %q in document.xml", want)
		}
	}
}

func TestDOCXRenderCoverLetterHonorsBold(t *testing.T) {
	body := "Dear Hiring Manager,\n\nI deliver with **Go** daily.\n\nSincerely,\nJane Doe"
	payload, err := (&DOCXRenderer{}).RenderCoverLetter(body, sampleMeta())
	if err != nil {
		t.Fatalf("RenderCoverLetter: %v", err)
	}
	doc := readDocxPart(t, payload, "word/document.xml")
	if !strings.Contains(doc, `<w:b/></w:rPr><w:t xml:space="preserve">Go</w:t>`) {
		t.Fatalf("expected a bold run for Go in document.xml")
	}
	if strings.Contains(doc, "**") {
		t.Fatalf("bold markers leaked into document.xml")
	}
}

func TestDOCXRenderCoverLetterParagraphCount(t *testing.T) {
	body := "Dear Hiring Manager,\n\nI am writing to apply.\n\nSincerely,\nJane Doe"
	payload, err := (&DOCXRenderer{}).RenderCoverLetter(body, sampleMeta())
	if err != nil {
		t.Fatalf("RenderCoverLetter: %v", err)
	}
	doc := readDocxPart(t, payload, "word/document.xml")
	// Title plus three body paragraphs, each followed by a spacer.
	if got := strings.Count(doc, "<w:p>"); got != 7 {
		t.Fatalf("paragraph count = %d, want 7", got)
	}
}

func TestRenderersAgreeOnExtensionAndMediaType(t *testing.T) {
	p := &PDFRenderer{}
	d := &DOCXRenderer{}
	if p.Extension() != "pdf" || d.Extension() != "docx" {
		t.Fatalf("unexpected extensions %q %q", p.Extension(), d.Extension())
	}
	if p.MediaType() != "application/pdf" {
		t.Fatalf("pdf media type = %q", p.MediaType())
	}
	if d.MediaType() != "application/vnd.openxmlformats-officedocument.wordprocessingml.document" {
		t.Fatalf("docx media type = %q", d.MediaType())
	}
}
