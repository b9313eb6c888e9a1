package render

import (
	"errors"
	"strings"

	"cvmaker-backend/cv/model"
)

// Output formats.
const (
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
)

// Media types for the supported formats.
const (
	MediaTypePDF  = "application/pdf"
	MediaTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ErrUnsupportedFormat is returned for formats outside {pdf, docx}.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Meta carries the identity fields printed on document headers and titles.
type Meta struct {
	FullName    string
	RoleTitle   string
	CompanyName string
	Source      string
}

// Renderer produces one output format from merged CV data.
type Renderer interface {
	RenderCV(data model.CvData, meta Meta) ([]byte, error)
	RenderCoverLetter(body string, meta Meta) ([]byte, error)
	MediaType() string
	Extension() string
}

// hasSkills reports whether any core skills subgroup has an entry. Empty
// sections are omitted from the output, heading included.
func hasSkills(s model.CoreSkills) bool {
	return len(s.LanguagesFrameworks) > 0 ||
		len(s.DatabasesTools) > 0 ||
		len(s.TestingDevOps) > 0 ||
		len(s.DevelopmentPractices) > 0
}

// ForFormat resolves a renderer by format name, case-insensitively.
// The empty string defaults to PDF.
func ForFormat(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatPDF:
		return &PDFRenderer{}, nil
	case FormatDOCX:
		return &DOCXRenderer{}, nil
	default:
		return nil, ErrUnsupportedFormat
	}
}
