package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"cvmaker-backend/cv/model"
)

// PDFRenderer lays CV data out on A4 pages with the built-in Helvetica fonts.
type PDFRenderer struct{}

func (r *PDFRenderer) MediaType() string { return MediaTypePDF }
func (r *PDFRenderer) Extension() string { return FormatPDF }

const (
	pdfLineHeight    = 5.0
	pdfSectionGap    = 3.0
	pdfBodyFontSize  = 10.0
	pdfTitleFontSize = 16.0
)

// RenderCV produces the full CV document.
func (r *PDFRenderer) RenderCV(data model.CvData, meta Meta) ([]byte, error) {
	doc := newDoc()
	doc.pdf.SetTitle(safeText(strings.TrimSpace(meta.FullName+" CV")), false)
	doc.pdf.AddPage()

	doc.header(data.Header)
	if strings.TrimSpace(data.ProfessionalSummary) != "" {
		doc.section("Professional Summary")
		doc.styledParagraph(data.ProfessionalSummary)
	}

	if hasSkills(data.CoreSkills) {
		doc.section("Core Skills")
		doc.skillGroup("Languages & Frameworks", data.CoreSkills.LanguagesFrameworks)
		doc.skillGroup("Databases & Tools", data.CoreSkills.DatabasesTools)
		doc.skillGroup("Testing & DevOps", data.CoreSkills.TestingDevOps)
		doc.skillGroup("Development Practices", data.CoreSkills.DevelopmentPractices)
	}

	if len(data.ProfessionalExperience) > 0 {
		doc.section("Professional Experience")
		for _, exp := range data.ProfessionalExperience {
			doc.experience(exp)
		}
	}
	if len(data.PersonalProjects) > 0 {
		doc.section("Personal Projects")
		for _, proj := range data.PersonalProjects {
			doc.project(proj)
		}
	}
	if len(data.Education) > 0 {
		doc.section("Education")
		for _, line := range data.Education {
			doc.bullet(line)
		}
	}
	if len(data.TrainingCertifications) > 0 {
		doc.section("Training & Certifications")
		for _, line := range data.TrainingCertifications {
			doc.bullet(line)
		}
	}

	return doc.bytes()
}

// RenderCoverLetter produces a one-page letter from plain paragraph text.
func (r *PDFRenderer) RenderCoverLetter(body string, meta Meta) ([]byte, error) {
	doc := newDoc()
	title := coverLetterHeading(meta)
	doc.pdf.SetTitle(safeText(title), false)
	doc.pdf.AddPage()

	doc.pdf.SetFont("Helvetica", "B", 14)
	doc.pdf.MultiCell(0, 7, safeText(title), "", "L", false)
	doc.pdf.Ln(pdfSectionGap)

	doc.pdf.SetFont("Helvetica", "", pdfBodyFontSize)
	for _, para := range Paragraphs(body) {
		doc.pdf.MultiCell(0, pdfLineHeight, safeText(plainText(para)), "", "L", false)
		doc.pdf.Ln(pdfLineHeight / 2)
	}

	return doc.bytes()
}

func coverLetterHeading(meta Meta) string {
	heading := strings.TrimSpace(meta.FullName)
	if heading == "" {
		heading = "Cover Letter"
	} else {
		heading += " - Cover Letter"
	}
	extras := make([]string, 0, 2)
	for _, s := range []string{meta.CompanyName, meta.RoleTitle} {
		if strings.TrimSpace(s) != "" {
			extras = append(extras, strings.TrimSpace(s))
		}
	}
	if len(extras) > 0 {
		heading += " | " + strings.Join(extras, " | ")
	}
	return heading
}

type pdfDoc struct {
	pdf *fpdf.Fpdf
}

func newDoc() *pdfDoc {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 14, 15)
	pdf.SetAutoPageBreak(true, 12)
	return &pdfDoc{pdf: pdf}
}

func (d *pdfDoc) bytes() ([]byte, error) {
	if err := d.pdf.Error(); err != nil {
		return nil, fmt.Errorf("pdf build: %w", err)
	}
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

func (d *pdfDoc) header(h model.Header) {
	d.pdf.SetFont("Helvetica", "B", pdfTitleFontSize)
	d.pdf.MultiCell(0, 8, safeText(h.FullName), "", "C", false)
	if strings.TrimSpace(h.JobTitle) != "" {
		d.pdf.SetFont("Helvetica", "", 12)
		d.pdf.MultiCell(0, 6, safeText(h.JobTitle), "", "C", false)
	}

	contact := joinNonEmpty(" | ", h.Location, h.Phone, h.Email)
	if contact != "" {
		d.pdf.SetFont("Helvetica", "", 9)
		d.pdf.MultiCell(0, pdfLineHeight, safeText(contact), "", "C", false)
	}
	d.links(h)
	d.divider()
}

// links centers the clickable GitHub and LinkedIn URLs under the contact line.
func (d *pdfDoc) links(h model.Header) {
	urls := make([]string, 0, 2)
	for _, u := range []string{h.GitHub, h.LinkedIn} {
		if strings.TrimSpace(u) != "" {
			urls = append(urls, strings.TrimSpace(u))
		}
	}
	if len(urls) == 0 {
		return
	}
	d.pdf.SetFont("Helvetica", "", 9)
	d.pdf.SetTextColor(20, 60, 150)

	pageW, _ := d.pdf.GetPageSize()
	left, _, right, _ := d.pdf.GetMargins()
	textW := 0.0
	sep := "   "
	for i, u := range urls {
		if i > 0 {
			textW += d.pdf.GetStringWidth(sep)
		}
		textW += d.pdf.GetStringWidth(safeText(u))
	}
	x := left + (pageW-left-right-textW)/2
	if x > left {
		d.pdf.SetX(x)
	}
	for i, u := range urls {
		if i > 0 {
			d.pdf.Write(pdfLineHeight, sep)
		}
		d.pdf.WriteLinkString(pdfLineHeight, safeText(u), withScheme(u))
	}
	d.pdf.Ln(pdfLineHeight)
	d.pdf.SetTextColor(0, 0, 0)
}

func withScheme(u string) string {
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	if strings.Contains(u, "@") && !strings.Contains(u, "/") {
		return "mailto:" + u
	}
	return "https://" + u
}

func (d *pdfDoc) divider() {
	d.pdf.Ln(1.5)
	d.pdf.SetDrawColor(120, 120, 120)
	left, _, right, _ := d.pdf.GetMargins()
	pageW, _ := d.pdf.GetPageSize()
	y := d.pdf.GetY()
	d.pdf.Line(left, y, pageW-right, y)
	d.pdf.Ln(1.5)
}

func (d *pdfDoc) section(title string) {
	d.pdf.Ln(pdfSectionGap)
	d.pdf.SetFont("Helvetica", "B", 11)
	d.pdf.MultiCell(0, 6, strings.ToUpper(safeText(title)), "", "L", false)
	d.divider()
}

// styledParagraph writes text honoring ** bold spans with line wrapping.
func (d *pdfDoc) styledParagraph(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	d.writeSpans(text)
}

func (d *pdfDoc) writeSpans(text string) {
	for _, sp := range boldSpans(text) {
		style := ""
		if sp.bold {
			style = "B"
		}
		d.pdf.SetFont("Helvetica", style, pdfBodyFontSize)
		d.pdf.Write(pdfLineHeight, safeText(sp.text))
	}
	d.pdf.Ln(pdfLineHeight)
}

func (d *pdfDoc) bullet(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	d.pdf.SetFont("Helvetica", "", pdfBodyFontSize)
	d.pdf.Write(pdfLineHeight, "- ")
	d.writeSpans(text)
}

func (d *pdfDoc) skillGroup(label string, items []string) {
	if len(items) == 0 {
		return
	}
	d.pdf.SetFont("Helvetica", "B", pdfBodyFontSize)
	d.pdf.Write(pdfLineHeight, safeText(label+": "))
	d.pdf.SetFont("Helvetica", "", pdfBodyFontSize)
	d.pdf.Write(pdfLineHeight, safeText(plainText(strings.Join(items, ", "))))
	d.pdf.Ln(pdfLineHeight + 1)
}

func (d *pdfDoc) experience(exp model.Experience) {
	heading := joinNonEmpty(", ", exp.Title, exp.Company)
	d.pdf.SetFont("Helvetica", "B", pdfBodyFontSize+0.5)
	d.pdf.MultiCell(0, pdfLineHeight, safeText(plainText(heading)), "", "L", false)
	if strings.TrimSpace(exp.Duration) != "" {
		d.pdf.SetFont("Helvetica", "I", 9)
		d.pdf.MultiCell(0, 4.5, safeText(exp.Duration), "", "L", false)
	}
	for _, h := range exp.Highlights {
		for _, line := range SplitHighlights(h) {
			d.bullet(line)
		}
	}
	d.pdf.Ln(2)
}

func (d *pdfDoc) project(proj model.Project) {
	d.pdf.SetFont("Helvetica", "B", pdfBodyFontSize+0.5)
	d.pdf.MultiCell(0, pdfLineHeight, safeText(plainText(proj.Name)), "", "L", false)
	if stack := joinNonEmpty(", ", proj.TechStack...); stack != "" {
		d.pdf.SetFont("Helvetica", "I", 9)
		d.pdf.MultiCell(0, 4.5, safeText(plainText(stack)), "", "L", false)
	}
	for _, h := range proj.Highlights {
		for _, line := range SplitHighlights(h) {
			d.bullet(line)
		}
	}
	d.pdf.Ln(2)
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, strings.TrimSpace(p))
		}
	}
	return strings.Join(kept, sep)
}
