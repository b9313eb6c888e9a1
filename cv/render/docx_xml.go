package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// docRun is a run of text with a single character style.
type docRun struct {
	text   string
	bold   bool
	italic bool
}

// docPara is one paragraph of the generated document.
type docPara struct {
	style  string // "" for body text
	center bool
	bullet bool
	runs   []docRun
}

func para(style string, runs ...docRun) docPara {
	return docPara{style: style, runs: runs}
}

func textRun(s string) docRun   { return docRun{text: s} }
func boldRun(s string) docRun   { return docRun{text: s, bold: true} }
func italicRun(s string) docRun { return docRun{text: s, italic: true} }

// styledRuns converts ** markers into bold and plain runs.
func styledRuns(s string) []docRun {
	spans := boldSpans(s)
	runs := make([]docRun, 0, len(spans))
	for _, sp := range spans {
		runs = append(runs, docRun{text: sp.text, bold: sp.bold})
	}
	return runs
}

// buildDocx assembles a minimal WordprocessingML package around the given
// paragraphs. The styles part defines Title, Heading1 and Subtitle; the
// numbering part defines the single bullet list the body uses.
func buildDocx(title string, paras []docPara) ([]byte, error) {
	var out bytes.Buffer
	zw := zip.NewWriter(&out)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRootRels},
		{"word/_rels/document.xml.rels", docxDocumentRels},
		{"word/styles.xml", docxStyles},
		{"word/numbering.xml", docxNumbering},
		{"docProps/core.xml", fmt.Sprintf(docxCoreProps, xmlEscape(title))},
		{"word/document.xml", documentXML(paras)},
	}
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("docx part %s: %w", part.name, err)
		}
		if _, err := w.Write([]byte(part.content)); err != nil {
			return nil, fmt.Errorf("docx part %s: %w", part.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("docx close: %w", err)
	}
	return out.Bytes(), nil
}

func documentXML(paras []docPara) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paras {
		writeParaXML(&b, p)
	}
	b.WriteString(docxSectionProps)
	b.WriteString(`</w:body></w:document>`)
	return b.String()
}

func writeParaXML(b *strings.Builder, p docPara) {
	b.WriteString(`<w:p><w:pPr>`)
	if p.style != "" {
		fmt.Fprintf(b, `<w:pStyle w:val="%s"/>`, p.style)
	}
	if p.bullet {
		b.WriteString(`<w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr>`)
	}
	if p.center {
		b.WriteString(`<w:jc w:val="center"/>`)
	}
	b.WriteString(`</w:pPr>`)
	for _, r := range p.runs {
		b.WriteString(`<w:r><w:rPr>`)
		if r.bold {
			b.WriteString(`<w:b/>`)
		}
		if r.italic {
			b.WriteString(`<w:i/>`)
		}
		b.WriteString(`</w:rPr>`)
		fmt.Fprintf(b, `<w:t xml:space="preserve">%s</w:t>`, xmlEscape(r.text))
		b.WriteString(`</w:r>`)
	}
	b.WriteString(`</w:p>`)
}

func xmlEscape(s string) string {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return ""
	}
	return buf.String()
}

const docxContentTypes = xml.Header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`<Override PartName="/word/numbering.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"/>` +
	`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>` +
	`</Types>`

const docxRootRels = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
	`</Relationships>`

const docxDocumentRels = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering" Target="numbering.xml"/>` +
	`</Relationships>`

const docxCoreProps = xml.Header + `<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/">` +
	`<dc:title>%s</dc:title>` +
	`</cp:coreProperties>`

const docxSectionProps = `<w:sectPr>` +
	`<w:pgSz w:w="11906" w:h="16838"/>` +
	`<w:pgMar w:top="850" w:right="850" w:bottom="850" w:left="850"/>` +
	`</w:sectPr>`

const docxStyles = xml.Header + `<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:docDefaults><w:rPrDefault><w:rPr>` +
	`<w:rFonts w:ascii="Calibri" w:hAnsi="Calibri"/><w:sz w:val="21"/>` +
	`</w:rPr></w:rPrDefault></w:docDefaults>` +
	`<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/>` +
	`<w:pPr><w:spacing w:after="60"/></w:pPr>` +
	`<w:rPr><w:b/><w:sz w:val="40"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/>` +
	`<w:pPr><w:spacing w:before="200" w:after="60"/><w:pBdr><w:bottom w:val="single" w:sz="6" w:space="1" w:color="808080"/></w:pBdr></w:pPr>` +
	`<w:rPr><w:b/><w:sz w:val="26"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Subtitle"><w:name w:val="Subtitle"/>` +
	`<w:pPr><w:spacing w:after="120"/></w:pPr>` +
	`<w:rPr><w:color w:val="595959"/><w:sz w:val="22"/></w:rPr></w:style>` +
	`</w:styles>`

const docxNumbering = xml.Header + `<w:numbering xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:abstractNum w:abstractNumId="0"><w:lvl w:ilvl="0">` +
	`<w:numFmt w:val="bullet"/><w:lvlText w:val="&#8226;"/>` +
	`<w:pPr><w:ind w:left="360" w:hanging="200"/></w:pPr>` +
	`</w:lvl></w:abstractNum>` +
	`<w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>` +
	`</w:numbering>`
