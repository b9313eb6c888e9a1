package main

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cvmaker-backend/cv/model"
	"cvmaker-backend/cv/render"
)

func main() {
	outDir := flag.String("out", "./out", "output directory for the generated documents")
	format := flag.String("format", "pdf", "output format: pdf or docx")
	flag.Parse()

	renderer, err := render.ForFormat(*format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad format: %v\n", err)
		os.Exit(1)
	}

	data := sampleCV()
	meta := render.Meta{
		FullName:    data.Header.FullName,
		RoleTitle:   data.Header.JobTitle,
		CompanyName: "Acme Logistics",
	}

	payload, err := renderer.RenderCV(data, meta)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render failed: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(*outDir, "sample_cv."+renderer.Extension())
	if err := writeOutputs(outPath, data, payload); err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}
	if err := validateRendered(outPath, payload); err != nil {
		fmt.Fprintf(os.Stderr, "render validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("OK: wrote %s\n", outPath)
}

func writeOutputs(outPath string, data model.CvData, payload []byte) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(outPath, payload, 0o644); err != nil {
		return err
	}

	modelPath := filepath.Join(filepath.Dir(outPath), "sample_cv_data.json")
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(modelPath, raw, 0o644)
}

func sampleCV() model.CvData {
	data := model.Empty()
	data.Header = model.Header{
		FullName: "Jordan Lee",
		JobTitle: "Senior Backend Engineer",
		Location: "Austin, TX",
		Phone:    "+1-555-0102",
		Email:    "jordan.lee@example.com",
		GitHub:   "https://github.com/jordanlee",
		LinkedIn: "https://www.linkedin.com/in/jordanlee",
	}
	data.ProfessionalSummary = "Backend engineer building resilient **Go** APIs and data services. " +
		"Led platform modernization spanning cloud migration and observability adoption."
	data.CoreSkills = model.CoreSkills{
		LanguagesFrameworks:  []string{"Go", "Gin", "Java"},
		DatabasesTools:       []string{"PostgreSQL", "Redis"},
		TestingDevOps:        []string{"Docker", "Kubernetes", "GitHub Actions"},
		DevelopmentPractices: []string{"TDD", "Code review", "Observability"},
	}
	data.ProfessionalExperience = []model.Experience{
		{
			Title:    "Senior Backend Engineer",
			Company:  "Acme Logistics",
			Duration: "2021-04 - Present",
			Highlights: []string{
				"Designed a routing service that reduced shipment latency by 18%.",
				"Implemented distributed tracing to cut incident triage time by 35%.",
			},
		},
		{
			Title:    "Backend Engineer",
			Company:  "Blue Harbor Systems",
			Duration: "2018-01 - 2021-03",
			Highlights: []string{
				"Built event-driven ingestion pipelines for compliance data feeds.",
			},
		},
	}
	data.Education = []string{"BSc Computer Science, University of Texas, Austin, 2017"}
	return data
}

// validateRendered sanity-checks the output file: a PDF must start with the
// PDF magic, a DOCX must be a zip archive carrying word/document.xml with no
// bold markers leaking into the text.
func validateRendered(path string, payload []byte) error {
	if strings.HasSuffix(path, ".pdf") {
		if !bytes.HasPrefix(payload, []byte("%PDF-")) {
			return fmt.Errorf("output is not a PDF")
		}
		return nil
	}

	reader, err := zip.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		return err
	}
	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		_, err = buf.ReadFrom(rc)
		rc.Close()
		if err != nil {
			return err
		}
		if strings.Contains(buf.String(), "**") {
			return fmt.Errorf("bold markers leaked into document text")
		}
		return nil
	}
	return fmt.Errorf("document.xml not found in docx")
}
