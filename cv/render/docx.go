package render

import (
	"strings"

	"cvmaker-backend/cv/model"
)

// DOCXRenderer lays CV data out as a WordprocessingML package.
type DOCXRenderer struct{}

func (r *DOCXRenderer) MediaType() string { return MediaTypeDOCX }
func (r *DOCXRenderer) Extension() string { return FormatDOCX }

// RenderCV produces the full CV document.
func (r *DOCXRenderer) RenderCV(data model.CvData, meta Meta) ([]byte, error) {
	var paras []docPara

	titlePara := para("Title", textRun(data.Header.FullName))
	titlePara.center = true
	paras = append(paras, titlePara)
	if strings.TrimSpace(data.Header.JobTitle) != "" {
		sub := para("Subtitle", textRun(data.Header.JobTitle))
		sub.center = true
		paras = append(paras, sub)
	}
	if contact := joinNonEmpty(" | ", data.Header.Location, data.Header.Phone, data.Header.Email); contact != "" {
		p := para("", textRun(contact))
		p.center = true
		paras = append(paras, p)
	}
	if links := joinNonEmpty(" | ", data.Header.GitHub, data.Header.LinkedIn); links != "" {
		p := para("", textRun(links))
		p.center = true
		paras = append(paras, p)
	}

	if strings.TrimSpace(data.ProfessionalSummary) != "" {
		paras = append(paras, para("Heading1", textRun("Professional Summary")))
		paras = append(paras, para("", styledRuns(data.ProfessionalSummary)...))
	}

	if hasSkills(data.CoreSkills) {
		paras = append(paras, para("Heading1", textRun("Core Skills")))
		paras = appendSkillGroup(paras, "Languages & Frameworks", data.CoreSkills.LanguagesFrameworks)
		paras = appendSkillGroup(paras, "Databases & Tools", data.CoreSkills.DatabasesTools)
		paras = appendSkillGroup(paras, "Testing & DevOps", data.CoreSkills.TestingDevOps)
		paras = appendSkillGroup(paras, "Development Practices", data.CoreSkills.DevelopmentPractices)
	}

	if len(data.ProfessionalExperience) > 0 {
		paras = append(paras, para("Heading1", textRun("Professional Experience")))
		for _, exp := range data.ProfessionalExperience {
			paras = appendExperience(paras, exp)
		}
	}
	if len(data.PersonalProjects) > 0 {
		paras = append(paras, para("Heading1", textRun("Personal Projects")))
		for _, proj := range data.PersonalProjects {
			paras = appendProject(paras, proj)
		}
	}
	if len(data.Education) > 0 {
		paras = append(paras, para("Heading1", textRun("Education")))
		paras = appendBullets(paras, data.Education)
	}
	if len(data.TrainingCertifications) > 0 {
		paras = append(paras, para("Heading1", textRun("Training & Certifications")))
		paras = appendBullets(paras, data.TrainingCertifications)
	}

	return buildDocx(strings.TrimSpace(meta.FullName+" CV"), paras)
}

// RenderCoverLetter produces a letter from plain paragraph text.
func (r *DOCXRenderer) RenderCoverLetter(body string, meta Meta) ([]byte, error) {
	title := coverLetterHeading(meta)
	paras := []docPara{para("Title", textRun(title))}
	for _, p := range Paragraphs(body) {
		paras = append(paras, para("", styledRuns(p)...))
		paras = append(paras, para(""))
	}
	return buildDocx(title, paras)
}

func appendSkillGroup(paras []docPara, label string, items []string) []docPara {
	if len(items) == 0 {
		return paras
	}
	runs := append([]docRun{boldRun(label + ": ")}, textRun(plainText(strings.Join(items, ", "))))
	return append(paras, para("", runs...))
}

func appendExperience(paras []docPara, exp model.Experience) []docPara {
	heading := joinNonEmpty(", ", exp.Title, exp.Company)
	paras = append(paras, para("", boldRun(plainText(heading))))
	if strings.TrimSpace(exp.Duration) != "" {
		paras = append(paras, para("", italicRun(exp.Duration)))
	}
	for _, h := range exp.Highlights {
		paras = appendBullets(paras, SplitHighlights(h))
	}
	return paras
}

func appendProject(paras []docPara, proj model.Project) []docPara {
	paras = append(paras, para("", boldRun(plainText(proj.Name))))
	if stack := joinNonEmpty(", ", proj.TechStack...); stack != "" {
		paras = append(paras, para("", italicRun(plainText(stack))))
	}
	for _, h := range proj.Highlights {
		paras = appendBullets(paras, SplitHighlights(h))
	}
	return paras
}

func appendBullets(paras []docPara, lines []string) []docPara {
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		p := para("", styledRuns(line)...)
		p.bullet = true
		paras = append(paras, p)
	}
	return paras
}
