package merge

import (
	"strings"

	"cvmaker-backend/cv/model"
	"cvmaker-backend/internal/profile"
	"cvmaker-backend/internal/shared/util"
)

// Overrides carries caller-supplied values that take precedence over both
// the generated sections and the stored profile.
type Overrides struct {
	FullName    string
	CompanyName string
	JobRole     string
}

// Result is the merged document data plus the resolved identity fields.
type Result struct {
	Data         model.CvData
	FullName     string
	CompanyName  string
	JobRole      string
	FilenameStem string
}

var placeholderTokens = map[string]struct{}{
	"":       {},
	"string": {},
	"none":   {},
	"null":   {},
	"n/a":    {},
	"na":     {},
}

// CleanOptional trims the value and maps placeholder tokens to the empty string.
func CleanOptional(s string) string {
	trimmed := strings.TrimSpace(s)
	if _, ok := placeholderTokens[strings.ToLower(trimmed)]; ok {
		return ""
	}
	return trimmed
}

// Merge fills the gaps in generated CV data from the stored profile and
// resolves the identity fields used for titles and filenames.
// Precedence is overrides, then generated data, then profile.
func Merge(data model.CvData, p profile.Profile, ov Overrides) Result {
	fullName := CleanOptional(ov.FullName)
	if fullName == "" {
		fullName = CleanOptional(data.Header.FullName)
	}
	if fullName == "" {
		fullName = strings.TrimSpace(p.FullName)
	}
	data.Header.FullName = fullName

	jobRole := CleanOptional(ov.JobRole)
	if jobRole == "" {
		jobRole = CleanOptional(data.Header.JobTitle)
	}
	if jobRole == "" {
		jobRole = strings.TrimSpace(p.Title)
	}
	if CleanOptional(data.Header.JobTitle) == "" {
		data.Header.JobTitle = jobRole
	}

	companyName := CleanOptional(ov.CompanyName)

	mergeHeader(&data.Header, p)
	mergeSkills(&data.CoreSkills, p.CoreSkills)

	if strings.TrimSpace(data.ProfessionalSummary) == "" {
		data.ProfessionalSummary = p.ProfessionalSummary
	}
	if len(data.ProfessionalExperience) == 0 {
		data.ProfessionalExperience = projectExperience(p.ProfessionalExperience)
	}
	if len(data.PersonalProjects) > model.MaxPersonalProjects {
		data.PersonalProjects = data.PersonalProjects[:model.MaxPersonalProjects]
	}
	if len(data.Education) == 0 {
		if line := educationLine(p.Education); line != "" {
			data.Education = []string{line}
		}
	}
	if len(data.TrainingCertifications) == 0 && len(p.TrainingAndCertifications) > 0 {
		data.TrainingCertifications = append([]string(nil), p.TrainingAndCertifications...)
	}

	return Result{
		Data:         data,
		FullName:     fullName,
		CompanyName:  companyName,
		JobRole:      jobRole,
		FilenameStem: util.JoinFileStem(fullName, companyName, jobRole),
	}
}

func mergeHeader(h *model.Header, p profile.Profile) {
	if CleanOptional(h.Location) == "" {
		h.Location = p.Location
	}
	if CleanOptional(h.Phone) == "" {
		h.Phone = p.Phone
	}
	if CleanOptional(h.Email) == "" {
		h.Email = p.Email
	}
	if CleanOptional(h.GitHub) == "" {
		h.GitHub = p.Links.GitHub
	}
	if CleanOptional(h.LinkedIn) == "" {
		h.LinkedIn = p.Links.LinkedIn
	}
}

func mergeSkills(skills *model.CoreSkills, source map[string][]string) {
	if len(source) == 0 {
		return
	}
	if len(skills.LanguagesFrameworks) == 0 {
		skills.LanguagesFrameworks = copyList(source["languages_frameworks"])
	}
	if len(skills.DatabasesTools) == 0 {
		skills.DatabasesTools = copyList(source["databases_tools"])
	}
	if len(skills.TestingDevOps) == 0 {
		skills.TestingDevOps = copyList(source["testing_devops"])
	}
	if len(skills.DevelopmentPractices) == 0 {
		skills.DevelopmentPractices = copyList(source["development_practices"])
	}
}

func copyList(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	return append([]string(nil), in...)
}

// projectExperience converts profile work history into CV entries. Highlights
// stay empty so nothing unverified appears on the rendered document.
func projectExperience(entries []profile.Experience) []model.Experience {
	out := make([]model.Experience, 0, len(entries))
	for _, e := range entries {
		out = append(out, model.Experience{
			Title:      e.Title,
			Company:    e.Company,
			Duration:   e.Duration,
			Highlights: []string{},
		})
	}
	return out
}

func educationLine(e profile.Education) string {
	parts := make([]string, 0, 4)
	for _, s := range []string{e.Degree, e.Institution, e.Location, e.GraduationDate} {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, ", ")
}
