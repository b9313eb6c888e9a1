package model

// SourceManual marks structured data generated from pasted job text rather
// than an extracted job URL.
const SourceManual = "manual-job-description"

// MaxPersonalProjects bounds how many personal projects a CV carries.
const MaxPersonalProjects = 5

// CvData is the canonical structured CV payload. Every list field is non-nil
// and every string field defaults to empty; callers can rely on the full
// field set being present regardless of how sparse the source data was.
type CvData struct {
	Header                 Header       `json:"header"`
	ProfessionalSummary    string       `json:"professional_summary"`
	CoreSkills             CoreSkills   `json:"core_skills"`
	ProfessionalExperience []Experience `json:"professional_experience"`
	PersonalProjects       []Project    `json:"personal_projects"`
	Education              []string     `json:"education"`
	TrainingCertifications []string     `json:"training_certifications"`
	ATSKeywords            []string     `json:"ats_keywords"`
	CustomizationNotes     []string     `json:"customization_notes"`
}

// Header captures top-of-CV contact and identity details.
type Header struct {
	FullName string `json:"full_name"`
	JobTitle string `json:"job_title"`
	Location string `json:"location"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	GitHub   string `json:"github"`
	LinkedIn string `json:"linkedin"`
}

// CoreSkills groups skills into the four fixed CV subgroups.
type CoreSkills struct {
	LanguagesFrameworks  []string `json:"languages_frameworks"`
	DatabasesTools       []string `json:"databases_tools"`
	TestingDevOps        []string `json:"testing_devops"`
	DevelopmentPractices []string `json:"development_practices"`
}

// Experience represents a work history entry.
type Experience struct {
	Title      string   `json:"title"`
	Company    string   `json:"company"`
	Duration   string   `json:"duration"`
	Highlights []string `json:"highlights"`
}

// Project represents a personal project entry.
type Project struct {
	Name       string   `json:"name"`
	TechStack  []string `json:"tech_stack"`
	Highlights []string `json:"highlights"`
}

// JobContext carries the per-request job posting inputs. It is transient and
// never persisted.
type JobContext struct {
	CompanyName string
	JobRole     string
	Description string
	Source      string
}

// EmailMessage is a short outreach email generated alongside the CV.
type EmailMessage struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Empty returns a CvData with every list field initialized so the payload
// serializes with the full schema present.
func Empty() CvData {
	return CvData{
		CoreSkills: CoreSkills{
			LanguagesFrameworks:  []string{},
			DatabasesTools:       []string{},
			TestingDevOps:        []string{},
			DevelopmentPractices: []string{},
		},
		ProfessionalExperience: []Experience{},
		PersonalProjects:       []Project{},
		Education:              []string{},
		TrainingCertifications: []string{},
		ATSKeywords:            []string{},
		CustomizationNotes:     []string{},
	}
}
