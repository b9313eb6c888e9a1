package profile

import "time"

// Profile is the single stored candidate profile. At most one record exists
// at a time; it is only ever created or replaced, never deleted implicitly.
type Profile struct {
	ID                        string              `json:"id,omitempty"`
	FullName                  string              `json:"full_name"`
	Title                     string              `json:"title"`
	Location                  string              `json:"location"`
	Phone                     string              `json:"phone"`
	Email                     string              `json:"email"`
	Links                     Links               `json:"links"`
	ProfessionalSummary       string              `json:"professional_summary"`
	CoreSkills                map[string][]string `json:"core_skills"`
	ProfessionalExperience    []Experience        `json:"professional_experience"`
	Education                 Education           `json:"education"`
	TrainingAndCertifications []string            `json:"training_and_certifications"`
	CreatedAt                 time.Time           `json:"created_at,omitempty"`
	UpdatedAt                 time.Time           `json:"updated_at,omitempty"`
}

// Links holds the profile's external profile URLs.
type Links struct {
	GitHub   string `json:"github"`
	LinkedIn string `json:"linkedin"`
}

// Experience is a stored work history entry.
type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Education is the stored education block.
type Education struct {
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	Location       string `json:"location"`
	GraduationDate string `json:"graduation_date"`
}
