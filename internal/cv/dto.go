package cv

import "cvmaker-backend/cv/model"

// GenerateDataRequest drives the data-generation step. Exactly one of URL or
// JobDescription must carry the posting; an explicit JobDescription wins.
type GenerateDataRequest struct {
	URL            string `json:"url"`
	JobDescription string `json:"job_description"`

	CompanyName string `json:"company_name"`
	JobRole     string `json:"job_role"`
	FullName    string `json:"full_name"`

	// GenerateCV defaults to true when omitted.
	GenerateCV          *bool `json:"generate_cv"`
	GenerateCoverLetter bool  `json:"generate_cover_letter"`
	GenerateEmail       bool  `json:"generate_email"`

	Model        string `json:"model"`
	GeminiAPIKey string `json:"gemini_api_key"`
}

func (r GenerateDataRequest) wantCV() bool {
	return r.GenerateCV == nil || *r.GenerateCV
}

// GenerateDataResponse is the JSON payload of the data-generation step.
type GenerateDataResponse struct {
	FullName     string              `json:"full_name"`
	CompanyName  string              `json:"company_name"`
	RoleTitle    string              `json:"role_title"`
	Source       string              `json:"source"`
	Sections     *model.CvData       `json:"sections,omitempty"`
	CoverLetter  string              `json:"cover_letter,omitempty"`
	EmailMessage *model.EmailMessage `json:"email_message,omitempty"`
	Filename     string              `json:"filename"`
	Warnings     []string            `json:"warnings,omitempty"`
}

// RenderRequest drives the render step. Sections renders a CV; CoverLetter
// renders a letter. When both are present, Sections wins.
type RenderRequest struct {
	Sections    *model.CvData `json:"sections,omitempty"`
	CoverLetter string        `json:"cover_letter,omitempty"`

	Format   string `json:"format"`
	Filename string `json:"filename"`

	FullName    string `json:"full_name"`
	CompanyName string `json:"company_name"`
	RoleTitle   string `json:"role_title"`
}

// RenderedDocument is a finished binary document.
type RenderedDocument struct {
	Bytes     []byte
	MediaType string
	Filename  string
}

// GenerateDocumentRequest drives the one-shot flow that goes straight from a
// posting to a rendered file.
type GenerateDocumentRequest struct {
	URL            string `json:"url"`
	JobDescription string `json:"job_description"`

	CompanyName string `json:"company_name"`
	JobRole     string `json:"job_role"`
	FullName    string `json:"full_name"`

	Format string `json:"format"`
	// Document selects what to render: "cv" (default) or "cover_letter".
	Document string `json:"document"`

	Model        string `json:"model"`
	GeminiAPIKey string `json:"gemini_api_key"`
}
