package cv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"cvmaker-backend/cv/merge"
	"cvmaker-backend/cv/model"
	"cvmaker-backend/cv/render"
	"cvmaker-backend/cv/schema"
	"cvmaker-backend/internal/jobposting"
	"cvmaker-backend/internal/llm"
	"cvmaker-backend/internal/profile"
	"cvmaker-backend/internal/shared/metrics"
	"cvmaker-backend/internal/shared/telemetry"
	"cvmaker-backend/internal/shared/util"
)

// minJobDescriptionLen is the shortest posting text worth tailoring against.
const minJobDescriptionLen = 20

const (
	defaultCompanyName = "Target Company"
	defaultRoleTitle   = "Target Role"
)

// Service orchestrates posting resolution, generation, merge and rendering.
type Service struct {
	Profiles     profile.Repo
	Extractor    jobposting.Extractor
	LLM          llm.Client
	DefaultModel string
}

// GenerateData runs the generation step: resolve the posting, call the model
// once, validate and merge the output against the stored profile.
func (s *Service) GenerateData(ctx context.Context, req GenerateDataRequest) (resp GenerateDataResponse, err error) {
	metrics.IncGenerationStarted()
	started := time.Now()
	defer func() {
		metrics.ObserveGenerationDurationMs(float64(time.Since(started).Milliseconds()))
		if err != nil {
			metrics.IncGenerationFailed()
		} else {
			metrics.IncGenerationCompleted()
		}
	}()

	wantCV := req.wantCV()
	if !wantCV && !req.GenerateCoverLetter && !req.GenerateEmail {
		return GenerateDataResponse{}, fmt.Errorf("%w: no documents requested", ErrInvalidInput)
	}

	job, err := s.resolveJob(ctx, req.URL, req.JobDescription)
	if err != nil {
		return GenerateDataResponse{}, err
	}
	// Caller overrides win only when they carry a value; otherwise whatever
	// the extractor found stands.
	if v := merge.CleanOptional(req.CompanyName); v != "" {
		job.CompanyName = v
	}
	if v := merge.CleanOptional(req.JobRole); v != "" {
		job.JobRole = v
	}

	prof, err := s.Profiles.Get(ctx)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return GenerateDataResponse{}, ErrProfileNotFound
		}
		return GenerateDataResponse{}, fmt.Errorf("load profile: %w", err)
	}

	prompt := BuildPrompt(prof, job, wantCV, req.GenerateCoverLetter, req.GenerateEmail)
	raw, err := s.LLM.Generate(ctx, llm.GenerateInput{
		Prompt:         prompt,
		Model:          strings.TrimSpace(req.Model),
		APIKeyOverride: strings.TrimSpace(req.GeminiAPIKey),
	})
	if err != nil {
		return GenerateDataResponse{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	env, err := parseEnvelope(raw)
	if err != nil {
		return GenerateDataResponse{}, err
	}

	var warnings []string
	resp = GenerateDataResponse{Source: job.Source}

	if wantCV {
		if env.cv == nil {
			return GenerateDataResponse{}, fmt.Errorf("%w: response has no cv object", ErrUnrecoverableOutput)
		}
		data, normWarnings, err := schema.Normalize(env.cv)
		if err != nil {
			return GenerateDataResponse{}, fmt.Errorf("%w: %v", ErrUnrecoverableOutput, err)
		}
		warnings = append(warnings, normWarnings...)

		merged := merge.Merge(data, prof, merge.Overrides{
			FullName:    req.FullName,
			CompanyName: firstNonEmpty(job.CompanyName, env.company),
			JobRole:     job.JobRole,
		})
		resp.Sections = &merged.Data
		resp.FullName = merged.FullName
		resp.CompanyName = merged.CompanyName
		resp.RoleTitle = merged.JobRole
	} else {
		resp.FullName = firstNonEmpty(merge.CleanOptional(req.FullName), prof.FullName)
		resp.CompanyName = job.CompanyName
		resp.RoleTitle = firstNonEmpty(job.JobRole, prof.Title)
	}

	if resp.CompanyName == "" {
		resp.CompanyName = defaultCompanyName
	}
	if resp.RoleTitle == "" {
		resp.RoleTitle = defaultRoleTitle
	}
	resp.Filename = util.JoinFileStem(resp.FullName, resp.CompanyName, resp.RoleTitle)

	if req.GenerateCoverLetter {
		if env.coverLetter == "" {
			warnings = append(warnings, "cover letter was requested but not produced")
		}
		resp.CoverLetter = env.coverLetter
	}
	if req.GenerateEmail {
		if env.email == nil {
			warnings = append(warnings, "email message was requested but not produced")
		}
		resp.EmailMessage = env.email
	}
	resp.Warnings = warnings

	telemetry.Info("cv.generate_data", map[string]any{
		"source":   job.Source,
		"cv":       wantCV,
		"cover":    req.GenerateCoverLetter,
		"email":    req.GenerateEmail,
		"warnings": len(warnings),
	})
	return resp, nil
}

// RenderDocument turns generated data into a binary file.
func (s *Service) RenderDocument(ctx context.Context, req RenderRequest) (RenderedDocument, error) {
	if err := ctx.Err(); err != nil {
		return RenderedDocument{}, err
	}
	renderer, err := render.ForFormat(req.Format)
	if err != nil {
		return RenderedDocument{}, err
	}

	meta := render.Meta{
		FullName:    strings.TrimSpace(req.FullName),
		RoleTitle:   strings.TrimSpace(req.RoleTitle),
		CompanyName: strings.TrimSpace(req.CompanyName),
	}

	var payload []byte
	var stem string
	switch {
	case req.Sections != nil:
		// Work on a copy; the handler still holds the decoded request.
		sections := *req.Sections
		if strings.TrimSpace(sections.Header.FullName) == "" && meta.FullName != "" {
			sections.Header.FullName = meta.FullName
		}
		if meta.FullName == "" {
			meta.FullName = strings.TrimSpace(sections.Header.FullName)
		}
		if strings.TrimSpace(sections.Header.FullName) == "" {
			return RenderedDocument{}, fmt.Errorf("%w: sections.header.full_name is required", ErrInvalidInput)
		}
		data := decorateForRender(sections)
		payload, err = renderer.RenderCV(data, meta)
		if err != nil {
			return RenderedDocument{}, fmt.Errorf("render cv: %w", err)
		}
		stem = util.JoinFileStem(meta.FullName, meta.CompanyName, meta.RoleTitle)
	case strings.TrimSpace(req.CoverLetter) != "":
		payload, err = renderer.RenderCoverLetter(req.CoverLetter, meta)
		if err != nil {
			return RenderedDocument{}, fmt.Errorf("render cover letter: %w", err)
		}
		stem = util.FileStem(util.CoverLetterTitle(meta.FullName, meta.CompanyName, meta.RoleTitle))
	default:
		return RenderedDocument{}, fmt.Errorf("%w: sections or cover_letter is required", ErrInvalidInput)
	}

	if override := util.FileStem(req.Filename); strings.TrimSpace(req.Filename) != "" {
		stem = override
	}

	return RenderedDocument{
		Bytes:     payload,
		MediaType: renderer.MediaType(),
		Filename:  stem + "." + renderer.Extension(),
	}, nil
}

// GenerateDocument is the one-shot flow: generate data, then render one file.
func (s *Service) GenerateDocument(ctx context.Context, req GenerateDocumentRequest) (RenderedDocument, error) {
	wantCover := strings.EqualFold(strings.TrimSpace(req.Document), "cover_letter")

	genReq := GenerateDataRequest{
		URL:                 req.URL,
		JobDescription:      req.JobDescription,
		CompanyName:         req.CompanyName,
		JobRole:             req.JobRole,
		FullName:            req.FullName,
		GenerateCoverLetter: wantCover,
		Model:               req.Model,
		GeminiAPIKey:        req.GeminiAPIKey,
	}
	if wantCover {
		f := false
		genReq.GenerateCV = &f
	}

	data, err := s.GenerateData(ctx, genReq)
	if err != nil {
		return RenderedDocument{}, err
	}

	renderReq := RenderRequest{
		Format:      req.Format,
		FullName:    data.FullName,
		CompanyName: data.CompanyName,
		RoleTitle:   data.RoleTitle,
	}
	if wantCover {
		if strings.TrimSpace(data.CoverLetter) == "" {
			return RenderedDocument{}, fmt.Errorf("%w: response has no cover letter", ErrUnrecoverableOutput)
		}
		renderReq.CoverLetter = data.CoverLetter
	} else {
		renderReq.Sections = data.Sections
	}
	return s.RenderDocument(ctx, renderReq)
}

// resolveJob picks the posting source. An explicit description wins over a
// URL; extraction failures surface as upstream errors.
func (s *Service) resolveJob(ctx context.Context, rawURL, description string) (model.JobContext, error) {
	description = strings.TrimSpace(description)
	if description != "" {
		if len([]rune(description)) < minJobDescriptionLen {
			return model.JobContext{}, fmt.Errorf("%w: job_description is too short", ErrInvalidInput)
		}
		return model.JobContext{Description: description, Source: model.SourceManual}, nil
	}

	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return model.JobContext{}, fmt.Errorf("%w: url or job_description is required", ErrInvalidInput)
	}
	if s.Extractor == nil {
		return model.JobContext{}, fmt.Errorf("%w: posting extraction is not configured", ErrUpstream)
	}

	details, err := s.Extractor.Extract(ctx, rawURL)
	if err != nil {
		if errors.Is(err, jobposting.ErrInvalidURL) {
			return model.JobContext{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return model.JobContext{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if len([]rune(details.Description)) < minJobDescriptionLen {
		return model.JobContext{}, fmt.Errorf("%w: extracted posting is too short", ErrUpstream)
	}
	return model.JobContext{
		CompanyName: details.Company,
		JobRole:     details.Title,
		Description: details.Description,
		Source:      rawURL,
	}, nil
}

// envelope is the parsed model response.
type envelope struct {
	cv          any
	coverLetter string
	email       *model.EmailMessage
	company     string
}

// parseEnvelope decodes the model output, tolerating prose around the JSON
// object and a missing envelope when the object itself is the CV.
func parseEnvelope(raw string) (envelope, error) {
	jsonText, ok := extractJSONObject(raw)
	if !ok {
		return envelope{}, fmt.Errorf("%w: no JSON object in response", ErrUnrecoverableOutput)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal([]byte(jsonText), &decoded); err != nil {
		return envelope{}, fmt.Errorf("%w: %v", ErrUnrecoverableOutput, err)
	}

	var env envelope
	if rawCV, ok := decoded["cv"]; ok {
		var cv any
		if err := json.Unmarshal(rawCV, &cv); err != nil {
			return envelope{}, fmt.Errorf("%w: %v", ErrUnrecoverableOutput, err)
		}
		env.cv = cv
	} else if _, hasHeader := decoded["header"]; hasHeader {
		// Some responses skip the envelope and return the CV object directly.
		var cv any
		if err := json.Unmarshal([]byte(jsonText), &cv); err != nil {
			return envelope{}, fmt.Errorf("%w: %v", ErrUnrecoverableOutput, err)
		}
		env.cv = cv
	} else if _, hasSummary := decoded["professional_summary"]; hasSummary {
		var cv any
		if err := json.Unmarshal([]byte(jsonText), &cv); err != nil {
			return envelope{}, fmt.Errorf("%w: %v", ErrUnrecoverableOutput, err)
		}
		env.cv = cv
	}

	if rawCover, ok := decoded["cover_letter"]; ok {
		var cover string
		if err := json.Unmarshal(rawCover, &cover); err == nil {
			env.coverLetter = strings.TrimSpace(cover)
		}
	}
	if rawEmail, ok := decoded["email_message"]; ok {
		var email model.EmailMessage
		if err := json.Unmarshal(rawEmail, &email); err == nil &&
			(email.Subject != "" || email.Body != "") {
			env.email = &email
		}
	}
	if rawCompany, ok := decoded["company_name"]; ok {
		var company string
		if err := json.Unmarshal(rawCompany, &company); err == nil {
			env.company = strings.TrimSpace(company)
		}
	}
	return env, nil
}

// extractJSONObject slices the outermost {...} out of text that may carry
// markdown fences or surrounding prose.
func extractJSONObject(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

// decorateForRender applies the presentation transforms that run on every
// rendered CV: years-of-experience claims are dropped and skill keywords and
// figures are bolded.
func decorateForRender(data model.CvData) model.CvData {
	keywords := make([]string, 0,
		len(data.CoreSkills.LanguagesFrameworks)+
			len(data.CoreSkills.DatabasesTools)+
			len(data.CoreSkills.TestingDevOps)+
			len(data.CoreSkills.DevelopmentPractices)+
			len(data.ATSKeywords))
	keywords = append(keywords, data.CoreSkills.LanguagesFrameworks...)
	keywords = append(keywords, data.CoreSkills.DatabasesTools...)
	keywords = append(keywords, data.CoreSkills.TestingDevOps...)
	keywords = append(keywords, data.CoreSkills.DevelopmentPractices...)
	keywords = append(keywords, data.ATSKeywords...)

	data.ProfessionalSummary = render.EmphasizeKeywords(
		render.RemoveYearsClaims(data.ProfessionalSummary), keywords)

	for i := range data.ProfessionalExperience {
		hs := data.ProfessionalExperience[i].Highlights
		out := make([]string, 0, len(hs))
		for _, h := range hs {
			out = append(out, render.EmphasizeKeywords(render.RemoveYearsClaims(h), keywords))
		}
		data.ProfessionalExperience[i].Highlights = out
	}
	for i := range data.PersonalProjects {
		hs := data.PersonalProjects[i].Highlights
		out := make([]string, 0, len(hs))
		for _, h := range hs {
			out = append(out, render.EmphasizeKeywords(render.RemoveYearsClaims(h), keywords))
		}
		data.PersonalProjects[i].Highlights = out
	}
	return data
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
