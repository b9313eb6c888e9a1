package cv

import (
	"encoding/json"
	"strings"
	"time"

	"cvmaker-backend/cv/model"
	"cvmaker-backend/internal/llm"
	"cvmaker-backend/internal/profile"
)

// BuildPrompt assembles the single generation prompt. The output is
// deterministic for a given profile, posting and document selection.
func BuildPrompt(p profile.Profile, job model.JobContext, wantCV, wantCover, wantEmail bool) string {
	profileJSON, err := json.MarshalIndent(sanitizedProfile(p), "", "  ")
	if err != nil {
		profileJSON = []byte("{}")
	}

	requested := make([]string, 0, 3)
	if wantCV {
		requested = append(requested, `"cv"`)
	}
	if wantCover {
		requested = append(requested, `"cover_letter"`)
	}
	if wantEmail {
		requested = append(requested, `"email_message"`)
	}

	var b strings.Builder
	b.WriteString("You are an expert CV writer. Tailor the candidate's documents to the job posting below.\n\n")

	b.WriteString("CANDIDATE PROFILE (JSON):\n")
	b.Write(profileJSON)
	b.WriteString("\n\n")

	b.WriteString("JOB POSTING")
	if job.CompanyName != "" || job.JobRole != "" {
		b.WriteString(" (")
		b.WriteString(strings.TrimSpace(strings.Join(nonEmpty(job.JobRole, job.CompanyName), " at ")))
		b.WriteString(")")
	}
	b.WriteString(":\n")
	b.WriteString(strings.TrimSpace(job.Description))
	b.WriteString("\n\n")

	b.WriteString("REQUESTED DOCUMENTS: ")
	b.WriteString(strings.Join(requested, ", "))
	b.WriteString("\n\n")

	if wantCV {
		b.WriteString(llm.CvStructurePrompt())
		b.WriteString("\n")
		b.WriteString(llm.GenerationRulesPrompt())
		b.WriteString("\n")
	}
	b.WriteString(llm.EnvelopePrompt())
	return b.String()
}

// sanitizedProfile strips storage bookkeeping before the profile goes into
// the prompt.
func sanitizedProfile(p profile.Profile) profile.Profile {
	p.ID = ""
	p.CreatedAt = time.Time{}
	p.UpdatedAt = time.Time{}
	return p
}

func nonEmpty(parts ...string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, strings.TrimSpace(p))
		}
	}
	return out
}
