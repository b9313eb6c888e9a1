package jobposting

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// parseActorItems walks the actor dataset payload and pulls out the fields
// we care about. The actor has shipped several response shapes over time,
// so every candidate location is tried in order.
func parseActorItems(body []byte) (JobDetails, error) {
	var items []map[string]any
	if err := json.Unmarshal(body, &items); err != nil {
		// Some actor runs return a single object instead of a dataset array.
		var single map[string]any
		if err2 := json.Unmarshal(body, &single); err2 != nil {
			return JobDetails{}, fmt.Errorf("apify response parse: %w", err)
		}
		items = []map[string]any{single}
	}
	if len(items) == 0 {
		return JobDetails{}, ErrEmptyPosting
	}

	var details JobDetails
	for _, item := range items {
		candidates := candidateMaps(item)
		if details.Description == "" {
			details.Description = firstString(candidates,
				"description", "descriptionText", "job_description", "jobDescription")
		}
		if details.Title == "" {
			details.Title = firstString(candidates, "title", "job_title", "jobTitle")
		}
		if details.Company == "" {
			details.Company = firstString(candidates,
				"company", "company_name", "companyName", "name")
		}
		if details.Location == "" {
			details.Location = firstString(candidates, "location", "job_location", "formattedLocation")
		}
	}

	details.Description = stripHTML(details.Description)
	details.Title = strings.TrimSpace(details.Title)
	details.Company = strings.TrimSpace(details.Company)
	details.Location = strings.TrimSpace(details.Location)

	if details.Description == "" {
		return JobDetails{}, ErrEmptyPosting
	}
	return details, nil
}

// candidateMaps flattens the nested objects the actor may use as containers.
func candidateMaps(item map[string]any) []map[string]any {
	maps := []map[string]any{item}
	for _, key := range []string{"job", "job_info", "jobInfo", "company_info", "companyInfo", "basic_info"} {
		if nested, ok := item[key].(map[string]any); ok {
			maps = append(maps, nested)
		}
	}
	return maps
}

func firstString(maps []map[string]any, keys ...string) string {
	for _, m := range maps {
		for _, key := range keys {
			if raw, ok := m[key]; ok {
				if s, ok := raw.(string); ok && strings.TrimSpace(s) != "" {
					return strings.TrimSpace(s)
				}
			}
		}
	}
	return ""
}

var (
	htmlBreakRe = regexp.MustCompile(`(?i)<br\s*/?>|</p>|</li>|</div>`)
	htmlTagRe   = regexp.MustCompile(`<[^>]+>`)
	blankRunRe  = regexp.MustCompile(`\n{3,}`)
)

// stripHTML converts posting markup into plain text, keeping paragraph breaks.
func stripHTML(s string) string {
	if s == "" {
		return ""
	}
	s = htmlBreakRe.ReplaceAllString(s, "\n")
	s = htmlTagRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = strings.ReplaceAll(s, "&#39;", "'")
	s = strings.ReplaceAll(s, "&quot;", `"`)
	s = blankRunRe.ReplaceAllString(s, "\n\n")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
