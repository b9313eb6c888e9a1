package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"cvmaker-backend/cv/model"
)

// ErrNotObject is returned when the top-level value is not a JSON object.
// Anything below the top level self-heals via defaults and coercion.
var ErrNotObject = errors.New("cv payload must be a JSON object")

// Normalize validates an untyped JSON-like value against the CV schema and
// returns a total CvData: missing fields become empty defaults, mismatched
// types are coerced, unknown keys are dropped. Every repair is recorded as a
// warning, in a fixed schema-walk order so identical input always yields an
// identical warning list.
func Normalize(raw any) (model.CvData, []string, error) {
	top, ok := raw.(map[string]any)
	if !ok || top == nil {
		return model.Empty(), nil, ErrNotObject
	}

	w := &warnings{}
	out := model.Empty()

	header := takeObject(w, top, "header")
	out.Header.FullName = takeString(w, header, "header", "full_name")
	out.Header.JobTitle = takeString(w, header, "header", "job_title")
	out.Header.Location = takeString(w, header, "header", "location")
	out.Header.Phone = takeString(w, header, "header", "phone")
	out.Header.Email = takeString(w, header, "header", "email")
	out.Header.GitHub = takeString(w, header, "header", "github")
	out.Header.LinkedIn = takeString(w, header, "header", "linkedin")
	dropUnknown(w, header, "header")

	out.ProfessionalSummary = takeString(w, top, "", "professional_summary")

	skills := takeObject(w, top, "core_skills")
	out.CoreSkills.LanguagesFrameworks = takeStringList(w, skills, "core_skills", "languages_frameworks")
	out.CoreSkills.DatabasesTools = takeStringList(w, skills, "core_skills", "databases_tools")
	out.CoreSkills.TestingDevOps = takeStringList(w, skills, "core_skills", "testing_devops")
	out.CoreSkills.DevelopmentPractices = takeStringList(w, skills, "core_skills", "development_practices")
	dropUnknown(w, skills, "core_skills")

	out.ProfessionalExperience = takeExperience(w, top)
	out.PersonalProjects = takeProjects(w, top)
	out.Education = takeStringList(w, top, "", "education")
	out.TrainingCertifications = takeStringList(w, top, "", "training_certifications")
	out.ATSKeywords = takeStringList(w, top, "", "ats_keywords")
	out.CustomizationNotes = takeStringList(w, top, "", "customization_notes")

	dropUnknown(w, top, "")

	return out, w.list, nil
}

// NormalizeBytes decodes raw JSON and normalizes it.
func NormalizeBytes(raw []byte) (model.CvData, []string, error) {
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return model.Empty(), nil, fmt.Errorf("%w: %v", ErrNotObject, err)
	}
	return Normalize(decoded)
}

var knownKeys = map[string][]string{
	"":            {"header", "professional_summary", "core_skills", "professional_experience", "personal_projects", "education", "training_certifications", "ats_keywords", "customization_notes"},
	"header":      {"full_name", "job_title", "location", "phone", "email", "github", "linkedin"},
	"core_skills": {"languages_frameworks", "databases_tools", "testing_devops", "development_practices"},
}

type warnings struct {
	list []string
}

func (w *warnings) add(format string, args ...any) {
	w.list = append(w.list, fmt.Sprintf(format, args...))
}

func fieldPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

// takeObject fetches a nested object field, substituting an empty object for
// missing or mismatched values. Known object keys are consumed by the caller;
// leftovers are reported by dropUnknown.
func takeObject(w *warnings, m map[string]any, key string) map[string]any {
	raw, ok := m[key]
	if !ok {
		w.add("missing field %q, using empty object", key)
		return map[string]any{}
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		w.add("field %q is not an object, using empty object", key)
		return map[string]any{}
	}
	return obj
}

func takeString(w *warnings, m map[string]any, parent, key string) string {
	path := fieldPath(parent, key)
	raw, ok := m[key]
	if !ok {
		w.add("missing field %q, using empty string", path)
		return ""
	}
	s, ok := coerceScalar(raw)
	if !ok {
		w.add("field %q is not a string, using empty string", path)
		return ""
	}
	return strings.TrimSpace(s)
}

func takeStringList(w *warnings, m map[string]any, parent, key string) []string {
	path := fieldPath(parent, key)
	raw, ok := m[key]
	if !ok {
		w.add("missing field %q, using empty list", path)
		return []string{}
	}
	return coerceStringList(w, raw, path)
}

// coerceStringList applies the list coercion rules: a bare scalar becomes a
// single-element list, list elements are stringified, and anything else
// reverts to the empty list.
func coerceStringList(w *warnings, raw any, path string) []string {
	switch v := raw.(type) {
	case []any:
		out := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := coerceScalar(item)
			if !ok {
				s = stringifyValue(item)
				w.add("field %q[%d] is not a string, stringified", path, i)
			}
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	default:
		if s, ok := coerceScalar(raw); ok {
			w.add("field %q is not a list, wrapping single value", path)
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				return []string{trimmed}
			}
			return []string{}
		}
		w.add("field %q is not a list, using empty list", path)
		return []string{}
	}
}

func takeExperience(w *warnings, top map[string]any) []model.Experience {
	raw, ok := top["professional_experience"]
	if !ok {
		w.add("missing field %q, using empty list", "professional_experience")
		return []model.Experience{}
	}
	items, ok := raw.([]any)
	if !ok {
		w.add("field %q is not a list, using empty list", "professional_experience")
		return []model.Experience{}
	}
	out := make([]model.Experience, 0, len(items))
	for i, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			w.add("field %q[%d] is not an object, dropped", "professional_experience", i)
			continue
		}
		path := fmt.Sprintf("professional_experience[%d]", i)
		exp := model.Experience{
			Title:      takeString(w, entry, path, "title"),
			Company:    takeString(w, entry, path, "company"),
			Duration:   takeString(w, entry, path, "duration"),
			Highlights: takeStringList(w, entry, path, "highlights"),
		}
		dropUnknownKeys(w, entry, path, []string{"title", "company", "duration", "highlights"})
		out = append(out, exp)
	}
	return out
}

func takeProjects(w *warnings, top map[string]any) []model.Project {
	raw, ok := top["personal_projects"]
	if !ok {
		w.add("missing field %q, using empty list", "personal_projects")
		return []model.Project{}
	}
	items, ok := raw.([]any)
	if !ok {
		w.add("field %q is not a list, using empty list", "personal_projects")
		return []model.Project{}
	}
	out := make([]model.Project, 0, len(items))
	for i, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			w.add("field %q[%d] is not an object, dropped", "personal_projects", i)
			continue
		}
		path := fmt.Sprintf("personal_projects[%d]", i)
		project := model.Project{
			Name:       takeString(w, entry, path, "name"),
			TechStack:  takeStringList(w, entry, path, "tech_stack"),
			Highlights: takeStringList(w, entry, path, "highlights"),
		}
		dropUnknownKeys(w, entry, path, []string{"name", "tech_stack", "highlights"})
		out = append(out, project)
	}
	if len(out) > model.MaxPersonalProjects {
		w.add("field %q has %d entries, truncated to %d", "personal_projects", len(out), model.MaxPersonalProjects)
		out = out[:model.MaxPersonalProjects]
	}
	return out
}

func dropUnknown(w *warnings, m map[string]any, parent string) {
	dropUnknownKeys(w, m, parent, knownKeys[parent])
}

// dropUnknownKeys reports extra keys in sorted order so the warning list is
// independent of map iteration order.
func dropUnknownKeys(w *warnings, m map[string]any, parent string, known []string) {
	knownSet := make(map[string]struct{}, len(known))
	for _, k := range known {
		knownSet[k] = struct{}{}
	}
	var extra []string
	for k := range m {
		if _, ok := knownSet[k]; !ok {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		w.add("unknown field %q dropped", fieldPath(parent, k))
	}
}

// coerceScalar converts JSON scalars to strings. Objects and lists are not
// scalars and report false.
func coerceScalar(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	case nil:
		return "", true
	default:
		return "", false
	}
}

// stringifyValue renders non-scalar list elements as compact JSON so no
// supplied content is silently lost.
func stringifyValue(raw any) string {
	data, err := json.Marshal(raw)
	if err != nil {
		return ""
	}
	return string(data)
}
