package merge

import (
	"reflect"
	"testing"

	"cvmaker-backend/cv/model"
	"cvmaker-backend/internal/profile"
)

func testProfile() profile.Profile {
	return profile.Profile{
		FullName: "Jane Doe",
		Title:    "Backend Engineer",
		Location: "Lisbon, Portugal",
		Phone:    "+351 555 000",
		Email:    "jane@example.com",
		Links: profile.Links{
			GitHub:   "github.com/jane",
			LinkedIn: "linkedin.com/in/jane",
		},
		ProfessionalSummary: "Engineer with a pragmatic streak.",
		CoreSkills: map[string][]string{
			"languages_frameworks":  {"Go", "Python"},
			"databases_tools":       {"Postgres"},
			"testing_devops":        {"Docker"},
			"development_practices": {"TDD"},
		},
		ProfessionalExperience: []profile.Experience{
			{Title: "Engineer", Company: "Acme", Duration: "2020 - 2024", Description: "Built services."},
		},
		Education: profile.Education{
			Degree:         "BSc Computer Science",
			Institution:    "IST",
			Location:       "Lisbon",
			GraduationDate: "2019",
		},
		TrainingAndCertifications: []string{"AWS SAA"},
	}
}

func TestCleanOptional(t *testing.T) {
	cases := map[string]string{
		"":        "",
		"  ":      "",
		"string":  "",
		"None":    "",
		"NULL":    "",
		"n/a":     "",
		"NA":      "",
		" Acme ":  "Acme",
		"nan":     "nan",
		"Natixis": "Natixis",
	}
	for in, want := range cases {
		if got := CleanOptional(in); got != want {
			t.Fatalf("CleanOptional(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMergeOverrideBeatsProfile(t *testing.T) {
	data := model.Empty()
	data.Header.FullName = "J. Generated"

	res := Merge(data, testProfile(), Overrides{FullName: "J. D."})
	if res.FullName != "J. D." {
		t.Fatalf("expected override name, got %q", res.FullName)
	}
	if res.Data.Header.FullName != "J. D." {
		t.Fatalf("expected header name overridden, got %q", res.Data.Header.FullName)
	}
}

func TestMergeGeneratedBeatsProfile(t *testing.T) {
	data := model.Empty()
	data.Header.FullName = "Jane Generated"

	res := Merge(data, testProfile(), Overrides{})
	if res.FullName != "Jane Generated" {
		t.Fatalf("expected generated name, got %q", res.FullName)
	}
}

func TestMergeFillsHeaderFromProfile(t *testing.T) {
	res := Merge(model.Empty(), testProfile(), Overrides{})
	h := res.Data.Header
	if h.FullName != "Jane Doe" {
		t.Fatalf("full name: %q", h.FullName)
	}
	if h.Location != "Lisbon, Portugal" || h.Phone != "+351 555 000" || h.Email != "jane@example.com" {
		t.Fatalf("contact not filled: %+v", h)
	}
	if h.GitHub != "github.com/jane" || h.LinkedIn != "linkedin.com/in/jane" {
		t.Fatalf("links not filled: %+v", h)
	}
}

func TestMergePlaceholderTreatedAsEmpty(t *testing.T) {
	data := model.Empty()
	data.Header.Location = "string"
	data.Header.Phone = "n/a"

	res := Merge(data, testProfile(), Overrides{})
	if res.Data.Header.Location != "Lisbon, Portugal" {
		t.Fatalf("placeholder location should fall back, got %q", res.Data.Header.Location)
	}
	if res.Data.Header.Phone != "+351 555 000" {
		t.Fatalf("placeholder phone should fall back, got %q", res.Data.Header.Phone)
	}
}

func TestMergeSkillsFallBackPerGroup(t *testing.T) {
	data := model.Empty()
	data.CoreSkills.LanguagesFrameworks = []string{"Rust"}

	res := Merge(data, testProfile(), Overrides{})
	if !reflect.DeepEqual(res.Data.CoreSkills.LanguagesFrameworks, []string{"Rust"}) {
		t.Fatalf("generated group should win, got %v", res.Data.CoreSkills.LanguagesFrameworks)
	}
	if !reflect.DeepEqual(res.Data.CoreSkills.DatabasesTools, []string{"Postgres"}) {
		t.Fatalf("empty group should fill from profile, got %v", res.Data.CoreSkills.DatabasesTools)
	}
}

func TestMergeProjectsExperienceWithEmptyHighlights(t *testing.T) {
	res := Merge(model.Empty(), testProfile(), Overrides{})
	if len(res.Data.ProfessionalExperience) != 1 {
		t.Fatalf("expected experience projected, got %d", len(res.Data.ProfessionalExperience))
	}
	exp := res.Data.ProfessionalExperience[0]
	if exp.Title != "Engineer" || exp.Company != "Acme" {
		t.Fatalf("unexpected projection: %+v", exp)
	}
	if exp.Highlights == nil || len(exp.Highlights) != 0 {
		t.Fatalf("expected empty non-nil highlights, got %v", exp.Highlights)
	}
}

func TestMergeNeverPadsProjects(t *testing.T) {
	res := Merge(model.Empty(), testProfile(), Overrides{})
	if len(res.Data.PersonalProjects) != 0 {
		t.Fatalf("projects must never be invented, got %v", res.Data.PersonalProjects)
	}
}

func TestMergeEducationLine(t *testing.T) {
	res := Merge(model.Empty(), testProfile(), Overrides{})
	want := []string{"BSc Computer Science, IST, Lisbon, 2019"}
	if !reflect.DeepEqual(res.Data.Education, want) {
		t.Fatalf("education = %v, want %v", res.Data.Education, want)
	}
}

func TestMergeFilenameStem(t *testing.T) {
	res := Merge(model.Empty(), testProfile(), Overrides{CompanyName: "Acme Corp", JobRole: "Staff Engineer"})
	if res.FilenameStem != "Jane_Doe_Acme_Corp_Staff_Engineer" {
		t.Fatalf("stem = %q", res.FilenameStem)
	}
}

func TestMergeRoleFallsBackToProfileTitle(t *testing.T) {
	res := Merge(model.Empty(), testProfile(), Overrides{})
	if res.JobRole != "Backend Engineer" {
		t.Fatalf("role = %q", res.JobRole)
	}
}

func TestMergePlaceholderJobTitleReplacedInHeader(t *testing.T) {
	data := model.Empty()
	data.Header.JobTitle = "n/a"

	res := Merge(data, testProfile(), Overrides{})
	if res.JobRole != "Backend Engineer" {
		t.Fatalf("role = %q", res.JobRole)
	}
	if res.Data.Header.JobTitle != "Backend Engineer" {
		t.Fatalf("placeholder job title survived into header: %q", res.Data.Header.JobTitle)
	}
}
