package profile

import (
	"context"
	"errors"
	"strings"
)

// ErrInvalidProfile is returned for payloads that cannot identify a candidate.
var ErrInvalidProfile = errors.New("invalid profile")

// Service wraps the repo with input normalization.
type Service struct {
	Repo Repo
}

// Get returns the stored profile.
func (s *Service) Get(ctx context.Context) (Profile, error) {
	return s.Repo.Get(ctx)
}

// Create validates and stores the profile.
func (s *Service) Create(ctx context.Context, p Profile) (string, error) {
	normalized, err := normalizeProfile(p)
	if err != nil {
		return "", err
	}
	return s.Repo.Create(ctx, normalized)
}

// Replace validates and overwrites the stored profile.
func (s *Service) Replace(ctx context.Context, p Profile) (string, error) {
	normalized, err := normalizeProfile(p)
	if err != nil {
		return "", err
	}
	return s.Repo.Replace(ctx, normalized)
}

func normalizeProfile(p Profile) (Profile, error) {
	p.FullName = strings.TrimSpace(p.FullName)
	if p.FullName == "" {
		return Profile{}, ErrInvalidProfile
	}
	if p.CoreSkills == nil {
		p.CoreSkills = map[string][]string{}
	}
	if p.ProfessionalExperience == nil {
		p.ProfessionalExperience = []Experience{}
	}
	if p.TrainingAndCertifications == nil {
		p.TrainingAndCertifications = []string{}
	}
	return p, nil
}
