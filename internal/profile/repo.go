package profile

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no profile record exists.
var ErrNotFound = errors.New("profile not found")

// ProfileKey identifies the singleton profile record in persistent stores.
const ProfileKey = "my_profile"

// Repo defines persistence operations for the singleton profile record.
type Repo interface {
	Get(ctx context.Context) (Profile, error)
	// Create stores the profile, replacing any existing record, and returns
	// the record id.
	Create(ctx context.Context, p Profile) (string, error)
	// Replace overwrites the existing record; it fails with ErrNotFound when
	// no record exists yet.
	Replace(ctx context.Context, p Profile) (string, error)
}
