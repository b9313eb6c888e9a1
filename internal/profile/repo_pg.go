package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// PGRepo implements Repo using Postgres. The singleton record lives in a
// single row keyed by profile_key; the profile body is stored as JSONB so
// the schema can evolve without migrations.
type PGRepo struct {
	DB *sql.DB
}

// Get returns the stored profile.
func (r *PGRepo) Get(ctx context.Context) (Profile, error) {
	const query = `
SELECT id, payload, created_at, updated_at
FROM profiles
WHERE profile_key = $1
LIMIT 1`

	var (
		id        string
		payload   []byte
		createdAt time.Time
		updatedAt time.Time
	)
	err := r.DB.QueryRowContext(ctx, query, ProfileKey).Scan(&id, &payload, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}

	var p Profile
	if err := json.Unmarshal(payload, &p); err != nil {
		return Profile{}, err
	}
	p.ID = id
	p.CreatedAt = createdAt
	p.UpdatedAt = updatedAt
	return p, nil
}

// Create upserts the singleton row and returns its id.
func (r *PGRepo) Create(ctx context.Context, p Profile) (string, error) {
	const query = `
INSERT INTO profiles (id, profile_key, payload, created_at, updated_at)
VALUES ($1, $2, $3, $4, $4)
ON CONFLICT (profile_key)
DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
RETURNING id`

	payload, err := marshalPayload(p)
	if err != nil {
		return "", err
	}

	var id string
	err = r.DB.QueryRowContext(ctx, query, uuid.NewString(), ProfileKey, payload, time.Now().UTC()).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// Replace overwrites the existing row or fails with ErrNotFound.
func (r *PGRepo) Replace(ctx context.Context, p Profile) (string, error) {
	const query = `
UPDATE profiles
SET payload = $2, updated_at = $3
WHERE profile_key = $1
RETURNING id`

	payload, err := marshalPayload(p)
	if err != nil {
		return "", err
	}

	var id string
	err = r.DB.QueryRowContext(ctx, query, ProfileKey, payload, time.Now().UTC()).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return id, nil
}

// marshalPayload strips store-owned fields before serializing so the JSONB
// body never carries a stale id or timestamps.
func marshalPayload(p Profile) ([]byte, error) {
	p.ID = ""
	p.CreatedAt = time.Time{}
	p.UpdatedAt = time.Time{}
	return json.Marshal(p)
}

var _ Repo = (*PGRepo)(nil)
