package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const profileColumns = `id, COALESCE(full_name, ''), COALESCE(avatar_url, ''),
	COALESCE(professional_title, ''), COALESCE(target_industry, ''), years_of_experience,
	COALESCE(created_at, NOW()), COALESCE(updated_at, NOW())`

// GetProfile retrieves the profile for userID. Returns nil, nil when none exists.
func (db *DB) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`,
		userID,
	)
	p, err := scanProfile(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

// UpsertProfile creates or replaces the editable fields of the user's profile.
func (db *DB) UpsertProfile(ctx context.Context, userID uuid.UUID, input *ProfileInput) (*Profile, error) {
	row := db.pool.QueryRow(ctx,
		`INSERT INTO profiles (id, full_name, avatar_url, professional_title, target_industry, years_of_experience)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE SET
		     full_name = $2,
		     avatar_url = $3,
		     professional_title = $4,
		     target_industry = $5,
		     years_of_experience = $6,
		     updated_at = NOW()
		 RETURNING `+profileColumns,
		userID, nullIfEmpty(input.FullName), nullIfEmpty(input.AvatarURL),
		nullIfEmpty(input.ProfessionalTitle), nullIfEmpty(input.TargetIndustry), input.YearsOfExperience,
	)
	p, err := scanProfile(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}
	return p, nil
}

func scanProfile(row pgx.Row) (*Profile, error) {
	var p Profile
	if err := row.Scan(&p.ID, &p.FullName, &p.AvatarURL, &p.ProfessionalTitle,
		&p.TargetIndustry, &p.YearsOfExperience, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
