package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const resumeColumns = `id, user_id, title, content, ats_score,
	COALESCE(job_description, ''), COALESCE(file_url, ''),
	COALESCE(created_at, NOW()), COALESCE(updated_at, NOW())`

// CreateResume stores a resume together with its analysis. The ATS score is
// copied out of the analysis so the dashboard can aggregate it.
func (db *DB) CreateResume(ctx context.Context, userID uuid.UUID, input *ResumeInput) (*Resume, error) {
	content, err := json.Marshal(ResumeContent{Text: input.Text, Analysis: input.Analysis})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume content: %w", err)
	}

	var score *int
	if input.Analysis != nil {
		s := input.Analysis.ATSScore
		score = &s
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO resumes (user_id, title, content, ats_score, job_description, file_url)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+resumeColumns,
		userID, input.Title, content, score, nullIfEmpty(input.JobDescription), nullIfEmpty(input.FileURL),
	)
	r, err := scanResume(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return r, nil
}

// GetResume retrieves a resume owned by userID. Returns nil, nil when absent.
func (db *DB) GetResume(ctx context.Context, userID, id uuid.UUID) (*Resume, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	r, err := scanResume(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return r, nil
}

// ListRecentResumes returns the user's newest resumes, newest first.
func (db *DB) ListRecentResumes(ctx context.Context, userID uuid.UUID, limit int) ([]Resume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+resumeColumns+` FROM resumes
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	resumes := []Resume{}
	for rows.Next() {
		r, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return resumes, nil
}

func scanResume(row pgx.Row) (*Resume, error) {
	var r Resume
	var content []byte
	if err := row.Scan(&r.ID, &r.UserID, &r.Title, &content, &r.ATSScore,
		&r.JobDescription, &r.FileURL, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	if len(content) > 0 {
		if err := json.Unmarshal(content, &r.Content); err != nil {
			return nil, fmt.Errorf("failed to decode resume content: %w", err)
		}
	}
	return &r, nil
}
