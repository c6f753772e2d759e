package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/career-coach/internal/types"
)

const interviewColumns = `id, user_id, role, industry, experience_level,
	COALESCE(job_description, ''), COALESCE(status, 'in_progress'), overall_score,
	COALESCE(created_at, NOW()), COALESCE(updated_at, NOW())`

// CreateInterview stores an interview and its generated questions in one
// transaction. Questions are numbered from 1 in the order given.
func (db *DB) CreateInterview(ctx context.Context, userID uuid.UUID, req *types.QuestionRequest, questions []types.GeneratedQuestion) (*Interview, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx,
		`INSERT INTO interviews (user_id, role, industry, experience_level, job_description, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+interviewColumns,
		userID, req.Role, req.Industry, req.ExperienceLevel, nullIfEmpty(req.JobDescription), InterviewStatusInProgress,
	)
	interview, err := scanInterview(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create interview: %w", err)
	}

	interview.Questions = make([]InterviewQuestion, 0, len(questions))
	for i, q := range questions {
		var iq InterviewQuestion
		err := tx.QueryRow(ctx,
			`INSERT INTO interview_questions (interview_id, question_text, question_order, category)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id, interview_id, question_text, question_order, COALESCE(category, ''), COALESCE(created_at, NOW())`,
			interview.ID, q.Text, i+1, nullIfEmpty(string(q.Category)),
		).Scan(&iq.ID, &iq.InterviewID, &iq.QuestionText, &iq.QuestionOrder, &iq.Category, &iq.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to insert question %d: %w", i+1, err)
		}
		interview.Questions = append(interview.Questions, iq)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit interview: %w", err)
	}
	return interview, nil
}

// GetInterview retrieves an interview owned by userID with its questions.
// Returns nil, nil when the interview does not exist or belongs to someone else.
func (db *DB) GetInterview(ctx context.Context, userID, id uuid.UUID) (*Interview, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+interviewColumns+` FROM interviews WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	interview, err := scanInterview(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get interview: %w", err)
	}

	questions, err := db.listQuestions(ctx, id)
	if err != nil {
		return nil, err
	}
	interview.Questions = questions
	return interview, nil
}

// ListRecentInterviews returns the user's newest interviews without questions.
func (db *DB) ListRecentInterviews(ctx context.Context, userID uuid.UUID, limit int) ([]Interview, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+interviewColumns+` FROM interviews
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	defer rows.Close()

	interviews := []Interview{}
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan interview: %w", err)
		}
		interviews = append(interviews, *iv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list interviews: %w", err)
	}
	return interviews, nil
}

// GetQuestion retrieves a question that belongs to interviewID. Returns nil, nil when absent.
func (db *DB) GetQuestion(ctx context.Context, interviewID, questionID uuid.UUID) (*InterviewQuestion, error) {
	var q InterviewQuestion
	err := db.pool.QueryRow(ctx,
		`SELECT id, interview_id, question_text, question_order, COALESCE(category, ''), COALESCE(created_at, NOW())
		 FROM interview_questions
		 WHERE id = $1 AND interview_id = $2`,
		questionID, interviewID,
	).Scan(&q.ID, &q.InterviewID, &q.QuestionText, &q.QuestionOrder, &q.Category, &q.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return &q, nil
}

// CreateResponse stores a scored answer. The full analysis is kept in ai_feedback.
func (db *DB) CreateResponse(ctx context.Context, questionID uuid.UUID, responseText string, analysis *types.ResponseAnalysis) (*InterviewResponse, error) {
	var feedback []byte
	var score *int
	if analysis != nil {
		var err error
		feedback, err = json.Marshal(analysis)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal feedback: %w", err)
		}
		s := analysis.Score
		score = &s
	}

	var r InterviewResponse
	var stored []byte
	err := db.pool.QueryRow(ctx,
		`INSERT INTO interview_responses (question_id, response_text, score, ai_feedback)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, question_id, COALESCE(response_text, ''), COALESCE(recording_url, ''),
		           score, ai_feedback, COALESCE(created_at, NOW())`,
		questionID, responseText, score, feedback,
	).Scan(&r.ID, &r.QuestionID, &r.ResponseText, &r.RecordingURL, &r.Score, &stored, &r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create response: %w", err)
	}

	if len(stored) > 0 {
		r.AIFeedback = &types.ResponseAnalysis{}
		if err := json.Unmarshal(stored, r.AIFeedback); err != nil {
			return nil, fmt.Errorf("failed to decode feedback: %w", err)
		}
	}
	return &r, nil
}

// CompleteInterview marks an interview completed and sets its overall score to
// the rounded mean of its response scores. The score stays null when nothing
// was answered. Returns nil, nil when the interview is not owned by userID.
func (db *DB) CompleteInterview(ctx context.Context, userID, id uuid.UUID) (*Interview, error) {
	row := db.pool.QueryRow(ctx,
		`UPDATE interviews SET
		     status = $3,
		     overall_score = (
		         SELECT ROUND(AVG(r.score))::int
		         FROM interview_responses r
		         JOIN interview_questions q ON q.id = r.question_id
		         WHERE q.interview_id = $1 AND r.score IS NOT NULL
		     ),
		     updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+interviewColumns,
		id, userID, InterviewStatusCompleted,
	)
	interview, err := scanInterview(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to complete interview: %w", err)
	}

	questions, err := db.listQuestions(ctx, id)
	if err != nil {
		return nil, err
	}
	interview.Questions = questions
	return interview, nil
}

func (db *DB) listQuestions(ctx context.Context, interviewID uuid.UUID) ([]InterviewQuestion, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, interview_id, question_text, question_order, COALESCE(category, ''), COALESCE(created_at, NOW())
		 FROM interview_questions
		 WHERE interview_id = $1
		 ORDER BY question_order`,
		interviewID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	questions := []InterviewQuestion{}
	for rows.Next() {
		var q InterviewQuestion
		if err := rows.Scan(&q.ID, &q.InterviewID, &q.QuestionText, &q.QuestionOrder, &q.Category, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

func scanInterview(row pgx.Row) (*Interview, error) {
	var iv Interview
	if err := row.Scan(&iv.ID, &iv.UserID, &iv.Role, &iv.Industry, &iv.ExperienceLevel,
		&iv.JobDescription, &iv.Status, &iv.OverallScore, &iv.CreatedAt, &iv.UpdatedAt); err != nil {
		return nil, err
	}
	return &iv, nil
}
