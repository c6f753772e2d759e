package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/types"
)

// Interview status values
const (
	InterviewStatusInProgress = "in_progress"
	InterviewStatusCompleted  = "completed"
)

// RecentLimit is how many resumes and interviews the dashboard shows.
const RecentLimit = 3

// ResumeContent is the jsonb document stored in resumes.content.
type ResumeContent struct {
	Text     string                `json:"text"`
	Analysis *types.ResumeAnalysis `json:"analysis,omitempty"`
}

// Resume represents a stored, scored resume
type Resume struct {
	ID             uuid.UUID     `json:"id"`
	UserID         uuid.UUID     `json:"user_id"`
	Title          string        `json:"title"`
	Content        ResumeContent `json:"content"`
	ATSScore       *int          `json:"ats_score"`
	JobDescription string        `json:"job_description,omitempty"`
	FileURL        string        `json:"file_url,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// ResumeInput holds the fields needed to store a resume
type ResumeInput struct {
	Title          string
	Text           string
	JobDescription string
	FileURL        string
	Analysis       *types.ResumeAnalysis
}

// Interview represents a practice interview session
type Interview struct {
	ID              uuid.UUID           `json:"id"`
	UserID          uuid.UUID           `json:"user_id"`
	Role            string              `json:"role"`
	Industry        string              `json:"industry"`
	ExperienceLevel string              `json:"experience_level"`
	JobDescription  string              `json:"job_description,omitempty"`
	Status          string              `json:"status"`
	OverallScore    *int                `json:"overall_score"`
	Questions       []InterviewQuestion `json:"questions,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// InterviewQuestion is one persisted question of an interview
type InterviewQuestion struct {
	ID            uuid.UUID `json:"id"`
	InterviewID   uuid.UUID `json:"interview_id"`
	QuestionText  string    `json:"question_text"`
	QuestionOrder int       `json:"question_order"`
	Category      string    `json:"category,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// InterviewResponse is a scored answer to an interview question
type InterviewResponse struct {
	ID           uuid.UUID               `json:"id"`
	QuestionID   uuid.UUID               `json:"question_id"`
	ResponseText string                  `json:"response_text"`
	RecordingURL string                  `json:"recording_url,omitempty"`
	Score        *int                    `json:"score"`
	AIFeedback   *types.ResponseAnalysis `json:"ai_feedback,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
}

// Profile represents the user's career profile. ID is the auth user id.
type Profile struct {
	ID                uuid.UUID `json:"id"`
	FullName          string    `json:"full_name,omitempty"`
	AvatarURL         string    `json:"avatar_url,omitempty"`
	ProfessionalTitle string    `json:"professional_title,omitempty"`
	TargetIndustry    string    `json:"target_industry,omitempty"`
	YearsOfExperience *int      `json:"years_of_experience,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ProfileInput holds the editable profile fields
type ProfileInput struct {
	FullName          string
	AvatarURL         string
	ProfessionalTitle string
	TargetIndustry    string
	YearsOfExperience *int
}

// DashboardStats summarizes the recent activity shown on the dashboard.
type DashboardStats struct {
	TotalResumes    int `json:"totalResumes"`
	TotalInterviews int `json:"totalInterviews"`
	AvgScore        int `json:"avgScore"`
}

// Dashboard is the user's recent resumes and interviews with summary stats
type Dashboard struct {
	Resumes    []Resume       `json:"resumes"`
	Interviews []Interview    `json:"interviews"`
	Stats      DashboardStats `json:"stats"`
}
