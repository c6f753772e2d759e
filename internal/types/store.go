//nolint:revive // types is a standard Go package name pattern
package types

// CreateResumeRequest is the body of a request to score and save a resume.
type CreateResumeRequest struct {
	Title          string `json:"title" validate:"required"`
	Content        string `json:"content" validate:"required"`
	JobDescription string `json:"jobDescription,omitempty"`
	FileURL        string `json:"fileUrl,omitempty" validate:"omitempty,url"`
}

// Validate reports a missing title or content, or a malformed file URL.
func (r *CreateResumeRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return newValidationError(err, "Title and resume content are required")
	}
	return nil
}

// AnalysisRequest converts the body into a resume analysis request.
func (r *CreateResumeRequest) AnalysisRequest() *ResumeAnalysisRequest {
	return &ResumeAnalysisRequest{ResumeText: r.Content, JobDescription: r.JobDescription}
}

// AnswerRequest is the body of a request to score and save an interview answer.
type AnswerRequest struct {
	QuestionID   string `json:"questionId" validate:"required,uuid"`
	ResponseText string `json:"responseText" validate:"required"`
}

// Validate reports a missing or malformed question id or an empty answer.
func (r *AnswerRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return newValidationError(err, "Question ID and response text are required")
	}
	return nil
}

// ProfileRequest is the body of a profile update.
type ProfileRequest struct {
	FullName          string `json:"full_name"`
	AvatarURL         string `json:"avatar_url" validate:"omitempty,url"`
	ProfessionalTitle string `json:"professional_title"`
	TargetIndustry    string `json:"target_industry"`
	YearsOfExperience *int   `json:"years_of_experience" validate:"omitempty,min=0,max=80"`
}

// Validate reports out-of-range profile fields.
func (r *ProfileRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return newValidationError(err, "Invalid profile fields")
	}
	return nil
}
