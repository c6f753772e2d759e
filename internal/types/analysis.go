// Package types provides the request and result records exchanged by the scorers, the oracle and the API.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ResumeAnalysisRequest is the body of an ATS resume analysis.
type ResumeAnalysisRequest struct {
	ResumeText     string `json:"resumeText" validate:"required"`
	JobDescription string `json:"jobDescription,omitempty"`
}

// Validate reports a missing resume body.
func (r *ResumeAnalysisRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return newValidationError(err, "Resume text is required")
	}
	return nil
}

// ResumeAnalysis is the ATS score and structural feedback for a resume.
type ResumeAnalysis struct {
	ATSScore        int      `json:"atsScore"`
	KeywordMatch    int      `json:"keywordMatch"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Suggestions     []string `json:"suggestions,omitempty"`
	MatchedKeywords []string `json:"matchedKeywords"`
	MissingKeywords []string `json:"missingKeywords"`
}

// ResponseAnalysisRequest is the body of an interview response analysis.
type ResponseAnalysisRequest struct {
	Question string `json:"question" validate:"required"`
	Response string `json:"response" validate:"required"`
	Category string `json:"category,omitempty"`
}

// Validate reports a missing question or response.
func (r *ResponseAnalysisRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return newValidationError(err, "Question and response are required")
	}
	return nil
}

// ResponseDetails exposes the raw signals behind a response score.
type ResponseDetails struct {
	WordCount              int  `json:"wordCount"`
	HasQuantifiableMetrics bool `json:"hasQuantifiableMetrics"`
	// UsesSTARMethod reports that the answer was scored with the STAR rubric,
	// which applies to Behavioral questions only.
	UsesSTARMethod         bool `json:"usesSTARMethod"`
}

// ResponseAnalysis is the score and narrative feedback for one interview answer.
type ResponseAnalysis struct {
	Score           int              `json:"score"`
	Feedback        string           `json:"feedback"`
	Strengths       []string         `json:"strengths"`
	Improvements    []string         `json:"improvements"`
	SuggestedAnswer string           `json:"suggestedAnswer,omitempty"`
	Details         *ResponseDetails `json:"details,omitempty"`
}

// OptimizeRequest is the body of a resume optimization request.
type OptimizeRequest struct {
	ResumeText        string `json:"resumeText" validate:"required"`
	JobDescription    string `json:"jobDescription,omitempty"`
	TargetImprovement string `json:"targetImprovement,omitempty"`
}

// Validate reports a missing resume body.
func (r *OptimizeRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return newValidationError(err, "Resume text is required")
	}
	return nil
}

// SectionPresence records which conventional resume sections were detected.
type SectionPresence struct {
	Summary    bool `json:"summary"`
	Experience bool `json:"experience"`
	Education  bool `json:"education"`
	Skills     bool `json:"skills"`
}

// OptimizedSections holds rewritten resume sections proposed by a remote model.
type OptimizedSections struct {
	Summary    string   `json:"summary,omitempty"`
	Experience []string `json:"experience,omitempty"`
	Skills     []string `json:"skills,omitempty"`
}

// Optimization is the list of resume improvements for a target job.
type Optimization struct {
	Improvements      []string           `json:"improvements"`
	AddedKeywords     []string           `json:"addedKeywords"`
	DetectedSections  *SectionPresence   `json:"detectedSections,omitempty"`
	OptimizedSections *OptimizedSections `json:"optimizedSections,omitempty"`
}
