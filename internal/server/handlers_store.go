package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/oracle"
	"github.com/jonathan/career-coach/internal/server/middleware"
	"github.com/jonathan/career-coach/internal/types"
	"go.uber.org/zap"
)

// storeError logs a persistence failure and writes a generic 500.
func (s *Server) storeError(w http.ResponseWriter, r *http.Request, action string, err error) {
	s.logger.Error("store operation failed",
		zap.String("action", action),
		zap.String("request_id", middleware.GetRequestID(r)),
		zap.Error(err))
	s.errorResponse(w, http.StatusInternalServerError, msgStoreFailure)
}

// requireUser returns the authenticated user, writing a 401 when absent.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(r)
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, msgUnauthorized)
		return uuid.Nil, false
	}
	return userID, true
}

// pathID parses the {id} path value, writing a 400 when it is not a UUID.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, msgInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

// handleDashboard returns the user's recent resumes and interviews with stats.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	dashboard, err := s.store.Dashboard(r.Context(), userID)
	if err != nil {
		s.storeError(w, r, "dashboard", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, dashboard)
}

// handleCreateResume scores a resume and saves it with its analysis.
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req types.CreateResumeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}
	if err := req.Validate(); err != nil {
		s.oracleError(w, r, oracle.OpAnalyzeResume, err)
		return
	}

	analysis, err := s.oracle.AnalyzeResume(r.Context(), req.AnalysisRequest())
	if err != nil {
		s.oracleError(w, r, oracle.OpAnalyzeResume, err)
		return
	}

	resume, err := s.store.CreateResume(r.Context(), userID, &db.ResumeInput{
		Title:          req.Title,
		Text:           req.Content,
		JobDescription: req.JobDescription,
		FileURL:        req.FileURL,
		Analysis:       analysis,
	})
	if err != nil {
		s.storeError(w, r, "create resume", err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, resume)
}

// handleGetResume returns one saved resume with its stored analysis.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	resume, err := s.store.GetResume(r.Context(), userID, id)
	if err != nil {
		s.storeError(w, r, "get resume", err)
		return
	}
	if resume == nil {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, resume)
}

// handleCreateInterview generates questions and saves them as a new interview.
func (s *Server) handleCreateInterview(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req types.QuestionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	set, err := s.oracle.GenerateQuestions(r.Context(), &req)
	if err != nil {
		s.oracleError(w, r, oracle.OpGenerateQuestions, err)
		return
	}

	interview, err := s.store.CreateInterview(r.Context(), userID, &req, set.Questions)
	if err != nil {
		s.storeError(w, r, "create interview", err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, interview)
}

// handleGetInterview returns one interview with its questions.
func (s *Server) handleGetInterview(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	interview, err := s.store.GetInterview(r.Context(), userID, id)
	if err != nil {
		s.storeError(w, r, "get interview", err)
		return
	}
	if interview == nil {
		s.errorResponse(w, http.StatusNotFound, "Interview not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, interview)
}

// handleCreateResponse scores an answer to one of the interview's questions and saves it.
func (s *Server) handleCreateResponse(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	interviewID, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req types.AnswerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}
	if err := req.Validate(); err != nil {
		s.oracleError(w, r, oracle.OpAnalyzeResponse, err)
		return
	}
	questionID := uuid.MustParse(req.QuestionID)

	interview, err := s.store.GetInterview(r.Context(), userID, interviewID)
	if err != nil {
		s.storeError(w, r, "get interview", err)
		return
	}
	if interview == nil {
		s.errorResponse(w, http.StatusNotFound, "Interview not found")
		return
	}
	if interview.Status == db.InterviewStatusCompleted {
		s.errorResponse(w, http.StatusConflict, "Interview is already completed")
		return
	}

	question, err := s.store.GetQuestion(r.Context(), interviewID, questionID)
	if err != nil {
		s.storeError(w, r, "get question", err)
		return
	}
	if question == nil {
		s.errorResponse(w, http.StatusNotFound, "Question not found")
		return
	}

	analysis, err := s.oracle.AnalyzeResponse(r.Context(), &types.ResponseAnalysisRequest{
		Question: question.QuestionText,
		Response: req.ResponseText,
		Category: question.Category,
	})
	if err != nil {
		s.oracleError(w, r, oracle.OpAnalyzeResponse, err)
		return
	}

	response, err := s.store.CreateResponse(r.Context(), questionID, req.ResponseText, analysis)
	if err != nil {
		s.storeError(w, r, "create response", err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, response)
}

// handleCompleteInterview closes an interview and computes its overall score.
func (s *Server) handleCompleteInterview(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	interview, err := s.store.CompleteInterview(r.Context(), userID, id)
	if err != nil {
		s.storeError(w, r, "complete interview", err)
		return
	}
	if interview == nil {
		s.errorResponse(w, http.StatusNotFound, "Interview not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, interview)
}

// handleGetProfile returns the user's profile.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	profile, err := s.store.GetProfile(r.Context(), userID)
	if err != nil {
		s.storeError(w, r, "get profile", err)
		return
	}
	if profile == nil {
		s.errorResponse(w, http.StatusNotFound, "Profile not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, profile)
}

// handleUpdateProfile creates or replaces the user's profile.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	var req types.ProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, PublicMessage(err, msgInternal))
		return
	}

	profile, err := s.store.UpsertProfile(r.Context(), userID, &db.ProfileInput{
		FullName:          req.FullName,
		AvatarURL:         req.AvatarURL,
		ProfessionalTitle: req.ProfessionalTitle,
		TargetIndustry:    req.TargetIndustry,
		YearsOfExperience: req.YearsOfExperience,
	})
	if err != nil {
		s.storeError(w, r, "update profile", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, profile)
}
