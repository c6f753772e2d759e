package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jonathan/career-coach/internal/oracle"
	"github.com/jonathan/career-coach/internal/server/middleware"
	"github.com/jonathan/career-coach/internal/types"
	"go.uber.org/zap"
)

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty request body")
		}
		return err
	}
	return nil
}

// oracleError writes the response for a failed oracle operation.
func (s *Server) oracleError(w http.ResponseWriter, r *http.Request, op oracle.Operation, err error) {
	status := HTTPStatus(err)
	fields := []zap.Field{
		zap.String("operation", string(op)),
		zap.String("request_id", middleware.GetRequestID(r)),
		zap.Int("status", status),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("operation failed", fields...)
	} else {
		s.logger.Info("operation rejected", fields...)
	}
	s.errorResponse(w, status, PublicMessage(err, op.FailureMessage()))
}

// handleAnalyzeResume scores a resume for ATS compatibility.
func (s *Server) handleAnalyzeResume(w http.ResponseWriter, r *http.Request) {
	var req types.ResumeAnalysisRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	result, err := s.oracle.AnalyzeResume(r.Context(), &req)
	if err != nil {
		s.oracleError(w, r, oracle.OpAnalyzeResume, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleAnalyzeResponse scores one interview answer.
func (s *Server) handleAnalyzeResponse(w http.ResponseWriter, r *http.Request) {
	var req types.ResponseAnalysisRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	result, err := s.oracle.AnalyzeResponse(r.Context(), &req)
	if err != nil {
		s.oracleError(w, r, oracle.OpAnalyzeResponse, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleGenerateQuestions builds a practice question set.
func (s *Server) handleGenerateQuestions(w http.ResponseWriter, r *http.Request) {
	var req types.QuestionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	result, err := s.oracle.GenerateQuestions(r.Context(), &req)
	if err != nil {
		s.oracleError(w, r, oracle.OpGenerateQuestions, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleOptimizeResume suggests resume improvements.
func (s *Server) handleOptimizeResume(w http.ResponseWriter, r *http.Request) {
	var req types.OptimizeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	result, err := s.oracle.OptimizeResume(r.Context(), &req)
	if err != nil {
		s.oracleError(w, r, oracle.OpOptimizeResume, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}
