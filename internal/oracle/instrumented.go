package oracle

import (
	"context"
	"errors"
	"time"

	"github.com/jonathan/career-coach/internal/metrics"
	"github.com/jonathan/career-coach/internal/types"
)

// Instrumented records call counts and latency for the wrapped oracle.
type Instrumented struct {
	next Oracle
}

// Instrument wraps next with Prometheus instrumentation.
func Instrument(next Oracle) *Instrumented {
	return &Instrumented{next: next}
}

// Name implements Oracle.
func (i *Instrumented) Name() string {
	return i.next.Name()
}

// AnalyzeResume implements Oracle.
func (i *Instrumented) AnalyzeResume(ctx context.Context, req *types.ResumeAnalysisRequest) (*types.ResumeAnalysis, error) {
	start := time.Now()
	result, err := i.next.AnalyzeResume(ctx, req)
	i.observe(OpAnalyzeResume, err, start)
	return result, err
}

// AnalyzeResponse implements Oracle.
func (i *Instrumented) AnalyzeResponse(ctx context.Context, req *types.ResponseAnalysisRequest) (*types.ResponseAnalysis, error) {
	start := time.Now()
	result, err := i.next.AnalyzeResponse(ctx, req)
	i.observe(OpAnalyzeResponse, err, start)
	return result, err
}

// GenerateQuestions implements Oracle.
func (i *Instrumented) GenerateQuestions(ctx context.Context, req *types.QuestionRequest) (*types.QuestionSet, error) {
	start := time.Now()
	result, err := i.next.GenerateQuestions(ctx, req)
	i.observe(OpGenerateQuestions, err, start)
	return result, err
}

// OptimizeResume implements Oracle.
func (i *Instrumented) OptimizeResume(ctx context.Context, req *types.OptimizeRequest) (*types.Optimization, error) {
	start := time.Now()
	result, err := i.next.OptimizeResume(ctx, req)
	i.observe(OpOptimizeResume, err, start)
	return result, err
}

func (i *Instrumented) observe(op Operation, err error, start time.Time) {
	metrics.ObserveOracle(i.next.Name(), string(op), Outcome(err), time.Since(start))
}

// Outcome labels an oracle result for metrics and logs.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}

	var validationErr *types.ValidationError
	var configErr *ConfigError
	var rateErr *RateLimitedError
	var quotaErr *QuotaExhaustedError
	var parseErr *ParseError

	switch {
	case errors.As(err, &validationErr):
		return "invalid_request"
	case errors.As(err, &configErr):
		return "config_error"
	case errors.As(err, &rateErr):
		return "rate_limited"
	case errors.As(err, &quotaErr):
		return "quota_exhausted"
	case errors.As(err, &parseErr):
		return "parse_error"
	default:
		return "upstream_error"
	}
}
