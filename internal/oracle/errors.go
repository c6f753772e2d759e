package oracle

import (
	"fmt"
)

// Operation names one oracle operation.
type Operation string

// Oracle operations.
const (
	OpAnalyzeResume     Operation = "analyze-resume"
	OpAnalyzeResponse   Operation = "analyze-interview-response"
	OpGenerateQuestions Operation = "generate-interview-questions"
	OpOptimizeResume    Operation = "optimize-resume"
)

// FailureMessage is the caller-facing message for a failed operation.
func (op Operation) FailureMessage() string {
	switch op {
	case OpAnalyzeResume:
		return "Failed to analyze resume"
	case OpAnalyzeResponse:
		return "Failed to analyze response"
	case OpGenerateQuestions:
		return "Failed to generate questions"
	case OpOptimizeResume:
		return "Failed to optimize resume"
	default:
		return "Request failed"
	}
}

// Messages forwarded verbatim to callers.
const (
	RateLimitedMessage    = "Rate limit exceeded. Please try again later."
	QuotaExhaustedMessage = "AI credits depleted. Please add credits to continue."
)

// ConfigError reports a remote oracle that cannot run, usually a missing API key.
type ConfigError struct {
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("oracle configuration error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("oracle configuration error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// RateLimitedError reports an upstream 429.
type RateLimitedError struct {
	Cause error
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("upstream rate limited: %v", e.Cause)
}

func (e *RateLimitedError) Unwrap() error {
	return e.Cause
}

// PublicMessage is safe to show to the caller.
func (e *RateLimitedError) PublicMessage() string {
	return RateLimitedMessage
}

// QuotaExhaustedError reports an upstream 402.
type QuotaExhaustedError struct {
	Cause error
}

func (e *QuotaExhaustedError) Error() string {
	return fmt.Sprintf("upstream quota exhausted: %v", e.Cause)
}

func (e *QuotaExhaustedError) Unwrap() error {
	return e.Cause
}

// PublicMessage is safe to show to the caller.
func (e *QuotaExhaustedError) PublicMessage() string {
	return QuotaExhaustedMessage
}

// ParseError reports a reply that is empty, not JSON or not in the expected shape.
type ParseError struct {
	Op    Operation
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: unusable model reply: %v", e.Op, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// PublicMessage is safe to show to the caller.
func (e *ParseError) PublicMessage() string {
	return e.Op.FailureMessage()
}

// UpstreamError reports a failed call to the model provider.
type UpstreamError struct {
	Op    Operation
	Cause error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: upstream call failed: %v", e.Op, e.Cause)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// PublicMessage is safe to show to the caller.
func (e *UpstreamError) PublicMessage() string {
	return e.Op.FailureMessage()
}
