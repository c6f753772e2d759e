package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"

	"github.com/jonathan/career-coach/internal/llm"
	"github.com/jonathan/career-coach/internal/prompts"
	"github.com/jonathan/career-coach/internal/schemas"
	"github.com/jonathan/career-coach/internal/types"
	schemafiles "github.com/jonathan/career-coach/schemas"
	"go.uber.org/zap"
)

const defaultCategory = "General"

// Remote delegates every operation to a chat-completion model.
type Remote struct {
	client    llm.Client
	configErr error
	logger    *zap.Logger
}

// NewRemote creates a Remote oracle backed by client.
func NewRemote(client llm.Client, logger *zap.Logger) *Remote {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Remote{client: client, logger: logger}
}

// NewUnconfiguredRemote creates a Remote oracle whose calls all fail with a
// ConfigError wrapping cause. Request validation still runs first.
func NewUnconfiguredRemote(cause error, logger *zap.Logger) *Remote {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Remote{configErr: cause, logger: logger}
}

// Name implements Oracle.
func (r *Remote) Name() string {
	return string(StrategyRemote)
}

// Close releases the underlying client.
func (r *Remote) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}

type resumeReply struct {
	ATSScore        float64  `json:"atsScore"`
	KeywordMatch    float64  `json:"keywordMatch"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Suggestions     []string `json:"suggestions"`
	MatchedKeywords []string `json:"matchedKeywords"`
	MissingKeywords []string `json:"missingKeywords"`
}

type responseReply struct {
	Score           float64  `json:"score"`
	Strengths       []string `json:"strengths"`
	Improvements    []string `json:"improvements"`
	Feedback        string   `json:"feedback"`
	SuggestedAnswer string   `json:"suggestedAnswer"`
}

type questionReply struct {
	Questions []struct {
		Text       string `json:"text"`
		Category   string `json:"category"`
		Difficulty string `json:"difficulty"`
	} `json:"questions"`
}

type optimizeReply struct {
	OptimizedSections *types.OptimizedSections `json:"optimizedSections"`
	AddedKeywords     []string                 `json:"addedKeywords"`
	Improvements      []string                 `json:"improvements"`
}

// AnalyzeResume implements Oracle.
func (r *Remote) AnalyzeResume(ctx context.Context, req *types.ResumeAnalysisRequest) (*types.ResumeAnalysis, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	vars := prompts.Vars{
		"ResumeText":     req.ResumeText,
		"JobDescription": req.JobDescription,
	}

	var reply resumeReply
	if err := r.call(ctx, OpAnalyzeResume, "resume", vars, schemafiles.ResumeAnalysis, &reply); err != nil {
		return nil, err
	}

	return &types.ResumeAnalysis{
		ATSScore:        clampScore(reply.ATSScore),
		KeywordMatch:    clampScore(reply.KeywordMatch),
		Strengths:       nonNil(reply.Strengths),
		Weaknesses:      nonNil(reply.Weaknesses),
		Suggestions:     reply.Suggestions,
		MatchedKeywords: limit(nonNil(reply.MatchedKeywords), 10),
		MissingKeywords: limit(nonNil(reply.MissingKeywords), 10),
	}, nil
}

// AnalyzeResponse implements Oracle.
func (r *Remote) AnalyzeResponse(ctx context.Context, req *types.ResponseAnalysisRequest) (*types.ResponseAnalysis, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = defaultCategory
	}
	vars := prompts.Vars{
		"Question": req.Question,
		"Category": category,
		"Response": req.Response,
	}

	var reply responseReply
	if err := r.call(ctx, OpAnalyzeResponse, "interview", vars, schemafiles.ResponseAnalysis, &reply); err != nil {
		return nil, err
	}

	return &types.ResponseAnalysis{
		Score:           clampScore(reply.Score),
		Feedback:        reply.Feedback,
		Strengths:       nonNil(reply.Strengths),
		Improvements:    nonNil(reply.Improvements),
		SuggestedAnswer: reply.SuggestedAnswer,
	}, nil
}

// GenerateQuestions implements Oracle.
func (r *Remote) GenerateQuestions(ctx context.Context, req *types.QuestionRequest) (*types.QuestionSet, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	vars := prompts.Vars{
		"Role":            req.Role,
		"Industry":        req.Industry,
		"ExperienceLevel": req.ExperienceLevel,
		"JobDescription":  req.JobDescription,
	}

	var reply questionReply
	if err := r.call(ctx, OpGenerateQuestions, "questions", vars, schemafiles.QuestionSet, &reply); err != nil {
		return nil, err
	}

	set := &types.QuestionSet{Questions: make([]types.GeneratedQuestion, 0, len(reply.Questions))}
	for _, q := range reply.Questions {
		set.Questions = append(set.Questions, types.GeneratedQuestion{
			Text:       strings.TrimSpace(q.Text),
			Category:   types.ParseQuestionCategory(q.Category),
			Difficulty: strings.ToLower(strings.TrimSpace(q.Difficulty)),
		})
	}
	set.Normalize()
	return set, nil
}

// OptimizeResume implements Oracle.
func (r *Remote) OptimizeResume(ctx context.Context, req *types.OptimizeRequest) (*types.Optimization, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	vars := prompts.Vars{
		"ResumeText":        req.ResumeText,
		"JobDescription":    req.JobDescription,
		"TargetImprovement": req.TargetImprovement,
	}

	var reply optimizeReply
	if err := r.call(ctx, OpOptimizeResume, "optimize", vars, schemafiles.Optimization, &reply); err != nil {
		return nil, err
	}

	return &types.Optimization{
		Improvements:      limit(nonNil(reply.Improvements), 8),
		AddedKeywords:     limit(nonNil(reply.AddedKeywords), 10),
		OptimizedSections: reply.OptimizedSections,
	}, nil
}

// call renders the named prompt, validates the reply against schemaName and decodes it into out.
func (r *Remote) call(ctx context.Context, op Operation, prompt string, vars prompts.Vars, schemaName string, out interface{}) error {
	if r.configErr != nil || r.client == nil {
		return &ConfigError{Message: "remote oracle is not configured", Cause: r.configErr}
	}

	logger := r.logger.With(zap.String("operation", string(op)), zap.String("model", r.client.Model()))

	tmpl := prompts.MustLoad(prompt)
	content, err := r.client.GenerateJSON(ctx, tmpl.System, tmpl.Render(vars))
	if err != nil {
		classified := classify(op, err)
		logger.Warn("model call failed", zap.Error(err))
		return classified
	}

	if err := schemas.ValidateReply(schemaName, content); err != nil {
		logger.Warn("model reply failed schema validation", zap.Error(err))
		return &ParseError{Op: op, Cause: err}
	}

	if err := json.Unmarshal([]byte(content), out); err != nil {
		logger.Warn("model reply could not be decoded", zap.Error(err))
		return &ParseError{Op: op, Cause: err}
	}

	logger.Debug("model reply accepted", zap.Int("bytes", len(content)))
	return nil
}

// classify maps a client error to the oracle error taxonomy.
func classify(op Operation, err error) error {
	switch {
	case llm.IsRateLimited(err):
		return &RateLimitedError{Cause: err}
	case llm.IsQuotaExhausted(err):
		return &QuotaExhaustedError{Cause: err}
	case errors.Is(err, llm.ErrEmptyResponse):
		return &ParseError{Op: op, Cause: err}
	case errors.Is(err, llm.ErrMissingAPIKey):
		return &ConfigError{Message: "missing API key", Cause: err}
	default:
		return &UpstreamError{Op: op, Cause: err}
	}
}

func clampScore(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Max(0, math.Min(100, math.Round(v))))
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func limit(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
