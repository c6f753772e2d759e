// Package oracle puts the local heuristic scorers and the remote LLM scorers
// behind one interface selected by configuration.
package oracle

import (
	"context"
	"fmt"

	"github.com/jonathan/career-coach/internal/llm"
	"github.com/jonathan/career-coach/internal/types"
	"go.uber.org/zap"
)

// Oracle maps text input to scores and feedback.
type Oracle interface {
	AnalyzeResume(ctx context.Context, req *types.ResumeAnalysisRequest) (*types.ResumeAnalysis, error)
	AnalyzeResponse(ctx context.Context, req *types.ResponseAnalysisRequest) (*types.ResponseAnalysis, error)
	GenerateQuestions(ctx context.Context, req *types.QuestionRequest) (*types.QuestionSet, error)
	OptimizeResume(ctx context.Context, req *types.OptimizeRequest) (*types.Optimization, error)
	Name() string
}

// Strategy selects an Oracle implementation.
type Strategy string

// Supported strategies.
const (
	StrategyHeuristic Strategy = "heuristic"
	StrategyRemote    Strategy = "remote"
)

// Options configures New.
type Options struct {
	Strategy Strategy
	LLM      *llm.Config
	APIKey   string
	Logger   *zap.Logger
}

// New builds the oracle for opts.Strategy. A remote oracle without usable
// credentials is still returned; each call then fails with a ConfigError.
func New(ctx context.Context, opts Options) (Oracle, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	switch opts.Strategy {
	case StrategyHeuristic, "":
		return NewHeuristic(nil, nil), nil
	case StrategyRemote:
		client, err := llm.NewClient(ctx, opts.LLM, opts.APIKey)
		if err != nil {
			logger.Warn("remote oracle is not configured; requests will fail", zap.Error(err))
			return NewUnconfiguredRemote(err, logger), nil
		}
		return NewRemote(client, logger), nil
	default:
		return nil, fmt.Errorf("unknown oracle strategy %q", opts.Strategy)
	}
}
