package oracle

import (
	"context"

	"github.com/jonathan/career-coach/internal/questions"
	"github.com/jonathan/career-coach/internal/scoring"
	"github.com/jonathan/career-coach/internal/types"
)

// Heuristic scores locally with fixed rules. It makes no network calls.
type Heuristic struct {
	scorer    *scoring.Scorer
	generator *questions.Generator
}

// NewHeuristic creates a Heuristic oracle. Nil arguments use the built-in tables.
func NewHeuristic(scorer *scoring.Scorer, generator *questions.Generator) *Heuristic {
	if scorer == nil {
		scorer = scoring.New(scoring.DefaultOptions())
	}
	if generator == nil {
		generator = questions.NewGenerator(nil)
	}
	return &Heuristic{scorer: scorer, generator: generator}
}

// Name implements Oracle.
func (h *Heuristic) Name() string {
	return string(StrategyHeuristic)
}

// AnalyzeResume implements Oracle. The text is scored as given; markup is only
// removed when a file is known to be HTML (see ingestion.ReadFile).
func (h *Heuristic) AnalyzeResume(_ context.Context, req *types.ResumeAnalysisRequest) (*types.ResumeAnalysis, error) {
	return h.scorer.AnalyzeResume(req)
}

// AnalyzeResponse implements Oracle.
func (h *Heuristic) AnalyzeResponse(_ context.Context, req *types.ResponseAnalysisRequest) (*types.ResponseAnalysis, error) {
	return h.scorer.AnalyzeResponse(req)
}

// GenerateQuestions implements Oracle.
func (h *Heuristic) GenerateQuestions(_ context.Context, req *types.QuestionRequest) (*types.QuestionSet, error) {
	return h.generator.Generate(req)
}

// OptimizeResume implements Oracle.
func (h *Heuristic) OptimizeResume(_ context.Context, req *types.OptimizeRequest) (*types.Optimization, error) {
	return h.scorer.OptimizeResume(req)
}
