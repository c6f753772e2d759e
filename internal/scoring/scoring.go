// Package scoring implements the local heuristic scorers: the resume ATS scorer,
// the interview response scorer and the resume optimizer.
package scoring

import (
	"slices"

	"github.com/jonathan/career-coach/internal/parsing"
	"github.com/jonathan/career-coach/internal/types"
)

// DefaultKeywords are matched against a resume when no job description yields keywords.
var DefaultKeywords = []string{"experience", "skills", "education", "projects", "achievements"}

// Options holds the lookup tables used by a Scorer.
type Options struct {
	// DefaultKeywords replace the job description keywords when none can be extracted.
	DefaultKeywords []string
	// KeywordLimit caps the number of keywords taken from a job description.
	KeywordLimit int
}

// DefaultOptions returns the built-in keyword tables.
func DefaultOptions() Options {
	return Options{
		DefaultKeywords: slices.Clone(DefaultKeywords),
		KeywordLimit:    parsing.DefaultKeywordLimit,
	}
}

// Scorer runs the heuristic scorers. It holds no mutable state and is safe for concurrent use.
type Scorer struct {
	opts Options
}

// New creates a Scorer. Zero-valued options fall back to the defaults.
func New(opts Options) *Scorer {
	if len(opts.DefaultKeywords) == 0 {
		opts.DefaultKeywords = slices.Clone(DefaultKeywords)
	}
	if opts.KeywordLimit <= 0 {
		opts.KeywordLimit = parsing.DefaultKeywordLimit
	}
	return &Scorer{opts: opts}
}

var defaultScorer = New(DefaultOptions())

// AnalyzeResume scores a resume with the default keyword tables.
func AnalyzeResume(req *types.ResumeAnalysisRequest) (*types.ResumeAnalysis, error) {
	return defaultScorer.AnalyzeResume(req)
}

// AnalyzeResponse scores an interview response.
func AnalyzeResponse(req *types.ResponseAnalysisRequest) (*types.ResponseAnalysis, error) {
	return defaultScorer.AnalyzeResponse(req)
}

// OptimizeResume lists improvements for a resume with the default keyword tables.
func OptimizeResume(req *types.OptimizeRequest) (*types.Optimization, error) {
	return defaultScorer.OptimizeResume(req)
}

// keywordsFor returns the active keyword set for a job description.
func (s *Scorer) keywordsFor(jobDescription string) []string {
	if jobDescription != "" {
		if keywords := parsing.ExtractKeywords(jobDescription, s.opts.KeywordLimit); len(keywords) > 0 {
			return keywords
		}
	}
	return slices.Clone(s.opts.DefaultKeywords)
}

func truncate(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
