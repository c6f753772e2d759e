package scoring

import (
	"math"
	"regexp"

	"github.com/jonathan/career-coach/internal/parsing"
	"github.com/jonathan/career-coach/internal/types"
)

const (
	maxListedKeywords  = 10
	minResumeWordCount = 200
)

var (
	emailPattern = regexp.MustCompile(`(?i)[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}`)
	phonePattern = regexp.MustCompile(`(\+\d{1,3}[- ]?)?\d{10}`)
)

// resumeSignals is the input every structural check sees.
type resumeSignals struct {
	text     string
	matched  int
	keywords int
}

// structuralCheck is one pass/fail check over the resume.
type structuralCheck struct {
	passed   func(sig resumeSignals) bool
	strength string
	weakness string
}

var resumeChecks = []structuralCheck{
	{
		passed:   func(sig resumeSignals) bool { return emailPattern.MatchString(sig.text) },
		strength: "Contact information is present",
		weakness: "Missing email address",
	},
	{
		passed:   func(sig resumeSignals) bool { return phonePattern.MatchString(sig.text) },
		strength: "Phone number included",
		weakness: "Missing phone number",
	},
	{
		passed:   func(sig resumeSignals) bool { return parsing.WordCount(sig.text) > minResumeWordCount },
		strength: "Sufficient content length",
		weakness: "Resume content is too brief",
	},
	{
		passed:   func(sig resumeSignals) bool { return sig.matched*2 > sig.keywords },
		strength: "Good keyword match with job description",
		weakness: "Low keyword match - add more relevant skills",
	},
}

// AnalyzeResume computes the ATS score of a resume against the job description
// keywords, or against the default keywords when no job description is given.
func (s *Scorer) AnalyzeResume(req *types.ResumeAnalysisRequest) (*types.ResumeAnalysis, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	keywords := s.keywordsFor(req.JobDescription)

	matched := make([]string, 0, len(keywords))
	missing := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		if parsing.ContainsFold(req.ResumeText, keyword) {
			matched = append(matched, keyword)
		} else {
			missing = append(missing, keyword)
		}
	}

	match := keywordMatchPercent(len(matched), len(keywords))

	result := &types.ResumeAnalysis{
		ATSScore:        match,
		KeywordMatch:    match,
		Strengths:       []string{},
		Weaknesses:      []string{},
		MatchedKeywords: truncate(matched, maxListedKeywords),
		MissingKeywords: truncate(missing, maxListedKeywords),
	}

	sig := resumeSignals{text: req.ResumeText, matched: len(matched), keywords: len(keywords)}
	for _, check := range resumeChecks {
		if check.passed(sig) {
			result.Strengths = append(result.Strengths, check.strength)
		} else {
			result.Weaknesses = append(result.Weaknesses, check.weakness)
		}
	}

	return result, nil
}

func keywordMatchPercent(matched, total int) int {
	if total == 0 {
		return 0
	}
	pct := int(math.Round(float64(matched) / float64(total) * 100))
	return parsing.Clamp(pct, 0, 100)
}
