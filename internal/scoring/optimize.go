package scoring

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/career-coach/internal/parsing"
	"github.com/jonathan/career-coach/internal/types"
)

const (
	maxImprovements       = 8
	maxAddedKeywords      = 10
	suggestedKeywordCount = 8
	listedKeywordCount    = 5
	minResumeChars        = 500
	maxResumeChars        = 3000
)

// resumeSection is a conventional section and the note shown when it is absent.
type resumeSection struct {
	pattern *regexp.Regexp
	missing string
	set     func(p *types.SectionPresence)
}

var resumeSections = []resumeSection{
	{
		pattern: regexp.MustCompile(`(?i)summary|objective|profile`),
		missing: "Add a professional summary at the top highlighting your key achievements and career goals",
		set:     func(p *types.SectionPresence) { p.Summary = true },
	},
	{
		pattern: regexp.MustCompile(`(?i)experience|work history|employment`),
		missing: "Include a detailed work experience section with bullet points describing your accomplishments",
		set:     func(p *types.SectionPresence) { p.Experience = true },
	},
	{
		pattern: regexp.MustCompile(`(?i)education|degree|university|college`),
		missing: "Add your educational background including degrees, institutions, and graduation dates",
		set:     func(p *types.SectionPresence) { p.Education = true },
	},
	{
		pattern: regexp.MustCompile(`(?i)skills|competencies|expertise`),
		missing: "Create a skills section listing your technical and soft skills relevant to the position",
		set:     func(p *types.SectionPresence) { p.Skills = true },
	},
}

var (
	weakVerbs          = []string{"did", "made", "worked on", "was responsible for"}
	achievementPattern = regexp.MustCompile(`(?i)\d+%|\d+\+|\$\d+|increased|decreased|reduced|improved`)
)

const (
	noteWeakVerbs      = "Replace weak verbs with strong action verbs like 'Led', 'Developed', 'Implemented', 'Achieved', 'Optimized'"
	noteQuantify       = "Quantify your achievements with metrics (e.g., 'Increased sales by 30%', 'Reduced costs by $50K')"
	noteExpand         = "Expand your resume to at least 500 words for better ATS compatibility"
	noteCondense       = "Consider condensing your resume to 1-2 pages for better readability"
	noteKeywordsPrefix = "Incorporate these keywords from the job description: "
)

// OptimizeResume lists concrete improvements for a resume: missing sections,
// weak verbs, missing metrics, job description keywords and length.
func (s *Scorer) OptimizeResume(req *types.OptimizeRequest) (*types.Optimization, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	text := req.ResumeText
	lower := strings.ToLower(text)
	improvements := []string{}
	added := []string{}
	sections := &types.SectionPresence{}

	for _, section := range resumeSections {
		if section.pattern.MatchString(text) {
			section.set(sections)
		} else {
			improvements = append(improvements, section.missing)
		}
	}

	for _, verb := range weakVerbs {
		if strings.Contains(lower, verb) {
			improvements = append(improvements, noteWeakVerbs)
			break
		}
	}

	if !achievementPattern.MatchString(text) {
		improvements = append(improvements, noteQuantify)
	}

	if req.JobDescription != "" {
		var missing []string
		for _, keyword := range parsing.ExtractKeywords(req.JobDescription, s.opts.KeywordLimit) {
			if !parsing.ContainsFold(text, keyword) {
				missing = append(missing, keyword)
			}
		}
		if len(missing) > 0 {
			added = append(added, truncate(missing, suggestedKeywordCount)...)
			improvements = append(improvements, noteKeywordsPrefix+strings.Join(truncate(missing, listedKeywordCount), ", "))
		}
	}

	switch length := utf8.RuneCountInString(text); {
	case length < minResumeChars:
		improvements = append(improvements, noteExpand)
	case length > maxResumeChars:
		improvements = append(improvements, noteCondense)
	}

	return &types.Optimization{
		Improvements:     truncate(improvements, maxImprovements),
		AddedKeywords:    truncate(added, maxAddedKeywords),
		DetectedSections: sections,
	}, nil
}
