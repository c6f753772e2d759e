package questions

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/career-coach/internal/prompts"
	"github.com/jonathan/career-coach/internal/types"
)

const (
	behavioralCount = 2
	technicalCount  = 2
	industryCount   = 1
	// minJobDescriptionLength is the job description length, in characters,
	// above which a job-specific question is added.
	minJobDescriptionLength = 100
)

// Generator builds question sets from a Bank. It is deterministic and safe for concurrent use.
type Generator struct {
	bank *Bank
}

// NewGenerator creates a Generator over bank, or over DefaultBank when bank is nil.
func NewGenerator(bank *Bank) *Generator {
	if bank == nil {
		bank = DefaultBank()
	}
	return &Generator{bank: bank}
}

// Generate assembles behavioral, technical, industry, level-specific and filler
// questions in that order, plus a job-specific question for long job
// descriptions. Unknown roles, industries and levels fall back silently.
func (g *Generator) Generate(req *types.QuestionRequest) (*types.QuestionSet, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	vars := prompts.Vars{
		"Role":     req.Role,
		"Industry": req.Industry,
	}
	set := &types.QuestionSet{}
	add := func(text string, category types.QuestionCategory) {
		set.Questions = append(set.Questions, types.GeneratedQuestion{
			Text:     prompts.Format(text, vars),
			Category: category,
		})
	}

	for _, text := range head(g.bank.Behavioral, behavioralCount) {
		add(text, types.CategoryBehavioral)
	}

	for _, text := range head(g.bank.Technical[g.roleCategory(req.Role)], technicalCount) {
		add(text, types.CategoryTechnical)
	}

	for _, text := range head(g.bank.Industry[strings.ToLower(strings.TrimSpace(req.Industry))], industryCount) {
		add(text, types.CategoryIndustrySpecific)
	}

	for _, q := range g.bank.Levels[strings.ToLower(strings.TrimSpace(req.ExperienceLevel))] {
		add(q.Text, q.Category)
	}

	for _, q := range g.bank.Fillers {
		add(q.Text, q.Category)
	}

	if g.bank.JobSpecific != "" && utf8.RuneCountInString(req.JobDescription) > minJobDescriptionLength {
		add(g.bank.JobSpecific, types.CategoryJobSpecific)
	}

	set.Normalize()
	return set, nil
}

// roleCategory returns the first role category contained in the role title.
func (g *Generator) roleCategory(role string) string {
	lower := strings.ToLower(role)
	for _, category := range g.bank.RoleCategories {
		if strings.Contains(lower, category) {
			return category
		}
	}
	return g.bank.DefaultRoleCategory
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
