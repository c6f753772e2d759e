// Package questions assembles interview question sets from fixed question banks.
package questions

import (
	"github.com/jonathan/career-coach/internal/types"
)

// Bank is a read-only set of question pools. Templates may reference
// {{.Role}} and {{.Industry}}.
type Bank struct {
	// Behavioral questions open every set.
	Behavioral []string
	// Technical maps a role category to its questions.
	Technical map[string][]string
	// RoleCategories are matched in order against the lowercase role title.
	RoleCategories []string
	// DefaultRoleCategory is used when no role category matches.
	DefaultRoleCategory string
	// Industry maps a lowercase industry key to its questions.
	Industry map[string][]string
	// Levels maps a lowercase experience level to its questions.
	Levels map[string][]types.GeneratedQuestion
	// Fillers close every set.
	Fillers []types.GeneratedQuestion
	// JobSpecific is asked when a substantial job description is supplied.
	JobSpecific string
}

var defaultBehavioral = []string{
	"Tell me about a time when you faced a challenging problem at work. How did you approach it?",
	"Describe a situation where you had to work with a difficult team member. How did you handle it?",
	"Give me an example of a goal you set and how you achieved it.",
	"Tell me about a time when you failed. What did you learn from it?",
}

var seniorQuestions = []types.GeneratedQuestion{
	{Text: "How do you mentor junior team members?", Category: types.CategoryLeadership},
	{Text: "Describe a time when you made a strategic decision that impacted the team.", Category: types.CategoryStrategicThinking},
}

// DefaultBank returns the built-in question pools. Each call returns a fresh copy.
func DefaultBank() *Bank {
	return &Bank{
		Behavioral: append([]string(nil), defaultBehavioral...),
		Technical: map[string][]string{
			"engineer": {
				"What are the key technical skills required for a {{.Role}} in {{.Industry}}?",
				"Explain a complex technical concept from {{.Industry}} in simple terms.",
				"Walk me through your approach to debugging a production issue.",
			},
			"manager": {
				"How do you prioritize tasks when managing multiple projects?",
				"Describe your leadership style and give an example of how it helped your team succeed.",
				"How do you handle underperforming team members?",
			},
			"developer": {
				"What's your experience with modern development frameworks?",
				"How do you ensure code quality in your projects?",
				"Describe your approach to system design and architecture.",
			},
		},
		RoleCategories:      []string{"engineer", "manager", "developer"},
		DefaultRoleCategory: "engineer",
		Industry: map[string][]string{
			"tech": {
				"How do you stay updated with the latest technology trends?",
				"Describe a project where you implemented a new technology.",
			},
			"finance": {
				"How do you handle sensitive financial data?",
				"What's your experience with financial regulations and compliance?",
			},
			"healthcare": {
				"How do you ensure patient data privacy and security?",
				"Describe your experience with healthcare systems and regulations.",
			},
		},
		Levels: map[string][]types.GeneratedQuestion{
			"entry": {
				{Text: "What interests you most about this role and our company?", Category: types.CategoryMotivation},
				{Text: "Where do you see yourself in 5 years?", Category: types.CategoryCareerGoals},
			},
			"senior": seniorQuestions,
			"lead":   seniorQuestions,
		},
		Fillers: []types.GeneratedQuestion{
			{Text: "How would you handle a situation where you disagree with your manager?", Category: types.CategorySituational},
			{Text: defaultBehavioral[2], Category: types.CategoryBehavioral},
		},
		JobSpecific: "Based on the job description, how does your experience align with the key requirements for this {{.Role}} position?",
	}
}
