//nolint:revive // types is a standard Go package name pattern
package types

// QuestionCategory labels the intent of an interview question.
type QuestionCategory string

// Question categories produced by the generators.
const (
	CategoryBehavioral        QuestionCategory = "Behavioral"
	CategoryTechnical         QuestionCategory = "Technical"
	CategoryIndustrySpecific  QuestionCategory = "Industry-Specific"
	CategoryMotivation        QuestionCategory = "Motivation"
	CategoryCareerGoals       QuestionCategory = "Career Goals"
	CategoryLeadership        QuestionCategory = "Leadership"
	CategoryStrategicThinking QuestionCategory = "Strategic Thinking"
	CategorySituational       QuestionCategory = "Situational"
	CategoryJobSpecific       QuestionCategory = "Job-Specific"
	CategoryCultureFit        QuestionCategory = "Culture Fit"
)

// remoteCategories maps the lowercase labels used in model replies to categories.
var remoteCategories = map[string]QuestionCategory{
	"behavioral":         CategoryBehavioral,
	"technical":          CategoryTechnical,
	"situational":        CategorySituational,
	"culture_fit":        CategoryCultureFit,
	"culture fit":        CategoryCultureFit,
	"industry-specific":  CategoryIndustrySpecific,
	"motivation":         CategoryMotivation,
	"career goals":       CategoryCareerGoals,
	"leadership":         CategoryLeadership,
	"strategic thinking": CategoryStrategicThinking,
	"job-specific":       CategoryJobSpecific,
}

// ParseQuestionCategory resolves a free-form label, returning it unchanged when unknown.
func ParseQuestionCategory(label string) QuestionCategory {
	if c, ok := remoteCategories[toLower(label)]; ok {
		return c
	}
	return QuestionCategory(label)
}

// QuestionRequest is the body of an interview question generation request.
type QuestionRequest struct {
	Role            string `json:"role" validate:"required"`
	Industry        string `json:"industry" validate:"required"`
	ExperienceLevel string `json:"experienceLevel" validate:"required"`
	JobDescription  string `json:"jobDescription,omitempty"`
}

// Validate reports missing role, industry or experience level.
func (r *QuestionRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return newValidationError(err, "Role, industry, and experience level are required")
	}
	return nil
}

// GeneratedQuestion is one interview question.
type GeneratedQuestion struct {
	Text       string           `json:"text"`
	Category   QuestionCategory `json:"category"`
	Difficulty string           `json:"difficulty,omitempty"`
}

// QuestionSet is the ordered list returned by a generator.
type QuestionSet struct {
	Questions []GeneratedQuestion `json:"questions"`
}

// MaxQuestions caps every generated question set.
const MaxQuestions = 10

// Normalize removes duplicate question texts and applies the MaxQuestions cap.
func (s *QuestionSet) Normalize() {
	seen := make(map[string]bool, len(s.Questions))
	out := make([]GeneratedQuestion, 0, len(s.Questions))
	for _, q := range s.Questions {
		if q.Text == "" || seen[q.Text] {
			continue
		}
		seen[q.Text] = true
		out = append(out, q)
		if len(out) == MaxQuestions {
			break
		}
	}
	s.Questions = out
}
