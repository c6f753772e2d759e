package scoring

import (
	"regexp"
	"strings"

	"github.com/jonathan/career-coach/internal/parsing"
	"github.com/jonathan/career-coach/internal/types"
)

const (
	baseResponseScore = 60
	minResponseScore  = 40
	maxResponseScore  = 100
	maxFeedbackItems  = 3

	briefResponseWords   = 50
	verboseResponseWords = 300
	starCueThreshold     = 3
	negativeWordLimit    = 2
	minFirstPersonCount  = 2
	minActionVerbCount   = 2
)

// starCues are the Situation, Task, Action and Result cue patterns, in that order.
var starCues = []*regexp.Regexp{
	regexp.MustCompile(`(?i)situation|context|when|where`),
	regexp.MustCompile(`(?i)task|goal|objective|needed to`),
	regexp.MustCompile(`(?i)\bi (did|implemented|created|developed|led|managed)|action|approach`),
	regexp.MustCompile(`(?i)result|outcome|achieved|improved|increased|decreased`),
}

var (
	metricPattern      = regexp.MustCompile(`(?i)\d+%|\d+ (months|years|weeks|days)|\$\d+|increased|decreased|reduced`)
	specificPattern    = regexp.MustCompile(`(?i)for example|specifically|in particular|such as`)
	negativePattern    = regexp.MustCompile(`(?i)\b(failed|couldn't|impossible|never|hate|worst)\b`)
	firstPersonPattern = regexp.MustCompile(`(?i)\b(i|my|me)\b`)
	actionVerbPattern  = regexp.MustCompile(`(?i)\b(led|managed|developed|created|implemented|designed|improved|optimized|achieved|coordinated)\b`)
)

// Feedback strings surfaced by the response detectors.
const (
	NoteTooBrief      = "Your response is too brief. Aim for 100-200 words to provide sufficient detail."
	NoteTooLong       = "Consider being more concise. Long responses can lose the interviewer's attention."
	NoteGoodLength    = "Good response length - detailed but concise."
	NoteSTARStrong    = "Excellent use of the STAR method to structure your response."
	NoteSTARMissing   = "Use the STAR method: Describe the Situation, Task, Action you took, and Results achieved."
	NoteMetrics       = "Great use of quantifiable metrics to demonstrate impact."
	NoteNoMetrics     = "Add specific numbers or metrics to make your achievements more tangible."
	NoteSpecific      = "Specific examples make your response more credible."
	NoteNegative      = "Frame challenges in a more positive light, focusing on what you learned and achieved."
	NoteFirstPerson   = "Good use of first-person to demonstrate ownership."
	NoteNoFirstPerson = "Use more first-person language (I, my) to show personal ownership of accomplishments."
	NoteActionVerbs   = "Strong action verbs demonstrate proactive approach."
	NoteNoActionVerbs = "Use more action verbs to show your direct contributions."
)

// responseSignals is the normalized input shared by every detector.
type responseSignals struct {
	text       string
	wordCount  int
	behavioral bool
}

// adjustment is the outcome of one detector.
type adjustment struct {
	delta       int
	strength    string
	improvement string
}

// responseDetector inspects a response and returns its score adjustment.
type responseDetector func(sig responseSignals) adjustment

// responseDetectors run in this order; their notes keep the same order.
var responseDetectors = []responseDetector{
	detectLength,
	detectSTAR,
	detectMetrics,
	detectSpecifics,
	detectNegativeTone,
	detectFirstPerson,
	detectActionVerbs,
}

func detectLength(sig responseSignals) adjustment {
	switch {
	case sig.wordCount < briefResponseWords:
		return adjustment{delta: -15, improvement: NoteTooBrief}
	case sig.wordCount > verboseResponseWords:
		return adjustment{delta: -5, improvement: NoteTooLong}
	default:
		return adjustment{delta: 10, strength: NoteGoodLength}
	}
}

func detectSTAR(sig responseSignals) adjustment {
	if !sig.behavioral {
		return adjustment{}
	}
	cues := countSTARCues(sig.text)
	adj := adjustment{delta: 5 * cues}
	if cues >= starCueThreshold {
		adj.strength = NoteSTARStrong
	} else {
		adj.improvement = NoteSTARMissing
	}
	return adj
}

func detectMetrics(sig responseSignals) adjustment {
	if metricPattern.MatchString(sig.text) {
		return adjustment{delta: 10, strength: NoteMetrics}
	}
	return adjustment{improvement: NoteNoMetrics}
}

func detectSpecifics(sig responseSignals) adjustment {
	if specificPattern.MatchString(sig.text) {
		return adjustment{delta: 5, strength: NoteSpecific}
	}
	return adjustment{}
}

func detectNegativeTone(sig responseSignals) adjustment {
	if countMatches(negativePattern, sig.text) > negativeWordLimit {
		return adjustment{delta: -10, improvement: NoteNegative}
	}
	return adjustment{}
}

func detectFirstPerson(sig responseSignals) adjustment {
	if countMatches(firstPersonPattern, sig.text) < minFirstPersonCount {
		return adjustment{delta: -5, improvement: NoteNoFirstPerson}
	}
	return adjustment{strength: NoteFirstPerson}
}

func detectActionVerbs(sig responseSignals) adjustment {
	if countMatches(actionVerbPattern, sig.text) >= minActionVerbCount {
		return adjustment{delta: 5, strength: NoteActionVerbs}
	}
	return adjustment{improvement: NoteNoActionVerbs}
}

func countSTARCues(text string) int {
	n := 0
	for _, cue := range starCues {
		if cue.MatchString(text) {
			n++
		}
	}
	return n
}

func countMatches(re *regexp.Regexp, text string) int {
	return len(re.FindAllStringIndex(text, -1))
}

// feedbackBands select the overall feedback by minimum score, highest first.
var feedbackBands = []struct {
	minScore int
	message  string
}{
	{85, "Excellent response! You provided a well-structured answer with specific examples and measurable results."},
	{70, "Good response with room for improvement. You covered the main points but could add more specific details."},
	{55, "Adequate response, but needs more structure and specific examples to be compelling."},
	{0, "Your response needs significant improvement. Focus on providing specific examples and using the STAR method."},
}

// IsBehavioral reports whether a category label names behavioral questions.
func IsBehavioral(category string) bool {
	return strings.EqualFold(strings.TrimSpace(category), string(types.CategoryBehavioral))
}

// AnalyzeResponse scores an interview answer from a base of 60 by running every
// detector in order, then clamps the total to [40,100].
func (s *Scorer) AnalyzeResponse(req *types.ResponseAnalysisRequest) (*types.ResponseAnalysis, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sig := responseSignals{
		text:       req.Response,
		wordCount:  parsing.WordCount(req.Response),
		behavioral: IsBehavioral(req.Category),
	}

	score := baseResponseScore
	strengths := []string{}
	improvements := []string{}
	for _, detect := range responseDetectors {
		adj := detect(sig)
		score += adj.delta
		if adj.strength != "" {
			strengths = append(strengths, adj.strength)
		}
		if adj.improvement != "" {
			improvements = append(improvements, adj.improvement)
		}
	}
	score = parsing.Clamp(score, minResponseScore, maxResponseScore)

	hasMetrics := metricPattern.MatchString(sig.text)
	return &types.ResponseAnalysis{
		Score:        score,
		Feedback:     overallFeedback(score, improvements),
		Strengths:    truncate(strengths, maxFeedbackItems),
		Improvements: truncate(improvements, maxFeedbackItems),
		Details: &types.ResponseDetails{
			WordCount:              sig.wordCount,
			HasQuantifiableMetrics: hasMetrics,
			UsesSTARMethod:         sig.behavioral,
		},
	}, nil
}

func overallFeedback(score int, improvements []string) string {
	var feedback string
	for _, band := range feedbackBands {
		if score >= band.minScore {
			feedback = band.message
			break
		}
	}
	if len(improvements) > 0 {
		feedback += " " + improvements[0]
	}
	return feedback
}
