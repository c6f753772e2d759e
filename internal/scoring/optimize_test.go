package scoring

import (
	"errors"
	"strings"
	"testing"

	"github.com/jonathan/career-coach/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const completeResume = `Summary: Backend engineer.
Experience: Led the payments team and increased throughput 30%.
Education: BSc Computer Science, State University.
Skills: Go, Postgres, Kubernetes.`

func TestOptimizeResume_BareResume(t *testing.T) {
	result, err := OptimizeResume(&types.OptimizeRequest{ResumeText: "Did stuff at a company."})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Add a professional summary at the top highlighting your key achievements and career goals",
		"Include a detailed work experience section with bullet points describing your accomplishments",
		"Add your educational background including degrees, institutions, and graduation dates",
		"Create a skills section listing your technical and soft skills relevant to the position",
		noteWeakVerbs,
		noteQuantify,
		noteExpand,
	}, result.Improvements)
	assert.Empty(t, result.AddedKeywords)
	assert.Equal(t, &types.SectionPresence{}, result.DetectedSections)
	assert.Nil(t, result.OptimizedSections)
}

func TestOptimizeResume_CompleteResume(t *testing.T) {
	result, err := OptimizeResume(&types.OptimizeRequest{ResumeText: completeResume})
	require.NoError(t, err)

	assert.Equal(t, []string{noteExpand}, result.Improvements)
	assert.Equal(t, &types.SectionPresence{Summary: true, Experience: true, Education: true, Skills: true}, result.DetectedSections)
}

func TestOptimizeResume_JobDescriptionKeywords(t *testing.T) {
	result, err := OptimizeResume(&types.OptimizeRequest{
		ResumeText:     completeResume,
		JobDescription: "Terraform and Kubernetes. Terraform modules, Datadog dashboards.",
	})
	require.NoError(t, err)

	// keywords: terraform, kubernetes, modules, datadog, dashboards
	assert.Equal(t, []string{"terraform", "modules", "datadog", "dashboards"}, result.AddedKeywords)
	assert.Contains(t, result.Improvements, noteKeywordsPrefix+"terraform, modules, datadog, dashboards")
}

func TestOptimizeResume_KeywordCaps(t *testing.T) {
	jd := "alpha bravo charlie delta echoes foxtrot golfer hotel india juliet"
	result, err := OptimizeResume(&types.OptimizeRequest{ResumeText: "Did stuff.", JobDescription: jd})
	require.NoError(t, err)

	assert.Len(t, result.AddedKeywords, 8)
	assert.Contains(t, result.Improvements, noteKeywordsPrefix+"alpha, bravo, charlie, delta, echoes")
	assert.LessOrEqual(t, len(result.Improvements), 8)
}

func TestOptimizeResume_LongResume(t *testing.T) {
	long := completeResume + "\n" + strings.Repeat("Shipped features for customers. ", 100)
	result, err := OptimizeResume(&types.OptimizeRequest{ResumeText: long})
	require.NoError(t, err)

	assert.Equal(t, []string{noteCondense}, result.Improvements)
}

func TestOptimizeResume_ValidationError(t *testing.T) {
	_, err := OptimizeResume(&types.OptimizeRequest{JobDescription: "Go"})
	var ve *types.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "Resume text is required", ve.Message)
}
