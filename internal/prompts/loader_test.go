package prompts

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tmpl, err := Load("resume")
	require.NoError(t, err)

	assert.Equal(t, "resume", tmpl.Name)
	assert.Contains(t, tmpl.System, "ATS (Applicant Tracking System) analyzer")
	assert.Contains(t, tmpl.Sections, "JobDescription")
}

func TestLoad_Unknown(t *testing.T) {
	_, err := Load("nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `prompt "nonexistent" not found`)

	assert.Panics(t, func() { MustLoad("nonexistent") })
}

func TestNames(t *testing.T) {
	names, err := Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"interview", "optimize", "questions", "resume"}, names)
}

func TestRender_OptionalSections(t *testing.T) {
	tmpl := MustLoad("optimize")

	tests := []struct {
		name        string
		vars        Vars
		contains    []string
		notContains []string
	}{
		{
			name:        "no optional values",
			vars:        Vars{"ResumeText": "Go developer"},
			contains:    []string{"Resume Content:\nGo developer"},
			notContains: []string{"Target Job Description", "Focus Area", "{{."},
		},
		{
			name:        "blank job description",
			vars:        Vars{"ResumeText": "Go developer", "JobDescription": "   "},
			notContains: []string{"Target Job Description"},
		},
		{
			name: "both sections",
			vars: Vars{"ResumeText": "Go developer", "JobDescription": "SRE role", "TargetImprovement": "leadership"},
			contains: []string{
				"Target Job Description:\nSRE role",
				"Focus Area: leadership",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tmpl.Render(tt.vars)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, unwanted := range tt.notContains {
				assert.NotContains(t, got, unwanted)
			}
		})
	}
}

func TestRender_EveryTemplateResolvesPlaceholders(t *testing.T) {
	vars := Vars{
		"ResumeText":        "resume",
		"JobDescription":    "job",
		"TargetImprovement": "focus",
		"Question":          "question",
		"Category":          "Behavioral",
		"Response":          "answer",
		"Role":              "Software Engineer",
		"Industry":          "tech",
		"ExperienceLevel":   "entry",
	}

	names, err := Names()
	require.NoError(t, err)
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			tmpl := MustLoad(name)
			assert.Contains(t, tmpl.System, "JSON")
			assert.NotContains(t, tmpl.Render(vars), "{{.")
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		text string
		vars Vars
		want string
	}{
		{"substitutes", "Role: {{.Role}}\nIndustry: {{.Industry}}", Vars{"Role": "Backend Engineer", "Industry": "fintech"}, "Role: Backend Engineer\nIndustry: fintech"},
		{"no placeholders", "No placeholders here", Vars{"Key": "Value"}, "No placeholders here"},
		{"unknown placeholder kept", "Hello {{.Name}}", Vars{}, "Hello {{.Name}}"},
		{"values are not re-expanded", "{{.A}}", Vars{"A": "{{.B}}", "B": "x"}, "{{.B}}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.text, tt.vars))
		})
	}
}

func TestParseAll_Invalid(t *testing.T) {
	_, err := parseAll(fstest.MapFS{"broken.json": {Data: []byte("{")}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse prompt file broken.json")

	_, err = parseAll(fstest.MapFS{"partial.json": {Data: []byte(`{"system": "only system"}`)}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs both system and user prompts")
}
