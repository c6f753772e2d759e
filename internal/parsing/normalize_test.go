package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "windows line endings", input: "line one\r\nline two", expected: "line one\nline two"},
		{name: "trailing spaces", input: "summary   \nskills\t", expected: "summary\nskills"},
		{name: "blank line runs", input: "a\n\n\n\n\nb", expected: "a\n\nb"},
		{name: "surrounding whitespace", input: "\n\n  text  \n\n", expected: "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeText(tt.input))
		})
	}
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 0, WordCount("   \n\t"))
	assert.Equal(t, 4, WordCount("I led  the\nteam"))
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"node", "js", "c", "and", "go_lang"}, Tokenize("Node.js, C++ and go_lang!"))
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("Built services in Kubernetes", "kubernetes"))
	assert.False(t, ContainsFold("Built services", "python"))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 40, Clamp(12, 40, 100))
	assert.Equal(t, 100, Clamp(130, 40, 100))
	assert.Equal(t, 75, Clamp(75, 40, 100))
}

func TestExtractKeywords(t *testing.T) {
	t.Run("frequency order with stable ties", func(t *testing.T) {
		text := "Kubernetes and Golang. Golang services with Kubernetes, golang tooling and Terraform."
		got := ExtractKeywords(text, 0)
		assert.Equal(t, []string{"golang", "kubernetes", "services", "tooling", "terraform"}, got)
	})

	t.Run("short words and stop words excluded", func(t *testing.T) {
		got := ExtractKeywords("the API for our team will have Python", 10)
		assert.Equal(t, []string{"team", "python"}, got)
	})

	t.Run("limit applied", func(t *testing.T) {
		text := "alpha bravo charlie delta echoes foxtrot golfer hotel india juliet kilo lima mike november oscar papa quebec romeo"
		got := ExtractKeywords(text, DefaultKeywordLimit)
		require.Len(t, got, DefaultKeywordLimit)
		assert.Equal(t, "alpha", got[0])
	})

	t.Run("no significant words", func(t *testing.T) {
		assert.Empty(t, ExtractKeywords("a an the of to", 0))
	})
}

func TestStripHTML(t *testing.T) {
	html := `<div><h1>Jane Doe</h1><p>Senior engineer</p><script>var x = 1;</script><ul><li>Go</li><li>SQL</li></ul></div>`

	got, err := StripHTML(html)
	require.NoError(t, err)
	assert.Contains(t, got, "Jane Doe")
	assert.Contains(t, got, "Senior engineer")
	assert.Contains(t, got, "Go\nSQL")
	assert.NotContains(t, got, "var x")
	assert.NotContains(t, got, "<p>")
}
