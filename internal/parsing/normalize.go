// Package parsing provides text normalization and keyword extraction shared by the scorers.
package parsing

import (
	"regexp"
	"strings"
)

var (
	nonWordPattern   = regexp.MustCompile(`[^\w\s]`)
	blankLinePattern = regexp.MustCompile(`\n{3,}`)
)

// NormalizeText normalizes line endings, trims trailing spaces on every line
// and collapses runs of blank lines.
func NormalizeText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	result := strings.Join(lines, "\n")
	result = blankLinePattern.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// WordCount returns the number of whitespace-separated tokens in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// Tokenize lowercases text, replaces punctuation with spaces and splits on whitespace.
func Tokenize(text string) []string {
	cleaned := nonWordPattern.ReplaceAllString(strings.ToLower(text), " ")
	return strings.Fields(cleaned)
}

// ContainsFold reports whether keyword occurs in text, ignoring case.
func ContainsFold(text, keyword string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(keyword))
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
