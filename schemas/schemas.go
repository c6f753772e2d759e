// Package schemas embeds the JSON Schemas that remote oracle replies must satisfy.
package schemas

import (
	"embed"
	"fmt"
)

//go:embed *.schema.json
var files embed.FS

// Schema file names.
const (
	ResumeAnalysis   = "resume_analysis.schema.json"
	ResponseAnalysis = "response_analysis.schema.json"
	QuestionSet      = "question_set.schema.json"
	Optimization     = "optimization.schema.json"
)

// All lists every embedded schema.
var All = []string{ResumeAnalysis, ResponseAnalysis, QuestionSet, Optimization}

// Read returns the content of an embedded schema.
func Read(name string) (string, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("schema %s not embedded: %w", name, err)
	}
	return string(data), nil
}
