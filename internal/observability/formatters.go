// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/career-coach/internal/ingestion"
	"github.com/jonathan/career-coach/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// lineWidth is the usable width inside a box
	lineWidth = boxWidth - 4
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", lineWidth, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		for _, wrapped := range wrap(line, lineWidth) {
			fmt.Fprintf(p.out, "│ %-*s │\n", lineWidth, wrapped)
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// wrap splits line at spaces so each piece fits in width runes. Continuation
// lines keep the original indentation plus two spaces.
func wrap(line string, width int) []string {
	if len([]rune(line)) <= width {
		return []string{line}
	}

	trimmed := strings.TrimLeft(line, " ")
	indent := strings.Repeat(" ", len(line)-len(trimmed))
	var lines []string
	current, empty := indent, true
	for _, word := range strings.Fields(trimmed) {
		if !empty && len([]rune(current))+1+len([]rune(word)) > width {
			lines = append(lines, current)
			current, empty = indent+"  ", true
		}
		if !empty {
			current += " "
		}
		current += word
		empty = false
	}
	lines = append(lines, current)

	for i, l := range lines {
		lines[i] = truncate(l, width)
	}
	return lines
}

// writeList writes a titled bullet list showing at most limit items.
func writeList(sb *strings.Builder, title string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(title + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
	sb.WriteString("\n")
}

// scoreBar renders a 0-100 score as a 20 cell bar.
func scoreBar(score int) string {
	filled := max(0, min(20, score/5))
	return strings.Repeat("█", filled) + strings.Repeat("░", 20-filled)
}

// PrintIngestion outputs the source file summary.
func (p *Printer) PrintIngestion(label string, metadata *ingestion.Metadata) {
	if metadata == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:     %s\n", metadata.Path))
	sb.WriteString(fmt.Sprintf("Format:   %s\n", metadata.Format))
	sb.WriteString(fmt.Sprintf("Words:    %d\n", metadata.WordCount))
	sb.WriteString(fmt.Sprintf("SHA-256:  %s", metadata.Hash[:min(16, len(metadata.Hash))]))

	p.printBox(strings.ToUpper(label), sb.String())
}

// PrintResumeAnalysis outputs a human-readable summary of an ATS analysis.
func (p *Printer) PrintResumeAnalysis(analysis *types.ResumeAnalysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ATS Score:      %3d  %s\n", analysis.ATSScore, scoreBar(analysis.ATSScore)))
	sb.WriteString(fmt.Sprintf("Keyword Match:  %3d%%\n\n", analysis.KeywordMatch))

	writeList(&sb, "Strengths", analysis.Strengths, maxItemsToShow)
	writeList(&sb, "Weaknesses", analysis.Weaknesses, maxItemsToShow)
	writeList(&sb, "Suggestions", analysis.Suggestions, maxItemsToShow)
	if len(analysis.MatchedKeywords) > 0 {
		sb.WriteString(fmt.Sprintf("Matched:  %s\n", strings.Join(analysis.MatchedKeywords, ", ")))
	}
	if len(analysis.MissingKeywords) > 0 {
		sb.WriteString(fmt.Sprintf("Missing:  %s\n", strings.Join(analysis.MissingKeywords, ", ")))
	}

	p.printBox("RESUME ANALYSIS", strings.TrimRight(sb.String(), "\n"))
}

// PrintResponseAnalysis outputs the score and feedback for an interview answer.
func (p *Printer) PrintResponseAnalysis(analysis *types.ResponseAnalysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:  %3d  %s\n", analysis.Score, scoreBar(analysis.Score)))
	if d := analysis.Details; d != nil {
		sb.WriteString(fmt.Sprintf("Words:  %d   Metrics: %s   STAR: %s\n", d.WordCount, check(d.HasQuantifiableMetrics), check(d.UsesSTARMethod)))
	}
	sb.WriteString("\n")

	writeList(&sb, "Strengths", analysis.Strengths, maxItemsToShow)
	writeList(&sb, "Improvements", analysis.Improvements, maxItemsToShow)
	if analysis.Feedback != "" {
		sb.WriteString(analysis.Feedback)
	}

	p.printBox("INTERVIEW RESPONSE ANALYSIS", strings.TrimRight(sb.String(), "\n"))
}

// PrintQuestionSet outputs generated interview questions grouped in order.
func (p *Printer) PrintQuestionSet(set *types.QuestionSet) {
	if set == nil || len(set.Questions) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Generated %d questions:\n\n", len(set.Questions)))
	for i, q := range set.Questions {
		label := string(q.Category)
		if q.Difficulty != "" {
			label += ", " + q.Difficulty
		}
		sb.WriteString(fmt.Sprintf("%2d. [%s]\n", i+1, label))
		sb.WriteString(fmt.Sprintf("    %s\n", q.Text))
	}

	p.printBox("INTERVIEW QUESTIONS", strings.TrimRight(sb.String(), "\n"))
}

// PrintOptimization outputs resume improvement suggestions.
func (p *Printer) PrintOptimization(opt *types.Optimization) {
	if opt == nil {
		return
	}

	var sb strings.Builder
	if s := opt.DetectedSections; s != nil {
		sb.WriteString(fmt.Sprintf("Sections: summary %s experience %s education %s skills %s\n\n",
			check(s.Summary), check(s.Experience), check(s.Education), check(s.Skills)))
	}

	writeList(&sb, "Improvements", opt.Improvements, len(opt.Improvements))
	if len(opt.AddedKeywords) > 0 {
		sb.WriteString(fmt.Sprintf("Add keywords:  %s\n", strings.Join(opt.AddedKeywords, ", ")))
	}
	if len(opt.Improvements) == 0 && len(opt.AddedKeywords) == 0 {
		sb.WriteString("✅ No improvements suggested")
	}

	p.printBox("RESUME OPTIMIZATION", strings.TrimRight(sb.String(), "\n"))
}

func check(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}
