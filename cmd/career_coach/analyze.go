package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jonathan/career-coach/internal/types"
	"github.com/spf13/cobra"
)

func newAnalyzeResumeCmd(opts *rootOptions) *cobra.Command {
	var resumeFile string
	var job jobSource

	cmd := &cobra.Command{
		Use:   "analyze-resume",
		Short: "Score a resume for ATS compatibility",
		Long:  "Score a resume file against a job description, or against the default keyword list when no job description is given.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			_, _, scorer, cleanup, err := opts.setup(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p := opts.printer(cmd)
			resumeText, err := readResumeFile(resumeFile, p)
			if err != nil {
				return err
			}
			jobDescription, err := job.read(ctx)
			if err != nil {
				return err
			}

			analysis, err := scorer.AnalyzeResume(ctx, &types.ResumeAnalysisRequest{
				ResumeText:     resumeText,
				JobDescription: jobDescription,
			})
			if err != nil {
				return fmt.Errorf("failed to analyze resume: %w", err)
			}

			if p != nil {
				p.PrintResumeAnalysis(analysis)
			}
			return writeJSON(cmd.OutOrStdout(), analysis)
		},
	}

	cmd.Flags().StringVarP(&resumeFile, "resume", "r", "", "Path to the resume file (.txt, .md, .html, .pdf, .docx)")
	job.addFlags(cmd)
	_ = cmd.MarkFlagRequired("resume")
	return cmd
}

func newAnalyzeResponseCmd(opts *rootOptions) *cobra.Command {
	var question, responseFile, category string

	cmd := &cobra.Command{
		Use:   "analyze-response",
		Short: "Score an interview answer",
		Long:  "Score a practice interview answer read from a file, or from stdin when --response is \"-\".",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			_, _, scorer, cleanup, err := opts.setup(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			response, err := readResponse(cmd, responseFile)
			if err != nil {
				return err
			}

			analysis, err := scorer.AnalyzeResponse(ctx, &types.ResponseAnalysisRequest{
				Question: question,
				Response: response,
				Category: category,
			})
			if err != nil {
				return fmt.Errorf("failed to analyze response: %w", err)
			}

			if p := opts.printer(cmd); p != nil {
				p.PrintResponseAnalysis(analysis)
			}
			return writeJSON(cmd.OutOrStdout(), analysis)
		},
	}

	cmd.Flags().StringVarP(&question, "question", "q", "", "The interview question")
	cmd.Flags().StringVar(&responseFile, "response", "", "Path to the answer text, or - for stdin")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Question category, e.g. Behavioral")
	_ = cmd.MarkFlagRequired("question")
	_ = cmd.MarkFlagRequired("response")
	return cmd
}

// readResponse reads an answer from path, or from the command's stdin for "-".
func readResponse(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read response from stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read response file: %w", err)
	}
	return string(data), nil
}
