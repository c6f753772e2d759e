package main

import (
	"fmt"

	"github.com/jonathan/career-coach/internal/types"
	"github.com/spf13/cobra"
)

func newOptimizeResumeCmd(opts *rootOptions) *cobra.Command {
	var resumeFile, focus string
	var job jobSource

	cmd := &cobra.Command{
		Use:   "optimize-resume",
		Short: "Suggest resume improvements",
		Long:  "List concrete improvements for a resume file, optionally targeting a job description.",
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

			optimization, err := scorer.OptimizeResume(ctx, &types.OptimizeRequest{
				ResumeText:        resumeText,
				JobDescription:    jobDescription,
				TargetImprovement: focus,
			})
			if err != nil {
				return fmt.Errorf("failed to optimize resume: %w", err)
			}

			if p != nil {
				p.PrintOptimization(optimization)
			}
			return writeJSON(cmd.OutOrStdout(), optimization)
		},
	}

	cmd.Flags().StringVarP(&resumeFile, "resume", "r", "", "Path to the resume file (.txt, .md, .html, .pdf, .docx)")
	job.addFlags(cmd)
	cmd.Flags().StringVar(&focus, "focus", "", "Improvement to focus on, e.g. \"leadership\"")
	_ = cmd.MarkFlagRequired("resume")
	return cmd
}
