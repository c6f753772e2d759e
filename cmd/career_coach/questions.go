package main

import (
	"fmt"

	"github.com/jonathan/career-coach/internal/types"
	"github.com/spf13/cobra"
)

func newGenerateQuestionsCmd(opts *rootOptions) *cobra.Command {
	var role, industry, level string
	var job jobSource

	cmd := &cobra.Command{
		Use:   "generate-questions",
		Short: "Generate practice interview questions",
		Long:  "Generate an ordered set of practice interview questions for a role, industry and experience level.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			_, _, scorer, cleanup, err := opts.setup(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			jobDescription, err := job.read(ctx)
			if err != nil {
				return err
			}

			set, err := scorer.GenerateQuestions(ctx, &types.QuestionRequest{
				Role:            role,
				Industry:        industry,
				ExperienceLevel: level,
				JobDescription:  jobDescription,
			})
			if err != nil {
				return fmt.Errorf("failed to generate questions: %w", err)
			}

			if p := opts.printer(cmd); p != nil {
				p.PrintQuestionSet(set)
			}
			return writeJSON(cmd.OutOrStdout(), set)
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "Target role, e.g. \"Software Engineer\"")
	cmd.Flags().StringVar(&industry, "industry", "", "Target industry, e.g. tech")
	cmd.Flags().StringVar(&level, "level", "", "Experience level: entry, mid, senior or executive")
	job.addFlags(cmd)
	_ = cmd.MarkFlagRequired("role")
	_ = cmd.MarkFlagRequired("industry")
	_ = cmd.MarkFlagRequired("level")
	return cmd
}
