package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jonathan/career-coach/internal/config"
	"github.com/jonathan/career-coach/internal/fetch"
	"github.com/jonathan/career-coach/internal/ingestion"
	"github.com/jonathan/career-coach/internal/logging"
	"github.com/jonathan/career-coach/internal/observability"
	"github.com/jonathan/career-coach/internal/oracle"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rootOptions holds the global flags shared by every command.
type rootOptions struct {
	configPath string
	strategy   string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "career_coach",
		Short:         "Career Coach HTTP API server and CLI",
		Long:          "Career Coach scores resumes against job descriptions, generates interview questions and grades practice answers, over REST or from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&opts.strategy, "strategy", "", "Scoring strategy: heuristic or remote (overrides config)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print human-readable summaries to stderr")

	cmd.AddCommand(
		newServeCmd(opts),
		newAnalyzeResumeCmd(opts),
		newAnalyzeResponseCmd(opts),
		newGenerateQuestionsCmd(opts),
		newOptimizeResumeCmd(opts),
		newIssueTokenCmd(opts),
	)
	return cmd
}

// loadConfig loads configuration and applies the --strategy override.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.strategy != "" {
		cfg.Oracle.Strategy = o.strategy
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// setup loads configuration and builds the logger and the instrumented oracle.
// The returned cleanup releases the oracle's client.
func (o *rootOptions) setup(ctx context.Context) (*config.Config, *zap.Logger, oracle.Oracle, func(), error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, nil, nil, err
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format)

	scorer, err := oracle.New(ctx, oracle.Options{
		Strategy: oracle.Strategy(cfg.Oracle.Strategy),
		LLM:      cfg.LLMClientConfig(),
		APIKey:   cfg.LLM.APIKey,
		Logger:   logger,
	})
	if err != nil {
		_ = logger.Sync()
		return nil, nil, nil, nil, fmt.Errorf("failed to create oracle: %w", err)
	}

	cleanup := func() {
		if closer, ok := scorer.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				logger.Warn("failed to close oracle", zap.Error(err))
			}
		}
		_ = logger.Sync()
	}
	return cfg, logger, oracle.Instrument(scorer), cleanup, nil
}

// printer returns the stderr summary printer, or nil unless --verbose is set.
func (o *rootOptions) printer(cmd *cobra.Command) *observability.Printer {
	if !o.verbose {
		return nil
	}
	return observability.NewPrinter(cmd.ErrOrStderr())
}

// readResumeFile extracts the text of a resume file and prints its summary when verbose.
func readResumeFile(path string, p *observability.Printer) (string, error) {
	text, metadata, err := ingestion.ReadFile(path)
	if err != nil {
		return "", err
	}
	if p != nil {
		p.PrintIngestion("resume", metadata)
	}
	return text, nil
}

// jobSource is where a command reads its optional job description from.
type jobSource struct {
	file     string
	url      string
	renderJS bool
}

func (j *jobSource) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&j.file, "job", "j", "", "Path to a job description file")
	cmd.Flags().StringVar(&j.url, "job-url", "", "URL of a job posting to fetch the description from")
	cmd.Flags().BoolVar(&j.renderJS, "render-js", false, "Render short --job-url pages in headless Chrome")
	cmd.MarkFlagsMutuallyExclusive("job", "job-url")
}

// read returns the job description text, or "" when neither flag is set.
func (j *jobSource) read(ctx context.Context) (string, error) {
	switch {
	case j.url != "":
		opts := fetch.DefaultOptions()
		if j.renderJS {
			opts.Renderer = &fetch.ChromeRenderer{}
		}
		posting, err := fetch.NewClient(opts).JobPosting(ctx, j.url)
		if err != nil {
			return "", err
		}
		return posting.Text, nil
	case j.file != "":
		text, _, err := ingestion.ReadFile(j.file)
		if err != nil {
			return "", err
		}
		return text, nil
	default:
		return "", nil
	}
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
