/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main implements the aeobench CLI: it runs benchmark cases
// through a participant and the scorer, and validates the rubric's
// calibration against fixed synthetic documents.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chainguard.dev/aeobench/fixture"
	"chainguard.dev/aeobench/judge"
	"chainguard.dev/aeobench/participant"
	"chainguard.dev/aeobench/report"
	"chainguard.dev/aeobench/run"
	"chainguard.dev/aeobench/scorer"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/chainguard-dev/clog"
	"github.com/joho/godotenv"
	"github.com/openai/openai-go"
	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"
	"google.golang.org/genai"
)

type config struct {
	FixturesDir string `env:"AEOBENCH_FIXTURES, default=fixtures"`

	// Judge selects the tier 3/4 grader: anthropic, openai, gemini,
	// or heuristic.
	Judge      string `env:"AEOBENCH_JUDGE, default=anthropic"`
	JudgeModel string `env:"AEOBENCH_JUDGE_MODEL"`

	// Driver selects the participant: claude or heuristic.
	Driver      string `env:"AEOBENCH_DRIVER, default=claude"`
	DriverModel string `env:"AEOBENCH_DRIVER_MODEL"`

	MaxSteps     int           `env:"AEOBENCH_MAX_STEPS, default=15"`
	Concurrency  int           `env:"AEOBENCH_CONCURRENCY, default=2"`
	CaseTimeout  time.Duration `env:"AEOBENCH_CASE_TIMEOUT, default=5m"`
	JudgeTimeout time.Duration `env:"AEOBENCH_JUDGE_TIMEOUT, default=60s"`
}

var (
	verbose    bool
	suitePath  string
	jsonOutput string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "aeobench",
		Short: "Benchmark LLM-generated README and metadata against ground-truth fixtures",
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := clog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			cmd.SetContext(clog.WithLogger(cmd.Context(), logger))
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	runCmd := &cobra.Command{
		Use:   "run [case...]",
		Short: "Run the named test cases, or every discovered case",
		RunE:  runBenchmark,
	}
	runCmd.Flags().StringVar(&suitePath, "suite", "", "YAML suite file with cases and run settings")
	runCmd.Flags().StringVar(&jsonOutput, "json", "", "write the JSON run report to this path ('-' for stdout)")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the rubric's calibration against fixed synthetic documents",
		RunE:  validateRubric,
	}

	root.AddCommand(runCmd, validateCmd)
	return root
}

func loadConfig(ctx context.Context) (*config, error) {
	// A .env file is a developer convenience; its absence is fine.
	_ = godotenv.Load()

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("processing config: %w", err)
	}
	return &cfg, nil
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	store, err := fixture.NewStore(cfg.FixturesDir)
	if err != nil {
		return err
	}
	j, err := newJudge(ctx, cfg.Judge, cfg.JudgeModel)
	if err != nil {
		return err
	}
	driver, err := newDriver(cfg.Driver, cfg.DriverModel)
	if err != nil {
		return err
	}

	ids := args
	opts := []run.Option{
		run.WithMaxSteps(cfg.MaxSteps),
		run.WithConcurrency(cfg.Concurrency),
		run.WithCaseTimeout(cfg.CaseTimeout),
	}
	if suitePath != "" {
		suite, err := run.LoadSuite(suitePath)
		if err != nil {
			return err
		}
		suiteOpts, err := suite.Options()
		if err != nil {
			return err
		}
		opts = append(opts, suiteOpts...)
		if len(ids) == 0 {
			ids = suite.Cases
		}
	}

	s := scorer.New(j, scorer.WithJudgeTimeout(cfg.JudgeTimeout))
	rep, err := run.New(store, driver, s, opts...).Run(ctx, ids)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), report.ByCase(rep))
	return writeJSON(cmd, rep)
}

func validateRubric(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	// Calibration is a self-test of the rubric; it defaults to the
	// deterministic judge so it runs without credentials. Set
	// AEOBENCH_JUDGE to calibrate a model-backed judge instead.
	backend := cfg.Judge
	if os.Getenv("AEOBENCH_JUDGE") == "" {
		backend = "heuristic"
	}
	j, err := newJudge(ctx, backend, cfg.JudgeModel)
	if err != nil {
		return err
	}

	results := scorer.New(j, scorer.WithJudgeTimeout(cfg.JudgeTimeout)).ValidateCalibration(ctx)
	out, allPass := report.Calibration(results)
	fmt.Fprintln(cmd.OutOrStdout(), out)
	if !allPass {
		return fmt.Errorf("rubric calibration failed")
	}
	return nil
}

func writeJSON(cmd *cobra.Command, rep *run.Report) error {
	if jsonOutput == "" {
		return nil
	}
	b, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if jsonOutput == "-" {
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return nil
	}
	if err := os.WriteFile(jsonOutput, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func newJudge(ctx context.Context, backend, model string) (judge.Interface, error) {
	switch backend {
	case "anthropic":
		return judge.NewAnthropic(anthropic.NewClient(), model), nil
	case "openai":
		return judge.NewOpenAI(openai.NewClient(), model), nil
	case "gemini":
		client, err := genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
		if err != nil {
			return nil, fmt.Errorf("creating Gemini client: %w", err)
		}
		return judge.NewGemini(client, model), nil
	case "heuristic":
		return judge.Heuristic(), nil
	default:
		return nil, fmt.Errorf("unknown judge backend %q", backend)
	}
}

func newDriver(kind, model string) (participant.Driver, error) {
	switch kind {
	case "claude":
		return participant.NewClaudeDriver(anthropic.NewClient(), model), nil
	case "heuristic":
		return participant.NewHeuristicDriver(), nil
	default:
		return nil, fmt.Errorf("unknown participant driver %q", kind)
	}
}
