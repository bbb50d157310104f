package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"nightwatch/internal/config"
	"nightwatch/internal/github"
	"nightwatch/internal/logging"
	"nightwatch/internal/notify"
	"nightwatch/internal/registry"
	"nightwatch/internal/report"
	"nightwatch/internal/scoring"
	"nightwatch/internal/watchlist"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run one poll/classify/score cycle and print the report",
	Long: `Poll the watched registries for commits within the lookback window,
classify changed mapping files as new or updated, fetch each file's metadata,
score it for brand resemblance, and print the report to stdout.

A failure of the commit listing or commit detail calls aborts the run with a
non-zero exit; metadata fetch failures only blank out that entry's fields.

Examples:
  nightwatch check
  nightwatch check --lookback 2
  nightwatch check --format=json
  nightwatch check --watchlist watchlist.yaml --rules RULES.toml`,
	RunE: runCheck,
}

// Check flags
var (
	checkLookback  int
	checkFormat    string
	checkWatchlist string
	checkRules     string
)

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().IntVar(&checkLookback, "lookback", 0, "Lookback window in hours (overrides LOOKBACK_HOURS and config)")
	checkCmd.Flags().StringVar(&checkFormat, "format", "human", "Output format (json, human)")
	checkCmd.Flags().StringVar(&checkWatchlist, "watchlist", "", "Path to a watchlist.yaml of registries to check")
	checkCmd.Flags().StringVar(&checkRules, "rules", "", "Path to a RULES.toml scoring override")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Precedence: CLI flag > env var > config file > default. Env is
	// already folded into cfg by LoadConfig.
	if cmd.Flags().Changed("lookback") {
		cfg.LookbackHours = checkLookback
	}
	if checkRules != "" {
		cfg.RulesPath = checkRules
	}
	if checkWatchlist != "" {
		cfg.WatchlistPath = checkWatchlist
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.NewLogger(logging.Config{
		Format: logging.Format(cfg.Logging.Format),
		Level:  logging.ParseLevel(cfg.Logging.Level),
	})

	rules := scoring.DefaultRules()
	if cfg.RulesPath != "" {
		rules, err = scoring.LoadRules(cfg.RulesPath)
		if err != nil {
			return err
		}
	}

	targets := watchlist.Default()
	if cfg.WatchlistPath != "" {
		targets, err = watchlist.Load(cfg.WatchlistPath)
		if err != nil {
			return err
		}
	}

	client := github.NewClient(cfg.APIBaseURL, cfg.Token, cfg.PageSize)
	fetcher := registry.NewFetcher(time.Duration(cfg.FetchTimeoutSeconds) * time.Second)
	runner := registry.NewRunner(client, fetcher, rules, logger)

	summary, err := runner.Run(cmd.Context(), targets, cfg.LookbackHours)
	if err != nil {
		return err
	}

	if checkFormat == "json" {
		if err := report.RenderJSON(os.Stdout, summary); err != nil {
			return err
		}
	} else {
		report.NewRenderer(os.Stdout).Render(summary)
	}

	notifier := notify.NewNotifier(cfg.Webhook.URL, cfg.Webhook.Secret,
		time.Duration(cfg.Webhook.TimeoutSeconds)*time.Second, logger)
	notifier.Send(cmd.Context(), summary)

	return nil
}
