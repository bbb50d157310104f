package main

import (
	"github.com/spf13/cobra"

	"nightwatch/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "nightwatch",
	Short: "nightwatch - token registry impersonation watcher",
	Long: `nightwatch polls a hosted token-metadata registry for recently added or
modified mapping files, scores each entry's text for NIGHT brand resemblance,
and prints a report. It is meant to run on a schedule (cron or CI); the run
itself is stateless and window-based.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("nightwatch version {{.Version}}\n")
}
