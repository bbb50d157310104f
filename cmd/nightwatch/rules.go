package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"nightwatch/internal/scoring"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the effective scoring rules",
	Long: `Print the scoring rules a check would apply: brand patterns, suspicious
keywords, weights and level bands, after any RULES.toml override.

Examples:
  nightwatch rules
  nightwatch rules --rules RULES.toml --format=json`,
	RunE: runRules,
}

// Rules flags
var (
	rulesPath   string
	rulesFormat string
)

func init() {
	rootCmd.AddCommand(rulesCmd)

	rulesCmd.Flags().StringVar(&rulesPath, "rules", "", "Path to a RULES.toml scoring override")
	rulesCmd.Flags().StringVar(&rulesFormat, "format", "human", "Output format (json, human)")
}

func runRules(cmd *cobra.Command, args []string) error {
	rules := scoring.DefaultRules()
	if rulesPath != "" {
		var err error
		rules, err = scoring.LoadRules(rulesPath)
		if err != nil {
			return err
		}
	}

	if rulesFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			BrandPatterns      []string        `json:"brandPatterns"`
			SuspiciousKeywords []string        `json:"suspiciousKeywords"`
			Weights            scoring.Weights `json:"weights"`
			Bands              scoring.Bands   `json:"bands"`
		}{rules.BrandPatterns, rules.SuspiciousKeywords, rules.Weights, rules.Bands})
	}

	fmt.Printf("Brand patterns (+%d on any match):\n  %s\n",
		rules.Weights.Brand, strings.Join(rules.BrandPatterns, ", "))
	fmt.Printf("Suspicious keywords (+%d on any match):\n  %s\n",
		rules.Weights.Suspicious, strings.Join(rules.SuspiciousKeywords, ", "))
	fmt.Printf("New-entry bump: +%d\n", rules.Weights.New)
	fmt.Printf("Score cap: %d\n", rules.Weights.Cap)
	fmt.Printf("Levels: high >= %d, medium >= %d, low > 0, else none\n",
		rules.Bands.High, rules.Bands.Medium)
	return nil
}
