// Package scoring computes the brand-resemblance heuristic for token text.
package scoring

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	apperrors "nightwatch/internal/errors"
)

// RulesFile is the default filename for a scoring rules override
const RulesFile = "RULES.toml"

// Rules declares the patterns, weights and level bands the scorer applies.
// The zero value is unusable; start from DefaultRules or LoadRules.
type Rules struct {
	// BrandPatterns are substrings that mark text as resembling the brand
	BrandPatterns []string `toml:"brand_patterns"`

	// SuspiciousKeywords are marketing terms that raise suspicion
	SuspiciousKeywords []string `toml:"suspicious_keywords"`

	Weights Weights `toml:"weights"`
	Bands   Bands   `toml:"bands"`
}

// Weights are the score contributions of each signal
type Weights struct {
	// Brand is added once on any brand-pattern match
	Brand int `toml:"brand" json:"brand"`

	// Suspicious is added once on any suspicious-keyword match
	Suspicious int `toml:"suspicious" json:"suspicious"`

	// New is added for newly added registry entries
	New int `toml:"new" json:"new"`

	// Cap is the maximum total score
	Cap int `toml:"cap" json:"cap"`
}

// Bands are the inclusive lower bounds of the medium and high levels.
// Anything above zero but below Medium is low; zero is none.
type Bands struct {
	High   int `toml:"high" json:"high"`
	Medium int `toml:"medium" json:"medium"`
}

// DefaultRules returns the built-in NIGHT resemblance rules.
func DefaultRules() Rules {
	return Rules{
		BrandPatterns: []string{"night", "knight", "midnight", "mnight", "cnight"},
		SuspiciousKeywords: []string{
			"airdrop", "airdrops", "reward", "rewards", "bonus",
			"double", "stake", "staking", "yield", "free",
		},
		Weights: Weights{Brand: 40, Suspicious: 20, New: 10, Cap: 100},
		Bands:   Bands{High: 50, Medium: 20},
	}
}

// LoadRules parses a RULES.toml override from the given path. Fields absent
// from the file keep their defaults.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()

	data, err := os.ReadFile(path)
	if err != nil {
		return rules, apperrors.Wrap(apperrors.RulesInvalid, "reading rules file", err)
	}
	if err := toml.Unmarshal(data, &rules); err != nil {
		return rules, apperrors.Wrap(apperrors.RulesInvalid, "parsing rules file", err)
	}
	if err := rules.Validate(); err != nil {
		return rules, err
	}

	return rules, nil
}

// Validate checks the rules are usable.
func (r Rules) Validate() error {
	if len(r.BrandPatterns) == 0 {
		return apperrors.New(apperrors.RulesInvalid, "brand_patterns must not be empty")
	}
	if r.Weights.Cap <= 0 {
		return apperrors.New(apperrors.RulesInvalid, "weights.cap must be positive")
	}
	if r.Weights.Brand < 0 || r.Weights.Suspicious < 0 || r.Weights.New < 0 {
		return apperrors.New(apperrors.RulesInvalid, "weights must not be negative")
	}
	if r.Bands.High < r.Bands.Medium {
		return apperrors.New(apperrors.RulesInvalid,
			fmt.Sprintf("bands.high (%d) must not be below bands.medium (%d)", r.Bands.High, r.Bands.Medium))
	}
	return nil
}
