package scoring

import "strings"

// Level is the discrete resemblance classification of a score
type Level string

const (
	// LevelNone means no signal at all
	LevelNone Level = "none"
	// LevelLow means a weak signal, typically just novelty
	LevelLow Level = "low"
	// LevelMedium means suspicious language without a brand match
	LevelMedium Level = "medium"
	// LevelHigh means a likely impersonation attempt
	LevelHigh Level = "high"
)

// Score computes the resemblance score for a text blob. It is pure and
// deterministic: lower-cased substring matching, one fixed bump per signal
// class regardless of how many patterns match, capped at Weights.Cap.
func (r Rules) Score(text string, isNew bool) int {
	t := strings.ToLower(text)

	score := 0
	if containsAny(t, r.BrandPatterns) {
		score += r.Weights.Brand
	}
	if containsAny(t, r.SuspiciousKeywords) {
		score += r.Weights.Suspicious
	}
	if isNew {
		score += r.Weights.New
	}

	if score > r.Weights.Cap {
		score = r.Weights.Cap
	}
	return score
}

// LevelFor classifies a score against the rules' bands. Bounds are
// inclusive: a score exactly at a band's lower bound lands in that band.
func (r Rules) LevelFor(score int) Level {
	switch {
	case score >= r.Bands.High:
		return LevelHigh
	case score >= r.Bands.Medium:
		return LevelMedium
	case score > 0:
		return LevelLow
	default:
		return LevelNone
	}
}

func containsAny(text string, patterns []string) bool {
	for _, p := range patterns {
		if p != "" && strings.Contains(text, strings.ToLower(p)) {
			return true
		}
	}
	return false
}
