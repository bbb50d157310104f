package scoring

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "nightwatch/internal/errors"
)

func TestDefaultRules(t *testing.T) {
	rules := DefaultRules()

	if err := rules.Validate(); err != nil {
		t.Fatalf("default rules should validate: %v", err)
	}
	if len(rules.BrandPatterns) != 5 {
		t.Errorf("got %d brand patterns, want 5", len(rules.BrandPatterns))
	}
	if len(rules.SuspiciousKeywords) != 10 {
		t.Errorf("got %d suspicious keywords, want 10", len(rules.SuspiciousKeywords))
	}
	if rules.Weights != (Weights{Brand: 40, Suspicious: 20, New: 10, Cap: 100}) {
		t.Errorf("unexpected default weights: %+v", rules.Weights)
	}
	if rules.Bands != (Bands{High: 50, Medium: 20}) {
		t.Errorf("unexpected default bands: %+v", rules.Bands)
	}
}

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), RulesFile)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRules(t *testing.T) {
	path := writeRules(t, `
brand_patterns = ["night", "nite"]

[weights]
brand = 50
`)

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules failed: %v", err)
	}

	if len(rules.BrandPatterns) != 2 || rules.BrandPatterns[1] != "nite" {
		t.Errorf("BrandPatterns = %v", rules.BrandPatterns)
	}
	if rules.Weights.Brand != 50 {
		t.Errorf("Weights.Brand = %d, want 50", rules.Weights.Brand)
	}
	// Fields absent from the file keep defaults
	if rules.Weights.Cap != 100 {
		t.Errorf("Weights.Cap = %d, want default 100", rules.Weights.Cap)
	}
	if len(rules.SuspiciousKeywords) != 10 {
		t.Errorf("SuspiciousKeywords should keep defaults, got %v", rules.SuspiciousKeywords)
	}
}

func TestLoadRules_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not toml", "brand_patterns = ["},
		{"empty brand patterns", "brand_patterns = []"},
		{"negative weight", "[weights]\nbrand = -1"},
		{"zero cap", "[weights]\ncap = 0"},
		{"inverted bands", "[bands]\nhigh = 10\nmedium = 20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeRules(t, tt.content)
			_, err := LoadRules(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if apperrors.CodeOf(err) != apperrors.RulesInvalid {
				t.Errorf("error code = %q, want RULES_INVALID", apperrors.CodeOf(err))
			}
		})
	}
}

func TestLoadRules_MissingFile(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
