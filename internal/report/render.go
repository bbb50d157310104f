// Package report formats a run summary for human or machine consumption.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"nightwatch/internal/registry"
)

// Renderer writes the plain-text report consumed by humans and by the
// scheduled workflow's marker/count greps.
type Renderer struct {
	w io.Writer
}

// NewRenderer creates a renderer writing to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Render writes the full report for a run.
func (r *Renderer) Render(s *registry.Summary) {
	if s.Empty() {
		fmt.Fprintf(r.w, "✅ No new or updated token registrations in the last %d hours.\n", s.LookbackHours)
		return
	}

	// The 🚨 marker is what the scheduled workflow matches on.
	fmt.Fprintf(r.w, "🚨 New or updated token registrations detected in the last %d hours\n", s.LookbackHours)
	fmt.Fprintf(r.w, "Total changed: %d\n", s.Total())
	fmt.Fprintf(r.w, "New tokens: %d\n", s.TotalNew())
	fmt.Fprintf(r.w, "Updated tokens: %d\n", s.TotalUpdated())
	fmt.Fprintln(r.w)

	multi := len(s.Results) > 1
	for _, result := range s.Results {
		if multi {
			fmt.Fprintf(r.w, "Registry: %s\n\n", result.Name)
		}

		fmt.Fprintln(r.w, "New token mappings:")
		r.renderSection(result, result.New)

		fmt.Fprintln(r.w, "Updated token mappings:")
		r.renderSection(result, result.Updated)

		fmt.Fprintln(r.w, "You can view all mappings here:")
		fmt.Fprintln(r.w, result.Target.TreePage())
		if multi {
			fmt.Fprintln(r.w)
		}
	}
}

func (r *Renderer) renderSection(result registry.TargetResult, records []registry.EnrichedRecord) {
	if len(records) == 0 {
		fmt.Fprint(r.w, "  None in this window\n\n")
		return
	}

	for _, rec := range records {
		// One hyphen line per token so downstream COUNT logic keeps working.
		fmt.Fprintf(r.w, "- %s (%s)\n", rec.Subject, rec.File)
		fmt.Fprintf(r.w, "  Commit: %s\n", result.Target.CommitPage(rec.Commit))
		fmt.Fprintf(r.w, "  Mapping file: %s\n", result.Target.BlobPage(rec.File))
		if page := result.Target.MetadataPage(rec.Subject); page != "" {
			fmt.Fprintf(r.w, "  Metadata: %s\n", page)
		}
		if rec.Name != "" || rec.Ticker != "" {
			fmt.Fprintf(r.w, "  Name/Ticker: %s / %s\n", rec.Name, rec.Ticker)
		}
		if rec.Score > 0 {
			fmt.Fprintf(r.w, "  NIGHT resemblance: %d/100 (%s)\n", rec.Score, rec.Level)
		}
		fmt.Fprintln(r.w)
	}
}

// RenderJSON writes the run summary as indented JSON.
func RenderJSON(w io.Writer, s *registry.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
