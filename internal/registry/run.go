package registry

import (
	"context"
	"time"

	"github.com/google/uuid"

	"nightwatch/internal/github"
	"nightwatch/internal/logging"
	"nightwatch/internal/scoring"
	"nightwatch/internal/watchlist"
)

// CommitSource lists the commits touching a path and their file changes.
// Satisfied by *github.Client.
type CommitSource interface {
	ListCommits(ctx context.Context, repo, path string, since time.Time) ([]github.CommitSummary, error)
	GetCommit(ctx context.Context, commitURL string) (*github.CommitDetail, error)
}

// TargetResult is the enriched outcome for one watched registry
type TargetResult struct {
	Target  watchlist.Target `json:"-"`
	Name    string           `json:"name"`
	Repo    string           `json:"repo"`
	New     []EnrichedRecord `json:"new"`
	Updated []EnrichedRecord `json:"updated"`
}

// Summary is the full outcome of one run
type Summary struct {
	RunID         string         `json:"runId"`
	GeneratedAt   time.Time      `json:"generatedAt"`
	LookbackHours int            `json:"lookbackHours"`
	Results       []TargetResult `json:"results"`
}

// TotalNew returns the count of new records across all targets.
func (s *Summary) TotalNew() int {
	n := 0
	for _, r := range s.Results {
		n += len(r.New)
	}
	return n
}

// TotalUpdated returns the count of updated records across all targets.
func (s *Summary) TotalUpdated() int {
	n := 0
	for _, r := range s.Results {
		n += len(r.Updated)
	}
	return n
}

// Total returns the count of all records.
func (s *Summary) Total() int {
	return s.TotalNew() + s.TotalUpdated()
}

// Empty reports whether the run found no changes anywhere.
func (s *Summary) Empty() bool {
	return s.Total() == 0
}

// Runner executes one poll/classify/enrich cycle
type Runner struct {
	source  CommitSource
	fetcher MetadataFetcher
	rules   scoring.Rules
	logger  *logging.Logger

	// now is replaceable in tests
	now func() time.Time
}

// NewRunner creates a runner.
func NewRunner(source CommitSource, fetcher MetadataFetcher, rules scoring.Rules, logger *logging.Logger) *Runner {
	return &Runner{
		source:  source,
		fetcher: fetcher,
		rules:   rules,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Run polls every target sequentially and returns the run summary. A
// failure of the commit listing or any commit detail call aborts the run;
// metadata failures are contained per record.
func (r *Runner) Run(ctx context.Context, targets []watchlist.Target, lookbackHours int) (*Summary, error) {
	now := r.now()
	since := now.Add(-time.Duration(lookbackHours) * time.Hour)

	summary := &Summary{
		RunID:         uuid.NewString(),
		GeneratedAt:   now,
		LookbackHours: lookbackHours,
	}
	logger := r.logger.With(map[string]interface{}{"run": summary.RunID})
	enricher := NewEnricher(r.fetcher, r.rules, logger)

	for _, target := range targets {
		events, err := r.collectEvents(ctx, logger, target, since)
		if err != nil {
			return nil, err
		}

		cs := Classify(events, target)
		newRecs, updatedRecs := enricher.Enrich(ctx, cs, target)

		logger.Info("target checked", map[string]interface{}{
			"repo":    target.Repo,
			"path":    target.Path,
			"new":     len(newRecs),
			"updated": len(updatedRecs),
		})

		summary.Results = append(summary.Results, TargetResult{
			Target:  target,
			Name:    target.Name,
			Repo:    target.Repo,
			New:     newRecs,
			Updated: updatedRecs,
		})
	}

	return summary, nil
}

// collectEvents flattens the commit window into per-file events in
// retrieval order: commits as listed, files as reported per commit.
func (r *Runner) collectEvents(ctx context.Context, logger *logging.Logger, target watchlist.Target, since time.Time) ([]FileEvent, error) {
	commits, err := r.source.ListCommits(ctx, target.Repo, target.Path, since)
	if err != nil {
		return nil, err
	}
	logger.Debug("listed commits", map[string]interface{}{
		"repo":  target.Repo,
		"count": len(commits),
	})

	var events []FileEvent
	for _, commit := range commits {
		detail, err := r.source.GetCommit(ctx, commit.URL)
		if err != nil {
			return nil, err
		}
		for _, file := range detail.Files {
			events = append(events, FileEvent{
				CommitSHA:  commit.SHA,
				CommitTime: commit.AuthorDate(),
				Filename:   file.Filename,
				Status:     file.Status,
				RawURL:     file.RawURL,
			})
		}
	}
	return events, nil
}
