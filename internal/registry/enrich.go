package registry

import (
	"context"
	"strings"

	"nightwatch/internal/logging"
	"nightwatch/internal/scoring"
	"nightwatch/internal/watchlist"
)

// Enricher attaches subject, metadata fields and resemblance scoring to
// classified records.
type Enricher struct {
	fetcher MetadataFetcher
	rules   scoring.Rules
	logger  *logging.Logger
}

// NewEnricher creates an enricher.
func NewEnricher(fetcher MetadataFetcher, rules scoring.Rules, logger *logging.Logger) *Enricher {
	return &Enricher{
		fetcher: fetcher,
		rules:   rules,
		logger:  logger,
	}
}

// Enrich processes the new records then the updated records, in set order.
// Metadata failures are contained per record: the record keeps empty field
// values and its score reflects the remaining signals.
func (e *Enricher) Enrich(ctx context.Context, cs *ChangeSet, target watchlist.Target) (newRecs, updatedRecs []EnrichedRecord) {
	for _, rec := range cs.New() {
		newRecs = append(newRecs, e.enrichOne(ctx, rec, target, true))
	}
	for _, rec := range cs.Updated() {
		updatedRecs = append(updatedRecs, e.enrichOne(ctx, rec, target, false))
	}
	return newRecs, updatedRecs
}

func (e *Enricher) enrichOne(ctx context.Context, rec ChangeRecord, target watchlist.Target, isNew bool) EnrichedRecord {
	subject := target.Subject(rec.File)

	result := e.fetcher.Fetch(ctx, rec.RawURL)
	if result.Err != nil {
		// Externally silent: the record proceeds with empty fields.
		e.logger.Debug("metadata fetch failed", map[string]interface{}{
			"file":  rec.File,
			"url":   rec.RawURL,
			"error": result.Err.Error(),
		})
	}

	name := result.Fields.String("name")
	ticker := result.Fields.String("ticker")
	description := result.Fields.String("description")
	url := result.Fields.String("url")

	blob := joinNonEmpty(subject, name, ticker, description, url)
	score := e.rules.Score(blob, isNew)

	return EnrichedRecord{
		ChangeRecord: rec,
		Subject:      subject,
		Name:         name,
		Ticker:       ticker,
		URL:          url,
		Score:        score,
		Level:        e.rules.LevelFor(score),
	}
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
