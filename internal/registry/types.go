// Package registry classifies and enriches registry file changes.
//
// A run folds the commit window's file events into a ChangeSet of new and
// updated records, then enriches each record with fetched metadata and a
// resemblance score. Everything here is per-run: nothing is persisted.
package registry

import (
	"time"

	"nightwatch/internal/scoring"
)

// File change statuses reported by the commit detail call. Anything else
// ("removed", "renamed", ...) is ignored.
const (
	StatusAdded    = "added"
	StatusModified = "modified"
)

// FileEvent is one file change from one commit, in retrieval order
type FileEvent struct {
	CommitSHA  string
	CommitTime time.Time
	Filename   string
	Status     string
	RawURL     string
}

// ChangeRecord is a deduplicated change for a single registry file
type ChangeRecord struct {
	File   string    `json:"file"`
	Commit string    `json:"commit"`
	Date   time.Time `json:"date"`
	RawURL string    `json:"rawUrl,omitempty"`
}

// EnrichedRecord is a ChangeRecord plus its fetched metadata and score
type EnrichedRecord struct {
	ChangeRecord

	Subject string        `json:"subject"`
	Name    string        `json:"name"`
	Ticker  string        `json:"ticker"`
	URL     string        `json:"url"`
	Score   int           `json:"score"`
	Level   scoring.Level `json:"level"`
}

// ChangeSet holds the run's deduplicated changes, split into new and
// updated, each in first-occurrence order. A file appears in at most one
// of the two sets.
type ChangeSet struct {
	newRecords     map[string]ChangeRecord
	newOrder       []string
	updatedRecords map[string]ChangeRecord
	updatedOrder   []string
}

// NewChangeSet creates an empty ChangeSet.
func NewChangeSet() *ChangeSet {
	return &ChangeSet{
		newRecords:     make(map[string]ChangeRecord),
		updatedRecords: make(map[string]ChangeRecord),
	}
}

// New returns the newly added records in first-occurrence order.
func (cs *ChangeSet) New() []ChangeRecord {
	out := make([]ChangeRecord, 0, len(cs.newOrder))
	for _, file := range cs.newOrder {
		out = append(out, cs.newRecords[file])
	}
	return out
}

// Updated returns the modified records in first-occurrence order.
func (cs *ChangeSet) Updated() []ChangeRecord {
	out := make([]ChangeRecord, 0, len(cs.updatedOrder))
	for _, file := range cs.updatedOrder {
		out = append(out, cs.updatedRecords[file])
	}
	return out
}

// Empty reports whether the window produced no changes at all.
func (cs *ChangeSet) Empty() bool {
	return len(cs.newRecords) == 0 && len(cs.updatedRecords) == 0
}

// recordAdded applies an "added" event: first writer wins in the new set,
// and the file is unconditionally evicted from the updated set.
func (cs *ChangeSet) recordAdded(rec ChangeRecord) {
	if _, seen := cs.newRecords[rec.File]; !seen {
		cs.newRecords[rec.File] = rec
		cs.newOrder = append(cs.newOrder, rec.File)
	}
	cs.evictUpdated(rec.File)
}

// recordModified applies a "modified" event: only the first sighting of a
// file not already tracked anywhere is recorded.
func (cs *ChangeSet) recordModified(rec ChangeRecord) {
	if _, isNew := cs.newRecords[rec.File]; isNew {
		return
	}
	if _, seen := cs.updatedRecords[rec.File]; seen {
		return
	}
	cs.updatedRecords[rec.File] = rec
	cs.updatedOrder = append(cs.updatedOrder, rec.File)
}

func (cs *ChangeSet) evictUpdated(file string) {
	if _, ok := cs.updatedRecords[file]; !ok {
		return
	}
	delete(cs.updatedRecords, file)
	for i, f := range cs.updatedOrder {
		if f == file {
			cs.updatedOrder = append(cs.updatedOrder[:i], cs.updatedOrder[i+1:]...)
			break
		}
	}
}
