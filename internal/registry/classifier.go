package registry

import (
	"nightwatch/internal/watchlist"
)

// Classify folds an ordered sequence of file events into a ChangeSet for
// one watched target.
//
// Precedence rules, applied in event order:
//   - events outside the target's directory or extension are skipped
//   - "added" always classifies the file as new; an earlier "added" for the
//     same file keeps its data, and any "updated" entry for it is evicted
//   - "modified" records the file as updated only when it is not tracked in
//     either set yet
//
// Once a file resolves to new it never regresses to updated, and duplicate
// modifications collapse to the earliest event in iteration order.
func Classify(events []FileEvent, target watchlist.Target) *ChangeSet {
	cs := NewChangeSet()

	for _, ev := range events {
		if !target.Matches(ev.Filename) {
			continue
		}

		rec := ChangeRecord{
			File:   ev.Filename,
			Commit: ev.CommitSHA,
			Date:   ev.CommitTime,
			RawURL: ev.RawURL,
		}

		switch ev.Status {
		case StatusAdded:
			cs.recordAdded(rec)
		case StatusModified:
			cs.recordModified(rec)
		}
	}

	return cs
}
