package links

import "time"

// Normalize upgrades a legacy document read from the store: responses
// without a linkId get one, the version counter starts at 1, and missing
// timestamps are filled in. Returns the linkIds that were assigned and
// whether anything changed; the caller persists the result best-effort.
func Normalize(doc *Document, now time.Time, newID func() string) (assigned []string, changed bool) {
	if doc.Version < 1 {
		doc.Version = 1
		changed = true
	}
	if doc.VersionHistory == nil {
		doc.VersionHistory = []VersionHistoryEntry{}
		changed = true
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
		changed = true
	}
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = now
		changed = true
	}

	for i := range doc.Responses {
		r := &doc.Responses[i]
		if r.LinkID == "" {
			r.LinkID = newID()
			assigned = append(assigned, r.LinkID)
			changed = true
		}
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now
			changed = true
		}
		if r.UpdatedAt.IsZero() {
			r.UpdatedAt = now
			changed = true
		}
	}

	return assigned, changed
}
