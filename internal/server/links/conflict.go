package links

import (
	"github.com/untpkit/resolver/internal/common"
)

// identityKey is the composite identity of a response. Two responses with
// the same key are indistinguishable to the negotiation resolver.
type identityKey struct {
	targetURL    string
	linkType     string
	mimeType     string
	ianaLanguage string
	context      string
}

func keyOf(r *Response) identityKey {
	return identityKey{
		targetURL:    r.TargetURL,
		linkType:     r.LinkType,
		mimeType:     r.MimeType,
		ianaLanguage: r.IanaLanguage,
		context:      r.Context,
	}
}

// CheckConflict rejects an update that would give the response identified by
// linkID the same composite key as any other response currently in the
// document, or any key recorded as a previous state in the version history.
// The historical check keeps retired URL/type/format combinations from being
// silently revived.
func CheckConflict(doc *Document, linkID string, updated *Response) error {
	candidate := keyOf(updated)

	for i := range doc.Responses {
		r := &doc.Responses[i]
		if r.LinkID == linkID {
			continue
		}
		if keyOf(r) == candidate {
			return &common.ConflictError{Identity: r.TargetURL + " " + r.LinkType}
		}
	}

	for _, entry := range doc.VersionHistory {
		for _, change := range entry.Changes {
			if !hasPreviousFields(change) {
				continue
			}
			if historicalKey(doc, change) == candidate {
				return &common.ConflictError{Identity: updated.TargetURL + " " + updated.LinkType}
			}
		}
	}

	return nil
}

func hasPreviousFields(c LinkChange) bool {
	return c.PreviousTargetURL != nil || c.PreviousLinkType != nil ||
		c.PreviousMimeType != nil || c.PreviousIanaLanguage != nil || c.PreviousContext != nil
}

// historicalKey reconstructs the composite key a response had before the
// recorded change. Previous* fields carry only what changed; the rest is
// taken from the response's current state when it still exists, and left
// empty for hard-deleted responses.
func historicalKey(doc *Document, c LinkChange) identityKey {
	var key identityKey
	if current := doc.Find(c.LinkID); current != nil {
		key = keyOf(current)
	}
	if c.PreviousTargetURL != nil {
		key.targetURL = *c.PreviousTargetURL
	}
	if c.PreviousLinkType != nil {
		key.linkType = *c.PreviousLinkType
	}
	if c.PreviousMimeType != nil {
		key.mimeType = *c.PreviousMimeType
	}
	if c.PreviousIanaLanguage != nil {
		key.ianaLanguage = *c.PreviousIanaLanguage
	}
	if c.PreviousContext != nil {
		key.context = *c.PreviousContext
	}
	return key
}
