package links

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/untpkit/resolver/internal/common"
)

func strptr(s string) *string { return &s }

func conflictDoc() *Document {
	return &Document{
		Responses: []Response{
			{
				LinkID:       "link-a",
				TargetURL:    "https://example.com/a",
				LinkType:     "gs1:pip",
				MimeType:     "text/html",
				IanaLanguage: "en",
				Context:      "us",
				Active:       true,
			},
			{
				LinkID:       "link-b",
				TargetURL:    "https://example.com/b",
				LinkType:     "gs1:epcis",
				MimeType:     "application/json",
				IanaLanguage: "en",
				Context:      "us",
				Active:       true,
			},
		},
	}
}

func TestCheckConflictDistinctKeys(t *testing.T) {
	doc := conflictDoc()
	updated := *doc.Find("link-a")
	updated.TargetURL = "https://example.com/a2"

	assert.NoError(t, CheckConflict(doc, "link-a", &updated))
}

func TestCheckConflictWithCurrentResponse(t *testing.T) {
	doc := conflictDoc()
	updated := *doc.Find("link-a")
	updated.TargetURL = "https://example.com/b"
	updated.LinkType = "gs1:epcis"
	updated.MimeType = "application/json"

	err := CheckConflict(doc, "link-a", &updated)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrConflict))

	var ce *common.ConflictError
	require.True(t, errors.As(err, &ce))
	assert.Contains(t, ce.Identity, "https://example.com/b")
}

func TestCheckConflictIgnoresSelf(t *testing.T) {
	doc := conflictDoc()
	unchanged := *doc.Find("link-a")

	assert.NoError(t, CheckConflict(doc, "link-a", &unchanged))
}

func TestCheckConflictWithHistoricalIdentity(t *testing.T) {
	doc := conflictDoc()
	// link-b used to point at /b-old before an update.
	doc.VersionHistory = []VersionHistoryEntry{
		{
			Version: 2,
			Changes: []LinkChange{
				{LinkID: "link-b", Action: ActionUpdated, PreviousTargetURL: strptr("https://example.com/b-old")},
			},
		},
	}

	updated := *doc.Find("link-a")
	updated.TargetURL = "https://example.com/b-old"
	updated.LinkType = "gs1:epcis"
	updated.MimeType = "application/json"

	err := CheckConflict(doc, "link-a", &updated)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrConflict))
}

func TestCheckConflictHistoricalOverlay(t *testing.T) {
	doc := conflictDoc()
	// Only the language changed historically; the rest of link-b's identity
	// comes from its current state.
	doc.VersionHistory = []VersionHistoryEntry{
		{
			Version: 2,
			Changes: []LinkChange{
				{LinkID: "link-b", Action: ActionUpdated, PreviousIanaLanguage: strptr("de")},
			},
		},
	}

	updated := *doc.Find("link-a")
	updated.TargetURL = "https://example.com/b"
	updated.LinkType = "gs1:epcis"
	updated.MimeType = "application/json"
	updated.IanaLanguage = "de"

	err := CheckConflict(doc, "link-a", &updated)
	assert.True(t, errors.Is(err, common.ErrConflict))
}

func TestCheckConflictHistoryWithoutPreviousFields(t *testing.T) {
	doc := conflictDoc()
	doc.VersionHistory = []VersionHistoryEntry{
		{Version: 2, Changes: []LinkChange{{LinkID: "link-b", Action: ActionSoftDeleted}}},
	}

	updated := *doc.Find("link-a")
	updated.Title = "new title"

	assert.NoError(t, CheckConflict(doc, "link-a", &updated))
}
