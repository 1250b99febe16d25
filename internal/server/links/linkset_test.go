package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAnchor = "https://id.example.org/gs1/01/09506000134352"

func TestBuildLinksetGroupsByLinkType(t *testing.T) {
	doc := &Document{ItemDescription: "Pasta sauce"}
	responses := []Response{
		{LinkID: "a", TargetURL: "https://example.com/info", LinkType: "gs1:pip", MimeType: "text/html", IanaLanguage: "en", Title: "Product info"},
		{LinkID: "b", TargetURL: "https://example.com/epcis", LinkType: "gs1:epcis", MimeType: "application/json"},
		{LinkID: "c", TargetURL: "https://example.com/info-fr", LinkType: "gs1:pip", MimeType: "text/html", IanaLanguage: "fr"},
	}

	body, header := BuildLinkset(testAnchor, doc, responses)

	require.Len(t, body, 1)
	ctxObj := body[0]
	assert.Equal(t, testAnchor, ctxObj["anchor"])
	assert.Equal(t, "Pasta sauce", ctxObj["itemDescription"])

	pip, ok := ctxObj["gs1:pip"].([]linksetLink)
	require.True(t, ok)
	require.Len(t, pip, 2)
	assert.Equal(t, "https://example.com/info", pip[0].Href)
	assert.Equal(t, []string{"en"}, pip[0].Hreflang)
	assert.Equal(t, "Product info", pip[0].Title)
	assert.Equal(t, "https://example.com/info-fr", pip[1].Href)

	epcis, ok := ctxObj["gs1:epcis"].([]linksetLink)
	require.True(t, ok)
	require.Len(t, epcis, 1)
	assert.Empty(t, epcis[0].Hreflang)

	// Header mirrors the responses plus the closing sameAs entry.
	require.Len(t, header, 4)
	assert.Equal(t, "gs1:pip", header[0].Rel)
	assert.Equal(t, "gs1:epcis", header[1].Rel)
	assert.Equal(t, relSameAs, header[3].Rel)
	assert.Equal(t, testAnchor, header[3].Href)
}

func TestBuildLinksetPredecessors(t *testing.T) {
	doc := &Document{
		Responses: []Response{
			{LinkID: "a", TargetURL: "https://example.com/v3", LinkType: "gs1:pip", Active: true},
		},
		VersionHistory: []VersionHistoryEntry{
			{Version: 3, Changes: []LinkChange{{LinkID: "a", Action: ActionUpdated, PreviousTargetURL: strptr("https://example.com/v2")}}},
			{Version: 2, Changes: []LinkChange{{LinkID: "a", Action: ActionUpdated, PreviousTargetURL: strptr("https://example.com/v1")}}},
			// Duplicate record for an already-listed predecessor.
			{Version: 1, Changes: []LinkChange{{LinkID: "a", Action: ActionUpdated, PreviousTargetURL: strptr("https://example.com/v1")}}},
		},
	}

	body, header := BuildLinkset(testAnchor, doc, doc.Responses)

	preds, ok := body[0][relPredecessor].([]linksetLink)
	require.True(t, ok)
	require.Len(t, preds, 2)
	assert.Equal(t, "https://example.com/v2", preds[0].Href)
	assert.Equal(t, "https://example.com/v1", preds[1].Href)

	rels := make([]string, len(header))
	for i, l := range header {
		rels[i] = l.Rel
	}
	assert.Equal(t, []string{"gs1:pip", relPredecessor, relPredecessor, relSameAs}, rels)
}

func TestBuildLinksetSkipsPredecessorEqualToCurrent(t *testing.T) {
	doc := &Document{
		Responses: []Response{
			{LinkID: "a", TargetURL: "https://example.com/v1", LinkType: "gs1:pip", Active: true},
		},
		VersionHistory: []VersionHistoryEntry{
			// The target was changed away and back again.
			{Version: 3, Changes: []LinkChange{{LinkID: "a", Action: ActionUpdated, PreviousTargetURL: strptr("https://example.com/v2")}}},
			{Version: 2, Changes: []LinkChange{{LinkID: "a", Action: ActionUpdated, PreviousTargetURL: strptr("https://example.com/v1")}}},
		},
	}

	body, _ := BuildLinkset(testAnchor, doc, doc.Responses)

	preds, ok := body[0][relPredecessor].([]linksetLink)
	require.True(t, ok)
	require.Len(t, preds, 1)
	assert.Equal(t, "https://example.com/v2", preds[0].Href)
}

func TestBuildLinksetEmptyResponses(t *testing.T) {
	doc := &Document{}

	body, header := BuildLinkset(testAnchor, doc, nil)

	require.Len(t, body, 1)
	sameAs, ok := body[0][relSameAs].([]linksetLink)
	require.True(t, ok)
	assert.Equal(t, testAnchor, sameAs[0].Href)
	require.Len(t, header, 1)
	assert.Equal(t, relSameAs, header[0].Rel)
}

func TestFormatLinkHeader(t *testing.T) {
	header := []HeaderLink{
		{Href: "https://example.com/info", Rel: "gs1:pip", Type: "text/html", Hreflang: "en", Title: "Info"},
		{Href: testAnchor, Rel: relSameAs},
	}

	got := FormatLinkHeader(header)
	want := `<https://example.com/info>; rel="gs1:pip"; type="text/html"; hreflang="en"; title="Info", ` +
		`<` + testAnchor + `>; rel="owl:sameAs"`
	assert.Equal(t, want, got)
}
