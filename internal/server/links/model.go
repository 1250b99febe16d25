// Package links implements the link-lifecycle engine of the resolver
// registry: the versioned response documents, the default-flag scope rules,
// duplicate detection, linkset reconstruction and the create/read/update/
// delete orchestration on top of the document store.
package links

import "time"

// Link change actions recorded in a document's version history.
const (
	ActionCreated     = "created"
	ActionUpdated     = "updated"
	ActionSoftDeleted = "soft_deleted"
	ActionHardDeleted = "hard_deleted"
)

// Response is one registered link variant: a target URL plus the negotiation
// attributes that select it (link type, language, media type, context) and
// the four cascading default markers.
type Response struct {
	LinkID       string `json:"linkId"`
	TargetURL    string `json:"targetUrl"`
	LinkType     string `json:"linkType"`
	Title        string `json:"title,omitempty"`
	MimeType     string `json:"mimeType,omitempty"`
	IanaLanguage string `json:"ianaLanguage,omitempty"`
	Context      string `json:"context,omitempty"`
	Active       bool   `json:"active"`

	// Fwqs forwards the inbound query string on a 302 redirect.
	Fwqs bool `json:"fwqs"`

	DefaultLinkType     bool `json:"defaultLinkType"`
	DefaultIanaLanguage bool `json:"defaultIanaLanguage"`
	DefaultContext      bool `json:"defaultContext"`
	DefaultMimeType     bool `json:"defaultMimeType"`

	EncryptionMethod string   `json:"encryptionMethod,omitempty"`
	AccessRole       []string `json:"accessRole,omitempty"`
	Method           string   `json:"method,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Document is the persisted unit for one namespace + primary key +
// qualifier-path combination. It owns the response set, a monotonic version
// counter and an append-only change history (newest first).
type Document struct {
	Namespace             string                `json:"namespace"`
	IdentificationKeyType string                `json:"identificationKeyType"`
	IdentificationKey     string                `json:"identificationKey"`
	QualifierPath         string                `json:"qualifierPath,omitempty"`
	ItemDescription       string                `json:"itemDescription,omitempty"`
	Active                bool                  `json:"active"`
	Responses             []Response            `json:"responses"`
	Version               int64                 `json:"version"`
	VersionHistory        []VersionHistoryEntry `json:"versionHistory"`
	Linkset               []map[string]any      `json:"linkset,omitempty"`
	CreatedAt             time.Time             `json:"createdAt"`
	UpdatedAt             time.Time             `json:"updatedAt"`
}

// VersionHistoryEntry records the changes committed by one mutation.
type VersionHistoryEntry struct {
	Version   int64        `json:"version"`
	UpdatedAt time.Time    `json:"updatedAt"`
	Changes   []LinkChange `json:"changes"`
}

// LinkChange is one response-level change. The Previous* fields are set only
// for an updated action and only for the fields that actually changed.
type LinkChange struct {
	LinkID               string  `json:"linkId"`
	Action               string  `json:"action"`
	PreviousTargetURL    *string `json:"previousTargetUrl,omitempty"`
	PreviousLinkType     *string `json:"previousLinkType,omitempty"`
	PreviousMimeType     *string `json:"previousMimeType,omitempty"`
	PreviousIanaLanguage *string `json:"previousIanaLanguage,omitempty"`
	PreviousContext      *string `json:"previousContext,omitempty"`
}

// LinkIndexEntry maps a linkId to the storage path of its owning document.
// It is the O(1) lookup path for get-by-linkId; the document itself stays
// authoritative, so a lost entry degrades one lookup, not the data.
type LinkIndexEntry struct {
	DocumentPath string `json:"documentPath"`
}

// Find returns the response with the given linkId, or nil.
func (d *Document) Find(linkID string) *Response {
	for i := range d.Responses {
		if d.Responses[i].LinkID == linkID {
			return &d.Responses[i]
		}
	}
	return nil
}
