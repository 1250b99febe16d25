package links

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/untpkit/resolver/internal/catalog"
	"github.com/untpkit/resolver/internal/common"
	"github.com/untpkit/resolver/internal/digitallink"
	"github.com/untpkit/resolver/internal/docstore"
	"github.com/untpkit/resolver/internal/logging"
)

// Test seams.
var (
	timeNow   = time.Now
	newLinkID = func() string { return uuid.NewString() }
)

const linkIndexPrefix = "_index/links/"

// Service orchestrates the link lifecycle: additive registration, listing,
// get-by-linkId, partial update, soft delete and hard delete. Every mutation
// bumps the document version, prepends a history entry and rebuilds the
// linkset before persisting.
type Service struct {
	store          docstore.Store
	catalog        catalog.Catalog
	logger         logging.Logger
	resolverDomain string
}

func NewService(store docstore.Store, cat catalog.Catalog, logger logging.Logger, resolverDomain string) *Service {
	return &Service{
		store:          store,
		catalog:        cat,
		logger:         logger.With("module", "links"),
		resolverDomain: resolverDomain,
	}
}

// RegisterRequest is the additive registration payload.
type RegisterRequest struct {
	Namespace             string     `json:"namespace"`
	IdentificationKeyType string     `json:"identificationKeyType"`
	IdentificationKey     string     `json:"identificationKey"`
	QualifierPath         string     `json:"qualifierPath"`
	ItemDescription       string     `json:"itemDescription"`
	Active                bool       `json:"active"`
	Responses             []Response `json:"responses"`
}

// ListQuery selects one document plus optional response equality filters.
type ListQuery struct {
	Namespace             string
	IdentificationKeyType string
	IdentificationKey     string
	QualifierPath         string
	LinkType              string
	MimeType              string
	IanaLanguage          string
}

// UpdateRequest carries a partial update: nil fields are left untouched.
type UpdateRequest struct {
	TargetURL           *string   `json:"targetUrl"`
	LinkType            *string   `json:"linkType"`
	Title               *string   `json:"title"`
	MimeType            *string   `json:"mimeType"`
	IanaLanguage        *string   `json:"ianaLanguage"`
	Context             *string   `json:"context"`
	Active              *bool     `json:"active"`
	Fwqs                *bool     `json:"fwqs"`
	DefaultLinkType     *bool     `json:"defaultLinkType"`
	DefaultIanaLanguage *bool     `json:"defaultIanaLanguage"`
	DefaultContext      *bool     `json:"defaultContext"`
	DefaultMimeType     *bool     `json:"defaultMimeType"`
	EncryptionMethod    *string   `json:"encryptionMethod"`
	AccessRole          *[]string `json:"accessRole"`
	Method              *string   `json:"method"`
}

func (r *UpdateRequest) empty() bool {
	return r.TargetURL == nil && r.LinkType == nil && r.Title == nil &&
		r.MimeType == nil && r.IanaLanguage == nil && r.Context == nil &&
		r.Active == nil && r.Fwqs == nil &&
		r.DefaultLinkType == nil && r.DefaultIanaLanguage == nil &&
		r.DefaultContext == nil && r.DefaultMimeType == nil &&
		r.EncryptionMethod == nil && r.AccessRole == nil && r.Method == nil
}

// location is a resolved storage position for one identifier + qualifier
// combination.
type location struct {
	ident         *catalog.Identifier
	aiCode        string
	qualifierPath string
	docKey        string
	params        digitallink.IdentifierParams
}

// locate resolves namespace, key-type token and qualifier path to the
// canonical document key. Unknown namespace and unknown token are reported
// through notFoundErr, which the read and write paths shape differently.
func (s *Service) locate(ctx context.Context, namespace, keyTypeToken, key, qualifierPath string,
	nsErr, aiErr func(token string) error) (*location, error) {

	ident, err := s.catalog.GetIdentifier(ctx, namespace)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nsErr(namespace)
	}
	if err != nil {
		return nil, err
	}

	aiCode, ok := digitallink.CanonicalAICode(ident, keyTypeToken)
	if !ok {
		return nil, aiErr(keyTypeToken)
	}

	pairs, err := digitallink.ParseQualifierPath(qualifierPath)
	if err != nil {
		return nil, err
	}

	// Canonicalise qualifier shortcodes to AI codes so the same qualifier
	// always maps to the same storage key.
	canonical := make([]digitallink.KV, len(pairs))
	for i, kv := range pairs {
		canonical[i] = kv
		if q := ident.Qualifier(kv.Token); q != nil {
			canonical[i].Token = q.AICode
		}
	}
	canonicalPath := digitallink.BuildQualifierPath(canonical)

	return &location{
		ident:         ident,
		aiCode:        aiCode,
		qualifierPath: canonicalPath,
		docKey:        digitallink.DocumentKey(namespace, aiCode, key, canonicalPath),
		params: digitallink.IdentifierParams{
			Namespace:   namespace,
			Primary:     digitallink.KV{Token: keyTypeToken, Value: key},
			Secondaries: pairs,
		},
	}, nil
}

func validationErr(key string) func(string) error {
	return func(token string) error {
		return common.NewValidationError([]common.FieldError{{Key: key, Args: []any{token}}})
	}
}

func notFoundErr(key string) func(string) error {
	return func(token string) error {
		return fmt.Errorf("%s %q: %w", key, token, common.ErrNotFound)
	}
}

// Register merges the request's responses into the document for the given
// identifier + qualifier combination, creating it when absent. Responses
// matching an existing composite identity key refresh that response in
// place; all others are appended under a new linkId. Registration is
// additive: nothing is removed.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*Document, error) {
	loc, err := s.locate(ctx, req.Namespace, req.IdentificationKeyType, req.IdentificationKey, req.QualifierPath,
		validationErr("invalid_namespace_prefix"), validationErr("ai_code_not_found"))
	if err != nil {
		return nil, err
	}

	if errs := digitallink.Validate(loc.params, loc.ident); len(errs) > 0 {
		return nil, common.NewValidationError(errs)
	}

	now := timeNow().UTC()

	doc, err := s.loadDocument(ctx, loc.docKey)
	if errors.Is(err, common.ErrNotFound) {
		doc = &Document{
			Namespace:             req.Namespace,
			IdentificationKeyType: loc.aiCode,
			IdentificationKey:     req.IdentificationKey,
			QualifierPath:         loc.qualifierPath,
			CreatedAt:             now,
			Version:               0, // bumped to 1 by commit
			VersionHistory:        []VersionHistoryEntry{},
		}
	} else if err != nil {
		return nil, err
	}

	doc.Active = req.Active
	if req.ItemDescription != "" {
		doc.ItemDescription = req.ItemDescription
	}

	var changes []LinkChange
	var newIDs []string

	for i := range req.Responses {
		incoming := req.Responses[i]
		incoming.UpdatedAt = now

		if existing := findByKey(doc.Responses, keyOf(&incoming)); existing != nil {
			refreshResponse(existing, &incoming, now)
			continue
		}

		// A caller-supplied linkId is kept so re-posting exported data
		// preserves stable ids; mint one only when blank or already taken.
		if incoming.LinkID == "" || doc.Find(incoming.LinkID) != nil {
			incoming.LinkID = newLinkID()
		}
		incoming.CreatedAt = now
		doc.Responses = append(doc.Responses, incoming)
		newIDs = append(newIDs, incoming.LinkID)
		changes = append(changes, LinkChange{LinkID: incoming.LinkID, Action: ActionCreated})
	}

	if err := s.commit(ctx, loc.docKey, doc, now, changes); err != nil {
		return nil, err
	}

	for _, id := range newIDs {
		s.writeIndex(ctx, id, loc.docKey)
	}

	return doc, nil
}

// findByKey returns the response whose composite identity key matches, or nil.
func findByKey(responses []Response, key identityKey) *Response {
	for i := range responses {
		if keyOf(&responses[i]) == key {
			return &responses[i]
		}
	}
	return nil
}

// refreshResponse re-applies an additive registration onto the response it
// collided with: same identity, refreshed attributes.
func refreshResponse(existing, incoming *Response, now time.Time) {
	existing.Title = incoming.Title
	existing.Active = incoming.Active
	existing.Fwqs = incoming.Fwqs
	existing.DefaultLinkType = incoming.DefaultLinkType
	existing.DefaultIanaLanguage = incoming.DefaultIanaLanguage
	existing.DefaultContext = incoming.DefaultContext
	existing.DefaultMimeType = incoming.DefaultMimeType
	existing.EncryptionMethod = incoming.EncryptionMethod
	existing.AccessRole = incoming.AccessRole
	existing.Method = incoming.Method
	existing.UpdatedAt = now
}

// List returns the document for the query's identifier with all responses,
// including inactive ones, optionally filtered by linkType, mimeType and
// ianaLanguage equality.
func (s *Service) List(ctx context.Context, q *ListQuery) (*Document, error) {
	loc, err := s.locate(ctx, q.Namespace, q.IdentificationKeyType, q.IdentificationKey, q.QualifierPath,
		notFoundErr("namespace"), notFoundErr("identification key type"))
	if err != nil {
		return nil, err
	}

	doc, err := s.loadDocument(ctx, loc.docKey)
	if err != nil {
		return nil, err
	}

	if q.LinkType == "" && q.MimeType == "" && q.IanaLanguage == "" {
		return doc, nil
	}

	filtered := make([]Response, 0, len(doc.Responses))
	for _, r := range doc.Responses {
		if q.LinkType != "" && r.LinkType != q.LinkType {
			continue
		}
		if q.MimeType != "" && r.MimeType != q.MimeType {
			continue
		}
		if q.IanaLanguage != "" && r.IanaLanguage != q.IanaLanguage {
			continue
		}
		filtered = append(filtered, r)
	}
	doc.Responses = filtered
	return doc, nil
}

// Resolve loads the document for an already-parsed identifier path. Used by
// the public resolution endpoint.
func (s *Service) Resolve(ctx context.Context, params digitallink.IdentifierParams) (*Document, error) {
	loc, err := s.locate(ctx, params.Namespace, params.Primary.Token, params.Primary.Value,
		digitallink.BuildQualifierPath(params.Secondaries),
		notFoundErr("namespace"), notFoundErr("identification key type"))
	if err != nil {
		return nil, err
	}

	if errs := digitallink.Validate(loc.params, loc.ident); len(errs) > 0 {
		return nil, common.NewValidationError(errs)
	}

	return s.loadDocument(ctx, loc.docKey)
}

// GetByLinkID fetches one response through the linkId index.
func (s *Service) GetByLinkID(ctx context.Context, linkID string) (*Response, error) {
	_, doc, err := s.loadByLinkID(ctx, linkID)
	if err != nil {
		return nil, err
	}
	resp := doc.Find(linkID)
	if resp == nil {
		return nil, fmt.Errorf("link %q: %w", linkID, common.ErrNotFound)
	}
	out := *resp
	return &out, nil
}

// Update applies a partial update to one response. The request must carry at
// least one field; the updated response must not collide with any other
// current response or any historically recorded identity.
func (s *Service) Update(ctx context.Context, linkID string, req *UpdateRequest) (*Response, error) {
	if req.empty() {
		return nil, common.NewValidationError([]common.FieldError{{Key: "empty_update_body"}})
	}

	docKey, doc, err := s.loadByLinkID(ctx, linkID)
	if err != nil {
		return nil, err
	}

	resp := doc.Find(linkID)
	if resp == nil {
		return nil, fmt.Errorf("link %q: %w", linkID, common.ErrNotFound)
	}

	now := timeNow().UTC()

	candidate := *resp
	change := applyUpdate(&candidate, req, linkID)

	if err := CheckConflict(doc, linkID, &candidate); err != nil {
		return nil, err
	}

	candidate.UpdatedAt = now
	*resp = candidate

	if err := s.commit(ctx, docKey, doc, now, []LinkChange{change}); err != nil {
		return nil, err
	}

	out := *doc.Find(linkID)
	return &out, nil
}

// applyUpdate copies the request's set fields onto the response and records
// previous values for the history-tracked fields that actually changed.
func applyUpdate(r *Response, req *UpdateRequest, linkID string) LinkChange {
	change := LinkChange{LinkID: linkID, Action: ActionUpdated}

	if req.TargetURL != nil && *req.TargetURL != r.TargetURL {
		prev := r.TargetURL
		change.PreviousTargetURL = &prev
		r.TargetURL = *req.TargetURL
	}
	if req.LinkType != nil && *req.LinkType != r.LinkType {
		prev := r.LinkType
		change.PreviousLinkType = &prev
		r.LinkType = *req.LinkType
	}
	if req.MimeType != nil && *req.MimeType != r.MimeType {
		prev := r.MimeType
		change.PreviousMimeType = &prev
		r.MimeType = *req.MimeType
	}
	if req.IanaLanguage != nil && *req.IanaLanguage != r.IanaLanguage {
		prev := r.IanaLanguage
		change.PreviousIanaLanguage = &prev
		r.IanaLanguage = *req.IanaLanguage
	}
	if req.Context != nil && *req.Context != r.Context {
		prev := r.Context
		change.PreviousContext = &prev
		r.Context = *req.Context
	}

	if req.Title != nil {
		r.Title = *req.Title
	}
	if req.Active != nil {
		r.Active = *req.Active
	}
	if req.Fwqs != nil {
		r.Fwqs = *req.Fwqs
	}
	if req.DefaultLinkType != nil {
		r.DefaultLinkType = *req.DefaultLinkType
	}
	if req.DefaultIanaLanguage != nil {
		r.DefaultIanaLanguage = *req.DefaultIanaLanguage
	}
	if req.DefaultContext != nil {
		r.DefaultContext = *req.DefaultContext
	}
	if req.DefaultMimeType != nil {
		r.DefaultMimeType = *req.DefaultMimeType
	}
	if req.EncryptionMethod != nil {
		r.EncryptionMethod = *req.EncryptionMethod
	}
	if req.AccessRole != nil {
		r.AccessRole = *req.AccessRole
	}
	if req.Method != nil {
		r.Method = *req.Method
	}

	return change
}

// Delete removes a response. A soft delete deactivates it and lets the
// default-flag recomputation promote a replacement in its scope; a hard
// delete removes it from the document and, best effort, drops its index
// entry. The document itself is never deleted.
func (s *Service) Delete(ctx context.Context, linkID string, hard bool) error {
	docKey, doc, err := s.loadByLinkID(ctx, linkID)
	if err != nil {
		return err
	}

	resp := doc.Find(linkID)
	if resp == nil {
		return fmt.Errorf("link %q: %w", linkID, common.ErrNotFound)
	}

	now := timeNow().UTC()

	if hard {
		kept := make([]Response, 0, len(doc.Responses)-1)
		for _, r := range doc.Responses {
			if r.LinkID != linkID {
				kept = append(kept, r)
			}
		}
		doc.Responses = kept

		if err := s.commit(ctx, docKey, doc, now, []LinkChange{{LinkID: linkID, Action: ActionHardDeleted}}); err != nil {
			return err
		}

		// Index removal failing leaves an orphaned entry pointing at a
		// response that no longer exists; the next lookup reports 404.
		if err := s.store.Delete(ctx, linkIndexKey(linkID)); err != nil {
			s.logger.Warn(ctx, "link index delete failed", "linkId", linkID, "error", err.Error())
		}
		return nil
	}

	resp.Active = false
	resp.UpdatedAt = now
	return s.commit(ctx, docKey, doc, now, []LinkChange{{LinkID: linkID, Action: ActionSoftDeleted}})
}

// Anchor is the canonical resolver URI for a document.
func (s *Service) Anchor(doc *Document) string {
	return s.resolverDomain + "/" + doc.Namespace + "/" + doc.IdentificationKeyType +
		"/" + doc.IdentificationKey + doc.QualifierPath
}

// commit finishes a mutation: recomputes the default flags, bumps the
// version, prepends the history entry, rebuilds the linkset and persists.
func (s *Service) commit(ctx context.Context, docKey string, doc *Document, now time.Time, changes []LinkChange) error {
	RecomputeDefaults(doc.Responses)

	doc.Version++
	doc.UpdatedAt = now
	doc.VersionHistory = append([]VersionHistoryEntry{{
		Version:   doc.Version,
		UpdatedAt: now,
		Changes:   changes,
	}}, doc.VersionHistory...)

	active := make([]Response, 0, len(doc.Responses))
	for _, r := range doc.Responses {
		if r.Active {
			active = append(active, r)
		}
	}
	doc.Linkset, _ = BuildLinkset(s.Anchor(doc), doc, active)

	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, docKey, raw); err != nil {
		return err
	}
	s.logger.Debug(ctx, "document committed", "key", docKey, "version", doc.Version)
	return nil
}

func linkIndexKey(linkID string) string {
	return linkIndexPrefix + linkID
}

// writeIndex records the linkId→document mapping. Failure is logged and
// swallowed: the document was already committed and stays authoritative.
func (s *Service) writeIndex(ctx context.Context, linkID, docKey string) {
	raw, err := json.Marshal(LinkIndexEntry{DocumentPath: docKey})
	if err == nil {
		err = s.store.Save(ctx, linkIndexKey(linkID), raw)
	}
	if err != nil {
		s.logger.Warn(ctx, "link index write failed", "linkId", linkID, "error", err.Error())
	}
}

// loadByLinkID resolves a linkId to its owning document through the index.
func (s *Service) loadByLinkID(ctx context.Context, linkID string) (string, *Document, error) {
	raw, err := s.store.One(ctx, linkIndexKey(linkID))
	if errors.Is(err, common.ErrNotFound) {
		return "", nil, fmt.Errorf("link %q: %w", linkID, common.ErrNotFound)
	}
	if err != nil {
		return "", nil, err
	}

	var entry LinkIndexEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return "", nil, fmt.Errorf("decoding link index entry: %w", err)
	}

	doc, err := s.loadDocument(ctx, entry.DocumentPath)
	if err != nil {
		return "", nil, err
	}
	return entry.DocumentPath, doc, nil
}

// loadDocument reads and decodes one document, normalising legacy data on
// the way. A changed document is persisted back fire-and-forget: the read
// succeeds even when the write-back fails.
func (s *Service) loadDocument(ctx context.Context, docKey string) (*Document, error) {
	raw, err := s.store.One(ctx, docKey)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding document %q: %w", docKey, err)
	}

	assigned, changed := Normalize(&doc, timeNow().UTC(), newLinkID)
	if changed {
		if upgraded, err := json.Marshal(&doc); err == nil {
			if err := s.store.Save(ctx, docKey, upgraded); err != nil {
				s.logger.Warn(ctx, "legacy document write-back failed", "key", docKey, "error", err.Error())
			}
		}
		for _, id := range assigned {
			s.writeIndex(ctx, id, docKey)
		}
	}

	return &doc, nil
}
