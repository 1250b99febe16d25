// Package resolve selects the single best link response for an inbound
// resolution request using multi-dimension content negotiation, or assembles
// the full linkset view when the caller asks for all links.
package resolve

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/untpkit/resolver/internal/common"
	"github.com/untpkit/resolver/internal/server/links"
)

// LinkTypeAll requests the linkset view instead of a single target.
const LinkTypeAll = "all"

// ErrCannotResolve is returned when no response survives negotiation.
var ErrCannotResolve = fmt.Errorf("cannot resolve link resolver: %w", common.ErrNotFound)

// Request carries the negotiation signals of one resolution request.
// DecryptionKey never influences selection; it is forwarded on the redirect
// when the matched response asks for query-string forwarding.
type Request struct {
	LinkType       string
	Context        string
	Accept         string
	AcceptLanguage string
	AccessRole     string
}

// Linkset is the "all links" view of a document.
type Linkset struct {
	Body       []map[string]any
	HeaderLink []links.HeaderLink
}

// One selects the single best response from the document. The narrowing
// order is fixed: active → access role → link type → language → media type →
// context; each negotiated dimension falls back to the responses holding the
// matching default flag, then to every remaining candidate. Ties resolve to
// the first remaining response in array order.
func One(doc *links.Document, req *Request) (*links.Response, error) {
	candidates := visible(doc, req.AccessRole)

	candidates = narrowByLinkType(candidates, req.LinkType)
	candidates = narrowByLanguage(candidates, req.AcceptLanguage)
	candidates = narrowByMimeType(candidates, req.Accept)
	candidates = narrowByContext(candidates, req.Context)

	if len(candidates) == 0 {
		return nil, ErrCannotResolve
	}
	out := *candidates[0]
	return &out, nil
}

// All builds the linkset view: every active, access-role-visible response
// grouped by link type, plus superseded targets and the owl:sameAs anchor.
func All(doc *links.Document, anchor string, req *Request) *Linkset {
	vis := visible(doc, req.AccessRole)

	responses := make([]links.Response, len(vis))
	for i, r := range vis {
		responses[i] = *r
	}

	body, header := links.BuildLinkset(anchor, doc, responses)
	return &Linkset{Body: body, HeaderLink: header}
}

// visible filters to active responses the requested role may see. A
// response with no declared roles is visible to everyone, including callers
// that supplied no role.
func visible(doc *links.Document, accessRole string) []*links.Response {
	var out []*links.Response
	for i := range doc.Responses {
		r := &doc.Responses[i]
		if !r.Active {
			continue
		}
		if len(r.AccessRole) == 0 {
			out = append(out, r)
			continue
		}
		if accessRole != "" && roleListed(r.AccessRole, accessRole) {
			out = append(out, r)
		}
	}
	return out
}

// roleListed matches case-insensitively and accepts the bare role name as
// well as a fully-qualified role URI on either side.
func roleListed(declared []string, requested string) bool {
	req := strings.ToLower(requested)
	for _, d := range declared {
		dl := strings.ToLower(d)
		if dl == req || strings.HasSuffix(dl, "/"+req) || strings.HasSuffix(req, "/"+dl) {
			return true
		}
	}
	return false
}

func narrowByLinkType(candidates []*links.Response, linkType string) []*links.Response {
	if linkType != "" {
		var out []*links.Response
		for _, r := range candidates {
			if r.LinkType == linkType {
				out = append(out, r)
			}
		}
		// An explicit type the document cannot serve is a miss, not a
		// fallback to the default.
		return out
	}

	var defaults []*links.Response
	for _, r := range candidates {
		if r.DefaultLinkType {
			defaults = append(defaults, r)
		}
	}
	if len(defaults) > 0 {
		return defaults
	}
	return candidates
}

func narrowByLanguage(candidates []*links.Response, acceptLanguage string) []*links.Response {
	if len(candidates) == 0 {
		return candidates
	}

	if acceptLanguage != "" {
		desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
		if err == nil {
			for _, want := range desired {
				var out []*links.Response
				for _, r := range candidates {
					if languageMatches(want, r.IanaLanguage) {
						out = append(out, r)
					}
				}
				if len(out) > 0 {
					return out
				}
			}
		}
	}

	var defaults []*links.Response
	for _, r := range candidates {
		if r.DefaultIanaLanguage {
			defaults = append(defaults, r)
		}
	}
	if len(defaults) > 0 {
		return defaults
	}
	return candidates
}

// languageMatches implements language-range matching: an exact tag match or
// a shared base language ("en-US" accepts "en", and vice versa).
func languageMatches(want language.Tag, respLang string) bool {
	if respLang == "" {
		return false
	}
	got, err := language.Parse(respLang)
	if err != nil {
		return strings.EqualFold(want.String(), respLang)
	}
	if got == want {
		return true
	}
	wantBase, confW := want.Base()
	gotBase, confG := got.Base()
	return confW != language.No && confG != language.No && wantBase == gotBase
}

func narrowByMimeType(candidates []*links.Response, accept string) []*links.Response {
	if len(candidates) == 0 {
		return candidates
	}

	if accept != "" {
		for _, r := range parseAccept(accept) {
			var out []*links.Response
			for _, c := range candidates {
				if c.MimeType != "" && r.matches(c.MimeType) {
					out = append(out, c)
				}
			}
			if len(out) > 0 {
				return out
			}
		}
	}

	var defaults []*links.Response
	for _, r := range candidates {
		if r.DefaultMimeType {
			defaults = append(defaults, r)
		}
	}
	if len(defaults) > 0 {
		return defaults
	}
	return candidates
}

func narrowByContext(candidates []*links.Response, context string) []*links.Response {
	if len(candidates) == 0 {
		return candidates
	}

	if context != "" {
		var out []*links.Response
		for _, r := range candidates {
			if strings.EqualFold(r.Context, context) {
				out = append(out, r)
			}
		}
		if len(out) > 0 {
			return out
		}
	}

	var defaults []*links.Response
	for _, r := range candidates {
		if r.DefaultContext {
			defaults = append(defaults, r)
		}
	}
	if len(defaults) > 0 {
		return defaults
	}
	return candidates
}
