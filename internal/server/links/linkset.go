package links

import (
	"fmt"
	"strings"
)

// HeaderLink is one entry of the HTTP Link header, mirroring the linkset
// body in RFC 8288 form.
type HeaderLink struct {
	Href     string
	Rel      string
	Type     string
	Hreflang string
	Title    string
}

// linksetLink is one target inside a linkset relation array.
type linksetLink struct {
	Href     string   `json:"href"`
	Type     string   `json:"type,omitempty"`
	Hreflang []string `json:"hreflang,omitempty"`
	Title    string   `json:"title,omitempty"`
}

const relPredecessor = "predecessor-version"
const relSameAs = "owl:sameAs"

// BuildLinkset assembles the RFC 9264-style linkset for a document: the
// given responses grouped by linkType (array order preserved), superseded
// target URLs from the version history tagged predecessor-version, and a
// closing owl:sameAs entry naming the canonical resolver URI. The returned
// header links mirror the linkset entries in the same order.
//
// responses is passed separately from doc so the caller can restrict the
// view (active only, access-role filtered) without copying the document.
func BuildLinkset(anchor string, doc *Document, responses []Response) ([]map[string]any, []HeaderLink) {
	ctxObj := map[string]any{"anchor": anchor}
	if doc.ItemDescription != "" {
		ctxObj["itemDescription"] = doc.ItemDescription
	}

	var header []HeaderLink
	var relOrder []string
	byRel := make(map[string][]linksetLink)

	for i := range responses {
		r := &responses[i]
		if _, seen := byRel[r.LinkType]; !seen {
			relOrder = append(relOrder, r.LinkType)
		}
		link := linksetLink{
			Href:  r.TargetURL,
			Type:  r.MimeType,
			Title: r.Title,
		}
		if r.IanaLanguage != "" {
			link.Hreflang = []string{r.IanaLanguage}
		}
		byRel[r.LinkType] = append(byRel[r.LinkType], link)

		header = append(header, HeaderLink{
			Href:     r.TargetURL,
			Rel:      r.LinkType,
			Type:     r.MimeType,
			Hreflang: r.IanaLanguage,
			Title:    r.Title,
		})
	}

	for _, rel := range relOrder {
		ctxObj[rel] = byRel[rel]
	}

	// Superseded targets: a recorded previous targetUrl that differs from
	// the response's current one.
	var predecessors []linksetLink
	seen := make(map[string]bool)
	for _, entry := range doc.VersionHistory {
		for _, change := range entry.Changes {
			if change.PreviousTargetURL == nil {
				continue
			}
			prev := *change.PreviousTargetURL
			current := doc.Find(change.LinkID)
			if current != nil && current.TargetURL == prev {
				continue
			}
			if seen[prev] {
				continue
			}
			seen[prev] = true
			predecessors = append(predecessors, linksetLink{Href: prev})
			header = append(header, HeaderLink{Href: prev, Rel: relPredecessor})
		}
	}
	if len(predecessors) > 0 {
		ctxObj[relPredecessor] = predecessors
	}

	ctxObj[relSameAs] = []linksetLink{{Href: anchor}}
	header = append(header, HeaderLink{Href: anchor, Rel: relSameAs})

	return []map[string]any{ctxObj}, header
}

// FormatLinkHeader renders header links as an RFC 8288 Link header value.
func FormatLinkHeader(headerLinks []HeaderLink) string {
	parts := make([]string, 0, len(headerLinks))
	for _, l := range headerLinks {
		var b strings.Builder
		fmt.Fprintf(&b, "<%s>; rel=%q", l.Href, l.Rel)
		if l.Type != "" {
			fmt.Fprintf(&b, "; type=%q", l.Type)
		}
		if l.Hreflang != "" {
			fmt.Fprintf(&b, "; hreflang=%q", l.Hreflang)
		}
		if l.Title != "" {
			fmt.Fprintf(&b, "; title=%q", l.Title)
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, ", ")
}
