package links

import "strings"

// The four default flags cascade from the widest scope to the narrowest:
//
//	defaultLinkType      one winner for the whole document
//	defaultIanaLanguage  one winner per linkType
//	defaultContext       one winner per (linkType, ianaLanguage)
//	defaultMimeType      one winner per (linkType, ianaLanguage, context)
//
// Language and context comparisons are case-insensitive.
type flagScope struct {
	key func(r *Response) string
	get func(r *Response) bool
	set func(r *Response, v bool)
}

var flagScopes = []flagScope{
	{
		key: func(r *Response) string { return "" },
		get: func(r *Response) bool { return r.DefaultLinkType },
		set: func(r *Response, v bool) { r.DefaultLinkType = v },
	},
	{
		key: func(r *Response) string { return r.LinkType },
		get: func(r *Response) bool { return r.DefaultIanaLanguage },
		set: func(r *Response, v bool) { r.DefaultIanaLanguage = v },
	},
	{
		key: func(r *Response) string {
			return r.LinkType + "\x00" + strings.ToLower(r.IanaLanguage)
		},
		get: func(r *Response) bool { return r.DefaultContext },
		set: func(r *Response, v bool) { r.DefaultContext = v },
	},
	{
		key: func(r *Response) string {
			return r.LinkType + "\x00" + strings.ToLower(r.IanaLanguage) + "\x00" + strings.ToLower(r.Context)
		},
		get: func(r *Response) bool { return r.DefaultMimeType },
		set: func(r *Response, v bool) { r.DefaultMimeType = v },
	},
}

// RecomputeDefaults re-establishes the per-scope invariant after any
// mutation: among active responses, exactly one per scope holds each flag.
// When several claim a flag the last in array order wins (later registration
// wins); when none claims it the first active response in the scope is
// promoted. Inactive responses never hold any flag. The recomputation is
// idempotent.
func RecomputeDefaults(responses []Response) {
	for i := range responses {
		if !responses[i].Active {
			responses[i].DefaultLinkType = false
			responses[i].DefaultIanaLanguage = false
			responses[i].DefaultContext = false
			responses[i].DefaultMimeType = false
		}
	}

	for _, scope := range flagScopes {
		recomputeScope(responses, scope)
	}
}

func recomputeScope(responses []Response, scope flagScope) {
	// Group active responses by scope key, preserving array order.
	groups := make(map[string][]*Response)
	var order []string

	for i := range responses {
		r := &responses[i]
		if !r.Active {
			continue
		}
		k := scope.key(r)
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], r)
	}

	for _, k := range order {
		group := groups[k]

		var lastClaimant *Response
		for _, r := range group {
			if scope.get(r) {
				lastClaimant = r
			}
		}

		if lastClaimant == nil {
			scope.set(group[0], true)
			continue
		}
		for _, r := range group {
			scope.set(r, r == lastClaimant)
		}
	}
}
