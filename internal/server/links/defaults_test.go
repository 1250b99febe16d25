package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func resp(linkType, lang, context string, active bool) Response {
	return Response{
		LinkID:       linkType + "/" + lang + "/" + context,
		TargetURL:    "https://example.com/" + linkType,
		LinkType:     linkType,
		IanaLanguage: lang,
		Context:      context,
		Active:       active,
	}
}

func countFlag(responses []Response, get func(*Response) bool) int {
	n := 0
	for i := range responses {
		if get(&responses[i]) {
			n++
		}
	}
	return n
}

func TestRecomputeDefaultsPromotesFirstActive(t *testing.T) {
	responses := []Response{
		resp("gs1:pip", "en", "us", false),
		resp("gs1:pip", "en", "us", true),
		resp("gs1:pip", "en", "us", true),
	}

	RecomputeDefaults(responses)

	assert.False(t, responses[0].DefaultLinkType)
	assert.True(t, responses[1].DefaultLinkType)
	assert.False(t, responses[2].DefaultLinkType)

	assert.True(t, responses[1].DefaultIanaLanguage)
	assert.True(t, responses[1].DefaultContext)
	assert.True(t, responses[1].DefaultMimeType)
}

func TestRecomputeDefaultsLastClaimantWins(t *testing.T) {
	responses := []Response{
		resp("gs1:pip", "en", "us", true),
		resp("gs1:epcis", "en", "us", true),
		resp("gs1:certs", "en", "us", true),
	}
	responses[0].DefaultLinkType = true
	responses[2].DefaultLinkType = true

	RecomputeDefaults(responses)

	assert.False(t, responses[0].DefaultLinkType)
	assert.False(t, responses[1].DefaultLinkType)
	assert.True(t, responses[2].DefaultLinkType)
	assert.Equal(t, 1, countFlag(responses, func(r *Response) bool { return r.DefaultLinkType }))
}

func TestRecomputeDefaultsClearsInactive(t *testing.T) {
	responses := []Response{
		resp("gs1:pip", "en", "us", false),
		resp("gs1:pip", "en", "us", true),
	}
	responses[0].DefaultLinkType = true
	responses[0].DefaultIanaLanguage = true
	responses[0].DefaultContext = true
	responses[0].DefaultMimeType = true

	RecomputeDefaults(responses)

	assert.False(t, responses[0].DefaultLinkType)
	assert.False(t, responses[0].DefaultIanaLanguage)
	assert.False(t, responses[0].DefaultContext)
	assert.False(t, responses[0].DefaultMimeType)

	// The surviving active response inherits the whole cascade.
	assert.True(t, responses[1].DefaultLinkType)
	assert.True(t, responses[1].DefaultIanaLanguage)
	assert.True(t, responses[1].DefaultContext)
	assert.True(t, responses[1].DefaultMimeType)
}

func TestRecomputeDefaultsScopedPerLinkType(t *testing.T) {
	responses := []Response{
		resp("gs1:pip", "en", "", true),
		resp("gs1:pip", "fr", "", true),
		resp("gs1:epcis", "de", "", true),
	}

	RecomputeDefaults(responses)

	// One language default per linkType.
	assert.True(t, responses[0].DefaultIanaLanguage)
	assert.False(t, responses[1].DefaultIanaLanguage)
	assert.True(t, responses[2].DefaultIanaLanguage)

	// Still a single document-wide linkType default.
	assert.Equal(t, 1, countFlag(responses, func(r *Response) bool { return r.DefaultLinkType }))
}

func TestRecomputeDefaultsLanguageCaseInsensitive(t *testing.T) {
	responses := []Response{
		resp("gs1:pip", "EN", "us", true),
		resp("gs1:pip", "en", "US", true),
	}
	responses[1].DefaultContext = true

	RecomputeDefaults(responses)

	// "EN"/"en" form one scope, so only the claimant keeps the flag.
	assert.False(t, responses[0].DefaultContext)
	assert.True(t, responses[1].DefaultContext)
}

func TestRecomputeDefaultsIdempotent(t *testing.T) {
	responses := []Response{
		resp("gs1:pip", "en", "us", true),
		resp("gs1:pip", "fr", "fr", true),
		resp("gs1:epcis", "en", "", false),
	}
	responses[1].DefaultLinkType = true

	RecomputeDefaults(responses)
	first := make([]Response, len(responses))
	copy(first, responses)

	RecomputeDefaults(responses)
	assert.Equal(t, first, responses)
}

func TestRecomputeDefaultsAllInactive(t *testing.T) {
	responses := []Response{
		resp("gs1:pip", "en", "us", false),
	}
	responses[0].DefaultLinkType = true

	RecomputeDefaults(responses)

	assert.False(t, responses[0].DefaultLinkType)
}
