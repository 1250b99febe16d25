// Package digitallink decomposes and rebuilds GS1 Digital Link identifier
// paths and validates them against a namespace's identifier catalog.
//
// A digital-link path has the shape
//
//	/{namespace}/{primaryAiOrShortcode}/{primaryValue}[/{qualifierAi}/{qualifierValue}]*
//
// where every qualifier is an AI-code (or shortcode) and value pair.
package digitallink

import (
	"strings"

	"github.com/untpkit/resolver/internal/catalog"
	"github.com/untpkit/resolver/internal/common"
)

// KV is one identifier component: an AI code or shortcode plus its value.
type KV struct {
	Token string
	Value string
}

// IdentifierParams is the structured form of a digital-link path or of a
// registration payload.
type IdentifierParams struct {
	Namespace   string
	Primary     KV
	Secondaries []KV
}

// ParseQualifierPath splits a "/q1/v1/q2/v2" qualifier path into pairs.
// An empty or "/" path yields no qualifiers. An odd number of segments is a
// validation error (invalid_request_data).
func ParseQualifierPath(path string) ([]KV, error) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil, nil
	}

	segments := strings.Split(trimmed, "/")
	if len(segments)%2 != 0 {
		return nil, common.NewValidationError([]common.FieldError{
			{Key: "invalid_request_data", Args: []any{path}},
		})
	}

	pairs := make([]KV, 0, len(segments)/2)
	for i := 0; i < len(segments); i += 2 {
		pairs = append(pairs, KV{Token: segments[i], Value: segments[i+1]})
	}
	return pairs, nil
}

// BuildQualifierPath is the inverse of ParseQualifierPath: "" for no
// qualifiers, else "/q1/v1/q2/v2".
func BuildQualifierPath(pairs []KV) string {
	if len(pairs) == 0 {
		return ""
	}
	var b strings.Builder
	for _, kv := range pairs {
		b.WriteString("/")
		b.WriteString(kv.Token)
		b.WriteString("/")
		b.WriteString(kv.Value)
	}
	return b.String()
}

// ParsePath decomposes a full digital-link path into identifier parameters.
func ParsePath(path string) (IdentifierParams, error) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) < 3 || segments[0] == "" {
		return IdentifierParams{}, common.NewValidationError([]common.FieldError{
			{Key: "invalid_request_data", Args: []any{path}},
		})
	}

	quals, err := ParseQualifierPath(strings.Join(segments[3:], "/"))
	if err != nil {
		return IdentifierParams{}, err
	}

	return IdentifierParams{
		Namespace:   segments[0],
		Primary:     KV{Token: segments[1], Value: segments[2]},
		Secondaries: quals,
	}, nil
}

// BuildPath renders identifier parameters back into a digital-link path.
// BuildPath(ParsePath(p)) == p for any well-formed path p.
func BuildPath(params IdentifierParams) string {
	return "/" + params.Namespace +
		"/" + params.Primary.Token +
		"/" + params.Primary.Value +
		BuildQualifierPath(params.Secondaries)
}

// DocumentKey is the canonical storage key for the document holding all
// responses of one identifier + qualifier-path combination.
func DocumentKey(namespace, aiCode, primaryValue, qualifierPath string) string {
	return "/" + namespace + "/" + aiCode + "/" + primaryValue + qualifierPath + ".json"
}

// CanonicalAICode maps a human-facing identifier token (AI code or
// shortcode) to its canonical AI code using the namespace catalog. The
// second return is false when the token matches no primary identifier.
func CanonicalAICode(ident *catalog.Identifier, token string) (string, bool) {
	primary := ident.Primary(token)
	if primary == nil {
		return "", false
	}
	return primary.AICode, true
}
