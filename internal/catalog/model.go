// Package catalog manages the per-namespace application identifier catalog:
// which primary keys, qualifiers and data attributes a namespace accepts,
// and the value pattern for each.
package catalog

// Identifier entry types.
const (
	TypeIdentifier    = "I" // primary identification key
	TypeQualifier     = "Q" // key qualifier, always attached to a primary
	TypeDataAttribute = "D" // plain data attribute, never qualified
)

// ApplicationIdentifier describes one GS1 application identifier accepted by
// a namespace.
type ApplicationIdentifier struct {
	AICode           string   `json:"applicationIdentifier"`
	Shortcode        string   `json:"shortcode,omitempty"`
	Type             string   `json:"type"`
	Title            string   `json:"title,omitempty"`
	Regex            string   `json:"regex"`
	QualifierAICodes []string `json:"qualifiers,omitempty"`
}

// Identifier is the catalog entry for one namespace.
type Identifier struct {
	Namespace              string                  `json:"namespace"`
	ApplicationIdentifiers []ApplicationIdentifier `json:"applicationIdentifiers"`
}

// Primary returns the type-I entry matching token by AI code or shortcode,
// or nil when no primary matches.
func (id *Identifier) Primary(token string) *ApplicationIdentifier {
	return id.find(token, TypeIdentifier)
}

// Qualifier returns the type-Q entry matching token by AI code or shortcode,
// or nil when no qualifier matches.
func (id *Identifier) Qualifier(token string) *ApplicationIdentifier {
	return id.find(token, TypeQualifier)
}

func (id *Identifier) find(token, aiType string) *ApplicationIdentifier {
	for i := range id.ApplicationIdentifiers {
		ai := &id.ApplicationIdentifiers[i]
		if ai.Type != aiType {
			continue
		}
		if ai.AICode == token || (ai.Shortcode != "" && ai.Shortcode == token) {
			return ai
		}
	}
	return nil
}

// DeclaresQualifier reports whether the primary's qualifier list contains
// the given qualifier AI code.
func (ai *ApplicationIdentifier) DeclaresQualifier(aiCode string) bool {
	for _, q := range ai.QualifierAICodes {
		if q == aiCode {
			return true
		}
	}
	return false
}
