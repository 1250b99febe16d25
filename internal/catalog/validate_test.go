package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gtinSet() []ApplicationIdentifier {
	return []ApplicationIdentifier{
		{AICode: "01", Shortcode: "gtin", Type: TypeIdentifier, Regex: `^\d{8,14}$`, QualifierAICodes: []string{"10", "21"}},
		{AICode: "10", Shortcode: "lot", Type: TypeQualifier, Regex: `^.{1,20}$`},
		{AICode: "21", Shortcode: "ser", Type: TypeQualifier, Regex: `^.{1,20}$`},
		{AICode: "3103", Type: TypeDataAttribute, Regex: `^\d{6}$`},
	}
}

func TestValidateSet_ValidSet(t *testing.T) {
	assert.Empty(t, ValidateSet(gtinSet()))
}

func TestValidateSet_Errors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func([]ApplicationIdentifier) []ApplicationIdentifier
		wantKeys []string
	}{
		{
			name: "duplicate ai code",
			mutate: func(set []ApplicationIdentifier) []ApplicationIdentifier {
				return append(set, ApplicationIdentifier{AICode: "01", Type: TypeDataAttribute, Regex: `^x$`})
			},
			wantKeys: []string{"duplicate_identifier"},
		},
		{
			name: "duplicate shortcode",
			mutate: func(set []ApplicationIdentifier) []ApplicationIdentifier {
				return append(set, ApplicationIdentifier{AICode: "99", Shortcode: "lot", Type: TypeDataAttribute, Regex: `^x$`})
			},
			wantKeys: []string{"duplicate_identifier"},
		},
		{
			name: "broken regex",
			mutate: func(set []ApplicationIdentifier) []ApplicationIdentifier {
				set[0].Regex = `([`
				return set
			},
			wantKeys: []string{"invalid_regex"},
		},
		{
			name: "qualifier reference to missing entry",
			mutate: func(set []ApplicationIdentifier) []ApplicationIdentifier {
				set[0].QualifierAICodes = append(set[0].QualifierAICodes, "22")
				return set
			},
			wantKeys: []string{"qualifier_not_found"},
		},
		{
			name: "qualifier with its own qualifiers",
			mutate: func(set []ApplicationIdentifier) []ApplicationIdentifier {
				set[1].QualifierAICodes = []string{"21"}
				return set
			},
			wantKeys: []string{"qualifier_must_not_have_qualifiers"},
		},
		{
			name: "orphan qualifier",
			mutate: func(set []ApplicationIdentifier) []ApplicationIdentifier {
				set[0].QualifierAICodes = []string{"10"}
				return set
			},
			wantKeys: []string{"qualifier_not_part_of_primary"},
		},
		{
			name: "data attribute with qualifiers",
			mutate: func(set []ApplicationIdentifier) []ApplicationIdentifier {
				set[3].QualifierAICodes = []string{"10"}
				return set
			},
			wantKeys: []string{"data_attribute_must_not_have_qualifiers"},
		},
		{
			name: "unknown type",
			mutate: func(set []ApplicationIdentifier) []ApplicationIdentifier {
				set[3].Type = "X"
				return set
			},
			wantKeys: []string{"unknown_identifier_type"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			errs := ValidateSet(tc.mutate(gtinSet()))
			require.NotEmpty(t, errs)

			got := make([]string, len(errs))
			for i, e := range errs {
				got[i] = e.Key
			}
			for _, want := range tc.wantKeys {
				assert.Contains(t, got, want)
			}
		})
	}
}

func TestValidateSet_CollectsMultipleErrors(t *testing.T) {
	set := gtinSet()
	set[0].Regex = `([`
	set[3].QualifierAICodes = []string{"10"}

	errs := ValidateSet(set)
	assert.GreaterOrEqual(t, len(errs), 2)
}
