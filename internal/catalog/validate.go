package catalog

import (
	"regexp"

	"github.com/untpkit/resolver/internal/common"
)

// ValidateSet checks a namespace's full application identifier set before it
// is persisted. All problems are collected and returned together.
//
// Rules:
//   - AI codes and shortcodes must be unique within the set.
//   - Every regex must compile.
//   - A primary's declared qualifiers must resolve to type-Q entries that
//     themselves declare no qualifiers.
//   - Every type-Q entry must be referenced by at least one primary.
//   - Type-D entries must declare zero qualifiers.
//   - Any other type value is rejected.
func ValidateSet(set []ApplicationIdentifier) []common.FieldError {
	var errs []common.FieldError

	seenAI := make(map[string]bool)
	seenShort := make(map[string]bool)
	byAICode := make(map[string]*ApplicationIdentifier, len(set))

	for i := range set {
		ai := &set[i]
		if seenAI[ai.AICode] {
			errs = append(errs, common.FieldError{Key: "duplicate_identifier", Args: []any{ai.AICode}})
		}
		seenAI[ai.AICode] = true
		if ai.Shortcode != "" {
			if seenShort[ai.Shortcode] {
				errs = append(errs, common.FieldError{Key: "duplicate_identifier", Args: []any{ai.Shortcode}})
			}
			seenShort[ai.Shortcode] = true
		}
		byAICode[ai.AICode] = ai

		if _, err := regexp.Compile(ai.Regex); err != nil {
			errs = append(errs, common.FieldError{Key: "invalid_regex", Args: []any{ai.Regex}})
		}
	}

	referenced := make(map[string]bool)

	for i := range set {
		ai := &set[i]
		switch ai.Type {
		case TypeIdentifier:
			for _, qCode := range ai.QualifierAICodes {
				q, ok := byAICode[qCode]
				if !ok || q.Type != TypeQualifier {
					errs = append(errs, common.FieldError{Key: "qualifier_not_found", Args: []any{qCode}})
					continue
				}
				referenced[qCode] = true
				if len(q.QualifierAICodes) > 0 {
					errs = append(errs, common.FieldError{Key: "qualifier_must_not_have_qualifiers", Args: []any{qCode}})
				}
			}
		case TypeQualifier:
			// Checked below once all references are known.
		case TypeDataAttribute:
			if len(ai.QualifierAICodes) > 0 {
				errs = append(errs, common.FieldError{Key: "data_attribute_must_not_have_qualifiers", Args: []any{ai.AICode}})
			}
		default:
			errs = append(errs, common.FieldError{Key: "unknown_identifier_type", Args: []any{ai.Type}})
		}
	}

	for i := range set {
		ai := &set[i]
		if ai.Type == TypeQualifier && !referenced[ai.AICode] {
			errs = append(errs, common.FieldError{Key: "qualifier_not_part_of_primary", Args: []any{ai.AICode}})
		}
	}

	return errs
}
