package digitallink

import (
	"regexp"

	"github.com/untpkit/resolver/internal/catalog"
	"github.com/untpkit/resolver/internal/common"
)

// Validate checks identifier parameters against the namespace's catalog
// entry and returns every problem found.
//
// An unknown primary identifier short-circuits: no further checks run,
// because the qualifier rules depend on the matched primary. All other
// errors are accumulated.
func Validate(params IdentifierParams, ident *catalog.Identifier) []common.FieldError {
	primary := ident.Primary(params.Primary.Token)
	if primary == nil {
		return []common.FieldError{
			{Key: "primary_identifier_not_found", Args: []any{params.Primary.Token}},
		}
	}

	var errs []common.FieldError

	if !matchValue(primary.Regex, params.Primary.Value) {
		errs = append(errs, common.FieldError{
			Key:  "invalid_value",
			Args: []any{params.Primary.Value, primary.Regex},
		})
	}

	for _, sec := range params.Secondaries {
		qualifier := ident.Qualifier(sec.Token)
		// A qualifier is only valid for this primary when the primary
		// declares it; an undeclared qualifier is treated the same as an
		// unknown one.
		if qualifier == nil || !primary.DeclaresQualifier(qualifier.AICode) {
			errs = append(errs, common.FieldError{
				Key:  "qualifier_not_found",
				Args: []any{sec.Token},
			})
			continue
		}
		if !matchValue(qualifier.Regex, sec.Value) {
			errs = append(errs, common.FieldError{
				Key:  "invalid_value",
				Args: []any{sec.Value, qualifier.Regex},
			})
		}
	}

	return errs
}

func matchValue(pattern, value string) bool {
	re, err := regexp.Compile(pattern)
	if err != nil {
		// Catalog sets are validated on write; an uncompilable pattern here
		// means legacy data, treated as a mismatch.
		return false
	}
	return re.MatchString(value)
}
