// Package i18n renders the machine keys produced by validation and the
// resolver into human-readable messages.
package i18n

import "fmt"

// Translator renders a machine key plus arguments into a message.
type Translator interface {
	Translate(key string, args ...any) string
}

// MapTranslator is a locale-table backed Translator. Unknown keys are
// returned verbatim so untranslated errors still reach the client.
type MapTranslator struct {
	messages map[string]string
}

// English is the default locale used by the server.
var English = map[string]string{
	"invalid_request_data":                     "Invalid request data: %v",
	"primary_identifier_not_found":             "Primary identifier %v is not registered for this namespace",
	"invalid_value":                            "Value %v does not match pattern %v",
	"qualifier_not_found":                      "Qualifier %v is not registered for this primary identifier",
	"duplicate_identifier":                     "Duplicate application identifier or shortcode %v",
	"invalid_regex":                            "Invalid regular expression %v",
	"qualifier_must_not_have_qualifiers":       "Qualifier %v must not declare its own qualifiers",
	"qualifier_not_part_of_primary":            "Qualifier %v is not referenced by any primary identifier",
	"data_attribute_must_not_have_qualifiers":  "Data attribute %v must not declare qualifiers",
	"unknown_identifier_type":                  "Unknown identifier type %v",
	"ai_code_not_found":                        "Application identifier %v not found",
	"invalid_namespace_prefix":                 "Unknown namespace prefix %v",
	"namespace_not_found":                      "Namespace %v is not registered",
	"link_id_not_found":                        "Link %v not found",
	"empty_update_body":                        "Update request contains no updatable fields",
	"duplicate_link":                           "A link with the same target, type, format, language and context already exists: %v",
	"cannot_resolve_link_resolver":             "Cannot resolve link resolver",
	"document_not_found":                       "No links registered for this identifier",
	"unauthorized":                             "Missing or invalid credentials",
	"internal_error":                           "Internal server error",
}

// NewMapTranslator builds a Translator over the given locale table.
func NewMapTranslator(messages map[string]string) *MapTranslator {
	return &MapTranslator{messages: messages}
}

func (t *MapTranslator) Translate(key string, args ...any) string {
	tmpl, ok := t.messages[key]
	if !ok {
		return key
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}
