package model

import (
	"github.com/invopop/jsonschema"
)

// NewReflector returns the reflector every schema in this module is built
// with: flat object schemas, required lists taken from `jsonschema:"required"`
// tags, and no $defs indirection.
func NewReflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{
		ExpandedStruct:             true,
		DoNotReference:             true,
		AllowAdditionalProperties:  true,
		RequiredFromJSONSchemaTags: true,
	}
}

// Reflect builds the schema for v and marks it open to undeclared keys.
func Reflect(v any) *jsonschema.Schema {
	s := NewReflector().Reflect(v)
	s.Definitions = nil
	s.AdditionalProperties = jsonschema.TrueSchema
	return s
}

// inline is Reflect without the document-level keywords, for nesting inside
// another schema.
func inline(v any) *jsonschema.Schema {
	s := Reflect(v)
	s.Version = ""
	s.ID = ""
	return s
}
