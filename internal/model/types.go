package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
)

// Open carries the keys a parameter block sets beyond its declared fields.
// Every model embeds it; packs routinely carry launcher-specific extras.
type Open struct {
	Extra map[string]json.RawMessage `json:"-"`
}

func (o *Open) residual() *Open { return o }

// ExtraKeys returns the undeclared keys in sorted order.
func (o Open) ExtraKeys() []string {
	keys := make([]string, 0, len(o.Extra))
	for k := range o.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type openRecord interface {
	residual() *Open
}

// Decode unmarshals data into target and, when target embeds Open, records
// every key that no declared field claims.
func Decode(data []byte, target any) error {
	if err := json.Unmarshal(data, target); err != nil {
		return err
	}
	rec, ok := target.(openRecord)
	if !ok {
		return nil
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	known := declaredKeys(reflect.TypeOf(target))
	open := rec.residual()
	open.Extra = nil
	for k, v := range all {
		if _, ok := known[k]; ok {
			continue
		}
		if open.Extra == nil {
			open.Extra = make(map[string]json.RawMessage)
		}
		open.Extra[k] = v
	}
	return nil
}

func declaredKeys(t reflect.Type) map[string]struct{} {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	keys := make(map[string]struct{})
	if t.Kind() != reflect.Struct {
		return keys
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		name, _, _ := strings.Cut(tag, ",")
		if name == "-" {
			continue
		}
		if f.Anonymous && name == "" {
			for k := range declaredKeys(f.Type) {
				keys[k] = struct{}{}
			}
			continue
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		keys[name] = struct{}{}
	}
	return keys
}

func isNull(b []byte) bool {
	return string(bytes.TrimSpace(b)) == "null"
}

// StringOrList is a string, a list of strings, or unset.
type StringOrList struct {
	Values []string
	List   bool
}

func (s *StringOrList) UnmarshalJSON(b []byte) error {
	if isNull(b) {
		*s = StringOrList{}
		return nil
	}
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*s = StringOrList{Values: []string{one}}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err == nil {
		*s = StringOrList{Values: many, List: true}
		return nil
	}
	return fmt.Errorf("expected string or list of strings, got %s", b)
}

func (s StringOrList) MarshalJSON() ([]byte, error) {
	switch {
	case s.List:
		return json.Marshal(s.Values)
	case len(s.Values) == 1:
		return json.Marshal(s.Values[0])
	default:
		return []byte("null"), nil
	}
}

func (StringOrList) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{AnyOf: []*jsonschema.Schema{
		{Type: "string"},
		{Type: "array", Items: &jsonschema.Schema{Type: "string"}},
		{Type: "null"},
	}}
}

// StringOrInt is an identifier given either as text or as a whole number.
type StringOrInt struct {
	Text  string
	Int   int64
	IsInt bool
	Set   bool
}

func (s *StringOrInt) UnmarshalJSON(b []byte) error {
	if isNull(b) {
		*s = StringOrInt{}
		return nil
	}
	var text string
	if err := json.Unmarshal(b, &text); err == nil {
		*s = StringOrInt{Text: text, Set: true}
		return nil
	}
	var n int64
	if err := json.Unmarshal(b, &n); err == nil {
		*s = StringOrInt{Int: n, IsInt: true, Set: true}
		return nil
	}
	return fmt.Errorf("expected string or integer, got %s", b)
}

func (s StringOrInt) MarshalJSON() ([]byte, error) {
	switch {
	case !s.Set:
		return []byte("null"), nil
	case s.IsInt:
		return json.Marshal(s.Int)
	default:
		return json.Marshal(s.Text)
	}
}

func (s StringOrInt) String() string {
	switch {
	case !s.Set:
		return ""
	case s.IsInt:
		return fmt.Sprintf("%d", s.Int)
	default:
		return s.Text
	}
}

func (StringOrInt) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{AnyOf: []*jsonschema.Schema{
		{Type: "string"},
		{Type: "integer"},
	}}
}

// ProtocolID is one identifier or a list of identifiers.
type ProtocolID struct {
	Values []StringOrInt
	List   bool
}

func (p *ProtocolID) UnmarshalJSON(b []byte) error {
	if isNull(b) {
		*p = ProtocolID{}
		return nil
	}
	var one StringOrInt
	if err := json.Unmarshal(b, &one); err == nil {
		*p = ProtocolID{Values: []StringOrInt{one}}
		return nil
	}
	var many []StringOrInt
	if err := json.Unmarshal(b, &many); err == nil {
		*p = ProtocolID{Values: many, List: true}
		return nil
	}
	return fmt.Errorf("expected identifier or list of identifiers, got %s", b)
}

func (p ProtocolID) MarshalJSON() ([]byte, error) {
	switch {
	case p.List:
		return json.Marshal(p.Values)
	case len(p.Values) == 1:
		return json.Marshal(p.Values[0])
	default:
		return []byte("null"), nil
	}
}

func (ProtocolID) JSONSchema() *jsonschema.Schema {
	id := func() []*jsonschema.Schema {
		return []*jsonschema.Schema{{Type: "string"}, {Type: "integer"}}
	}
	return &jsonschema.Schema{AnyOf: []*jsonschema.Schema{
		{Type: "string"},
		{Type: "integer"},
		{Type: "array", Items: &jsonschema.Schema{AnyOf: id()}},
		{Type: "null"},
	}}
}
