package validate

import (
	"encoding/json"

	"openscope-params/internal/jsondoc"
)

// CheckObject runs the shallow structural check of obj against schema:
// required keys must be present and non-null, and keys declared in
// properties with a "type" must match one of the listed types. Null always
// passes the type check. Undeclared keys are ignored.
func CheckObject(obj, schema *jsondoc.Object) error {
	if required, ok := schema.GetArray("required"); ok {
		for _, item := range required {
			key, ok := item.(string)
			if !ok {
				continue
			}
			if v, present := obj.Get(key); !present || v == nil {
				return &Error{Key: key, Reason: "missing required key"}
			}
		}
	}

	props, ok := schema.GetObject("properties")
	if !ok {
		return nil
	}
	var failure error
	props.Range(func(key string, rules any) bool {
		rulesObj, ok := rules.(*jsondoc.Object)
		if !ok {
			return true
		}
		value, present := obj.Get(key)
		if !present || value == nil {
			return true
		}
		expected := declaredTypes(rulesObj)
		if len(expected) == 0 {
			return true
		}
		for _, t := range expected {
			if matchesType(t, value) {
				return true
			}
		}
		failure = &Error{Key: key, Reason: "type mismatch", Expected: expected, Actual: jsondoc.TypeName(value)}
		return false
	})
	return failure
}

func declaredTypes(rules *jsondoc.Object) []string {
	raw, ok := rules.Get("type")
	if !ok {
		return nil
	}
	switch t := raw.(type) {
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func matchesType(t string, v any) bool {
	switch t {
	case "string":
		_, ok := v.(string)
		return ok
	case "integer":
		n, ok := v.(json.Number)
		return ok && jsondoc.IsInteger(n)
	case "number":
		_, ok := v.(json.Number)
		return ok
	case "object":
		_, ok := v.(*jsondoc.Object)
		return ok
	case "array":
		_, ok := v.([]any)
		return ok
	case "boolean":
		_, ok := v.(bool)
		return ok
	case "null":
		return v == nil
	default:
		return false
	}
}
