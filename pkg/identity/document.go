// Package identity implements the PIP identity document core: the schema
// tables, the validator that checks a decoded JSON value against them, and
// the normalizer that fills in declared defaults.
//
// Both the validator and the normalizer are pure: they perform no I/O, hold
// no mutable state, and may be called concurrently. Fetching and decoding
// the document belongs to pkg/ingester.
package identity

// Document is a decoded PIP identity JSON object.
type Document map[string]any

// Preferences returns the preferences sub-tree, or an empty map when the
// section is absent or not an object.
func (d Document) Preferences() map[string]any {
	if prefs, ok := asObject(d["preferences"]); ok {
		return prefs
	}
	return map[string]any{}
}

// Behaviors returns the behaviors sub-tree, or an empty map when the
// section is absent or not an object.
func (d Document) Behaviors() map[string]any {
	if behaviors, ok := asObject(d["behaviors"]); ok {
		return behaviors
	}
	return map[string]any{}
}

func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case Document:
		return m, true
	case map[string]any:
		return m, true
	}
	return nil, false
}
