package identity

import (
	apperrors "pipid/pkg/errors"
)

// Normalize returns a fresh document in which every canonical preference
// sub-section exists and every schema-declared default is filled in.
// Caller-supplied values always win over defaults, unknown keys pass
// through untouched, and behaviors is copied as-is (or set to an empty
// object when absent). Normalize is idempotent.
//
// The only failure is a non-object input; malformed sub-trees are passed
// through unchanged since enforcement is the validator's job.
func Normalize(doc any) (Document, error) {
	obj, ok := asObject(doc)
	if !ok {
		return nil, apperrors.InvalidInput("identity must be a JSON object")
	}

	out := make(Document, len(obj)+2)
	for key, value := range obj {
		if key == "preferences" || key == "behaviors" {
			continue
		}
		out[key] = value
	}

	// A preferences value that is not an object is treated as absent: the
	// canonical sections still come out fully defaulted.
	prefs, _ := asObject(obj["preferences"])

	outPrefs := make(map[string]any, len(preferenceSections)+len(prefs))
	for _, section := range preferenceSections {
		raw, present := prefs[section.name]
		if !present {
			outPrefs[section.name] = overlayDefaults(section.fields, nil)
			continue
		}
		existing, ok := asObject(raw)
		if !ok {
			// Malformed section: pass through untouched.
			outPrefs[section.name] = raw
			continue
		}
		outPrefs[section.name] = overlayDefaults(section.fields, existing)
	}

	// Custom sub-sections pass through unchanged for forward compatibility.
	for key, value := range prefs {
		if !isCanonicalSection(key) {
			outPrefs[key] = value
		}
	}
	out["preferences"] = outPrefs

	if behaviors, ok := asObject(obj["behaviors"]); ok {
		out["behaviors"] = copyObject(behaviors)
	} else if raw, present := obj["behaviors"]; present {
		out["behaviors"] = raw
	} else {
		out["behaviors"] = map[string]any{}
	}

	return out, nil
}

// overlayDefaults applies "caller value if present else default" in the
// declared field order, then carries over any caller keys the schema does
// not know about.
func overlayDefaults(specs []fieldSpec, existing map[string]any) map[string]any {
	merged := make(map[string]any, len(specs)+len(existing))
	for _, spec := range specs {
		if spec.def == nil {
			continue
		}
		merged[spec.name] = defaultValue(spec.def)
	}
	for key, value := range existing {
		merged[key] = value
	}
	return merged
}

// defaultValue clones list-valued defaults so a caller mutating the output
// cannot corrupt the schema table.
func defaultValue(def any) any {
	if list, ok := def.([]any); ok {
		return append([]any(nil), list...)
	}
	return def
}

func copyObject(obj map[string]any) map[string]any {
	out := make(map[string]any, len(obj))
	for key, value := range obj {
		out[key] = value
	}
	return out
}
