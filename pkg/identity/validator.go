package identity

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Result is the outcome of validating a candidate identity document.
// Errors is ordered by the fixed checking sequence and empty iff Valid.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate checks doc against the identity schema. It accepts any decoded
// JSON value and never panics: a non-object input is itself a validation
// failure. All applicable checks run; errors accumulate in checking order.
func (v *Validator) Validate(doc any) Result {
	obj, ok := asObject(doc)
	if !ok {
		return Result{Valid: false, Errors: []string{"Identity must be a dictionary"}}
	}

	errs := []string{}
	errs = v.checkVersion(obj, errs)
	errs = v.checkMetadata(obj, errs)
	if raw, present := obj["preferences"]; present {
		errs = v.checkPreferences(raw, errs)
	}
	if raw, present := obj["behaviors"]; present {
		errs = v.checkBehaviors(raw, errs)
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

func (v *Validator) checkVersion(obj map[string]any, errs []string) []string {
	raw, present := obj["version"]
	if !present {
		return append(errs, "Missing required field: version")
	}
	s, ok := raw.(string)
	if !ok {
		return append(errs, `Field "version" must be a string`)
	}
	if !versionPattern.MatchString(s) {
		return append(errs, `Field "version" must follow semantic versioning (e.g., "0.1.0")`)
	}
	return errs
}

func (v *Validator) checkMetadata(obj map[string]any, errs []string) []string {
	raw, present := obj["metadata"]
	if !present {
		return append(errs, "Missing required field: metadata")
	}
	meta, ok := asObject(raw)
	if !ok {
		return append(errs, `Field "metadata" must be a dictionary`)
	}

	// created and updated are checked independently; both errors surface
	// when both are bad.
	for _, field := range []string{"created", "updated"} {
		value, present := meta[field]
		if !present {
			errs = append(errs, "Missing required field: metadata."+field)
		} else if !isISO8601DateTime(value) {
			errs = append(errs, fmt.Sprintf("Field %q must be a valid ISO 8601 date-time", "metadata."+field))
		}
	}
	return errs
}

func (v *Validator) checkPreferences(raw any, errs []string) []string {
	prefs, ok := asObject(raw)
	if !ok {
		return append(errs, "Preferences must be a dictionary")
	}

	for _, section := range preferenceSections {
		sectionRaw, present := prefs[section.name]
		if !present {
			continue
		}
		fields, ok := asObject(sectionRaw)
		if !ok {
			errs = append(errs, fmt.Sprintf("Field %q must be a dictionary", "preferences."+section.name))
			continue
		}
		errs = v.checkFields(section.name, section.fields, fields, errs)
	}
	return errs
}

func (v *Validator) checkBehaviors(raw any, errs []string) []string {
	behaviors, ok := asObject(raw)
	if !ok {
		return append(errs, "Behaviors must be a dictionary")
	}
	return v.checkFields("behaviors", behaviorFields, behaviors, errs)
}

// checkFields validates the declared fields of one section. Unknown keys
// are ignored for forward compatibility; invalidity of one field never
// suppresses checks on its siblings.
func (v *Validator) checkFields(prefix string, specs []fieldSpec, fields map[string]any, errs []string) []string {
	for _, spec := range specs {
		value, present := fields[spec.name]
		if !present {
			continue
		}
		path := prefix + "." + spec.name

		switch spec.kind {
		case kindEnum:
			if !v.isAllowed(value, spec.values) {
				errs = append(errs, fmt.Sprintf("Invalid %s value", path))
			}
		case kindBool:
			if _, ok := value.(bool); !ok {
				errs = append(errs, fmt.Sprintf("Invalid %s value", path))
			}
		case kindPattern:
			s, ok := value.(string)
			if !ok || !spec.pattern.MatchString(s) {
				errs = append(errs, fmt.Sprintf("Invalid %s format (expected %s)", path, spec.hint))
			}
		case kindNumber:
			if !isNonNegativeNumber(value) {
				errs = append(errs, fmt.Sprintf("%s must be a non-negative number", path))
			}
		case kindEnumList:
			errs = v.checkEnumList(path, spec, value, errs)
		case kindFree:
			// free-form, nothing to check
		}
	}
	return errs
}

// checkEnumList emits a single aggregate error listing every disallowed
// entry, not one error per entry.
func (v *Validator) checkEnumList(path string, spec fieldSpec, value any, errs []string) []string {
	list, ok := value.([]any)
	if !ok {
		return append(errs, path+" must be a list")
	}

	var invalid []string
	for _, entry := range list {
		if !v.isAllowed(entry, spec.values) {
			invalid = append(invalid, fmt.Sprint(entry))
		}
	}
	if len(invalid) > 0 {
		errs = append(errs, fmt.Sprintf("Invalid %s: %s", spec.hint, strings.Join(invalid, ", ")))
	}
	return errs
}

func (v *Validator) isAllowed(value any, allowed string) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	return v.validate.Var(s, "oneof="+allowed) == nil
}

// isNonNegativeNumber checks the value's type strictly; booleans are not
// numbers even where JSON decoders treat them loosely.
func isNonNegativeNumber(value any) bool {
	switch n := value.(type) {
	case float64:
		return n >= 0
	case int:
		return n >= 0
	case int64:
		return n >= 0
	case json.Number:
		f, err := n.Float64()
		return err == nil && f >= 0
	}
	return false
}

// dateTimeLayouts accept a literal Z designator, a numeric offset (with or
// without a colon) or no offset at all. time.Parse tolerates fractional
// seconds after the seconds field even when the layout omits them.
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04",
}

// isISO8601DateTime requires a date-time, not a bare date: the literal T
// separator must be present even when the string would otherwise parse.
func isISO8601DateTime(value any) bool {
	s, ok := value.(string)
	if !ok || !strings.Contains(s, "T") {
		return false
	}
	for _, layout := range dateTimeLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
