package identity

import "regexp"

type fieldKind uint8

const (
	kindEnum fieldKind = iota
	kindBool
	kindPattern
	kindNumber
	kindEnumList
	kindFree
)

// fieldSpec declares one schema field. Field order inside a section is the
// checking order and the default-overlay order, so it must stay stable.
type fieldSpec struct {
	name    string
	kind    fieldKind
	values  string         // space-separated allowed values for kindEnum/kindEnumList
	pattern *regexp.Regexp // kindPattern only
	hint    string         // expected-format note used in kindPattern/kindEnumList messages
	def     any            // nil when the schema declares no default
}

type sectionSpec struct {
	name   string
	fields []fieldSpec
}

var (
	versionPattern  = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
	languagePattern = regexp.MustCompile(`^[a-z]{2}(-[A-Z]{2})?$`)
	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)
)

// preferenceSections lists the canonical preference sub-sections in
// canonical order. Defaults here are part of the external contract;
// consumers rely on the exact values.
var preferenceSections = []sectionSpec{
	{name: "ui", fields: []fieldSpec{
		{name: "theme", kind: kindEnum, values: "light dark auto high-contrast", def: "auto"},
		{name: "density", kind: kindEnum, values: "compact comfortable spacious", def: "comfortable"},
		{name: "fontSize", kind: kindEnum, values: "small medium large xlarge", def: "medium"},
		{name: "colorBlindMode", kind: kindBool, def: false},
		{name: "reducedMotion", kind: kindBool, def: false},
	}},
	{name: "interaction", fields: []fieldSpec{
		{name: "tone", kind: kindEnum, values: "formal casual friendly professional minimal", def: "friendly"},
		{name: "verbosity", kind: kindEnum, values: "minimal moderate detailed verbose", def: "moderate"},
		{name: "confirmationStyle", kind: kindEnum, values: "always destructive-only never", def: "destructive-only"},
		{name: "keyboardShortcuts", kind: kindBool, def: true},
	}},
	{name: "automation", fields: []fieldSpec{
		{name: "level", kind: kindEnum, values: "none suggestions auto-approve-safe aggressive", def: "suggestions"},
		{name: "aiSuggestions", kind: kindBool, def: true},
		{name: "autoSave", kind: kindBool, def: true},
		{name: "predictiveActions", kind: kindBool, def: false},
		{name: "maxAutomationScope", kind: kindEnum, values: "local session account global", def: "session"},
	}},
	{name: "notifications", fields: []fieldSpec{
		{name: "enabled", kind: kindBool, def: true},
		{name: "frequency", kind: kindEnum, values: "realtime batched digest off", def: "batched"},
		{name: "channels", kind: kindEnumList, values: "in-app email push sms", hint: "notification channels", def: []any{"in-app"}},
	}},
	{name: "content", fields: []fieldSpec{
		{name: "language", kind: kindPattern, pattern: languagePattern, hint: "ISO 639-1", def: "en"},
		{name: "dateFormat", kind: kindEnum, values: "ISO US EU relative", def: "ISO"},
		{name: "timeFormat", kind: kindEnum, values: "12h 24h", def: "24h"},
		{name: "currency", kind: kindPattern, pattern: currencyPattern, hint: "ISO 4217", def: "USD"},
		{name: "contentFilter", kind: kindFree, def: "moderate"},
	}},
	{name: "privacy", fields: []fieldSpec{
		{name: "dataSharing", kind: kindEnum, values: "none anonymized full", def: "anonymized"},
		{name: "analytics", kind: kindBool, def: true},
		{name: "personalization", kind: kindBool, def: true},
	}},
	{name: "accessibility", fields: []fieldSpec{
		{name: "screenReader", kind: kindBool, def: false},
		{name: "highContrast", kind: kindBool, def: false},
		{name: "focusIndicators", kind: kindEnum, values: "minimal standard enhanced", def: "standard"},
	}},
	{name: "risk", fields: []fieldSpec{
		{name: "tolerance", kind: kindEnum, values: "conservative moderate aggressive", def: "moderate"},
		{name: "maxTransactionAmount", kind: kindNumber},
		{name: "requireConfirmation", kind: kindBool, def: true},
	}},
}

// behaviorFields declare no defaults; absence is never an error.
var behaviorFields = []fieldSpec{
	{name: "workflow", kind: kindEnum, values: "linear exploratory task-focused multi-tasking"},
	{name: "learningStyle", kind: kindEnum, values: "tutorial examples trial-and-error documentation"},
	{name: "decisionSpeed", kind: kindEnum, values: "deliberate balanced quick"},
}

func isCanonicalSection(name string) bool {
	for _, section := range preferenceSections {
		if section.name == name {
			return true
		}
	}
	return false
}
