package identity

import (
	"strings"
	"testing"
)

func validDocument() map[string]any {
	return map[string]any{
		"version": "0.1.0",
		"metadata": map[string]any{
			"created": "2024-01-01T00:00:00Z",
			"updated": "2024-01-01T00:00:00Z",
		},
	}
}

func TestValidate_NonObjectInput(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name string
		doc  any
	}{
		{name: "nil", doc: nil},
		{name: "string", doc: "not an identity"},
		{name: "number", doc: 42.0},
		{name: "list", doc: []any{"a", "b"}},
		{name: "bool", doc: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.Validate(tt.doc)
			if result.Valid {
				t.Fatalf("Validate(%v) should be invalid", tt.doc)
			}
			if len(result.Errors) != 1 || result.Errors[0] != "Identity must be a dictionary" {
				t.Errorf("Validate(%v) errors = %v, want single dictionary error", tt.doc, result.Errors)
			}
		})
	}
}

func TestValidate_ValidDocument(t *testing.T) {
	v := NewValidator()

	result := v.Validate(validDocument())
	if !result.Valid {
		t.Fatalf("expected valid document, got errors: %v", result.Errors)
	}
	if len(result.Errors) != 0 {
		t.Errorf("expected empty error list, got %v", result.Errors)
	}
}

func TestValidate_Version(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name      string
		version   any
		omit      bool
		wantError string
	}{
		{name: "missing", omit: true, wantError: "Missing required field: version"},
		{name: "non-string", version: 1.0, wantError: `Field "version" must be a string`},
		{name: "no patch component", version: "1.0", wantError: `Field "version" must follow semantic versioning (e.g., "0.1.0")`},
		{name: "prefixed", version: "v1.0.0", wantError: `Field "version" must follow semantic versioning (e.g., "0.1.0")`},
		{name: "trailing junk", version: "1.0.0-beta", wantError: `Field "version" must follow semantic versioning (e.g., "0.1.0")`},
		{name: "minimal", version: "0.1.0"},
		{name: "large components", version: "12.340.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDocument()
			if tt.omit {
				delete(doc, "version")
			} else {
				doc["version"] = tt.version
			}

			result := v.Validate(doc)
			if tt.wantError == "" {
				if !result.Valid {
					t.Fatalf("expected valid, got errors: %v", result.Errors)
				}
				return
			}
			if result.Valid {
				t.Fatalf("expected invalid document")
			}
			if len(result.Errors) != 1 || result.Errors[0] != tt.wantError {
				t.Errorf("errors = %v, want exactly [%q]", result.Errors, tt.wantError)
			}
		})
	}
}

func TestValidate_Metadata(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name       string
		metadata   any
		omit       bool
		wantErrors []string
	}{
		{
			name:       "missing metadata",
			omit:       true,
			wantErrors: []string{"Missing required field: metadata"},
		},
		{
			name:       "metadata not an object",
			metadata:   "2024",
			wantErrors: []string{`Field "metadata" must be a dictionary`},
		},
		{
			name:     "missing created and updated",
			metadata: map[string]any{},
			wantErrors: []string{
				"Missing required field: metadata.created",
				"Missing required field: metadata.updated",
			},
		},
		{
			name: "both date-only reported independently",
			metadata: map[string]any{
				"created": "2024-01-01",
				"updated": "2024-01-01",
			},
			wantErrors: []string{
				`Field "metadata.created" must be a valid ISO 8601 date-time`,
				`Field "metadata.updated" must be a valid ISO 8601 date-time`,
			},
		},
		{
			name: "non-string created",
			metadata: map[string]any{
				"created": 1704067200.0,
				"updated": "2024-01-01T00:00:00Z",
			},
			wantErrors: []string{`Field "metadata.created" must be a valid ISO 8601 date-time`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDocument()
			if tt.omit {
				delete(doc, "metadata")
			} else {
				doc["metadata"] = tt.metadata
			}

			result := v.Validate(doc)
			if result.Valid {
				t.Fatalf("expected invalid document")
			}
			if len(result.Errors) != len(tt.wantErrors) {
				t.Fatalf("errors = %v, want %v", result.Errors, tt.wantErrors)
			}
			for i, want := range tt.wantErrors {
				if result.Errors[i] != want {
					t.Errorf("errors[%d] = %q, want %q", i, result.Errors[i], want)
				}
			}
		})
	}
}

func TestIsISO8601DateTime(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{name: "UTC designator", value: "2024-01-01T00:00:00Z", want: true},
		{name: "numeric offset", value: "2024-06-15T09:30:00+02:00", want: true},
		{name: "offset without colon", value: "2024-06-15T09:30:00+0200", want: true},
		{name: "fractional seconds", value: "2024-01-01T00:00:00.123Z", want: true},
		{name: "naive date-time", value: "2024-01-01T00:00:00", want: true},
		{name: "minute precision", value: "2024-01-01T08:30", want: true},
		{name: "date only", value: "2024-01-01", want: false},
		{name: "space separator", value: "2024-01-01 00:00:00", want: false},
		{name: "not a date", value: "yesterday", want: false},
		{name: "non-string", value: 20240101, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isISO8601DateTime(tt.value); got != tt.want {
				t.Errorf("isISO8601DateTime(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestValidate_PreferenceFields(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name      string
		prefs     map[string]any
		wantError string
	}{
		{
			name:      "invalid theme",
			prefs:     map[string]any{"ui": map[string]any{"theme": "neon"}},
			wantError: "Invalid ui.theme value",
		},
		{
			name:      "non-string theme",
			prefs:     map[string]any{"ui": map[string]any{"theme": true}},
			wantError: "Invalid ui.theme value",
		},
		{
			name:      "invalid density",
			prefs:     map[string]any{"ui": map[string]any{"density": "cozy"}},
			wantError: "Invalid ui.density value",
		},
		{
			name:      "non-boolean reducedMotion",
			prefs:     map[string]any{"ui": map[string]any{"reducedMotion": "yes"}},
			wantError: "Invalid ui.reducedMotion value",
		},
		{
			name:      "invalid tone",
			prefs:     map[string]any{"interaction": map[string]any{"tone": "snarky"}},
			wantError: "Invalid interaction.tone value",
		},
		{
			name:      "invalid confirmationStyle",
			prefs:     map[string]any{"interaction": map[string]any{"confirmationStyle": "sometimes"}},
			wantError: "Invalid interaction.confirmationStyle value",
		},
		{
			name:      "invalid automation level",
			prefs:     map[string]any{"automation": map[string]any{"level": "full-send"}},
			wantError: "Invalid automation.level value",
		},
		{
			name:      "invalid maxAutomationScope",
			prefs:     map[string]any{"automation": map[string]any{"maxAutomationScope": "universe"}},
			wantError: "Invalid automation.maxAutomationScope value",
		},
		{
			name:      "invalid frequency",
			prefs:     map[string]any{"notifications": map[string]any{"frequency": "hourly"}},
			wantError: "Invalid notifications.frequency value",
		},
		{
			name:      "channels not a list",
			prefs:     map[string]any{"notifications": map[string]any{"channels": "email"}},
			wantError: "notifications.channels must be a list",
		},
		{
			name:      "invalid language format",
			prefs:     map[string]any{"content": map[string]any{"language": "english"}},
			wantError: "Invalid content.language format (expected ISO 639-1)",
		},
		{
			name:      "invalid currency format",
			prefs:     map[string]any{"content": map[string]any{"currency": "dollars"}},
			wantError: "Invalid content.currency format (expected ISO 4217)",
		},
		{
			name:      "invalid dataSharing",
			prefs:     map[string]any{"privacy": map[string]any{"dataSharing": "everything"}},
			wantError: "Invalid privacy.dataSharing value",
		},
		{
			name:      "invalid focusIndicators",
			prefs:     map[string]any{"accessibility": map[string]any{"focusIndicators": "extreme"}},
			wantError: "Invalid accessibility.focusIndicators value",
		},
		{
			name:      "invalid tolerance",
			prefs:     map[string]any{"risk": map[string]any{"tolerance": "reckless"}},
			wantError: "Invalid risk.tolerance value",
		},
		{
			name:      "negative maxTransactionAmount",
			prefs:     map[string]any{"risk": map[string]any{"maxTransactionAmount": -1.0}},
			wantError: "risk.maxTransactionAmount must be a non-negative number",
		},
		{
			name:      "boolean maxTransactionAmount rejected",
			prefs:     map[string]any{"risk": map[string]any{"maxTransactionAmount": true}},
			wantError: "risk.maxTransactionAmount must be a non-negative number",
		},
		{
			name:      "string maxTransactionAmount rejected",
			prefs:     map[string]any{"risk": map[string]any{"maxTransactionAmount": "100"}},
			wantError: "risk.maxTransactionAmount must be a non-negative number",
		},
		{
			name:      "sub-section not an object",
			prefs:     map[string]any{"ui": "dark"},
			wantError: `Field "preferences.ui" must be a dictionary`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDocument()
			doc["preferences"] = tt.prefs

			result := v.Validate(doc)
			if result.Valid {
				t.Fatalf("expected invalid document")
			}
			if len(result.Errors) != 1 || result.Errors[0] != tt.wantError {
				t.Errorf("errors = %v, want exactly [%q]", result.Errors, tt.wantError)
			}
		})
	}
}

func TestValidate_PreferenceFieldsAccepted(t *testing.T) {
	v := NewValidator()

	doc := validDocument()
	doc["preferences"] = map[string]any{
		"ui": map[string]any{
			"theme":          "high-contrast",
			"density":        "compact",
			"fontSize":       "xlarge",
			"colorBlindMode": true,
			"customFlag":     "anything goes", // unknown keys are ignored
		},
		"interaction": map[string]any{
			"confirmationStyle": "destructive-only",
			"keyboardShortcuts": false,
		},
		"automation": map[string]any{"level": "auto-approve-safe"},
		"notifications": map[string]any{
			"channels": []any{"in-app", "email", "push", "sms"},
		},
		"content": map[string]any{
			"language":      "en-US",
			"currency":      "EUR",
			"contentFilter": "whatever the caller wants",
		},
		"risk": map[string]any{
			"maxTransactionAmount": 0.0,
		},
		"experimental": map[string]any{"anything": 1.0}, // custom sub-section
	}
	doc["behaviors"] = map[string]any{
		"workflow":      "multi-tasking",
		"learningStyle": "trial-and-error",
		"decisionSpeed": "quick",
		"customHabit":   "ignored",
	}

	result := v.Validate(doc)
	if !result.Valid {
		t.Fatalf("expected valid document, got errors: %v", result.Errors)
	}
}

func TestValidate_ChannelsAggregateError(t *testing.T) {
	v := NewValidator()

	doc := validDocument()
	doc["preferences"] = map[string]any{
		"notifications": map[string]any{
			"channels": []any{"in-app", "carrier-pigeon", "smoke-signal"},
		},
	}

	result := v.Validate(doc)
	if result.Valid {
		t.Fatalf("expected invalid document")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected exactly one aggregate error, got %v", result.Errors)
	}
	want := "Invalid notification channels: carrier-pigeon, smoke-signal"
	if result.Errors[0] != want {
		t.Errorf("error = %q, want %q", result.Errors[0], want)
	}
}

func TestValidate_EndToEndSingleChannelError(t *testing.T) {
	v := NewValidator()

	doc := map[string]any{
		"version": "0.1.0",
		"metadata": map[string]any{
			"created": "2024-01-01T00:00:00Z",
			"updated": "2024-01-01T00:00:00Z",
		},
		"preferences": map[string]any{
			"notifications": map[string]any{
				"channels": []any{"in-app", "carrier-pigeon"},
			},
		},
	}

	result := v.Validate(doc)
	if result.Valid {
		t.Fatalf("expected invalid document")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected exactly one error, got %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "carrier-pigeon") {
		t.Errorf("error %q should mention the offending channel", result.Errors[0])
	}
}

func TestValidate_Behaviors(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name      string
		behaviors any
		wantError string
	}{
		{
			name:      "not an object",
			behaviors: []any{"linear"},
			wantError: "Behaviors must be a dictionary",
		},
		{
			name:      "invalid workflow",
			behaviors: map[string]any{"workflow": "chaotic"},
			wantError: "Invalid behaviors.workflow value",
		},
		{
			name:      "invalid learningStyle",
			behaviors: map[string]any{"learningStyle": "osmosis"},
			wantError: "Invalid behaviors.learningStyle value",
		},
		{
			name:      "invalid decisionSpeed",
			behaviors: map[string]any{"decisionSpeed": "instant"},
			wantError: "Invalid behaviors.decisionSpeed value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDocument()
			doc["behaviors"] = tt.behaviors

			result := v.Validate(doc)
			if result.Valid {
				t.Fatalf("expected invalid document")
			}
			if len(result.Errors) != 1 || result.Errors[0] != tt.wantError {
				t.Errorf("errors = %v, want exactly [%q]", result.Errors, tt.wantError)
			}
		})
	}
}

func TestValidate_ErrorsAccumulateInCheckingOrder(t *testing.T) {
	v := NewValidator()

	doc := map[string]any{
		"version":  "one.two.three",
		"metadata": map[string]any{"created": "2024-01-01"},
		"preferences": map[string]any{
			"ui":   map[string]any{"theme": "neon", "density": "cozy"},
			"risk": map[string]any{"tolerance": "reckless"},
		},
		"behaviors": map[string]any{"workflow": "chaotic"},
	}

	want := []string{
		`Field "version" must follow semantic versioning (e.g., "0.1.0")`,
		`Field "metadata.created" must be a valid ISO 8601 date-time`,
		"Missing required field: metadata.updated",
		"Invalid ui.theme value",
		"Invalid ui.density value",
		"Invalid risk.tolerance value",
		"Invalid behaviors.workflow value",
	}

	result := v.Validate(doc)
	if result.Valid {
		t.Fatalf("expected invalid document")
	}
	if len(result.Errors) != len(want) {
		t.Fatalf("errors = %v, want %v", result.Errors, want)
	}
	for i := range want {
		if result.Errors[i] != want[i] {
			t.Errorf("errors[%d] = %q, want %q", i, result.Errors[i], want[i])
		}
	}

	// Same input, same order.
	again := v.Validate(doc)
	for i := range result.Errors {
		if again.Errors[i] != result.Errors[i] {
			t.Fatalf("error order not stable across calls: %v vs %v", result.Errors, again.Errors)
		}
	}
}
