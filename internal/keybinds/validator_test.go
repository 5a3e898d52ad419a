package keybinds

import (
	"strings"
	"testing"
)

func TestNewValidator(t *testing.T) {
	v := NewValidator()

	if v == nil {
		t.Fatal("NewValidator returned nil")
	}

	if len(v.reservedKeys) == 0 {
		t.Error("Expected reserved keys to be initialized")
	}

	if !v.reservedKeys["ctrl+c"] {
		t.Error("Expected ctrl+c to be a reserved key")
	}

}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      ValidationError
		expected string
	}{
		{
			name: "conflict error",
			err: ValidationError{
				Type:    "conflict",
				Context: ContextTable,
				Key:     "q",
				Message: "key bound 2 times",
			},
			expected: "[conflict] q in context 'table': key bound 2 times",
		},
		{
			name: "invalid error",
			err: ValidationError{
				Type:    "invalid",
				Context: ContextGlobal,
				Key:     "",
				Message: "empty key",
			},
			expected: "[invalid]  in context 'global': empty key",
		},
		{
			name: "warning",
			err: ValidationError{
				Type:    "warning",
				Context: ContextCard,
				Key:     "tab",
				Message: "shadows global binding",
			},
			expected: "[warning] tab in context 'card': shadows global binding",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestValidationResult_HasErrors(t *testing.T) {
	tests := []struct {
		name     string
		result   *ValidationResult
		expected bool
	}{
		{
			name:     "no errors",
			result:   &ValidationResult{Errors: []ValidationError{}},
			expected: false,
		},
		{
			name: "has errors",
			result: &ValidationResult{
				Errors: []ValidationError{
					{Type: "conflict", Message: "duplicate"},
				},
			},
			expected: true,
		},
		{
			name: "multiple errors",
			result: &ValidationResult{
				Errors: []ValidationError{
					{Type: "conflict", Message: "duplicate"},
					{Type: "invalid", Message: "bad key"},
				},
			},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.result.HasErrors()
			if got != tt.expected {
				t.Errorf("HasErrors() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestValidationResult_HasWarnings(t *testing.T) {
	tests := []struct {
		name     string
		result   *ValidationResult
		expected bool
	}{
		{
			name:     "no warnings",
			result:   &ValidationResult{Warnings: []ValidationError{}},
			expected: false,
		},
		{
			name: "has warnings",
			result: &ValidationResult{
				Warnings: []ValidationError{
					{Type: "warning", Message: "shadowing"},
				},
			},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.result.HasWarnings()
			if got != tt.expected {
				t.Errorf("HasWarnings() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestValidationResult_String(t *testing.T) {
	tests := []struct {
		name     string
		result   *ValidationResult
		contains []string
	}{
		{
			name:     "no issues",
			result:   &ValidationResult{},
			contains: []string{"No issues found"},
		},
		{
			name: "only errors",
			result: &ValidationResult{
				Errors: []ValidationError{
					{Type: "conflict", Context: ContextTable, Key: "q", Message: "duplicate"},
				},
			},
			contains: []string{"Errors (1)", "conflict", "table", "q"},
		},
		{
			name: "only warnings",
			result: &ValidationResult{
				Warnings: []ValidationError{
					{Type: "warning", Context: ContextCard, Key: "tab", Message: "shadows"},
				},
			},
			contains: []string{"Warnings (1)", "warning", "card", "tab"},
		},
		{
			name: "both errors and warnings",
			result: &ValidationResult{
				Errors: []ValidationError{
					{Type: "conflict", Context: ContextTable, Key: "q", Message: "duplicate"},
				},
				Warnings: []ValidationError{
					{Type: "warning", Context: ContextCard, Key: "tab", Message: "shadows"},
				},
			},
			contains: []string{"Errors (1)", "Warnings (1)", "conflict", "warning"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.result.String()
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("String() output missing %q, got:\n%s", want, got)
				}
			}
		})
	}
}

func TestCheckReservedKeys(t *testing.T) {
	v := NewValidator()

	r := NewDefaultRegistry()
	result := v.ValidateRegistry(r)
	for _, w := range result.Warnings {
		if w.Key == "ctrl+c" {
			t.Errorf("default registry should not warn about ctrl+c: %v", w)
		}
	}

	r.Register(ContextGlobal, "ctrl+c", ActionReload)
	result = v.ValidateRegistry(r)

	found := false
	for _, w := range result.Warnings {
		if w.Key == "ctrl+c" && strings.Contains(w.Message, "reserved") {
			found = true
		}
	}
	if !found {
		t.Error("expected reserved key warning for rebound ctrl+c")
	}
}

func TestCheckShadowing(t *testing.T) {
	v := NewValidator()

	r := NewRegistry()
	r.Register(ContextGlobal, "f1", ActionTabViewAll)
	r.Register(ContextTable, "f1", ActionReload)
	r.Register(ContextCard, "f1", ActionTabViewAll)

	result := v.ValidateRegistry(r)
	if len(result.Warnings) != 1 {
		t.Fatalf("expected 1 shadowing warning, got %d: %v", len(result.Warnings), result.Warnings)
	}
	w := result.Warnings[0]
	if w.Context != ContextTable || w.Key != "f1" {
		t.Errorf("unexpected warning %v", w)
	}
}

func TestDefaultRegistryIsClean(t *testing.T) {
	result := NewValidator().ValidateRegistry(NewDefaultRegistry())
	if result.HasErrors() || result.HasWarnings() {
		t.Errorf("default registry should validate cleanly:\n%s", result.String())
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name       string
		config     *Config
		wantErrors bool
		wantType   string
	}{
		{
			name:   "empty config",
			config: &Config{},
		},
		{
			name: "valid override",
			config: &Config{
				Table: map[string]string{"reload": "R,f5"},
			},
		},
		{
			name: "unknown action",
			config: &Config{
				Table: map[string]string{"launch_rockets": "x"},
			},
			wantErrors: true,
			wantType:   "invalid",
		},
		{
			name: "modifier without key",
			config: &Config{
				Global: map[string]string{"quit_force": "ctrl+"},
			},
			wantErrors: true,
			wantType:   "invalid",
		},
		{
			name: "same key for two actions",
			config: &Config{
				Table: map[string]string{"edit": "e", "delete": "e"},
			},
			wantErrors: true,
			wantType:   "conflict",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewValidator().ValidateConfig(tt.config)
			if result.HasErrors() != tt.wantErrors {
				t.Fatalf("HasErrors() = %v, want %v:\n%s", result.HasErrors(), tt.wantErrors, result.String())
			}
			if tt.wantErrors && result.Errors[0].Type != tt.wantType {
				t.Errorf("error type = %q, want %q", result.Errors[0].Type, tt.wantType)
			}
		})
	}
}

func TestFindConflicts(t *testing.T) {
	conflicts := FindConflicts(&Config{
		Confirm: map[string]string{"confirm": "y", "cancel": "y,n"},
	})
	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %v", conflicts)
	}
	if !strings.Contains(conflicts[0], "confirm") {
		t.Errorf("conflict should name the context: %s", conflicts[0])
	}

	if conflicts := FindConflicts(&Config{}); len(conflicts) != 0 {
		t.Errorf("expected no conflicts, got %v", conflicts)
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		key     string
		wantErr bool
	}{
		{"q", false},
		{"ctrl+s", false},
		{"alt+1", false},
		{"shift+tab", false},
		{"f1", false},
		{"", true},
		{"ctrl+", true},
		{"alt+", true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAction(t *testing.T) {
	if err := ValidateAction(""); err == nil {
		t.Error("expected error for empty action")
	}
	if err := ValidateAction("nope"); err == nil {
		t.Error("expected error for unknown action")
	}
	for action := range KnownActions {
		if err := ValidateAction(string(action)); err != nil {
			t.Errorf("ValidateAction(%q) = %v", action, err)
		}
	}
}
