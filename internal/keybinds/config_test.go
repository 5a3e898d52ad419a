package keybinds

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keybinds.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write keybinds file: %v", err)
	}
	return path
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	r, err := LoadOrDefault(filepath.Join(t.TempDir(), "keybinds.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if action, ok := r.Match(ContextTable, "e"); !ok || action != ActionEdit {
		t.Error("expected default bindings")
	}
}

func TestLoadOrDefault_AppliesOverrides(t *testing.T) {
	path := writeFile(t, `{
		// vim users want x to delete
		"version": "1.0",
		"table": {
			"delete": "x",
			"reload": "R, f5",
		},
	}`)

	r, err := LoadOrDefault(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if action, _ := r.Match(ContextTable, "x"); action != ActionDelete {
		t.Errorf("x = %q, want delete", action)
	}
	if r.HasBinding(ContextTable, "d") {
		t.Error("overridden default key d should be unbound")
	}
	if action, _ := r.Match(ContextTable, "f5"); action != ActionReload {
		t.Errorf("f5 = %q, want reload", action)
	}
	if action, _ := r.Match(ContextTable, "e"); action != ActionEdit {
		t.Error("untouched actions keep their defaults")
	}
}

func TestLoadOrDefault_InvalidFile(t *testing.T) {
	if _, err := LoadOrDefault(writeFile(t, `{"table": [`)); err == nil {
		t.Error("expected parse error")
	}

	_, err := LoadOrDefault(writeFile(t, `{"table": {"edit": "e", "delete": "e"}}`))
	if err == nil || !strings.Contains(err.Error(), "conflict") {
		t.Errorf("expected conflict error, got %v", err)
	}
}

func TestExportDefaults_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybinds.json")
	if err := SaveConfig(ExportDefaults(), path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded, err := LoadOrDefault(path)
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}

	defaults := NewDefaultRegistry()
	for _, ctx := range AllContexts {
		if got, want := len(loaded.ListBindings(ctx)), len(defaults.ListBindings(ctx)); got != want {
			t.Errorf("context %s: %d bindings, want %d", ctx, got, want)
		}
	}
}

func TestSplitKeys(t *testing.T) {
	got := SplitKeys(" up, k ,,")
	if len(got) != 2 || got[0] != "up" || got[1] != "k" {
		t.Errorf("SplitKeys = %v", got)
	}
}
