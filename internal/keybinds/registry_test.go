package keybinds

import (
	"reflect"
	"testing"
)

func TestMatch_ContextThenGlobal(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		context Context
		key     string
		want    Action
		found   bool
	}{
		{ContextTable, "e", ActionEdit, true},
		{ContextTable, "f2", ActionTabSearch, true},
		{ContextTable, "2", ActionTabSearch, true},
		{ContextSearch, "alt+3", ActionTabCreate, true},
		{ContextSearch, "2", "", false},
		{ContextForm, "tab", ActionNextField, true},
		{ContextConfirm, "y", ActionConfirm, true},
		{ContextConfirm, "esc", ActionCancel, true},
		{ContextModal, "ctrl+c", ActionQuitForce, true},
		{ContextModal, "q", "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.context)+"/"+tt.key, func(t *testing.T) {
			got, ok := r.Match(tt.context, tt.key)
			if ok != tt.found || got != tt.want {
				t.Errorf("Match(%s, %q) = (%q, %v), want (%q, %v)", tt.context, tt.key, got, ok, tt.want, tt.found)
			}
		})
	}
}

func TestMatchMultiKey(t *testing.T) {
	r := NewDefaultRegistry()

	if _, complete, partial := r.MatchMultiKey(ContextTable, "g"); complete || !partial {
		t.Fatalf("first g should be a partial match")
	}
	action, complete, _ := r.MatchMultiKey(ContextTable, "g")
	if !complete || action != ActionGoToTop {
		t.Errorf("gg = (%q, %v), want go_to_top", action, complete)
	}

	// A broken sequence matches nothing and resets
	r.MatchMultiKey(ContextTable, "g")
	if _, complete, partial := r.MatchMultiKey(ContextTable, "x"); complete || partial {
		t.Error("gx should not match")
	}
	if action, complete, _ := r.MatchMultiKey(ContextTable, "j"); !complete || action != ActionNavigateDown {
		t.Errorf("state should be reset after a broken sequence, got %q", action)
	}

	// Contexts without a prepare binding treat g as a plain key
	if _, complete, partial := r.MatchMultiKey(ContextCard, "g"); complete || partial {
		t.Error("g should not start a sequence in the card context")
	}
}

func TestMatchMultiKey_BrokenSequenceMatchesSecondKey(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		key  string
		want Action
	}{
		{"f2", ActionTabSearch},
		{"alt+3", ActionTabCreate},
		{"j", ActionNavigateDown},
		{"e", ActionEdit},
		{"G", ActionGoToBottom},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if _, _, partial := r.MatchMultiKey(ContextTable, "g"); !partial {
				t.Fatal("g should start a sequence")
			}
			action, complete, partial := r.MatchMultiKey(ContextTable, tt.key)
			if !complete || partial || action != tt.want {
				t.Errorf("g then %s = (%q, %v, %v), want %q", tt.key, action, complete, partial, tt.want)
			}
		})
	}
}

func TestClearMultiKeyState(t *testing.T) {
	r := NewDefaultRegistry()
	r.MatchMultiKey(ContextTable, "g")
	r.ClearMultiKeyState(ContextTable)

	if action, complete, _ := r.MatchMultiKey(ContextTable, "G"); !complete || action != ActionGoToBottom {
		t.Errorf("expected go_to_bottom after clearing state, got %q", action)
	}
}

func TestUnbind(t *testing.T) {
	r := NewDefaultRegistry()
	r.Unbind(ContextTable, ActionEdit)

	if r.HasBinding(ContextTable, "e") || r.HasBinding(ContextTable, "enter") {
		t.Error("edit keys should be unbound")
	}
	if !r.HasBinding(ContextTable, "d") {
		t.Error("other actions must keep their keys")
	}
}

func TestGetBinding(t *testing.T) {
	r := NewDefaultRegistry()

	if got := r.GetBinding(ContextTable, ActionNavigateUp); !reflect.DeepEqual(got, []string{"k", "up"}) {
		t.Errorf("GetBinding = %v", got)
	}
	// Falls back to global
	if got := r.GetBindingString(ContextModal, ActionTabSearch); got != "alt+2/f2" {
		t.Errorf("GetBindingString = %q", got)
	}
	if got := r.GetBindingString(ContextModal, ActionReload); got != "unbound" {
		t.Errorf("GetBindingString = %q, want unbound", got)
	}
}

func TestListBindings(t *testing.T) {
	r := NewRegistry()
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
	r.Register(ContextConfirm, "y", ActionConfirm)
	r.Register(ContextConfirm, "n", ActionCancel)

	got := r.ListBindings(ContextConfirm)
	want := []Binding{
		{Key: "n", Action: ActionCancel, Context: ContextConfirm},
		{Key: "y", Action: ActionConfirm, Context: ContextConfirm},
		{Key: "ctrl+c", Action: ActionQuitForce, Context: ContextGlobal},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListBindings = %+v, want %+v", got, want)
	}
}
