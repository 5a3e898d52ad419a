package view

import (
	"errors"
	"testing"

	"github.com/studiowebux/catalog/internal/types"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{"integer", "12", 12, false},
		{"decimal", "1.50", 1.5, false},
		{"padded", "  3.25 ", 3.25, false},
		{"negative", "-4", -4, false},
		{"empty", "", 0, true},
		{"blank", "   ", 0, true},
		{"letters", "abc", 0, true},
		{"trailing junk", "12abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePrice(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPrice) {
					t.Fatalf("expected ErrInvalidPrice, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParsePrice(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewEditForm(t *testing.T) {
	form := NewEditForm(types.Product{ID: 42, Name: "Pen", Description: "Blue ink", Price: 1.5})

	want := EditForm{ID: "42", Name: "Pen", Description: "Blue ink", Price: "1.5"}
	if form != want {
		t.Errorf("NewEditForm = %+v, want %+v", form, want)
	}
}

func TestBuildInput(t *testing.T) {
	in, err := BuildInput("  Pen ", " Blue ink ", "1.5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := types.ProductInput{Name: "Pen", Description: "Blue ink", Price: 1.5}
	if in != want {
		t.Errorf("BuildInput = %+v, want %+v", in, want)
	}

	if _, err := BuildInput("Pen", "", "cheap"); !errors.Is(err, ErrInvalidPrice) {
		t.Errorf("expected ErrInvalidPrice, got %v", err)
	}
}
