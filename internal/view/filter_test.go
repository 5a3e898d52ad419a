package view

import (
	"testing"

	"github.com/studiowebux/catalog/internal/types"
)

func TestFilterProducts(t *testing.T) {
	products := []types.Product{
		{ID: 1, Name: "Laptop"},
		{ID: 2, Name: "Smartphone"},
		{ID: 3, Name: "Headphones"},
		{ID: 4, Name: "Smartwatch"},
	}

	if got := FilterProducts(products, "  "); len(got) != len(products) {
		t.Errorf("blank query should keep all products, got %d", len(got))
	}

	got := FilterProducts(products, "smart")
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d: %+v", len(got), got)
	}
	for _, p := range got {
		if p.ID != 2 && p.ID != 4 {
			t.Errorf("unexpected match %q", p.Name)
		}
	}

	if got := FilterProducts(products, "zzz"); len(got) != 0 {
		t.Errorf("expected no matches, got %+v", got)
	}
}
