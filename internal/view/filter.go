package view

import (
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/studiowebux/catalog/internal/types"
)

type productNames []types.Product

func (p productNames) String(i int) string { return p[i].Name }
func (p productNames) Len() int            { return len(p) }

// FilterProducts returns the products whose name fuzzy-matches query, best
// match first. A blank query returns the input unchanged.
func FilterProducts(products []types.Product, query string) []types.Product {
	query = strings.TrimSpace(query)
	if query == "" {
		return products
	}

	matches := fuzzy.FindFrom(query, productNames(products))
	filtered := make([]types.Product, 0, len(matches))
	for _, match := range matches {
		filtered = append(filtered, products[match.Index])
	}
	return filtered
}
