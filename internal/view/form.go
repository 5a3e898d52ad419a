package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/studiowebux/catalog/internal/types"
)

// ErrInvalidPrice is returned when a price field does not hold a number
var ErrInvalidPrice = errors.New("invalid price")

// EditForm holds the values loaded into the edit modal
type EditForm struct {
	ID          string
	Name        string
	Description string
	Price       string
}

// NewEditForm fills the edit fields from a product
func NewEditForm(p types.Product) EditForm {
	return EditForm{
		ID:          DataID(p),
		Name:        p.Name,
		Description: p.Description,
		Price:       strconv.FormatFloat(p.Price, 'f', -1, 64),
	}
}

// ParsePrice trims and parses a decimal price
func ParsePrice(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidPrice)
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, raw)
	}
	return price, nil
}

// BuildInput assembles a create/update body from raw field values.
// Name and description are trimmed, nothing else is validated.
func BuildInput(name, description, price string) (types.ProductInput, error) {
	parsed, err := ParsePrice(price)
	if err != nil {
		return types.ProductInput{}, err
	}
	return types.ProductInput{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Price:       parsed,
	}, nil
}
