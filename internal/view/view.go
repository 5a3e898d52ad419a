package view

import (
	"fmt"
	"strconv"

	"github.com/studiowebux/catalog/internal/types"
)

// EmptyMessage is the placeholder shown when the catalog has no products
const EmptyMessage = "No products found"

// ActionKind identifies what an action control does
type ActionKind int

const (
	ActionEdit ActionKind = iota
	ActionDelete
)

// String returns the label drawn for the action
func (k ActionKind) String() string {
	switch k {
	case ActionEdit:
		return "Edit"
	case ActionDelete:
		return "Delete"
	default:
		return "Unknown"
	}
}

// Action is an edit or delete control bound to a product by its data-id
type Action struct {
	Kind   ActionKind
	DataID string
}

// Row is one table row. A placeholder row has a single cell and no actions.
type Row struct {
	Cells       []string
	Actions     []Action
	Placeholder bool
}

// Table is the view model of the product list
type Table struct {
	Headers []string
	Rows    []Row
}

// Field is a labelled value on a card
type Field struct {
	Label string
	Value string
}

// Card is the view model of a single search result
type Card struct {
	Title   string
	Fields  []Field
	Actions []Action
}

// TableHeaders are the column titles of the product table
var TableHeaders = []string{"ID", "Name", "Description", "Price", "Actions"}

// DataID returns the identifier actions carry for a product
func DataID(p types.Product) string {
	return strconv.FormatInt(p.ID, 10)
}

// FormatPrice formats a price with a dollar sign and two decimals
func FormatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}

func actionsFor(p types.Product) []Action {
	id := DataID(p)
	return []Action{
		{Kind: ActionEdit, DataID: id},
		{Kind: ActionDelete, DataID: id},
	}
}

// RenderTable builds one row per product, in order. An empty list yields a
// single placeholder row.
func RenderTable(products []types.Product) Table {
	table := Table{Headers: TableHeaders}

	if len(products) == 0 {
		table.Rows = []Row{{Cells: []string{EmptyMessage}, Placeholder: true}}
		return table
	}

	table.Rows = make([]Row, 0, len(products))
	for _, p := range products {
		table.Rows = append(table.Rows, Row{
			Cells:   []string{DataID(p), p.Name, p.Description, FormatPrice(p.Price)},
			Actions: actionsFor(p),
		})
	}
	return table
}

// RenderCard builds the detail card for one product
func RenderCard(p types.Product) Card {
	return Card{
		Title: p.Name,
		Fields: []Field{
			{Label: "ID", Value: DataID(p)},
			{Label: "Description", Value: p.Description},
			{Label: "Price", Value: FormatPrice(p.Price)},
		},
		Actions: actionsFor(p),
	}
}

// NotificationKind is success or error
type NotificationKind int

const (
	NotifySuccess NotificationKind = iota
	NotifyError
)

func (k NotificationKind) String() string {
	if k == NotifyError {
		return "error"
	}
	return "success"
}

// Notification is a transient banner
type Notification struct {
	Message string
	Kind    NotificationKind
}

// Messages shown to the user
const (
	MsgLoadFailed     = "Error loading products. Please try again."
	MsgEmptyID        = "Please enter a product ID"
	MsgNotFound       = "Product not found or an error occurred."
	MsgCreated        = "Product created successfully!"
	MsgCreateFailed   = "Error creating product. Please try again."
	MsgEditLoadFailed = "Error loading product data. Please try again."
	MsgUpdated        = "Product updated successfully!"
	MsgUpdateFailed   = "Error updating product. Please try again."
	MsgConfirmDelete  = "Are you sure you want to delete this product?"
	MsgDeleted        = "Product deleted successfully!"
	MsgDeleteFailed   = "Error deleting product. Please try again."
	MsgInvalidPrice   = "Please enter a valid price"
	MsgCopied         = "Product copied to clipboard"
	MsgCopyFailed     = "Could not copy to clipboard"
)

// Success builds a success notification
func Success(message string) Notification {
	return Notification{Message: message, Kind: NotifySuccess}
}

// Error builds an error notification
func Error(message string) Notification {
	return Notification{Message: message, Kind: NotifyError}
}
