package tui

// Tab identifies a top-level panel
type Tab int

const (
	TabViewAll Tab = iota
	TabSearch
	TabCreate
)

// Tabs lists the tabs in display order
var Tabs = []Tab{TabViewAll, TabSearch, TabCreate}

// String returns the tab label
func (t Tab) String() string {
	switch t {
	case TabViewAll:
		return "View All Products"
	case TabSearch:
		return "Search Product"
	case TabCreate:
		return "Add New Product"
	default:
		return "Unknown"
	}
}

// DataTab returns the tab's data-tab identifier
func (t Tab) DataTab() string {
	switch t {
	case TabViewAll:
		return "view-all"
	case TabSearch:
		return "search"
	case TabCreate:
		return "create"
	default:
		return ""
	}
}

// ModalKind identifies the overlay on top of the active panel
type ModalKind int

const (
	ModalNone ModalKind = iota
	ModalEdit
	ModalConfirmDelete
	ModalHistory
)

func (k ModalKind) String() string {
	switch k {
	case ModalEdit:
		return "edit"
	case ModalConfirmDelete:
		return "confirm-delete"
	case ModalHistory:
		return "history"
	default:
		return "none"
	}
}

// ViewState holds which panel is visible and which modal, if any, covers
// it. Each is a single enum value, so exactly one tab is active and at most
// one modal is open at any time.
type ViewState struct {
	tab   Tab
	modal ModalKind
}

// ActiveTab returns the visible tab
func (s ViewState) ActiveTab() Tab {
	return s.tab
}

// Modal returns the open modal (ModalNone when closed)
func (s ViewState) Modal() ModalKind {
	return s.modal
}

// ModalOpen reports whether any modal is shown
func (s ViewState) ModalOpen() bool {
	return s.modal != ModalNone
}

// SetTab activates t. Unknown values are ignored.
func (s *ViewState) SetTab(t Tab) bool {
	if t < TabViewAll || t > TabCreate {
		return false
	}
	s.tab = t
	return true
}

// OpenModal shows kind, replacing any open modal
func (s *ViewState) OpenModal(kind ModalKind) {
	s.modal = kind
}

// CloseModal hides the open modal
func (s *ViewState) CloseModal() {
	s.modal = ModalNone
}

// nextTab returns the tab after (delta=1) or before (delta=-1) the active one
func (s ViewState) nextTab(delta int) Tab {
	n := len(Tabs)
	return Tabs[((int(s.tab)+delta)%n+n)%n]
}
