package tui

import (
	"encoding/json"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/catalog/internal/history"
	"github.com/studiowebux/catalog/internal/types"
	"github.com/studiowebux/catalog/internal/view"
	"go.uber.org/zap"
)

// activateTab shows t. Activating view-all issues exactly one list reload.
func (m *Model) activateTab(t Tab) tea.Cmd {
	prev := m.keyContext()
	if !m.state.SetTab(t) {
		return nil
	}
	m.keybinds.ClearMultiKeyState(prev)
	m.closeModal()
	// A pending edit load belongs to the tab being left
	m.editSeq++

	m.filterInput.Blur()
	m.filterActive = false
	m.searchInput.Blur()
	m.createForm.Blur()

	switch t {
	case TabViewAll:
		return m.loadProducts()
	case TabSearch:
		return m.searchInput.Focus()
	case TabCreate:
		return m.createForm.Focus()
	}
	return nil
}

// loadProducts issues a list reload tagged with a fresh sequence number
func (m *Model) loadProducts() tea.Cmd {
	m.loadSeq++
	seq := m.loadSeq
	m.loading = true

	client, ctx := m.client, m.requests.Context()
	return func() tea.Msg {
		products, err := client.List(ctx)
		return productsLoadedMsg{seq: seq, products: products, err: err}
	}
}

func (m *Model) handleProductsLoaded(msg productsLoadedMsg) tea.Cmd {
	if msg.seq != m.loadSeq {
		m.logger.Debug("dropping stale product list", zap.Int("seq", msg.seq), zap.Int("latest", m.loadSeq))
		return nil
	}
	m.loading = false

	if msg.err != nil {
		m.logger.Error("failed to load products", zap.Error(msg.err))
		return m.notify(view.Error(view.MsgLoadFailed))
	}

	m.products = msg.products
	m.loaded = true
	m.clampTableIndex()
	return nil
}

// searchProduct looks up the id typed in the search box
func (m *Model) searchProduct() tea.Cmd {
	id := strings.TrimSpace(m.searchInput.Value())
	if id == "" {
		return m.notify(view.Error(view.MsgEmptyID))
	}

	m.searchSeq++
	seq := m.searchSeq

	client, ctx := m.client, m.requests.Context()
	return func() tea.Msg {
		product, err := client.Get(ctx, id)
		return searchResultMsg{seq: seq, product: product, err: err}
	}
}

func (m *Model) handleSearchResult(msg searchResultMsg) tea.Cmd {
	if msg.seq != m.searchSeq {
		return nil
	}

	if msg.err != nil {
		m.logger.Warn("product search failed", zap.Error(msg.err))
		m.searchResult = nil
		m.searchNotFound = true
		return nil
	}

	m.searchResult = msg.product
	m.searchNotFound = false
	if m.state.ActiveTab() == TabSearch {
		m.searchInput.Blur()
	}
	return nil
}

// createProduct submits the create form
func (m *Model) createProduct() tea.Cmd {
	input, err := view.BuildInput(m.createForm.Values())
	if err != nil {
		return m.notify(view.Error(view.MsgInvalidPrice))
	}

	client, ctx := m.client, m.requests.Context()
	return func() tea.Msg {
		product, err := client.Create(ctx, input)
		return productCreatedMsg{product: product, err: err}
	}
}

func (m *Model) handleProductCreated(msg productCreatedMsg) tea.Cmd {
	if msg.err != nil {
		m.logger.Error("failed to create product", zap.Error(msg.err))
		return m.notify(view.Error(view.MsgCreateFailed))
	}

	m.logger.Info("product created", zap.Int64("id", msg.product.ID))
	notifyCmd := m.notify(view.Success(view.MsgCreated))
	m.createForm.Reset()
	return tea.Batch(notifyCmd, m.activateTab(TabViewAll))
}

// dispatch resolves an action control through its data-id. Every edit and
// delete control, in the table or on the card, goes through here.
func (m *Model) dispatch(action view.Action) tea.Cmd {
	id, err := strconv.ParseInt(action.DataID, 10, 64)
	if err != nil {
		m.logger.Warn("ignoring action with bad data-id", zap.String("data_id", action.DataID))
		return nil
	}

	switch action.Kind {
	case view.ActionEdit:
		return m.openEditor(action.DataID)
	case view.ActionDelete:
		m.deleteTarget = id
		m.state.OpenModal(ModalConfirmDelete)
	}
	return nil
}

// selectedActions returns the action controls of the focused row or card
func (m *Model) selectedActions() []view.Action {
	switch m.state.ActiveTab() {
	case TabViewAll:
		table := view.RenderTable(m.visibleProducts())
		if m.tableIndex < len(table.Rows) {
			return table.Rows[m.tableIndex].Actions
		}
	case TabSearch:
		if m.searchResult != nil {
			return view.RenderCard(*m.searchResult).Actions
		}
	}
	return nil
}

// triggerSelected fires the control of the given kind on the focused item
func (m *Model) triggerSelected(kind view.ActionKind) tea.Cmd {
	for _, action := range m.selectedActions() {
		if action.Kind == kind {
			return m.dispatch(action)
		}
	}
	return nil
}

// selectedProduct returns the product behind the focused row or card
func (m *Model) selectedProduct() *types.Product {
	switch m.state.ActiveTab() {
	case TabViewAll:
		products := m.visibleProducts()
		if m.tableIndex < len(products) {
			return &products[m.tableIndex]
		}
	case TabSearch:
		return m.searchResult
	}
	return nil
}

// openEditor fetches the product before showing the edit modal
func (m *Model) openEditor(dataID string) tea.Cmd {
	m.editSeq++
	seq := m.editSeq

	client, ctx := m.client, m.requests.Context()
	return func() tea.Msg {
		product, err := client.Get(ctx, dataID)
		return editLoadedMsg{seq: seq, product: product, err: err}
	}
}

func (m *Model) handleEditLoaded(msg editLoadedMsg) tea.Cmd {
	if msg.seq != m.editSeq || m.state.Modal() != ModalNone {
		m.logger.Debug("dropping stale edit load", zap.Int("seq", msg.seq), zap.Int("latest", m.editSeq))
		return nil
	}
	if msg.err != nil {
		m.logger.Error("failed to load product for editing", zap.Error(msg.err))
		return m.notify(view.Error(view.MsgEditLoadFailed))
	}

	form := view.NewEditForm(*msg.product)
	m.editID = msg.product.ID
	m.editForm.SetValues(form.Name, form.Description, form.Price)
	m.editForm.setFocus(fieldName)
	m.state.OpenModal(ModalEdit)
	return m.editForm.Focus()
}

// closeModal hides the open modal and discards the edit buffer
func (m *Model) closeModal() {
	m.keybinds.ClearMultiKeyState(m.keyContext())
	if m.state.Modal() == ModalEdit {
		m.editForm.Blur()
		m.editForm.Reset()
		m.editID = 0
	}
	m.deleteTarget = 0
	m.state.CloseModal()
}

// updateProduct submits the edit modal
func (m *Model) updateProduct() tea.Cmd {
	input, err := view.BuildInput(m.editForm.Values())
	if err != nil {
		return m.notify(view.Error(view.MsgInvalidPrice))
	}

	id := m.editID
	client, ctx := m.client, m.requests.Context()
	return func() tea.Msg {
		product, err := client.Update(ctx, id, input)
		return productUpdatedMsg{product: product, err: err}
	}
}

func (m *Model) handleProductUpdated(msg productUpdatedMsg) tea.Cmd {
	if msg.err != nil {
		m.logger.Error("failed to update product", zap.Error(msg.err))
		return m.notify(view.Error(view.MsgUpdateFailed))
	}

	m.logger.Info("product updated", zap.Int64("id", msg.product.ID))
	m.closeModal()
	notifyCmd := m.notify(view.Success(view.MsgUpdated))

	switch m.state.ActiveTab() {
	case TabViewAll:
		return tea.Batch(notifyCmd, m.loadProducts())
	case TabSearch:
		return tea.Batch(notifyCmd, m.searchProduct())
	}
	return notifyCmd
}

// deleteProduct sends the confirmed delete
func (m *Model) deleteProduct() tea.Cmd {
	id := m.deleteTarget
	m.closeModal()

	client, ctx := m.client, m.requests.Context()
	return func() tea.Msg {
		err := client.Delete(ctx, id)
		return productDeletedMsg{id: id, err: err}
	}
}

func (m *Model) handleProductDeleted(msg productDeletedMsg) tea.Cmd {
	if msg.err != nil {
		m.logger.Error("failed to delete product", zap.Int64("id", msg.id), zap.Error(msg.err))
		return m.notify(view.Error(view.MsgDeleteFailed))
	}

	m.logger.Info("product deleted", zap.Int64("id", msg.id))
	notifyCmd := m.notify(view.Success(view.MsgDeleted))

	switch m.state.ActiveTab() {
	case TabViewAll:
		return tea.Batch(notifyCmd, m.loadProducts())
	case TabSearch:
		m.searchResult = nil
		m.searchNotFound = false
		m.searchInput.SetValue("")
	}
	return notifyCmd
}

// copySelected copies the focused product as JSON
func (m *Model) copySelected() tea.Cmd {
	product := m.selectedProduct()
	if product == nil {
		return nil
	}

	data, err := json.MarshalIndent(product, "", "  ")
	if err != nil {
		return func() tea.Msg { return clipboardMsg{err: err} }
	}

	write := m.writeClipboard
	return func() tea.Msg {
		return clipboardMsg{err: write(string(data))}
	}
}

// openHistory loads the activity log
func (m *Model) openHistory() tea.Cmd {
	if m.history == nil {
		return m.notify(view.Error(msgHistoryDisabled))
	}

	mgr, ctx := m.history, m.requests.Context()
	return func() tea.Msg {
		calls, err := mgr.Recent(ctx, history.DefaultLimit)
		return historyLoadedMsg{calls: calls, err: err}
	}
}
