package tui

import (
	"context"
	"errors"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/catalog/internal/api"
	"github.com/studiowebux/catalog/internal/config"
	"github.com/studiowebux/catalog/internal/history"
	"github.com/studiowebux/catalog/internal/keybinds"
	"github.com/studiowebux/catalog/internal/types"
	"github.com/studiowebux/catalog/internal/view"
	"go.uber.org/zap"
)

// Options configures a Model
type Options struct {
	Client   *api.Client
	History  *history.Manager   // nil disables the activity log viewer
	Keybinds *keybinds.Registry // nil uses the defaults
	Logger   *zap.Logger

	// NotificationTimeout is how long a notification stays up (default 3s)
	NotificationTimeout time.Duration

	// Context is the parent of the shared request context
	Context context.Context
}

// scheduleFunc delivers the message built by fn after d
type scheduleFunc func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// Model represents the TUI state
type Model struct {
	// Core
	client   *api.Client
	history  *history.Manager
	keybinds *keybinds.Registry
	logger   *zap.Logger
	requests *RequestState

	// Injected side effects
	schedule       scheduleFunc
	writeClipboard func(string) error

	state ViewState

	// View-all tab
	products     []types.Product
	loaded       bool
	loading      bool
	loadSeq      int // id of the latest list reload; older responses are dropped
	tableIndex   int
	filterInput  textinput.Model
	filterActive bool

	// Search tab
	searchInput    textinput.Model
	searchSeq      int
	searchResult   *types.Product
	searchNotFound bool

	// Create tab
	createForm productForm

	// Modals
	editForm     productForm
	editID       int64
	editSeq      int
	deleteTarget int64
	historyState *HistoryState

	// Notification
	notification  *view.Notification
	notifySeq     int
	notifyTimeout time.Duration

	// UI state
	width    int
	height   int
	quitting bool
}

// Messages returned by commands
type (
	productsLoadedMsg struct {
		seq      int
		products []types.Product
		err      error
	}
	searchResultMsg struct {
		seq     int
		product *types.Product
		err     error
	}
	productCreatedMsg struct {
		product *types.Product
		err     error
	}
	editLoadedMsg struct {
		seq     int
		product *types.Product
		err     error
	}
	productUpdatedMsg struct {
		product *types.Product
		err     error
	}
	productDeletedMsg struct {
		id  int64
		err error
	}
	historyLoadedMsg struct {
		calls []types.Call
		err   error
	}
	clipboardMsg struct {
		err error
	}
	clearNotificationMsg struct {
		seq int
	}
)

// New creates a new TUI model
func New(opts Options) (*Model, error) {
	if opts.Client == nil {
		return nil, errors.New("tui: API client is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	registry := opts.Keybinds
	if registry == nil {
		registry = keybinds.NewDefaultRegistry()
	}
	timeout := opts.NotificationTimeout
	if timeout <= 0 {
		timeout = config.DefaultNotificationTimeout
	}
	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}

	m := &Model{
		client:         opts.Client,
		history:        opts.History,
		keybinds:       registry,
		logger:         logger,
		requests:       NewRequestState(parent),
		schedule:       tea.Tick,
		writeClipboard: clipboard.WriteAll,
		filterInput:    newTextInput("Filter by name", 50),
		searchInput:    newTextInput("Enter product ID", 20),
		createForm:     newProductForm(),
		editForm:       newProductForm(),
		historyState:   NewHistoryState(),
		notifyTimeout:  timeout,
	}
	m.state.SetTab(TabViewAll)

	return m, nil
}

// Init loads the product list
func (m *Model) Init() tea.Cmd {
	return m.loadProducts()
}

// Cleanup cancels every in-flight request
func (m *Model) Cleanup() {
	m.requests.Cancel()
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.MouseMsg:
		cmd = m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.historyState.Resize(m.historyViewSize())

	case productsLoadedMsg:
		cmd = m.handleProductsLoaded(msg)

	case searchResultMsg:
		cmd = m.handleSearchResult(msg)

	case productCreatedMsg:
		cmd = m.handleProductCreated(msg)

	case editLoadedMsg:
		cmd = m.handleEditLoaded(msg)

	case productUpdatedMsg:
		cmd = m.handleProductUpdated(msg)

	case productDeletedMsg:
		cmd = m.handleProductDeleted(msg)

	case historyLoadedMsg:
		if msg.err != nil {
			m.logger.Error("failed to load activity log", zap.Error(msg.err))
			cmd = m.notify(view.Error(msgHistoryFailed))
			break
		}
		m.historyState.SetEntries(msg.calls)
		m.state.OpenModal(ModalHistory)

	case clipboardMsg:
		if msg.err != nil {
			m.logger.Warn("clipboard write failed", zap.Error(msg.err))
			cmd = m.notify(view.Error(view.MsgCopyFailed))
		} else {
			cmd = m.notify(view.Success(view.MsgCopied))
		}

	case clearNotificationMsg:
		// Only the timer of the latest notification may clear it
		if msg.seq == m.notifySeq {
			m.notification = nil
		}
	}

	return m, cmd
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.state.Modal() {
	case ModalEdit:
		return m.placeModal(m.renderEditModal())
	case ModalConfirmDelete:
		return m.placeModal(m.renderConfirmModal())
	case ModalHistory:
		return m.placeModal(m.renderHistoryModal())
	}

	return m.renderMain()
}

// notify shows n in place of any current notification and schedules its
// dismissal
func (m *Model) notify(n view.Notification) tea.Cmd {
	m.notifySeq++
	seq := m.notifySeq
	m.notification = &n

	return m.schedule(m.notifyTimeout, func(time.Time) tea.Msg {
		return clearNotificationMsg{seq: seq}
	})
}

// quit cancels outstanding calls and stops the program
func (m *Model) quit() tea.Cmd {
	m.Cleanup()
	m.quitting = true
	return tea.Quit
}

// visibleProducts returns the products shown in the table after filtering
func (m *Model) visibleProducts() []types.Product {
	return view.FilterProducts(m.products, m.filterInput.Value())
}

// clampTableIndex keeps the selection inside the visible rows
func (m *Model) clampTableIndex() {
	n := len(m.visibleProducts())
	if m.tableIndex >= n {
		m.tableIndex = n - 1
	}
	if m.tableIndex < 0 {
		m.tableIndex = 0
	}
}
