package tui

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/catalog/internal/api"
	"github.com/studiowebux/catalog/internal/history"
	"github.com/studiowebux/catalog/internal/server"
	"github.com/studiowebux/catalog/internal/types"
	"go.uber.org/zap"
)

// scheduledTimer is a notification timer captured instead of waiting
type scheduledTimer struct {
	d  time.Duration
	fn func(time.Time) tea.Msg
}

// Harness drives a Model against an in-memory products server
type Harness struct {
	t      *testing.T
	M      *Model
	Repo   *server.InMemoryProductRepository
	Server *httptest.Server

	mu        sync.Mutex
	counts    map[string]int
	timers    []scheduledTimer
	clipboard string
	quit      bool
}

// HarnessOption tweaks the model before Init runs
type HarnessOption func(*Options)

// WithHistory records calls to a temporary activity log
func WithHistory(t *testing.T) HarnessOption {
	return func(o *Options) {
		mgr, err := history.NewManager(t.TempDir() + "/catalog.db")
		if err != nil {
			t.Fatalf("Failed to create history manager: %v", err)
		}
		t.Cleanup(func() { mgr.Close() })
		o.History = mgr
	}
}

// CreateTestModel creates a Model wired to a seeded test server, sized and
// initialized (the initial list load has completed)
func CreateTestModel(t *testing.T, seed []types.ProductInput, opts ...HarnessOption) *Harness {
	t.Helper()

	h := &Harness{
		t:      t,
		Repo:   server.NewInMemoryProductRepository(seed),
		counts: make(map[string]int),
	}

	router := server.NewRouter(h.Repo, zap.NewNop())
	h.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.mu.Lock()
		h.counts[r.Method+" "+r.URL.Path]++
		h.mu.Unlock()
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(h.Server.Close)

	options := Options{Logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&options)
	}

	clientOpts := []api.Option{}
	if options.History != nil {
		clientOpts = append(clientOpts, api.WithRecorder(options.History))
	}
	client, err := api.New(h.Server.URL, clientOpts...)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	options.Client = client

	m, err := New(options)
	if err != nil {
		t.Fatalf("Failed to create test model: %v", err)
	}
	m.schedule = func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
		h.timers = append(h.timers, scheduledTimer{d: d, fn: fn})
		return nil
	}
	m.writeClipboard = func(s string) error {
		h.clipboard = s
		return nil
	}
	h.M = m

	h.Send(tea.WindowSizeMsg{Width: 120, Height: 40})
	h.Drain(m.Init())

	return h
}

// Count returns how many requests hit method+path
func (h *Harness) Count(method, path string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.counts[method+" "+path]
}

// Send delivers msg to the model and runs the resulting commands
func (h *Harness) Send(msg tea.Msg) {
	h.t.Helper()
	_, cmd := h.M.Update(msg)
	h.Drain(cmd)
}

// Drain runs cmd and every command it leads to, feeding each message back
// into the model
func (h *Harness) Drain(cmd tea.Cmd) {
	h.t.Helper()
	if cmd == nil {
		return
	}

	switch msg := cmd().(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			h.Drain(c)
		}
	case tea.QuitMsg:
		h.quit = true
	default:
		h.Send(msg)
	}
}

// Press sends one key per argument
func (h *Harness) Press(keys ...string) {
	h.t.Helper()
	for _, k := range keys {
		h.Send(keyMsg(k))
	}
}

// Type sends text as typed runes
func (h *Harness) Type(text string) {
	h.t.Helper()
	for _, r := range text {
		h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// FireTimers delivers every pending notification timer
func (h *Harness) FireTimers() {
	h.t.Helper()
	timers := h.timers
	h.timers = nil
	for _, timer := range timers {
		h.Send(timer.fn(time.Now()))
	}
}

// keyMsg builds the KeyMsg whose String() is k
func keyMsg(k string) tea.KeyMsg {
	named := map[string]tea.KeyType{
		"enter":     tea.KeyEnter,
		"esc":       tea.KeyEsc,
		"tab":       tea.KeyTab,
		"shift+tab": tea.KeyShiftTab,
		"up":        tea.KeyUp,
		"down":      tea.KeyDown,
		"home":      tea.KeyHome,
		"end":       tea.KeyEnd,
		"delete":    tea.KeyDelete,
		"backspace": tea.KeyBackspace,
		"ctrl+c":    tea.KeyCtrlC,
		"ctrl+s":    tea.KeyCtrlS,
		"f1":        tea.KeyF1,
		"f2":        tea.KeyF2,
		"f3":        tea.KeyF3,
	}
	if t, ok := named[k]; ok {
		return tea.KeyMsg{Type: t}
	}
	if len(k) > 4 && k[:4] == "alt+" {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k[4:]), Alt: true}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// leftClick builds a left mouse press at x, y
func leftClick(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}

// AssertNoError verifies that an error is nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}
