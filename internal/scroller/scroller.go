// Package scroller decides when a Bubble Tea list needs its next or previous
// page and keeps the viewport steady when earlier pages are prepended
package scroller

import (
	"log/slog"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"scrollpager/internal/domain"
)

const (
	DefaultLoadBuffer = 3
	DefaultDebounce   = 100 * time.Millisecond
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// Config is supplied by the host and may be replaced on every update
type Config struct {
	Elements     []Element
	PageAtTop    int
	PageAtBottom int
	// trigger zone size in elements, fixed after New
	LoadBuffer   int
	Enable       bool
	IsLastResult bool

	// LoadMore is called with the page at the bottom; the host appends the next page
	LoadMore func(pageAtBottom int) tea.Cmd
	// LoadPrev is called with the page at the top; the host prepends the previous page
	LoadPrev func(pageAtTop int) tea.Cmd

	Debounce time.Duration
	Logger   *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.PageAtTop < 1 {
		c.PageAtTop = 1
	}
	if c.PageAtBottom < c.PageAtTop {
		c.PageAtBottom = c.PageAtTop
	}
	if c.LoadBuffer < 1 {
		c.LoadBuffer = DefaultLoadBuffer
	}
	if c.Debounce <= 0 {
		c.Debounce = DefaultDebounce
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// ScrollMsg tells the controller that the user moved the viewport
type ScrollMsg struct{}

// evaluateMsg is the debounced tick that runs the trigger evaluator
type evaluateMsg struct {
	id  int
	gen int // listener generation the tick was scheduled under
	seq int
}

// Model is the pagination controller
type Model struct {
	id     int
	cfg    Config
	vp     Viewport
	logger *slog.Logger

	pages       domain.PageRange
	loadBuffer  int
	loaderAtTop bool

	enabled   bool
	exhausted bool
	gen       int
	seq       int

	anchor        string // key of the element at the trigger edge, "" when none
	prevScrollY   int
	hasPrevSample bool
}

// New creates a controller over vp and scrolls it to the top
func New(vp Viewport, cfg Config) Model {
	cfg = cfg.withDefaults()
	id := nextID()
	m := Model{
		id:         id,
		cfg:        cfg,
		vp:         vp,
		logger:     cfg.Logger.With("component", "scroller", "id", id),
		pages:      domain.PageRange{Top: cfg.PageAtTop, Bottom: cfg.PageAtBottom},
		loadBuffer: cfg.LoadBuffer,
		enabled:    cfg.Enable,
	}
	vp.ScrollTo(0)
	return m
}

// ID returns the unique identifier of this controller
func (m Model) ID() int { return m.id }

// Enabled reports whether scroll and resize events are being listened to
func (m Model) Enabled() bool { return m.enabled }

// Exhausted reports whether all pages in both directions are loaded
func (m Model) Exhausted() bool { return m.exhausted }

// PageRange returns the page range the controller last accepted
func (m Model) PageRange() domain.PageRange { return m.pages }

// Anchor returns the key of the recorded anchor element
func (m Model) Anchor() (string, bool) { return m.anchor, m.anchor != "" }

// LoaderAtTop reports whether a requested previous page has not been merged yet
func (m Model) LoaderAtTop() bool { return m.loaderAtTop }

// LoadBuffer returns the trigger zone size
func (m Model) LoadBuffer() int { return m.loadBuffer }

// Mount starts listening
func (m *Model) Mount() {
	m.attach()
}

// Unmount stops listening; safe to call more than once
func (m *Model) Unmount() {
	m.detach()
}

// Reset forgets exhaustion, anchor and direction history and mounts again
func (m *Model) Reset(cfg Config) {
	m.detach()
	*m = New(m.vp, cfg)
	m.Mount()
}

// Update handles scroll, resize and debounce messages
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ScrollMsg, tea.WindowSizeMsg:
		return m, m.schedule()

	case evaluateMsg:
		if msg.id != m.id || msg.gen != m.gen || msg.seq != m.seq || !m.enabled {
			return m, nil
		}
		return m, m.Evaluate()
	}

	return m, nil
}

// SetConfig accepts a new configuration from the host; retention and listener
// toggling only run when the page range or element count changed
func (m *Model) SetConfig(cfg Config) {
	cfg = cfg.withDefaults()
	cfg.LoadBuffer = m.loadBuffer

	prev := m.cfg
	m.cfg = cfg

	if !configChanged(prev, cfg) {
		return
	}
	m.retainPosition(cfg)
	m.toggleListener(cfg)
}

func configChanged(prev, next Config) bool {
	return prev.PageAtTop != next.PageAtTop ||
		prev.PageAtBottom != next.PageAtBottom ||
		len(prev.Elements) != len(next.Elements)
}
