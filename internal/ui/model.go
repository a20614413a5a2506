package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"scrollpager/internal/config"
	"scrollpager/internal/domain"
	"scrollpager/internal/eventbus"
	"scrollpager/internal/feed"
	"scrollpager/internal/pages"
	"scrollpager/internal/scroller"
	"scrollpager/internal/ui/views"
)

const statusTimeout = 5 * time.Second

// Model represents the UI state
type Model struct {
	bus       eventbus.EventBus
	config    *config.Config
	configSvc config.ConfigService
	store     *pages.Store
	logger    *slog.Logger

	width    int
	height   int
	viewport viewport.Model
	scroller scroller.Model
	keys     keyMap
	help     help.Model
	styles   *views.Styles
	renderer *views.Renderer
	rows     []scroller.Element
	lines    int

	status      string
	statusStyle lipgloss.Style
	statusID    int
	readyMarker bool
}

// Options carries optional collaborators for NewModel
type Options struct {
	ConfigService config.ConfigService
	Logger        *slog.Logger
	// ReadyMarker prints a marker in the header once the first page is shown
	ReadyMarker bool
}

// NewModel creates a new UI model
func NewModel(bus eventbus.EventBus, cfg *config.Config, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	styles := views.NewStyles()

	m := &Model{
		bus:         bus,
		config:      cfg,
		configSvc:   opts.ConfigService,
		store:       pages.NewStore(cfg.StartPage),
		logger:      logger.With("component", "ui"),
		viewport:    viewport.New(0, 0),
		help:        help.New(),
		styles:      styles,
		renderer:    views.NewRenderer(styles),
		statusStyle: styles.Status,
		readyMarker: opts.ReadyMarker,
	}
	m.keys = newKeyMap(m.viewport.KeyMap)
	m.help.Styles.ShortDesc = styles.Help
	m.help.Styles.FullDesc = styles.Help
	m.scroller = scroller.New(viewportAdapter{vp: &m.viewport}, m.scrollerConfig())

	return m
}

// Init mounts the scroll controller and asks for the first page
func (m *Model) Init() tea.Cmd {
	m.scroller.Mount()
	m.requestPage(m.config.StartPage, domain.DirectionDown)
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = msg.Width
		m.relayout()
		return m, m.forwardToScroller(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.scrollViewport(msg)

	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case pagerMsg:
		if msg.err != nil {
			m.logger.Error("pager failed", "error", msg.err)
			return m, m.setStatus(fmt.Sprintf("Pager failed: %v", msg.err), m.styles.StatusError)
		}
		return m, nil

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return m, nil
	}

	// Debounce ticks belong to the scroll controller
	return m, m.forwardToScroller(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.scroller.Unmount()
		m.saveOnExit()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resizeViewport()
		return m, nil

	case key.Matches(msg, m.keys.Pager):
		return m, openPager(views.PlainText(m.store.Pages()))

	case key.Matches(msg, m.keys.Reload):
		return m, m.reload()

	case key.Matches(msg, m.keys.Top):
		return m, m.moveTo(m.viewport.GotoTop)

	case key.Matches(msg, m.keys.Bottom):
		return m, m.moveTo(m.viewport.GotoBottom)
	}

	return m, m.scrollViewport(msg)
}

// scrollViewport lets the viewport handle scrolling input and reports a
// user scroll to the controller when the offset moved
func (m *Model) scrollViewport(msg tea.Msg) tea.Cmd {
	before := m.viewport.YOffset
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	if m.viewport.YOffset == before {
		return cmd
	}
	return tea.Batch(cmd, m.forwardToScroller(scroller.ScrollMsg{}))
}

func (m *Model) moveTo(jump func() []string) tea.Cmd {
	before := m.viewport.YOffset
	jump()
	if m.viewport.YOffset == before {
		return nil
	}
	return m.forwardToScroller(scroller.ScrollMsg{})
}

func (m *Model) forwardToScroller(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.scroller, cmd = m.scroller.Update(msg)
	return cmd
}

func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.PageLoadedEvent:
		changed, err := m.store.Add(e.Page)
		if err != nil {
			// stale page from before a reload
			m.logger.Warn("page discarded", "page", e.Page.Number, "error", err)
			return nil
		}
		if !changed {
			return nil
		}
		m.applyPages()
		status := m.setStatus(fmt.Sprintf("Loaded page %d", e.Page.Number), m.styles.StatusSuccess)
		return tea.Batch(status, m.fillViewport())

	case eventbus.ErrorEvent:
		r := m.store.Range()
		if errors.Is(e.Err, feed.ErrPageOutOfRange) && e.Page > r.Bottom {
			m.store.MarkLast()
			m.applyPages()
			return nil
		}
		m.logger.Error("load failed", "page", e.Page, "error", e.Err)
		return m.setStatus(e.Message, m.styles.StatusError)
	}
	return nil
}

// applyPages re-renders after the store changed and hands the new
// geometry to the controller
func (m *Model) applyPages() {
	m.relayout()
	m.scroller.SetConfig(m.scrollerConfig())
}

// fillViewport re-checks the triggers when the content does not fill the
// screen, since no scroll can happen then
func (m *Model) fillViewport() tea.Cmd {
	if m.viewport.Height == 0 || m.lines > m.viewport.Height {
		return nil
	}
	return m.forwardToScroller(scroller.ScrollMsg{})
}

func (m *Model) relayout() {
	r := m.store.Range()
	doc := m.renderer.Layout(m.store.Pages(), views.LayoutOptions{
		Width:           m.width,
		TopLoader:       r.Top != 1,
		BottomLoader:    !m.store.IsLast(),
		ShowPageMarkers: m.config.UI.ShowPageMarkers,
	})

	m.rows = make([]scroller.Element, len(doc.Rows))
	for i, row := range doc.Rows {
		m.rows[i] = row
	}
	m.lines = doc.Lines
	m.viewport.SetContent(doc.Content)
	m.resizeViewport()
}

func (m *Model) resizeViewport() {
	h := m.height - lipgloss.Height(m.headerView()) - lipgloss.Height(m.footerView())
	if h < 1 {
		h = 1
	}
	m.viewport.Height = h
}

func (m *Model) scrollerConfig() scroller.Config {
	r := m.store.Range()
	return scroller.Config{
		Elements:     m.rows,
		PageAtTop:    r.Top,
		PageAtBottom: r.Bottom,
		LoadBuffer:   m.config.Scroll.LoadBuffer,
		Enable:       m.config.Scroll.Enable,
		IsLastResult: m.store.IsLast(),
		LoadMore:     m.loadMore,
		LoadPrev:     m.loadPrev,
		Debounce:     m.config.Scroll.Debounce(),
		Logger:       m.logger,
	}
}

// loadMore asks for the page after the bottom one unless the source has no more
func (m *Model) loadMore(pageAtBottom int) tea.Cmd {
	if m.store.IsLast() {
		return nil
	}
	m.requestPage(pageAtBottom+1, domain.DirectionDown)
	return nil
}

func (m *Model) loadPrev(pageAtTop int) tea.Cmd {
	m.requestPage(pageAtTop-1, domain.DirectionUp)
	return nil
}

// requestPage publishes a page request; pages already shown are not asked for again
func (m *Model) requestPage(page int, direction domain.Direction) {
	if page < 1 || m.store.Has(page) {
		return
	}
	m.status = fmt.Sprintf("Loading page %d...", page)
	m.statusStyle = m.styles.StatusLoading
	m.bus.Publish(eventbus.PageRequestedEvent{Page: page, Direction: direction})
}

func (m *Model) reload() tea.Cmd {
	m.store.Reset(m.config.StartPage)
	m.relayout()
	m.scroller.Reset(m.scrollerConfig())
	m.requestPage(m.config.StartPage, domain.DirectionDown)
	return nil
}

func (m *Model) saveOnExit() {
	if !m.config.UI.AutosaveOnExit || m.configSvc == nil || m.store.Empty() {
		return
	}
	m.config.StartPage = m.store.Range().Top
	if err := m.configSvc.Save(m.config); err != nil {
		m.logger.Error("failed to save config", "error", err)
	}
}

func (m *Model) setStatus(text string, style lipgloss.Style) tea.Cmd {
	m.statusID++
	id := m.statusID
	m.status = text
	m.statusStyle = style
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

// View renders the model
func (m *Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		m.viewport.View(),
		m.footerView(),
	)
}

func (m *Model) headerView() string {
	r := m.store.Range()
	title := m.styles.Title.Render("scrollpager")
	info := fmt.Sprintf(" pages %d-%d", r.Top, r.Bottom)
	if m.store.IsLast() {
		info += " (end)"
	}
	if m.scroller.LoaderAtTop() {
		info += " ↑"
	}
	header := title + m.styles.Dim.Render(info)
	if m.readyMarker && !m.store.Empty() {
		header += " __READY__"
	}
	return header
}

func (m *Model) footerView() string {
	var b strings.Builder
	if m.status != "" {
		b.WriteString(m.statusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
