package scroller

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// attach starts accepting scroll and resize events; no-op when attached or exhausted
func (m *Model) attach() {
	if m.exhausted || m.enabled {
		return
	}
	m.enabled = true
	m.logger.Debug("listener attached", "generation", m.gen)
}

// detach stops accepting events and retires ticks already scheduled
func (m *Model) detach() {
	if !m.enabled {
		return
	}
	m.enabled = false
	m.gen++
	m.logger.Debug("listener detached", "generation", m.gen)
}

// schedule coalesces a burst of events; only the tick with the latest seq evaluates
func (m *Model) schedule() tea.Cmd {
	if !m.enabled {
		return nil
	}
	m.seq++
	tick := evaluateMsg{id: m.id, gen: m.gen, seq: m.seq}
	return tea.Tick(m.cfg.Debounce, func(time.Time) tea.Msg {
		return tick
	})
}

// toggleListener detaches for good when no page remains on either side,
// otherwise it makes sure the listener is attached
func (m *Model) toggleListener(cfg Config) {
	if cfg.IsLastResult && m.pages.Top == 1 {
		m.detach()
		if !m.exhausted {
			m.logger.Info("all pages loaded, listener disabled", "bottom", m.pages.Bottom)
		}
		m.exhausted = true
		return
	}
	if !m.enabled {
		m.attach()
	}
}

// scrollTo moves the viewport without the move being observed as a user scroll
func (m *Model) scrollTo(y int) {
	m.detach()
	m.vp.ScrollTo(y)
	m.attach()
}
