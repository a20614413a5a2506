package scroller

import (
	tea "github.com/charmbracelet/bubbletea"

	"scrollpager/internal/domain"
)

// Evaluate checks both trigger zones against the current viewport and returns
// the command of the callback that fired
func (m *Model) Evaluate() tea.Cmd {
	elems := m.cfg.Elements
	if len(elems) == 0 {
		m.detach()
		return nil
	}

	first := elems[0]
	trailing := elems[m.trailingIndex()]
	scrollY := m.vp.ScrollY()
	direction := m.direction(scrollY)

	bottomReached := direction == domain.DirectionDown &&
		scrollY+m.vp.Height() > trailing.OffsetTop()
	topReached := !bottomReached &&
		m.pages.Top != 1 &&
		direction == domain.DirectionUp &&
		scrollY-first.OffsetTop() < first.Height()*m.loadBuffer

	var cmd tea.Cmd
	switch {
	case bottomReached:
		m.logger.Debug("bottom reached", "page", m.pages.Bottom, "scroll_y", scrollY, "anchor", trailing.Key())
		if m.cfg.LoadMore != nil {
			cmd = m.cfg.LoadMore(m.pages.Bottom)
		}
		m.anchor = trailing.Key()
	case topReached:
		m.logger.Debug("top reached", "page", m.pages.Top, "scroll_y", scrollY, "anchor", first.Key())
		if m.cfg.LoadPrev != nil {
			cmd = m.cfg.LoadPrev(m.pages.Top)
		}
		m.anchor = first.Key()
		m.loaderAtTop = true
	}

	m.prevScrollY = scrollY
	m.hasPrevSample = true
	return cmd
}

// trailingIndex is loadBuffer elements before the end, clamped to 0
func (m *Model) trailingIndex() int {
	i := len(m.cfg.Elements) - m.loadBuffer
	if i < 0 {
		return 0
	}
	return i
}

// direction compares scrollY with the previous sample; down when there is none
func (m *Model) direction(scrollY int) domain.Direction {
	if m.hasPrevSample && scrollY < m.prevScrollY {
		return domain.DirectionUp
	}
	return domain.DirectionDown
}
