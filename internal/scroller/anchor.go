package scroller

// retainPosition accepts a new page range and, after a prepend, moves the
// viewport back onto the anchor element
func (m *Model) retainPosition(cfg Config) {
	topChanged := cfg.PageAtTop < m.pages.Top
	bottomChanged := cfg.PageAtBottom > m.pages.Bottom
	// earlier pages exist but no trigger has fired yet
	hasPrevPages := cfg.PageAtTop > 1 && m.anchor == ""

	if topChanged || hasPrevPages {
		m.pages.Top = cfg.PageAtTop
		if offset, ok := m.resolveAnchor(); ok {
			m.logger.Debug("restoring position", "anchor", m.anchor, "offset", offset, "top", m.pages.Top)
			m.scrollTo(offset)
		}
		m.loaderAtTop = false
	}
	if bottomChanged {
		m.pages.Bottom = cfg.PageAtBottom
	}
}

// resolveAnchor looks the anchor up in the current elements; a key that is
// no longer rendered counts as no anchor
func (m *Model) resolveAnchor() (int, bool) {
	if m.anchor == "" {
		return 0, false
	}
	for _, e := range m.cfg.Elements {
		if e.Key() == m.anchor {
			return e.OffsetTop(), true
		}
	}
	return 0, false
}
