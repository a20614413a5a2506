package ui

import (
	"github.com/charmbracelet/bubbles/viewport"
)

// viewportAdapter exposes the bubbles viewport to the scroll controller
type viewportAdapter struct {
	vp *viewport.Model
}

func (a viewportAdapter) ScrollY() int { return a.vp.YOffset }
func (a viewportAdapter) Height() int  { return a.vp.Height }

func (a viewportAdapter) ScrollTo(y int) {
	a.vp.SetYOffset(y)
}
