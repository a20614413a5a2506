package scroller

// Element is a rendered item; offsets and heights are in document rows
type Element interface {
	// Key identifies the item across re-renders
	Key() string
	OffsetTop() int
	Height() int
}

// Viewport is the scrollable window over the document
type Viewport interface {
	ScrollY() int
	Height() int
	ScrollTo(y int)
}
