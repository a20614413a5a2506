package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"scrollpager/internal/domain"
)

const loadingText = "Loading..."

// Row is the measured geometry of one rendered record
type Row struct {
	key    string
	top    int
	height int
}

func (r Row) Key() string    { return r.key }
func (r Row) OffsetTop() int { return r.top }
func (r Row) Height() int    { return r.height }

// Document is the rendered list and the geometry of its records
type Document struct {
	Content string
	Rows    []Row
	Lines   int
}

// LayoutOptions controls what surrounds the records
type LayoutOptions struct {
	Width           int
	TopLoader       bool // earlier pages exist
	BottomLoader    bool // later pages exist
	ShowPageMarkers bool
}

// Renderer lays records out into a scrollable document
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer(styles *Styles) *Renderer {
	if styles == nil {
		styles = NewStyles()
	}
	return &Renderer{styles: styles}
}

// Layout renders pages top to bottom and measures every record row.
// Offsets count every line of the document, loaders and markers included.
func (r *Renderer) Layout(pages []domain.Page, opts LayoutOptions) Document {
	var doc Document
	var blocks []string

	add := func(block string) int {
		top := doc.Lines
		blocks = append(blocks, block)
		doc.Lines += lipgloss.Height(block)
		return top
	}

	if opts.TopLoader {
		add(r.styles.Loader.Render(loadingText))
	}

	recordStyle := r.styles.Record
	if opts.Width > 0 {
		recordStyle = recordStyle.Width(opts.Width)
	}

	for _, p := range pages {
		if opts.ShowPageMarkers {
			add(r.styles.PageMarker.Render(fmt.Sprintf("── page %d ──", p.Number)))
		}
		for _, rec := range p.Records {
			block := recordStyle.Render(rec.Text)
			top := add(block)
			doc.Rows = append(doc.Rows, Row{
				key:    rec.Key(),
				top:    top,
				height: lipgloss.Height(block),
			})
		}
	}

	if opts.BottomLoader {
		add(r.styles.Loader.Render(loadingText))
	}

	doc.Content = strings.Join(blocks, "\n")
	return doc
}

// PlainText renders pages without styling, for the external pager
func PlainText(pages []domain.Page) string {
	var b strings.Builder
	for _, p := range pages {
		fmt.Fprintf(&b, "── page %d ──\n", p.Number)
		for _, rec := range p.Records {
			b.WriteString(rec.Text)
			b.WriteByte('\n')
		}
	}
	return b.String()
}
