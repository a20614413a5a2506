package feed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"scrollpager/internal/domain"
)

var words = []string{
	"scroll", "page", "buffer", "anchor", "viewport", "record", "terminal",
	"offset", "window", "trigger", "loader", "range", "row", "edge",
}

// SyntheticSource generates deterministic records for a fixed number of pages
type SyntheticSource struct {
	Pages   int
	Latency time.Duration // simulated load time
}

// NewSyntheticSource creates a generator with pages pages
func NewSyntheticSource(pages int, latency time.Duration) *SyntheticSource {
	return &SyntheticSource{Pages: pages, Latency: latency}
}

// Page builds page number. Record text length varies so rows wrap unevenly.
func (s *SyntheticSource) Page(ctx context.Context, number, size int) (domain.Page, error) {
	if s.Latency > 0 {
		select {
		case <-ctx.Done():
			return domain.Page{}, ctx.Err()
		case <-time.After(s.Latency):
		}
	} else if err := ctx.Err(); err != nil {
		return domain.Page{}, err
	}

	if number < 1 || number > s.Pages {
		return domain.Page{}, fmt.Errorf("%w: %d", ErrPageOutOfRange, number)
	}
	if size < 1 {
		return domain.Page{}, fmt.Errorf("invalid page size %d", size)
	}

	page := domain.Page{
		Number:  number,
		Records: make([]domain.Record, size),
		IsLast:  number == s.Pages,
	}
	for i := range page.Records {
		n := (number-1)*size + i
		var b strings.Builder
		fmt.Fprintf(&b, "#%d", n+1)
		for w := 0; w < 3+(n*7)%11; w++ {
			b.WriteByte(' ')
			b.WriteString(words[(n+w*5)%len(words)])
		}
		page.Records[i] = domain.Record{Page: number, Index: i, Text: b.String()}
	}
	return page, nil
}
