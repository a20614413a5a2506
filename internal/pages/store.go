package pages

import (
	"fmt"
	"sort"
	"sync"

	"scrollpager/internal/domain"
)

// Store keeps a contiguous window of loaded pages
type Store struct {
	mu     sync.RWMutex
	pages  map[int]domain.Page
	start  int
	top    int
	bottom int
	last   bool
}

// NewStore creates an empty store whose first page will be start
func NewStore(start int) *Store {
	s := &Store{}
	s.Reset(start)
	return s
}

// Reset drops every page; the next accepted page must be start
func (s *Store) Reset(start int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if start < 1 {
		start = 1
	}
	s.pages = make(map[int]domain.Page)
	s.start = start
	s.top = 0
	s.bottom = 0
	s.last = false
}

// Add merges a page into the window. Pages already present are ignored and
// pages not adjacent to the window are rejected. It reports whether the
// window changed.
func (s *Store) Add(page domain.Page) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pages[page.Number]; ok {
		return false, nil
	}

	switch {
	case len(s.pages) == 0:
		if page.Number != s.start {
			return false, fmt.Errorf("first page must be %d, got %d", s.start, page.Number)
		}
		s.top, s.bottom = page.Number, page.Number
	case page.Number == s.top-1:
		s.top = page.Number
	case page.Number == s.bottom+1:
		s.bottom = page.Number
	default:
		return false, fmt.Errorf("page %d is not adjacent to %d-%d", page.Number, s.top, s.bottom)
	}

	s.pages[page.Number] = page
	if page.Number == s.bottom && page.IsLast {
		s.last = true
	}
	return true, nil
}

// MarkLast records that no page exists after the bottom one
func (s *Store) MarkLast() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = true
}

// Empty reports whether no page has been loaded yet
func (s *Store) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pages) == 0
}

// Has reports whether page is loaded
func (s *Store) Has(page int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.pages[page]
	return ok
}

// Range returns the loaded page range; before any page it is the start page
func (s *Store) Range() domain.PageRange {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.pages) == 0 {
		return domain.PageRange{Top: s.start, Bottom: s.start}
	}
	return domain.PageRange{Top: s.top, Bottom: s.bottom}
}

// IsLast reports whether the bottom page is the final one
func (s *Store) IsLast() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// Pages returns the loaded pages in order
func (s *Store) Pages() []domain.Page {
	s.mu.RLock()
	defer s.mu.RUnlock()

	numbers := make([]int, 0, len(s.pages))
	for n := range s.pages {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	out := make([]domain.Page, 0, len(numbers))
	for _, n := range numbers {
		out = append(out, s.pages[n])
	}
	return out
}

// Records returns every loaded record in order
func (s *Store) Records() []domain.Record {
	var out []domain.Record
	for _, p := range s.Pages() {
		out = append(out, p.Records...)
	}
	return out
}
