package domain

// Direction is the vertical direction of the last observed scroll
type Direction string

const (
	DirectionDown Direction = "down"
	DirectionUp   Direction = "up"
)

// PageRange is the inclusive span of pages currently rendered
type PageRange struct {
	Top    int
	Bottom int
}

// Contains reports whether page lies within the range
func (r PageRange) Contains(page int) bool {
	return page >= r.Top && page <= r.Bottom
}

// Record is a single entry delivered by a page source
type Record struct {
	Page  int
	Index int // position within the page
	Text  string
}

// Key returns a stable identifier for the record across re-renders
func (r Record) Key() string {
	return RecordKey(r.Page, r.Index)
}

// Page is one page of records as returned by a source
type Page struct {
	Number  int
	Records []Record
	IsLast  bool // no page exists after this one
}
