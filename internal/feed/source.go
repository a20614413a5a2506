package feed

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"scrollpager/internal/domain"
)

// ErrPageOutOfRange is returned for pages before the first or after the last
var ErrPageOutOfRange = errors.New("page out of range")

// Source hands out fixed-size pages of records, numbered from 1
type Source interface {
	Page(ctx context.Context, number, size int) (domain.Page, error)
}

// FileSource pages over the lines of a text file
type FileSource struct {
	path  string
	lines []string
}

// OpenFile reads path once and serves its lines as records
func OpenFile(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read source %s: %w", path, err)
	}

	return &FileSource{path: path, lines: lines}, nil
}

// Len returns the number of lines in the file
func (s *FileSource) Len() int {
	return len(s.lines)
}

// Page returns page number of the file
func (s *FileSource) Page(ctx context.Context, number, size int) (domain.Page, error) {
	if err := ctx.Err(); err != nil {
		return domain.Page{}, err
	}
	return slicePage(s.lines, number, size)
}

func slicePage(lines []string, number, size int) (domain.Page, error) {
	if size < 1 {
		return domain.Page{}, fmt.Errorf("invalid page size %d", size)
	}
	start := (number - 1) * size
	if number < 1 || (start >= len(lines) && !(number == 1 && len(lines) == 0)) {
		return domain.Page{}, fmt.Errorf("%w: %d", ErrPageOutOfRange, number)
	}

	end := start + size
	if end > len(lines) {
		end = len(lines)
	}

	page := domain.Page{
		Number:  number,
		Records: make([]domain.Record, 0, end-start),
		IsLast:  end == len(lines),
	}
	for i, line := range lines[start:end] {
		page.Records = append(page.Records, domain.Record{
			Page:  number,
			Index: i,
			Text:  line,
		})
	}
	return page, nil
}
