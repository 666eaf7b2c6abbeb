// Package listing implements the client-side search and paging applied to
// tables the console has already fetched. Nothing here reaches the backend.
package listing

import "strings"

// DefaultRowsPerPage is used when a non-positive page size is requested.
const DefaultRowsPerPage = 10

// Row is anything that can describe its displayed columns.
type Row interface {
	Fields() []string
}

// Filter keeps the items where any field contains term, ignoring case.
// An empty term keeps everything.
func Filter[T Row](items []T, term string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return items
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, f := range item.Fields() {
			if strings.Contains(strings.ToLower(f), term) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// Page describes one slice of a listing. Index is zero based.
type Page struct {
	Index int
	Size  int
	Total int
}

// Count returns the number of pages, at least 1.
func (p Page) Count() int {
	if p.Total == 0 || p.Size <= 0 {
		return 1
	}
	return (p.Total + p.Size - 1) / p.Size
}

// Paginate returns the items of page index. Out of range indexes are clamped.
func Paginate[T any](items []T, index, size int) ([]T, Page) {
	if size <= 0 {
		size = DefaultRowsPerPage
	}
	p := Page{Index: index, Size: size, Total: len(items)}
	if p.Index >= p.Count() {
		p.Index = p.Count() - 1
	}
	if p.Index < 0 {
		p.Index = 0
	}

	offset := p.Index * size
	end := min(offset+size, len(items))
	if offset >= end {
		return nil, p
	}
	return items[offset:end], p
}

// Table is the state of one listing view: the fetched rows plus the current
// search term and page.
type Table[T Row] struct {
	all  []T
	term string
	page int
	size int
}

func NewTable[T Row](rowsPerPage int) *Table[T] {
	if rowsPerPage <= 0 {
		rowsPerPage = DefaultRowsPerPage
	}
	return &Table[T]{size: rowsPerPage}
}

// Reset replaces the rows with a fresh fetch and returns to the first page.
// The search term is kept.
func (t *Table[T]) Reset(items []T) {
	t.all = items
	t.page = 0
}

// Search sets the term and returns to the first page.
func (t *Table[T]) Search(term string) {
	t.term = term
	t.page = 0
}

func (t *Table[T]) Term() string { return t.term }

func (t *Table[T]) SetPage(index int) {
	t.page = index
}

// SetRowsPerPage changes the page size and returns to the first page.
func (t *Table[T]) SetRowsPerPage(n int) {
	if n <= 0 {
		n = DefaultRowsPerPage
	}
	t.size = n
	t.page = 0
}

// Rows returns the visible rows and the page they belong to.
func (t *Table[T]) Rows() ([]T, Page) {
	rows, p := Paginate(Filter(t.all, t.term), t.page, t.size)
	t.page = p.Index
	return rows, p
}

// Matches returns every row that passes the search, unpaged.
func (t *Table[T]) Matches() []T {
	return Filter(t.all, t.term)
}

// Items returns every loaded row, ignoring the search.
func (t *Table[T]) Items() []T { return t.all }

func (t *Table[T]) Len() int { return len(t.all) }
