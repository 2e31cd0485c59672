package collection

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// SortKey selects the comparator applied by Derive.
type SortKey string

const (
	SortID     SortKey = "id"
	SortTitle  SortKey = "title"
	SortAuthor SortKey = "author"
)

// SortKeys lists the keys in cycling order.
var SortKeys = []SortKey{SortID, SortTitle, SortAuthor}

// ParseSortKey maps user input to a SortKey. Unknown input yields SortID and false.
func ParseSortKey(s string) (SortKey, bool) {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(SortKeys, key) {
		return key, true
	}
	return SortID, false
}

// Next returns the key after k in SortKeys, wrapping around.
func (k SortKey) Next() SortKey {
	i := slices.Index(SortKeys, k)
	return SortKeys[(i+1)%len(SortKeys)]
}

// Filter is the structured part of the view criteria.
type Filter struct {
	// AuthorID restricts the view to one author. Zero matches everything.
	AuthorID int
}

// Active reports whether the filter restricts anything.
func (f Filter) Active() bool { return f.AuthorID > 0 }

// DefaultPageSize is used when a caller supplies a page size below 1.
const DefaultPageSize = 10

// ViewState is the full set of criteria Derive applies to a collection.
type ViewState struct {
	Search   string
	Filter   Filter
	Sort     SortKey
	PageSize int
	Page     int
}

// DefaultState returns an unfiltered, id-sorted first page.
func DefaultState() ViewState {
	return ViewState{Sort: SortID, PageSize: DefaultPageSize, Page: 1}
}

// normalized replaces malformed fields with their defaults.
func (s ViewState) normalized() ViewState {
	s.Search = strings.TrimSpace(s.Search)
	if s.Filter.AuthorID < 0 {
		s.Filter = Filter{}
	}
	if !slices.Contains(SortKeys, s.Sort) {
		s.Sort = SortID
	}
	if s.PageSize < 1 {
		s.PageSize = DefaultPageSize
	}
	if s.Page < 1 {
		s.Page = 1
	}
	return s
}

// Page is the visible slice of a filtered and sorted collection.
type Page[T any] struct {
	Items      []T
	Number     int
	TotalPages int
	TotalItems int
}

// HasPrev reports whether a page precedes this one.
func (p Page[T]) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a page follows this one.
func (p Page[T]) HasNext() bool { return p.Number < p.TotalPages }

// Spec tells the engine how to read an entity.
type Spec[T any] struct {
	ID           func(T) int
	SearchFields func(T) []string
	// AuthorID is optional; without it the structured filter matches everything.
	AuthorID  func(T) int
	SortField func(T, SortKey) string
}

// View owns the criteria for one on-screen list.
type View[T any] struct {
	spec  Spec[T]
	state ViewState
}

// NewView returns a view in the default state with the given page size.
func NewView[T any](spec Spec[T], pageSize int) *View[T] {
	state := DefaultState()
	if pageSize > 0 {
		state.PageSize = pageSize
	}
	return &View[T]{spec: spec, state: state}
}

// State returns the current criteria.
func (v *View[T]) State() ViewState { return v.state }

// SetSearch changes the search term and returns to the first page.
func (v *View[T]) SetSearch(term string) {
	v.state.Search = term
	v.state.Page = 1
}

// SetFilter changes the structured filter and returns to the first page.
func (v *View[T]) SetFilter(f Filter) {
	v.state.Filter = f
	v.state.Page = 1
}

// SetSort changes the sort key and returns to the first page.
func (v *View[T]) SetSort(key SortKey) {
	v.state.Sort = key
	v.state.Page = 1
}

// SetPageSize changes the page size and returns to the first page.
// Sizes below 1 fall back to DefaultPageSize.
func (v *View[T]) SetPageSize(n int) {
	if n < 1 {
		n = DefaultPageSize
	}
	v.state.PageSize = n
	v.state.Page = 1
}

// SetPage moves to page n, clamped into [1, max(1, totalPages)].
func (v *View[T]) SetPage(n, totalPages int) {
	v.state.Page = ClampPage(n, totalPages)
}

// Derive applies the current criteria to items.
func (v *View[T]) Derive(items []T) Page[T] {
	return Derive(items, v.spec, v.state)
}

// Derive filters, stable-sorts and paginates items according to state.
// It never modifies items and never fails: malformed state falls back to
// defaults and the page number is clamped.
func Derive[T any](items []T, spec Spec[T], state ViewState) Page[T] {
	state = state.normalized()
	fold := cases.Fold()

	needle := fold.String(state.Search)
	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if matchesFilter(item, spec, state.Filter) && matchesSearch(item, spec, needle, fold) {
			filtered = append(filtered, item)
		}
	}

	sortItems(filtered, spec, state.Sort, fold)

	total := len(filtered)
	totalPages := TotalPages(total, state.PageSize)
	number := ClampPage(state.Page, totalPages)
	start, end := Bounds(number, state.PageSize, total)

	return Page[T]{
		Items:      filtered[start:end:end],
		Number:     number,
		TotalPages: totalPages,
		TotalItems: total,
	}
}

func matchesFilter[T any](item T, spec Spec[T], f Filter) bool {
	if !f.Active() || spec.AuthorID == nil {
		return true
	}
	return spec.AuthorID(item) == f.AuthorID
}

func matchesSearch[T any](item T, spec Spec[T], needle string, fold cases.Caser) bool {
	if needle == "" {
		return true
	}
	if spec.SearchFields == nil {
		return false
	}
	for _, field := range spec.SearchFields(item) {
		if strings.Contains(fold.String(field), needle) {
			return true
		}
	}
	return false
}

func sortItems[T any](items []T, spec Spec[T], key SortKey, fold cases.Caser) {
	if key == SortID || spec.SortField == nil {
		if spec.ID == nil {
			return
		}
		slices.SortStableFunc(items, func(a, b T) int {
			return cmp.Compare(spec.ID(a), spec.ID(b))
		})
		return
	}

	// Fold each key once instead of on every comparison.
	type keyed struct {
		key  string
		item T
	}
	decorated := make([]keyed, len(items))
	for i, item := range items {
		decorated[i] = keyed{key: fold.String(spec.SortField(item, key)), item: item}
	}
	slices.SortStableFunc(decorated, func(a, b keyed) int {
		return strings.Compare(a.key, b.key)
	})
	for i := range decorated {
		items[i] = decorated[i].item
	}
}
