package collection

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type post struct {
	ID     int
	UserID int
	Title  string
	Author string
}

var postSpec = Spec[post]{
	ID:           func(p post) int { return p.ID },
	SearchFields: func(p post) []string { return []string{p.Title} },
	AuthorID:     func(p post) int { return p.UserID },
	SortField: func(p post, key SortKey) string {
		if key == SortAuthor {
			return p.Author
		}
		return p.Title
	},
}

func ids(items []post) []int {
	out := make([]int, len(items))
	for i, p := range items {
		out[i] = p.ID
	}
	return out
}

func samplePosts() []post {
	return []post{
		{ID: 3, UserID: 2, Title: "banana split", Author: "Ervin"},
		{ID: 1, UserID: 1, Title: "Apple pie", Author: "leanne"},
		{ID: 4, UserID: 1, Title: "apple tart", Author: "Leanne"},
		{ID: 2, UserID: 3, Title: "Cherry", Author: "Clementine"},
		{ID: 5, UserID: 2, Title: "banana bread", Author: "ervin"},
	}
}

func TestSettersResetPage(t *testing.T) {
	tests := []struct {
		name string
		set  func(v *View[post])
	}{
		{"search", func(v *View[post]) { v.SetSearch("x") }},
		{"filter", func(v *View[post]) { v.SetFilter(Filter{AuthorID: 2}) }},
		{"sort", func(v *View[post]) { v.SetSort(SortTitle) }},
		{"page size", func(v *View[post]) { v.SetPageSize(3) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewView(postSpec, 1)
			v.SetPage(4, 5)
			if v.State().Page != 4 {
				t.Fatalf("setup: page = %d, want 4", v.State().Page)
			}
			tt.set(v)
			if v.State().Page != 1 {
				t.Fatalf("page = %d after %s change, want 1", v.State().Page, tt.name)
			}
		})
	}
}

func TestSetPageClamps(t *testing.T) {
	tests := []struct {
		n, total, want int
	}{
		{0, 3, 1},
		{-7, 3, 1},
		{2, 3, 2},
		{9, 3, 3},
		{5, 0, 1},
		{1, -1, 1},
	}
	for _, tt := range tests {
		v := NewView(postSpec, 10)
		v.SetPage(tt.n, tt.total)
		if got := v.State().Page; got != tt.want {
			t.Errorf("SetPage(%d, %d) -> %d, want %d", tt.n, tt.total, got, tt.want)
		}
	}
}

func TestSetPageSizeBelowOneUsesDefault(t *testing.T) {
	v := NewView(postSpec, 3)
	v.SetPageSize(0)
	if got := v.State().PageSize; got != DefaultPageSize {
		t.Fatalf("PageSize = %d, want %d", got, DefaultPageSize)
	}
}

func TestDeriveFilterSearchAndSort(t *testing.T) {
	tests := []struct {
		name  string
		state ViewState
		want  []int
	}{
		{"default id order", DefaultState(), []int{1, 2, 3, 4, 5}},
		{"search is case-insensitive", ViewState{Search: "  APPLE "}, []int{1, 4}},
		{"author filter", ViewState{Filter: Filter{AuthorID: 2}}, []int{3, 5}},
		{"search and filter combine", ViewState{Search: "bread", Filter: Filter{AuthorID: 2}}, []int{5}},
		{"search and filter exclude", ViewState{Search: "apple", Filter: Filter{AuthorID: 2}}, []int{}},
		{"title sort folds case", ViewState{Sort: SortTitle}, []int{1, 4, 5, 3, 2}},
		{"author sort is stable", ViewState{Sort: SortAuthor}, []int{2, 3, 5, 1, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Derive(samplePosts(), postSpec, tt.state)
			if diff := cmp.Diff(tt.want, ids(page.Items)); diff != "" {
				t.Fatalf("ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeriveDoesNotMutateInput(t *testing.T) {
	items := samplePosts()
	before := append([]post(nil), items...)

	_ = Derive(items, postSpec, ViewState{Sort: SortTitle, PageSize: 2, Page: 2})

	if diff := cmp.Diff(before, items); diff != "" {
		t.Fatalf("input mutated (-before +after):\n%s", diff)
	}
}

func TestDeriveIsIdempotent(t *testing.T) {
	items := samplePosts()
	state := ViewState{Search: "a", Sort: SortAuthor, PageSize: 2, Page: 2}

	first := Derive(items, postSpec, state)
	second := Derive(items, postSpec, state)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("Derive not idempotent (-first +second):\n%s", diff)
	}
}

func TestDerivePartitionsCollection(t *testing.T) {
	var items []post
	for i := 1; i <= 23; i++ {
		items = append(items, post{ID: i, Title: fmt.Sprintf("title %02d", 24-i)})
	}

	for pageSize := 1; pageSize <= 25; pageSize++ {
		state := ViewState{Sort: SortTitle, PageSize: pageSize, Page: 1}
		first := Derive(items, postSpec, state)

		seen := map[int]bool{}
		sum := 0
		for n := 1; n <= first.TotalPages; n++ {
			state.Page = n
			page := Derive(items, postSpec, state)
			if len(page.Items) > pageSize {
				t.Fatalf("pageSize %d page %d: %d items", pageSize, n, len(page.Items))
			}
			for _, p := range page.Items {
				if seen[p.ID] {
					t.Fatalf("pageSize %d: id %d appears on two pages", pageSize, p.ID)
				}
				seen[p.ID] = true
			}
			sum += len(page.Items)
		}
		if sum != first.TotalItems || sum != len(items) {
			t.Fatalf("pageSize %d: pages hold %d items, want %d", pageSize, sum, len(items))
		}
	}
}

func TestDeriveSortStability(t *testing.T) {
	items := []post{
		{ID: 9, Title: "same"},
		{ID: 2, Title: "Same"},
		{ID: 7, Title: "aaa"},
		{ID: 4, Title: "SAME"},
	}
	page := Derive(items, postSpec, ViewState{Sort: SortTitle})
	if diff := cmp.Diff([]int{7, 9, 2, 4}, ids(page.Items)); diff != "" {
		t.Fatalf("equal keys reordered (-want +got):\n%s", diff)
	}
}

func TestDeriveTwoItemsPageSizeOne(t *testing.T) {
	items := []post{{ID: 1, Title: "first"}, {ID: 2, Title: "second"}}
	v := NewView(postSpec, 10)
	v.SetPageSize(1)
	v.SetPage(2, v.Derive(items).TotalPages)

	page := v.Derive(items)
	if diff := cmp.Diff([]int{2}, ids(page.Items)); diff != "" {
		t.Fatalf("page items (-want +got):\n%s", diff)
	}
	if page.TotalPages != 2 || page.Number != 2 || page.TotalItems != 2 {
		t.Fatalf("page meta = %+v, want number 2 of 2 with 2 items", page)
	}
	if !page.HasPrev() || page.HasNext() {
		t.Fatalf("HasPrev/HasNext = %v/%v, want true/false", page.HasPrev(), page.HasNext())
	}
}

func TestDeriveMalformedStateFallsBack(t *testing.T) {
	state := ViewState{Sort: "bogus", PageSize: -3, Page: -1, Filter: Filter{AuthorID: -4}}
	page := Derive(samplePosts(), postSpec, state)

	if diff := cmp.Diff([]int{1, 2, 3, 4, 5}, ids(page.Items)); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	if page.Number != 1 || page.TotalPages != 1 {
		t.Fatalf("page = %d/%d, want 1/1", page.Number, page.TotalPages)
	}
}

func TestDeriveClampsPastLastPage(t *testing.T) {
	page := Derive(samplePosts(), postSpec, ViewState{PageSize: 2, Page: 99})
	if page.Number != 3 || page.TotalPages != 3 {
		t.Fatalf("page = %d/%d, want 3/3", page.Number, page.TotalPages)
	}
	if diff := cmp.Diff([]int{5}, ids(page.Items)); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestDeriveEmptyCollectionIsOneEmptyPage(t *testing.T) {
	page := Derive[post](nil, postSpec, ViewState{Page: 4})
	if page.TotalPages != 1 || page.Number != 1 || page.TotalItems != 0 || len(page.Items) != 0 {
		t.Fatalf("empty page = %+v, want one empty page", page)
	}
}

func TestDeriveUnicodeSearch(t *testing.T) {
	items := []post{{ID: 1, Title: "Été à Paris"}, {ID: 2, Title: "مرحبا بالعالم"}}
	tests := map[string][]int{
		"ÉTÉ":   {1},
		"بالعا": {2},
		"paris": {1},
	}
	for term, want := range tests {
		page := Derive(items, postSpec, ViewState{Search: term})
		if diff := cmp.Diff(want, ids(page.Items)); diff != "" {
			t.Errorf("search %q (-want +got):\n%s", term, diff)
		}
	}
}

func TestParseSortKeyAndNext(t *testing.T) {
	if k, ok := ParseSortKey(" Title "); !ok || k != SortTitle {
		t.Fatalf("ParseSortKey(Title) = %q, %v", k, ok)
	}
	if k, ok := ParseSortKey("views"); ok || k != SortID {
		t.Fatalf("ParseSortKey(views) = %q, %v; want id, false", k, ok)
	}

	var order []string
	k := SortID
	for range 4 {
		order = append(order, string(k))
		k = k.Next()
	}
	if got := strings.Join(order, ","); got != "id,title,author,id" {
		t.Fatalf("cycle = %s", got)
	}
}

func TestCommentPageSize(t *testing.T) {
	tests := []struct {
		postID int
		want   int
	}{
		{1, 8}, {2, 3}, {3, 6}, {4, 4}, {5, 7},
		{6, 2}, {7, 9}, {8, 5}, {9, 3}, {10, 10},
		{11, 6}, {17, 5}, {24, 5}, {14, 2}, {20, 8},
		{0, 5}, {-3, 5},
	}
	for _, tt := range tests {
		if got := CommentPageSize(tt.postID); got != tt.want {
			t.Errorf("CommentPageSize(%d) = %d, want %d", tt.postID, got, tt.want)
		}
	}

	for id := 11; id <= 200; id++ {
		if got := CommentPageSize(id); got < 2 || got > 10 {
			t.Fatalf("CommentPageSize(%d) = %d, outside [2,10]", id, got)
		}
	}
}

func TestTotalPagesAndBounds(t *testing.T) {
	tests := []struct {
		total, size, wantPages int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{100, 7, 15},
		{5, 0, 1},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.size); got != tt.wantPages {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.size, got, tt.wantPages)
		}
	}

	if s, e := Bounds(3, 4, 10); s != 8 || e != 10 {
		t.Fatalf("Bounds(3,4,10) = %d,%d; want 8,10", s, e)
	}
	if s, e := Bounds(9, 4, 10); s != 10 || e != 10 {
		t.Fatalf("Bounds(9,4,10) = %d,%d; want 10,10", s, e)
	}
}
