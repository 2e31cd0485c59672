// Package collection turns a raw list of records plus a ViewState into the
// page a screen displays.
//
// The pipeline is filter, then stable sort, then paginate:
//
//	items ──filter(search AND author)──> sort(id | title | author) ──> slice [(p-1)*n, p*n)
//
// Derive is a pure function. A View wraps a ViewState and enforces the
// setter rule that changing search, filter, sort or page size returns to the
// first page. Page numbers are always clamped into [1, max(1, totalPages)],
// and an empty result is a single empty page.
//
// Search and title/author sorting compare Unicode case-folded text, so
// "ÉTÉ" matches "été".
package collection
