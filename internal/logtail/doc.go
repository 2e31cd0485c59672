// Package logtail reads the tail of the postdeck log file and renders its
// JSON records for people.
//
// Read keeps a ring buffer of maxLines entries, so memory stays bounded by
// the requested tail rather than the file size. A missing file is not an
// error; it simply has no lines yet.
//
// Format turns a slog JSON record into:
//
//	2025-12-13 05:11:12 WARN [mutation] – remote delete failed
//	    - error: api DELETE /posts/5 returned status 500
//	    - id: 5
//
// Extra attributes are sorted by key. Lines that are not JSON pass through
// unchanged, which keeps panics and stray writes visible.
package logtail
