// Package fetch drives the loading state of each screen.
//
// A Lifecycle moves idle -> loading -> success|error and may re-enter
// loading on reload. Start hands out a Ticket; a result is applied only if
// it carries the newest ticket, so fast navigation never lets an old
// response overwrite the current one. Teardown turns every later call into
// a no-op.
//
// The loaders issue independent requests concurrently with errgroup.
// Primary resources (the post, the user, the two dashboard lists) fail the
// whole load. Secondary resources (author, comments, a user's posts) record
// their error and leave their section empty.
//
// There is no timeout here beyond the HTTP client's.
package fetch
