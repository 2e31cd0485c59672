// Package placeholder is the HTTP client for JSONPlaceholder-style REST APIs.
//
// # Endpoints
//
//	GET    /posts                 ListPosts
//	GET    /posts/{id}            GetPost        (404 -> ErrNotFound)
//	GET    /posts?userId={id}     PostsByUser
//	GET    /comments?postId={id}  CommentsByPost
//	GET    /users                 ListUsers
//	GET    /users/{id}            GetUser        (404 -> ErrNotFound)
//	POST   /posts                 CreatePost
//	PUT    /posts/{id}            UpdatePost
//	DELETE /posts/{id}            DeletePost
//
// # Error Handling
//
// Any non-2xx response becomes a *StatusError. A 404 additionally matches
// ErrNotFound through errors.Is, which lets detail screens show a dedicated
// not-found state instead of the generic failure view.
//
// # Resilience
//
// Every request waits on a token-bucket limiter and runs through a circuit
// breaker. Only 5xx responses and transport errors count against the breaker.
// Reads are retried with exponential backoff on 5xx, 408, 429 and timeouts.
// Writes are sent exactly once; the caller decides what a failure means.
//
// The demo API accepts writes but never persists them. PUT against an id it
// did not seed (for example a post created locally with id 101) returns 500.
package placeholder
