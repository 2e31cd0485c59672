package placeholder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/five82/postdeck/internal/resilience"
)

// API is the REST contract the dashboard depends on.
// It is implemented by *Client and by fakes in tests.
type API interface {
	ListPosts(ctx context.Context) ([]Post, error)
	GetPost(ctx context.Context, id int) (Post, error)
	PostsByUser(ctx context.Context, userID int) ([]Post, error)
	CommentsByPost(ctx context.Context, postID int) ([]Comment, error)
	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, id int) (User, error)
	CreatePost(ctx context.Context, draft Post) (Post, error)
	UpdatePost(ctx context.Context, id int, post Post) (Post, error)
	DeletePost(ctx context.Context, id int) error
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to a JSONPlaceholder-compatible HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	limiter   *rate.Limiter
	breaker   *resilience.Breaker
	retry     resilience.RetryConfig
}

// Options configure a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL   string
	Timeout   time.Duration // zero means no client timeout
	RateLimit float64       // requests per second; zero means unlimited
	Retry     resilience.RetryConfig
	Breaker   resilience.BreakerConfig
}

const (
	defaultBaseURL   = "https://jsonplaceholder.typicode.com"
	defaultUserAgent = "postdeck/0.1"
	rateBurst        = 5
)

// NewClient builds a Client from opts.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), rateBurst)
	}

	retry := opts.Retry
	if retry.MaxAttempts <= 0 {
		retry = resilience.DefaultRetryConfig()
	}

	breakerCfg := opts.Breaker
	if breakerCfg.Name == "" {
		breakerCfg = resilience.APIBreakerConfig()
	}

	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: opts.Timeout},
		userAgent: defaultUserAgent,
		limiter:   limiter,
		breaker:   resilience.NewBreaker(breakerCfg, countsAgainstBreaker),
		retry:     retry,
	}, nil
}

// ListPosts retrieves every post.
func (c *Client) ListPosts(ctx context.Context) ([]Post, error) {
	var posts []Post
	if err := c.get(ctx, "/posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPost retrieves a single post. A missing post yields ErrNotFound.
func (c *Client) GetPost(ctx context.Context, id int) (Post, error) {
	var post Post
	if err := c.get(ctx, "/posts/"+strconv.Itoa(id), nil, &post); err != nil {
		return Post{}, err
	}
	return post, nil
}

// PostsByUser retrieves the posts authored by userID.
func (c *Client) PostsByUser(ctx context.Context, userID int) ([]Post, error) {
	values := url.Values{}
	values.Set("userId", strconv.Itoa(userID))
	var posts []Post
	if err := c.get(ctx, "/posts", values, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// CommentsByPost retrieves the comments on postID.
func (c *Client) CommentsByPost(ctx context.Context, postID int) ([]Comment, error) {
	values := url.Values{}
	values.Set("postId", strconv.Itoa(postID))
	var comments []Comment
	if err := c.get(ctx, "/comments", values, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// ListUsers retrieves every user.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.get(ctx, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser retrieves a single user. A missing user yields ErrNotFound.
func (c *Client) GetUser(ctx context.Context, id int) (User, error) {
	var user User
	if err := c.get(ctx, "/users/"+strconv.Itoa(id), nil, &user); err != nil {
		return User{}, err
	}
	return user, nil
}

// CreatePost sends draft without an id and returns the server representation.
func (c *Client) CreatePost(ctx context.Context, draft Post) (Post, error) {
	draft.ID = 0
	var created Post
	if err := c.send(ctx, http.MethodPost, "/posts", draft, &created); err != nil {
		return Post{}, err
	}
	return created, nil
}

// UpdatePost replaces post id with the full body of post.
func (c *Client) UpdatePost(ctx context.Context, id int, post Post) (Post, error) {
	post.ID = id
	var updated Post
	if err := c.send(ctx, http.MethodPut, "/posts/"+strconv.Itoa(id), post, &updated); err != nil {
		return Post{}, err
	}
	return updated, nil
}

// DeletePost removes post id.
func (c *Client) DeletePost(ctx context.Context, id int) error {
	return c.send(ctx, http.MethodDelete, "/posts/"+strconv.Itoa(id), nil, nil)
}

// Ping sends one unretried GET for a seeded post. It feeds the health
// indicator, so a single slow or failed answer must show.
func (c *Client) Ping(ctx context.Context) error {
	return c.send(ctx, http.MethodGet, "/posts/1", nil, nil)
}

// BreakerState names the circuit breaker state: closed, half-open or open.
func (c *Client) BreakerState() string {
	return c.breaker.State()
}

// get retries idempotent reads; writes go through send exactly once.
func (c *Client) get(ctx context.Context, path string, query url.Values, dest any) error {
	rel := &url.URL{Path: path}
	if len(query) > 0 {
		rel.RawQuery = query.Encode()
	}
	return resilience.WithBackoff(ctx, c.retry, func() error {
		return c.breaker.Do(func() error {
			return c.doURL(ctx, http.MethodGet, rel, nil, dest)
		})
	})
}

func (c *Client) send(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	return c.breaker.Do(func() error {
		return c.doURL(ctx, method, rel, body, dest)
	})
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	reqURL := c.baseURL.ResolveReference(rel)
	reqURL.Path = strings.TrimRight(c.baseURL.Path, "/") + rel.Path
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Method: method, Path: rel.String(), StatusCode: resp.StatusCode}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// countsAgainstBreaker keeps client errors such as 404 from tripping the breaker.
func countsAgainstBreaker(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= 500
	}
	return true
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_base_url %q: %w", raw, err)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
