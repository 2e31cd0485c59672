// Package notify carries transient user-facing notifications from background
// work to whichever surface displays them.
package notify

import (
	"slices"
	"sync"
	"time"
)

// Type distinguishes success toasts from failures.
type Type string

const (
	Success Type = "success"
	Error   Type = "error"
)

// Lifetimes of visible toasts.
const (
	SuccessTTL = 3 * time.Second
	ErrorTTL   = 5 * time.Second
)

// TTL returns how long a notification of type t stays visible.
func (t Type) TTL() time.Duration {
	if t == Error {
		return ErrorTTL
	}
	return SuccessTTL
}

// Notification is a single user-facing event.
type Notification struct {
	Type    Type
	Title   string
	Message string
}

// Notifier receives notifications. Implementations must be safe for
// concurrent use because mutations report from background goroutines.
type Notifier interface {
	Notify(Notification)
}

// Func adapts a function to Notifier.
type Func func(Notification)

// Notify calls f(n).
func (f Func) Notify(n Notification) { f(n) }

// Discard drops every notification.
var Discard Notifier = Func(func(Notification) {})

// Toast is a notification with its display deadline.
type Toast struct {
	Notification
	ID      int
	Expires time.Time
}

const defaultMaxToasts = 4

// Center keeps the currently visible toasts.
type Center struct {
	mu     sync.Mutex
	toasts []Toast
	nextID int
	max    int
	now    func() time.Time
}

// NewCenter returns an empty center that shows at most four toasts; older
// ones are dropped first.
func NewCenter() *Center {
	return &Center{max: defaultMaxToasts, now: time.Now}
}

// Notify adds n with a deadline based on its type.
func (c *Center) Notify(n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	c.toasts = append(c.toasts, Toast{
		Notification: n,
		ID:           c.nextID,
		Expires:      c.now().Add(n.Type.TTL()),
	})
	if over := len(c.toasts) - c.max; over > 0 {
		c.toasts = slices.Delete(c.toasts, 0, over)
	}
}

// Visible returns the toasts in arrival order.
func (c *Center) Visible() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.toasts)
}

// Sweep drops toasts whose deadline is not after now and returns how many
// were removed.
func (c *Center) Sweep(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	before := len(c.toasts)
	c.toasts = slices.DeleteFunc(c.toasts, func(t Toast) bool {
		return !t.Expires.After(now)
	})
	return before - len(c.toasts)
}

// Dismiss removes the toast with id.
func (c *Center) Dismiss(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.toasts = slices.DeleteFunc(c.toasts, func(t Toast) bool { return t.ID == id })
}
