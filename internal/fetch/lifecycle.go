package fetch

import (
	"sync"

	"github.com/five82/postdeck/internal/placeholder"
)

// Status is the phase of a fetch.
type Status int

const (
	Idle Status = iota
	Loading
	Success
	Error
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "idle"
	}
}

// Messages are the human-readable texts stored on failure.
type Messages struct {
	NotFound string
	Failure  string
}

// DefaultMessages returns the English texts.
func DefaultMessages() Messages {
	return Messages{
		NotFound: "The requested record was not found.",
		Failure:  "Something went wrong while loading data. Please try again.",
	}
}

// Ticket identifies one Start call. Only the newest ticket may resolve.
type Ticket struct {
	gen uint64
}

// Snapshot is a copy of the lifecycle state.
type Snapshot[T any] struct {
	Status   Status
	Value    T
	Err      error
	Message  string
	NotFound bool
}

// Lifecycle tracks idle -> loading -> success|error for one screen resource.
// Every Start supersedes earlier tickets; results for superseded tickets and
// results arriving after Teardown are dropped. The zero value is ready to use
// with DefaultMessages.
type Lifecycle[T any] struct {
	mu       sync.Mutex
	gen      uint64
	torn     bool
	snap     Snapshot[T]
	messages Messages
}

// NewLifecycle returns an idle lifecycle using msgs for failures.
func NewLifecycle[T any](msgs Messages) *Lifecycle[T] {
	return &Lifecycle[T]{messages: msgs}
}

// SetMessages swaps the failure texts, for example after a locale change.
func (l *Lifecycle[T]) SetMessages(msgs Messages) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = msgs
}

// Start enters loading and returns the ticket the result must carry. The
// previous value is kept so a reload does not blank the screen.
func (l *Lifecycle[T]) Start() Ticket {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen++
	if !l.torn {
		l.snap.Status = Loading
		l.snap.Err = nil
		l.snap.Message = ""
		l.snap.NotFound = false
	}
	return Ticket{gen: l.gen}
}

// Resolve applies a result. It returns false, changing nothing, when t is
// stale or the lifecycle was torn down.
func (l *Lifecycle[T]) Resolve(t Ticket, value T, err error) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.torn || t.gen != l.gen || l.snap.Status != Loading {
		return false
	}

	if err != nil {
		msgs := l.messages
		if msgs == (Messages{}) {
			msgs = DefaultMessages()
		}
		var zero T
		l.snap = Snapshot[T]{Status: Error, Value: zero, Err: err, Message: msgs.Failure}
		if placeholder.IsNotFound(err) {
			l.snap.NotFound = true
			l.snap.Message = msgs.NotFound
		}
		return true
	}

	l.snap = Snapshot[T]{Status: Success, Value: value}
	return true
}

// Current reports whether t is still the newest ticket.
func (l *Lifecycle[T]) Current(t Ticket) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.torn && t.gen == l.gen
}

// Snapshot returns the current state.
func (l *Lifecycle[T]) Snapshot() Snapshot[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snap
}

// Teardown marks the owner gone. Later Start and Resolve calls are no-ops.
func (l *Lifecycle[T]) Teardown() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.torn = true
}
