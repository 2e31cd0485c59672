package mutation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/five82/postdeck/internal/notify"
	"github.com/five82/postdeck/internal/state"
)

// ErrUnknownItem is returned by Update and Delete for ids that are not in
// the local collection. No network call is made.
var ErrUnknownItem = errors.New("item not in collection")

// Remote is the server side of a collection.
type Remote[T any] interface {
	Create(ctx context.Context, draft T) (T, error)
	Update(ctx context.Context, id int, item T) (T, error)
	Delete(ctx context.Context, id int) error
}

// Placement decides where created items land in the local collection.
type Placement int

const (
	Prepend Placement = iota
	Append
)

// Kind names the mutation being tracked.
type Kind string

const (
	KindCreate Kind = "create"
	KindUpdate Kind = "update"
	KindDelete Kind = "delete"
)

// PendingMutation is a change whose remote call has not finished.
type PendingMutation[T any] struct {
	Kind     Kind
	TargetID int
	// Snapshot is the local record before the change. Zero for creates.
	Snapshot  T
	RequestID string
	Started   time.Time
}

// Text is a notification title and message.
type Text struct {
	Title   string
	Message string
}

// Messages are the notification texts for each terminal outcome.
type Messages struct {
	CreateSuccess Text
	CreateError   Text
	UpdateSuccess Text
	UpdateError   Text
	DeleteSuccess Text
	DeleteError   Text
}

// DefaultMessages returns English texts for an entity called noun.
func DefaultMessages(noun string) Messages {
	lower := strings.ToLower(noun)
	return Messages{
		CreateSuccess: Text{Title: noun + " created", Message: "The " + lower + " was added."},
		CreateError:   Text{Title: "Create failed", Message: "The server rejected the new " + lower + "."},
		UpdateSuccess: Text{Title: noun + " updated", Message: "Your changes were saved."},
		UpdateError:   Text{Title: "Update failed", Message: "Your changes could not be saved."},
		DeleteSuccess: Text{Title: noun + " deleted", Message: "The " + lower + " was removed."},
		DeleteError:   Text{Title: "Delete failed", Message: "The " + lower + " could not be deleted."},
	}
}

// DefaultIDFloor keeps synthesized ids above the ids the demo API seeds.
const DefaultIDFloor = 100

// Config wires a Controller.
type Config[T any] struct {
	Remote    Remote[T]
	Validate  func(T) error
	Items     *state.Collection[T]
	Notifier  notify.Notifier
	Placement Placement
	// ID and WithID read and assign the record id.
	ID       func(T) int
	WithID   func(T, int) T
	IDFloor  int
	Messages Messages
	Logger   *slog.Logger
}

// Controller applies create, update and delete to a local collection and
// its remote counterpart.
//
// Create is optimistic: the record is inserted locally with a synthesized id
// and the remote call runs in the background. Update and Delete are
// confirmed: the local collection changes only after the remote call
// succeeds. Every remote outcome produces exactly one notification;
// validation failures produce none.
type Controller[T any] struct {
	cfg    Config[T]
	logger *slog.Logger

	mu       sync.Mutex
	pending  map[string]PendingMutation[T]
	messages Messages
	wg       sync.WaitGroup
}

// New builds a Controller. Remote, Items, ID and WithID are required.
func New[T any](cfg Config[T]) *Controller[T] {
	if cfg.Notifier == nil {
		cfg.Notifier = notify.Discard
	}
	if cfg.IDFloor <= 0 {
		cfg.IDFloor = DefaultIDFloor
	}
	if cfg.Messages == (Messages{}) {
		cfg.Messages = DefaultMessages("item")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller[T]{
		cfg:      cfg,
		logger:   logger.With(slog.String("component", "mutation")),
		pending:  make(map[string]PendingMutation[T]),
		messages: cfg.Messages,
	}
}

// SetMessages swaps the notification texts, for example after a locale
// change. Mutations already in flight report with the new texts.
func (c *Controller[T]) SetMessages(msgs Messages) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = msgs
}

// NextID returns max(existing ids, floor) + 1.
func (c *Controller[T]) NextID() int {
	highest := c.cfg.IDFloor
	for _, id := range c.cfg.Items.IDs() {
		highest = max(highest, id)
	}
	return highest + 1
}

// Create validates draft, inserts it under a synthesized id and returns it
// immediately. The remote create runs in the background; its outcome is
// reported through the notifier only. The server-assigned id is logged but
// not applied locally.
func (c *Controller[T]) Create(ctx context.Context, draft T) (T, error) {
	if err := c.check(draft); err != nil {
		var zero T
		return zero, err
	}

	id := c.NextID()
	item := c.cfg.WithID(draft, id)
	if c.cfg.Placement == Append {
		c.cfg.Items.Append(item)
	} else {
		c.cfg.Items.Prepend(item)
	}

	var zero T
	pm := c.track(KindCreate, id, zero)
	bg := context.WithoutCancel(ctx)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer c.untrack(pm.RequestID)

		created, err := c.cfg.Remote.Create(bg, draft)
		if err != nil {
			c.logger.Warn("remote create failed",
				slog.String("request_id", pm.RequestID),
				slog.Int("local_id", id),
				slog.Any("error", err))
			c.notify(notify.Error, c.texts().CreateError)
			return
		}
		c.logger.Info("remote create succeeded",
			slog.String("request_id", pm.RequestID),
			slog.Int("local_id", id),
			slog.Int("server_id", c.cfg.ID(created)),
			slog.Duration("elapsed", time.Since(pm.Started)))
		c.notify(notify.Success, c.texts().CreateSuccess)
	}()

	return item, nil
}

// Update validates patch and sends it. Only a successful response replaces
// the local record, using the server representation.
func (c *Controller[T]) Update(ctx context.Context, id int, patch T) (T, error) {
	var zero T
	if err := c.check(patch); err != nil {
		return zero, err
	}
	before, ok := c.cfg.Items.Get(id)
	if !ok {
		return zero, fmt.Errorf("update %d: %w", id, ErrUnknownItem)
	}

	pm := c.track(KindUpdate, id, before)
	defer c.untrack(pm.RequestID)

	updated, err := c.cfg.Remote.Update(ctx, id, c.cfg.WithID(patch, id))
	if err != nil {
		c.logger.Warn("remote update failed",
			slog.String("request_id", pm.RequestID),
			slog.Int("id", id),
			slog.Any("error", err))
		c.notify(notify.Error, c.texts().UpdateError)
		return zero, fmt.Errorf("update %d: %w", id, err)
	}

	updated = c.cfg.WithID(updated, id)
	c.cfg.Items.ReplaceByID(updated)
	c.logger.Info("remote update succeeded",
		slog.String("request_id", pm.RequestID),
		slog.Int("id", id))
	c.notify(notify.Success, c.texts().UpdateSuccess)
	return updated, nil
}

// Delete removes id remotely and, once the server confirms, locally. On
// failure the record stays in place.
func (c *Controller[T]) Delete(ctx context.Context, id int) error {
	before, ok := c.cfg.Items.Get(id)
	if !ok {
		return fmt.Errorf("delete %d: %w", id, ErrUnknownItem)
	}

	pm := c.track(KindDelete, id, before)
	defer c.untrack(pm.RequestID)

	if err := c.cfg.Remote.Delete(ctx, id); err != nil {
		c.logger.Warn("remote delete failed",
			slog.String("request_id", pm.RequestID),
			slog.Int("id", id),
			slog.Any("error", err))
		c.notify(notify.Error, c.texts().DeleteError)
		return fmt.Errorf("delete %d: %w", id, err)
	}

	c.cfg.Items.Remove(id)
	c.logger.Info("remote delete succeeded",
		slog.String("request_id", pm.RequestID),
		slog.Int("id", id))
	c.notify(notify.Success, c.texts().DeleteSuccess)
	return nil
}

// Pending returns the mutations whose remote call is still running.
func (c *Controller[T]) Pending() []PendingMutation[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]PendingMutation[T], 0, len(c.pending))
	for _, pm := range c.pending {
		out = append(out, pm)
	}
	return out
}

// Wait blocks until every background create has finished.
func (c *Controller[T]) Wait() {
	c.wg.Wait()
}

func (c *Controller[T]) check(item T) error {
	if c.cfg.Validate == nil {
		return nil
	}
	return c.cfg.Validate(item)
}

func (c *Controller[T]) track(kind Kind, id int, snapshot T) PendingMutation[T] {
	pm := PendingMutation[T]{
		Kind:      kind,
		TargetID:  id,
		Snapshot:  snapshot,
		RequestID: uuid.NewString(),
		Started:   time.Now(),
	}
	c.mu.Lock()
	c.pending[pm.RequestID] = pm
	c.mu.Unlock()
	return pm
}

func (c *Controller[T]) untrack(requestID string) {
	c.mu.Lock()
	delete(c.pending, requestID)
	c.mu.Unlock()
}

func (c *Controller[T]) texts() Messages {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.messages
}

func (c *Controller[T]) notify(t notify.Type, text Text) {
	c.cfg.Notifier.Notify(notify.Notification{Type: t, Title: text.Title, Message: text.Message})
}
