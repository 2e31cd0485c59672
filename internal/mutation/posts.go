package mutation

import (
	"context"
	"log/slog"

	"github.com/five82/postdeck/internal/notify"
	"github.com/five82/postdeck/internal/placeholder"
	"github.com/five82/postdeck/internal/state"
)

// PostRemote adapts placeholder.API to Remote[placeholder.Post].
type PostRemote struct {
	API placeholder.API
}

func (r PostRemote) Create(ctx context.Context, draft placeholder.Post) (placeholder.Post, error) {
	return r.API.CreatePost(ctx, draft)
}

func (r PostRemote) Update(ctx context.Context, id int, post placeholder.Post) (placeholder.Post, error) {
	return r.API.UpdatePost(ctx, id, post)
}

func (r PostRemote) Delete(ctx context.Context, id int) error {
	return r.API.DeletePost(ctx, id)
}

// PostID returns the post id.
func PostID(p placeholder.Post) int { return p.ID }

func postWithID(p placeholder.Post, id int) placeholder.Post {
	p.ID = id
	return p
}

// NewPostController wires a Controller for posts.
func NewPostController(api placeholder.API, items *state.Collection[placeholder.Post], n notify.Notifier, placement Placement, msgs Messages, logger *slog.Logger) *Controller[placeholder.Post] {
	if msgs == (Messages{}) {
		msgs = DefaultMessages("Post")
	}
	return New(Config[placeholder.Post]{
		Remote:    PostRemote{API: api},
		Validate:  ValidatePost,
		Items:     items,
		Notifier:  n,
		Placement: placement,
		ID:        PostID,
		WithID:    postWithID,
		Messages:  msgs,
		Logger:    logger,
	})
}
