package mutation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/postdeck/internal/notify"
	"github.com/five82/postdeck/internal/placeholder"
	"github.com/five82/postdeck/internal/state"
)

type fakeAPI struct {
	placeholder.API

	mu        sync.Mutex
	calls     []string
	createErr error
	updateErr error
	deleteErr error
	release   chan struct{}
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) CreatePost(_ context.Context, draft placeholder.Post) (placeholder.Post, error) {
	if f.release != nil {
		<-f.release
	}
	f.record("create")
	if f.createErr != nil {
		return placeholder.Post{}, f.createErr
	}
	draft.ID = 101
	return draft, nil
}

func (f *fakeAPI) UpdatePost(_ context.Context, id int, post placeholder.Post) (placeholder.Post, error) {
	f.record("update")
	if f.updateErr != nil {
		return placeholder.Post{}, f.updateErr
	}
	post.ID = id
	post.Title = strings.TrimSpace(post.Title) + " (server)"
	return post, nil
}

func (f *fakeAPI) DeletePost(_ context.Context, id int) error {
	f.record("delete")
	return f.deleteErr
}

type recorder struct {
	mu  sync.Mutex
	got []notify.Notification
}

func (r *recorder) Notify(n notify.Notification) {
	r.mu.Lock()
	r.got = append(r.got, n)
	r.mu.Unlock()
}

func (r *recorder) All() []notify.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Notification(nil), r.got...)
}

func seeded(ids ...int) *state.Collection[placeholder.Post] {
	items := state.NewCollection(PostID)
	posts := make([]placeholder.Post, len(ids))
	for i, id := range ids {
		posts[i] = placeholder.Post{ID: id, UserID: 1, Title: "Seed title", Body: "Seed body text"}
	}
	items.Replace(posts)
	return items
}

func validDraft() placeholder.Post {
	return placeholder.Post{UserID: 3, Title: "New title", Body: "A body long enough"}
}

func TestCreate_SynthesizesIDAboveFloor(t *testing.T) {
	api := &fakeAPI{}
	items := seeded(1, 2, 100)
	rec := &recorder{}
	c := NewPostController(api, items, rec, Prepend, Messages{}, nil)

	created, err := c.Create(context.Background(), validDraft())
	require.NoError(t, err)
	assert.Equal(t, 101, created.ID)
	assert.Equal(t, []int{101, 1, 2, 100}, items.IDs())

	c.Wait()
	assert.Equal(t, []string{"create"}, api.Calls())
	require.Len(t, rec.All(), 1)
	assert.Equal(t, notify.Success, rec.All()[0].Type)
}

func TestCreate_FloorAppliesToSmallCollections(t *testing.T) {
	c := NewPostController(&fakeAPI{}, seeded(), nil, Prepend, Messages{}, nil)
	assert.Equal(t, 101, c.NextID())

	c = NewPostController(&fakeAPI{}, seeded(3, 250, 7), nil, Prepend, Messages{}, nil)
	assert.Equal(t, 251, c.NextID())
}

func TestCreate_AppendPlacement(t *testing.T) {
	items := seeded(1, 2)
	c := NewPostController(&fakeAPI{}, items, nil, Append, Messages{}, nil)

	_, err := c.Create(context.Background(), validDraft())
	require.NoError(t, err)
	c.Wait()
	assert.Equal(t, []int{1, 2, 101}, items.IDs())
}

func TestCreate_IsOptimisticAndTracked(t *testing.T) {
	api := &fakeAPI{release: make(chan struct{})}
	items := seeded(1)
	rec := &recorder{}
	c := NewPostController(api, items, rec, Prepend, Messages{}, nil)

	created, err := c.Create(context.Background(), validDraft())
	require.NoError(t, err)

	// Visible before the server answers.
	_, ok := items.Get(created.ID)
	assert.True(t, ok)
	pending := c.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, KindCreate, pending[0].Kind)
	assert.Equal(t, created.ID, pending[0].TargetID)
	assert.NotEmpty(t, pending[0].RequestID)
	assert.Empty(t, rec.All())

	close(api.release)
	c.Wait()
	assert.Empty(t, c.Pending())
	assert.Len(t, rec.All(), 1)
}

func TestCreate_RemoteFailureKeepsItemAndNotifiesOnce(t *testing.T) {
	api := &fakeAPI{createErr: errors.New("boom")}
	items := seeded(1)
	rec := &recorder{}
	c := NewPostController(api, items, rec, Prepend, Messages{}, nil)

	created, err := c.Create(context.Background(), validDraft())
	require.NoError(t, err)
	c.Wait()

	_, ok := items.Get(created.ID)
	assert.True(t, ok, "optimistic item is not rolled back")
	got := rec.All()
	require.Len(t, got, 1)
	assert.Equal(t, notify.Error, got[0].Type)
}

func TestCreate_ValidationFailureMakesNoCallAndNoNotification(t *testing.T) {
	api := &fakeAPI{}
	items := seeded(1)
	rec := &recorder{}
	c := NewPostController(api, items, rec, Prepend, Messages{}, nil)

	_, err := c.Create(context.Background(), placeholder.Post{Title: "ab", Body: "short", UserID: 1})
	c.Wait()

	ve, ok := AsValidation(err)
	require.True(t, ok, "want ValidationError, got %v", err)
	assert.Equal(t, "Title must be at least 3 characters", ve.Message("title"))
	assert.Equal(t, "Body must be at least 10 characters", ve.Message("body"))
	assert.False(t, ve.Has("userId"))

	assert.Empty(t, api.Calls())
	assert.Empty(t, rec.All())
	assert.Equal(t, []int{1}, items.IDs())
}

func TestUpdate_ReplacesWithServerRepresentation(t *testing.T) {
	api := &fakeAPI{}
	items := seeded(1, 2)
	rec := &recorder{}
	c := NewPostController(api, items, rec, Prepend, Messages{}, nil)

	updated, err := c.Update(context.Background(), 2, validDraft())
	require.NoError(t, err)
	assert.Equal(t, "New title (server)", updated.Title)

	local, _ := items.Get(2)
	if diff := cmp.Diff(updated, local); diff != "" {
		t.Fatalf("local record mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, rec.All(), 1)
	assert.Equal(t, notify.Success, rec.All()[0].Type)
}

func TestUpdate_FailureLeavesRecordAndNotifiesOnce(t *testing.T) {
	api := &fakeAPI{updateErr: &placeholder.StatusError{Method: "PUT", Path: "/posts/2", StatusCode: 500}}
	items := seeded(1, 2)
	before, _ := items.Get(2)
	rec := &recorder{}
	c := NewPostController(api, items, rec, Prepend, Messages{}, nil)

	_, err := c.Update(context.Background(), 2, validDraft())
	require.Error(t, err)

	after, _ := items.Get(2)
	assert.Equal(t, before, after)
	got := rec.All()
	require.Len(t, got, 1)
	assert.Equal(t, notify.Error, got[0].Type)
	assert.Empty(t, c.Pending())
}

func TestUpdate_ValidationAndUnknownIDSkipNetwork(t *testing.T) {
	api := &fakeAPI{}
	rec := &recorder{}
	c := NewPostController(api, seeded(1), rec, Prepend, Messages{}, nil)

	_, err := c.Update(context.Background(), 1, placeholder.Post{UserID: 11, Title: "Fine title", Body: "Fine body text"})
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "Author must be between 1 and 10", ve.Message("userId"))

	_, err = c.Update(context.Background(), 42, validDraft())
	assert.ErrorIs(t, err, ErrUnknownItem)

	assert.Empty(t, api.Calls())
	assert.Empty(t, rec.All())
}

func TestDelete_FailureKeepsItemAndEmitsOneError(t *testing.T) {
	api := &fakeAPI{deleteErr: &placeholder.StatusError{Method: "DELETE", Path: "/posts/5", StatusCode: 500}}
	items := seeded(1, 5, 9)
	rec := &recorder{}
	c := NewPostController(api, items, rec, Prepend, Messages{}, nil)

	err := c.Delete(context.Background(), 5)
	require.Error(t, err)

	_, ok := items.Get(5)
	assert.True(t, ok, "post 5 must remain after a failed delete")
	got := rec.All()
	require.Len(t, got, 1)
	assert.Equal(t, notify.Error, got[0].Type)
}

func TestDelete_SuccessRemovesAfterConfirmation(t *testing.T) {
	api := &fakeAPI{}
	items := seeded(1, 5, 9)
	rec := &recorder{}
	c := NewPostController(api, items, rec, Prepend, Messages{}, nil)

	require.NoError(t, c.Delete(context.Background(), 5))
	assert.Equal(t, []int{1, 9}, items.IDs())
	assert.Equal(t, []string{"delete"}, api.Calls())
	require.Len(t, rec.All(), 1)
	assert.Equal(t, notify.Success, rec.All()[0].Type)
	assert.Equal(t, "Post deleted", rec.All()[0].Title)
}

func TestDelete_UnknownIDSkipsNetwork(t *testing.T) {
	api := &fakeAPI{}
	c := NewPostController(api, seeded(1), nil, Prepend, Messages{}, nil)

	err := c.Delete(context.Background(), 77)
	assert.ErrorIs(t, err, ErrUnknownItem)
	assert.Empty(t, api.Calls())
}

func TestCustomMessagesAreUsed(t *testing.T) {
	rec := &recorder{}
	msgs := DefaultMessages("Post")
	msgs.DeleteSuccess = Text{Title: "تم حذف المنشور", Message: "تمت إزالة المنشور."}
	c := NewPostController(&fakeAPI{}, seeded(4), rec, Prepend, msgs, nil)

	require.NoError(t, c.Delete(context.Background(), 4))
	assert.Equal(t, "تم حذف المنشور", rec.All()[0].Title)
}

func TestSetMessagesAppliesToLaterOutcomes(t *testing.T) {
	rec := &recorder{}
	c := NewPostController(&fakeAPI{}, seeded(4, 5), rec, Prepend, DefaultMessages("Post"), nil)

	require.NoError(t, c.Delete(context.Background(), 4))
	msgs := DefaultMessages("Post")
	msgs.DeleteSuccess = Text{Title: "تم حذف المنشور", Message: "تمت إزالة المنشور."}
	c.SetMessages(msgs)
	require.NoError(t, c.Delete(context.Background(), 5))

	got := rec.All()
	require.Len(t, got, 2)
	assert.Equal(t, "Post deleted", got[0].Title)
	assert.Equal(t, "تم حذف المنشور", got[1].Title)
}
