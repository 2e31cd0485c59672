package fetch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/postdeck/internal/placeholder"
)

var notFound = &placeholder.StatusError{Method: "GET", Path: "/posts/999", StatusCode: 404}

type stubAPI struct {
	placeholder.API

	post        func(id int) (placeholder.Post, error)
	user        func(id int) (placeholder.User, error)
	comments    func(postID int) ([]placeholder.Comment, error)
	postsByUser func(userID int) ([]placeholder.Post, error)
	posts       func() ([]placeholder.Post, error)
	users       func() ([]placeholder.User, error)
}

func (s stubAPI) GetPost(_ context.Context, id int) (placeholder.Post, error) { return s.post(id) }
func (s stubAPI) GetUser(_ context.Context, id int) (placeholder.User, error) { return s.user(id) }
func (s stubAPI) CommentsByPost(_ context.Context, id int) ([]placeholder.Comment, error) {
	return s.comments(id)
}
func (s stubAPI) PostsByUser(_ context.Context, id int) ([]placeholder.Post, error) {
	return s.postsByUser(id)
}
func (s stubAPI) ListPosts(context.Context) ([]placeholder.Post, error) { return s.posts() }
func (s stubAPI) ListUsers(context.Context) ([]placeholder.User, error) { return s.users() }

func TestLifecycle_Transitions(t *testing.T) {
	var l Lifecycle[int]
	assert.Equal(t, Idle, l.Snapshot().Status)

	tk := l.Start()
	assert.Equal(t, Loading, l.Snapshot().Status)
	require.True(t, l.Resolve(tk, 7, nil))

	snap := l.Snapshot()
	assert.Equal(t, Success, snap.Status)
	assert.Equal(t, 7, snap.Value)

	// Reload re-enters loading and may end in error.
	tk = l.Start()
	assert.Equal(t, Loading, l.Snapshot().Status)
	require.True(t, l.Resolve(tk, 0, errors.New("network down")))
	snap = l.Snapshot()
	assert.Equal(t, Error, snap.Status)
	assert.False(t, snap.NotFound)
	assert.Equal(t, DefaultMessages().Failure, snap.Message)
}

func TestLifecycle_NotFoundMessage(t *testing.T) {
	l := NewLifecycle[string](Messages{NotFound: "missing", Failure: "broken"})
	tk := l.Start()
	require.True(t, l.Resolve(tk, "", notFound))

	snap := l.Snapshot()
	assert.Equal(t, Error, snap.Status)
	assert.True(t, snap.NotFound)
	assert.Equal(t, "missing", snap.Message)
}

func TestLifecycle_StaleTicketDiscarded(t *testing.T) {
	var l Lifecycle[int]
	first := l.Start()
	second := l.Start()

	assert.False(t, l.Current(first))
	assert.False(t, l.Resolve(first, 1, nil), "stale result must be dropped")
	assert.Equal(t, Loading, l.Snapshot().Status)

	assert.True(t, l.Resolve(second, 2, nil))
	assert.Equal(t, 2, l.Snapshot().Value)

	assert.False(t, l.Resolve(second, 3, nil), "a ticket resolves once")
	assert.Equal(t, 2, l.Snapshot().Value)
}

func TestLifecycle_TeardownIgnoresLateResults(t *testing.T) {
	var l Lifecycle[int]
	tk := l.Start()
	l.Teardown()

	assert.False(t, l.Resolve(tk, 5, nil))
	assert.False(t, l.Current(tk))
	assert.Equal(t, Loading, l.Snapshot().Status)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "success", Success.String())
	assert.Equal(t, "error", Error.String())
}

func TestLoadPostDetail_AllSucceed(t *testing.T) {
	api := stubAPI{
		post: func(id int) (placeholder.Post, error) { return placeholder.Post{ID: id, UserID: 4}, nil },
		user: func(id int) (placeholder.User, error) { return placeholder.User{ID: id, Name: "Patricia"}, nil },
		comments: func(id int) ([]placeholder.Comment, error) {
			return []placeholder.Comment{{ID: 1, PostID: id}, {ID: 2, PostID: id}}, nil
		},
	}

	detail, err := LoadPostDetail(context.Background(), api, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, detail.Post.ID)
	require.NotNil(t, detail.Author)
	assert.Equal(t, 4, detail.Author.ID)
	assert.Len(t, detail.Comments, 2)
}

func TestLoadPostDetail_CommentsStartBeforePostResolves(t *testing.T) {
	release := make(chan struct{})
	var commentsStarted atomic.Bool

	api := stubAPI{
		post: func(id int) (placeholder.Post, error) {
			<-release
			return placeholder.Post{ID: id, UserID: 1}, nil
		},
		user: func(id int) (placeholder.User, error) { return placeholder.User{ID: id}, nil },
		comments: func(int) ([]placeholder.Comment, error) {
			commentsStarted.Store(true)
			close(release)
			return nil, nil
		},
	}

	done := make(chan error, 1)
	go func() {
		_, err := LoadPostDetail(context.Background(), api, 1)
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("post and comments were not fetched concurrently")
	}
	assert.True(t, commentsStarted.Load())
}

func TestLoadPostDetail_SecondaryFailuresDegrade(t *testing.T) {
	api := stubAPI{
		post:     func(id int) (placeholder.Post, error) { return placeholder.Post{ID: id, UserID: 2}, nil },
		user:     func(int) (placeholder.User, error) { return placeholder.User{}, errors.New("author down") },
		comments: func(int) ([]placeholder.Comment, error) { return nil, errors.New("comments down") },
	}

	detail, err := LoadPostDetail(context.Background(), api, 8)
	require.NoError(t, err)
	assert.Equal(t, 8, detail.Post.ID)
	assert.Nil(t, detail.Author)
	assert.Empty(t, detail.Comments)
	assert.Error(t, detail.AuthorErr)
	assert.Error(t, detail.CommentsErr)
}

func TestLoadPostDetail_PrimaryFailureIsError(t *testing.T) {
	api := stubAPI{
		post:     func(int) (placeholder.Post, error) { return placeholder.Post{}, notFound },
		user:     func(int) (placeholder.User, error) { return placeholder.User{}, nil },
		comments: func(int) ([]placeholder.Comment, error) { return []placeholder.Comment{{ID: 1}}, nil },
	}

	_, err := LoadPostDetail(context.Background(), api, 999)
	require.Error(t, err)
	assert.True(t, placeholder.IsNotFound(err))

	var l Lifecycle[PostDetail]
	tk := l.Start()
	l.Resolve(tk, PostDetail{}, err)
	assert.True(t, l.Snapshot().NotFound)
}

func TestLoadUserDetail(t *testing.T) {
	api := stubAPI{
		user:        func(id int) (placeholder.User, error) { return placeholder.User{ID: id, Username: "Bret"}, nil },
		postsByUser: func(int) ([]placeholder.Post, error) { return nil, errors.New("posts down") },
	}

	detail, err := LoadUserDetail(context.Background(), api, 1)
	require.NoError(t, err)
	assert.Equal(t, "Bret", detail.User.DisplayName())
	assert.Error(t, detail.PostsErr)

	api.user = func(int) (placeholder.User, error) { return placeholder.User{}, errors.New("boom") }
	_, err = LoadUserDetail(context.Background(), api, 1)
	assert.Error(t, err)
}

func TestLoadDashboard(t *testing.T) {
	api := stubAPI{
		posts: func() ([]placeholder.Post, error) { return []placeholder.Post{{ID: 1}, {ID: 2}}, nil },
		users: func() ([]placeholder.User, error) { return []placeholder.User{{ID: 1, Name: "Leanne"}}, nil },
	}

	d, err := LoadDashboard(context.Background(), api)
	require.NoError(t, err)
	assert.Len(t, d.Posts, 2)
	assert.Equal(t, map[int]string{1: "Leanne"}, AuthorNames(d.Users))

	api.users = func() ([]placeholder.User, error) { return nil, errors.New("users down") }
	_, err = LoadDashboard(context.Background(), api)
	assert.ErrorContains(t, err, "load users")
}
