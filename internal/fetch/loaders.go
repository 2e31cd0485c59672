package fetch

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/five82/postdeck/internal/placeholder"
)

// PostDetail is everything the post screen shows. Author and Comments are
// secondary: when they fail the screen still renders without them.
type PostDetail struct {
	Post        placeholder.Post
	Author      *placeholder.User
	Comments    []placeholder.Comment
	AuthorErr   error
	CommentsErr error
}

// LoadPostDetail fetches the post and its comments concurrently and the
// author as soon as the post's userId is known. Only a post failure is
// returned as an error.
func LoadPostDetail(ctx context.Context, api placeholder.API, id int) (PostDetail, error) {
	var detail PostDetail
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		post, err := api.GetPost(gctx, id)
		if err != nil {
			return fmt.Errorf("load post %d: %w", id, err)
		}
		detail.Post = post

		g.Go(func() error {
			user, err := api.GetUser(gctx, post.UserID)
			if err != nil {
				detail.AuthorErr = err
				slog.Warn("author fetch failed", slog.Int("post_id", id), slog.Int("user_id", post.UserID), slog.Any("error", err))
				return nil
			}
			detail.Author = &user
			return nil
		})
		return nil
	})

	g.Go(func() error {
		comments, err := api.CommentsByPost(gctx, id)
		if err != nil {
			detail.CommentsErr = err
			slog.Warn("comments fetch failed", slog.Int("post_id", id), slog.Any("error", err))
			return nil
		}
		detail.Comments = comments
		return nil
	})

	if err := g.Wait(); err != nil {
		return PostDetail{}, err
	}
	return detail, nil
}

// UserDetail is everything the user screen shows. Posts is secondary.
type UserDetail struct {
	User     placeholder.User
	Posts    []placeholder.Post
	PostsErr error
}

// LoadUserDetail fetches the user and their posts concurrently.
func LoadUserDetail(ctx context.Context, api placeholder.API, id int) (UserDetail, error) {
	var detail UserDetail
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		user, err := api.GetUser(gctx, id)
		if err != nil {
			return fmt.Errorf("load user %d: %w", id, err)
		}
		detail.User = user
		return nil
	})

	g.Go(func() error {
		posts, err := api.PostsByUser(gctx, id)
		if err != nil {
			detail.PostsErr = err
			slog.Warn("user posts fetch failed", slog.Int("user_id", id), slog.Any("error", err))
			return nil
		}
		detail.Posts = posts
		return nil
	})

	if err := g.Wait(); err != nil {
		return UserDetail{}, err
	}
	return detail, nil
}

// Dashboard holds the two top-level collections.
type Dashboard struct {
	Posts []placeholder.Post
	Users []placeholder.User
}

// LoadDashboard fetches posts and users concurrently. Both are required.
func LoadDashboard(ctx context.Context, api placeholder.API) (Dashboard, error) {
	var d Dashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		posts, err := api.ListPosts(gctx)
		if err != nil {
			return fmt.Errorf("load posts: %w", err)
		}
		d.Posts = posts
		return nil
	})
	g.Go(func() error {
		users, err := api.ListUsers(gctx)
		if err != nil {
			return fmt.Errorf("load users: %w", err)
		}
		d.Users = users
		return nil
	})

	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}

// AuthorNames maps user id to display name.
func AuthorNames(users []placeholder.User) map[int]string {
	names := make(map[int]string, len(users))
	for _, u := range users {
		names[u.ID] = u.DisplayName()
	}
	return names
}
