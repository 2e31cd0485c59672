package collection

import (
	"strconv"

	"github.com/five82/postdeck/internal/placeholder"
)

// PostSpec reads posts. authorName resolves a userId to a display name for
// the author sort; nil sorts by the numeric id instead.
func PostSpec(authorName func(userID int) string) Spec[placeholder.Post] {
	return Spec[placeholder.Post]{
		ID: func(p placeholder.Post) int { return p.ID },
		SearchFields: func(p placeholder.Post) []string {
			return []string{p.Title, p.Body}
		},
		AuthorID: func(p placeholder.Post) int { return p.UserID },
		SortField: func(p placeholder.Post, key SortKey) string {
			if key == SortAuthor {
				if authorName != nil {
					if name := authorName(p.UserID); name != "" {
						return name
					}
				}
				return padID(p.UserID)
			}
			return p.Title
		},
	}
}

// UserSpec reads users. SortTitle orders by name and SortAuthor by username.
func UserSpec() Spec[placeholder.User] {
	return Spec[placeholder.User]{
		ID: func(u placeholder.User) int { return u.ID },
		SearchFields: func(u placeholder.User) []string {
			return []string{u.Name, u.Username, u.Email, u.Company.Name}
		},
		SortField: func(u placeholder.User, key SortKey) string {
			if key == SortAuthor {
				return u.Username
			}
			return u.DisplayName()
		},
	}
}

// CommentSpec reads comments; they are only paged, never filtered.
func CommentSpec() Spec[placeholder.Comment] {
	return Spec[placeholder.Comment]{
		ID: func(c placeholder.Comment) int { return c.ID },
		SearchFields: func(c placeholder.Comment) []string {
			return []string{c.Name, c.Body, c.Email}
		},
	}
}

// padID keeps numeric ids in numeric order under string comparison.
func padID(id int) string {
	s := strconv.Itoa(id)
	for len(s) < 8 {
		s = "0" + s
	}
	return s
}
