package mutation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/postdeck/internal/placeholder"
)

func TestValidatePost_Boundaries(t *testing.T) {
	body := strings.Repeat("b", 10)
	title := "abc"

	tests := []struct {
		name      string
		post      placeholder.Post
		wantField string
		wantMsg   string
	}{
		{"valid minimums", placeholder.Post{UserID: 1, Title: title, Body: body}, "", ""},
		{"title 2", placeholder.Post{UserID: 1, Title: "ab", Body: body}, "title", "Title must be at least 3 characters"},
		{"title 100", placeholder.Post{UserID: 1, Title: strings.Repeat("t", 100), Body: body}, "", ""},
		{"title 101", placeholder.Post{UserID: 1, Title: strings.Repeat("t", 101), Body: body}, "title", "Title must be at most 100 characters"},
		{"title empty", placeholder.Post{UserID: 1, Title: "", Body: body}, "title", "Title is required"},
		{"title whitespace", placeholder.Post{UserID: 1, Title: "   ", Body: body}, "title", "Title is required"},
		{"title padded", placeholder.Post{UserID: 1, Title: "  ab  ", Body: body}, "title", "Title must be at least 3 characters"},
		{"body 9", placeholder.Post{UserID: 1, Title: title, Body: strings.Repeat("b", 9)}, "body", "Body must be at least 10 characters"},
		{"body 500", placeholder.Post{UserID: 1, Title: title, Body: strings.Repeat("b", 500)}, "", ""},
		{"body 501", placeholder.Post{UserID: 1, Title: title, Body: strings.Repeat("b", 501)}, "body", "Body must be at most 500 characters"},
		{"body empty", placeholder.Post{UserID: 1, Title: title}, "body", "Body is required"},
		{"author 0", placeholder.Post{UserID: 0, Title: title, Body: body}, "userId", "Author must be between 1 and 10"},
		{"author 11", placeholder.Post{UserID: 11, Title: title, Body: body}, "userId", "Author must be between 1 and 10"},
		{"author 10", placeholder.Post{UserID: 10, Title: title, Body: body}, "", ""},
		{"runes not bytes", placeholder.Post{UserID: 1, Title: "شكر", Body: "مرحبابالعا"}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePost(tt.post)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			ve, ok := AsValidation(err)
			require.True(t, ok, "want ValidationError, got %v", err)
			assert.Len(t, ve.Fields, 1)
			assert.Equal(t, tt.wantMsg, ve.Message(tt.wantField))
		})
	}
}

func TestValidationError_MessageIsStable(t *testing.T) {
	err := ValidatePost(placeholder.Post{Title: "ab", Body: "short", UserID: 0})
	require.Error(t, err)
	assert.Equal(t,
		"validation failed: Body must be at least 10 characters; Title must be at least 3 characters; Author must be between 1 and 10",
		err.Error())

	ve, _ := AsValidation(err)
	assert.Equal(t, "min", ve.Fields["title"].Rule)
	assert.Equal(t, "3", ve.Fields["title"].Param)
	assert.Equal(t, "range", ve.Fields["userId"].Rule)
}
