package dto

import (
	"time"

	"github.com/campuslink/portal-api/internal/models"
)

// BlogCreateRequest carries a new blog post.
type BlogCreateRequest struct {
	Title    string `json:"title" validate:"required,max=255"`
	Content  string `json:"content" validate:"required"`
	Category string `json:"category" validate:"required,oneof=news scholarship events announcements"`
}

// BlogUpdateRequest carries partial edits to an existing post.
type BlogUpdateRequest struct {
	Title    *string `json:"title" validate:"omitempty,max=255"`
	Content  *string `json:"content" validate:"omitempty"`
	Category *string `json:"category" validate:"omitempty,oneof=news scholarship events announcements"`
}

// BlogPostResponse is the API view of a blog post.
type BlogPostResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	AuthorID  uint      `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBlogPostResponse maps a stored post onto its API view.
func NewBlogPostResponse(post models.BlogPost) BlogPostResponse {
	return BlogPostResponse{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		Category:  post.Category,
		AuthorID:  post.AuthorID,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

// NewBlogPostResponseSlice maps a list of stored posts.
func NewBlogPostResponseSlice(posts []models.BlogPost) []BlogPostResponse {
	responses := make([]BlogPostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, NewBlogPostResponse(post))
	}
	return responses
}
