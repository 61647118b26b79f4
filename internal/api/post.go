package api

import "time"

// Request DTOs

type CreatePostRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	AuthorEmail string `json:"author_email,omitempty" validate:"omitempty,email"`
}

type UpdatePostStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Response DTOs

type PostResponse struct {
	Id           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Status       string    `json:"status"`
	VoteCount    int       `json:"vote_count"`
	CommentCount int       `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
}
