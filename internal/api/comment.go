package api

import "time"

// Request DTOs

type CreateCommentRequest struct {
	Content     string `json:"content" validate:"required"`
	AuthorEmail string `json:"author_email" validate:"required,email"`
}

// DeleteCommentRequest carries the author email for the self-delete path.
// Board owners authenticate through the claim token header or a session
// instead and leave it empty.
type DeleteCommentRequest struct {
	AuthorEmail string `json:"author_email,omitempty" validate:"omitempty,email"`
}

// Response DTOs

type CommentResponse struct {
	Id          string    `json:"id"`
	PostId      string    `json:"post_id"`
	AuthorEmail string    `json:"author_email"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}

type CommentListResponse struct {
	Comments []CommentResponse `json:"comments"`
}
