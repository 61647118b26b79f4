package service

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fboard-dev/fboard/internal/domain"
	"github.com/fboard-dev/fboard/internal/errors"
)

// to mock service in tests
type CommentService interface {
	Create(postId domain.PostId, email domain.Email, content string) (domain.Comment, error)
	List(postId domain.PostId) ([]domain.Comment, error)
	Delete(commentId domain.CommentId, secret string, accountId domain.AccountId, presentedEmail domain.Email) error
}

type CommentStorage interface {
	Post(id domain.PostId) (domain.Post, error)
	BoardById(id domain.BoardId) (domain.Board, error)
	SaveComment(c domain.Comment) error
	Comment(id domain.CommentId) (domain.Comment, error)
	CommentsByPost(postId domain.PostId) ([]domain.Comment, error)
	DeleteComment(id domain.CommentId) error
}

type Comment struct {
	storage  CommentStorage
	verified VerificationService
}

func NewComment(storage CommentStorage, verified VerificationService) *Comment {
	return &Comment{storage: storage, verified: verified}
}

// Create requires a live verification for the author email, like voting.
func (c *Comment) Create(postId domain.PostId, email domain.Email, content string) (domain.Comment, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return domain.Comment{}, errEmailNotVerified
	}
	ok, err := c.verified.Verified(email)
	if err != nil {
		return domain.Comment{}, err
	}
	if !ok {
		return domain.Comment{}, errEmailNotVerified
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Comment{}, &errors.ErrorWithStatusCode{Message: "Comment cannot be empty", StatusCode: http.StatusBadRequest}
	}
	if len(content) > domain.MaxCommentLen {
		return domain.Comment{}, &errors.ErrorWithStatusCode{Message: fmt.Sprintf("Comment is too long (max %d characters)", domain.MaxCommentLen), StatusCode: http.StatusBadRequest}
	}

	if _, err := c.storage.Post(postId); err != nil {
		return domain.Comment{}, err
	}

	comment := domain.Comment{
		Id:          uuid.NewString(),
		PostId:      postId,
		AuthorEmail: email,
		Content:     content,
		CreatedAt:   time.Now().UTC(),
	}
	if err := c.storage.SaveComment(comment); err != nil {
		return domain.Comment{}, err
	}
	return comment, nil
}

func (c *Comment) List(postId domain.PostId) ([]domain.Comment, error) {
	if _, err := c.storage.Post(postId); err != nil {
		return nil, err
	}
	return c.storage.CommentsByPost(postId)
}

// Delete walks comment -> post -> board to decide who may remove it: the
// board owner (either ownership mode) or the comment's author by email match.
func (c *Comment) Delete(commentId domain.CommentId, secret string, accountId domain.AccountId, presentedEmail domain.Email) error {
	comment, err := c.storage.Comment(commentId)
	if err != nil {
		return err
	}
	post, err := c.storage.Post(comment.PostId)
	if err != nil {
		return err
	}
	board, err := c.storage.BoardById(post.BoardId)
	if err != nil {
		return err
	}

	if !CanDeleteComment(comment, board, secret, accountId, domain.NormalizeEmail(presentedEmail)) {
		return &errors.ErrorWithStatusCode{Message: "Unauthorized", StatusCode: http.StatusForbidden}
	}
	return c.storage.DeleteComment(comment.Id)
}
