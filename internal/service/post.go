package service

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fboard-dev/fboard/internal/domain"
	"github.com/fboard-dev/fboard/internal/errors"
)

// to mock service in tests
type PostService interface {
	Create(slug domain.BoardSlug, data domain.PostCreationData) (domain.Post, error)
	UpdateStatus(slug domain.BoardSlug, postId domain.PostId, status domain.PostStatus, secret string, accountId domain.AccountId) error
	Delete(slug domain.BoardSlug, postId domain.PostId, secret string, accountId domain.AccountId) error
}

type PostStorage interface {
	Board(slug domain.BoardSlug) (domain.Board, error)
	SavePost(p domain.Post) error
	Post(id domain.PostId) (domain.Post, error)
	UpdatePostStatus(id domain.PostId, status domain.PostStatus) error
	DeletePost(id domain.PostId) error
}

const maxPostTitleLen = 200

type Post struct {
	storage PostStorage
}

func NewPost(storage PostStorage) *Post {
	return &Post{storage: storage}
}

// Create adds feedback to a board. Posting is open to anyone; the author
// email is informational, not an identity claim.
func (p *Post) Create(slug domain.BoardSlug, data domain.PostCreationData) (domain.Post, error) {
	title := strings.TrimSpace(data.Title)
	if title == "" {
		return domain.Post{}, &errors.ErrorWithStatusCode{Message: "Title is required", StatusCode: http.StatusBadRequest}
	}
	if len(title) > maxPostTitleLen {
		return domain.Post{}, &errors.ErrorWithStatusCode{Message: "Title is too long", StatusCode: http.StatusBadRequest}
	}

	board, err := p.storage.Board(slug)
	if err != nil {
		return domain.Post{}, err
	}

	post := domain.Post{
		Id:          uuid.NewString(),
		BoardId:     board.Id,
		Title:       title,
		Description: strings.TrimSpace(data.Description),
		Status:      domain.StatusOpen,
		AuthorEmail: domain.NormalizeEmail(data.AuthorEmail),
		CreatedAt:   time.Now().UTC(),
	}
	if err := p.storage.SavePost(post); err != nil {
		return domain.Post{}, err
	}
	return post, nil
}

// UpdateStatus moves a post through the roadmap columns. Owner-only.
func (p *Post) UpdateStatus(slug domain.BoardSlug, postId domain.PostId, status domain.PostStatus, secret string, accountId domain.AccountId) error {
	if !domain.ValidStatus(status) {
		return &errors.ErrorWithStatusCode{Message: "Invalid status", StatusCode: http.StatusBadRequest}
	}

	board, post, err := p.boardAndPost(slug, postId)
	if err != nil {
		return err
	}
	if !IsBoardOwner(board, secret, accountId) {
		return &errors.ErrorWithStatusCode{Message: "Unauthorized", StatusCode: http.StatusForbidden}
	}
	return p.storage.UpdatePostStatus(post.Id, status)
}

// Delete removes a post and everything hanging off it. Owner-only.
func (p *Post) Delete(slug domain.BoardSlug, postId domain.PostId, secret string, accountId domain.AccountId) error {
	board, post, err := p.boardAndPost(slug, postId)
	if err != nil {
		return err
	}
	if !IsBoardOwner(board, secret, accountId) {
		return &errors.ErrorWithStatusCode{Message: "Unauthorized", StatusCode: http.StatusForbidden}
	}
	return p.storage.DeletePost(post.Id)
}

// boardAndPost loads both and rejects posts addressed through the wrong
// board. Cross-board ids 404 rather than leak existence.
func (p *Post) boardAndPost(slug domain.BoardSlug, postId domain.PostId) (domain.Board, domain.Post, error) {
	board, err := p.storage.Board(slug)
	if err != nil {
		return domain.Board{}, domain.Post{}, err
	}
	post, err := p.storage.Post(postId)
	if err != nil {
		return domain.Board{}, domain.Post{}, err
	}
	if post.BoardId != board.Id {
		return domain.Board{}, domain.Post{}, &errors.ErrorWithStatusCode{Message: "Post not found", StatusCode: http.StatusNotFound}
	}
	return board, post, nil
}
