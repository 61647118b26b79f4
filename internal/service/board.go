package service

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fboard-dev/fboard/internal/domain"
	internal_errors "github.com/fboard-dev/fboard/internal/errors"
	"github.com/fboard-dev/fboard/internal/utils"
)

// to mock service in tests
type BoardService interface {
	Create(data domain.BoardCreationData) (domain.Board, error)
	Get(slug domain.BoardSlug) (domain.Board, []domain.Post, error)
	Mine(accountId domain.AccountId) ([]domain.Board, error)
	Rename(slug domain.BoardSlug, name domain.BoardName, secret string, accountId domain.AccountId) error
	Delete(slug domain.BoardSlug, secret string, accountId domain.AccountId) error
	Claim(slug domain.BoardSlug, secret string, accountId domain.AccountId) error
}

type BoardStorage interface {
	SaveBoard(b domain.Board) error
	Board(slug domain.BoardSlug) (domain.Board, error)
	BoardsByOwner(accountId domain.AccountId) ([]domain.Board, error)
	UpdateBoardName(id domain.BoardId, name domain.BoardName) error
	ClaimBoard(id domain.BoardId, accountId domain.AccountId) (bool, error)
	DeleteBoard(id domain.BoardId) error
	PostsByBoard(boardId domain.BoardId) ([]domain.Post, error)
}

type Board struct {
	storage BoardStorage
	ttl     time.Duration // lifetime of an unclaimed board
}

func NewBoard(storage BoardStorage, ttl time.Duration) *Board {
	return &Board{storage: storage, ttl: ttl}
}

// slug collisions are rare (4 random chars) but possible; regenerate a few
// times before giving up
const slugAttempts = 3

// Create mints a new unclaimed board: fresh slug, fresh bearer secret,
// expiry one claim window out. The returned board carries the claim token —
// the only time it ever leaves the server.
func (b *Board) Create(data domain.BoardCreationData) (domain.Board, error) {
	name := strings.TrimSpace(data.Name)
	if name == "" {
		return domain.Board{}, &internal_errors.ErrorWithStatusCode{Message: "Name is required", StatusCode: http.StatusBadRequest}
	}

	expires := time.Now().UTC().Add(b.ttl)
	board := domain.Board{
		Id:         uuid.NewString(),
		Name:       name,
		ClaimToken: utils.GenerateClaimToken(),
		ExpiresAt:  &expires,
		CreatedAt:  time.Now().UTC(),
	}

	var err error
	for i := 0; i < slugAttempts; i++ {
		board.Slug = utils.GenerateSlug(name)
		err = b.storage.SaveBoard(board)
		if err == nil {
			return board, nil
		}
		if !internal_errors.IsConflict(err) {
			return domain.Board{}, err
		}
	}
	return domain.Board{}, err
}

// Get returns the public board page payload. The claim token never leaves
// this layer.
func (b *Board) Get(slug domain.BoardSlug) (domain.Board, []domain.Post, error) {
	board, err := b.storage.Board(slug)
	if err != nil {
		return domain.Board{}, nil, err
	}
	posts, err := b.storage.PostsByBoard(board.Id)
	if err != nil {
		return domain.Board{}, nil, err
	}
	board.ClaimToken = ""
	return board, posts, nil
}

func (b *Board) Mine(accountId domain.AccountId) ([]domain.Board, error) {
	return b.storage.BoardsByOwner(accountId)
}

func (b *Board) Rename(slug domain.BoardSlug, name domain.BoardName, secret string, accountId domain.AccountId) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &internal_errors.ErrorWithStatusCode{Message: "Name is required", StatusCode: http.StatusBadRequest}
	}

	board, err := b.storage.Board(slug)
	if err != nil {
		return err
	}
	if !IsBoardOwner(board, secret, accountId) {
		return &internal_errors.ErrorWithStatusCode{Message: "Unauthorized", StatusCode: http.StatusForbidden}
	}
	return b.storage.UpdateBoardName(board.Id, name)
}

func (b *Board) Delete(slug domain.BoardSlug, secret string, accountId domain.AccountId) error {
	board, err := b.storage.Board(slug)
	if err != nil {
		return err
	}
	if !IsBoardOwner(board, secret, accountId) {
		return &internal_errors.ErrorWithStatusCode{Message: "Unauthorized", StatusCode: http.StatusForbidden}
	}
	return b.storage.DeleteBoard(board.Id)
}

// Claim is the one-way transition binding an unowned board to an account.
// Precondition order matters: missing board, already claimed, wrong secret.
// The write itself is conditional on the owner reference still being empty,
// so two concurrent claims cannot both succeed.
func (b *Board) Claim(slug domain.BoardSlug, secret string, accountId domain.AccountId) error {
	board, err := b.storage.Board(slug)
	if err != nil {
		return err
	}
	if board.Claimed() {
		return &internal_errors.ErrorWithStatusCode{Message: "Board already claimed", StatusCode: http.StatusConflict}
	}
	if secret == "" || board.ClaimToken == "" || secret != board.ClaimToken {
		return &internal_errors.ErrorWithStatusCode{Message: "Invalid claim token", StatusCode: http.StatusForbidden}
	}

	claimed, err := b.storage.ClaimBoard(board.Id, accountId)
	if err != nil {
		return err
	}
	if !claimed { // lost a concurrent claim race
		return &internal_errors.ErrorWithStatusCode{Message: "Board already claimed", StatusCode: http.StatusConflict}
	}
	return nil
}
