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
type ChangelogService interface {
	Create(slug domain.BoardSlug, data domain.ChangelogCreationData, secret string, accountId domain.AccountId) (domain.ChangelogEntry, error)
	List(slug domain.BoardSlug) ([]domain.ChangelogEntry, error)
	Update(slug domain.BoardSlug, entryId domain.ChangelogId, title, content, secret string, accountId domain.AccountId) error
	Delete(slug domain.BoardSlug, entryId domain.ChangelogId, secret string, accountId domain.AccountId) error
}

type ChangelogStorage interface {
	Board(slug domain.BoardSlug) (domain.Board, error)
	SaveChangelogEntry(e domain.ChangelogEntry) error
	ChangelogEntry(id domain.ChangelogId) (domain.ChangelogEntry, error)
	ChangelogByBoard(boardId domain.BoardId) ([]domain.ChangelogEntry, error)
	UpdateChangelogEntry(id domain.ChangelogId, title, content string) error
	DeleteChangelogEntry(id domain.ChangelogId) error
}

// HTMLRenderer turns markdown source into sanitized HTML for display.
type HTMLRenderer interface {
	Render(source string) (string, error)
}

type Changelog struct {
	storage  ChangelogStorage
	renderer HTMLRenderer
}

func NewChangelog(storage ChangelogStorage, renderer HTMLRenderer) *Changelog {
	return &Changelog{storage: storage, renderer: renderer}
}

func (c *Changelog) Create(slug domain.BoardSlug, data domain.ChangelogCreationData, secret string, accountId domain.AccountId) (domain.ChangelogEntry, error) {
	title := strings.TrimSpace(data.Title)
	if title == "" {
		return domain.ChangelogEntry{}, &errors.ErrorWithStatusCode{Message: "Title is required", StatusCode: http.StatusBadRequest}
	}

	board, err := c.storage.Board(slug)
	if err != nil {
		return domain.ChangelogEntry{}, err
	}
	if !IsBoardOwner(board, secret, accountId) {
		return domain.ChangelogEntry{}, &errors.ErrorWithStatusCode{Message: "Unauthorized", StatusCode: http.StatusForbidden}
	}

	now := time.Now().UTC()
	entry := domain.ChangelogEntry{
		Id:          uuid.NewString(),
		BoardId:     board.Id,
		Title:       title,
		Content:     data.Content,
		PublishedAt: now,
		CreatedAt:   now,
	}
	if err := c.storage.SaveChangelogEntry(entry); err != nil {
		return domain.ChangelogEntry{}, err
	}
	return entry, nil
}

// List returns entries newest first, content rendered to sanitized HTML.
// The changelog page is public.
func (c *Changelog) List(slug domain.BoardSlug) ([]domain.ChangelogEntry, error) {
	board, err := c.storage.Board(slug)
	if err != nil {
		return nil, err
	}
	entries, err := c.storage.ChangelogByBoard(board.Id)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		html, err := c.renderer.Render(entries[i].Content)
		if err != nil {
			return nil, err
		}
		entries[i].Content = html
	}
	return entries, nil
}

func (c *Changelog) Update(slug domain.BoardSlug, entryId domain.ChangelogId, title, content, secret string, accountId domain.AccountId) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return &errors.ErrorWithStatusCode{Message: "Title is required", StatusCode: http.StatusBadRequest}
	}

	board, entry, err := c.boardAndEntry(slug, entryId)
	if err != nil {
		return err
	}
	if !IsBoardOwner(board, secret, accountId) {
		return &errors.ErrorWithStatusCode{Message: "Unauthorized", StatusCode: http.StatusForbidden}
	}
	return c.storage.UpdateChangelogEntry(entry.Id, title, content)
}

func (c *Changelog) Delete(slug domain.BoardSlug, entryId domain.ChangelogId, secret string, accountId domain.AccountId) error {
	board, entry, err := c.boardAndEntry(slug, entryId)
	if err != nil {
		return err
	}
	if !IsBoardOwner(board, secret, accountId) {
		return &errors.ErrorWithStatusCode{Message: "Unauthorized", StatusCode: http.StatusForbidden}
	}
	return c.storage.DeleteChangelogEntry(entry.Id)
}

func (c *Changelog) boardAndEntry(slug domain.BoardSlug, entryId domain.ChangelogId) (domain.Board, domain.ChangelogEntry, error) {
	board, err := c.storage.Board(slug)
	if err != nil {
		return domain.Board{}, domain.ChangelogEntry{}, err
	}
	entry, err := c.storage.ChangelogEntry(entryId)
	if err != nil {
		return domain.Board{}, domain.ChangelogEntry{}, err
	}
	if entry.BoardId != board.Id {
		return domain.Board{}, domain.ChangelogEntry{}, &errors.ErrorWithStatusCode{Message: "Changelog entry not found", StatusCode: http.StatusNotFound}
	}
	return board, entry, nil
}
