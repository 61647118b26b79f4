package service

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fboard-dev/fboard/internal/domain"
	internal_errors "github.com/fboard-dev/fboard/internal/errors"
)

// --- Mocks ---

type MockPostStorage struct {
	BoardFunc            func(slug domain.BoardSlug) (domain.Board, error)
	SavePostFunc         func(p domain.Post) error
	PostFunc             func(id domain.PostId) (domain.Post, error)
	UpdatePostStatusFunc func(id domain.PostId, status domain.PostStatus) error
	DeletePostFunc       func(id domain.PostId) error
}

func (m *MockPostStorage) Board(slug domain.BoardSlug) (domain.Board, error) {
	if m.BoardFunc != nil {
		return m.BoardFunc(slug)
	}
	owner := "acc1"
	return domain.Board{Id: "b1", Slug: slug, OwnerId: &owner}, nil
}

func (m *MockPostStorage) SavePost(p domain.Post) error {
	if m.SavePostFunc != nil {
		return m.SavePostFunc(p)
	}
	return nil
}

func (m *MockPostStorage) Post(id domain.PostId) (domain.Post, error) {
	if m.PostFunc != nil {
		return m.PostFunc(id)
	}
	return domain.Post{Id: id, BoardId: "b1"}, nil
}

func (m *MockPostStorage) UpdatePostStatus(id domain.PostId, status domain.PostStatus) error {
	if m.UpdatePostStatusFunc != nil {
		return m.UpdatePostStatusFunc(id, status)
	}
	return nil
}

func (m *MockPostStorage) DeletePost(id domain.PostId) error {
	if m.DeletePostFunc != nil {
		return m.DeletePostFunc(id)
	}
	return nil
}

// --- Create ---

func TestPostCreate(t *testing.T) {
	t.Run("anyone can post", func(t *testing.T) {
		var saved domain.Post
		storage := &MockPostStorage{SavePostFunc: func(p domain.Post) error {
			saved = p
			return nil
		}}
		svc := NewPost(storage)

		post, err := svc.Create("my-board-ab12", domain.PostCreationData{
			Title:       "  Dark mode  ",
			Description: " please ",
			AuthorEmail: "User@Example.com",
		})
		require.NoError(t, err)

		assert.Equal(t, "Dark mode", post.Title)
		assert.Equal(t, "please", post.Description)
		assert.Equal(t, domain.StatusOpen, post.Status)
		assert.Equal(t, domain.Email("user@example.com"), post.AuthorEmail)
		assert.Equal(t, saved.Id, post.Id)
	})

	t.Run("empty title rejected", func(t *testing.T) {
		svc := NewPost(&MockPostStorage{})
		_, err := svc.Create("my-board-ab12", domain.PostCreationData{Title: "  "})
		assertStatusCode(t, err, http.StatusBadRequest)
	})

	t.Run("oversized title rejected", func(t *testing.T) {
		svc := NewPost(&MockPostStorage{})
		_, err := svc.Create("my-board-ab12", domain.PostCreationData{Title: strings.Repeat("a", maxPostTitleLen+1)})
		assertStatusCode(t, err, http.StatusBadRequest)
	})

	t.Run("missing board", func(t *testing.T) {
		storage := &MockPostStorage{BoardFunc: func(slug domain.BoardSlug) (domain.Board, error) {
			return domain.Board{}, &internal_errors.ErrorWithStatusCode{Message: "Board not found", StatusCode: http.StatusNotFound}
		}}
		svc := NewPost(storage)

		_, err := svc.Create("nope", domain.PostCreationData{Title: "Dark mode"})
		assertStatusCode(t, err, http.StatusNotFound)
	})
}

// --- UpdateStatus ---

func TestPostUpdateStatus(t *testing.T) {
	t.Run("owner moves post through statuses", func(t *testing.T) {
		var updated domain.PostStatus
		storage := &MockPostStorage{UpdatePostStatusFunc: func(id domain.PostId, status domain.PostStatus) error {
			updated = status
			return nil
		}}
		svc := NewPost(storage)

		require.NoError(t, svc.UpdateStatus("my-board-ab12", "p1", domain.StatusPlanned, "", "acc1"))
		assert.Equal(t, domain.StatusPlanned, updated)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		svc := NewPost(&MockPostStorage{})
		err := svc.UpdateStatus("my-board-ab12", "p1", "shipped", "", "acc1")
		assertStatusCode(t, err, http.StatusBadRequest)
	})

	t.Run("non-owner rejected", func(t *testing.T) {
		svc := NewPost(&MockPostStorage{})
		err := svc.UpdateStatus("my-board-ab12", "p1", domain.StatusDone, "", "acc2")
		assertStatusCode(t, err, http.StatusForbidden)
	})

	t.Run("post from another board looks missing", func(t *testing.T) {
		storage := &MockPostStorage{PostFunc: func(id domain.PostId) (domain.Post, error) {
			return domain.Post{Id: id, BoardId: "other-board"}, nil
		}}
		svc := NewPost(storage)

		err := svc.UpdateStatus("my-board-ab12", "p1", domain.StatusDone, "", "acc1")
		assertStatusCode(t, err, http.StatusNotFound)
	})
}

// --- Delete ---

func TestPostDelete(t *testing.T) {
	t.Run("owner deletes", func(t *testing.T) {
		deleted := false
		storage := &MockPostStorage{DeletePostFunc: func(id domain.PostId) error {
			deleted = true
			return nil
		}}
		svc := NewPost(storage)

		require.NoError(t, svc.Delete("my-board-ab12", "p1", "", "acc1"))
		assert.True(t, deleted)
	})

	t.Run("stranger rejected", func(t *testing.T) {
		svc := NewPost(&MockPostStorage{})
		err := svc.Delete("my-board-ab12", "p1", "", "")
		assertStatusCode(t, err, http.StatusForbidden)
	})
}
