package service

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fboard-dev/fboard/internal/domain"
	internal_errors "github.com/fboard-dev/fboard/internal/errors"
)

// --- Mocks ---

type MockBoardStorage struct {
	SaveBoardFunc       func(b domain.Board) error
	BoardFunc           func(slug domain.BoardSlug) (domain.Board, error)
	BoardsByOwnerFunc   func(accountId domain.AccountId) ([]domain.Board, error)
	UpdateBoardNameFunc func(id domain.BoardId, name domain.BoardName) error
	ClaimBoardFunc      func(id domain.BoardId, accountId domain.AccountId) (bool, error)
	DeleteBoardFunc     func(id domain.BoardId) error
	PostsByBoardFunc    func(boardId domain.BoardId) ([]domain.Post, error)
}

func (m *MockBoardStorage) SaveBoard(b domain.Board) error {
	if m.SaveBoardFunc != nil {
		return m.SaveBoardFunc(b)
	}
	return nil
}

func (m *MockBoardStorage) Board(slug domain.BoardSlug) (domain.Board, error) {
	if m.BoardFunc != nil {
		return m.BoardFunc(slug)
	}
	return domain.Board{}, &internal_errors.ErrorWithStatusCode{Message: "Board not found", StatusCode: http.StatusNotFound}
}

func (m *MockBoardStorage) BoardsByOwner(accountId domain.AccountId) ([]domain.Board, error) {
	if m.BoardsByOwnerFunc != nil {
		return m.BoardsByOwnerFunc(accountId)
	}
	return nil, nil
}

func (m *MockBoardStorage) UpdateBoardName(id domain.BoardId, name domain.BoardName) error {
	if m.UpdateBoardNameFunc != nil {
		return m.UpdateBoardNameFunc(id, name)
	}
	return nil
}

func (m *MockBoardStorage) ClaimBoard(id domain.BoardId, accountId domain.AccountId) (bool, error) {
	if m.ClaimBoardFunc != nil {
		return m.ClaimBoardFunc(id, accountId)
	}
	return true, nil
}

func (m *MockBoardStorage) DeleteBoard(id domain.BoardId) error {
	if m.DeleteBoardFunc != nil {
		return m.DeleteBoardFunc(id)
	}
	return nil
}

func (m *MockBoardStorage) PostsByBoard(boardId domain.BoardId) ([]domain.Post, error) {
	if m.PostsByBoardFunc != nil {
		return m.PostsByBoardFunc(boardId)
	}
	return nil, nil
}

func assertStatusCode(t *testing.T, err error, want int) {
	t.Helper()
	require.Error(t, err)
	var statusErr *internal_errors.ErrorWithStatusCode
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, want, statusErr.StatusCode)
}

// --- Create ---

func TestBoardCreate(t *testing.T) {
	t.Run("success returns claim token and expiry", func(t *testing.T) {
		var saved domain.Board
		storage := &MockBoardStorage{SaveBoardFunc: func(b domain.Board) error {
			saved = b
			return nil
		}}
		svc := NewBoard(storage, 30*24*time.Hour)

		board, err := svc.Create(domain.BoardCreationData{Name: "  My Product  "})
		require.NoError(t, err)

		assert.Equal(t, "My Product", board.Name)
		assert.True(t, strings.HasPrefix(board.ClaimToken, "fb_claim_"))
		require.NotNil(t, board.ExpiresAt)
		assert.WithinDuration(t, time.Now().UTC().Add(30*24*time.Hour), *board.ExpiresAt, time.Minute)
		assert.Nil(t, board.OwnerId)
		assert.Equal(t, saved.Slug, board.Slug)
		assert.True(t, strings.HasPrefix(board.Slug, "my-product-"))
	})

	t.Run("empty name rejected", func(t *testing.T) {
		svc := NewBoard(&MockBoardStorage{}, time.Hour)
		_, err := svc.Create(domain.BoardCreationData{Name: "   "})
		assertStatusCode(t, err, http.StatusBadRequest)
	})

	t.Run("slug collision retried with fresh slug", func(t *testing.T) {
		var slugs []string
		storage := &MockBoardStorage{SaveBoardFunc: func(b domain.Board) error {
			slugs = append(slugs, b.Slug)
			if len(slugs) == 1 {
				return &internal_errors.ErrorWithStatusCode{Message: "Board already exists", StatusCode: http.StatusConflict}
			}
			return nil
		}}
		svc := NewBoard(storage, time.Hour)

		_, err := svc.Create(domain.BoardCreationData{Name: "My Product"})
		require.NoError(t, err)
		require.Len(t, slugs, 2)
		assert.NotEqual(t, slugs[0], slugs[1])
	})

	t.Run("persistent collision surfaces conflict", func(t *testing.T) {
		storage := &MockBoardStorage{SaveBoardFunc: func(b domain.Board) error {
			return &internal_errors.ErrorWithStatusCode{Message: "Board already exists", StatusCode: http.StatusConflict}
		}}
		svc := NewBoard(storage, time.Hour)

		_, err := svc.Create(domain.BoardCreationData{Name: "My Product"})
		assertStatusCode(t, err, http.StatusConflict)
	})
}

// --- Get ---

func TestBoardGet(t *testing.T) {
	t.Run("claim token stripped from response", func(t *testing.T) {
		storage := &MockBoardStorage{
			BoardFunc: func(slug domain.BoardSlug) (domain.Board, error) {
				return domain.Board{Id: "b1", Slug: slug, ClaimToken: "fb_claim_secret"}, nil
			},
			PostsByBoardFunc: func(boardId domain.BoardId) ([]domain.Post, error) {
				return []domain.Post{{Id: "p1", BoardId: boardId}}, nil
			},
		}
		svc := NewBoard(storage, time.Hour)

		board, posts, err := svc.Get("my-board-ab12")
		require.NoError(t, err)
		assert.Empty(t, board.ClaimToken)
		assert.Len(t, posts, 1)
	})

	t.Run("missing board", func(t *testing.T) {
		svc := NewBoard(&MockBoardStorage{}, time.Hour)
		_, _, err := svc.Get("nope")
		assertStatusCode(t, err, http.StatusNotFound)
	})
}

// --- Claim ---

func TestBoardClaim(t *testing.T) {
	unclaimed := func(slug domain.BoardSlug) (domain.Board, error) {
		return domain.Board{Id: "b1", Slug: slug, ClaimToken: "fb_claim_secret"}, nil
	}

	t.Run("success", func(t *testing.T) {
		var claimedBy domain.AccountId
		storage := &MockBoardStorage{
			BoardFunc: unclaimed,
			ClaimBoardFunc: func(id domain.BoardId, accountId domain.AccountId) (bool, error) {
				claimedBy = accountId
				return true, nil
			},
		}
		svc := NewBoard(storage, time.Hour)

		err := svc.Claim("my-board-ab12", "fb_claim_secret", "acc1")
		require.NoError(t, err)
		assert.Equal(t, domain.AccountId("acc1"), claimedBy)
	})

	t.Run("missing board wins over wrong secret", func(t *testing.T) {
		svc := NewBoard(&MockBoardStorage{}, time.Hour)
		err := svc.Claim("nope", "fb_claim_wrong", "acc1")
		assertStatusCode(t, err, http.StatusNotFound)
	})

	t.Run("already claimed wins over wrong secret", func(t *testing.T) {
		owner := "acc0"
		storage := &MockBoardStorage{BoardFunc: func(slug domain.BoardSlug) (domain.Board, error) {
			return domain.Board{Id: "b1", Slug: slug, OwnerId: &owner}, nil
		}}
		svc := NewBoard(storage, time.Hour)

		err := svc.Claim("my-board-ab12", "fb_claim_wrong", "acc1")
		assertStatusCode(t, err, http.StatusConflict)
	})

	t.Run("wrong secret", func(t *testing.T) {
		storage := &MockBoardStorage{BoardFunc: unclaimed}
		svc := NewBoard(storage, time.Hour)

		err := svc.Claim("my-board-ab12", "fb_claim_wrong", "acc1")
		assertStatusCode(t, err, http.StatusForbidden)
	})

	t.Run("empty secret never matches", func(t *testing.T) {
		storage := &MockBoardStorage{BoardFunc: func(slug domain.BoardSlug) (domain.Board, error) {
			return domain.Board{Id: "b1", Slug: slug, ClaimToken: ""}, nil
		}}
		svc := NewBoard(storage, time.Hour)

		err := svc.Claim("my-board-ab12", "", "acc1")
		assertStatusCode(t, err, http.StatusForbidden)
	})

	t.Run("lost race reported as already claimed", func(t *testing.T) {
		storage := &MockBoardStorage{
			BoardFunc: unclaimed,
			ClaimBoardFunc: func(id domain.BoardId, accountId domain.AccountId) (bool, error) {
				return false, nil
			},
		}
		svc := NewBoard(storage, time.Hour)

		err := svc.Claim("my-board-ab12", "fb_claim_secret", "acc1")
		assertStatusCode(t, err, http.StatusConflict)
	})
}

// --- Rename / Delete ---

func TestBoardRename(t *testing.T) {
	stored := func(slug domain.BoardSlug) (domain.Board, error) {
		owner := "acc1"
		return domain.Board{Id: "b1", Slug: slug, OwnerId: &owner}, nil
	}

	t.Run("owner renames", func(t *testing.T) {
		var renamed domain.BoardName
		storage := &MockBoardStorage{
			BoardFunc: stored,
			UpdateBoardNameFunc: func(id domain.BoardId, name domain.BoardName) error {
				renamed = name
				return nil
			},
		}
		svc := NewBoard(storage, time.Hour)

		require.NoError(t, svc.Rename("my-board-ab12", "New Name", "", "acc1"))
		assert.Equal(t, "New Name", renamed)
	})

	t.Run("stranger rejected", func(t *testing.T) {
		svc := NewBoard(&MockBoardStorage{BoardFunc: stored}, time.Hour)
		err := svc.Rename("my-board-ab12", "New Name", "", "acc2")
		assertStatusCode(t, err, http.StatusForbidden)
	})

	t.Run("empty name rejected before load", func(t *testing.T) {
		svc := NewBoard(&MockBoardStorage{BoardFunc: stored}, time.Hour)
		err := svc.Rename("my-board-ab12", " ", "", "acc1")
		assertStatusCode(t, err, http.StatusBadRequest)
	})
}

func TestBoardDelete(t *testing.T) {
	t.Run("secret holder deletes unclaimed board", func(t *testing.T) {
		deleted := false
		storage := &MockBoardStorage{
			BoardFunc: func(slug domain.BoardSlug) (domain.Board, error) {
				return domain.Board{Id: "b1", Slug: slug, ClaimToken: "fb_claim_secret"}, nil
			},
			DeleteBoardFunc: func(id domain.BoardId) error {
				deleted = true
				return nil
			},
		}
		svc := NewBoard(storage, time.Hour)

		require.NoError(t, svc.Delete("my-board-ab12", "fb_claim_secret", ""))
		assert.True(t, deleted)
	})

	t.Run("secret no longer works after claim retired it", func(t *testing.T) {
		owner := "acc1"
		storage := &MockBoardStorage{BoardFunc: func(slug domain.BoardSlug) (domain.Board, error) {
			return domain.Board{Id: "b1", Slug: slug, OwnerId: &owner}, nil
		}}
		svc := NewBoard(storage, time.Hour)

		err := svc.Delete("my-board-ab12", "fb_claim_secret", "")
		assertStatusCode(t, err, http.StatusForbidden)
	})
}
