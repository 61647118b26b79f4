package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fboard-dev/fboard/internal/api"
	"github.com/fboard-dev/fboard/internal/config"
	"github.com/fboard-dev/fboard/internal/domain"
	internal_errors "github.com/fboard-dev/fboard/internal/errors"
)

// --- Mocks ---

type MockBoardService struct {
	CreateFunc func(data domain.BoardCreationData) (domain.Board, error)
	GetFunc    func(slug domain.BoardSlug) (domain.Board, []domain.Post, error)
	MineFunc   func(accountId domain.AccountId) ([]domain.Board, error)
	RenameFunc func(slug domain.BoardSlug, name domain.BoardName, secret string, accountId domain.AccountId) error
	DeleteFunc func(slug domain.BoardSlug, secret string, accountId domain.AccountId) error
	ClaimFunc  func(slug domain.BoardSlug, secret string, accountId domain.AccountId) error
}

func (m *MockBoardService) Create(data domain.BoardCreationData) (domain.Board, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(data)
	}
	expires := time.Now().UTC().Add(30 * 24 * time.Hour)
	return domain.Board{
		Id:         "b1",
		Name:       data.Name,
		Slug:       "my-product-ab12",
		ClaimToken: "fb_claim_secret",
		ExpiresAt:  &expires,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

func (m *MockBoardService) Get(slug domain.BoardSlug) (domain.Board, []domain.Post, error) {
	if m.GetFunc != nil {
		return m.GetFunc(slug)
	}
	return domain.Board{Id: "b1", Slug: slug}, nil, nil
}

func (m *MockBoardService) Mine(accountId domain.AccountId) ([]domain.Board, error) {
	if m.MineFunc != nil {
		return m.MineFunc(accountId)
	}
	return nil, nil
}

func (m *MockBoardService) Rename(slug domain.BoardSlug, name domain.BoardName, secret string, accountId domain.AccountId) error {
	if m.RenameFunc != nil {
		return m.RenameFunc(slug, name, secret, accountId)
	}
	return nil
}

func (m *MockBoardService) Delete(slug domain.BoardSlug, secret string, accountId domain.AccountId) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(slug, secret, accountId)
	}
	return nil
}

func (m *MockBoardService) Claim(slug domain.BoardSlug, secret string, accountId domain.AccountId) error {
	if m.ClaimFunc != nil {
		return m.ClaimFunc(slug, secret, accountId)
	}
	return nil
}

func testConfig() *config.Config {
	return &config.Config{Public: config.Public{JwtTTLHours: 1}}
}

func newBoardHandler(board *MockBoardService) *Handler {
	return New(board, nil, nil, nil, nil, nil, nil, nil, testConfig())
}

// boardRouter mounts the board routes the way the real router does, so
// chi.URLParam resolves in handlers.
func boardRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/v1/boards", h.CreateBoard)
	r.Get("/v1/boards/{board}", h.GetBoard)
	r.Patch("/v1/boards/{board}", h.RenameBoard)
	r.Delete("/v1/boards/{board}", h.DeleteBoard)
	return r
}

// --- Tests ---

func TestCreateBoardHandler(t *testing.T) {
	t.Run("response carries the claim token", func(t *testing.T) {
		h := newBoardHandler(&MockBoardService{})
		r := boardRouter(h)

		req := httptest.NewRequest("POST", "/v1/boards", strings.NewReader(`{"name":"My Product"}`))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var resp api.CreateBoardResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "fb_claim_secret", resp.ClaimToken)
		assert.Equal(t, "my-product-ab12", resp.Slug)
		assert.False(t, resp.Claimed)
		assert.NotNil(t, resp.ExpiresAt)
	})

	t.Run("missing name rejected", func(t *testing.T) {
		h := newBoardHandler(&MockBoardService{})
		r := boardRouter(h)

		req := httptest.NewRequest("POST", "/v1/boards", strings.NewReader(`{}`))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetBoardHandler(t *testing.T) {
	t.Run("claim token never serialized", func(t *testing.T) {
		board := &MockBoardService{GetFunc: func(slug domain.BoardSlug) (domain.Board, []domain.Post, error) {
			return domain.Board{Id: "b1", Slug: slug, Name: "My Product"}, []domain.Post{{Id: "p1", VoteCount: -1}}, nil
		}}
		h := newBoardHandler(board)
		r := boardRouter(h)

		req := httptest.NewRequest("GET", "/v1/boards/my-product-ab12", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "claim_token")

		var resp api.BoardPageResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		require.Len(t, resp.Posts, 1)
		// negative derived counts are clamped at the edge
		assert.Equal(t, 0, resp.Posts[0].VoteCount)
	})

	t.Run("missing board propagates 404", func(t *testing.T) {
		board := &MockBoardService{GetFunc: func(slug domain.BoardSlug) (domain.Board, []domain.Post, error) {
			return domain.Board{}, nil, &internal_errors.ErrorWithStatusCode{Message: "Board not found", StatusCode: http.StatusNotFound}
		}}
		h := newBoardHandler(board)
		r := boardRouter(h)

		req := httptest.NewRequest("GET", "/v1/boards/nope", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRenameBoardHandler(t *testing.T) {
	t.Run("claim token header forwarded as secret", func(t *testing.T) {
		var gotSecret string
		board := &MockBoardService{RenameFunc: func(slug domain.BoardSlug, name domain.BoardName, secret string, accountId domain.AccountId) error {
			gotSecret = secret
			return nil
		}}
		h := newBoardHandler(board)
		r := boardRouter(h)

		req := httptest.NewRequest("PATCH", "/v1/boards/my-product-ab12", strings.NewReader(`{"name":"Renamed"}`))
		req.Header.Set("X-Claim-Token", "fb_claim_secret")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "fb_claim_secret", gotSecret)
	})

	t.Run("service rejection propagates 403", func(t *testing.T) {
		board := &MockBoardService{RenameFunc: func(slug domain.BoardSlug, name domain.BoardName, secret string, accountId domain.AccountId) error {
			return &internal_errors.ErrorWithStatusCode{Message: "Unauthorized", StatusCode: http.StatusForbidden}
		}}
		h := newBoardHandler(board)
		r := boardRouter(h)

		req := httptest.NewRequest("PATCH", "/v1/boards/my-product-ab12", strings.NewReader(`{"name":"Renamed"}`))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
