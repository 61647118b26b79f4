package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fboard-dev/fboard/internal/api"
	"github.com/fboard-dev/fboard/internal/domain"
	mw "github.com/fboard-dev/fboard/internal/middleware"
	"github.com/fboard-dev/fboard/internal/utils"
)

func (h *Handler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	var body api.CreateBoardRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	board, err := h.board.Create(domain.BoardCreationData{Name: body.Name})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.CreateBoardResponse{
		BoardResponse: toBoardResponse(board),
		ClaimToken:    board.ClaimToken,
	})
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "board")

	board, posts, err := h.board.Get(slug)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	postResponses := make([]api.PostResponse, len(posts))
	for i, p := range posts {
		postResponses[i] = toPostResponse(p)
	}
	writeJSON(w, http.StatusOK, api.BoardPageResponse{Board: toBoardResponse(board), Posts: postResponses})
}

func (h *Handler) GetMyBoards(w http.ResponseWriter, r *http.Request) {
	account := mw.GetAccountFromRequest(r)
	if account == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	boards, err := h.board.Mine(account.Id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	boardResponses := make([]api.BoardResponse, len(boards))
	for i, b := range boards {
		boardResponses[i] = toBoardResponse(b)
	}
	writeJSON(w, http.StatusOK, api.BoardListResponse{Boards: boardResponses})
}

func (h *Handler) RenameBoard(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "board")

	var body api.RenameBoardRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	secret, accountId := presentedCredentials(r)
	if err := h.board.Rename(slug, body.Name, secret, accountId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "board")

	secret, accountId := presentedCredentials(r)
	if err := h.board.Delete(slug, secret, accountId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) ClaimBoard(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "board")

	account := mw.GetAccountFromRequest(r)
	if account == nil {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return
	}

	var body api.ClaimBoardRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.board.Claim(slug, body.ClaimToken, account.Id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.MessageResponse{Message: "Board claimed"})
}
