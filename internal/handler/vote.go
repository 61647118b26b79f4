package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fboard-dev/fboard/internal/api"
	"github.com/fboard-dev/fboard/internal/utils"
)

// voteEmail resolves the voter identity: the session email when signed in,
// otherwise the email from the request body.
func (h *Handler) voteEmail(r *http.Request) (string, error) {
	if email := sessionEmail(r); email != "" {
		return email, nil
	}
	var body api.VoteRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		return "", err
	}
	return body.Email, nil
}

func (h *Handler) CastVote(w http.ResponseWriter, r *http.Request) {
	postId := chi.URLParam(r, "post")

	email, err := h.voteEmail(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.vote.Cast(postId, email); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) RetractVote(w http.ResponseWriter, r *http.Request) {
	postId := chi.URLParam(r, "post")

	email, err := h.voteEmail(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.vote.Retract(postId, email); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) GetVoteStatus(w http.ResponseWriter, r *http.Request) {
	postId := chi.URLParam(r, "post")

	email := sessionEmail(r)
	if email == "" {
		email = r.URL.Query().Get("email")
	}

	voted, err := h.vote.HasVoted(postId, email)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.VoteStatusResponse{Voted: voted})
}
