package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fboard-dev/fboard/internal/api"
	"github.com/fboard-dev/fboard/internal/utils"
)

func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	postId := chi.URLParam(r, "post")

	var body api.CreateCommentRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	email := sessionEmail(r)
	if email == "" {
		email = body.AuthorEmail
	}

	comment, err := h.comment.Create(postId, email, body.Content)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCommentResponse(comment))
}

func (h *Handler) GetComments(w http.ResponseWriter, r *http.Request) {
	postId := chi.URLParam(r, "post")

	comments, err := h.comment.List(postId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	commentResponses := make([]api.CommentResponse, len(comments))
	for i, c := range comments {
		commentResponses[i] = toCommentResponse(c)
	}
	writeJSON(w, http.StatusOK, api.CommentListResponse{Comments: commentResponses})
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	commentId := chi.URLParam(r, "comment")

	// Body is optional: board owners authorize via header or session only
	var body api.DeleteCommentRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := utils.DecodeValidate(r.Body, &body); err != nil {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}
	}

	presentedEmail := sessionEmail(r)
	if presentedEmail == "" {
		presentedEmail = body.AuthorEmail
	}

	secret, accountId := presentedCredentials(r)
	if err := h.comment.Delete(commentId, secret, accountId, presentedEmail); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
