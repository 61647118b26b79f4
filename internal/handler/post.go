package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fboard-dev/fboard/internal/api"
	"github.com/fboard-dev/fboard/internal/domain"
	"github.com/fboard-dev/fboard/internal/utils"
)

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "board")

	var body api.CreatePostRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	authorEmail := body.AuthorEmail
	if authorEmail == "" {
		authorEmail = sessionEmail(r)
	}

	post, err := h.post.Create(slug, domain.PostCreationData{
		Title:       body.Title,
		Description: body.Description,
		AuthorEmail: authorEmail,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toPostResponse(post))
}

func (h *Handler) UpdatePostStatus(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "board")
	postId := chi.URLParam(r, "post")

	var body api.UpdatePostStatusRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	secret, accountId := presentedCredentials(r)
	if err := h.post.UpdateStatus(slug, postId, domain.PostStatus(body.Status), secret, accountId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "board")
	postId := chi.URLParam(r, "post")

	secret, accountId := presentedCredentials(r)
	if err := h.post.Delete(slug, postId, secret, accountId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
