package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fboard-dev/fboard/internal/api"
	"github.com/fboard-dev/fboard/internal/domain"
	"github.com/fboard-dev/fboard/internal/utils"
)

func (h *Handler) CreateChangelogEntry(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "board")

	var body api.CreateChangelogEntryRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	secret, accountId := presentedCredentials(r)
	entry, err := h.changelog.Create(slug, domain.ChangelogCreationData{Title: body.Title, Content: body.Content}, secret, accountId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toChangelogEntryResponse(entry))
}

func (h *Handler) GetChangelog(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "board")

	entries, err := h.changelog.List(slug)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	entryResponses := make([]api.ChangelogEntryResponse, len(entries))
	for i, e := range entries {
		entryResponses[i] = toChangelogEntryResponse(e)
	}
	writeJSON(w, http.StatusOK, api.ChangelogResponse{Entries: entryResponses})
}

func (h *Handler) UpdateChangelogEntry(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "board")
	entryId := chi.URLParam(r, "entry")

	var body api.UpdateChangelogEntryRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	secret, accountId := presentedCredentials(r)
	if err := h.changelog.Update(slug, entryId, body.Title, body.Content, secret, accountId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteChangelogEntry(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "board")
	entryId := chi.URLParam(r, "entry")

	secret, accountId := presentedCredentials(r)
	if err := h.changelog.Delete(slug, entryId, secret, accountId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
