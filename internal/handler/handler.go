package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fboard-dev/fboard/internal/config"
	"github.com/fboard-dev/fboard/internal/logger"
	"github.com/fboard-dev/fboard/internal/service"
)

// HealthChecker reports whether the storage backend is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	board        service.BoardService
	post         service.PostService
	vote         service.VoteService
	comment      service.CommentService
	changelog    service.ChangelogService
	verification service.VerificationService
	account      service.AccountService
	health       HealthChecker
	cfg          *config.Config
}

func New(
	board service.BoardService,
	post service.PostService,
	vote service.VoteService,
	comment service.CommentService,
	changelog service.ChangelogService,
	verification service.VerificationService,
	account service.AccountService,
	health HealthChecker,
	cfg *config.Config,
) *Handler {
	return &Handler{board, post, vote, comment, changelog, verification, account, health, cfg}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}
