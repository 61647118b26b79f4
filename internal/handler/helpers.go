package handler

import (
	"net/http"
	"strings"

	"github.com/fboard-dev/fboard/internal/api"
	"github.com/fboard-dev/fboard/internal/domain"
	mw "github.com/fboard-dev/fboard/internal/middleware"
)

// claimTokenHeader carries the board's bearer secret on owner endpoints.
const claimTokenHeader = "X-Claim-Token"

// presentedCredentials pulls both ownership credentials off the request: the
// bearer secret header and the authenticated account populated by
// OptionalAuth. Either may be empty; the service layer decides whether the
// combination is enough.
func presentedCredentials(r *http.Request) (secret string, accountId domain.AccountId) {
	secret = strings.TrimSpace(r.Header.Get(claimTokenHeader))
	if account := mw.GetAccountFromRequest(r); account != nil {
		accountId = account.Id
	}
	return secret, accountId
}

// sessionEmail returns the signed-in account's email, empty for anonymous
// callers.
func sessionEmail(r *http.Request) domain.Email {
	if account := mw.GetAccountFromRequest(r); account != nil {
		return account.Email
	}
	return ""
}

// DTO mappers

func toBoardResponse(b domain.Board) api.BoardResponse {
	return api.BoardResponse{
		Id:        b.Id,
		Name:      b.Name,
		Slug:      b.Slug,
		Claimed:   b.Claimed(),
		ExpiresAt: b.ExpiresAt,
		CreatedAt: b.CreatedAt,
	}
}

func toPostResponse(p domain.Post) api.PostResponse {
	return api.PostResponse{
		Id:           p.Id,
		Title:        p.Title,
		Description:  p.Description,
		Status:       string(p.Status),
		VoteCount:    p.DisplayVoteCount(),
		CommentCount: p.CommentCount,
		CreatedAt:    p.CreatedAt,
	}
}

func toCommentResponse(c domain.Comment) api.CommentResponse {
	return api.CommentResponse{
		Id:          c.Id,
		PostId:      c.PostId,
		AuthorEmail: c.AuthorEmail,
		Content:     c.Content,
		CreatedAt:   c.CreatedAt,
	}
}

func toChangelogEntryResponse(e domain.ChangelogEntry) api.ChangelogEntryResponse {
	return api.ChangelogEntryResponse{
		Id:          e.Id,
		Title:       e.Title,
		Content:     e.Content,
		PublishedAt: e.PublishedAt,
	}
}
