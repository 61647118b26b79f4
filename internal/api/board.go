package api

import "time"

// Request DTOs

type CreateBoardRequest struct {
	Name string `json:"name" validate:"required"`
}

type RenameBoardRequest struct {
	Name string `json:"name" validate:"required"`
}

type ClaimBoardRequest struct {
	ClaimToken string `json:"claim_token" validate:"required"`
}

// Response DTOs

// BoardResponse is the public shape of a board. The claim token is absent
// on purpose; only CreateBoardResponse ever carries it.
type BoardResponse struct {
	Id        string     `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	Claimed   bool       `json:"claimed"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// CreateBoardResponse is the one response that includes the claim token.
// Clients must store it; it is not retrievable afterwards.
type CreateBoardResponse struct {
	BoardResponse
	ClaimToken string `json:"claim_token"`
}

type BoardPageResponse struct {
	Board BoardResponse  `json:"board"`
	Posts []PostResponse `json:"posts"`
}

type BoardListResponse struct {
	Boards []BoardResponse `json:"boards"`
}
