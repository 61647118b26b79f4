package api

// Request DTOs

type VoteRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Response DTOs

type VoteStatusResponse struct {
	Voted bool `json:"voted"`
}
