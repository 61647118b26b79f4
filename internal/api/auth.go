package api

// Request DTOs

type SendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type CheckCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

// Response DTOs

type VerificationResponse struct {
	Email     string `json:"email"`
	ExpiresAt string `json:"expires_at"`
}

type VerifiedStatusResponse struct {
	Verified bool `json:"verified"`
}

type LoginResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token,omitempty"` // for non-cookie clients
	Email       string `json:"email"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
