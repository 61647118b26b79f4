package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http"

	internal_errors "github.com/fboard-dev/fboard/internal/errors"
	"github.com/fboard-dev/fboard/internal/middleware/ratelimiter"
	"github.com/fboard-dev/fboard/internal/utils"
)

func RateLimit(rl *ratelimiter.PerIdentityLimiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := getIdentity(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
			if !rl.Allow(identity) {
				http.Error(w, "Rate limit exceeded, try again later", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func GlobalRateLimit(rl *ratelimiter.PerIdentityLimiter) func(http.Handler) http.Handler {
	return RateLimit(rl, func(r *http.Request) (string, error) { return "global", nil })
}

// GetIP extracts the client IP from RemoteAddr. X-Forwarded-For is not
// trusted: there is no reverse proxy in front of this service by default.
func GetIP(r *http.Request) (string, error) {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	if net.ParseIP(ip) == nil {
		return "", &internal_errors.ErrorWithStatusCode{Message: "Invalid IP address", StatusCode: http.StatusBadRequest}
	}
	return ip, nil
}

// GetEmailFromBody extracts the email field from a JSON body so that
// code-sending endpoints can be throttled per address. The body is restored
// for the handler.
func GetEmailFromBody(r *http.Request) (string, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return "", &internal_errors.ErrorWithStatusCode{Message: "Failed to read request body", StatusCode: http.StatusBadRequest}
	}
	r.Body = io.NopCloser(bytes.NewBuffer(body))

	var data struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body, &data); err != nil {
		return "", &internal_errors.ErrorWithStatusCode{Message: "Invalid request body", StatusCode: http.StatusBadRequest}
	}
	if data.Email == "" {
		return "", &internal_errors.ErrorWithStatusCode{Message: "Email field is required", StatusCode: http.StatusBadRequest}
	}
	return data.Email, nil
}

// GetAccountFromContext keys the limit by the authenticated account; falls
// back to IP for anonymous callers.
func GetAccountFromContext(r *http.Request) (string, error) {
	if account := GetAccountFromRequest(r); account != nil {
		return "account_" + account.Id, nil
	}
	return GetIP(r)
}
