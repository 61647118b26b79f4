package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fboard-dev/fboard/internal/domain"
	jwt_internal "github.com/fboard-dev/fboard/internal/jwt"
	"github.com/fboard-dev/fboard/internal/utils"
)

// Key to store the account claims in the request context
type key int

const AccountClaimsKey key = 0

type Auth struct {
	jwtService jwt_internal.JwtService
}

func NewAuth(jwtService jwt_internal.JwtService) *Auth {
	return &Auth{jwtService: jwtService}
}

// NeedAuth returns middleware that requires a valid session.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			account, err := a.extractAccount(r)
			if err != nil {
				if err == errNoToken {
					http.Error(w, "Please sign-in", http.StatusUnauthorized)
					return
				}
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), AccountClaimsKey, account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth populates the account context when a valid token is present
// and lets everything else through. Most board-owner endpoints use it: the
// bearer secret is an equally valid credential, so the absence of a session
// is not an error here.
func (a *Auth) OptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			account, _ := a.extractAccount(r)
			if account != nil {
				ctx := context.WithValue(r.Context(), AccountClaimsKey, account)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractAccount pulls the session from the accessToken cookie or, for
// non-browser clients, the Authorization header.
func (a *Auth) extractAccount(r *http.Request) (*domain.Account, error) {
	var tokenString string
	accessCookie, err := r.Cookie("accessToken")
	if err == nil {
		tokenString = accessCookie.Value
	} else if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		tokenString = token
	}

	if tokenString == "" {
		return nil, errNoToken
	}

	token, err := a.jwtService.DecodeToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errInvalidClaims
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errInvalidClaims
	}
	email, ok := claims["email"].(string)
	if !ok {
		return nil, errInvalidClaims
	}

	return &domain.Account{Id: sub, Email: email}, nil
}

var (
	errNoToken       = errorString("no token")
	errInvalidClaims = errorString("invalid claims")
)

type errorString string

func (e errorString) Error() string { return string(e) }

// GetAccountFromRequest retrieves the account from the context, nil when the
// request is anonymous.
func GetAccountFromRequest(r *http.Request) *domain.Account {
	account, ok := r.Context().Value(AccountClaimsKey).(*domain.Account)
	if !ok {
		return nil
	}
	return account
}
