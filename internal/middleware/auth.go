package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/talkboard/talkboard/internal/domain"
	"github.com/talkboard/talkboard/internal/jwt"
)

// Key to store the user claims in the request context
type key int

const UserClaimsKey key = 0

type Auth struct {
	jwtService jwt.JwtService
}

func NewAuth(jwtService jwt.JwtService) *Auth {
	return &Auth{jwtService: jwtService}
}

// NeedAuth returns middleware that requires an authenticated acting identity.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return a.auth(false)
}

// AdminOnly returns middleware that additionally requires the admin flag.
func (a *Auth) AdminOnly() func(http.Handler) http.Handler {
	return a.auth(true)
}

// OptionalAuth populates the user context when a valid token is present but
// lets anonymous requests through. Used by read paths where identity only
// widens visibility.
func (a *Auth) OptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user, err := a.extractUser(r); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), UserClaimsKey, user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (a *Auth) auth(adminOnly bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := a.extractUser(r)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if adminOnly && !user.Admin {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			ctx := context.WithValue(r.Context(), UserClaimsKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractUser reads the token from the accessToken cookie (browser clients)
// or the Authorization header (API clients).
func (a *Auth) extractUser(r *http.Request) (*domain.User, error) {
	var tokenString string
	if cookie, err := r.Cookie("accessToken"); err == nil {
		tokenString = cookie.Value
	} else if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		tokenString = token
	}
	if tokenString == "" {
		return nil, http.ErrNoCookie
	}
	return a.jwtService.ParseToken(tokenString)
}

// GetUserFromContext returns the acting user, or nil for anonymous requests.
func GetUserFromContext(r *http.Request) *domain.User {
	user, _ := r.Context().Value(UserClaimsKey).(*domain.User)
	return user
}
