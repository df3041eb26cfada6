package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ritim-dev/ritim/internal/domain"
	jwt_internal "github.com/ritim-dev/ritim/internal/jwt"
)

var (
	errNoToken       = errors.New("no access token")
	errInvalidClaims = errors.New("invalid token claims")
)

// Key to store the user claims in the request context
type key int

const UserClaimsKey key = 0

// Auth holds dependencies for authentication middleware
type Auth struct {
	jwtService    jwt_internal.JwtService
	secureCookies bool
}

func NewAuth(jwtService jwt_internal.JwtService, secureCookies bool) *Auth {
	return &Auth{
		jwtService:    jwtService,
		secureCookies: secureCookies,
	}
}

// NeedAuth returns middleware that requires authentication
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return a.auth(false)
}

// AdminOnly returns middleware that requires admin authentication
func (a *Auth) AdminOnly() func(http.Handler) http.Handler {
	return a.auth(true)
}

// extractUser extracts and validates user from JWT token in request.
// Returns (user, nil) on success, (nil, error) on failure
func (a *Auth) extractUser(r *http.Request) (*domain.User, error) {
	// Try to get token from cookie first (for browser clients)
	var tokenString string
	accessCookie, err := r.Cookie("accessToken")
	if err == nil {
		tokenString = accessCookie.Value
	} else if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		// If no cookie, try Authorization header (for API/mobile clients)
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

	uid, ok := claims["uid"].(string)
	if !ok {
		return nil, errInvalidClaims
	}

	handle, ok := claims["handle"].(string)
	if !ok {
		return nil, errInvalidClaims
	}

	role, ok := claims["role"].(string)
	if !ok {
		return nil, errInvalidClaims
	}

	return &domain.User{Id: uid, Handle: handle, Role: role}, nil
}

func (a *Auth) auth(adminOnly bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := a.extractUser(r)
			if err != nil {
				http.Error(w, "Not authorized", http.StatusUnauthorized)
				return
			}
			if adminOnly && user.Role != domain.RoleAdmin {
				http.Error(w, "Admin rights needed", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext returns the authenticated user or nil.
func GetUserFromContext(r *http.Request) *domain.User {
	user, ok := r.Context().Value(UserClaimsKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}
