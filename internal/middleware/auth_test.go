package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritim-dev/ritim/internal/domain"
	internal_jwt "github.com/ritim-dev/ritim/internal/jwt"
)

func authSetup(t *testing.T) (*Auth, string, string) {
	t.Helper()
	jwtService := internal_jwt.New("test-secret", time.Hour)

	userToken, err := jwtService.NewToken(domain.User{Id: "u1", Handle: "alice", Role: domain.RoleUser})
	require.NoError(t, err)
	adminToken, err := jwtService.NewToken(domain.User{Id: "u2", Handle: "root", Role: domain.RoleAdmin})
	require.NoError(t, err)

	return NewAuth(jwtService, false), userToken, adminToken
}

func echoUser(t *testing.T) (http.Handler, **domain.User) {
	t.Helper()
	var seen *domain.User
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetUserFromContext(r)
		w.WriteHeader(http.StatusOK)
	}), &seen
}

func TestNeedAuth(t *testing.T) {
	auth, userToken, _ := authSetup(t)

	t.Run("cookie token passes", func(t *testing.T) {
		inner, seen := echoUser(t)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: userToken})
		rr := httptest.NewRecorder()

		auth.NeedAuth()(inner).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, *seen)
		assert.Equal(t, "u1", (*seen).Id)
		assert.Equal(t, "alice", (*seen).Handle)
	})

	t.Run("bearer header passes", func(t *testing.T) {
		inner, seen := echoUser(t)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+userToken)
		rr := httptest.NewRecorder()

		auth.NeedAuth()(inner).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, *seen)
		assert.Equal(t, "u1", (*seen).Id)
	})

	t.Run("missing token is unauthorized", func(t *testing.T) {
		inner, _ := echoUser(t)
		rr := httptest.NewRecorder()
		auth.NeedAuth()(inner).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		inner, _ := echoUser(t)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rr := httptest.NewRecorder()

		auth.NeedAuth()(inner).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestAdminOnly(t *testing.T) {
	auth, userToken, adminToken := authSetup(t)

	t.Run("admin passes", func(t *testing.T) {
		inner, _ := echoUser(t)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: adminToken})
		rr := httptest.NewRecorder()

		auth.AdminOnly()(inner).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("regular user is forbidden", func(t *testing.T) {
		inner, _ := echoUser(t)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: userToken})
		rr := httptest.NewRecorder()

		auth.AdminOnly()(inner).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestGetUserFromContextWithoutUser(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, GetUserFromContext(req))
}
