package jwtmiddleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Zain4391/SOLEMATE/internal/domain/models"
	security "github.com/Zain4391/SOLEMATE/internal/jwt-new"
	"github.com/Zain4391/SOLEMATE/internal/jwt-new/jwtmiddleware"
	"github.com/stretchr/testify/assert"
)

// createTestToken создаёт JWT-токен для пользователя с заданным секретом.
func createTestToken(userID string, isAdmin bool, secret string) (string, error) {
	user := &models.User{ID: userID, IsAdmin: isAdmin}
	return security.NewToken([]byte(secret), user, time.Hour)
}

func TestJWTMiddleware_MissingToken(t *testing.T) {
	middleware := jwtmiddleware.New("testsecret")
	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code, "Expected unauthorized status when no token provided")
	assert.True(t, strings.Contains(rr.Body.String(), "missing token"))
}

func TestJWTMiddleware_InvalidToken(t *testing.T) {
	middleware := jwtmiddleware.New("testsecret")
	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer invalid.token.value")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code, "Expected unauthorized status for invalid token")
	assert.True(t, strings.Contains(rr.Body.String(), "invalid token"))
}

func TestJWTMiddleware_WrongSecret(t *testing.T) {
	tokenStr, err := createTestToken("user-1", false, "othersecret")
	assert.NoError(t, err)

	middleware := jwtmiddleware.New("testsecret")
	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+tokenStr)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code, "Expected unauthorized status for wrong secret")
}

func TestJWTMiddleware_ValidTokenFromHeader(t *testing.T) {
	secret := "testsecret"
	tokenStr, err := createTestToken("user-123", false, secret)
	assert.NoError(t, err)

	middleware := jwtmiddleware.New(secret)
	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "auth not found", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(auth.UserID))
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer "+tokenStr)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, "Expected OK status for valid token")
	assert.Equal(t, "user-123", rr.Body.String())
}

func TestJWTMiddleware_ValidTokenFromCookie(t *testing.T) {
	secret := "testsecret"
	tokenStr, err := createTestToken("user-456", true, secret)
	assert.NoError(t, err)

	middleware := jwtmiddleware.New(secret)
	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth, ok := jwtmiddleware.FromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, "user-456", auth.UserID)
		assert.True(t, auth.IsAdmin)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: jwtmiddleware.CookieName, Value: tokenStr})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, "Expected OK status for valid cookie token")
}

func TestRequireAdmin_ForbiddenForRegularUser(t *testing.T) {
	handler := jwtmiddleware.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	ctx := context.WithValue(context.Background(), jwtmiddleware.AuthKey,
		jwtmiddleware.AuthContext{UserID: "user-1", IsAdmin: false})
	req := httptest.NewRequest("GET", "/", nil).WithContext(ctx)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code, "Expected 403 for non-admin user")
}

func TestRequireAdmin_AllowsAdmin(t *testing.T) {
	handler := jwtmiddleware.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	ctx := context.WithValue(context.Background(), jwtmiddleware.AuthKey,
		jwtmiddleware.AuthContext{UserID: "admin-1", IsAdmin: true})
	req := httptest.NewRequest("GET", "/", nil).WithContext(ctx)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestFromContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), jwtmiddleware.AuthKey,
		jwtmiddleware.AuthContext{UserID: "user-789", IsAdmin: true})
	auth, ok := jwtmiddleware.FromContext(ctx)
	assert.True(t, ok, "Expected to retrieve auth from context")
	assert.Equal(t, "user-789", auth.UserID)
	assert.True(t, auth.IsAdmin)
}
