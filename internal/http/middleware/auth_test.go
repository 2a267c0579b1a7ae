package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"scholarfind/internal/common"
	"scholarfind/internal/security"
)

func TestAuthenticate_MissingHeader(t *testing.T) {
	middleware := NewAuthMiddleware(security.NewJWTProvider("secret"))
	handler := middleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/auth/me", nil))
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	middleware := NewAuthMiddleware(security.NewJWTProvider("secret"))
	handler := middleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	for _, header := range []string{"Token abc", "Bearer", "abc"} {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		request.Header.Set("Authorization", header)
		handler.ServeHTTP(recorder, request)
		require.Equal(t, http.StatusUnauthorized, recorder.Code, "header %q", header)
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	middleware := NewAuthMiddleware(security.NewJWTProvider("secret"))
	token, _, err := security.NewJWTProvider("other").Generate(common.NewUUID(), time.Hour)
	require.NoError(t, err)

	handler := middleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAuthenticate_PassesUserID(t *testing.T) {
	provider := security.NewJWTProvider("secret")
	middleware := NewAuthMiddleware(provider)
	userID := common.NewUUID()
	token, _, err := provider.Generate(userID, time.Hour)
	require.NoError(t, err)

	var seen common.UUID
	handler := middleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserIDFromContext(r.Context())
		require.True(t, ok)
		seen = id
	}))
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, userID, seen)
}
