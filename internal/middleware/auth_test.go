package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("test-signing-key")

func TestIssueAndParseToken(t *testing.T) {
	token, err := IssueToken(testKey, "user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := ParseToken(testKey, token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestParseToken_WrongKey(t *testing.T) {
	token, err := IssueToken(testKey, "user-123")
	require.NoError(t, err)

	_, err = ParseToken([]byte("other-key"), token)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken(testKey, "not.a.token")
	assert.Error(t, err)
}

func TestRequireAuth(t *testing.T) {
	var gotUserID string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireAuth(testKey, inner)

	t.Run("valid token", func(t *testing.T) {
		token, err := IssueToken(testKey, "user-123")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/v1/levels", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "user-123", gotUserID)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/levels", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/levels", nil)
		req.Header.Set("Authorization", "Basic abc123")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/levels", nil)
		req.Header.Set("Authorization", "Bearer bogus")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestUserID_Unauthenticated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", UserID(req.Context()))
}
