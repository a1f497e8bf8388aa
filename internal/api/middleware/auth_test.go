package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmsato/todoapi/internal/api/middleware"
	"github.com/rmsato/todoapi/internal/mocks"
)

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	authMiddleware := middleware.NewAuthMiddleware(mocks.NewMockJWTService())

	var gotUserID uuid.UUID
	var gotOK bool
	handler := authMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, gotOK = middleware.GetUserID(r)
		w.WriteHeader(http.StatusOK)
	}))

	send := func(configure func(*http.Request)) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/todos/", nil)
		configure(req)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)
		return recorder
	}

	t.Run("cookie token", func(t *testing.T) {
		recorder := send(func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: "access:" + userID.String()})
		})

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.True(t, gotOK)
		assert.Equal(t, userID, gotUserID)
	})

	t.Run("bearer header fallback", func(t *testing.T) {
		recorder := send(func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer access:"+userID.String())
		})

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, userID, gotUserID)
	})

	t.Run("cookie wins over header", func(t *testing.T) {
		otherID := uuid.New()
		recorder := send(func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: "access:" + userID.String()})
			req.Header.Set("Authorization", "Bearer access:"+otherID.String())
		})

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, userID, gotUserID)
	})

	t.Run("missing credentials", func(t *testing.T) {
		recorder := send(func(*http.Request) {})
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("malformed authorization header", func(t *testing.T) {
		recorder := send(func(req *http.Request) {
			req.Header.Set("Authorization", "Token abc")
		})
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("refresh token not accepted as access token", func(t *testing.T) {
		recorder := send(func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: "refresh:" + userID.String()})
		})
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
