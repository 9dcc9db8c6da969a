package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/ad-sync-engine/internal/domain"
	"github.com/vfg2006/ad-sync-engine/internal/usecases/authenticating"
	"github.com/vfg2006/ad-sync-engine/internal/usecases/authenticating/mocks"
	"github.com/vfg2006/ad-sync-engine/pkg/apiErrors"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	auth := mocks.NewMockAuthenticator(ctrl)
	handler := AuthMiddleware(auth)(AdminOnly()(okHandler()))

	t.Run("rota pública", func(t *testing.T) {
		rec := httptest.NewRecorder()
		AuthMiddleware(auth)(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("sem header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/sync/status", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token expirado", func(t *testing.T) {
		auth.EXPECT().ValidateToken("old").Return(nil,
			authenticating.NewAuthError(authenticating.ErrExpiredToken, apiErrors.ErrExpiredToken, ""))

		req := httptest.NewRequest(http.MethodGet, "/v1/sync/status", nil)
		req.Header.Set("Authorization", "Bearer old")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), apiErrors.ErrExpiredToken)
	})

	t.Run("operador em rota de admin", func(t *testing.T) {
		auth.EXPECT().ValidateToken("op").Return(&domain.Claims{Role: domain.RoleOperator}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/sync/meta/campaigns/run", nil)
		req.Header.Set("Authorization", "Bearer op")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin", func(t *testing.T) {
		auth.EXPECT().ValidateToken("adm").Return(&domain.Claims{Role: domain.RoleAdmin}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/sync/meta/campaigns/run", nil)
		req.Header.Set("Authorization", "Bearer adm")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
