package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"

	"github.com/vfg2006/ad-sync-engine/pkg/apiErrors"
)

func tag(name string, trail *[]string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*trail = append(*trail, name)
			next.ServeHTTP(w, r)
		})
	}
}

func TestRouter(t *testing.T) {
	var trail []string
	rt := New(WithRoutes(Route{
		Path:   "/v1/accounts/:id",
		Method: http.MethodGet,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			trail = append(trail, "handler:"+httprouter.ParamsFromContext(r.Context()).ByName("id"))
			w.WriteHeader(http.StatusOK)
		}),
		Middlewares: []func(http.Handler) http.Handler{tag("auth", &trail), tag("role", &trail)},
	}))

	t.Run("middlewares na ordem da lista e parâmetros no contexto", func(t *testing.T) {
		trail = nil
		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/accounts/acc-1", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"auth", "role", "handler:acc-1"}, trail)
	})

	t.Run("rota inexistente responde erro da API", func(t *testing.T) {
		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/nada", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), apiErrors.ErrRouteNotFound)
	})

	t.Run("método errado responde 405 com Allow", func(t *testing.T) {
		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/accounts/acc-1", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.True(t, strings.Contains(rec.Header().Get("Allow"), http.MethodGet))
		assert.Contains(t, rec.Body.String(), apiErrors.ErrMethodNotAllowed)
	})
}
