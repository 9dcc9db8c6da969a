package router

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ad-sync-engine/pkg/apiErrors"
)

var (
	WithRoutes = func(routes ...Route) ConfigRouter {
		return func(router *Router) {
			router.AddRoutes(routes...)
		}
	}
)

// Route associa método e caminho httprouter (com parâmetros :nome) ao handler
type Route struct {
	Path        string
	Method      string
	Handler     http.Handler
	Middlewares []func(http.Handler) http.Handler // aplicados na ordem da lista
}

type Router struct {
	router *httprouter.Router
}

type ConfigRouter func(router *Router)

// New cria o router com respostas 404/405 no formato de erro da API
func New(configs ...ConfigRouter) Router {
	rt := httprouter.New()
	rt.NotFound = http.HandlerFunc(notFound)
	rt.MethodNotAllowed = http.HandlerFunc(methodNotAllowed)

	router := &Router{
		router: rt,
	}

	for _, config := range configs {
		config(router)
	}

	return *router
}

func (r Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

// AddRoutes registra as rotas; o primeiro middleware da lista é o mais externo
func (r Router) AddRoutes(routes ...Route) {
	for _, route := range routes {
		handler := route.Handler
		for i := len(route.Middlewares) - 1; i >= 0; i-- {
			handler = route.Middlewares[i](handler)
		}

		r.router.Handler(route.Method, route.Path, handler)

		logrus.WithFields(logrus.Fields{
			"method":      route.Method,
			"path":        route.Path,
			"middlewares": len(route.Middlewares),
		}).Debug("Rota registrada")
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	apiErrors.WriteError(w, apiErrors.ErrRouteNotFound, "Rota não encontrada", map[string]string{
		"path": r.URL.Path,
	})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	apiErrors.WriteError(w, apiErrors.ErrMethodNotAllowed, "Método não suportado", map[string]string{
		"method": r.Method,
		"allow":  w.Header().Get("Allow"),
	})
}
