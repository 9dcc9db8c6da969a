package middleware

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ad-sync-engine/internal/domain"
	"github.com/vfg2006/ad-sync-engine/pkg/apiErrors"
)

// RoleMiddleware restringe o acesso aos roles informados no claim "role" do token
func RoleMiddleware(allowedRoles []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userClaims, ok := r.Context().Value(ContextKeyUser).(*domain.Claims)
			if !ok {
				logrus.Warning("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			for _, role := range allowedRoles {
				if userClaims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			logrus.Warningf("Acesso negado para %s, Role=%s", userClaims.Subject, userClaims.Role)
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
		})
	}
}

// AdminOnly é um middleware que permite acesso apenas para administradores
func AdminOnly() func(http.Handler) http.Handler {
	return RoleMiddleware([]string{domain.RoleAdmin})
}

// AdminOrOperator libera leitura de status para operadores
func AdminOrOperator() func(http.Handler) http.Handler {
	return RoleMiddleware([]string{domain.RoleAdmin, domain.RoleOperator})
}
