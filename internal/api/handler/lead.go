package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ad-sync-engine/internal/domain"
	"github.com/vfg2006/ad-sync-engine/internal/usecases/notifying"
	"github.com/vfg2006/ad-sync-engine/pkg/apiErrors"
	"github.com/vfg2006/ad-sync-engine/pkg/log"
)

// ListUnnotifiedLeads retorna os leads da conta ainda não notificados
func ListUnnotifiedLeads(notifier notifying.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ListUnnotifiedLeads")

		accountID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "limit deve ser um inteiro positivo", nil)
				return
			}
			limit = parsed
		}

		leads, err := notifier.Unnotified(r.Context(), accountID, limit)
		if err != nil {
			log.ForContext(r.Context()).WithField("account_id", accountID).WithError(err).Error("Erro ao listar leads não notificados")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar leads", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"account_id": accountID,
			"leads":      leads,
		})
	}
}

// MarkLeadNotified marca um lead como notificado
func MarkLeadNotified(notifier notifying.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - MarkLeadNotified")

		leadID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := notifier.MarkNotified(r.Context(), leadID); err != nil {
			if errors.Is(err, domain.ErrLeadNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrLeadNotFound, "Lead não encontrado", map[string]string{"lead_id": leadID})
				return
			}
			log.ForContext(r.Context()).WithField("lead_id", leadID).WithError(err).Error("Erro ao marcar lead como notificado")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao atualizar lead", nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
