package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ad-sync-engine/internal/domain"
	"github.com/vfg2006/ad-sync-engine/internal/scheduler"
	"github.com/vfg2006/ad-sync-engine/internal/usecases/syncing"
	"github.com/vfg2006/ad-sync-engine/pkg/apiErrors"
	"github.com/vfg2006/ad-sync-engine/pkg/log"
	"github.com/vfg2006/ad-sync-engine/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SyncJobs é o registro de jobs agendados exposto pela API
type SyncJobs interface {
	Trigger(platform domain.Platform, scope domain.Scope, all bool) error
	Status() map[string]any
}

// SyncAccountRequest ajusta a sincronização manual de uma conta; todos os campos são opcionais
type SyncAccountRequest struct {
	RunType   domain.SyncRunType `json:"run_type"`
	StartDate string             `json:"start_date"`
	EndDate   string             `json:"end_date"`
}

func (r SyncAccountRequest) options() (domain.SyncOptions, error) {
	opts := domain.SyncOptions{RunType: r.RunType}

	switch r.RunType {
	case "", domain.SyncRunIncremental, domain.SyncRunBackfill:
	default:
		return opts, errors.New("run_type deve ser incremental ou backfill")
	}

	if r.StartDate == "" && r.EndDate == "" {
		return opts, nil
	}
	if r.StartDate == "" || r.EndDate == "" {
		return opts, errors.New("start_date e end_date devem ser informados juntos")
	}

	start, err := utils.ParseDate(r.StartDate)
	if err != nil {
		return opts, errors.New("start_date inválida, use YYYY-MM-DD")
	}
	end, err := utils.ParseDate(r.EndDate)
	if err != nil {
		return opts, errors.New("end_date inválida, use YYYY-MM-DD")
	}
	if end.Before(*start) {
		return opts, errors.New("end_date anterior a start_date")
	}

	opts.DateRange = &domain.DateRange{Start: r.StartDate, End: r.EndDate}
	return opts, nil
}

// RunPlatformSync dispara em background a sincronização das contas vencidas (ou todas, com all=true)
func RunPlatformSync(jobs SyncJobs) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunPlatformSync")

		params := httprouter.ParamsFromContext(r.Context())
		platform := domain.Platform(params.ByName("platform"))
		scope := domain.Scope(params.ByName("scope"))
		all := r.URL.Query().Get("all") == "true"

		if !platform.Valid() || !scope.Valid() {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Plataforma ou escopo inválido", map[string]string{
				"platform": platform.String(),
				"scope":    string(scope),
			})
			return
		}

		if err := jobs.Trigger(platform, scope, all); err != nil {
			switch {
			case errors.Is(err, scheduler.ErrUnknownJob):
				apiErrors.WriteError(w, apiErrors.ErrUnsupportedSync, err.Error(), nil)
			case errors.Is(err, scheduler.ErrJobRunning):
				apiErrors.WriteError(w, apiErrors.ErrSyncAlreadyRunning, "Sincronização já em andamento", nil)
			default:
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]any{
			"message":  "Sincronização iniciada com sucesso",
			"platform": platform,
			"scope":    scope,
			"all":      all,
		})
	}
}

// SyncAccount sincroniza uma conta conectada de forma síncrona e retorna as linhas gravadas
func SyncAccount(syncer syncing.Syncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - SyncAccount")

		params := httprouter.ParamsFromContext(r.Context())
		accountID := params.ByName("id")
		scope := domain.Scope(params.ByName("scope"))

		if accountID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta não informado", nil)
			return
		}
		if !scope.Valid() {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Escopo inválido", nil)
			return
		}

		var request SyncAccountRequest
		if r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
				return
			}
		}

		opts, err := request.options()
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		// a sincronização segue até o fim mesmo se o cliente desconectar
		ctx := context.WithoutCancel(r.Context())

		result, err := syncer.SyncAccount(ctx, accountID, scope, opts)
		if errors.Is(err, domain.ErrSyncInProgress) {
			apiErrors.WriteError(w, apiErrors.ErrAccountSyncing, "Conta já está sincronizando", map[string]string{
				"account_id": accountID,
			})
			return
		}
		if err != nil {
			log.ForContext(r.Context()).WithFields(log.Fields{
				"account_id": accountID,
				"scope":      scope,
			}).WithError(err).Error("Erro na sincronização manual da conta")
			apiErrors.WriteError(w, syncErrorCode(err), err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}

func syncErrorCode(err error) string {
	var (
		authErr   *domain.AuthError
		fetchErr  *domain.FetchError
		upsertErr *domain.UpsertError
	)
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return apiErrors.ErrAccountNotFound
	case errors.Is(err, domain.ErrUnsupportedLevel), errors.Is(err, domain.ErrUnsupportedPlatform):
		return apiErrors.ErrUnsupportedSync
	case errors.As(err, &authErr):
		return apiErrors.ErrPlatformAuth
	case errors.As(err, &fetchErr):
		return apiErrors.ErrExternalService
	case errors.As(err, &upsertErr):
		return apiErrors.ErrDatabaseOperation
	}
	return apiErrors.ErrInternalServer
}

// GetSyncStatus retorna o status dos jobs de sincronização
func GetSyncStatus(jobs SyncJobs) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetSyncStatus")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(jobs.Status())
	}
}
