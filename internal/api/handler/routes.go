package handler

import (
	"net/http"

	"github.com/vfg2006/ad-sync-engine/internal/api/handler/router"
	"github.com/vfg2006/ad-sync-engine/internal/usecases/notifying"
	"github.com/vfg2006/ad-sync-engine/internal/usecases/syncing"
	"github.com/vfg2006/ad-sync-engine/pkg/metrics"
	"github.com/vfg2006/ad-sync-engine/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: metrics.Handler(),
		},
	}
}

func Sync(jobs SyncJobs, syncer syncing.Syncer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/sync/:platform/:scope/run",
			Method:      http.MethodPost,
			Handler:     RunPlatformSync(jobs),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/sync/status",
			Method:      http.MethodGet,
			Handler:     GetSyncStatus(jobs),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrOperator()},
		},
		{
			Path:        "/v1/accounts/:id/sync/:scope",
			Method:      http.MethodPost,
			Handler:     SyncAccount(syncer),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Leads(notifier notifying.Notifier) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/accounts/:id/leads/unnotified",
			Method:      http.MethodGet,
			Handler:     ListUnnotifiedLeads(notifier),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrOperator()},
		},
		{
			Path:        "/v1/leads/:id/notified",
			Method:      http.MethodPost,
			Handler:     MarkLeadNotified(notifier),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrOperator()},
		},
	}
}
