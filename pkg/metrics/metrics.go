package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ad_sync"

var (
	syncRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_runs_total",
		Help:      "Execuções de sincronização por plataforma, escopo e resultado.",
	}, []string{"platform", "scope", "result"})

	rowsUpserted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_rows_upserted_total",
		Help:      "Registros gravados por plataforma e tabela.",
	}, []string{"platform", "table"})

	syncDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "sync_duration_seconds",
		Help:      "Duração da sincronização de uma conta.",
		Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	}, []string{"platform", "scope"})

	platformRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "platform_requests_total",
		Help:      "Requisições às APIs das plataformas por status HTTP.",
	}, []string{"platform", "status"})
)

// ObserveSync registra o resultado e a duração de uma sincronização
func ObserveSync(platform, scope string, started time.Time, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	syncRuns.WithLabelValues(platform, scope, result).Inc()
	syncDuration.WithLabelValues(platform, scope).Observe(time.Since(started).Seconds())
}

func AddRowsUpserted(platform, table string, rows int) {
	if rows <= 0 {
		return
	}
	rowsUpserted.WithLabelValues(platform, table).Add(float64(rows))
}

// ObservePlatformRequest conta uma requisição; status 0 indica falha de transporte
func ObservePlatformRequest(platform string, status int) {
	label := strconv.Itoa(status)
	if status == 0 {
		label = "transport_error"
	}
	platformRequests.WithLabelValues(platform, label).Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
