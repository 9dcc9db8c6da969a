package middleware

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/vfg2006/ad-sync-engine/pkg/log"
)

const slowRequestThreshold = 500 * time.Millisecond

// LoggingMiddleware registra cada requisição com um correlation_id próprio
func LoggingMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, correlationID := log.WithCorrelationID(r.Context())
			r = r.WithContext(ctx)

			lrw := newLoggingResponseWriter(w)
			startTime := time.Now()

			log.L.WithFields(log.Fields{
				"correlation_id": correlationID,
				"remote_addr":    r.RemoteAddr,
				"method":         r.Method,
				"path":           r.URL.Path,
				"query":          r.URL.RawQuery,
				"user_agent":     r.UserAgent(),
			}).Info("Requisição iniciada")

			next.ServeHTTP(lrw, r)

			responseTime := time.Since(startTime)
			logger := log.L.WithFields(log.Fields{
				"correlation_id": correlationID,
				"method":         r.Method,
				"path":           r.URL.Path,
				"duration_ms":    responseTime.Milliseconds(),
				"status_code":    lrw.statusCode,
			})

			switch {
			case lrw.statusCode >= 500:
				logger.Error("Requisição finalizada com erro")
			case lrw.statusCode >= 400:
				logger.Warn("Requisição finalizada com aviso")
			default:
				logger.Info("Requisição finalizada com sucesso")
			}

			if responseTime > slowRequestThreshold {
				logger.Warnf("Requisição lenta: %s", formatDuration(responseTime))
			}
		})
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%d µs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%d ms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2f s", d.Seconds())
}

// loggingResponseWriter é um wrapper para http.ResponseWriter para capturar o status code
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newLoggingResponseWriter(w http.ResponseWriter) *loggingResponseWriter {
	return &loggingResponseWriter{w, http.StatusOK}
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

// LogPanicMiddleware converte panics em 500 e registra a pilha de chamadas
func LogPanicMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					stack := make([]byte, 4096)
					stackSize := runtime.Stack(stack, false)

					log.ForContext(r.Context()).WithFields(log.Fields{
						"error":       fmt.Sprint(err),
						"method":      r.Method,
						"path":        r.URL.Path,
						"stack_trace": string(stack[:stackSize]),
					}).Error("Erro não tratado na aplicação")

					http.Error(w, "Erro interno no servidor", http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
