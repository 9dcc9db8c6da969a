package log

import (
	"context"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Fields é um alias para logrus.Fields
type Fields logrus.Fields

// Logger encapsula logrus para o código HTTP, propagando o correlation_id
type Logger interface {
	WithField(key string, value interface{}) Logger
	WithFields(fields Fields) Logger
	WithError(err error) Logger
	WithContext(ctx context.Context) Logger

	Debug(args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
}

type contextKey string

// CorrelationIDKey é a chave para armazenar o ID de correlação no contexto
const CorrelationIDKey contextKey = "correlation_id"
const correlationIDField = "correlation_id"

// campos mantidos nos logs de desenvolvimento
var developmentFields = map[string]bool{
	correlationIDField: true,
	"method":           true,
	"path":             true,
	"status_code":      true,
	"duration_ms":      true,
	"error":            true,
	"account_id":       true,
	"platform":         true,
	"scope":            true,
	"run_id":           true,
	"job":              true,
}

type logger struct {
	entry *logrus.Entry
}

// L é uma instância global de Logger para uso direto
var L Logger = &logger{entry: logrus.NewEntry(logrus.StandardLogger())}

// IsDevelopment retorna verdadeiro se estamos em ambiente de desenvolvimento
func IsDevelopment() bool {
	env := os.Getenv("APP_ENV")
	return env == "" || env == "development" || env == "dev"
}

func (l *logger) WithField(key string, value interface{}) Logger {
	if IsDevelopment() && !developmentFields[key] {
		return l
	}
	return &logger{entry: l.entry.WithField(key, value)}
}

// WithFields adiciona múltiplos campos; em desenvolvimento só os campos de depuração são mantidos
func (l *logger) WithFields(fields Fields) Logger {
	if !IsDevelopment() {
		return &logger{entry: l.entry.WithFields(logrus.Fields(fields))}
	}

	relevant := make(logrus.Fields)
	for k, v := range fields {
		if developmentFields[k] {
			relevant[k] = v
		}
	}
	if len(relevant) == 0 {
		return l
	}
	return &logger{entry: l.entry.WithFields(relevant)}
}

func (l *logger) WithError(err error) Logger {
	return &logger{entry: l.entry.WithError(err)}
}

func (l *logger) WithContext(ctx context.Context) Logger {
	if ctx == nil {
		return l
	}
	if correlationID := GetCorrelationID(ctx); correlationID != "" {
		return l.WithField(correlationIDField, correlationID)
	}
	return l
}

func (l *logger) Debug(args ...interface{}) { l.entry.Debug(args...) }

func (l *logger) Info(args ...interface{}) { l.entry.Info(args...) }

func (l *logger) Infof(format string, args ...interface{}) { l.entry.Infof(format, args...) }

func (l *logger) Warn(args ...interface{}) { l.entry.Warn(args...) }

func (l *logger) Warnf(format string, args ...interface{}) { l.entry.Warnf(format, args...) }

func (l *logger) Error(args ...interface{}) { l.entry.Error(args...) }

func (l *logger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }

// WithCorrelationID adiciona um ID de correlação ao contexto
func WithCorrelationID(ctx context.Context) (context.Context, string) {
	correlationID := uuid.New().String()
	return context.WithValue(ctx, CorrelationIDKey, correlationID), correlationID
}

// GetCorrelationID obtém o ID de correlação do contexto
func GetCorrelationID(ctx context.Context) string {
	if correlationID, ok := ctx.Value(CorrelationIDKey).(string); ok {
		return correlationID
	}
	return ""
}

// ForContext cria um logger com o ID de correlação do contexto
func ForContext(ctx context.Context) Logger {
	return L.WithContext(ctx)
}
