package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func captureLogger() (*bytes.Buffer, Logger) {
	buf := &bytes.Buffer{}
	base := logrus.New()
	base.SetOutput(buf)
	base.SetFormatter(&logrus.JSONFormatter{})
	return buf, &logger{entry: logrus.NewEntry(base)}
}

func TestLogger_DevelopmentFilter(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	buf, l := captureLogger()

	l.WithFields(Fields{"account_id": "acc-1", "user_agent": "curl"}).Info("ok")

	assert.Contains(t, buf.String(), `"account_id":"acc-1"`)
	assert.NotContains(t, buf.String(), "user_agent")
}

func TestLogger_Production(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	buf, l := captureLogger()

	ctx, id := WithCorrelationID(context.Background())
	l.WithContext(ctx).WithField("user_agent", "curl").Info("ok")

	assert.Contains(t, buf.String(), id)
	assert.Contains(t, buf.String(), "user_agent")
	assert.Equal(t, id, GetCorrelationID(ctx))
}
