package ga4

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

type GA4Integrator struct {
	Client Client
}

func New(client Client) *GA4Integrator {
	return &GA4Integrator{Client: client}
}

// FetchRows aceita apenas o nível de sessão; o relatório não é paginado
func (s *GA4Integrator) FetchRows(ctx context.Context, token, propertyID string, level domain.Level, dateRange domain.DateRange) ([]domain.RawRow, error) {
	if level != domain.LevelSession {
		return nil, fmt.Errorf("%w: ga4/%s", domain.ErrUnsupportedLevel, level)
	}

	rows, err := s.Client.RunReport(ctx, token, propertyID, dateRange)
	if err != nil {
		logrus.WithField("account_id", propertyID).WithError(err).Error("sessions: failed to run GA4 report")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"account_id": propertyID,
		"rows":       len(rows),
	}).Debug("sessions: successfully retrieved GA4 rows")

	return rows, nil
}
