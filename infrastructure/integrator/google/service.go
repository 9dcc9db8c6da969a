package google

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

type GoogleAdsIntegrator struct {
	Client Client
}

func New(client Client) *GoogleAdsIntegrator {
	return &GoogleAdsIntegrator{Client: client}
}

// FetchRows executa uma única chamada searchStream; não há paginação adicional
func (s *GoogleAdsIntegrator) FetchRows(ctx context.Context, token, accountID string, level domain.Level, dateRange domain.DateRange) ([]domain.RawRow, error) {
	query, err := BuildQuery(level, dateRange)
	if err != nil {
		return nil, err
	}

	rows, err := s.Client.SearchStream(ctx, token, accountID, query)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"level":      level,
		}).WithError(err).Error("insights: failed to run Google Ads searchStream")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"level":      level,
		"rows":       len(rows),
	}).Debug("insights: successfully retrieved Google Ads rows")

	return rows, nil
}
