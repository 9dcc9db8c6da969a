package meta

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ad-sync-engine/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

var insightLevels = map[domain.Level]metaclient.InsightLevel{
	domain.LevelCampaign: metaclient.InsightLevelCampaign,
	domain.LevelAdSet:    metaclient.InsightLevelAdSet,
	domain.LevelAd:       metaclient.InsightLevelAd,
}

type MetaIntegrator struct {
	Client metaclient.Client
}

func New(client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		Client: client,
	}
}

// FetchRows busca as linhas brutas de um nível, já com toda a paginação drenada
func (s *MetaIntegrator) FetchRows(ctx context.Context, token, accountID string, level domain.Level, dateRange domain.DateRange) ([]domain.RawRow, error) {
	if level == domain.LevelLead {
		return s.fetchLeads(ctx, token, accountID)
	}

	insightLevel, ok := insightLevels[level]
	if !ok {
		return nil, fmt.Errorf("%w: meta/%s", domain.ErrUnsupportedLevel, level)
	}

	rows, err := s.Client.GetInsights(ctx, token, accountID, insightLevel, dateRange)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"level":      level,
		}).WithError(err).Error("insights: failed to get insights from Meta")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"level":      level,
		"rows":       len(rows),
	}).Debug("insights: successfully retrieved Meta rows")

	return rows, nil
}

// fetchLeads lista os formulários da conta e busca os leads de cada um em paralelo
func (s *MetaIntegrator) fetchLeads(ctx context.Context, token, accountID string) ([]domain.RawRow, error) {
	forms, err := s.Client.GetLeadForms(ctx, token, accountID)
	if err != nil {
		return nil, err
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		leads    = make([]domain.RawRow, 0)
	)

	for _, form := range forms {
		formID, _ := form["id"].(string)
		if formID == "" {
			continue
		}

		wg.Add(1)
		go func(formID string) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = fmt.Errorf("leads: panic ao buscar formulário %s: %v", formID, r)
					}
					mu.Unlock()
				}
			}()

			formLeads, err := s.Client.GetFormLeads(ctx, token, formID)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			for _, lead := range formLeads {
				lead["ad_account_id"] = accountID
				leads = append(leads, lead)
			}
		}(formID)
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"forms":      len(forms),
		"rows":       len(leads),
	}).Debug("leads: successfully retrieved Meta leads")

	return leads, nil
}
