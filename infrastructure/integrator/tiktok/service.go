package tiktok

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

var reportMetrics = []string{
	"spend",
	"impressions",
	"clicks",
	"conversion",
	"reach",
	"video_views",
	"ctr",
	"cpc",
	"cpm",
}

type report struct {
	dataLevel  string
	dimensions []string
}

var reportsByLevel = map[domain.Level]report{
	domain.LevelCampaign: {
		dataLevel:  "AUCTION_CAMPAIGN",
		dimensions: []string{"campaign_id", "campaign_name", "stat_time_day", "advertiser_id"},
	},
	domain.LevelAdSet: {
		dataLevel:  "AUCTION_ADGROUP",
		dimensions: []string{"campaign_id", "campaign_name", "adgroup_id", "adgroup_name", "stat_time_day", "advertiser_id"},
	},
	domain.LevelAd: {
		dataLevel:  "AUCTION_AD",
		dimensions: []string{"campaign_id", "campaign_name", "adgroup_id", "adgroup_name", "ad_id", "ad_name", "stat_time_day", "advertiser_id"},
	},
}

type TikTokIntegrator struct {
	Client       Client
	LeadsPageIDs []string
	now          func() time.Time
}

func New(client Client, leadsPageIDs []string) *TikTokIntegrator {
	return &TikTokIntegrator{
		Client:       client,
		LeadsPageIDs: leadsPageIDs,
		now:          time.Now,
	}
}

// FetchRows busca relatórios por nível ou, para leads, os leads das páginas configuradas
func (s *TikTokIntegrator) FetchRows(ctx context.Context, token, accountID string, level domain.Level, dateRange domain.DateRange) ([]domain.RawRow, error) {
	if level == domain.LevelLead {
		return s.fetchLeads(ctx, token, accountID)
	}

	rep, ok := reportsByLevel[level]
	if !ok {
		return nil, fmt.Errorf("%w: tiktok/%s", domain.ErrUnsupportedLevel, level)
	}

	if dateRange.Start == "" || dateRange.End == "" {
		dateRange = domain.LastDays(s.now(), 30)
	}

	rows, err := s.Client.GetReport(ctx, token, ReportRequest{
		AdvertiserID: accountID,
		DataLevel:    rep.dataLevel,
		Dimensions:   rep.dimensions,
		Metrics:      reportMetrics,
		StartDate:    dateRange.Start,
		EndDate:      dateRange.End,
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"level":      level,
		}).WithError(err).Error("insights: failed to get TikTok report")
		return nil, err
	}

	return rows, nil
}

// fetchLeads busca as páginas em paralelo e injeta advertiser_id; sem páginas configuradas retorna vazio
func (s *TikTokIntegrator) fetchLeads(ctx context.Context, token, accountID string) ([]domain.RawRow, error) {
	if len(s.LeadsPageIDs) == 0 {
		logrus.WithField("account_id", accountID).Debug("leads: nenhuma página TikTok configurada")
		return []domain.RawRow{}, nil
	}

	results := make([][]domain.RawRow, len(s.LeadsPageIDs))
	errs := make([]error, len(s.LeadsPageIDs))

	var wg sync.WaitGroup
	for i, pageID := range s.LeadsPageIDs {
		wg.Add(1)
		go func(i int, pageID string) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					errs[i] = fmt.Errorf("leads: panic ao buscar página %s: %v", pageID, r)
				}
			}()
			results[i], errs[i] = s.Client.GetPageLeads(ctx, token, pageID)
		}(i, pageID)
	}
	wg.Wait()

	leads := make([]domain.RawRow, 0)
	for i, rows := range results {
		if errs[i] != nil {
			return nil, errs[i]
		}
		for _, row := range rows {
			row["advertiser_id"] = accountID
			leads = append(leads, row)
		}
	}

	return leads, nil
}

// FetchLeadForms lista os formulários de captação do anunciante
func (s *TikTokIntegrator) FetchLeadForms(ctx context.Context, token, accountID string) ([]domain.LeadForm, error) {
	rows, err := s.Client.GetLeadForms(ctx, token, accountID)
	if err != nil {
		logrus.WithField("account_id", accountID).WithError(err).Error("leads: failed to list TikTok lead forms")
		return nil, err
	}

	forms := make([]domain.LeadForm, 0, len(rows))
	for _, row := range rows {
		formID := rawString(row, "form_id")
		if formID == nil {
			continue
		}
		form := domain.LeadForm{
			AdvertiserID: accountID,
			FormID:       *formID,
			CampaignID:   rawString(row, "campaign_id"),
			AdGroupID:    rawString(row, "adgroup_id"),
			AdID:         rawString(row, "ad_id"),
		}
		if name := rawString(row, "form_name"); name != nil {
			form.FormName = *name
		}
		forms = append(forms, form)
	}

	return forms, nil
}

// rawString lê um id que a API pode devolver como texto ou número
func rawString(row domain.RawRow, key string) *string {
	var out string
	switch v := row[key].(type) {
	case string:
		out = v
	case fmt.Stringer:
		out = v.String()
	case float64:
		out = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return nil
	}
	if out == "" {
		return nil
	}
	return &out
}
