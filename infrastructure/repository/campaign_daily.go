package repository

import (
	"context"

	"github.com/vfg2006/ad-sync-engine/infrastructure/database/postgres"
	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

const campaignsDailyTable = "campaigns_daily"

type CampaignDailyRepository interface {
	ExistingByDate(ctx context.Context, connectedAccountID, date string) (map[string]string, error)
	Insert(ctx context.Context, record domain.CampaignDaily) (string, error)
	Patch(ctx context.Context, id string, record domain.CampaignDaily) error
}

type campaignDailyRepository struct {
	table naturalKeyTable
}

func NewCampaignDailyRepository(conn *postgres.Connection) CampaignDailyRepository {
	return &campaignDailyRepository{
		table: naturalKeyTable{
			conn:       conn,
			table:      campaignsDailyTable,
			dateColumn: "date",
			keyColumns: []string{"platform_account_id", "campaign_external_id"},
			key: func(v []string) string {
				return domain.CampaignKey(v[0], v[1], v[2])
			},
		},
	}
}

func (r *campaignDailyRepository) ExistingByDate(ctx context.Context, connectedAccountID, date string) (map[string]string, error) {
	return r.table.existingByDate(ctx, connectedAccountID, date)
}

func (r *campaignDailyRepository) Insert(ctx context.Context, record domain.CampaignDaily) (string, error) {
	return r.table.insert(ctx, campaignColumns(record))
}

func (r *campaignDailyRepository) Patch(ctx context.Context, id string, record domain.CampaignDaily) error {
	return r.table.patch(ctx, id, campaignColumns(record))
}

func campaignColumns(c domain.CampaignDaily) map[string]interface{} {
	return merge(
		map[string]interface{}{
			"platform":             c.Platform.String(),
			"platform_account_id":  c.PlatformAccountID,
			"date":                 c.Date,
			"campaign_external_id": c.CampaignExternalID,
			"campaign_name":        c.CampaignName,
			"campaign_status":      string(c.CampaignStatus),
			"objective":            c.Objective,
			"currency_code":        c.CurrencyCode,
			"video_views":          c.VideoViews,
		},
		metricColumns(c.DailyMetrics),
		syncMetaColumns(c.SyncMeta),
	)
}
