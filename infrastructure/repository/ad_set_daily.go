package repository

import (
	"context"

	"github.com/vfg2006/ad-sync-engine/infrastructure/database/postgres"
	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

const adSetsDailyTable = "ad_sets_daily"

type AdSetDailyRepository interface {
	ExistingByDate(ctx context.Context, connectedAccountID, date string) (map[string]string, error)
	Insert(ctx context.Context, record domain.AdSetDaily) (string, error)
	Patch(ctx context.Context, id string, record domain.AdSetDaily) error
}

type adSetDailyRepository struct {
	table naturalKeyTable
}

func NewAdSetDailyRepository(conn *postgres.Connection) AdSetDailyRepository {
	return &adSetDailyRepository{
		table: naturalKeyTable{
			conn:       conn,
			table:      adSetsDailyTable,
			dateColumn: "date",
			keyColumns: []string{"platform_account_id", "campaign_external_id", "ad_set_external_id"},
			key: func(v []string) string {
				return domain.AdSetKey(v[0], v[1], v[2], v[3])
			},
		},
	}
}

func (r *adSetDailyRepository) ExistingByDate(ctx context.Context, connectedAccountID, date string) (map[string]string, error) {
	return r.table.existingByDate(ctx, connectedAccountID, date)
}

func (r *adSetDailyRepository) Insert(ctx context.Context, record domain.AdSetDaily) (string, error) {
	return r.table.insert(ctx, adSetColumns(record))
}

func (r *adSetDailyRepository) Patch(ctx context.Context, id string, record domain.AdSetDaily) error {
	return r.table.patch(ctx, id, adSetColumns(record))
}

func adSetColumns(a domain.AdSetDaily) map[string]interface{} {
	return merge(
		map[string]interface{}{
			"platform":             a.Platform.String(),
			"platform_account_id":  a.PlatformAccountID,
			"date":                 a.Date,
			"campaign_external_id": a.CampaignExternalID,
			"campaign_name":        a.CampaignName,
			"ad_set_external_id":   a.AdSetExternalID,
			"ad_set_name":          a.AdSetName,
			"ad_set_status":        string(a.AdSetStatus),
			"optimization_goal":    a.OptimizationGoal,
		},
		metricColumns(a.DailyMetrics),
		syncMetaColumns(a.SyncMeta),
	)
}
