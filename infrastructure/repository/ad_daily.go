package repository

import (
	"context"

	"github.com/vfg2006/ad-sync-engine/infrastructure/database/postgres"
	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

const adsDailyTable = "ads_daily"

type AdDailyRepository interface {
	ExistingByDate(ctx context.Context, connectedAccountID, date string) (map[string]string, error)
	Insert(ctx context.Context, record domain.AdDaily) (string, error)
	Patch(ctx context.Context, id string, record domain.AdDaily) error
}

type adDailyRepository struct {
	table naturalKeyTable
}

func NewAdDailyRepository(conn *postgres.Connection) AdDailyRepository {
	return &adDailyRepository{
		table: naturalKeyTable{
			conn:       conn,
			table:      adsDailyTable,
			dateColumn: "date",
			keyColumns: []string{"platform_account_id", "campaign_external_id", "ad_set_external_id", "ad_external_id"},
			key: func(v []string) string {
				return domain.AdKey(v[0], v[1], v[2], v[3], v[4])
			},
		},
	}
}

func (r *adDailyRepository) ExistingByDate(ctx context.Context, connectedAccountID, date string) (map[string]string, error) {
	return r.table.existingByDate(ctx, connectedAccountID, date)
}

func (r *adDailyRepository) Insert(ctx context.Context, record domain.AdDaily) (string, error) {
	return r.table.insert(ctx, adColumns(record))
}

func (r *adDailyRepository) Patch(ctx context.Context, id string, record domain.AdDaily) error {
	return r.table.patch(ctx, id, adColumns(record))
}

func adColumns(a domain.AdDaily) map[string]interface{} {
	return merge(
		map[string]interface{}{
			"platform":             a.Platform.String(),
			"platform_account_id":  a.PlatformAccountID,
			"date":                 a.Date,
			"campaign_external_id": a.CampaignExternalID,
			"campaign_name":        a.CampaignName,
			"ad_set_external_id":   a.AdSetExternalID,
			"ad_set_name":          a.AdSetName,
			"ad_external_id":       a.AdExternalID,
			"ad_name":              a.AdName,
			"ad_status":            string(a.AdStatus),
			"thumbnail_url":        a.ThumbnailURL,
			"headline":             a.Headline,
			"body_text":            a.BodyText,
			"preview_link":         a.PreviewLink,
		},
		metricColumns(a.DailyMetrics),
		syncMetaColumns(a.SyncMeta),
	)
}
