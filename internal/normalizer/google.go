package normalizer

import (
	"time"

	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

// googleRow lê linhas do searchStream, que chegam aninhadas (campaign.id, metrics.cost_micros)
// em snake_case ou camelCase dependendo do cliente.
type googleRow struct {
	row Payload
}

func (g googleRow) accountID() string {
	return normalizeResourceID(g.row.Str("customer_id", "customerId", "customer.id"))
}

func (g googleRow) date() string {
	return ParseDate(g.row.Str("date", "segments_date", "segments.date"))
}

func (g googleRow) campaignID() string {
	return g.row.Str("campaign_id", "campaignId", "campaign.id")
}

func (g googleRow) adGroupID() string {
	return g.row.Str("ad_group_id", "adGroupId", "adgroup_id", "ad_group.id", "adGroup.id")
}

func (g googleRow) metrics() domain.DailyMetrics {
	row := g.row
	return domain.DailyMetrics{
		Spend:       CostMicrosToLocal(row.Num("cost_micros", "costMicros", "metrics.cost_micros", "metrics.costMicros")),
		Impressions: row.Num("impressions", "metrics.impressions"),
		Clicks:      row.Num("clicks", "metrics.clicks"),
		Conversions: row.OptNum("conversions", "metrics.conversions"),
		Leads:       row.OptNum("leads", "metrics.leads"),
		Reach:       row.OptNum("reach", "metrics.reach"),
		Ctr:         row.OptNum("ctr", "metrics.ctr"),
		Cpc:         row.OptNum("cpc", "average_cpc", "metrics.average_cpc", "metrics.averageCpc"),
		Cpm:         row.OptNum("cpm", "average_cpm", "metrics.average_cpm", "metrics.averageCpm"),
	}
}

func (g googleRow) syncMeta() domain.SyncMeta {
	return domain.SyncMeta{
		SourceUpdatedAt: g.row.OptTimestamp("updated_at", "updatedAt", "last_modified_time", "lastModifiedTime"),
		SyncedAt:        time.Now(),
	}
}

func MapGoogleCampaign(raw any) domain.CampaignDaily {
	g := googleRow{row: AsPayload(raw)}
	row := g.row

	return domain.CampaignDaily{
		Platform:           domain.PlatformGoogle,
		PlatformAccountID:  g.accountID(),
		Date:               g.date(),
		CampaignExternalID: g.campaignID(),
		CampaignName:       row.Str("campaign_name", "campaignName", "campaign.name"),
		CampaignStatus:     NormalizeStatus("google", row.Str("campaign_status", "campaignStatus", "campaign.status", "status")),
		Objective: row.OptStr("objective", "objectiveType",
			"campaign.advertising_channel_type", "campaign.advertisingChannelType"),
		CurrencyCode: row.OptStr("currency_code", "currencyCode", "customer.currency_code", "customer.currencyCode"),
		VideoViews:   row.OptNum("video_views", "videoViews", "metrics.video_views", "metrics.videoViews"),
		DailyMetrics: g.metrics(),
		SyncMeta:     g.syncMeta(),
	}
}

func MapGoogleAdGroup(raw any) domain.AdSetDaily {
	g := googleRow{row: AsPayload(raw)}
	row := g.row

	return domain.AdSetDaily{
		Platform:           domain.PlatformGoogle,
		PlatformAccountID:  g.accountID(),
		Date:               g.date(),
		CampaignExternalID: g.campaignID(),
		CampaignName:       row.OptStr("campaign_name", "campaignName", "campaign.name"),
		AdSetExternalID:    g.adGroupID(),
		AdSetName:          row.Str("ad_group_name", "adGroupName", "adgroup_name", "ad_group.name", "adGroup.name"),
		AdSetStatus:        NormalizeStatus("google", row.Str("ad_group_status", "adGroupStatus", "ad_group.status", "adGroup.status")),
		OptimizationGoal:   row.OptStr("optimization_goal", "optimizationGoal", "ad_group.type", "adGroup.type"),
		DailyMetrics:       g.metrics(),
		SyncMeta:           g.syncMeta(),
	}
}

func MapGoogleAd(raw any) domain.AdDaily {
	g := googleRow{row: AsPayload(raw)}
	row := g.row

	return domain.AdDaily{
		Platform:           domain.PlatformGoogle,
		PlatformAccountID:  g.accountID(),
		Date:               g.date(),
		CampaignExternalID: g.campaignID(),
		CampaignName:       row.OptStr("campaign_name", "campaignName", "campaign.name"),
		AdSetExternalID:    g.adGroupID(),
		AdSetName:          row.OptStr("ad_group_name", "adGroupName", "adgroup_name", "ad_group.name", "adGroup.name"),
		AdExternalID:       row.Str("ad_id", "adId", "ad_group_ad.ad.id", "adGroupAd.ad.id", "ad.id"),
		AdName:             row.Str("ad_name", "adName", "ad_group_ad.ad.name", "adGroupAd.ad.name", "ad.name"),
		AdStatus:           NormalizeStatus("google", row.Str("ad_status", "adStatus", "ad_group_ad.status", "adGroupAd.status")),
		DailyMetrics:       g.metrics(),
		SyncMeta:           g.syncMeta(),
	}
}
