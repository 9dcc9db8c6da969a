package metaclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

// InsightLevel é o parâmetro level do endpoint de insights
type InsightLevel string

const (
	InsightLevelCampaign InsightLevel = "campaign"
	InsightLevelAdSet    InsightLevel = "adset"
	InsightLevelAd       InsightLevel = "ad"
)

var commonInsightFields = []string{
	"spend",
	"impressions",
	"clicks",
	"reach",
	"actions",
	"frequency",
	"unique_clicks",
	"unique_ctr",
	"video_play_actions",
	"video_p25_watched_actions",
	"video_p50_watched_actions",
	"video_p75_watched_actions",
	"video_p100_watched_actions",
	"cost_per_action_type",
	"quality_ranking",
	"engagement_rate_ranking",
	"conversion_rate_ranking",
	"inline_post_engagement",
	"cpc",
	"cpm",
	"ctr",
	"updated_time",
}

var insightFieldsByLevel = map[InsightLevel][]string{
	InsightLevelCampaign: {"account_id", "date_start", "campaign_id", "campaign_name", "status", "objective", "currency"},
	InsightLevelAdSet:    {"account_id", "date_start", "campaign_id", "campaign_name", "adset_id", "adset_name", "adset_status", "optimization_goal"},
	InsightLevelAd: {"account_id", "date_start", "campaign_id", "campaign_name", "adset_id", "adset_name", "ad_id", "ad_name", "ad_status",
		"creative{thumbnail_url,title,body}", "preview_shareable_link"},
}

func insightFields(level InsightLevel) string {
	fields := append([]string{}, insightFieldsByLevel[level]...)
	return strings.Join(append(fields, commonInsightFields...), ",")
}

// GetInsights busca os insights diários (time_increment=1) de uma conta de anúncios.
// Sem intervalo de datas usa o preset last_30d.
func (c *MetaClient) GetInsights(ctx context.Context, token, accountID string, level InsightLevel, dateRange domain.DateRange) ([]domain.RawRow, error) {
	if _, ok := insightFieldsByLevel[level]; !ok {
		return nil, fmt.Errorf("%w: meta/%s", domain.ErrUnsupportedLevel, level)
	}

	params := url.Values{}
	params.Set("level", string(level))
	params.Set("time_increment", "1")
	params.Set("fields", insightFields(level))
	if dateRange.Start != "" && dateRange.End != "" {
		params.Set("time_range", fmt.Sprintf(`{"since":"%s","until":"%s"}`, dateRange.Start, dateRange.End))
	} else {
		params.Set("date_preset", "last_30d")
	}

	return c.fetchPages(ctx, token, c.endpoint(adAccountPath(accountID, "insights"), params))
}

// adAccountPath aceita o id com ou sem o prefixo act_
func adAccountPath(accountID, edge string) string {
	return fmt.Sprintf("act_%s/%s", strings.TrimPrefix(accountID, "act_"), edge)
}
