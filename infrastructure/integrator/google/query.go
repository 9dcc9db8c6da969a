package google

import (
	"fmt"
	"strings"

	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

var campaignFields = []string{
	"customer.id",
	"customer.currency_code",
	"campaign.id",
	"campaign.name",
	"campaign.status",
	"campaign.advertising_channel_type",
	"segments.date",
	"metrics.impressions",
	"metrics.clicks",
	"metrics.cost_micros",
	"metrics.conversions",
	"metrics.video_views",
	"metrics.ctr",
	"metrics.average_cpc",
	"metrics.average_cpm",
}

var adGroupFields = []string{
	"customer.id",
	"campaign.id",
	"campaign.name",
	"ad_group.id",
	"ad_group.name",
	"ad_group.status",
	"ad_group.type",
	"segments.date",
	"metrics.impressions",
	"metrics.clicks",
	"metrics.cost_micros",
	"metrics.conversions",
	"metrics.ctr",
	"metrics.average_cpc",
	"metrics.average_cpm",
}

var adFields = []string{
	"customer.id",
	"campaign.id",
	"campaign.name",
	"ad_group.id",
	"ad_group.name",
	"ad_group_ad.ad.id",
	"ad_group_ad.ad.name",
	"ad_group_ad.status",
	"segments.date",
	"metrics.impressions",
	"metrics.clicks",
	"metrics.cost_micros",
	"metrics.conversions",
	"metrics.ctr",
	"metrics.average_cpc",
	"metrics.average_cpm",
}

type resource struct {
	from   string
	fields []string
}

var resourcesByLevel = map[domain.Level]resource{
	domain.LevelCampaign: {from: "campaign", fields: campaignFields},
	domain.LevelAdSet:    {from: "ad_group", fields: adGroupFields},
	domain.LevelAd:       {from: "ad_group_ad", fields: adFields},
}

// BuildQuery monta a consulta GAQL do nível; sem datas usa LAST_30_DAYS
func BuildQuery(level domain.Level, dateRange domain.DateRange) (string, error) {
	res, ok := resourcesByLevel[level]
	if !ok {
		return "", fmt.Errorf("%w: google/%s", domain.ErrUnsupportedLevel, level)
	}

	condition := "segments.date DURING LAST_30_DAYS"
	if dateRange.Start != "" && dateRange.End != "" {
		condition = fmt.Sprintf("segments.date BETWEEN '%s' AND '%s'", dateRange.Start, dateRange.End)
	}

	return fmt.Sprintf("SELECT %s FROM %s WHERE %s", strings.Join(res.fields, ", "), res.from, condition), nil
}
