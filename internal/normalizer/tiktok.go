package normalizer

import (
	"strings"
	"time"

	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

type tiktokRow struct {
	row Payload
}

func (t tiktokRow) metrics() domain.DailyMetrics {
	row := t.row
	return domain.DailyMetrics{
		Spend:       row.Num("spend", "cost"),
		Impressions: row.Num("impressions"),
		Clicks:      row.Num("clicks"),
		Conversions: row.OptNum("conversion", "conversions"),
		Leads:       row.OptNum("leads"),
		Reach:       row.OptNum("reach"),
		Ctr:         row.OptNum("ctr"),
		Cpc:         row.OptNum("cpc"),
		Cpm:         row.OptNum("cpm"),
	}
}

func (t tiktokRow) syncMeta() domain.SyncMeta {
	return domain.SyncMeta{
		SourceUpdatedAt: t.row.OptTimestamp("updated_at", "updatedAt", "modify_time"),
		SyncedAt:        time.Now(),
	}
}

func (t tiktokRow) date() string {
	return ParseDate(t.row.Str("stat_time_day", "date"))
}

func MapTikTokCampaign(raw any) domain.CampaignDaily {
	t := tiktokRow{row: AsPayload(raw)}
	row := t.row

	return domain.CampaignDaily{
		Platform:           domain.PlatformTikTok,
		PlatformAccountID:  row.Str("advertiser_id", "advertiserId"),
		Date:               t.date(),
		CampaignExternalID: row.Str("campaign_id", "campaignId", "id"),
		CampaignName:       row.Str("campaign_name", "campaignName", "name"),
		CampaignStatus:     NormalizeStatus("tiktok", row.Str("status", "campaign_status")),
		Objective:          row.OptStr("objective_type", "objectiveType"),
		CurrencyCode:       row.OptStr("currency", "currency_code", "currencyCode"),
		VideoViews:         row.OptNum("video_views", "videoViews"),
		DailyMetrics:       t.metrics(),
		SyncMeta:           t.syncMeta(),
	}
}

func MapTikTokAdGroup(raw any) domain.AdSetDaily {
	t := tiktokRow{row: AsPayload(raw)}
	row := t.row

	return domain.AdSetDaily{
		Platform:           domain.PlatformTikTok,
		PlatformAccountID:  row.Str("advertiser_id", "advertiserId"),
		Date:               t.date(),
		CampaignExternalID: row.Str("campaign_id", "campaignId"),
		CampaignName:       row.OptStr("campaign_name", "campaignName"),
		AdSetExternalID:    row.Str("adgroup_id", "adgroupId", "ad_set_id", "adSetId", "id"),
		AdSetName:          row.Str("adgroup_name", "adgroupName", "ad_set_name", "adSetName", "name"),
		AdSetStatus:        NormalizeStatus("tiktok", row.Str("status", "adgroup_status", "adGroupStatus")),
		OptimizationGoal:   row.OptStr("optimization_goal", "optimizationGoal", "optimization_event"),
		DailyMetrics:       t.metrics(),
		SyncMeta:           t.syncMeta(),
	}
}

func MapTikTokAd(raw any) domain.AdDaily {
	t := tiktokRow{row: AsPayload(raw)}
	row := t.row

	return domain.AdDaily{
		Platform:           domain.PlatformTikTok,
		PlatformAccountID:  row.Str("advertiser_id", "advertiserId"),
		Date:               t.date(),
		CampaignExternalID: row.Str("campaign_id", "campaignId"),
		CampaignName:       row.OptStr("campaign_name", "campaignName"),
		AdSetExternalID:    row.Str("adgroup_id", "adgroupId", "ad_set_id", "adSetId"),
		AdSetName:          row.OptStr("adgroup_name", "adgroupName", "ad_set_name", "adSetName"),
		AdExternalID:       row.Str("ad_id", "adId", "id"),
		AdName:             row.Str("ad_name", "adName", "name"),
		AdStatus:           NormalizeStatus("tiktok", row.Str("status", "ad_status", "adStatus")),
		DailyMetrics:       t.metrics(),
		SyncMeta:           t.syncMeta(),
	}
}

// parseTikTokLeadContacts lê os contatos do topo do registro e, na falta, das listas
// field_data, question_answers e answers.
func parseTikTokLeadContacts(row Payload) MetaLeadFields {
	out := MetaLeadFields{
		FullName: row.OptStr("name", "full_name", "fullName"),
		Email:    row.OptStr("email"),
		Phone:    row.OptStr("phone", "phone_number", "phoneNumber"),
	}

	for _, key := range []string{"field_data", "question_answers", "answers"} {
		for _, item := range row.List(key) {
			field := AsPayload(item)
			question := strings.ToLower(field.Str("name", "question", "key", "field_name"))
			if question == "" {
				continue
			}

			var raw any
			if values, ok := field.Value("values").([]any); ok {
				if len(values) > 0 {
					raw = values[0]
				}
			} else {
				raw = field.Value("value", "answer")
			}

			value := optionalString(raw)
			if value == nil {
				continue
			}

			switch {
			case out.Email == nil && strings.Contains(question, "email"):
				out.Email = value
			case out.Phone == nil && (strings.Contains(question, "phone") || strings.Contains(question, "mobile")):
				out.Phone = value
			case out.FullName == nil && strings.Contains(question, "name"):
				out.FullName = value
			}
		}
	}

	return out
}

func MapTikTokLead(raw any) domain.Lead {
	row := AsPayload(raw)
	contacts := parseTikTokLeadContacts(row)
	now := time.Now().UnixMilli()

	capturedAt := row.Timestamp("create_time", "created_at", "createdAt", "captured_at", "capturedAt")
	if capturedAt == 0 {
		capturedAt = now
	}

	return domain.Lead{
		SourcePlatform:     domain.PlatformTikTok,
		PlatformAccountID:  row.Str("advertiser_id", "advertiserId", "account_id", "accountId"),
		LeadExternalID:     row.OptStr("lead_id", "leadId", "id"),
		CampaignExternalID: row.OptStr("campaign_id", "campaignId"),
		AdSetExternalID:    row.OptStr("adgroup_id", "adgroupId", "ad_set_id", "adSetId"),
		AdExternalID:       row.OptStr("ad_id", "adId"),
		CampaignName:       row.OptStr("campaign_name", "campaignName"),
		AdSetName:          row.OptStr("adgroup_name", "adgroupName", "ad_set_name", "adSetName"),
		AdName:             row.OptStr("ad_name", "adName"),
		Name:               contacts.FullName,
		Email:              contacts.Email,
		Phone:              contacts.Phone,
		City:               row.OptStr("city"),
		Country:            row.OptStr("country"),
		Message:            row.OptStr("message", "comment"),
		CapturedAt:         capturedAt,
		ImportedAt:         now,
		UTMSource:          row.OptStr("utm_source", "utmSource"),
		UTMMedium:          row.OptStr("utm_medium", "utmMedium"),
		UTMCampaign:        row.OptStr("utm_campaign", "utmCampaign"),
		UTMContent:         row.OptStr("utm_content", "utmContent"),
		UTMTerm:            row.OptStr("utm_term", "utmTerm"),
		LandingPageURL:     row.OptStr("landing_page_url", "landingPageUrl"),
		ReferrerURL:        row.OptStr("referrer_url", "referrerUrl"),
		Ttclid:             row.OptStr("ttclid"),
		RawPayload:         rawPayload(raw),
	}
}
