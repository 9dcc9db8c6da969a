package normalizer

import (
	"math"
	"strings"
	"time"

	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

// MetaActions agrega a lista de ações de um insight do Meta por tipo
type MetaActions struct {
	Leads              float64
	Purchases          float64
	MessageContactsNew float64
	Likes              float64
	Comments           float64
	Shares             float64
}

// ParseMetaActions percorre a lista de ações uma única vez, classificando cada tipo
// pela primeira regra que casar.
func ParseMetaActions(actions any) MetaActions {
	var out MetaActions

	list, ok := actions.([]any)
	if !ok {
		return out
	}

	for _, item := range list {
		action := AsPayload(item)
		actionType := strings.ToLower(action.Str("action_type", "actionType", "type"))
		value := SafeNumber(action.Value("value", "count"), 0)
		if actionType == "" {
			continue
		}

		switch {
		case isMetaLeadAction(actionType):
			out.Leads += value
		case strings.Contains(actionType, "purchase"):
			out.Purchases += value
		case isMetaMessageAction(actionType):
			out.MessageContactsNew += value
		case actionType == "like" || strings.Contains(actionType, "post_reaction") || strings.Contains(actionType, "like"):
			out.Likes += value
		case strings.Contains(actionType, "comment"):
			out.Comments += value
		case actionType == "post" || strings.Contains(actionType, "post_share") || strings.Contains(actionType, "share"):
			out.Shares += value
		}
	}

	return out
}

func isMetaLeadAction(actionType string) bool {
	return actionType == "lead" ||
		strings.Contains(actionType, "fb_pixel_lead") ||
		strings.Contains(actionType, "onsite_conversion.lead") ||
		strings.Contains(actionType, "lead_grouped")
}

func isMetaMessageAction(actionType string) bool {
	return strings.Contains(actionType, "message_contacts_new") ||
		strings.Contains(actionType, "messaging_conversation_started") ||
		strings.Contains(actionType, "message")
}

// parseMetaCostPerActionType retorna o primeiro custo por lead e o primeiro custo por compra
func parseMetaCostPerActionType(costPerActionType any) (costPerLead, costPerConversion *float64) {
	list, ok := costPerActionType.([]any)
	if !ok {
		return nil, nil
	}

	for _, item := range list {
		action := AsPayload(item)
		actionType := strings.ToLower(action.Str("action_type", "actionType", "type"))
		value := readMetaActionMetricValue(action.Value("value", "cost"))
		if actionType == "" || value == nil {
			continue
		}

		if costPerLead == nil && isMetaLeadAction(actionType) {
			costPerLead = value
			continue
		}
		if costPerConversion == nil && strings.Contains(actionType, "purchase") {
			costPerConversion = value
		}
	}

	return costPerLead, costPerConversion
}

// readMetaActionMetricValue lê métricas de vídeo que chegam como lista, objeto ou escalar
func readMetaActionMetricValue(metric any) *float64 {
	switch m := metric.(type) {
	case nil:
		return nil
	case string:
		if m == "" {
			return nil
		}
	case []any:
		for _, item := range m {
			if v := finiteValue(AsPayload(item).Value("value", "count")); v != nil {
				return v
			}
		}
		return nil
	case map[string]any:
		return finiteValue(Payload(m).Value("value", "count"))
	}
	return finiteValue(metric)
}

func finiteValue(v any) *float64 {
	n := SafeNumber(v, math.NaN())
	if math.IsNaN(n) {
		return nil
	}
	return &n
}

// MetaLeadFields são os dados de contato extraídos de field_data
type MetaLeadFields struct {
	FullName *string
	Phone    *string
	Email    *string
}

// ParseMetaLeadFieldData procura email, telefone e nome nos pares {name, values};
// o primeiro valor encontrado para cada campo vence.
func ParseMetaLeadFieldData(fieldData any) MetaLeadFields {
	var out MetaLeadFields

	list, ok := fieldData.([]any)
	if !ok {
		return out
	}

	for _, item := range list {
		field := AsPayload(item)
		name := strings.TrimSpace(strings.ToLower(field.Str("name", "field_name")))
		if name == "" {
			continue
		}

		var raw any
		if values, ok := field.Value("values").([]any); ok {
			if len(values) > 0 {
				raw = values[0]
			}
		} else {
			raw = field.Value("value")
		}

		value := optionalString(raw)
		if value == nil {
			continue
		}

		switch {
		case out.Email == nil && strings.Contains(name, "email"):
			out.Email = value
		case out.Phone == nil && (strings.Contains(name, "phone") || strings.Contains(name, "mobile")):
			out.Phone = value
		case out.FullName == nil && (name == "full_name" || name == "fullname" || name == "name"):
			out.FullName = value
		}
	}

	return out
}

// metaInsight concentra as leituras comuns aos três níveis de insight do Meta
type metaInsight struct {
	row Payload
}

func (m metaInsight) metrics() domain.DailyMetrics {
	row := m.row
	actions := ParseMetaActions(row.Value("actions", "metrics.actions"))
	costPerLead, costPerConversion := parseMetaCostPerActionType(row.Value("cost_per_action_type", "metrics.cost_per_action_type"))
	inlineEngagement := row.OptNum("inline_post_engagement", "metrics.inline_post_engagement")

	return domain.DailyMetrics{
		Spend:                 SafeNumber(row.Value("spend", "metrics.spend"), 0),
		Impressions:           row.Num("impressions", "metrics.impressions"),
		Clicks:                row.Num("clicks", "metrics.clicks"),
		Conversions:           orElse(actions.Purchases, row.OptNum("conversions", "metrics.conversions")),
		Leads:                 orElse(actions.Leads+actions.MessageContactsNew, row.OptNum("leads", "metrics.leads")),
		Reach:                 row.OptNum("reach", "metrics.reach"),
		Frequency:             row.OptNum("frequency", "metrics.frequency"),
		UniqueClicks:          row.OptNum("unique_clicks", "uniqueClicks", "metrics.unique_clicks", "metrics.uniqueClicks"),
		UniqueCtr:             row.OptNum("unique_ctr", "uniqueCtr", "metrics.unique_ctr", "metrics.uniqueCtr"),
		VideoP25:              m.videoPercentile("25"),
		VideoP50:              m.videoPercentile("50"),
		VideoP75:              m.videoPercentile("75"),
		VideoP100:             m.videoPercentile("100"),
		CostPerLead:           costPerLead,
		CostPerConversion:     costPerConversion,
		QualityRanking:        row.OptStr("quality_ranking", "qualityRanking", "metrics.quality_ranking"),
		EngagementRateRanking: row.OptStr("engagement_rate_ranking", "engagementRateRanking", "metrics.engagement_rate_ranking"),
		ConversionRateRanking: row.OptStr("conversion_rate_ranking", "conversionRateRanking", "metrics.conversion_rate_ranking"),
		Likes:                 orElse(actions.Likes, inlineEngagement),
		Comments:              orElse(actions.Comments, inlineEngagement),
		Shares:                orElse(actions.Shares, inlineEngagement),
		Ctr:                   row.OptNum("ctr", "metrics.ctr"),
		Cpc:                   row.OptNum("cpc", "metrics.cpc"),
		Cpm:                   row.OptNum("cpm", "metrics.cpm"),
	}
}

func (m metaInsight) videoPercentile(p string) *float64 {
	return readMetaActionMetricValue(m.row.Value(
		"video_p"+p+"_watched_actions",
		"metrics.video_p"+p+"_watched_actions",
		"video_p"+p,
		"videoP"+p,
		"metrics.videoP"+p,
	))
}

func (m metaInsight) accountID() string {
	return m.row.Str("account_id", "accountId", "ad_account_id")
}

func (m metaInsight) date() string {
	return ParseDate(m.row.Str("date_start", "dateStart", "date", "segments.date"))
}

func (m metaInsight) sourceUpdatedAt() *int64 {
	return m.row.OptTimestamp("updated_time", "updatedAt", "last_updated", "lastModifiedTime")
}

// orElse reproduz "valor agregado, senão fallback": zero cai no fallback
func orElse(aggregated float64, fallback *float64) *float64 {
	if aggregated != 0 {
		return floatPtr(aggregated)
	}
	return fallback
}

func MapMetaCampaign(raw any) domain.CampaignDaily {
	insight := metaInsight{row: AsPayload(raw)}
	row := insight.row

	videoViews := readMetaActionMetricValue(row.Value("video_play_actions", "metrics.video_play_actions"))
	if videoViews == nil {
		videoViews = row.OptNum("video_views", "videoViews", "metrics.video_views", "metrics.videoViews")
	}

	return domain.CampaignDaily{
		Platform:           domain.PlatformMeta,
		PlatformAccountID:  insight.accountID(),
		Date:               insight.date(),
		CampaignExternalID: row.Str("campaign_id", "campaignId", "id"),
		CampaignName:       row.Str("campaign_name", "campaignName", "name"),
		CampaignStatus:     NormalizeStatus("meta", row.Str("status", "campaign_status", "effective_status")),
		Objective:          row.OptStr("objective", "objective_type"),
		CurrencyCode:       row.OptStr("currency", "account_currency", "currency_code"),
		VideoViews:         videoViews,
		DailyMetrics:       insight.metrics(),
		SyncMeta:           domain.SyncMeta{SourceUpdatedAt: insight.sourceUpdatedAt(), SyncedAt: time.Now()},
	}
}

func MapMetaAdSet(raw any) domain.AdSetDaily {
	insight := metaInsight{row: AsPayload(raw)}
	row := insight.row

	return domain.AdSetDaily{
		Platform:           domain.PlatformMeta,
		PlatformAccountID:  insight.accountID(),
		Date:               insight.date(),
		CampaignExternalID: row.Str("campaign_id", "campaignId"),
		CampaignName:       row.OptStr("campaign_name", "campaignName"),
		AdSetExternalID:    row.Str("adset_id", "ad_set_id", "adsetId", "id"),
		AdSetName:          row.Str("adset_name", "ad_set_name", "adsetName", "name"),
		AdSetStatus:        NormalizeStatus("meta", row.Str("status", "adset_status", "effective_status")),
		OptimizationGoal:   row.OptStr("optimization_goal", "optimizationGoal"),
		DailyMetrics:       insight.metrics(),
		SyncMeta:           domain.SyncMeta{SourceUpdatedAt: insight.sourceUpdatedAt(), SyncedAt: time.Now()},
	}
}

func MapMetaAd(raw any) domain.AdDaily {
	insight := metaInsight{row: AsPayload(raw)}
	row := insight.row

	return domain.AdDaily{
		Platform:           domain.PlatformMeta,
		PlatformAccountID:  insight.accountID(),
		Date:               insight.date(),
		CampaignExternalID: row.Str("campaign_id", "campaignId"),
		CampaignName:       row.OptStr("campaign_name", "campaignName"),
		AdSetExternalID:    row.Str("adset_id", "ad_set_id", "adsetId"),
		AdSetName:          row.OptStr("adset_name", "ad_set_name", "adsetName"),
		AdExternalID:       row.Str("ad_id", "adId", "id"),
		AdName:             row.Str("ad_name", "adName", "name"),
		AdStatus:           NormalizeStatus("meta", row.Str("status", "ad_status", "effective_status")),
		ThumbnailURL:       row.OptStr("creative.thumbnail_url", "creative.thumbnailUrl", "thumbnail_url", "thumbnailUrl"),
		Headline:           row.OptStr("creative.title", "headline", "title"),
		BodyText:           row.OptStr("creative.body", "body_text", "bodyText", "body"),
		PreviewLink:        row.OptStr("preview_shareable_link", "previewLink"),
		DailyMetrics:       insight.metrics(),
		SyncMeta:           domain.SyncMeta{SourceUpdatedAt: insight.sourceUpdatedAt(), SyncedAt: time.Now()},
	}
}

func MapMetaLead(raw any) domain.Lead {
	row := AsPayload(raw)
	contacts := ParseMetaLeadFieldData(row.Value("field_data", "fieldData"))
	now := time.Now().UnixMilli()

	capturedAt := row.Timestamp("created_time", "createdTime", "capturedAt", "captured_at")
	if capturedAt == 0 {
		capturedAt = now
	}

	return domain.Lead{
		SourcePlatform:     domain.PlatformMeta,
		PlatformAccountID:  row.Str("ad_account_id", "account_id", "accountId"),
		LeadExternalID:     row.OptStr("id", "leadgen_id", "lead_id", "leadId"),
		CampaignExternalID: row.OptStr("campaign_id", "campaignId"),
		AdSetExternalID:    row.OptStr("adset_id", "ad_set_id", "adsetId"),
		AdExternalID:       row.OptStr("ad_id", "adId"),
		CampaignName:       row.OptStr("campaign_name", "campaignName"),
		AdSetName:          row.OptStr("adset_name", "ad_set_name", "adsetName"),
		AdName:             row.OptStr("ad_name", "adName"),
		Name:               firstString(contacts.FullName, row.OptStr("full_name", "name")),
		Email:              firstString(contacts.Email, row.OptStr("email")),
		Phone:              firstString(contacts.Phone, row.OptStr("phone_number", "phone")),
		City:               row.OptStr("city"),
		Country:            row.OptStr("country"),
		Message:            row.OptStr("message"),
		CapturedAt:         capturedAt,
		ImportedAt:         now,
		UTMSource:          row.OptStr("utm_source", "utmSource"),
		UTMMedium:          row.OptStr("utm_medium", "utmMedium"),
		UTMCampaign:        row.OptStr("utm_campaign", "utmCampaign"),
		UTMContent:         row.OptStr("utm_content", "utmContent"),
		UTMTerm:            row.OptStr("utm_term", "utmTerm"),
		LandingPageURL:     row.OptStr("landing_page_url", "landingPageUrl"),
		ReferrerURL:        row.OptStr("referrer_url", "referrerUrl"),
		Fbclid:             row.OptStr("fbclid"),
		RawPayload:         rawPayload(raw),
	}
}

func firstString(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
