package normalizer

import (
	"time"

	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

func MapGA4Session(raw any) domain.Ga4Session {
	row := AsPayload(raw)

	return domain.Ga4Session{
		GA4PropertyID:            row.Str("ga4PropertyId", "ga4_property_id", "propertyId", "property_id"),
		SessionDate:              ParseDate(row.Str("date", "sessionDate", "session_date")),
		Source:                   row.Str("sessionSource", "session_source", "source"),
		Medium:                   row.Str("sessionMedium", "session_medium", "medium"),
		Campaign:                 row.Str("sessionCampaignName", "session_campaign_name", "campaignName", "campaign"),
		Content:                  row.OptStr("sessionContent", "session_content", "content"),
		Term:                     row.OptStr("sessionTerm", "session_term", "term"),
		LandingPagePath:          row.OptStr("landingPagePath", "landing_page_path"),
		Sessions:                 row.Num("sessions", "sessionCount", "session_count"),
		EngagedSessions:          row.OptNum("engagedSessions", "engaged_sessions"),
		Users:                    row.OptNum("users", "totalUsers"),
		NewUsers:                 row.OptNum("newUsers", "new_users"),
		Conversions:              row.OptNum("conversions"),
		PurchaseRevenue:          row.OptNum("purchaseRevenue", "purchase_revenue"),
		AvgEngagementTimeSeconds: row.OptNum("avgEngagementTimeSeconds", "avg_engagement_time_seconds", "averageSessionDuration"),
		BounceRate:               row.OptNum("bounceRate", "bounce_rate"),
		SyncMeta: domain.SyncMeta{
			SourceUpdatedAt: row.OptTimestamp("updatedAt", "updated_at"),
			SyncedAt:        time.Now(),
		},
	}
}
