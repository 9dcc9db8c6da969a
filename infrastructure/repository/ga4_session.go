package repository

import (
	"context"

	"github.com/vfg2006/ad-sync-engine/infrastructure/database/postgres"
	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

const ga4SessionsTable = "ga4_sessions"

type Ga4SessionRepository interface {
	ExistingByDate(ctx context.Context, connectedAccountID, date string) (map[string]string, error)
	Insert(ctx context.Context, record domain.Ga4Session) (string, error)
	Patch(ctx context.Context, id string, record domain.Ga4Session) error
}

type ga4SessionRepository struct {
	table naturalKeyTable
}

func NewGa4SessionRepository(conn *postgres.Connection) Ga4SessionRepository {
	return &ga4SessionRepository{
		table: naturalKeyTable{
			conn:       conn,
			table:      ga4SessionsTable,
			dateColumn: "session_date",
			keyColumns: []string{"ga4_property_id", "source", "medium", "campaign", "content", "term", "landing_page_path"},
			key: func(v []string) string {
				return domain.SessionKey(v[0], v[1], v[2], v[3], v[4], v[5], v[6], v[7])
			},
		},
	}
}

func (r *ga4SessionRepository) ExistingByDate(ctx context.Context, connectedAccountID, date string) (map[string]string, error) {
	return r.table.existingByDate(ctx, connectedAccountID, date)
}

func (r *ga4SessionRepository) Insert(ctx context.Context, record domain.Ga4Session) (string, error) {
	return r.table.insert(ctx, sessionColumns(record))
}

func (r *ga4SessionRepository) Patch(ctx context.Context, id string, record domain.Ga4Session) error {
	return r.table.patch(ctx, id, sessionColumns(record))
}

func sessionColumns(s domain.Ga4Session) map[string]interface{} {
	return merge(
		map[string]interface{}{
			"ga4_property_id":             s.GA4PropertyID,
			"session_date":                s.SessionDate,
			"source":                      s.Source,
			"medium":                      s.Medium,
			"campaign":                    s.Campaign,
			"content":                     s.Content,
			"term":                        s.Term,
			"landing_page_path":           s.LandingPagePath,
			"sessions":                    s.Sessions,
			"engaged_sessions":            s.EngagedSessions,
			"users":                       s.Users,
			"new_users":                   s.NewUsers,
			"conversions":                 s.Conversions,
			"purchase_revenue":            s.PurchaseRevenue,
			"avg_engagement_time_seconds": s.AvgEngagementTimeSeconds,
			"bounce_rate":                 s.BounceRate,
		},
		syncMetaColumns(s.SyncMeta),
	)
}
