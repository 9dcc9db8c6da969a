package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/vfg2006/ad-sync-engine/infrastructure/database/postgres"
	"github.com/vfg2006/ad-sync-engine/internal/domain"
	"github.com/vfg2006/ad-sync-engine/pkg/utils"
)

// naturalKeyTable concentra a leitura por data e a escrita das tabelas com chave natural
type naturalKeyTable struct {
	conn       *postgres.Connection
	table      string
	dateColumn string
	keyColumns []string
	key        func(values []string) string
}

// existingByDate carrega, em uma única consulta, chave natural -> id das linhas da conta na data
func (t naturalKeyTable) existingByDate(ctx context.Context, connectedAccountID, date string) (map[string]string, error) {
	columns := append([]string{"id"}, t.keyColumns...)
	columns = append(columns, fmt.Sprintf("to_char(%s, 'YYYY-MM-DD')", t.dateColumn))

	query, args, err := squirrel.
		Select(columns...).
		From(t.table).
		Where(squirrel.Eq{"connected_account_id": connectedAccountID, t.dateColumn: date}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := t.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	existing := make(map[string]string)
	for rows.Next() {
		values := make([]sql.NullString, len(columns))
		dest := make([]interface{}, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", t.table, err)
		}

		parts := make([]string, 0, len(values)-1)
		for _, v := range values[1:] {
			parts = append(parts, v.String)
		}
		existing[t.key(parts)] = values[0].String
	}

	if err := rows.Err(); err != nil {
		return nil, wrapDBError(err)
	}

	return existing, nil
}

func (t naturalKeyTable) insert(ctx context.Context, values map[string]interface{}) (string, error) {
	id := utils.NewRowID()
	values["id"] = id

	query, args, err := squirrel.
		Insert(t.table).
		SetMap(values).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := t.conn.Exec(ctx, query, args...); err != nil {
		return "", &domain.UpsertError{Table: t.table, Err: wrapDBError(err)}
	}

	return id, nil
}

func (t naturalKeyTable) patch(ctx context.Context, id string, values map[string]interface{}) error {
	query, args, err := squirrel.
		Update(t.table).
		SetMap(values).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := t.conn.Exec(ctx, query, args...); err != nil {
		return &domain.UpsertError{Table: t.table, Err: wrapDBError(err)}
	}

	return nil
}

func metricColumns(m domain.DailyMetrics) map[string]interface{} {
	return map[string]interface{}{
		"spend":                   m.Spend,
		"impressions":             m.Impressions,
		"clicks":                  m.Clicks,
		"conversions":             m.Conversions,
		"leads":                   m.Leads,
		"reach":                   m.Reach,
		"frequency":               m.Frequency,
		"unique_clicks":           m.UniqueClicks,
		"unique_ctr":              m.UniqueCtr,
		"video_p25":               m.VideoP25,
		"video_p50":               m.VideoP50,
		"video_p75":               m.VideoP75,
		"video_p100":              m.VideoP100,
		"cost_per_lead":           m.CostPerLead,
		"cost_per_conversion":     m.CostPerConversion,
		"quality_ranking":         m.QualityRanking,
		"engagement_rate_ranking": m.EngagementRateRanking,
		"conversion_rate_ranking": m.ConversionRateRanking,
		"likes":                   m.Likes,
		"comments":                m.Comments,
		"shares":                  m.Shares,
		"ctr":                     m.Ctr,
		"cpc":                     m.Cpc,
		"cpm":                     m.Cpm,
	}
}

func syncMetaColumns(m domain.SyncMeta) map[string]interface{} {
	return map[string]interface{}{
		"tenant_id":            m.TenantID,
		"brand_id":             m.BrandID,
		"connected_account_id": m.ConnectedAccountID,
		"sync_run_type":        string(m.SyncRunType),
		"source_updated_at":    m.SourceUpdatedAt,
		"synced_at":            m.SyncedAt,
	}
}

func merge(maps ...map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}
