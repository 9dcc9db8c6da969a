package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/vfg2006/ad-sync-engine/infrastructure/database/postgres"
	"github.com/vfg2006/ad-sync-engine/internal/domain"
	"github.com/vfg2006/ad-sync-engine/pkg/utils"
)

//go:generate mockgen -source=lead.go -destination=mocks/lead.go -package=mocks

const leadsTable = "leads"

type LeadRepository interface {
	ExistingByExternalIDs(ctx context.Context, platform domain.Platform, externalIDs []string) (map[string]domain.ExistingLead, error)
	Insert(ctx context.Context, lead domain.Lead) (string, error)
	Patch(ctx context.Context, id string, lead domain.Lead) error
}

// LeadNotificationRepository controla o flag notified dos leads já gravados
type LeadNotificationRepository interface {
	ListUnnotified(ctx context.Context, connectedAccountID string, limit int) ([]domain.PendingLead, error)
	MarkNotified(ctx context.Context, leadID string) error
}

type leadRepository struct {
	conn *postgres.Connection
}

func NewLeadRepository(conn *postgres.Connection) LeadRepository {
	return &leadRepository{
		conn: conn,
	}
}

func NewLeadNotificationRepository(conn *postgres.Connection) LeadNotificationRepository {
	return &leadRepository{
		conn: conn,
	}
}

// ExistingByExternalIDs retorna os leads já gravados indexados por plataforma|id externo
func (r *leadRepository) ExistingByExternalIDs(ctx context.Context, platform domain.Platform, externalIDs []string) (map[string]domain.ExistingLead, error) {
	existing := make(map[string]domain.ExistingLead)
	if len(externalIDs) == 0 {
		return existing, nil
	}

	query, args, err := squirrel.
		Select("id", "lead_external_id", "lead_status").
		From(leadsTable).
		Where(squirrel.Eq{"source_platform": platform.String()}).
		Where("lead_external_id = ANY(?)", pq.Array(externalIDs)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			lead       domain.ExistingLead
			externalID string
		)
		if err := rows.Scan(&lead.ID, &externalID, &lead.LeadStatus); err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		existing[domain.LeadKey(platform, externalID)] = lead
	}

	if err := rows.Err(); err != nil {
		return nil, wrapDBError(err)
	}

	return existing, nil
}

func (r *leadRepository) Insert(ctx context.Context, lead domain.Lead) (string, error) {
	id := utils.NewRowID()
	values := leadColumns(lead)
	values["id"] = id
	values["lead_status"] = string(lead.LeadStatus)
	values["notified"] = false

	query, args, err := squirrel.
		Insert(leadsTable).
		SetMap(values).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return "", &domain.UpsertError{Table: leadsTable, Err: wrapDBError(err)}
	}

	return id, nil
}

// Patch sobrescreve os campos sincronizados; lead_status e notified não são tocados
func (r *leadRepository) Patch(ctx context.Context, id string, lead domain.Lead) error {
	query, args, err := squirrel.
		Update(leadsTable).
		SetMap(leadColumns(lead)).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return &domain.UpsertError{Table: leadsTable, Err: wrapDBError(err)}
	}

	return nil
}

// ListUnnotified retorna os leads da conta ainda não notificados, do mais antigo para o mais novo
func (r *leadRepository) ListUnnotified(ctx context.Context, connectedAccountID string, limit int) ([]domain.PendingLead, error) {
	builder := squirrel.
		Select("id", "connected_account_id", "source_platform", "lead_external_id", "campaign_name",
			"ad_name", "name", "email", "phone", "lead_status", "captured_at").
		From(leadsTable).
		Where(squirrel.Eq{"connected_account_id": connectedAccountID, "notified": false}).
		OrderBy("captured_at ASC").
		PlaceholderFormat(squirrel.Dollar)
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	leads := make([]domain.PendingLead, 0)
	for rows.Next() {
		var lead domain.PendingLead
		var externalID, campaign, ad, name, email, phone sql.NullString
		if err := rows.Scan(
			&lead.ID,
			&lead.ConnectedAccountID,
			&lead.SourcePlatform,
			&externalID,
			&campaign,
			&ad,
			&name,
			&email,
			&phone,
			&lead.LeadStatus,
			&lead.CapturedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		lead.LeadExternalID = nullString(externalID)
		lead.CampaignName = nullString(campaign)
		lead.AdName = nullString(ad)
		lead.Name = nullString(name)
		lead.Email = nullString(email)
		lead.Phone = nullString(phone)
		leads = append(leads, lead)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapDBError(err)
	}

	return leads, nil
}

func (r *leadRepository) MarkNotified(ctx context.Context, leadID string) error {
	query, args, err := squirrel.
		Update(leadsTable).
		Set("notified", true).
		Where(squirrel.Eq{"id": leadID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return wrapDBError(err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrLeadNotFound, leadID)
	}

	return nil
}

func leadColumns(l domain.Lead) map[string]interface{} {
	var rawPayload interface{}
	if len(l.RawPayload) > 0 {
		rawPayload = string(l.RawPayload)
	}

	return map[string]interface{}{
		"tenant_id":            l.TenantID,
		"brand_id":             l.BrandID,
		"connected_account_id": l.ConnectedAccountID,
		"source_platform":      l.SourcePlatform.String(),
		"platform_account_id":  l.PlatformAccountID,
		"lead_external_id":     l.LeadExternalID,
		"campaign_external_id": l.CampaignExternalID,
		"ad_set_external_id":   l.AdSetExternalID,
		"ad_external_id":       l.AdExternalID,
		"campaign_name":        l.CampaignName,
		"ad_set_name":          l.AdSetName,
		"ad_name":              l.AdName,
		"name":                 l.Name,
		"email":                l.Email,
		"phone":                l.Phone,
		"city":                 l.City,
		"country":              l.Country,
		"message":              l.Message,
		"captured_at":          time.UnixMilli(l.CapturedAt).UTC(),
		"imported_at":          time.UnixMilli(l.ImportedAt).UTC(),
		"utm_source":           l.UTMSource,
		"utm_medium":           l.UTMMedium,
		"utm_campaign":         l.UTMCampaign,
		"utm_content":          l.UTMContent,
		"utm_term":             l.UTMTerm,
		"landing_page_url":     l.LandingPageURL,
		"referrer_url":         l.ReferrerURL,
		"gclid":                l.Gclid,
		"fbclid":               l.Fbclid,
		"ttclid":               l.Ttclid,
		"raw_payload":          rawPayload,
	}
}
