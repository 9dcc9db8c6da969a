package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ad-sync-engine/infrastructure/database/postgres"
	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

const (
	connectedAccountsTable = "connected_accounts"
	connectedAccountsAlias = "connected_accounts ca"
)

const connectedAccountColumns = "ca.id, ca.tenant_id, ca.brand_id, ca.credential_id, ca.platform, ca.account_type, " +
	"ca.platform_account_id, ca.account_name, ca.sync_enabled, ca.sync_status, " +
	"ca.campaigns_sync_frequency_minutes, ca.leads_sync_frequency_minutes, " +
	"ca.last_campaign_sync_at, ca.next_campaign_sync_at, ca.last_lead_sync_at, ca.next_lead_sync_at, " +
	"ca.last_sync_error, ca.sync_error_count, ca.connected_at, ca.updated_at"

//go:generate mockgen -source=account.go -destination=mocks/account.go -package=mocks
type ConnectedAccountRepository interface {
	GetByID(ctx context.Context, accountID string) (*domain.ConnectedAccount, error)
	ListDue(ctx context.Context, filter domain.DueFilter) ([]string, error)
	UpdateSyncState(ctx context.Context, accountID string, update domain.SyncStateUpdate) error
}

type connectedAccountRepository struct {
	conn *postgres.Connection
}

func NewConnectedAccountRepository(conn *postgres.Connection) ConnectedAccountRepository {
	return &connectedAccountRepository{
		conn: conn,
	}
}

func (r *connectedAccountRepository) GetByID(ctx context.Context, accountID string) (*domain.ConnectedAccount, error) {
	query, args, err := squirrel.
		Select(connectedAccountColumns).
		From(connectedAccountsAlias).
		Where(squirrel.Eq{"ca.id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	acc, err := r.deserializeAccount(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapDBError(err)
	}

	return acc, nil
}

func (r *connectedAccountRepository) deserializeAccount(row *sql.Row) (*domain.ConnectedAccount, error) {
	acc := &domain.ConnectedAccount{}
	var (
		brandID     sql.NullString
		accountType sql.NullString
		lastError   sql.NullString
		campaignsFq sql.NullInt64
		leadsFq     sql.NullInt64
		lastCamp    sql.NullTime
		nextCamp    sql.NullTime
		lastLead    sql.NullTime
		nextLead    sql.NullTime
	)

	if err := row.Scan(
		&acc.ID,
		&acc.TenantID,
		&brandID,
		&acc.CredentialID,
		&acc.Platform,
		&accountType,
		&acc.PlatformAccountID,
		&acc.AccountName,
		&acc.SyncEnabled,
		&acc.SyncStatus,
		&campaignsFq,
		&leadsFq,
		&lastCamp,
		&nextCamp,
		&lastLead,
		&nextLead,
		&lastError,
		&acc.SyncErrorCount,
		&acc.ConnectedAt,
		&acc.UpdatedAt,
	); err != nil {
		return nil, err
	}

	acc.BrandID = nullString(brandID)
	acc.LastSyncError = nullString(lastError)
	if accountType.Valid {
		t := domain.AccountType(accountType.String)
		acc.AccountType = &t
	}
	acc.CampaignsSyncFrequencyMinutes = nullInt(campaignsFq)
	acc.LeadsSyncFrequencyMinutes = nullInt(leadsFq)
	acc.LastCampaignSyncAt = nullTime(lastCamp)
	acc.NextCampaignSyncAt = nullTime(nextCamp)
	acc.LastLeadSyncAt = nullTime(lastLead)
	acc.NextLeadSyncAt = nullTime(nextLead)

	return acc, nil
}

// ListDue retorna os ids das contas habilitadas cujo próximo horário do escopo já passou,
// da mais atrasada para a mais recente; contas nunca agendadas vêm primeiro.
func (r *connectedAccountRepository) ListDue(ctx context.Context, filter domain.DueFilter) ([]string, error) {
	query, args, err := listDueQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan account id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapDBError(err)
	}

	logrus.WithFields(logrus.Fields{
		"platform": filter.Platform,
		"scope":    filter.Scope,
		"due":      len(ids),
	}).Debug("Contas pendentes de sincronização listadas")

	return ids, nil
}

func nextSyncColumn(scope domain.Scope) string {
	if scope == domain.ScopeLeads {
		return "next_lead_sync_at"
	}
	return "next_campaign_sync_at"
}

func listDueQuery(filter domain.DueFilter) squirrel.SelectBuilder {
	column := nextSyncColumn(filter.Scope)

	builder := squirrel.
		Select("id").
		From(connectedAccountsTable).
		Where(squirrel.Eq{"platform": filter.Platform.String(), "sync_enabled": true}).
		Where(squirrel.Or{
			squirrel.Eq{column: nil},
			squirrel.LtOrEq{column: filter.Now},
		}).
		OrderBy(column + " ASC NULLS FIRST").
		PlaceholderFormat(squirrel.Dollar)

	if filter.AccountType != nil {
		if *filter.AccountType == domain.AccountTypeGoogleAds {
			builder = builder.Where(squirrel.Or{
				squirrel.Eq{"account_type": nil},
				squirrel.Eq{"account_type": string(*filter.AccountType)},
			})
		} else {
			builder = builder.Where(squirrel.Eq{"account_type": string(*filter.AccountType)})
		}
	}

	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}

	return builder
}

// UpdateSyncState aplica somente os campos preenchidos da alteração. Uma alteração com Claim
// que não atualiza nenhuma linha indica que outra execução detém a conta.
func (r *connectedAccountRepository) UpdateSyncState(ctx context.Context, accountID string, update domain.SyncStateUpdate) error {
	query, args, err := syncStateQuery(accountID, update).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return wrapDBError(err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		if update.Claim {
			return fmt.Errorf("%w: %s", domain.ErrSyncInProgress, accountID)
		}
		return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, accountID)
	}

	return nil
}

func syncStateQuery(accountID string, update domain.SyncStateUpdate) squirrel.UpdateBuilder {
	builder := squirrel.
		Update(connectedAccountsTable).
		Set("updated_at", update.UpdatedAt).
		Where(squirrel.Eq{"id": accountID}).
		PlaceholderFormat(squirrel.Dollar)

	if update.Claim {
		builder = builder.Where(squirrel.Or{
			squirrel.NotEq{"sync_status": string(domain.SyncStatusSyncing)},
			squirrel.Lt{"updated_at": update.StaleBefore},
		})
	}

	if update.Status != "" {
		builder = builder.Set("sync_status", string(update.Status))
	}

	switch {
	case update.ClearLastSyncError:
		builder = builder.Set("last_sync_error", nil)
	case update.LastSyncError != nil:
		builder = builder.Set("last_sync_error", *update.LastSyncError)
	}

	switch {
	case update.IncrementErrors:
		builder = builder.Set("sync_error_count", squirrel.Expr("sync_error_count + 1"))
	case update.SyncErrorCount != nil:
		builder = builder.Set("sync_error_count", *update.SyncErrorCount)
	}

	if update.LastCampaignSyncAt != nil {
		builder = builder.Set("last_campaign_sync_at", *update.LastCampaignSyncAt)
	}
	if update.NextCampaignSyncAt != nil {
		builder = builder.Set("next_campaign_sync_at", *update.NextCampaignSyncAt)
	}
	if update.LastLeadSyncAt != nil {
		builder = builder.Set("last_lead_sync_at", *update.LastLeadSyncAt)
	}
	if update.NextLeadSyncAt != nil {
		builder = builder.Set("next_lead_sync_at", *update.NextLeadSyncAt)
	}

	return builder
}
