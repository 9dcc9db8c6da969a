package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/vfg2006/ad-sync-engine/infrastructure/database/postgres"
	"github.com/vfg2006/ad-sync-engine/internal/domain"
	"github.com/vfg2006/ad-sync-engine/pkg/utils"
)

const leadSyncLogsTable = "lead_sync_logs"

type LeadSyncLogRepository interface {
	Create(ctx context.Context, log domain.LeadSyncLog) (string, error)
	Complete(ctx context.Context, log domain.LeadSyncLog) error
}

type leadSyncLogRepository struct {
	conn *postgres.Connection
}

func NewLeadSyncLogRepository(conn *postgres.Connection) LeadSyncLogRepository {
	return &leadSyncLogRepository{
		conn: conn,
	}
}

// Create grava a execução como running com contadores zerados
func (r *leadSyncLogRepository) Create(ctx context.Context, log domain.LeadSyncLog) (string, error) {
	id := utils.NewRowID()

	query, args, err := squirrel.
		Insert(leadSyncLogsTable).
		Columns("id", "connected_account_id", "status", "leads_found", "leads_created", "started_at").
		Values(id, log.ConnectedAccountID, string(domain.LeadSyncRunning), 0, 0, log.StartedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return "", wrapDBError(err)
	}

	return id, nil
}

func (r *leadSyncLogRepository) Complete(ctx context.Context, log domain.LeadSyncLog) error {
	query, args, err := completeLeadSyncLogQuery(log).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return wrapDBError(err)
	}

	return nil
}

func completeLeadSyncLogQuery(log domain.LeadSyncLog) squirrel.UpdateBuilder {
	builder := squirrel.
		Update(leadSyncLogsTable).
		Set("status", string(log.Status)).
		Set("leads_found", log.LeadsFound).
		Set("leads_created", log.LeadsCreated).
		Set("completed_at", log.CompletedAt).
		Where(squirrel.Eq{"id": log.ID}).
		PlaceholderFormat(squirrel.Dollar)

	if log.Error != nil {
		builder = builder.Set("error", *log.Error)
	}

	return builder
}
