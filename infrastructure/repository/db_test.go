package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/ad-sync-engine/infrastructure/database/postgres"
	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

func newMockConn(t *testing.T) (*postgres.Connection, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &postgres.Connection{DB: db}, mock
}

func TestConnectedAccountRepository_ListDue(t *testing.T) {
	now := time.Date(2026, 2, 5, 12, 0, 0, 0, time.UTC)

	t.Run("mantém a ordem do banco e repassa o limite", func(t *testing.T) {
		conn, mock := newMockConn(t)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM connected_accounts WHERE platform = $1 AND sync_enabled = $2 " +
			"AND (next_campaign_sync_at IS NULL OR next_campaign_sync_at <= $3) " +
			"ORDER BY next_campaign_sync_at ASC NULLS FIRST LIMIT 3")).
			WithArgs("meta", true, now).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("acc-never").AddRow("acc-late").AddRow("acc-due"))

		ids, err := NewConnectedAccountRepository(conn).ListDue(context.Background(), domain.DueFilter{
			Platform: domain.PlatformMeta,
			Scope:    domain.ScopeCampaigns,
			Now:      now,
			Limit:    3,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"acc-never", "acc-late", "acc-due"}, ids)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nenhuma conta vencida retorna lista vazia", func(t *testing.T) {
		conn, mock := newMockConn(t)

		mock.ExpectQuery(regexp.QuoteMeta("ORDER BY next_lead_sync_at ASC NULLS FIRST")).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		ids, err := NewConnectedAccountRepository(conn).ListDue(context.Background(), domain.DueFilter{
			Platform: domain.PlatformTikTok,
			Scope:    domain.ScopeLeads,
			Now:      now,
		})
		require.NoError(t, err)
		assert.NotNil(t, ids)
		assert.Empty(t, ids)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("erro do banco", func(t *testing.T) {
		conn, mock := newMockConn(t)

		mock.ExpectQuery("SELECT id FROM connected_accounts").WillReturnError(errors.New("connection reset"))

		_, err := NewConnectedAccountRepository(conn).ListDue(context.Background(), domain.DueFilter{Platform: domain.PlatformMeta, Now: now})
		assert.ErrorContains(t, err, "connection reset")
	})
}

func TestConnectedAccountRepository_UpdateSyncState(t *testing.T) {
	now := time.Date(2026, 2, 5, 12, 0, 0, 0, time.UTC)
	stale := now.Add(-time.Hour)
	claim := domain.SyncStateUpdate{
		Claim:              true,
		StaleBefore:        stale,
		Status:             domain.SyncStatusSyncing,
		ClearLastSyncError: true,
		UpdatedAt:          now,
	}
	claimQuery := regexp.QuoteMeta("UPDATE connected_accounts SET updated_at = $1, sync_status = $2, last_sync_error = $3 " +
		"WHERE id = $4 AND (sync_status <> $5 OR updated_at < $6)")

	t.Run("reserva a conta livre", func(t *testing.T) {
		conn, mock := newMockConn(t)

		mock.ExpectExec(claimQuery).
			WithArgs(now, "syncing", nil, "acc-1", "syncing", stale).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := NewConnectedAccountRepository(conn).UpdateSyncState(context.Background(), "acc-1", claim)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("conta sincronizando dentro da janela não é reservada", func(t *testing.T) {
		conn, mock := newMockConn(t)

		mock.ExpectExec(claimQuery).
			WithArgs(now, "syncing", nil, "acc-1", "syncing", stale).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewConnectedAccountRepository(conn).UpdateSyncState(context.Background(), "acc-1", claim)
		assert.ErrorIs(t, err, domain.ErrSyncInProgress)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("atualização comum sem linhas é conta inexistente", func(t *testing.T) {
		conn, mock := newMockConn(t)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE connected_accounts SET updated_at = $1, sync_status = $2 WHERE id = $3")).
			WithArgs(now, "idle", "acc-x").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewConnectedAccountRepository(conn).UpdateSyncState(context.Background(), "acc-x", domain.SyncStateUpdate{
			Status:    domain.SyncStatusIdle,
			UpdatedAt: now,
		})
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	})
}

func TestLeadNotificationRepository(t *testing.T) {
	captured := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)

	t.Run("lista pendentes do mais antigo para o mais novo", func(t *testing.T) {
		conn, mock := newMockConn(t)

		columns := []string{"id", "connected_account_id", "source_platform", "lead_external_id", "campaign_name",
			"ad_name", "name", "email", "phone", "lead_status", "captured_at"}
		mock.ExpectQuery(regexp.QuoteMeta("FROM leads WHERE connected_account_id = $1 AND notified = $2 ORDER BY captured_at ASC LIMIT 10")).
			WithArgs("acc-1", false).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("lead-1", "acc-1", "meta", "L1", "Verão", nil, "Ana", nil, "+5511999999999", "new", captured).
				AddRow("lead-2", "acc-1", "meta", nil, nil, nil, nil, "b@c.com", nil, "contacted", captured.Add(time.Hour)))

		leads, err := NewLeadNotificationRepository(conn).ListUnnotified(context.Background(), "acc-1", 10)
		require.NoError(t, err)
		require.Len(t, leads, 2)

		assert.Equal(t, "lead-1", leads[0].ID)
		assert.Equal(t, domain.PlatformMeta, leads[0].SourcePlatform)
		require.NotNil(t, leads[0].LeadExternalID)
		assert.Equal(t, "L1", *leads[0].LeadExternalID)
		assert.Nil(t, leads[0].AdName)
		assert.Equal(t, captured, leads[0].CapturedAt)

		assert.Equal(t, "lead-2", leads[1].ID)
		assert.Nil(t, leads[1].LeadExternalID)
		assert.Equal(t, domain.LeadStatusContacted, leads[1].LeadStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("marca notificado", func(t *testing.T) {
		conn, mock := newMockConn(t)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE leads SET notified = $1 WHERE id = $2")).
			WithArgs(true, "lead-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, NewLeadNotificationRepository(conn).MarkNotified(context.Background(), "lead-1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("lead inexistente", func(t *testing.T) {
		conn, mock := newMockConn(t)

		mock.ExpectExec("UPDATE leads SET notified").WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewLeadNotificationRepository(conn).MarkNotified(context.Background(), "nope")
		assert.ErrorIs(t, err, domain.ErrLeadNotFound)
	})
}

func TestLeadSyncLogRepository(t *testing.T) {
	started := time.Date(2026, 2, 5, 12, 0, 0, 0, time.UTC)
	completed := started.Add(2 * time.Minute)

	t.Run("cria como running", func(t *testing.T) {
		conn, mock := newMockConn(t)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO lead_sync_logs (id,connected_account_id,status,leads_found,leads_created,started_at) VALUES ($1,$2,$3,$4,$5,$6)")).
			WithArgs(sqlmock.AnyArg(), "acc-1", "running", 0, 0, started).
			WillReturnResult(sqlmock.NewResult(0, 1))

		id, err := NewLeadSyncLogRepository(conn).Create(context.Background(), domain.LeadSyncLog{
			ConnectedAccountID: "acc-1",
			StartedAt:          started,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("conclui com erro", func(t *testing.T) {
		conn, mock := newMockConn(t)
		message := "boom"

		mock.ExpectExec(regexp.QuoteMeta("UPDATE lead_sync_logs SET status = $1, leads_found = $2, leads_created = $3, completed_at = $4, error = $5 WHERE id = $6")).
			WithArgs("error", 4, 1, completed, "boom", "log-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := NewLeadSyncLogRepository(conn).Complete(context.Background(), domain.LeadSyncLog{
			ID:           "log-1",
			Status:       domain.LeadSyncError,
			LeadsFound:   4,
			LeadsCreated: 1,
			Error:        &message,
			CompletedAt:  &completed,
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLeadFormRepository_UpsertMany(t *testing.T) {
	synced := time.Date(2026, 2, 5, 12, 0, 0, 0, time.UTC)
	forms := []domain.LeadForm{
		{ConnectedAccountID: "acc-1", AdvertiserID: "adv-1", FormID: "F1", FormName: "Contato", SyncedAt: synced},
		{ConnectedAccountID: "acc-1", AdvertiserID: "adv-1", FormID: "F2", FormName: "Orçamento", SyncedAt: synced},
	}
	upsert := regexp.QuoteMeta("INSERT INTO lead_forms") + ".*" + regexp.QuoteMeta("ON CONFLICT (form_id) DO UPDATE SET form_name = EXCLUDED.form_name")

	t.Run("grava todos em uma transação", func(t *testing.T) {
		conn, mock := newMockConn(t)

		mock.ExpectBegin()
		mock.ExpectExec(upsert).WithArgs(sqlmock.AnyArg(), "acc-1", "adv-1", "F1", "Contato", nil, nil, nil, synced).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(upsert).WithArgs(sqlmock.AnyArg(), "acc-1", "adv-1", "F2", "Orçamento", nil, nil, nil, synced).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		count, err := NewLeadFormRepository(conn).UpsertMany(context.Background(), forms)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("falha desfaz a transação", func(t *testing.T) {
		conn, mock := newMockConn(t)

		mock.ExpectBegin()
		mock.ExpectExec(upsert).WillReturnError(errors.New("deadlock detected"))
		mock.ExpectRollback()

		_, err := NewLeadFormRepository(conn).UpsertMany(context.Background(), forms)

		var upsertErr *domain.UpsertError
		require.ErrorAs(t, err, &upsertErr)
		assert.Equal(t, "lead_forms", upsertErr.Table)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("lista vazia não abre transação", func(t *testing.T) {
		conn, mock := newMockConn(t)

		count, err := NewLeadFormRepository(conn).UpsertMany(context.Background(), nil)
		require.NoError(t, err)
		assert.Zero(t, count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
