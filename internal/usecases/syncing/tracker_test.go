package syncing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/ad-sync-engine/infrastructure/repository/mocks"
	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

func newTestTracker(t *testing.T, now time.Time) (*Tracker, *mocks.MockConnectedAccountRepository) {
	ctrl := gomock.NewController(t)
	accounts := mocks.NewMockConnectedAccountRepository(ctrl)
	tracker := NewTracker(accounts, 30*time.Minute)
	tracker.now = func() time.Time { return now }
	return tracker, accounts
}

func TestTracker_MarkStarted(t *testing.T) {
	now := time.Date(2026, 2, 5, 10, 0, 0, 0, time.UTC)

	t.Run("reserva a conta somente se não houver syncing recente", func(t *testing.T) {
		tracker, accounts := newTestTracker(t, now)

		accounts.EXPECT().
			UpdateSyncState(gomock.Any(), "acc-1", domain.SyncStateUpdate{
				Claim:              true,
				StaleBefore:        now.Add(-30 * time.Minute),
				Status:             domain.SyncStatusSyncing,
				ClearLastSyncError: true,
				UpdatedAt:          now,
			}).
			Return(nil)

		require.NoError(t, tracker.MarkStarted(context.Background(), "acc-1"))
	})

	t.Run("conta já em syncing é recusada", func(t *testing.T) {
		tracker, accounts := newTestTracker(t, now)

		accounts.EXPECT().
			UpdateSyncState(gomock.Any(), "acc-1", gomock.Any()).
			Return(fmt.Errorf("%w: acc-1", domain.ErrSyncInProgress))

		err := tracker.MarkStarted(context.Background(), "acc-1")
		assert.ErrorIs(t, err, domain.ErrSyncInProgress)
	})

	t.Run("janela padrão quando não configurada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		tracker := NewTracker(mocks.NewMockConnectedAccountRepository(ctrl), 0)
		assert.Equal(t, DefaultStaleAfter, tracker.staleAfter)
	})
}

func TestTracker_MarkCompleted(t *testing.T) {
	now := time.Date(2026, 2, 5, 10, 0, 0, 0, time.UTC)

	t.Run("campanhas usam a frequência padrão de 240 minutos", func(t *testing.T) {
		tracker, accounts := newTestTracker(t, now)

		var captured domain.SyncStateUpdate
		accounts.EXPECT().
			UpdateSyncState(gomock.Any(), "acc-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, update domain.SyncStateUpdate) error {
				captured = update
				return nil
			})

		next, err := tracker.MarkCompleted(context.Background(), &domain.ConnectedAccount{ID: "acc-1"}, domain.ScopeCampaigns)
		require.NoError(t, err)

		expected := now.Add(240 * 60000 * time.Millisecond)
		assert.Equal(t, expected, next)
		assert.Equal(t, domain.SyncStatusIdle, captured.Status)
		assert.True(t, captured.ClearLastSyncError)
		require.NotNil(t, captured.SyncErrorCount)
		assert.Equal(t, 0, *captured.SyncErrorCount)
		require.NotNil(t, captured.NextCampaignSyncAt)
		assert.Equal(t, expected, *captured.NextCampaignSyncAt)
		assert.Equal(t, now, *captured.LastCampaignSyncAt)
		assert.Nil(t, captured.NextLeadSyncAt)
	})

	t.Run("leads respeitam a frequência configurada na conta", func(t *testing.T) {
		tracker, accounts := newTestTracker(t, now)
		frequency := 30

		var captured domain.SyncStateUpdate
		accounts.EXPECT().
			UpdateSyncState(gomock.Any(), "acc-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, update domain.SyncStateUpdate) error {
				captured = update
				return nil
			})

		_, err := tracker.MarkCompleted(context.Background(), &domain.ConnectedAccount{
			ID:                        "acc-1",
			LeadsSyncFrequencyMinutes: &frequency,
		}, domain.ScopeLeads)
		require.NoError(t, err)

		require.NotNil(t, captured.NextLeadSyncAt)
		assert.Equal(t, now.Add(30*time.Minute), *captured.NextLeadSyncAt)
		assert.Nil(t, captured.NextCampaignSyncAt)
	})
}

func TestTracker_MarkFailed(t *testing.T) {
	now := time.Date(2026, 2, 5, 10, 0, 0, 0, time.UTC)
	tracker, accounts := newTestTracker(t, now)

	var captured domain.SyncStateUpdate
	accounts.EXPECT().
		UpdateSyncState(gomock.Any(), "acc-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, update domain.SyncStateUpdate) error {
			captured = update
			return nil
		})

	require.NoError(t, tracker.MarkFailed(context.Background(), "acc-1", domain.ScopeLeads, "Meta API request failed (500): boom"))

	assert.Equal(t, domain.SyncStatusError, captured.Status)
	require.NotNil(t, captured.LastSyncError)
	assert.Equal(t, "[leads] Meta API request failed (500): boom", *captured.LastSyncError)
	assert.True(t, captured.IncrementErrors)
	assert.Nil(t, captured.NextCampaignSyncAt)
	assert.Nil(t, captured.NextLeadSyncAt)
}
