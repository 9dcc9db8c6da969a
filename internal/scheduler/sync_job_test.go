package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/ad-sync-engine/internal/config"
	"github.com/vfg2006/ad-sync-engine/internal/domain"
	"github.com/vfg2006/ad-sync-engine/internal/usecases/syncing/mocks"
)

func newTestJob(t *testing.T) (*SyncJobService, *mocks.MockSyncer) {
	ctrl := gomock.NewController(t)
	syncer := mocks.NewMockSyncer(ctrl)
	job := NewSyncJobService(SyncJobConfig{
		Name:         "meta-campaigns",
		Platform:     domain.PlatformMeta,
		Scope:        domain.ScopeCampaigns,
		CronSchedule: "*/15 * * * *",
	}, syncer)
	return job, syncer
}

func TestSyncJobService_runSync(t *testing.T) {
	t.Run("registra contas com sucesso e falha", func(t *testing.T) {
		job, syncer := newTestJob(t)
		syncer.EXPECT().SyncDue(gomock.Any(), domain.PlatformMeta, domain.ScopeCampaigns).Return([]domain.AccountOutcome{
			{AccountID: "a1", OK: true},
			{AccountID: "a2", OK: false, Error: "Meta insights failed (500): boom"},
			{AccountID: "a3", OK: true},
		}, nil)

		job.runSync(context.Background(), false)

		status := job.GetStatus()
		assert.Equal(t, 2, status["last_sync_succeeded"])
		assert.Equal(t, 1, status["last_sync_failed"])
		assert.Equal(t, false, status["sync_running"])
		assert.Equal(t, "", status["last_sync_error"])
	})

	t.Run("all usa SyncAll", func(t *testing.T) {
		job, syncer := newTestJob(t)
		syncer.EXPECT().SyncAll(gomock.Any(), domain.PlatformMeta, domain.ScopeCampaigns).Return(nil, nil)

		job.runSync(context.Background(), true)
	})

	t.Run("erro ao listar contas", func(t *testing.T) {
		job, syncer := newTestJob(t)
		syncer.EXPECT().SyncDue(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("database error"))

		job.runSync(context.Background(), false)

		assert.Equal(t, "database error", job.GetStatus()["last_sync_error"])
	})

	t.Run("ignora execução concorrente", func(t *testing.T) {
		job, _ := newTestJob(t)
		require.True(t, job.tryStart())

		job.runSync(context.Background(), false)
		assert.False(t, job.TriggerManualSync(false))
	})
}

func TestSyncJobService_TriggerManualSync(t *testing.T) {
	job, syncer := newTestJob(t)
	done := make(chan struct{})
	syncer.EXPECT().SyncAll(gomock.Any(), domain.PlatformMeta, domain.ScopeCampaigns).
		DoAndReturn(func(ctx context.Context, platform domain.Platform, scope domain.Scope) ([]domain.AccountOutcome, error) {
			close(done)
			return []domain.AccountOutcome{{AccountID: "a1", OK: true}}, nil
		})

	assert.True(t, job.TriggerManualSync(true))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sincronização manual não executou")
	}

	assert.Eventually(t, func() bool {
		return job.GetStatus()["sync_running"] == false
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSyncJobService_StartDisabled(t *testing.T) {
	job, _ := newTestJob(t)
	assert.NoError(t, job.Start(context.Background()))
}

func TestNewJobs(t *testing.T) {
	ctrl := gomock.NewController(t)
	cfg := &config.Config{
		MetaCampaignSync: config.MetaCampaignSync{CronSchedule: "*/15 * * * *", Enabled: true},
		GA4SessionSync:   config.GA4SessionSync{CronSchedule: "0 * * * *"},
	}

	jobs := NewJobs(cfg, mocks.NewMockSyncer(ctrl))

	job, ok := jobs.Get(domain.PlatformGA4, domain.ScopeCampaigns)
	require.True(t, ok)
	assert.Equal(t, "ga4-sessions", job.config.Name)

	_, ok = jobs.Get(domain.PlatformGoogle, domain.ScopeLeads)
	assert.False(t, ok)

	assert.Len(t, jobs.Status(), 6)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, jobs.Start(ctx))

	invalid := NewJobs(&config.Config{
		MetaLeadSync: config.MetaLeadSync{CronSchedule: "isso não é cron", Enabled: true},
	}, mocks.NewMockSyncer(ctrl))
	assert.Error(t, invalid.Start(ctx))
}

func TestJobs_Trigger(t *testing.T) {
	ctrl := gomock.NewController(t)
	syncer := mocks.NewMockSyncer(ctrl)
	jobs := NewJobs(&config.Config{}, syncer)

	assert.ErrorIs(t, jobs.Trigger(domain.PlatformGoogle, domain.ScopeLeads, false), ErrUnknownJob)

	job, ok := jobs.Get(domain.PlatformTikTok, domain.ScopeLeads)
	require.True(t, ok)
	require.True(t, job.tryStart())
	assert.ErrorIs(t, jobs.Trigger(domain.PlatformTikTok, domain.ScopeLeads, false), ErrJobRunning)
}
