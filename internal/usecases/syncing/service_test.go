package syncing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	repomocks "github.com/vfg2006/ad-sync-engine/infrastructure/repository/mocks"
	"github.com/vfg2006/ad-sync-engine/internal/config"
	"github.com/vfg2006/ad-sync-engine/internal/domain"
	"github.com/vfg2006/ad-sync-engine/internal/usecases/syncing/mocks"
)

type serviceFixture struct {
	service  *Service
	accounts *repomocks.MockConnectedAccountRepository
	tokens   *mocks.MockTokenProvider
	adapter  *mocks.MockPlatformAdapter
	forms    *mocks.MockLeadFormSource
	stores   *memoryStores
	leadLogs *memoryLeadSyncLogStore

	mu      sync.Mutex
	updates []domain.SyncStateUpdate
}

func newServiceFixture(t *testing.T, now time.Time) *serviceFixture {
	ctrl := gomock.NewController(t)
	f := &serviceFixture{
		accounts: repomocks.NewMockConnectedAccountRepository(ctrl),
		tokens:   mocks.NewMockTokenProvider(ctrl),
		adapter:  mocks.NewMockPlatformAdapter(ctrl),
		forms:    mocks.NewMockLeadFormSource(ctrl),
		stores:   newMemoryStores(),
		leadLogs: &memoryLeadSyncLogStore{},
	}

	tracker := NewTracker(f.accounts, time.Hour)
	tracker.now = func() time.Time { return now }

	f.service = NewService(
		config.Sync{DueLimit: 20, AllLimit: 500, MaxConcurrentJobs: 2, LookbackDays: 30},
		f.accounts,
		tracker,
		f.stores.upserter(),
		f.leadLogs,
		f.tokens,
		map[domain.Platform]PlatformAdapter{
			domain.PlatformMeta:   f.adapter,
			domain.PlatformGoogle: f.adapter,
			domain.PlatformGA4:    f.adapter,
			domain.PlatformTikTok: formAdapter{f.adapter, f.forms},
		},
	)
	f.service.now = func() time.Time { return now }
	return f
}

func (f *serviceFixture) recordUpdates() {
	f.accounts.EXPECT().
		UpdateSyncState(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, update domain.SyncStateUpdate) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.updates = append(f.updates, update)
			return nil
		}).
		AnyTimes()
}

// formAdapter combina os mocks para um adaptador que também lista formulários de leads
type formAdapter struct {
	*mocks.MockPlatformAdapter
	*mocks.MockLeadFormSource
}

func metaAccount(id string) *domain.ConnectedAccount {
	return &domain.ConnectedAccount{
		ID:                id,
		TenantID:          "tenant-1",
		CredentialID:      "cred-" + id,
		Platform:          domain.PlatformMeta,
		PlatformAccountID: "act_123",
		SyncEnabled:       true,
		SyncStatus:        domain.SyncStatusIdle,
	}
}

func TestService_SyncAccount_MetaCampanhas(t *testing.T) {
	now := time.Date(2026, 2, 5, 10, 0, 0, 0, time.UTC)
	f := newServiceFixture(t, now)
	f.recordUpdates()

	f.accounts.EXPECT().GetByID(gomock.Any(), "acc-1").Return(metaAccount("acc-1"), nil)
	f.tokens.EXPECT().GetValidAccessToken(gomock.Any(), "cred-acc-1").Return("tok", nil)

	expectedRange := domain.DateRange{Start: "2026-01-07", End: "2026-02-05"}
	f.adapter.EXPECT().
		FetchRows(gomock.Any(), "tok", "act_123", domain.LevelCampaign, expectedRange).
		Return([]domain.RawRow{
			{"account_id": "123", "campaign_id": "c1", "campaign_name": "Verão", "date_start": "2026-02-03", "spend": "10.5", "status": "ACTIVE"},
			{"account_id": "123", "campaign_id": "c2", "campaign_name": "Inverno", "date_start": "2026-02-03", "spend": "3", "status": "ARCHIVED"},
		}, nil)
	f.adapter.EXPECT().
		FetchRows(gomock.Any(), "tok", "act_123", domain.LevelAdSet, expectedRange).
		Return([]domain.RawRow{
			{"account_id": "123", "campaign_id": "c1", "adset_id": "s1", "adset_name": "Público A", "date_start": "2026-02-03"},
		}, nil)
	f.adapter.EXPECT().
		FetchRows(gomock.Any(), "tok", "act_123", domain.LevelAd, expectedRange).
		Return(nil, nil)

	result, err := f.service.SyncAccount(context.Background(), "acc-1", domain.ScopeCampaigns, domain.SyncOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, result.CampaignRows)
	assert.Equal(t, 1, result.AdSetRows)
	assert.Equal(t, 0, result.AdRows)
	assert.NotEmpty(t, result.RunID)

	campaigns := f.stores.campaigns.all()
	require.Len(t, campaigns, 2)
	sort.Slice(campaigns, func(i, j int) bool { return campaigns[i].CampaignExternalID < campaigns[j].CampaignExternalID })
	assert.Equal(t, domain.StatusActive, campaigns[0].CampaignStatus)
	assert.Equal(t, domain.StatusDeleted, campaigns[1].CampaignStatus)
	assert.Equal(t, "tenant-1", campaigns[0].TenantID)
	assert.Equal(t, "acc-1", campaigns[0].ConnectedAccountID)
	assert.Equal(t, domain.SyncRunIncremental, campaigns[0].SyncRunType)
	assert.Len(t, f.stores.adSets.all(), 1)

	require.Len(t, f.updates, 2)
	assert.Equal(t, domain.SyncStatusSyncing, f.updates[0].Status)
	assert.Equal(t, domain.SyncStatusIdle, f.updates[1].Status)
	require.NotNil(t, f.updates[1].NextCampaignSyncAt)
	assert.Equal(t, now.Add(240*60000*time.Millisecond), *f.updates[1].NextCampaignSyncAt)
}

func TestService_SyncAccount_Falhas(t *testing.T) {
	now := time.Date(2026, 2, 5, 10, 0, 0, 0, time.UTC)

	t.Run("erro da plataforma marca a conta como error sem adiantar o horário", func(t *testing.T) {
		f := newServiceFixture(t, now)
		f.recordUpdates()

		fetchErr := &domain.FetchError{Platform: domain.PlatformMeta, Operation: "Meta API request", Status: 500, Message: "boom"}
		f.accounts.EXPECT().GetByID(gomock.Any(), "acc-1").Return(metaAccount("acc-1"), nil)
		f.tokens.EXPECT().GetValidAccessToken(gomock.Any(), "cred-acc-1").Return("tok", nil)
		f.adapter.EXPECT().FetchRows(gomock.Any(), "tok", "act_123", gomock.Any(), gomock.Any()).Return(nil, fetchErr).Times(3)

		_, err := f.service.SyncAccount(context.Background(), "acc-1", domain.ScopeCampaigns, domain.SyncOptions{})
		assert.ErrorIs(t, err, fetchErr)

		require.Len(t, f.updates, 2)
		failed := f.updates[1]
		assert.Equal(t, domain.SyncStatusError, failed.Status)
		assert.Equal(t, "[campaigns] Meta API request failed (500): boom", *failed.LastSyncError)
		assert.True(t, failed.IncrementErrors)
		assert.Nil(t, failed.NextCampaignSyncAt)
		assert.Empty(t, f.stores.campaigns.all())
	})

	t.Run("credencial inválida é AuthError", func(t *testing.T) {
		f := newServiceFixture(t, now)
		f.recordUpdates()

		authErr := &domain.AuthError{CredentialID: "cred-acc-1", Err: domain.ErrMissingRefreshToken}
		f.accounts.EXPECT().GetByID(gomock.Any(), "acc-1").Return(metaAccount("acc-1"), nil)
		f.tokens.EXPECT().GetValidAccessToken(gomock.Any(), "cred-acc-1").Return("", authErr)

		_, err := f.service.SyncAccount(context.Background(), "acc-1", domain.ScopeLeads, domain.SyncOptions{})

		var target *domain.AuthError
		assert.ErrorAs(t, err, &target)
		require.Len(t, f.updates, 2)
		assert.Equal(t, domain.SyncStatusError, f.updates[1].Status)

		logs := f.leadLogs.all()
		require.Len(t, logs, 1)
		assert.Equal(t, domain.LeadSyncError, logs[0].Status)
		require.NotNil(t, logs[0].Error)
		assert.Contains(t, *logs[0].Error, "refresh")
	})

	t.Run("conta já sincronizando não chama a plataforma nem grava", func(t *testing.T) {
		f := newServiceFixture(t, now)

		f.accounts.EXPECT().GetByID(gomock.Any(), "acc-1").Return(metaAccount("acc-1"), nil)
		f.accounts.EXPECT().
			UpdateSyncState(gomock.Any(), "acc-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, update domain.SyncStateUpdate) error {
				assert.True(t, update.Claim)
				assert.Equal(t, now.Add(-time.Hour), update.StaleBefore)
				return fmt.Errorf("%w: acc-1", domain.ErrSyncInProgress)
			})

		result, err := f.service.SyncAccount(context.Background(), "acc-1", domain.ScopeLeads, domain.SyncOptions{})
		assert.ErrorIs(t, err, domain.ErrSyncInProgress)
		assert.True(t, result.Skipped)
		assert.Empty(t, f.stores.leads.rows)
		assert.Empty(t, f.leadLogs.all())
	})

	t.Run("conta desabilitada não sincroniza", func(t *testing.T) {
		f := newServiceFixture(t, now)
		account := metaAccount("acc-1")
		account.SyncEnabled = false
		f.accounts.EXPECT().GetByID(gomock.Any(), "acc-1").Return(account, nil)

		result, err := f.service.SyncAccount(context.Background(), "acc-1", domain.ScopeCampaigns, domain.SyncOptions{})
		require.NoError(t, err)
		assert.True(t, result.Skipped)
		assert.Equal(t, 0, result.Total())
	})

	t.Run("conta inexistente", func(t *testing.T) {
		f := newServiceFixture(t, now)
		f.accounts.EXPECT().GetByID(gomock.Any(), "acc-x").Return(nil, nil)

		_, err := f.service.SyncAccount(context.Background(), "acc-x", domain.ScopeCampaigns, domain.SyncOptions{})
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	})

	t.Run("google não tem escopo de leads", func(t *testing.T) {
		f := newServiceFixture(t, now)
		account := metaAccount("acc-1")
		account.Platform = domain.PlatformGoogle
		f.accounts.EXPECT().GetByID(gomock.Any(), "acc-1").Return(account, nil)

		_, err := f.service.SyncAccount(context.Background(), "acc-1", domain.ScopeLeads, domain.SyncOptions{})
		assert.ErrorIs(t, err, domain.ErrUnsupportedLevel)
	})
}

func TestService_SyncAccount_Leads(t *testing.T) {
	now := time.Date(2026, 2, 5, 10, 0, 0, 0, time.UTC)

	t.Run("registra a execução com leads encontrados e criados", func(t *testing.T) {
		f := newServiceFixture(t, now)
		f.recordUpdates()

		f.stores.leads.rows["lead-0"] = domain.Lead{SourcePlatform: domain.PlatformMeta, LeadExternalID: strPtr("L1"), LeadStatus: domain.LeadStatusContacted}

		f.accounts.EXPECT().GetByID(gomock.Any(), "acc-1").Return(metaAccount("acc-1"), nil)
		f.tokens.EXPECT().GetValidAccessToken(gomock.Any(), "cred-acc-1").Return("tok", nil)
		f.adapter.EXPECT().
			FetchRows(gomock.Any(), "tok", "act_123", domain.LevelLead, gomock.Any()).
			Return([]domain.RawRow{
				{"id": "L1", "ad_account_id": "act_123"},
				{"id": "L2", "ad_account_id": "act_123"},
			}, nil)

		result, err := f.service.SyncAccount(context.Background(), "acc-1", domain.ScopeLeads, domain.SyncOptions{})
		require.NoError(t, err)
		assert.Equal(t, 2, result.LeadRows)
		assert.Equal(t, 2, result.LeadsFound)
		assert.Equal(t, 1, result.LeadsCreated)

		logs := f.leadLogs.all()
		require.Len(t, logs, 1)
		assert.Equal(t, "acc-1", logs[0].ConnectedAccountID)
		assert.Equal(t, domain.LeadSyncSuccess, logs[0].Status)
		assert.Equal(t, 2, logs[0].LeadsFound)
		assert.Equal(t, 1, logs[0].LeadsCreated)
		assert.Equal(t, now, logs[0].StartedAt)
		require.NotNil(t, logs[0].CompletedAt)
		assert.Nil(t, logs[0].Error)
	})

	t.Run("tiktok grava os formulários de captação", func(t *testing.T) {
		f := newServiceFixture(t, now)
		f.recordUpdates()

		account := metaAccount("acc-tt")
		account.Platform = domain.PlatformTikTok
		account.PlatformAccountID = "adv-1"

		f.accounts.EXPECT().GetByID(gomock.Any(), "acc-tt").Return(account, nil)
		f.tokens.EXPECT().GetValidAccessToken(gomock.Any(), "cred-acc-tt").Return("tok", nil)
		f.adapter.EXPECT().
			FetchRows(gomock.Any(), "tok", "adv-1", domain.LevelLead, gomock.Any()).
			Return([]domain.RawRow{{"lead_id": "T1", "advertiser_id": "adv-1"}}, nil)
		f.forms.EXPECT().
			FetchLeadForms(gomock.Any(), "tok", "adv-1").
			Return([]domain.LeadForm{{FormID: "F1", FormName: "Contato"}}, nil)

		result, err := f.service.SyncAccount(context.Background(), "acc-tt", domain.ScopeLeads, domain.SyncOptions{})
		require.NoError(t, err)
		assert.Equal(t, 1, result.LeadRows)
		assert.Equal(t, 1, result.LeadForms)

		stored := f.stores.forms.rows["F1"]
		assert.Equal(t, "acc-tt", stored.ConnectedAccountID)
		assert.Equal(t, "adv-1", stored.AdvertiserID)
		assert.Equal(t, now, stored.SyncedAt)
	})

	t.Run("falha ao listar formulários não derruba os leads", func(t *testing.T) {
		f := newServiceFixture(t, now)
		f.recordUpdates()

		account := metaAccount("acc-tt")
		account.Platform = domain.PlatformTikTok

		f.accounts.EXPECT().GetByID(gomock.Any(), "acc-tt").Return(account, nil)
		f.tokens.EXPECT().GetValidAccessToken(gomock.Any(), gomock.Any()).Return("tok", nil)
		f.adapter.EXPECT().
			FetchRows(gomock.Any(), "tok", gomock.Any(), domain.LevelLead, gomock.Any()).
			Return([]domain.RawRow{{"lead_id": "T1"}}, nil)
		f.forms.EXPECT().
			FetchLeadForms(gomock.Any(), "tok", gomock.Any()).
			Return(nil, errors.New("no permission"))

		result, err := f.service.SyncAccount(context.Background(), "acc-tt", domain.ScopeLeads, domain.SyncOptions{})
		require.NoError(t, err)
		assert.Equal(t, 1, result.LeadRows)
		assert.Equal(t, 0, result.LeadForms)
		assert.Empty(t, f.stores.forms.rows)
	})
}

func TestService_SyncAccount_GA4(t *testing.T) {
	now := time.Date(2026, 2, 5, 10, 0, 0, 0, time.UTC)
	f := newServiceFixture(t, now)
	f.recordUpdates()

	ga4 := domain.AccountTypeGA4
	account := metaAccount("acc-ga4")
	account.Platform = domain.PlatformGoogle
	account.AccountType = &ga4
	account.PlatformAccountID = "987"

	backfill := domain.DateRange{Start: "2025-01-01", End: "2025-01-31"}
	f.accounts.EXPECT().GetByID(gomock.Any(), "acc-ga4").Return(account, nil)
	f.tokens.EXPECT().GetValidAccessToken(gomock.Any(), "cred-acc-ga4").Return("tok", nil)
	f.adapter.EXPECT().
		FetchRows(gomock.Any(), "tok", "987", domain.LevelSession, backfill).
		Return([]domain.RawRow{
			{"ga4PropertyId": "987", "date": "20250103", "sessionSource": "google", "sessionMedium": "cpc", "sessions": "12"},
		}, nil)

	result, err := f.service.SyncAccount(context.Background(), "acc-ga4", domain.ScopeCampaigns, domain.SyncOptions{
		RunType:   domain.SyncRunBackfill,
		DateRange: &backfill,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.SessionRows)

	sessions := f.stores.sessions.all()
	require.Len(t, sessions, 1)
	assert.Equal(t, "2025-01-03", sessions[0].SessionDate)
	assert.Equal(t, 12.0, sessions[0].Sessions)
	assert.Equal(t, domain.SyncRunBackfill, sessions[0].SyncRunType)
}

func TestService_SyncDue(t *testing.T) {
	now := time.Date(2026, 2, 5, 10, 0, 0, 0, time.UTC)

	t.Run("falha de uma conta não interrompe as demais", func(t *testing.T) {
		f := newServiceFixture(t, now)
		f.recordUpdates()

		f.accounts.EXPECT().
			ListDue(gomock.Any(), domain.DueFilter{
				Platform: domain.PlatformMeta,
				Scope:    domain.ScopeCampaigns,
				Now:      now,
				Limit:    20,
			}).
			Return([]string{"acc-ok", "acc-bad"}, nil)

		f.accounts.EXPECT().GetByID(gomock.Any(), "acc-ok").Return(metaAccount("acc-ok"), nil)
		f.accounts.EXPECT().GetByID(gomock.Any(), "acc-bad").Return(metaAccount("acc-bad"), nil)
		f.tokens.EXPECT().GetValidAccessToken(gomock.Any(), "cred-acc-ok").Return("tok", nil)
		f.tokens.EXPECT().GetValidAccessToken(gomock.Any(), "cred-acc-bad").Return("", errors.New("decrypt failed"))
		f.adapter.EXPECT().FetchRows(gomock.Any(), "tok", gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).Times(3)

		outcomes, err := f.service.SyncDue(context.Background(), domain.PlatformMeta, domain.ScopeCampaigns)
		require.NoError(t, err)
		require.Len(t, outcomes, 2)

		assert.Equal(t, "acc-ok", outcomes[0].AccountID)
		assert.True(t, outcomes[0].OK)
		assert.Equal(t, "acc-bad", outcomes[1].AccountID)
		assert.False(t, outcomes[1].OK)
		assert.Equal(t, "decrypt failed", outcomes[1].Error)
	})

	t.Run("panic do adaptador marca só aquela conta como falha", func(t *testing.T) {
		f := newServiceFixture(t, now)
		f.recordUpdates()

		f.accounts.EXPECT().ListDue(gomock.Any(), gomock.Any()).Return([]string{"acc-ok", "acc-panic"}, nil)
		f.accounts.EXPECT().GetByID(gomock.Any(), "acc-ok").Return(metaAccount("acc-ok"), nil)
		panicking := metaAccount("acc-panic")
		panicking.PlatformAccountID = "act_panic"
		f.accounts.EXPECT().GetByID(gomock.Any(), "acc-panic").Return(panicking, nil)
		f.tokens.EXPECT().GetValidAccessToken(gomock.Any(), gomock.Any()).Return("tok", nil).Times(2)
		f.adapter.EXPECT().
			FetchRows(gomock.Any(), "tok", "act_123", gomock.Any(), gomock.Any()).
			Return(nil, nil).
			Times(3)
		f.adapter.EXPECT().
			FetchRows(gomock.Any(), "tok", "act_panic", gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, string, string, domain.Level, domain.DateRange) ([]domain.RawRow, error) {
				panic("linha inesperada")
			}).
			Times(3)

		outcomes, err := f.service.SyncDue(context.Background(), domain.PlatformMeta, domain.ScopeCampaigns)
		require.NoError(t, err)
		require.Len(t, outcomes, 2)

		assert.True(t, outcomes[0].OK)
		assert.False(t, outcomes[1].OK)
		assert.Contains(t, outcomes[1].Error, "panic: linha inesperada")

		f.mu.Lock()
		defer f.mu.Unlock()
		var failed int
		for _, update := range f.updates {
			if update.Status == domain.SyncStatusError {
				failed++
			}
		}
		assert.Equal(t, 1, failed)
	})

	t.Run("conta já sincronizando é ignorada sem falha", func(t *testing.T) {
		f := newServiceFixture(t, now)

		f.accounts.EXPECT().ListDue(gomock.Any(), gomock.Any()).Return([]string{"acc-1"}, nil)
		f.accounts.EXPECT().GetByID(gomock.Any(), "acc-1").Return(metaAccount("acc-1"), nil)
		f.accounts.EXPECT().
			UpdateSyncState(gomock.Any(), "acc-1", gomock.Any()).
			Return(domain.ErrSyncInProgress)

		outcomes, err := f.service.SyncDue(context.Background(), domain.PlatformMeta, domain.ScopeCampaigns)
		require.NoError(t, err)
		require.Len(t, outcomes, 1)
		assert.True(t, outcomes[0].OK)
		assert.True(t, outcomes[0].Result.Skipped)
	})

	t.Run("conta de outra plataforma é recusada", func(t *testing.T) {
		f := newServiceFixture(t, now)
		accountType := domain.AccountTypeGoogleAds

		f.accounts.EXPECT().
			ListDue(gomock.Any(), domain.DueFilter{
				Platform:    domain.PlatformGoogle,
				AccountType: &accountType,
				Scope:       domain.ScopeCampaigns,
				Now:         now,
				Limit:       20,
			}).
			Return([]string{"acc-1"}, nil)
		f.accounts.EXPECT().GetByID(gomock.Any(), "acc-1").Return(metaAccount("acc-1"), nil)

		outcomes, err := f.service.SyncDue(context.Background(), domain.PlatformGoogle, domain.ScopeCampaigns)
		require.NoError(t, err)
		require.Len(t, outcomes, 1)
		assert.False(t, outcomes[0].OK)
		assert.Contains(t, outcomes[0].Error, domain.ErrPlatformMismatch.Error())
	})

	t.Run("sync all ignora o horário e usa o limite maior", func(t *testing.T) {
		f := newServiceFixture(t, now)

		f.accounts.EXPECT().
			ListDue(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter domain.DueFilter) ([]string, error) {
				assert.Equal(t, 500, filter.Limit)
				assert.True(t, filter.Now.After(now.AddDate(1000, 0, 0)))
				return nil, nil
			})

		outcomes, err := f.service.SyncAll(context.Background(), domain.PlatformMeta, domain.ScopeLeads)
		require.NoError(t, err)
		assert.Empty(t, outcomes)
	})
}
