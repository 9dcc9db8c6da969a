package domain

import "time"

type SyncStatus string

const (
	SyncStatusIdle    SyncStatus = "idle"
	SyncStatusSyncing SyncStatus = "syncing"
	SyncStatusError   SyncStatus = "error"
)

const (
	DefaultCampaignsSyncFrequencyMinutes = 240
	DefaultLeadsSyncFrequencyMinutes     = 15
)

// ConnectedAccount é o vínculo de um tenant/marca com uma conta externa de anúncios
type ConnectedAccount struct {
	ID                            string
	TenantID                      string
	BrandID                       *string
	CredentialID                  string
	Platform                      Platform
	AccountType                   *AccountType
	PlatformAccountID             string
	AccountName                   string
	SyncEnabled                   bool
	SyncStatus                    SyncStatus
	CampaignsSyncFrequencyMinutes *int
	LeadsSyncFrequencyMinutes     *int
	LastCampaignSyncAt            *time.Time
	NextCampaignSyncAt            *time.Time
	LastLeadSyncAt                *time.Time
	NextLeadSyncAt                *time.Time
	LastSyncError                 *string
	SyncErrorCount                int
	ConnectedAt                   time.Time
	UpdatedAt                     time.Time
}

// SyncPlatform retorna a plataforma do adaptador responsável pela conta
func (a *ConnectedAccount) SyncPlatform() Platform {
	if a.Platform == PlatformGoogle && a.AccountType != nil && *a.AccountType == AccountTypeGA4 {
		return PlatformGA4
	}
	return a.Platform
}

// FrequencyMinutes retorna a frequência configurada para o escopo ou o padrão
func (a *ConnectedAccount) FrequencyMinutes(scope Scope) int {
	if scope == ScopeLeads {
		if a.LeadsSyncFrequencyMinutes != nil && *a.LeadsSyncFrequencyMinutes > 0 {
			return *a.LeadsSyncFrequencyMinutes
		}
		return DefaultLeadsSyncFrequencyMinutes
	}

	if a.CampaignsSyncFrequencyMinutes != nil && *a.CampaignsSyncFrequencyMinutes > 0 {
		return *a.CampaignsSyncFrequencyMinutes
	}
	return DefaultCampaignsSyncFrequencyMinutes
}

// SyncStateUpdate é a alteração parcial de estado aplicada pelo rastreador de sincronização.
// Campos nil não são alterados; ClearLastSyncError zera a mensagem de erro.
// Com Claim, a alteração só é aplicada se a conta não estiver em syncing ou se o
// syncing for anterior a StaleBefore.
type SyncStateUpdate struct {
	Claim              bool
	StaleBefore        time.Time
	Status             SyncStatus
	ClearLastSyncError bool
	LastSyncError      *string
	SyncErrorCount     *int
	IncrementErrors    bool
	LastCampaignSyncAt *time.Time
	NextCampaignSyncAt *time.Time
	LastLeadSyncAt     *time.Time
	NextLeadSyncAt     *time.Time
	UpdatedAt          time.Time
}

// DueFilter define o critério de seleção de contas elegíveis para sincronização
type DueFilter struct {
	Platform    Platform
	AccountType *AccountType
	Scope       Scope
	Now         time.Time
	Limit       int
}
