package domain

import "time"

type LeadSyncStatus string

const (
	LeadSyncRunning LeadSyncStatus = "running"
	LeadSyncSuccess LeadSyncStatus = "success"
	LeadSyncError   LeadSyncStatus = "error"
)

// LeadSyncLog registra uma execução do escopo de leads de uma conta
type LeadSyncLog struct {
	ID                 string
	ConnectedAccountID string
	Status             LeadSyncStatus
	LeadsFound         int
	LeadsCreated       int
	Error              *string
	StartedAt          time.Time
	CompletedAt        *time.Time
}

// LeadForm é um formulário de geração de leads, identificado pelo form_id da plataforma
type LeadForm struct {
	ConnectedAccountID string
	AdvertiserID       string
	FormID             string
	FormName           string
	CampaignID         *string
	AdGroupID          *string
	AdID               *string
	SyncedAt           time.Time
}

// LeadUpsertStats separa os leads gravados dos efetivamente criados
type LeadUpsertStats struct {
	Processed int
	Created   int
}

// PendingLead é um lead ainda não notificado
type PendingLead struct {
	ID                 string     `json:"id"`
	ConnectedAccountID string     `json:"connected_account_id"`
	SourcePlatform     Platform   `json:"source_platform"`
	LeadExternalID     *string    `json:"lead_external_id,omitempty"`
	CampaignName       *string    `json:"campaign_name,omitempty"`
	AdName             *string    `json:"ad_name,omitempty"`
	Name               *string    `json:"name,omitempty"`
	Email              *string    `json:"email,omitempty"`
	Phone              *string    `json:"phone,omitempty"`
	LeadStatus         LeadStatus `json:"lead_status"`
	CapturedAt         time.Time  `json:"captured_at"`
}
