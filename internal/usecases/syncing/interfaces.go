package syncing

import (
	"context"

	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/interfaces.go -package=mocks

// PlatformAdapter busca as linhas brutas de um nível de recurso, drenando a paginação
type PlatformAdapter interface {
	FetchRows(ctx context.Context, token, accountID string, level domain.Level, dateRange domain.DateRange) ([]domain.RawRow, error)
}

// TokenProvider entrega um access token válido, renovando-o quando está perto de expirar
type TokenProvider interface {
	GetValidAccessToken(ctx context.Context, credentialID string) (string, error)
}

// Syncer é o ponto de entrada usado pelo agendador e pela API
type Syncer interface {
	// SyncAccount sincroniza um escopo de uma única conta conectada
	SyncAccount(ctx context.Context, accountID string, scope domain.Scope, opts domain.SyncOptions) (domain.SyncResult, error)

	// SyncDue sincroniza as contas vencidas da plataforma, até o limite configurado
	SyncDue(ctx context.Context, platform domain.Platform, scope domain.Scope) ([]domain.AccountOutcome, error)

	// SyncAll sincroniza todas as contas habilitadas da plataforma, vencidas ou não
	SyncAll(ctx context.Context, platform domain.Platform, scope domain.Scope) ([]domain.AccountOutcome, error)
}

// LeadFormSource é implementado pelos adaptadores que listam os formulários de captação da conta
type LeadFormSource interface {
	FetchLeadForms(ctx context.Context, token, accountID string) ([]domain.LeadForm, error)
}
