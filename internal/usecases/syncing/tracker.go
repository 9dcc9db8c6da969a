package syncing

import (
	"context"
	"fmt"
	"time"

	"github.com/vfg2006/ad-sync-engine/infrastructure/repository"
	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

// DefaultStaleAfter é o tempo após o qual um syncing sem conclusão pode ser retomado
const DefaultStaleAfter = time.Hour

// Tracker mantém a máquina de estados idle -> syncing -> {idle, error} de cada conta
type Tracker struct {
	accounts   repository.ConnectedAccountRepository
	staleAfter time.Duration
	now        func() time.Time
}

func NewTracker(accounts repository.ConnectedAccountRepository, staleAfter time.Duration) *Tracker {
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	return &Tracker{
		accounts:   accounts,
		staleAfter: staleAfter,
		now:        time.Now,
	}
}

// MarkStarted reserva a conta para esta execução. Retorna domain.ErrSyncInProgress quando
// outra execução marcou a conta como syncing há menos de staleAfter.
func (t *Tracker) MarkStarted(ctx context.Context, accountID string) error {
	now := t.now()
	return t.accounts.UpdateSyncState(ctx, accountID, domain.SyncStateUpdate{
		Claim:              true,
		StaleBefore:        now.Add(-t.staleAfter),
		Status:             domain.SyncStatusSyncing,
		ClearLastSyncError: true,
		UpdatedAt:          now,
	})
}

// MarkCompleted volta a conta para idle e agenda a próxima execução do escopo
func (t *Tracker) MarkCompleted(ctx context.Context, account *domain.ConnectedAccount, scope domain.Scope) (time.Time, error) {
	now := t.now()
	next := now.Add(time.Duration(account.FrequencyMinutes(scope)) * time.Minute)
	zero := 0

	update := domain.SyncStateUpdate{
		Status:             domain.SyncStatusIdle,
		ClearLastSyncError: true,
		SyncErrorCount:     &zero,
		UpdatedAt:          now,
	}
	if scope == domain.ScopeLeads {
		update.LastLeadSyncAt = &now
		update.NextLeadSyncAt = &next
	} else {
		update.LastCampaignSyncAt = &now
		update.NextCampaignSyncAt = &next
	}

	if err := t.accounts.UpdateSyncState(ctx, account.ID, update); err != nil {
		return time.Time{}, err
	}
	return next, nil
}

// MarkFailed registra o erro sem adiantar o próximo horário; a conta continua vencida
func (t *Tracker) MarkFailed(ctx context.Context, accountID string, scope domain.Scope, message string) error {
	lastError := fmt.Sprintf("[%s] %s", scope, message)
	return t.accounts.UpdateSyncState(ctx, accountID, domain.SyncStateUpdate{
		Status:          domain.SyncStatusError,
		LastSyncError:   &lastError,
		IncrementErrors: true,
		UpdatedAt:       t.now(),
	})
}
