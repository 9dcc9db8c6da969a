package notifying

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ad-sync-engine/infrastructure/repository"
	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks
type Notifier interface {
	// Unnotified lista os leads da conta ainda não notificados, do mais antigo para o mais novo
	Unnotified(ctx context.Context, connectedAccountID string, limit int) ([]domain.PendingLead, error)

	// MarkNotified marca o lead como notificado
	MarkNotified(ctx context.Context, leadID string) error
}

type Service struct {
	leads repository.LeadNotificationRepository
}

func NewService(leads repository.LeadNotificationRepository) Notifier {
	return &Service{
		leads: leads,
	}
}

// Unnotified aplica DefaultLimit quando limit não é positivo e corta em MaxLimit
func (s *Service) Unnotified(ctx context.Context, connectedAccountID string, limit int) ([]domain.PendingLead, error) {
	if connectedAccountID == "" {
		return nil, fmt.Errorf("%w: empty id", domain.ErrAccountNotFound)
	}

	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	leads, err := s.leads.ListUnnotified(ctx, connectedAccountID, limit)
	if err != nil {
		return nil, err
	}
	if leads == nil {
		leads = []domain.PendingLead{}
	}

	logrus.WithFields(logrus.Fields{
		"account_id": connectedAccountID,
		"leads":      len(leads),
	}).Debug("Leads pendentes de notificação carregados")

	return leads, nil
}

func (s *Service) MarkNotified(ctx context.Context, leadID string) error {
	if leadID == "" {
		return fmt.Errorf("%w: empty id", domain.ErrLeadNotFound)
	}
	return s.leads.MarkNotified(ctx, leadID)
}
