package notifying

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/ad-sync-engine/infrastructure/repository/mocks"
	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

func TestService_Unnotified(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{name: "limite padrão", limit: 0, wantLimit: DefaultLimit},
		{name: "limite negativo usa o padrão", limit: -3, wantLimit: DefaultLimit},
		{name: "limite informado", limit: 10, wantLimit: 10},
		{name: "limite acima do máximo é cortado", limit: 10000, wantLimit: MaxLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockLeadNotificationRepository(ctrl)
			service := NewService(repo)

			captured := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)
			repo.EXPECT().
				ListUnnotified(gomock.Any(), "acc-1", tt.wantLimit).
				Return([]domain.PendingLead{{ID: "lead-1", ConnectedAccountID: "acc-1", CapturedAt: captured}}, nil)

			leads, err := service.Unnotified(context.Background(), "acc-1", tt.limit)
			require.NoError(t, err)
			require.Len(t, leads, 1)
			assert.Equal(t, "lead-1", leads[0].ID)
		})
	}

	t.Run("sem pendências retorna lista vazia", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockLeadNotificationRepository(ctrl)

		repo.EXPECT().ListUnnotified(gomock.Any(), "acc-1", DefaultLimit).Return(nil, nil)

		leads, err := NewService(repo).Unnotified(context.Background(), "acc-1", 0)
		require.NoError(t, err)
		assert.NotNil(t, leads)
		assert.Empty(t, leads)
	})

	t.Run("erro do banco é propagado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockLeadNotificationRepository(ctrl)
		dbErr := errors.New("connection refused")

		repo.EXPECT().ListUnnotified(gomock.Any(), "acc-1", DefaultLimit).Return(nil, dbErr)

		_, err := NewService(repo).Unnotified(context.Background(), "acc-1", 0)
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestService_MarkNotified(t *testing.T) {
	t.Run("marca o lead", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockLeadNotificationRepository(ctrl)

		repo.EXPECT().MarkNotified(gomock.Any(), "lead-1").Return(nil)

		assert.NoError(t, NewService(repo).MarkNotified(context.Background(), "lead-1"))
	})

	t.Run("id vazio não chega ao banco", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockLeadNotificationRepository(ctrl)

		err := NewService(repo).MarkNotified(context.Background(), "")
		assert.ErrorIs(t, err, domain.ErrLeadNotFound)
	})

	t.Run("lead inexistente", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockLeadNotificationRepository(ctrl)

		repo.EXPECT().MarkNotified(gomock.Any(), "nope").Return(domain.ErrLeadNotFound)

		err := NewService(repo).MarkNotified(context.Background(), "nope")
		assert.ErrorIs(t, err, domain.ErrLeadNotFound)
	})
}
