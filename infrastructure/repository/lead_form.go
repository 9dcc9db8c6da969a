package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/vfg2006/ad-sync-engine/infrastructure/database/postgres"
	"github.com/vfg2006/ad-sync-engine/internal/domain"
	"github.com/vfg2006/ad-sync-engine/pkg/utils"
)

const leadFormsTable = "lead_forms"

type LeadFormRepository interface {
	UpsertMany(ctx context.Context, forms []domain.LeadForm) (int, error)
}

type leadFormRepository struct {
	conn *postgres.Connection
}

func NewLeadFormRepository(conn *postgres.Connection) LeadFormRepository {
	return &leadFormRepository{
		conn: conn,
	}
}

// UpsertMany grava os formulários em uma transação; um form_id já existente tem nome e
// vínculos de campanha atualizados, mantendo a conta e o anunciante originais.
func (r *leadFormRepository) UpsertMany(ctx context.Context, forms []domain.LeadForm) (int, error) {
	if len(forms) == 0 {
		return 0, nil
	}

	err := postgres.InTransaction(ctx, r.conn, func(q postgres.Queryer) error {
		for _, form := range forms {
			query, args, err := upsertLeadFormQuery(form).ToSql()
			if err != nil {
				return fmt.Errorf("failed to build query: %w", err)
			}
			if _, err := q.Exec(ctx, query, args...); err != nil {
				return wrapDBError(err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, &domain.UpsertError{Table: leadFormsTable, Err: err}
	}

	return len(forms), nil
}

func upsertLeadFormQuery(form domain.LeadForm) squirrel.InsertBuilder {
	return squirrel.
		Insert(leadFormsTable).
		Columns("id", "connected_account_id", "advertiser_id", "form_id", "form_name",
			"campaign_id", "adgroup_id", "ad_id", "synced_at").
		Values(utils.NewRowID(), form.ConnectedAccountID, form.AdvertiserID, form.FormID, form.FormName,
			form.CampaignID, form.AdGroupID, form.AdID, form.SyncedAt).
		Suffix("ON CONFLICT (form_id) DO UPDATE SET form_name = EXCLUDED.form_name, " +
			"campaign_id = EXCLUDED.campaign_id, adgroup_id = EXCLUDED.adgroup_id, " +
			"ad_id = EXCLUDED.ad_id, synced_at = EXCLUDED.synced_at").
		PlaceholderFormat(squirrel.Dollar)
}
