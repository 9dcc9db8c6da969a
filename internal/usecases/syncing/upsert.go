package syncing

import (
	"context"
	"errors"

	"github.com/vfg2006/ad-sync-engine/infrastructure/repository"
	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

const (
	tableCampaignsDaily = "campaigns_daily"
	tableAdSetsDaily    = "ad_sets_daily"
	tableAdsDaily       = "ads_daily"
	tableLeads          = "leads"
	tableGa4Sessions    = "ga4_sessions"
	tableLeadForms      = "lead_forms"
)

type dailyRecord interface {
	NaturalKey() string
	RecordDate() string
	HasNaturalKey() bool
}

type dailyStore[T dailyRecord] interface {
	ExistingByDate(ctx context.Context, connectedAccountID, date string) (map[string]string, error)
	Insert(ctx context.Context, record T) (string, error)
	Patch(ctx context.Context, id string, record T) error
}

// Upserter grava registros canônicos deduplicando pela chave natural de cada tabela
type Upserter struct {
	campaigns repository.CampaignDailyRepository
	adSets    repository.AdSetDailyRepository
	ads       repository.AdDailyRepository
	leads     repository.LeadRepository
	sessions  repository.Ga4SessionRepository
	forms     repository.LeadFormRepository
}

func NewUpserter(
	campaigns repository.CampaignDailyRepository,
	adSets repository.AdSetDailyRepository,
	ads repository.AdDailyRepository,
	leads repository.LeadRepository,
	sessions repository.Ga4SessionRepository,
	forms repository.LeadFormRepository,
) *Upserter {
	return &Upserter{
		campaigns: campaigns,
		adSets:    adSets,
		ads:       ads,
		leads:     leads,
		sessions:  sessions,
		forms:     forms,
	}
}

func (u *Upserter) UpsertCampaigns(ctx context.Context, connectedAccountID string, records []domain.CampaignDaily) (int, error) {
	return upsertDaily[domain.CampaignDaily](ctx, u.campaigns, tableCampaignsDaily, connectedAccountID, records)
}

func (u *Upserter) UpsertAdSets(ctx context.Context, connectedAccountID string, records []domain.AdSetDaily) (int, error) {
	return upsertDaily[domain.AdSetDaily](ctx, u.adSets, tableAdSetsDaily, connectedAccountID, records)
}

func (u *Upserter) UpsertAds(ctx context.Context, connectedAccountID string, records []domain.AdDaily) (int, error) {
	return upsertDaily[domain.AdDaily](ctx, u.ads, tableAdsDaily, connectedAccountID, records)
}

func (u *Upserter) UpsertSessions(ctx context.Context, connectedAccountID string, records []domain.Ga4Session) (int, error) {
	return upsertDaily[domain.Ga4Session](ctx, u.sessions, tableGa4Sessions, connectedAccountID, records)
}

// upsertDaily carrega as linhas existentes uma vez por data distinta do lote e então,
// linha a linha, atualiza quando a chave já existe ou insere.
func upsertDaily[T dailyRecord](ctx context.Context, store dailyStore[T], table, connectedAccountID string, records []T) (int, error) {
	byDate := make(map[string]map[string]string)
	processed := 0

	for _, record := range records {
		if !record.HasNaturalKey() {
			continue
		}

		date := record.RecordDate()
		existing, ok := byDate[date]
		if !ok {
			loaded, err := store.ExistingByDate(ctx, connectedAccountID, date)
			if err != nil {
				return processed, upsertError(table, err)
			}
			if loaded == nil {
				loaded = make(map[string]string)
			}
			byDate[date] = loaded
			existing = loaded
		}

		key := record.NaturalKey()
		if id, found := existing[key]; found {
			if err := store.Patch(ctx, id, record); err != nil {
				return processed, upsertError(table, err)
			}
		} else {
			id, err := store.Insert(ctx, record)
			if err != nil {
				return processed, upsertError(table, err)
			}
			existing[key] = id
		}
		processed++
	}

	return processed, nil
}

// UpsertLeads deduplica por plataforma + id externo; leads sem id externo sempre são inseridos.
// O lead_status gravado é preservado nas atualizações e vale "new" somente na primeira inserção.
func (u *Upserter) UpsertLeads(ctx context.Context, leads []domain.Lead) (domain.LeadUpsertStats, error) {
	var stats domain.LeadUpsertStats

	idsByPlatform := make(map[domain.Platform][]string)
	for _, lead := range leads {
		if _, ok := lead.NaturalKey(); ok {
			idsByPlatform[lead.SourcePlatform] = append(idsByPlatform[lead.SourcePlatform], *lead.LeadExternalID)
		}
	}

	existing := make(map[string]domain.ExistingLead)
	for platform, ids := range idsByPlatform {
		loaded, err := u.leads.ExistingByExternalIDs(ctx, platform, ids)
		if err != nil {
			return stats, upsertError(tableLeads, err)
		}
		for k, v := range loaded {
			existing[k] = v
		}
	}

	for _, lead := range leads {
		key, hasKey := lead.NaturalKey()

		if current, found := existing[key]; hasKey && found {
			lead.LeadStatus = current.LeadStatus
			if err := u.leads.Patch(ctx, current.ID, lead); err != nil {
				return stats, upsertError(tableLeads, err)
			}
			stats.Processed++
			continue
		}

		lead.LeadStatus = domain.LeadStatusNew
		id, err := u.leads.Insert(ctx, lead)
		if err != nil {
			return stats, upsertError(tableLeads, err)
		}
		if hasKey {
			existing[key] = domain.ExistingLead{ID: id, LeadStatus: lead.LeadStatus}
		}
		stats.Processed++
		stats.Created++
	}

	return stats, nil
}

// UpsertLeadForms grava os formulários de captação deduplicando por form_id
func (u *Upserter) UpsertLeadForms(ctx context.Context, forms []domain.LeadForm) (int, error) {
	valid := make([]domain.LeadForm, 0, len(forms))
	for _, form := range forms {
		if form.FormID != "" {
			valid = append(valid, form)
		}
	}

	count, err := u.forms.UpsertMany(ctx, valid)
	if err != nil {
		return 0, upsertError(tableLeadForms, err)
	}
	return count, nil
}

func upsertError(table string, err error) error {
	var upsertErr *domain.UpsertError
	if errors.As(err, &upsertErr) {
		return err
	}
	return &domain.UpsertError{Table: table, Err: err}
}
