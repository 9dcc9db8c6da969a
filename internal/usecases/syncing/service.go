package syncing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ad-sync-engine/infrastructure/repository"
	"github.com/vfg2006/ad-sync-engine/internal/config"
	"github.com/vfg2006/ad-sync-engine/internal/domain"
	"github.com/vfg2006/ad-sync-engine/internal/normalizer"
	"github.com/vfg2006/ad-sync-engine/pkg/metrics"
	"github.com/vfg2006/ad-sync-engine/pkg/utils"
)

// farFuture é o "agora" usado por SyncAll para tornar todas as contas habilitadas elegíveis
var farFuture = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

type Service struct {
	cfg      config.Sync
	accounts repository.ConnectedAccountRepository
	tracker  *Tracker
	upserter *Upserter
	leadLogs repository.LeadSyncLogRepository
	tokens   TokenProvider
	adapters map[domain.Platform]PlatformAdapter
	now      func() time.Time
}

func NewService(
	cfg config.Sync,
	accounts repository.ConnectedAccountRepository,
	tracker *Tracker,
	upserter *Upserter,
	leadLogs repository.LeadSyncLogRepository,
	tokens TokenProvider,
	adapters map[domain.Platform]PlatformAdapter,
) *Service {
	return &Service{
		cfg:      cfg,
		accounts: accounts,
		tracker:  tracker,
		upserter: upserter,
		leadLogs: leadLogs,
		tokens:   tokens,
		adapters: adapters,
		now:      time.Now,
	}
}

// syncScope carimba os registros com a conta e a execução que os produziu
type syncScope struct {
	account  *domain.ConnectedAccount
	platform domain.Platform
	runType  domain.SyncRunType
	syncedAt time.Time
}

func (s syncScope) stamp(meta *domain.SyncMeta) {
	meta.TenantID = s.account.TenantID
	meta.BrandID = s.account.BrandID
	meta.ConnectedAccountID = s.account.ID
	meta.SyncRunType = s.runType
	meta.SyncedAt = s.syncedAt
}

func (s *Service) SyncAccount(ctx context.Context, accountID string, scope domain.Scope, opts domain.SyncOptions) (domain.SyncResult, error) {
	return s.syncAccount(ctx, "", accountID, scope, opts)
}

// syncAccount executa uma sincronização; expected vazio aceita a plataforma da própria conta
func (s *Service) syncAccount(ctx context.Context, expected domain.Platform, accountID string, scope domain.Scope, opts domain.SyncOptions) (domain.SyncResult, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return domain.SyncResult{}, err
	}
	if account == nil {
		return domain.SyncResult{}, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, accountID)
	}

	platform := account.SyncPlatform()
	if expected != "" && platform != expected {
		return domain.SyncResult{}, fmt.Errorf("%w: account %s is %s, expected %s", domain.ErrPlatformMismatch, accountID, platform, expected)
	}

	if !account.SyncEnabled {
		logrus.WithField("account_id", accountID).Info("Conta com sincronização desabilitada, ignorando")
		return domain.SyncResult{Skipped: true}, nil
	}

	levels, err := levelsFor(platform, scope)
	if err != nil {
		return domain.SyncResult{}, err
	}

	adapter, ok := s.adapters[platform]
	if !ok {
		return domain.SyncResult{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedPlatform, platform)
	}

	runID, err := utils.GenerateID()
	if err != nil {
		return domain.SyncResult{}, errors.Wrap(err, "generate run id")
	}

	logger := logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"platform":   platform,
		"scope":      scope,
		"run_id":     runID,
	})

	started := s.now()
	if err := s.tracker.MarkStarted(ctx, accountID); err != nil {
		if errors.Is(err, domain.ErrSyncInProgress) {
			logger.Warn("Conta já está sincronizando, ignorando")
			return domain.SyncResult{Skipped: true}, err
		}
		return domain.SyncResult{}, err
	}
	logger.Info("Iniciando sincronização da conta")

	leadLog := s.startLeadLog(ctx, logger, accountID, levels, started)

	result, err := s.run(ctx, adapter, account, levels, opts, syncScope{
		account:  account,
		platform: platform,
		runType:  runTypeOrDefault(opts.RunType),
		syncedAt: started,
	})
	result.RunID = runID
	metrics.ObserveSync(platform.String(), string(scope), started, err)
	s.completeLeadLog(ctx, logger, leadLog, result, err)

	if err != nil {
		logger.WithError(err).Error("Erro ao sincronizar conta")
		if markErr := s.tracker.MarkFailed(ctx, accountID, scope, err.Error()); markErr != nil {
			logger.WithError(markErr).Error("Erro ao registrar falha de sincronização")
		}
		return result, err
	}

	next, err := s.tracker.MarkCompleted(ctx, account, scope)
	if err != nil {
		return result, err
	}

	logger.WithFields(logrus.Fields{
		"rows":     result.Total(),
		"next_run": next.Format(time.RFC3339),
	}).Info("Sincronização da conta concluída")

	return result, nil
}

// startLeadLog abre o registro de execução quando o escopo inclui leads; falhas no registro
// não interrompem a sincronização.
func (s *Service) startLeadLog(ctx context.Context, logger *logrus.Entry, accountID string, levels []domain.Level, started time.Time) *domain.LeadSyncLog {
	if s.leadLogs == nil || !hasLevel(levels, domain.LevelLead) {
		return nil
	}

	log := domain.LeadSyncLog{
		ConnectedAccountID: accountID,
		Status:             domain.LeadSyncRunning,
		StartedAt:          started,
	}
	id, err := s.leadLogs.Create(ctx, log)
	if err != nil {
		logger.WithError(err).Warn("Erro ao registrar início da sincronização de leads")
		return nil
	}
	log.ID = id
	return &log
}

func (s *Service) completeLeadLog(ctx context.Context, logger *logrus.Entry, log *domain.LeadSyncLog, result domain.SyncResult, runErr error) {
	if log == nil {
		return
	}

	completed := s.now()
	log.CompletedAt = &completed
	log.LeadsFound = result.LeadsFound
	log.LeadsCreated = result.LeadsCreated
	log.Status = domain.LeadSyncSuccess
	if runErr != nil {
		msg := runErr.Error()
		log.Status = domain.LeadSyncError
		log.Error = &msg
	}

	if err := s.leadLogs.Complete(ctx, *log); err != nil {
		logger.WithError(err).Warn("Erro ao registrar fim da sincronização de leads")
	}
}

func hasLevel(levels []domain.Level, want domain.Level) bool {
	for _, level := range levels {
		if level == want {
			return true
		}
	}
	return false
}

func runTypeOrDefault(runType domain.SyncRunType) domain.SyncRunType {
	if runType == "" {
		return domain.SyncRunIncremental
	}
	return runType
}

// run busca os níveis em paralelo e, com todas as buscas concluídas, grava cada nível em paralelo
func (s *Service) run(ctx context.Context, adapter PlatformAdapter, account *domain.ConnectedAccount, levels []domain.Level, opts domain.SyncOptions, sc syncScope) (domain.SyncResult, error) {
	token, err := s.tokens.GetValidAccessToken(ctx, account.CredentialID)
	if err != nil {
		return domain.SyncResult{}, err
	}

	dateRange := domain.LastDays(sc.syncedAt, s.cfg.LookbackDays)
	if opts.DateRange != nil {
		dateRange = *opts.DateRange
	}

	fetched := make([][]domain.RawRow, len(levels))
	fetches := make([]func() error, 0, len(levels))
	for i, level := range levels {
		i, level := i, level
		fetches = append(fetches, func() error {
			rows, err := adapter.FetchRows(ctx, token, account.PlatformAccountID, level, dateRange)
			if err != nil {
				return err
			}
			fetched[i] = rows
			return nil
		})
	}
	if err := runConcurrently(fetches...); err != nil {
		return domain.SyncResult{}, err
	}

	var (
		result domain.SyncResult
		mu     sync.Mutex
	)
	upserts := make([]func() error, 0, len(levels))
	for i, level := range levels {
		rows, level := fetched[i], level
		upserts = append(upserts, func() error {
			partial, err := s.upsertLevel(ctx, sc, level, rows)
			mu.Lock()
			result.Add(partial)
			mu.Unlock()
			return err
		})
	}
	if err := runConcurrently(upserts...); err != nil {
		return result, err
	}

	if hasLevel(levels, domain.LevelLead) {
		result.LeadForms = s.syncLeadForms(ctx, adapter, token, sc)
	}

	return result, nil
}

// syncLeadForms grava os formulários de captação dos adaptadores que os expõem; uma falha
// aqui só gera aviso, os leads já gravados permanecem válidos.
func (s *Service) syncLeadForms(ctx context.Context, adapter PlatformAdapter, token string, sc syncScope) int {
	source, ok := adapter.(LeadFormSource)
	if !ok {
		return 0
	}

	logger := logrus.WithFields(logrus.Fields{
		"account_id": sc.account.ID,
		"platform":   sc.platform,
	})

	forms, err := source.FetchLeadForms(ctx, token, sc.account.PlatformAccountID)
	if err != nil {
		logger.WithError(err).Warn("Erro ao buscar formulários de leads")
		return 0
	}

	for i := range forms {
		forms[i].ConnectedAccountID = sc.account.ID
		if forms[i].AdvertiserID == "" {
			forms[i].AdvertiserID = sc.account.PlatformAccountID
		}
		forms[i].SyncedAt = sc.syncedAt
	}

	count, err := s.upserter.UpsertLeadForms(ctx, forms)
	if err != nil {
		logger.WithError(err).Warn("Erro ao gravar formulários de leads")
		return 0
	}
	metrics.AddRowsUpserted(sc.platform.String(), tableLeadForms, count)
	return count
}

// upsertLevel normaliza as linhas brutas de um nível e grava na tabela correspondente
func (s *Service) upsertLevel(ctx context.Context, sc syncScope, level domain.Level, rows []domain.RawRow) (domain.SyncResult, error) {
	accountID := sc.account.ID
	platform := sc.platform

	var (
		result domain.SyncResult
		count  int
		table  string
		err    error
	)

	switch level {
	case domain.LevelCampaign:
		table = tableCampaignsDaily
		var records []domain.CampaignDaily
		if records, err = normalizer.MapCampaigns(platform, rows); err != nil {
			return result, err
		}
		for i := range records {
			sc.stamp(&records[i].SyncMeta)
		}
		count, err = s.upserter.UpsertCampaigns(ctx, accountID, records)
		result.CampaignRows = count

	case domain.LevelAdSet:
		table = tableAdSetsDaily
		var records []domain.AdSetDaily
		if records, err = normalizer.MapAdSets(platform, rows); err != nil {
			return result, err
		}
		for i := range records {
			sc.stamp(&records[i].SyncMeta)
		}
		count, err = s.upserter.UpsertAdSets(ctx, accountID, records)
		result.AdSetRows = count

	case domain.LevelAd:
		table = tableAdsDaily
		var records []domain.AdDaily
		if records, err = normalizer.MapAds(platform, rows); err != nil {
			return result, err
		}
		for i := range records {
			sc.stamp(&records[i].SyncMeta)
		}
		count, err = s.upserter.UpsertAds(ctx, accountID, records)
		result.AdRows = count

	case domain.LevelSession:
		table = tableGa4Sessions
		var records []domain.Ga4Session
		if records, err = normalizer.MapSessions(platform, rows); err != nil {
			return result, err
		}
		for i := range records {
			sc.stamp(&records[i].SyncMeta)
		}
		count, err = s.upserter.UpsertSessions(ctx, accountID, records)
		result.SessionRows = count

	case domain.LevelLead:
		table = tableLeads
		var records []domain.Lead
		if records, err = normalizer.MapLeads(platform, rows); err != nil {
			return result, err
		}
		for i := range records {
			records[i].TenantID = sc.account.TenantID
			records[i].BrandID = sc.account.BrandID
			records[i].ConnectedAccountID = accountID
			if records[i].PlatformAccountID == "" {
				records[i].PlatformAccountID = sc.account.PlatformAccountID
			}
		}
		var stats domain.LeadUpsertStats
		stats, err = s.upserter.UpsertLeads(ctx, records)
		count = stats.Processed
		result.LeadRows = stats.Processed
		result.LeadsFound = len(records)
		result.LeadsCreated = stats.Created

	default:
		return result, fmt.Errorf("%w: %s", domain.ErrUnsupportedLevel, level)
	}

	metrics.AddRowsUpserted(platform.String(), table, count)
	return result, err
}

func (s *Service) SyncDue(ctx context.Context, platform domain.Platform, scope domain.Scope) ([]domain.AccountOutcome, error) {
	return s.syncMany(ctx, platform, scope, s.now(), s.cfg.DueLimit)
}

func (s *Service) SyncAll(ctx context.Context, platform domain.Platform, scope domain.Scope) ([]domain.AccountOutcome, error) {
	return s.syncMany(ctx, platform, scope, farFuture, s.cfg.AllLimit)
}

// syncMany dispara uma unidade independente por conta vencida; a falha de uma conta
// vira um AccountOutcome e nunca interrompe as demais.
func (s *Service) syncMany(ctx context.Context, platform domain.Platform, scope domain.Scope, now time.Time, limit int) ([]domain.AccountOutcome, error) {
	accountPlatform, accountType := dueFilterFor(platform)

	ids, err := s.accounts.ListDue(ctx, domain.DueFilter{
		Platform:    accountPlatform,
		AccountType: accountType,
		Scope:       scope,
		Now:         now,
		Limit:       limit,
	})
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		logrus.WithFields(logrus.Fields{
			"platform": platform,
			"scope":    scope,
		}).Debug("Nenhuma conta pendente de sincronização")
		return []domain.AccountOutcome{}, nil
	}

	maxConcurrent := s.cfg.MaxConcurrentJobs
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	semaphore := make(chan struct{}, maxConcurrent)

	outcomes := make([]domain.AccountOutcome, len(ids))
	var wg sync.WaitGroup

	for i, id := range ids {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(i int, accountID string) {
			defer wg.Done()
			defer func() { <-semaphore }()

			outcomes[i] = s.syncOutcome(ctx, platform, accountID, scope)
		}(i, id)
	}

	wg.Wait()

	failed := 0
	for _, outcome := range outcomes {
		if !outcome.OK {
			failed++
		}
	}
	logrus.WithFields(logrus.Fields{
		"platform": platform,
		"scope":    scope,
		"accounts": len(ids),
		"failed":   failed,
	}).Info("Passada de sincronização concluída")

	return outcomes, nil
}

func (s *Service) syncOutcome(ctx context.Context, platform domain.Platform, accountID string, scope domain.Scope) (outcome domain.AccountOutcome) {
	outcome.AccountID = accountID

	defer func() {
		if r := recover(); r != nil {
			logrus.WithField("account_id", accountID).Errorf("Panic ao sincronizar conta: %v", r)
			outcome.OK = false
			outcome.Error = fmt.Sprintf("panic: %v", r)
		}
	}()

	result, err := s.syncAccount(ctx, platform, accountID, scope, domain.SyncOptions{RunType: domain.SyncRunIncremental})
	outcome.Result = result
	if errors.Is(err, domain.ErrSyncInProgress) {
		outcome.OK = true
		return outcome
	}
	if err != nil {
		outcome.Error = err.Error()
		return outcome
	}
	outcome.OK = true
	return outcome
}

// runConcurrently executa as funções em paralelo e retorna o primeiro erro observado;
// um panic em uma das funções vira erro.
func runConcurrently(fns ...func() error) error {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	record := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	for _, fn := range fns {
		wg.Add(1)
		go func(fn func() error) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					record(errors.Errorf("panic: %v", r))
				}
			}()
			if err := fn(); err != nil {
				record(err)
			}
		}(fn)
	}

	wg.Wait()
	return firstErr
}
