package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ad-sync-engine/internal/domain"
	"github.com/vfg2006/ad-sync-engine/internal/usecases/syncing"
)

// SyncJobConfig representa a configuração de um job de sincronização (plataforma + escopo)
type SyncJobConfig struct {
	Name         string
	Platform     domain.Platform
	Scope        domain.Scope
	CronSchedule string
	SyncEnabled  bool
}

// SyncJobService agenda e executa a sincronização das contas vencidas de uma plataforma
type SyncJobService struct {
	scheduler           *gocron.Scheduler
	config              SyncJobConfig
	syncer              syncing.Syncer
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSucceeded       int
	lastFailed          int
	lastError           string
}

func NewSyncJobService(cfg SyncJobConfig, syncer syncing.Syncer) *SyncJobService {
	logrus.WithFields(logrus.Fields{
		"job":           cfg.Name,
		"cron_schedule": cfg.CronSchedule,
		"sync_enabled":  cfg.SyncEnabled,
	}).Info("Configuração do job de sincronização carregada")

	return &SyncJobService{
		scheduler: gocron.NewScheduler(time.UTC),
		config:    cfg,
		syncer:    syncer,
	}
}

// Start agenda o job; jobs desabilitados continuam disponíveis para execução manual
func (s *SyncJobService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.WithField("job", s.config.Name).Info("Job de sincronização desabilitado por configuração")
		return nil
	}

	logrus.WithFields(logrus.Fields{
		"job":  s.config.Name,
		"cron": s.config.CronSchedule,
	}).Info("Iniciando agendador de sincronização")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runSync(ctx, false)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar job %s: %w", s.config.Name, err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.WithField("job", s.config.Name).Info("Parando agendador de sincronização")
		s.scheduler.Stop()
	}()

	return nil
}

// tryStart marca o job como em execução; retorna false se já havia uma execução em andamento
func (s *SyncJobService) tryStart() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	return true
}

func (s *SyncJobService) runSync(ctx context.Context, all bool) {
	if !s.tryStart() {
		logrus.WithField("job", s.config.Name).Info("Sincronização já em andamento, ignorando")
		return
	}
	s.execute(ctx, all)
}

func (s *SyncJobService) execute(ctx context.Context, all bool) {
	logger := logrus.WithFields(logrus.Fields{
		"job":      s.config.Name,
		"platform": s.config.Platform,
		"scope":    s.config.Scope,
		"all":      all,
	})
	logger.Info("Iniciando sincronização de contas")

	var (
		outcomes []domain.AccountOutcome
		err      error
	)
	if all {
		outcomes, err = s.syncer.SyncAll(ctx, s.config.Platform, s.config.Scope)
	} else {
		outcomes, err = s.syncer.SyncDue(ctx, s.config.Platform, s.config.Scope)
	}

	succeeded, failed := 0, 0
	for _, outcome := range outcomes {
		if outcome.OK {
			succeeded++
		} else {
			failed++
		}
	}

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.lastSucceeded = succeeded
	s.lastFailed = failed
	s.lastError = ""
	if err != nil {
		s.lastError = err.Error()
	}
	duration := s.lastSyncCompletedAt.Sub(s.lastSyncStartedAt)
	s.syncMutex.Unlock()

	if err != nil {
		logger.WithError(err).Error("Erro ao listar contas para sincronização")
		return
	}

	logger.WithFields(logrus.Fields{
		"duration":  duration.String(),
		"accounts":  len(outcomes),
		"succeeded": succeeded,
		"failed":    failed,
	}).Info("Sincronização de contas concluída")
}

// TriggerManualSync dispara a sincronização em background; all=true ignora o agendamento das contas
func (s *SyncJobService) TriggerManualSync(all bool) bool {
	if !s.tryStart() {
		logrus.WithField("job", s.config.Name).Info("Sincronização já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.WithField("job", s.config.Name).Info("Iniciando sincronização manual")
	go s.execute(context.Background(), all)
	return true
}

// GetStatus retorna o status atual do job
func (s *SyncJobService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"platform":               s.config.Platform,
		"scope":                  s.config.Scope,
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_succeeded":    s.lastSucceeded,
		"last_sync_failed":       s.lastFailed,
		"last_sync_error":        s.lastError,
	}
}
