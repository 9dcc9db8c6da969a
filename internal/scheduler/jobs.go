package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/vfg2006/ad-sync-engine/internal/config"
	"github.com/vfg2006/ad-sync-engine/internal/domain"
	"github.com/vfg2006/ad-sync-engine/internal/usecases/syncing"
)

var (
	ErrUnknownJob = errors.New("no sync job for platform and scope")
	ErrJobRunning = errors.New("sync job already running")
)

// Jobs agrupa os jobs de sincronização indexados por "plataforma/escopo"
type Jobs struct {
	ordered []*SyncJobService
	byKey   map[string]*SyncJobService
}

func JobKey(platform domain.Platform, scope domain.Scope) string {
	return fmt.Sprintf("%s/%s", platform, scope)
}

// NewJobs cria um job por combinação suportada de plataforma e escopo
func NewJobs(cfg *config.Config, syncer syncing.Syncer) *Jobs {
	configs := []SyncJobConfig{
		{
			Name:         "meta-campaigns",
			Platform:     domain.PlatformMeta,
			Scope:        domain.ScopeCampaigns,
			CronSchedule: cfg.MetaCampaignSync.CronSchedule,
			SyncEnabled:  cfg.MetaCampaignSync.Enabled,
		},
		{
			Name:         "meta-leads",
			Platform:     domain.PlatformMeta,
			Scope:        domain.ScopeLeads,
			CronSchedule: cfg.MetaLeadSync.CronSchedule,
			SyncEnabled:  cfg.MetaLeadSync.Enabled,
		},
		{
			Name:         "google-campaigns",
			Platform:     domain.PlatformGoogle,
			Scope:        domain.ScopeCampaigns,
			CronSchedule: cfg.GoogleCampaignSync.CronSchedule,
			SyncEnabled:  cfg.GoogleCampaignSync.Enabled,
		},
		{
			Name:         "ga4-sessions",
			Platform:     domain.PlatformGA4,
			Scope:        domain.ScopeCampaigns,
			CronSchedule: cfg.GA4SessionSync.CronSchedule,
			SyncEnabled:  cfg.GA4SessionSync.Enabled,
		},
		{
			Name:         "tiktok-campaigns",
			Platform:     domain.PlatformTikTok,
			Scope:        domain.ScopeCampaigns,
			CronSchedule: cfg.TikTokCampaignSync.CronSchedule,
			SyncEnabled:  cfg.TikTokCampaignSync.Enabled,
		},
		{
			Name:         "tiktok-leads",
			Platform:     domain.PlatformTikTok,
			Scope:        domain.ScopeLeads,
			CronSchedule: cfg.TikTokLeadSync.CronSchedule,
			SyncEnabled:  cfg.TikTokLeadSync.Enabled,
		},
	}

	jobs := &Jobs{byKey: make(map[string]*SyncJobService, len(configs))}
	for _, jobCfg := range configs {
		job := NewSyncJobService(jobCfg, syncer)
		jobs.ordered = append(jobs.ordered, job)
		jobs.byKey[JobKey(jobCfg.Platform, jobCfg.Scope)] = job
	}
	return jobs
}

// Start agenda todos os jobs habilitados; o primeiro erro interrompe a inicialização
func (j *Jobs) Start(ctx context.Context) error {
	for _, job := range j.ordered {
		if err := job.Start(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (j *Jobs) Get(platform domain.Platform, scope domain.Scope) (*SyncJobService, bool) {
	job, ok := j.byKey[JobKey(platform, scope)]
	return job, ok
}

// Trigger dispara manualmente o job da plataforma e escopo
func (j *Jobs) Trigger(platform domain.Platform, scope domain.Scope, all bool) error {
	job, ok := j.Get(platform, scope)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownJob, JobKey(platform, scope))
	}
	if !job.TriggerManualSync(all) {
		return ErrJobRunning
	}
	return nil
}

// Status retorna o status de cada job indexado pelo nome
func (j *Jobs) Status() map[string]any {
	status := make(map[string]any, len(j.ordered))
	for _, job := range j.ordered {
		status[job.config.Name] = job.GetStatus()
	}
	return status
}
