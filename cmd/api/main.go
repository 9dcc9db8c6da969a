package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ad-sync-engine/infrastructure/database/postgres"
	"github.com/vfg2006/ad-sync-engine/infrastructure/integrator/ga4"
	"github.com/vfg2006/ad-sync-engine/infrastructure/integrator/google"
	"github.com/vfg2006/ad-sync-engine/infrastructure/integrator/meta"
	"github.com/vfg2006/ad-sync-engine/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ad-sync-engine/infrastructure/integrator/tiktok"
	"github.com/vfg2006/ad-sync-engine/infrastructure/repository"
	"github.com/vfg2006/ad-sync-engine/internal/api"
	"github.com/vfg2006/ad-sync-engine/internal/config"
	"github.com/vfg2006/ad-sync-engine/internal/domain"
	"github.com/vfg2006/ad-sync-engine/internal/scheduler"
	"github.com/vfg2006/ad-sync-engine/internal/usecases/authenticating"
	"github.com/vfg2006/ad-sync-engine/internal/usecases/notifying"
	"github.com/vfg2006/ad-sync-engine/internal/usecases/credentialing"
	"github.com/vfg2006/ad-sync-engine/internal/usecases/syncing"
	"github.com/vfg2006/ad-sync-engine/pkg/log"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	accountRepo := repository.NewConnectedAccountRepository(pgConn)
	credentialRepo := repository.NewCredentialRepository(pgConn)

	tokenCipher, err := credentialing.NewTokenCipher(cfg.Auth.TokenEncryptionKey)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar criptografia de tokens")
	}

	googleOAuth := google.NewOAuthClient(cfg)
	tokenProvider := credentialing.NewProvider(credentialRepo, tokenCipher, map[domain.Platform]credentialing.Refresher{
		domain.PlatformGoogle: googleOAuth,
	})

	upserter := syncing.NewUpserter(
		repository.NewCampaignDailyRepository(pgConn),
		repository.NewAdSetDailyRepository(pgConn),
		repository.NewAdDailyRepository(pgConn),
		repository.NewLeadRepository(pgConn),
		repository.NewGa4SessionRepository(pgConn),
		repository.NewLeadFormRepository(pgConn),
	)

	adapters := map[domain.Platform]syncing.PlatformAdapter{
		domain.PlatformMeta:   meta.New(metaclient.NewClient(cfg)),
		domain.PlatformGoogle: google.New(google.NewClient(cfg)),
		domain.PlatformTikTok: tiktok.New(tiktok.NewClient(cfg), cfg.TikTok.LeadsPageIDs),
		domain.PlatformGA4:    ga4.New(ga4.NewClient(cfg)),
	}

	syncService := syncing.NewService(
		cfg.Sync,
		accountRepo,
		syncing.NewTracker(accountRepo, cfg.Sync.StaleAfter),
		upserter,
		repository.NewLeadSyncLogRepository(pgConn),
		tokenProvider,
		adapters,
	)

	// Inicia os agendadores em background
	jobs := scheduler.NewJobs(cfg, syncService)
	if err := jobs.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar os agendadores de sincronização")
	} else {
		logrus.Info("Agendadores de sincronização iniciados com sucesso")
	}

	server, err := api.New(
		cfg,
		authenticating.NewService(cfg),
		syncService,
		jobs,
		notifying.NewService(repository.NewLeadNotificationRepository(pgConn)),
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	if log.IsDevelopment() {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
		return
	}

	logrus.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
