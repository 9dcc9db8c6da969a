package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ad-sync-engine/infrastructure/database/postgres"
	"github.com/vfg2006/ad-sync-engine/infrastructure/migration"
	"github.com/vfg2006/ad-sync-engine/internal/config"
)

func setupLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logrus.Info("Iniciando script de migração...")
}

func main() {
	setupLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar configuração")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	startTime := time.Now()
	if err := migration.Apply(ctx, conn); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar schema")
	}

	logrus.WithField("duration", time.Since(startTime).String()).Info("Migração concluída")
}
