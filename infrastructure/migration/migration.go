package migration

import (
	"context"
	_ "embed"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ad-sync-engine/infrastructure/database/postgres"
)

//go:embed schema.sql
var schema string

// Statements divide o schema em comandos individuais, descartando trechos vazios
func Statements() []string {
	parts := strings.Split(schema, ";")
	statements := make([]string, 0, len(parts))
	for _, part := range parts {
		if stmt := strings.TrimSpace(part); stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}

// Apply cria tabelas e índices em uma única transação; todos os comandos são idempotentes
func Apply(ctx context.Context, conn postgres.Conn) error {
	statements := Statements()

	return postgres.InTransaction(ctx, conn, func(q postgres.Queryer) error {
		for i, stmt := range statements {
			if _, err := q.Exec(ctx, stmt); err != nil {
				return errors.Wrapf(err, "statement %d/%d", i+1, len(statements))
			}
		}
		logrus.WithField("statements", len(statements)).Info("Schema aplicado com sucesso")
		return nil
	})
}
