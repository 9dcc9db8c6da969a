package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// wrapDBError mantém o código do postgres na mensagem quando disponível
func wrapDBError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
	}
	return fmt.Errorf("failed to execute query: %w", err)
}
