package postgres

import (
	"context"
	"database/sql"
)

// Queryer é o subconjunto usado pelos repositórios; Connection e Tx o implementam
type Queryer interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (sql.Result, error)
	Query(ctx context.Context, sql string, args ...interface{}) (*sql.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) *sql.Row
}

// Tx expõe uma transação como Queryer, para que o mesmo código de escrita rode dentro
// ou fora de RunInTransaction
type Tx struct {
	*sql.Tx
}

func (t Tx) Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return t.Tx.ExecContext(ctx, query, args...)
}

func (t Tx) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return t.Tx.QueryContext(ctx, query, args...)
}

func (t Tx) QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return t.Tx.QueryRowContext(ctx, query, args...)
}

// InTransaction executa fn com um Queryer transacional; erro ou panic fazem rollback
func InTransaction(ctx context.Context, conn Conn, fn func(Queryer) error) error {
	return conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		return fn(Tx{Tx: tx})
	})
}
