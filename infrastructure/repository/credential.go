package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/vfg2006/ad-sync-engine/infrastructure/database/postgres"
	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

const credentialsTable = "credentials"

//go:generate mockgen -source=credential.go -destination=mocks/credential.go -package=mocks
type CredentialRepository interface {
	GetByID(ctx context.Context, credentialID string) (*domain.Credential, error)
	UpdateAccessToken(ctx context.Context, credentialID, encryptedAccessToken string, expiresAt time.Time) error
}

type credentialRepository struct {
	conn *postgres.Connection
}

func NewCredentialRepository(conn *postgres.Connection) CredentialRepository {
	return &credentialRepository{
		conn: conn,
	}
}

func (r *credentialRepository) GetByID(ctx context.Context, credentialID string) (*domain.Credential, error) {
	query, args, err := squirrel.
		Select("id", "platform", "encrypted_access_token", "encrypted_refresh_token", "token_expires_at", "updated_at").
		From(credentialsTable).
		Where(squirrel.Eq{"id": credentialID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var (
		credential domain.Credential
		refresh    sql.NullString
		expiresAt  sql.NullTime
	)
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&credential.ID,
		&credential.Platform,
		&credential.EncryptedAccessToken,
		&refresh,
		&expiresAt,
		&credential.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapDBError(err)
	}

	credential.EncryptedRefreshToken = nullString(refresh)
	credential.TokenExpiresAt = nullTime(expiresAt)

	return &credential, nil
}

func (r *credentialRepository) UpdateAccessToken(ctx context.Context, credentialID, encryptedAccessToken string, expiresAt time.Time) error {
	query, args, err := squirrel.
		Update(credentialsTable).
		Set("encrypted_access_token", encryptedAccessToken).
		Set("token_expires_at", expiresAt).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": credentialID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return wrapDBError(err)
	}

	return nil
}
