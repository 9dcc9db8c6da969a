package credentialing

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ad-sync-engine/infrastructure/repository"
	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

// expiryBuffer antecipa a renovação de tokens que expiram em menos de um minuto
const expiryBuffer = 60 * time.Second

// Refresher troca um refresh token por um novo access token e sua validade
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (string, time.Duration, error)
}

type RefresherFunc func(ctx context.Context, refreshToken string) (string, time.Duration, error)

func (f RefresherFunc) Refresh(ctx context.Context, refreshToken string) (string, time.Duration, error) {
	return f(ctx, refreshToken)
}

// Provider entrega access tokens válidos, renovando e persistindo quando necessário
type Provider struct {
	credentials repository.CredentialRepository
	cipher      *TokenCipher
	refreshers  map[domain.Platform]Refresher
	now         func() time.Time
}

func NewProvider(credentials repository.CredentialRepository, cipher *TokenCipher, refreshers map[domain.Platform]Refresher) *Provider {
	if refreshers == nil {
		refreshers = map[domain.Platform]Refresher{}
	}
	return &Provider{
		credentials: credentials,
		cipher:      cipher,
		refreshers:  refreshers,
		now:         time.Now,
	}
}

func (p *Provider) GetValidAccessToken(ctx context.Context, credentialID string) (string, error) {
	credential, err := p.credentials.GetByID(ctx, credentialID)
	if err != nil {
		return "", err
	}
	if credential == nil {
		return "", &domain.AuthError{CredentialID: credentialID, Err: domain.ErrCredentialNotFound}
	}

	now := p.now()
	if credential.TokenExpiresAt == nil || credential.TokenExpiresAt.After(now.Add(expiryBuffer)) {
		token, err := p.cipher.Decrypt(credential.EncryptedAccessToken)
		if err != nil {
			return "", &domain.AuthError{CredentialID: credentialID, Err: err}
		}
		return token, nil
	}

	return p.refresh(ctx, credential, now)
}

func (p *Provider) refresh(ctx context.Context, credential *domain.Credential, now time.Time) (string, error) {
	refresher, ok := p.refreshers[credential.Platform]
	if !ok {
		return "", &domain.AuthError{CredentialID: credential.ID, Err: domain.ErrTokenExpired}
	}
	if credential.EncryptedRefreshToken == nil || *credential.EncryptedRefreshToken == "" {
		return "", &domain.AuthError{CredentialID: credential.ID, Err: domain.ErrMissingRefreshToken}
	}

	refreshToken, err := p.cipher.Decrypt(*credential.EncryptedRefreshToken)
	if err != nil {
		return "", &domain.AuthError{CredentialID: credential.ID, Err: err}
	}

	accessToken, lifetime, err := refresher.Refresh(ctx, refreshToken)
	if err != nil {
		return "", &domain.AuthError{CredentialID: credential.ID, Err: err}
	}

	encrypted, err := p.cipher.Encrypt(accessToken)
	if err != nil {
		return "", errors.Wrap(err, "encrypt refreshed token")
	}

	expiresAt := now.Add(lifetime)
	if err := p.credentials.UpdateAccessToken(ctx, credential.ID, encrypted, expiresAt); err != nil {
		return "", err
	}

	logrus.WithFields(logrus.Fields{
		"credential_id": credential.ID,
		"platform":      credential.Platform,
		"expires_at":    expiresAt,
	}).Info("Access token renovado")

	return accessToken, nil
}
