package google

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/vfg2006/ad-sync-engine/infrastructure/integrator/apiclient"
	"github.com/vfg2006/ad-sync-engine/internal/config"
	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

const (
	tokenRefreshOperation = "Token refresh"
	defaultTokenLifetime  = 3600 * time.Second
)

var ErrMissingOAuthClient = errors.New("GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET are not set")

// OAuthClient renova access tokens de credenciais Google (Ads e GA4) via refresh_token
type OAuthClient struct {
	tokenURL     string
	clientID     string
	clientSecret string
	api          *apiclient.Client
}

func NewOAuthClient(cfg *config.Config) *OAuthClient {
	return &OAuthClient{
		tokenURL:     cfg.GoogleOAuth.TokenURL,
		clientID:     cfg.GoogleOAuth.ClientID,
		clientSecret: cfg.GoogleOAuth.ClientSecret,
		api:          apiclient.New(domain.PlatformGoogle, cfg.App.HTTPTimeout, oauthErrorMessage),
	}
}

// Refresh troca o refresh token por um novo access token; expires_in ausente vale uma hora
func (c *OAuthClient) Refresh(ctx context.Context, refreshToken string) (string, time.Duration, error) {
	if c.clientID == "" || c.clientSecret == "" {
		return "", 0, ErrMissingOAuthClient
	}

	form := url.Values{
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"refresh_token": {refreshToken},
		"grant_type":    {"refresh_token"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, errors.Wrap(err, "build token refresh request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := c.api.Do(req, tokenRefreshOperation)
	if err != nil {
		return "", 0, err
	}

	payload := apiclient.Decode(body)
	accessToken, _ := payload["access_token"].(string)
	if accessToken == "" {
		return "", 0, errors.New("token refresh response without access_token")
	}

	lifetime := defaultTokenLifetime
	if n, ok := payload["expires_in"].(interface{ Int64() (int64, error) }); ok {
		if seconds, err := n.Int64(); err == nil && seconds > 0 {
			lifetime = time.Duration(seconds) * time.Second
		}
	}

	return accessToken, lifetime, nil
}

// oauthErrorMessage lê error_description ou error do corpo de erro do endpoint de token
func oauthErrorMessage(body []byte) string {
	payload := apiclient.Decode(body)
	if description, ok := payload["error_description"].(string); ok && description != "" {
		return description
	}
	message, _ := payload["error"].(string)
	return message
}
