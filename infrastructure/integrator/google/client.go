package google

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vfg2006/ad-sync-engine/infrastructure/integrator/apiclient"
	"github.com/vfg2006/ad-sync-engine/internal/config"
	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

const searchStreamOperation = "Google Ads searchStream"

var ErrMissingDeveloperToken = errors.New("GOOGLE_ADS_DEVELOPER_TOKEN is not set")

type Client interface {
	SearchStream(ctx context.Context, token, customerID, query string) ([]domain.RawRow, error)
}

type AdsClient struct {
	baseURL         string
	developerToken  string
	loginCustomerID string
	api             *apiclient.Client
}

func NewClient(cfg *config.Config) Client {
	return &AdsClient{
		baseURL:         strings.TrimRight(cfg.GoogleAds.URL, "/"),
		developerToken:  cfg.GoogleAds.DeveloperToken,
		loginCustomerID: normalizeCustomerID(cfg.GoogleAds.LoginCustomerID),
		api:             apiclient.New(domain.PlatformGoogle, cfg.App.HTTPTimeout, apiclient.NestedMessage),
	}
}

// SearchStream executa a consulta GAQL; a resposta é uma lista de lotes cujos results são concatenados
func (c *AdsClient) SearchStream(ctx context.Context, token, customerID, query string) ([]domain.RawRow, error) {
	if c.developerToken == "" {
		return nil, ErrMissingDeveloperToken
	}

	headers := map[string]string{
		"Authorization":   "Bearer " + token,
		"developer-token": c.developerToken,
	}
	if c.loginCustomerID != "" {
		headers["login-customer-id"] = c.loginCustomerID
	}

	endpoint := fmt.Sprintf("%s/customers/%s/googleAds:searchStream", c.baseURL, normalizeCustomerID(customerID))
	body, err := c.api.Post(ctx, endpoint, map[string]string{"query": query}, headers, searchStreamOperation)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.RawRow, 0)
	for _, chunk := range apiclient.DecodeList(body) {
		batch, ok := chunk.(map[string]any)
		if !ok {
			continue
		}
		rows = append(rows, apiclient.Rows(batch["results"])...)
	}

	return rows, nil
}

// normalizeCustomerID remove traços e o prefixo customers/
func normalizeCustomerID(id string) string {
	id = strings.TrimPrefix(strings.TrimSpace(id), "customers/")
	return strings.ReplaceAll(id, "-", "")
}
