package metaclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ad-sync-engine/infrastructure/integrator/apiclient"
	metadomain "github.com/vfg2006/ad-sync-engine/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ad-sync-engine/internal/config"
	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

// MaxPages limita a perseguição de paging.next por recurso
const MaxPages = 10

const requestOperation = "Meta API request"

//go:generate mockgen -source=client.go -destination=../mocks/client.go -package=mocks
type Client interface {
	GetInsights(ctx context.Context, token, accountID string, level InsightLevel, dateRange domain.DateRange) ([]domain.RawRow, error)
	GetLeadForms(ctx context.Context, token, accountID string) ([]domain.RawRow, error)
	GetFormLeads(ctx context.Context, token, formID string) ([]domain.RawRow, error)
}

type MetaClient struct {
	baseURL string
	api     *apiclient.Client
}

func NewClient(cfg *config.Config) Client {
	api := apiclient.New(domain.PlatformMeta, cfg.App.HTTPTimeout, metadomain.ErrorMessage)
	api.Classify = classifyError

	return &MetaClient{
		baseURL: strings.TrimRight(cfg.Meta.URL, "/"),
		api:     api,
	}
}

// fetchPages segue paging.next até a última página ou até MaxPages
func (c *MetaClient) fetchPages(ctx context.Context, token string, initialURL string) ([]domain.RawRow, error) {
	rows := make([]domain.RawRow, 0)
	nextURL := initialURL

	for pages := 0; nextURL != "" && pages < MaxPages; pages++ {
		pageURL, err := url.Parse(nextURL)
		if err != nil {
			return nil, fmt.Errorf("invalid Meta paging url: %w", err)
		}
		query := pageURL.Query()
		query.Set("access_token", token)
		pageURL.RawQuery = query.Encode()

		body, err := c.api.Get(ctx, pageURL.String(), map[string]string{"Authorization": "Bearer " + token}, requestOperation)
		if err != nil {
			return nil, err
		}

		page := metadomain.ParsePage(body)
		rows = append(rows, page.Data...)
		nextURL = page.Next
	}

	if nextURL != "" {
		logrus.WithField("rows", len(rows)).Warn("Limite de páginas do Meta atingido; dados restantes ignorados")
	}

	return rows, nil
}

// classifyError converte erros de token expirado em AuthError
func classifyError(fetchErr *domain.FetchError, body []byte) error {
	if details := metadomain.ParseError(body); details != nil && details.IsTokenExpired() {
		return &domain.AuthError{Err: fetchErr}
	}
	return fetchErr
}

func (c *MetaClient) endpoint(path string, params url.Values) string {
	return fmt.Sprintf("%s/%s?%s", c.baseURL, strings.TrimLeft(path, "/"), params.Encode())
}
