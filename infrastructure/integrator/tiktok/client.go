package tiktok

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ad-sync-engine/infrastructure/integrator/apiclient"
	"github.com/vfg2006/ad-sync-engine/internal/config"
	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

const (
	// MaxPages limita a paginação page/page_size de relatórios
	MaxPages = 20
	pageSize = 1000
	// formPageSize é o page_size usado na listagem de formulários de leads
	formPageSize = 20

	reportOperation = "TikTok report request"
	leadsOperation  = "TikTok leads request"
	formsOperation  = "TikTok lead forms request"
)

// ReportRequest descreve um relatório BASIC do endpoint /report/integrated/get/
type ReportRequest struct {
	AdvertiserID string
	DataLevel    string
	Dimensions   []string
	Metrics      []string
	StartDate    string
	EndDate      string
}

type Client interface {
	GetReport(ctx context.Context, token string, request ReportRequest) ([]domain.RawRow, error)
	GetPageLeads(ctx context.Context, token, pageID string) ([]domain.RawRow, error)
	GetLeadForms(ctx context.Context, token, advertiserID string) ([]domain.RawRow, error)
}

type BusinessClient struct {
	baseURL string
	api     *apiclient.Client
}

func NewClient(cfg *config.Config) Client {
	return &BusinessClient{
		baseURL: strings.TrimRight(cfg.TikTok.BaseURL, "/"),
		api:     apiclient.New(domain.PlatformTikTok, cfg.App.HTTPTimeout, apiclient.NestedMessage),
	}
}

// GetReport pagina até has_next_page=false, page >= total_page, página vazia ou MaxPages
func (c *BusinessClient) GetReport(ctx context.Context, token string, request ReportRequest) ([]domain.RawRow, error) {
	rows := make([]domain.RawRow, 0)

	for page := 1; page <= MaxPages; page++ {
		payload := map[string]any{
			"advertiser_id": request.AdvertiserID,
			"report_type":   "BASIC",
			"data_level":    request.DataLevel,
			"dimensions":    request.Dimensions,
			"metrics":       request.Metrics,
			"start_date":    request.StartDate,
			"end_date":      request.EndDate,
			"page":          page,
			"page_size":     pageSize,
		}

		body, err := c.api.Post(ctx, c.baseURL+"/report/integrated/get/", payload, c.headers(token), reportOperation)
		if err != nil {
			return nil, err
		}

		env := parseEnvelope(body)
		if env.Code != 0 {
			return nil, &domain.FetchError{Platform: domain.PlatformTikTok, Operation: reportOperation, Status: 200, Message: env.ErrorMessage}
		}

		rows = append(rows, env.Rows...)

		if env.HasMore != nil && !*env.HasMore {
			break
		}
		if env.CurrentPage != nil && env.TotalPage != nil && *env.CurrentPage >= *env.TotalPage {
			break
		}
		if len(env.Rows) == 0 {
			break
		}
		if page == MaxPages {
			logrus.WithFields(logrus.Fields{
				"account_id": request.AdvertiserID,
				"rows":       len(rows),
			}).Warn("Limite de páginas do TikTok atingido; dados restantes ignorados")
		}
	}

	return rows, nil
}

// GetPageLeads busca os leads de uma página de formulário instantâneo
func (c *BusinessClient) GetPageLeads(ctx context.Context, token, pageID string) ([]domain.RawRow, error) {
	endpoint := fmt.Sprintf("%s/pages/%s/leads/", c.baseURL, pageID)
	body, err := c.api.Get(ctx, endpoint, c.headers(token), leadsOperation)
	if err != nil {
		return nil, err
	}

	env := parseEnvelope(body)
	if env.Code != 0 {
		return nil, &domain.FetchError{Platform: domain.PlatformTikTok, Operation: leadsOperation, Status: 200, Message: env.ErrorMessage}
	}
	return env.Rows, nil
}

// GetLeadForms lista os formulários do anunciante, paginando até total_page ou MaxPages
func (c *BusinessClient) GetLeadForms(ctx context.Context, token, advertiserID string) ([]domain.RawRow, error) {
	forms := make([]domain.RawRow, 0)

	for page := 1; page <= MaxPages; page++ {
		query := url.Values{}
		query.Set("advertiser_id", advertiserID)
		query.Set("page", strconv.Itoa(page))
		query.Set("page_size", strconv.Itoa(formPageSize))

		body, err := c.api.Get(ctx, c.baseURL+"/leadgen/form/get/?"+query.Encode(), c.headers(token), formsOperation)
		if err != nil {
			return nil, err
		}

		env := parseEnvelope(body)
		if env.Code != 0 {
			return nil, &domain.FetchError{Platform: domain.PlatformTikTok, Operation: formsOperation, Status: 200, Message: env.ErrorMessage}
		}

		forms = append(forms, env.Rows...)

		if env.TotalPage == nil || int64(page) >= *env.TotalPage || len(env.Rows) == 0 {
			break
		}
	}

	return forms, nil
}

func (c *BusinessClient) headers(token string) map[string]string {
	return map[string]string{
		"Access-Token": token,
		"Content-Type": "application/json",
	}
}
