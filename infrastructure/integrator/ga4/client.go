package ga4

import (
	"context"
	"fmt"
	"strings"

	"github.com/vfg2006/ad-sync-engine/infrastructure/integrator/apiclient"
	"github.com/vfg2006/ad-sync-engine/internal/config"
	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

const runReportOperation = "GA4 runReport"

var reportDimensions = []string{
	"date",
	"sessionSource",
	"sessionMedium",
	"sessionCampaignName",
	"sessionContent",
	"sessionTerm",
	"landingPagePath",
}

var reportMetrics = []string{
	"sessions",
	"engagedSessions",
	"totalUsers",
	"newUsers",
	"conversions",
	"purchaseRevenue",
	"averageSessionDuration",
	"bounceRate",
}

type Client interface {
	RunReport(ctx context.Context, token, propertyID string, dateRange domain.DateRange) ([]domain.RawRow, error)
}

type DataClient struct {
	baseURL string
	api     *apiclient.Client
}

func NewClient(cfg *config.Config) *DataClient {
	return &DataClient{
		baseURL: strings.TrimRight(cfg.GA4.BaseURL, "/"),
		api:     apiclient.New(domain.PlatformGA4, cfg.App.HTTPTimeout, apiclient.NestedMessage),
	}
}

// RunReport executa um único relatório; sem intervalo informado usa os últimos 30 dias
func (c *DataClient) RunReport(ctx context.Context, token, propertyID string, dateRange domain.DateRange) ([]domain.RawRow, error) {
	start, end := "30daysAgo", "today"
	if dateRange.Start != "" && dateRange.End != "" {
		start, end = dateRange.Start, dateRange.End
	}

	payload := map[string]any{
		"dateRanges": []map[string]string{{"startDate": start, "endDate": end}},
		"dimensions": named(reportDimensions),
		"metrics":    named(reportMetrics),
	}

	propertyID = NormalizePropertyID(propertyID)
	endpoint := fmt.Sprintf("%s/properties/%s:runReport", c.baseURL, propertyID)
	body, err := c.api.Post(ctx, endpoint, payload, map[string]string{"Authorization": "Bearer " + token}, runReportOperation)
	if err != nil {
		return nil, err
	}

	return MapReportRows(apiclient.Decode(body), propertyID), nil
}

func NormalizePropertyID(propertyID string) string {
	return strings.TrimPrefix(strings.TrimSpace(propertyID), "properties/")
}

// MapReportRows associa posicionalmente os cabeçalhos de dimensão e métrica a cada linha
func MapReportRows(payload map[string]any, propertyID string) []domain.RawRow {
	dimensionHeaders := headerNames(payload["dimensionHeaders"])
	metricHeaders := headerNames(payload["metricHeaders"])

	list, _ := payload["rows"].([]any)
	rows := make([]domain.RawRow, 0, len(list))
	for _, item := range list {
		record, _ := item.(map[string]any)
		row := domain.RawRow{"ga4PropertyId": propertyID}
		assign(row, dimensionHeaders, record["dimensionValues"])
		assign(row, metricHeaders, record["metricValues"])
		rows = append(rows, row)
	}
	return rows
}

func assign(row domain.RawRow, headers []string, values any) {
	list, _ := values.([]any)
	for i, header := range headers {
		if i >= len(list) {
			row[header] = nil
			continue
		}
		value, _ := list[i].(map[string]any)
		row[header] = value["value"]
	}
}

func headerNames(value any) []string {
	list, _ := value.([]any)
	names := make([]string, 0, len(list))
	for _, item := range list {
		header, _ := item.(map[string]any)
		if name, ok := header["name"].(string); ok && name != "" {
			names = append(names, name)
		}
	}
	return names
}

func named(names []string) []map[string]string {
	out := make([]map[string]string, 0, len(names))
	for _, name := range names {
		out = append(out, map[string]string{"name": name})
	}
	return out
}
