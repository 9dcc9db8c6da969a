package metaclient

import (
	"context"
	"net/url"
	"strings"

	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

var formLeadFields = []string{
	"id",
	"created_time",
	"field_data",
	"ad_id",
	"campaign_id",
	"adset_id",
	"ad_name",
	"campaign_name",
	"adset_name",
	"utm_source",
	"utm_medium",
	"utm_campaign",
	"utm_content",
	"utm_term",
	"landing_page_url",
	"referrer_url",
	"fbclid",
}

// GetLeadForms lista os formulários de cadastro da conta de anúncios
func (c *MetaClient) GetLeadForms(ctx context.Context, token, accountID string) ([]domain.RawRow, error) {
	params := url.Values{}
	params.Set("fields", "id,name")
	params.Set("limit", "200")

	return c.fetchPages(ctx, token, c.endpoint(adAccountPath(accountID, "leadgen_forms"), params))
}

// GetFormLeads lista os leads capturados por um formulário
func (c *MetaClient) GetFormLeads(ctx context.Context, token, formID string) ([]domain.RawRow, error) {
	params := url.Values{}
	params.Set("fields", strings.Join(formLeadFields, ","))
	params.Set("limit", "500")

	return c.fetchPages(ctx, token, c.endpoint(formID+"/leads", params))
}
