package tiktok

import (
	"fmt"

	"github.com/vfg2006/ad-sync-engine/infrastructure/integrator/apiclient"
	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

// envelope é a resposta padrão {code, message, data} da Business API
type envelope struct {
	Code         int64
	ErrorMessage string
	Rows         []domain.RawRow
	CurrentPage  *int64
	TotalPage    *int64
	HasMore      *bool
}

func parseEnvelope(body []byte) envelope {
	payload := apiclient.Decode(body)

	env := envelope{}
	if code, ok := asInt(payload["code"]); ok {
		env.Code = code
	}
	if env.Code != 0 {
		env.ErrorMessage = firstString(payload, "message", "msg")
		if env.ErrorMessage == "" {
			env.ErrorMessage = fmt.Sprintf("TikTok API returned code %d", env.Code)
		}
		return env
	}

	data, _ := payload["data"].(map[string]any)
	for _, key := range []string{"list", "rows", "data", "form_list"} {
		if list, ok := data[key].([]any); ok {
			env.Rows = flatten(apiclient.Rows(list))
			break
		}
	}

	pageInfo, ok := data["page_info"].(map[string]any)
	if !ok {
		pageInfo, _ = data["pageInfo"].(map[string]any)
	}
	env.CurrentPage = firstInt(pageInfo, "page", "current_page")
	env.TotalPage = firstInt(pageInfo, "total_page", "totalPage")
	for _, key := range []string{"has_next_page", "hasMore"} {
		if b, ok := pageInfo[key].(bool); ok {
			env.HasMore = &b
			break
		}
	}

	return env
}

// flatten junta as chaves de dimensions e metrics no nível superior da linha
func flatten(rows []domain.RawRow) []domain.RawRow {
	for i, row := range rows {
		dimensions, hasDimensions := row["dimensions"].(map[string]any)
		metrics, hasMetrics := row["metrics"].(map[string]any)
		if !hasDimensions && !hasMetrics {
			continue
		}

		flat := domain.RawRow{}
		for k, v := range row {
			if k != "dimensions" && k != "metrics" {
				flat[k] = v
			}
		}
		for k, v := range dimensions {
			flat[k] = v
		}
		for k, v := range metrics {
			flat[k] = v
		}
		rows[i] = flat
	}
	return rows
}

func firstString(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func firstInt(m map[string]any, keys ...string) *int64 {
	for _, key := range keys {
		if n, ok := asInt(m[key]); ok {
			return &n
		}
	}
	return nil
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case interface{ Int64() (int64, error) }:
		i, err := n.Int64()
		return i, err == nil
	case float64:
		return int64(n), true
	}
	return 0, false
}
