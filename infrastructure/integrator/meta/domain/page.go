package metadomain

import (
	"github.com/vfg2006/ad-sync-engine/infrastructure/integrator/apiclient"
	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

// Page é uma página de resposta da Graph API com o cursor da próxima
type Page struct {
	Data []domain.RawRow
	Next string
}

func ParsePage(body []byte) Page {
	payload := apiclient.Decode(body)
	page := Page{Data: apiclient.Rows(payload["data"])}
	if paging, ok := payload["paging"].(map[string]any); ok {
		page.Next, _ = paging["next"].(string)
	}
	return page
}
