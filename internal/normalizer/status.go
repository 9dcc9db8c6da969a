package normalizer

import (
	"strings"

	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

var statusByPlatform = map[string]map[string]domain.NormalizedStatus{
	"meta": {
		"ACTIVE":   domain.StatusActive,
		"PAUSED":   domain.StatusPaused,
		"DELETED":  domain.StatusDeleted,
		"ARCHIVED": domain.StatusDeleted,
	},
	"google": {
		"ENABLED": domain.StatusActive,
		"PAUSED":  domain.StatusPaused,
		"REMOVED": domain.StatusDeleted,
	},
	"tiktok": {
		"STATUS_ENABLE":  domain.StatusActive,
		"STATUS_DISABLE": domain.StatusPaused,
		"STATUS_DELETE":  domain.StatusDeleted,
	},
}

// NormalizeStatus converte o status de uma plataforma para active, paused ou deleted.
// Valores fora da tabela caem na busca por palavra-chave e, por fim, em paused.
func NormalizeStatus(platform, status string) domain.NormalizedStatus {
	platformKey := strings.ToLower(strings.TrimSpace(platform))
	statusKey := strings.ToUpper(strings.TrimSpace(status))

	if mapped, ok := statusByPlatform[platformKey][statusKey]; ok {
		return mapped
	}

	fallbackKey := strings.ToLower(statusKey)
	switch {
	case containsAny(fallbackKey, "delete", "remove", "archive"):
		return domain.StatusDeleted
	case containsAny(fallbackKey, "pause", "disable"):
		return domain.StatusPaused
	case containsAny(fallbackKey, "active", "enable"):
		return domain.StatusActive
	}
	return domain.StatusPaused
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
