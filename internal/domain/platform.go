package domain

import "time"

type Platform string

const (
	PlatformMeta   Platform = "meta"
	PlatformGoogle Platform = "google"
	PlatformTikTok Platform = "tiktok"
	// PlatformGA4 não existe como plataforma de conta; contas GA4 são google com account_type ga4.
	PlatformGA4 Platform = "ga4"
)

func (p Platform) String() string {
	return string(p)
}

// Valid indica se a plataforma é uma das plataformas sincronizadas
func (p Platform) Valid() bool {
	switch p {
	case PlatformMeta, PlatformGoogle, PlatformTikTok, PlatformGA4:
		return true
	}
	return false
}

type AccountType string

const (
	AccountTypeGoogleAds AccountType = "google_ads"
	AccountTypeGA4       AccountType = "ga4"
)

// Level é o nível de recurso buscado em uma plataforma
type Level string

const (
	LevelCampaign Level = "campaign"
	LevelAdSet    Level = "ad_set"
	LevelAd       Level = "ad"
	LevelLead     Level = "lead"
	LevelSession  Level = "session"
)

// Scope é uma das duas facetas de sincronização agendadas de forma independente
type Scope string

const (
	ScopeCampaigns Scope = "campaigns"
	ScopeLeads     Scope = "leads"
)

func (s Scope) Valid() bool {
	return s == ScopeCampaigns || s == ScopeLeads
}

type SyncRunType string

const (
	SyncRunIncremental SyncRunType = "incremental"
	SyncRunBackfill    SyncRunType = "backfill"
)

// DateRange é um intervalo fechado de datas no formato YYYY-MM-DD
type DateRange struct {
	Start string
	End   string
}

// LastDays retorna o intervalo que termina em now e cobre days dias corridos
func LastDays(now time.Time, days int) DateRange {
	if days < 1 {
		days = 1
	}
	now = now.UTC()
	return DateRange{
		Start: now.AddDate(0, 0, -(days - 1)).Format(time.DateOnly),
		End:   now.Format(time.DateOnly),
	}
}

// RawRow é uma linha bruta retornada por uma plataforma, antes da normalização
type RawRow map[string]any
