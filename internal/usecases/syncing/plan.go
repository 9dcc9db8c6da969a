package syncing

import (
	"fmt"

	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

type planKey struct {
	platform domain.Platform
	scope    domain.Scope
}

// levelsByScope lista os níveis buscados em cada execução de plataforma + escopo
var levelsByScope = map[planKey][]domain.Level{
	{domain.PlatformMeta, domain.ScopeCampaigns}:   {domain.LevelCampaign, domain.LevelAdSet, domain.LevelAd},
	{domain.PlatformMeta, domain.ScopeLeads}:       {domain.LevelLead},
	{domain.PlatformGoogle, domain.ScopeCampaigns}: {domain.LevelCampaign, domain.LevelAdSet, domain.LevelAd},
	{domain.PlatformTikTok, domain.ScopeCampaigns}: {domain.LevelCampaign, domain.LevelAdSet, domain.LevelAd},
	{domain.PlatformTikTok, domain.ScopeLeads}:     {domain.LevelLead},
	{domain.PlatformGA4, domain.ScopeCampaigns}:    {domain.LevelSession},
}

func levelsFor(platform domain.Platform, scope domain.Scope) ([]domain.Level, error) {
	levels, ok := levelsByScope[planKey{platform, scope}]
	if !ok {
		return nil, fmt.Errorf("%w: %s has no %s scope", domain.ErrUnsupportedLevel, platform, scope)
	}
	return levels, nil
}

// dueFilterFor traduz a plataforma de sincronização para o filtro de contas;
// GA4 e Google Ads compartilham a plataforma google e se separam pelo account_type.
func dueFilterFor(platform domain.Platform) (domain.Platform, *domain.AccountType) {
	switch platform {
	case domain.PlatformGoogle:
		t := domain.AccountTypeGoogleAds
		return domain.PlatformGoogle, &t
	case domain.PlatformGA4:
		t := domain.AccountTypeGA4
		return domain.PlatformGoogle, &t
	}
	return platform, nil
}
