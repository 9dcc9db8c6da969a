package normalizer

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/vfg2006/ad-sync-engine/internal/domain"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

var campaignMappers = map[domain.Platform]func(any) domain.CampaignDaily{
	domain.PlatformMeta:   MapMetaCampaign,
	domain.PlatformGoogle: MapGoogleCampaign,
	domain.PlatformTikTok: MapTikTokCampaign,
}

var adSetMappers = map[domain.Platform]func(any) domain.AdSetDaily{
	domain.PlatformMeta:   MapMetaAdSet,
	domain.PlatformGoogle: MapGoogleAdGroup,
	domain.PlatformTikTok: MapTikTokAdGroup,
}

var adMappers = map[domain.Platform]func(any) domain.AdDaily{
	domain.PlatformMeta:   MapMetaAd,
	domain.PlatformGoogle: MapGoogleAd,
	domain.PlatformTikTok: MapTikTokAd,
}

var leadMappers = map[domain.Platform]func(any) domain.Lead{
	domain.PlatformMeta:   MapMetaLead,
	domain.PlatformTikTok: MapTikTokLead,
}

func unsupported(platform domain.Platform, level domain.Level) error {
	return fmt.Errorf("%w: %s/%s", domain.ErrUnsupportedLevel, platform, level)
}

// MapCampaigns normaliza linhas brutas de campanha da plataforma
func MapCampaigns(platform domain.Platform, rows []domain.RawRow) ([]domain.CampaignDaily, error) {
	mapper, ok := campaignMappers[platform]
	if !ok {
		return nil, unsupported(platform, domain.LevelCampaign)
	}

	out := make([]domain.CampaignDaily, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapper(row))
	}
	return out, nil
}

func MapAdSets(platform domain.Platform, rows []domain.RawRow) ([]domain.AdSetDaily, error) {
	mapper, ok := adSetMappers[platform]
	if !ok {
		return nil, unsupported(platform, domain.LevelAdSet)
	}

	out := make([]domain.AdSetDaily, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapper(row))
	}
	return out, nil
}

func MapAds(platform domain.Platform, rows []domain.RawRow) ([]domain.AdDaily, error) {
	mapper, ok := adMappers[platform]
	if !ok {
		return nil, unsupported(platform, domain.LevelAd)
	}

	out := make([]domain.AdDaily, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapper(row))
	}
	return out, nil
}

func MapLeads(platform domain.Platform, rows []domain.RawRow) ([]domain.Lead, error) {
	mapper, ok := leadMappers[platform]
	if !ok {
		return nil, unsupported(platform, domain.LevelLead)
	}

	out := make([]domain.Lead, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapper(row))
	}
	return out, nil
}

func MapSessions(platform domain.Platform, rows []domain.RawRow) ([]domain.Ga4Session, error) {
	if platform != domain.PlatformGA4 {
		return nil, unsupported(platform, domain.LevelSession)
	}

	out := make([]domain.Ga4Session, 0, len(rows))
	for _, row := range rows {
		out = append(out, MapGA4Session(row))
	}
	return out, nil
}

// rawPayload serializa a linha original para auditoria; falhas viram payload vazio
func rawPayload(raw any) []byte {
	if raw == nil {
		return nil
	}
	data, err := jsonAPI.Marshal(raw)
	if err != nil {
		return nil
	}
	return data
}
