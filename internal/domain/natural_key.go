package domain

import "strings"

const keySeparator = "|"

func joinKey(parts ...string) string {
	return strings.Join(parts, keySeparator)
}

func CampaignKey(platformAccountID, campaignID, date string) string {
	return joinKey(platformAccountID, campaignID, date)
}

func AdSetKey(platformAccountID, campaignID, adSetID, date string) string {
	return joinKey(platformAccountID, campaignID, adSetID, date)
}

func AdKey(platformAccountID, campaignID, adSetID, adID, date string) string {
	return joinKey(platformAccountID, campaignID, adSetID, adID, date)
}

func LeadKey(platform Platform, leadExternalID string) string {
	return joinKey(platform.String(), leadExternalID)
}

func SessionKey(propertyID, source, medium, campaign, content, term, landingPath, date string) string {
	return joinKey(propertyID, source, medium, campaign, content, term, landingPath, date)
}

func (c CampaignDaily) NaturalKey() string {
	return CampaignKey(c.PlatformAccountID, c.CampaignExternalID, c.Date)
}

func (c CampaignDaily) RecordDate() string {
	return c.Date
}

// HasNaturalKey indica se a linha tem data e ids suficientes para ser gravada
func (c CampaignDaily) HasNaturalKey() bool {
	return c.Date != "" && c.CampaignExternalID != ""
}

func (a AdSetDaily) NaturalKey() string {
	return AdSetKey(a.PlatformAccountID, a.CampaignExternalID, a.AdSetExternalID, a.Date)
}

func (a AdSetDaily) RecordDate() string {
	return a.Date
}

func (a AdSetDaily) HasNaturalKey() bool {
	return a.Date != "" && a.AdSetExternalID != ""
}

func (a AdDaily) NaturalKey() string {
	return AdKey(a.PlatformAccountID, a.CampaignExternalID, a.AdSetExternalID, a.AdExternalID, a.Date)
}

func (a AdDaily) RecordDate() string {
	return a.Date
}

func (a AdDaily) HasNaturalKey() bool {
	return a.Date != "" && a.AdExternalID != ""
}

func (s Ga4Session) NaturalKey() string {
	return SessionKey(s.GA4PropertyID, s.Source, s.Medium, s.Campaign,
		deref(s.Content), deref(s.Term), deref(s.LandingPagePath), s.SessionDate)
}

func (s Ga4Session) RecordDate() string {
	return s.SessionDate
}

func (s Ga4Session) HasNaturalKey() bool {
	return s.SessionDate != "" && s.GA4PropertyID != ""
}

// NaturalKey de um lead só existe quando a plataforma informa um id externo
func (l Lead) NaturalKey() (string, bool) {
	if l.LeadExternalID == nil || *l.LeadExternalID == "" {
		return "", false
	}
	return LeadKey(l.SourcePlatform, *l.LeadExternalID), true
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
