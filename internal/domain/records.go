package domain

import "time"

type NormalizedStatus string

const (
	StatusActive  NormalizedStatus = "active"
	StatusPaused  NormalizedStatus = "paused"
	StatusDeleted NormalizedStatus = "deleted"
)

// DailyMetrics são as métricas comuns às tabelas diárias de campanha, conjunto e anúncio
type DailyMetrics struct {
	Spend                 float64
	Impressions           float64
	Clicks                float64
	Conversions           *float64
	Leads                 *float64
	Reach                 *float64
	Frequency             *float64
	UniqueClicks          *float64
	UniqueCtr             *float64
	VideoP25              *float64
	VideoP50              *float64
	VideoP75              *float64
	VideoP100             *float64
	CostPerLead           *float64
	CostPerConversion     *float64
	QualityRanking        *string
	EngagementRateRanking *string
	ConversionRateRanking *string
	Likes                 *float64
	Comments              *float64
	Shares                *float64
	Ctr                   *float64
	Cpc                   *float64
	Cpm                   *float64
}

// SyncMeta identifica a conta e a execução que produziram um registro
type SyncMeta struct {
	TenantID           string
	BrandID            *string
	ConnectedAccountID string
	SyncRunType        SyncRunType
	SourceUpdatedAt    *int64
	SyncedAt           time.Time
}

type CampaignDaily struct {
	ID                 string
	Platform           Platform
	PlatformAccountID  string
	Date               string
	CampaignExternalID string
	CampaignName       string
	CampaignStatus     NormalizedStatus
	Objective          *string
	CurrencyCode       *string
	VideoViews         *float64
	DailyMetrics
	SyncMeta
}

type AdSetDaily struct {
	ID                 string
	Platform           Platform
	PlatformAccountID  string
	Date               string
	CampaignExternalID string
	CampaignName       *string
	AdSetExternalID    string
	AdSetName          string
	AdSetStatus        NormalizedStatus
	OptimizationGoal   *string
	DailyMetrics
	SyncMeta
}

type AdDaily struct {
	ID                 string
	Platform           Platform
	PlatformAccountID  string
	Date               string
	CampaignExternalID string
	CampaignName       *string
	AdSetExternalID    string
	AdSetName          *string
	AdExternalID       string
	AdName             string
	AdStatus           NormalizedStatus
	ThumbnailURL       *string
	Headline           *string
	BodyText           *string
	PreviewLink        *string
	DailyMetrics
	SyncMeta
}

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusArchived  LeadStatus = "archived"
)

type Lead struct {
	ID                 string
	TenantID           string
	BrandID            *string
	ConnectedAccountID string
	SourcePlatform     Platform
	PlatformAccountID  string
	LeadExternalID     *string
	CampaignExternalID *string
	AdSetExternalID    *string
	AdExternalID       *string
	CampaignName       *string
	AdSetName          *string
	AdName             *string
	Name               *string
	Email              *string
	Phone              *string
	City               *string
	Country            *string
	Message            *string
	LeadStatus         LeadStatus
	CapturedAt         int64
	ImportedAt         int64
	UTMSource          *string
	UTMMedium          *string
	UTMCampaign        *string
	UTMContent         *string
	UTMTerm            *string
	LandingPageURL     *string
	ReferrerURL        *string
	Gclid              *string
	Fbclid             *string
	Ttclid             *string
	RawPayload         []byte
}

type Ga4Session struct {
	ID                       string
	GA4PropertyID            string
	SessionDate              string
	Source                   string
	Medium                   string
	Campaign                 string
	Content                  *string
	Term                     *string
	LandingPagePath          *string
	Sessions                 float64
	EngagedSessions          *float64
	Users                    *float64
	NewUsers                 *float64
	Conversions              *float64
	PurchaseRevenue          *float64
	AvgEngagementTimeSeconds *float64
	BounceRate               *float64
	SyncMeta
}

// Credential é a credencial criptografada de uma conta conectada
type Credential struct {
	ID                    string
	Platform              Platform
	EncryptedAccessToken  string
	EncryptedRefreshToken *string
	TokenExpiresAt        *time.Time
	UpdatedAt             time.Time
}

// ExistingLead é o recorte de um lead já gravado usado na deduplicação
type ExistingLead struct {
	ID         string
	LeadStatus LeadStatus
}
