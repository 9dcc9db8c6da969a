package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App                App                `mapstructure:",squash"`
	Server             Server             `mapstructure:",squash"`
	Database           Database           `mapstructure:",squash"`
	Auth               Auth               `mapstructure:",squash"`
	Meta               Meta               `mapstructure:",squash"`
	GoogleAds          GoogleAds          `mapstructure:",squash"`
	GoogleOAuth        GoogleOAuth        `mapstructure:",squash"`
	TikTok             TikTok             `mapstructure:",squash"`
	GA4                GA4                `mapstructure:",squash"`
	Sync               Sync               `mapstructure:",squash"`
	MetaCampaignSync   MetaCampaignSync   `mapstructure:",squash"`
	MetaLeadSync       MetaLeadSync       `mapstructure:",squash"`
	GoogleCampaignSync GoogleCampaignSync `mapstructure:",squash"`
	GA4SessionSync     GA4SessionSync     `mapstructure:",squash"`
	TikTokCampaignSync TikTokCampaignSync `mapstructure:",squash"`
	TikTokLeadSync     TikTokLeadSync     `mapstructure:",squash"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
	// MaxOpenConns limita o pool; zero mantém o padrão do database/sql
	MaxOpenConns int `mapstructure:"database_max_open_conns"`
}

type App struct {
	LogLevel    string        `mapstructure:"log_level"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
}

type Auth struct {
	Secret             string `mapstructure:"auth_secret"`
	TokenEncryptionKey string `mapstructure:"token_encryption_key"`
}

type Meta struct {
	BaseURL string `mapstructure:"meta_base_url"`
	Version string `mapstructure:"meta_version"`
	URL     string `mapstructure:"-"`
}

type GoogleAds struct {
	BaseURL         string `mapstructure:"google_ads_base_url"`
	Version         string `mapstructure:"google_ads_version"`
	DeveloperToken  string `mapstructure:"google_ads_developer_token"`
	LoginCustomerID string `mapstructure:"google_ads_login_customer_id"`
	URL             string `mapstructure:"-"`
}

type GoogleOAuth struct {
	TokenURL     string `mapstructure:"google_oauth_token_url"`
	ClientID     string `mapstructure:"google_client_id"`
	ClientSecret string `mapstructure:"google_client_secret"`
}

type TikTok struct {
	BaseURL      string   `mapstructure:"tiktok_base_url"`
	LeadsPageIDs []string `mapstructure:"tiktok_leads_page_ids"`
}

type GA4 struct {
	BaseURL string `mapstructure:"ga4_base_url"`
}

// Sync reúne os limites comuns a todos os jobs de sincronização
type Sync struct {
	DueLimit          int           `mapstructure:"sync_due_limit"`
	AllLimit          int           `mapstructure:"sync_all_limit"`
	MaxConcurrentJobs int           `mapstructure:"sync_max_concurrent_jobs"`
	LookbackDays      int           `mapstructure:"sync_lookback_days"`
	StaleAfter        time.Duration `mapstructure:"sync_stale_after"`
}

type MetaCampaignSync struct {
	CronSchedule string `mapstructure:"meta_campaign_sync_cron"`
	Enabled      bool   `mapstructure:"meta_campaign_sync_enabled"`
}

type MetaLeadSync struct {
	CronSchedule string `mapstructure:"meta_lead_sync_cron"`
	Enabled      bool   `mapstructure:"meta_lead_sync_enabled"`
}

type GoogleCampaignSync struct {
	CronSchedule string `mapstructure:"google_campaign_sync_cron"`
	Enabled      bool   `mapstructure:"google_campaign_sync_enabled"`
}

type GA4SessionSync struct {
	CronSchedule string `mapstructure:"ga4_session_sync_cron"`
	Enabled      bool   `mapstructure:"ga4_session_sync_enabled"`
}

type TikTokCampaignSync struct {
	CronSchedule string `mapstructure:"tiktok_campaign_sync_cron"`
	Enabled      bool   `mapstructure:"tiktok_campaign_sync_enabled"`
}

type TikTokLeadSync struct {
	CronSchedule string `mapstructure:"tiktok_lead_sync_cron"`
	Enabled      bool   `mapstructure:"tiktok_lead_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/ad_sync?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("HTTP_TIMEOUT", "60s")

	viper.SetDefault("AUTH_SECRET", "")
	viper.SetDefault("TOKEN_ENCRYPTION_KEY", "")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v21.0")

	viper.SetDefault("GOOGLE_ADS_BASE_URL", "https://googleads.googleapis.com")
	viper.SetDefault("GOOGLE_ADS_VERSION", "v18")
	viper.SetDefault("GOOGLE_ADS_DEVELOPER_TOKEN", "")
	viper.SetDefault("GOOGLE_ADS_LOGIN_CUSTOMER_ID", "")
	viper.SetDefault("GOOGLE_OAUTH_TOKEN_URL", "https://oauth2.googleapis.com/token")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")

	viper.SetDefault("TIKTOK_BASE_URL", "https://business-api.tiktok.com/open_api/v1.3")
	viper.SetDefault("TIKTOK_LEADS_PAGE_IDS", "")

	viper.SetDefault("GA4_BASE_URL", "https://analyticsdata.googleapis.com/v1beta")

	viper.SetDefault("SYNC_DUE_LIMIT", 20)          // contas por passada agendada
	viper.SetDefault("SYNC_ALL_LIMIT", 500)         // contas por passada completa
	viper.SetDefault("SYNC_MAX_CONCURRENT_JOBS", 3) // contas sincronizadas em paralelo
	viper.SetDefault("SYNC_LOOKBACK_DAYS", 30)      // janela padrão de datas
	viper.SetDefault("SYNC_STALE_AFTER", "1h")      // syncing mais antigo que isso pode ser retomado

	viper.SetDefault("META_CAMPAIGN_SYNC_CRON", "*/15 * * * *") // A cada 15 minutos
	viper.SetDefault("META_CAMPAIGN_SYNC_ENABLED", false)
	viper.SetDefault("META_LEAD_SYNC_CRON", "*/5 * * * *") // A cada 5 minutos
	viper.SetDefault("META_LEAD_SYNC_ENABLED", false)
	viper.SetDefault("GOOGLE_CAMPAIGN_SYNC_CRON", "*/15 * * * *")
	viper.SetDefault("GOOGLE_CAMPAIGN_SYNC_ENABLED", false)
	viper.SetDefault("GA4_SESSION_SYNC_CRON", "0 * * * *") // De hora em hora
	viper.SetDefault("GA4_SESSION_SYNC_ENABLED", false)
	viper.SetDefault("TIKTOK_CAMPAIGN_SYNC_CRON", "*/15 * * * *")
	viper.SetDefault("TIKTOK_CAMPAIGN_SYNC_ENABLED", false)
	viper.SetDefault("TIKTOK_LEAD_SYNC_CRON", "*/5 * * * *")
	viper.SetDefault("TIKTOK_LEAD_SYNC_ENABLED", false)
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.AutomaticEnv()

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Meta.URL = fmt.Sprintf("%s/%s", strings.TrimRight(config.Meta.BaseURL, "/"), config.Meta.Version)
	config.GoogleAds.URL = fmt.Sprintf("%s/%s", strings.TrimRight(config.GoogleAds.BaseURL, "/"), config.GoogleAds.Version)
	config.TikTok.LeadsPageIDs = compact(config.TikTok.LeadsPageIDs)
	config.Server.AllowedOrigins = compact(config.Server.AllowedOrigins)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado; usando apenas variáveis de ambiente")
}
