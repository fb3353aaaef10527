package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
	AutoMigrate     bool
}

// AuthConfig describes the hosted auth provider. AccessSecret verifies the
// provider-issued access tokens locally.
type AuthConfig struct {
	URL          string
	AnonKey      string
	AccessSecret string
	Timeout      time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	UserTTL  time.Duration
}

type AssistantConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// BudgetColumns holds the external column labels of the PAAS table.
type BudgetColumns struct {
	SeqNo           string
	ProcurementCode string
	ServiceName     string
	OrgUnit         string
	RequestedAmount string
	RevisedAmount   string
	Justification   string
}

type DataConfig struct {
	BudgetTable     string
	BudgetColumns   BudgetColumns
	FallbackEnabled bool
	Locale          string
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Redis       RedisConfig
	Assistant   AssistantConfig
	Data        DataConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	v.SetDefault("DB_AUTO_MIGRATE", false)
	v.SetDefault("DATA_FALLBACK_ENABLED", true)

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host:           v.GetString("HTTP_HOST"),
			Port:           v.GetInt("HTTP_PORT"),
			AllowedOrigins: parseList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
			AutoMigrate:     v.GetBool("DB_AUTO_MIGRATE"),
		},
		Auth: AuthConfig{
			URL:          strings.TrimRight(v.GetString("AUTH_URL"), "/"),
			AnonKey:      v.GetString("AUTH_ANON_KEY"),
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
			Timeout:      v.GetDuration("AUTH_TIMEOUT"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			UserTTL:  v.GetDuration("SESSION_CACHE_TTL"),
		},
		Assistant: AssistantConfig{
			APIKey:  v.GetString("GEMINI_API_KEY"),
			BaseURL: strings.TrimRight(v.GetString("GEMINI_BASE_URL"), "/"),
			Model:   v.GetString("GEMINI_MODEL"),
			Timeout: v.GetDuration("ASSISTANT_TIMEOUT"),
		},
		Data: DataConfig{
			BudgetTable: v.GetString("BUDGET_TABLE"),
			BudgetColumns: BudgetColumns{
				SeqNo:           v.GetString("BUDGET_COLUMN_SEQ_NO"),
				ProcurementCode: v.GetString("BUDGET_COLUMN_PROCUREMENT_CODE"),
				ServiceName:     v.GetString("BUDGET_COLUMN_SERVICE_NAME"),
				OrgUnit:         v.GetString("BUDGET_COLUMN_ORG_UNIT"),
				RequestedAmount: v.GetString("BUDGET_COLUMN_REQUESTED_AMOUNT"),
				RevisedAmount:   v.GetString("BUDGET_COLUMN_REVISED_AMOUNT"),
				Justification:   v.GetString("BUDGET_COLUMN_JUSTIFICATION"),
			},
			FallbackEnabled: v.GetBool("DATA_FALLBACK_ENABLED"),
			Locale:          v.GetString("APP_LOCALE"),
		},
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if len(cfg.HTTP.AllowedOrigins) == 0 {
		cfg.HTTP.AllowedOrigins = []string{"http://localhost:5173"}
	}
	if cfg.Auth.Timeout == 0 {
		cfg.Auth.Timeout = 10 * time.Second
	}
	if cfg.Redis.UserTTL == 0 {
		cfg.Redis.UserTTL = 12 * time.Hour
	}
	if cfg.Assistant.BaseURL == "" {
		cfg.Assistant.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if cfg.Assistant.Model == "" {
		cfg.Assistant.Model = "gemini-2.5-flash"
	}
	if cfg.Assistant.Timeout == 0 {
		cfg.Assistant.Timeout = 30 * time.Second
	}
	if cfg.Data.BudgetTable == "" {
		cfg.Data.BudgetTable = "balance_paas_2026"
	}
	if cfg.Data.Locale == "" {
		cfg.Data.Locale = "es-MX"
	}

	cols := &cfg.Data.BudgetColumns
	defaults := DefaultBudgetColumns()
	setDefault(&cols.SeqNo, defaults.SeqNo)
	setDefault(&cols.ProcurementCode, defaults.ProcurementCode)
	setDefault(&cols.ServiceName, defaults.ServiceName)
	setDefault(&cols.OrgUnit, defaults.OrgUnit)
	setDefault(&cols.RequestedAmount, defaults.RequestedAmount)
	setDefault(&cols.RevisedAmount, defaults.RevisedAmount)
	setDefault(&cols.Justification, defaults.Justification)
}

// DefaultBudgetColumns returns the column labels used by the 2026 PAAS table.
func DefaultBudgetColumns() BudgetColumns {
	return BudgetColumns{
		SeqNo:           "No.",
		ProcurementCode: "Clave CUCoP",
		ServiceName:     "Nombre del Servicio",
		OrgUnit:         "Área",
		RequestedAmount: "Monto Solicitado",
		RevisedAmount:   "Monto Modificado",
		Justification:   "Justificación",
	}
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.URL == "" {
		return fmt.Errorf("AUTH_URL is required")
	}
	if cfg.Auth.AnonKey == "" {
		return fmt.Errorf("AUTH_ANON_KEY is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	return nil
}

func setDefault(target *string, value string) {
	if strings.TrimSpace(*target) == "" {
		*target = value
	}
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
