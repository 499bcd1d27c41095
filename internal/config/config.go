package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config содержит конфигурацию сервиса
type Config struct {
	Port            int
	MaxPrincipal    float64
	MaxContribution float64
	MaxMonths       int
	MaxRate         float64
	RoundOutput     bool
	OTELEndpoint    string
	OTELServiceName string
	LogLevel        string
	LogFormat       string
	RedisAddr       string
	CacheTTL        time.Duration
	CacheMaxEntries int
	DatabaseURL     string
	RetirementAge   int
	ExpectedReturns ExpectedReturns
}

// ExpectedReturns ожидаемая годовая доходность классов активов в процентах
type ExpectedReturns struct {
	Equity float64
	Debt   float64
	Gold   float64
}

// LoadConfig загружает конфигурацию из .env и переменных окружения
func LoadConfig() (*Config, error) {
	// Загружаем .env файл, если он существует (игнорируем ошибку)
	_ = godotenv.Load()

	return build(newViper())
}

// LoadFromFile загружает конфигурацию из YAML файла; переменные окружения имеют приоритет
func LoadFromFile(path string) (*Config, error) {
	_ = godotenv.Load()

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return build(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8000)
	v.SetDefault("max_principal", 1e9)
	v.SetDefault("max_contribution", 1e8)
	v.SetDefault("max_months", 600)
	v.SetDefault("max_rate", 200)
	v.SetDefault("round_output", true)
	v.SetDefault("otel_endpoint", "")
	v.SetDefault("otel_service_name", "finlit-projection")
	v.SetDefault("log_level", "INFO")
	v.SetDefault("log_format", "json")
	v.SetDefault("redis_addr", "")
	v.SetDefault("cache_ttl", "10m")
	v.SetDefault("cache_max_entries", 10000)
	v.SetDefault("database_url", "")
	v.SetDefault("retirement_age", 60)
	v.SetDefault("returns.equity", 12.0)
	v.SetDefault("returns.debt", 7.0)
	v.SetDefault("returns.gold", 8.0)
}

func build(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:            v.GetInt("port"),
		MaxPrincipal:    v.GetFloat64("max_principal"),
		MaxContribution: v.GetFloat64("max_contribution"),
		MaxMonths:       v.GetInt("max_months"),
		MaxRate:         v.GetFloat64("max_rate"),
		RoundOutput:     v.GetBool("round_output"),
		OTELEndpoint:    v.GetString("otel_endpoint"),
		OTELServiceName: v.GetString("otel_service_name"),
		LogLevel:        v.GetString("log_level"),
		LogFormat:       v.GetString("log_format"),
		RedisAddr:       v.GetString("redis_addr"),
		CacheTTL:        v.GetDuration("cache_ttl"),
		CacheMaxEntries: v.GetInt("cache_max_entries"),
		DatabaseURL:     v.GetString("database_url"),
		RetirementAge:   v.GetInt("retirement_age"),
		ExpectedReturns: ExpectedReturns{
			Equity: v.GetFloat64("returns.equity"),
			Debt:   v.GetFloat64("returns.debt"),
			Gold:   v.GetFloat64("returns.gold"),
		},
	}

	if cfg.MaxMonths <= 0 {
		return nil, fmt.Errorf("max_months must be positive, got %d", cfg.MaxMonths)
	}
	if cfg.CacheMaxEntries <= 0 {
		return nil, fmt.Errorf("cache_max_entries must be positive, got %d", cfg.CacheMaxEntries)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.Port)
	}
	return cfg, nil
}
