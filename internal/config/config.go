package config

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type AppConfig struct {
	API       *APIConfig
	Gin       *GinConfig
	Postgres  *PostgresConfig
	Raffle    *RaffleConfig
	Redis     *RedisConfig
	Kafka     *KafkaConfig
	RateLimit *RateLimitConfig
}

type APIConfig struct {
	Environment        string
	BaseURL            string
	Port               string
	AllowedCORSDomains []string
	JWTSigningKey      string
	AdminTokenTTL      time.Duration
	// TrustedProxies may set X-Forwarded-For. Empty means the client IP is
	// always the connection's remote address.
	TrustedProxies []string
}

type GinConfig struct {
	Mode string
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DB       string
	SSLMode  string
}

// RaffleConfig scopes every registry operation to one event.
type RaffleConfig struct {
	EventID            string
	Title              string
	TotalNumbers       int
	AdminPassword      string
	PixKey             string
	PixValue           int
	SeedOnStart        bool
	WhatsAppRecipients []WhatsAppRecipient
}

type WhatsAppRecipient struct {
	Label string `mapstructure:"label"`
	Phone string `mapstructure:"phone"`
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// RateLimitConfig holds the claim limit read at startup. The limit can be
// changed at runtime through SetClaimLimit; readers use ClaimLimit.
type RateLimitConfig struct {
	ClaimsPerMinute int

	live atomic.Pointer[int]
}

func (c *RateLimitConfig) ClaimLimit() int {
	if n := c.live.Load(); n != nil {
		return *n
	}
	return c.ClaimsPerMinute
}

func (c *RateLimitConfig) SetClaimLimit(n int) {
	c.live.Store(&n)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.admin_token_ttl", "12h")
	v.SetDefault("gin.mode", "debug")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("raffle.total_numbers", 100)
	v.SetDefault("raffle.seed_on_start", true)
	v.SetDefault("kafka.topic", "raffle.numbers")
	v.SetDefault("rate_limit.claims_per_minute", 20)
}

// Load reads the YAML file at path and lets environment variables override any key,
// e.g. RAFFLE_ADMIN_PASSWORD overrides raffle.admin_password.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	conf, err := fromViper(v)
	if err != nil {
		return nil, err
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		conf.applyLiveChanges(v)
		zap.L().Info("config file changed",
			zap.String("file", e.Name),
			zap.String("op", e.Op.String()),
			zap.Int("claims_per_minute", conf.RateLimit.ClaimLimit()),
		)
	})
	v.WatchConfig()

	return conf, nil
}

// applyLiveChanges copies the keys that are safe to change without a restart.
// Everything else is read once by Load.
func (c *AppConfig) applyLiveChanges(v *viper.Viper) {
	limit := v.GetInt("rate_limit.claims_per_minute")
	if limit < 0 {
		zap.L().Warn("ignoring negative rate_limit.claims_per_minute", zap.Int("value", limit))
		return
	}
	c.RateLimit.SetClaimLimit(limit)
}

func fromViper(v *viper.Viper) (*AppConfig, error) {
	var recipients []WhatsAppRecipient
	if err := v.UnmarshalKey("raffle.whatsapp_recipients", &recipients); err != nil {
		return nil, fmt.Errorf("v.UnmarshalKey(raffle.whatsapp_recipients) -> %w", err)
	}

	conf := &AppConfig{
		API: &APIConfig{
			Environment:        v.GetString("api.environment"),
			BaseURL:            v.GetString("api.base_url"),
			Port:               v.GetString("api.port"),
			AllowedCORSDomains: splitList(v.GetStringSlice("api.allowed_cors_domains")),
			JWTSigningKey:      v.GetString("api.jwt_signing_key"),
			AdminTokenTTL:      v.GetDuration("api.admin_token_ttl"),
			TrustedProxies:     splitList(v.GetStringSlice("api.trusted_proxies")),
		},
		Gin: &GinConfig{
			Mode: v.GetString("gin.mode"),
		},
		Postgres: &PostgresConfig{
			Host:     v.GetString("postgres.host"),
			Port:     v.GetString("postgres.port"),
			User:     v.GetString("postgres.user"),
			Password: v.GetString("postgres.password"),
			DB:       v.GetString("postgres.db"),
			SSLMode:  v.GetString("postgres.sslmode"),
		},
		Raffle: &RaffleConfig{
			EventID:            v.GetString("raffle.event_id"),
			Title:              v.GetString("raffle.title"),
			TotalNumbers:       v.GetInt("raffle.total_numbers"),
			AdminPassword:      v.GetString("raffle.admin_password"),
			PixKey:             v.GetString("raffle.pix_key"),
			PixValue:           v.GetInt("raffle.pix_value"),
			SeedOnStart:        v.GetBool("raffle.seed_on_start"),
			WhatsAppRecipients: recipients,
		},
		Redis: &RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Kafka: &KafkaConfig{
			Brokers: splitList(v.GetStringSlice("kafka.brokers")),
			Topic:   v.GetString("kafka.topic"),
		},
		RateLimit: &RateLimitConfig{
			ClaimsPerMinute: v.GetInt("rate_limit.claims_per_minute"),
		},
	}

	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("conf.Validate -> %w", err)
	}

	return conf, nil
}

func (c *AppConfig) Validate() error {
	if err := validation.ValidateStruct(c.API,
		validation.Field(&c.API.Port, validation.Required),
		validation.Field(&c.API.JWTSigningKey, validation.Required, validation.Length(16, 0)),
		validation.Field(&c.API.AdminTokenTTL, validation.Required),
	); err != nil {
		return fmt.Errorf("api: %w", err)
	}

	if err := validation.ValidateStruct(c.Raffle,
		validation.Field(&c.Raffle.EventID, validation.Required),
		validation.Field(&c.Raffle.AdminPassword, validation.Required),
		validation.Field(&c.Raffle.TotalNumbers, validation.Required, validation.Min(1)),
	); err != nil {
		return fmt.Errorf("raffle: %w", err)
	}

	if err := validation.ValidateStruct(c.RateLimit,
		validation.Field(&c.RateLimit.ClaimsPerMinute, validation.Min(0)),
	); err != nil {
		return fmt.Errorf("rate_limit: %w", err)
	}

	return nil
}

// splitList accepts both YAML lists and comma separated env values.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}

	return out
}
