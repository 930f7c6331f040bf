package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	Upstream     UpstreamConfig
	Resend       ResendConfig
	Pixel        PixelConfig
	Orders       OrdersConfig
	Catalog      CatalogConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = "sqlite"
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MARQEN_APP_ENV" required:"true"`
	Port         string `envconfig:"MARQEN_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MARQEN_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MARQEN_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"MARQEN_DB_DSN"`
	Driver string `envconfig:"MARQEN_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MARQEN_DB_HOST"`
	LegacyPort     int    `envconfig:"MARQEN_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MARQEN_DB_USER"`
	LegacyPassword string `envconfig:"MARQEN_DB_PASSWORD"`
	LegacyName     string `envconfig:"MARQEN_DB_NAME"`
	LegacySSLMode  string `envconfig:"MARQEN_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MARQEN_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MARQEN_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MARQEN_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MARQEN_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MARQEN_REDIS_URL" required:"true"`
	Address      string        `envconfig:"MARQEN_REDIS_ADDR"`
	Password     string        `envconfig:"MARQEN_REDIS_PASSWORD"`
	DB           int           `envconfig:"MARQEN_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MARQEN_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MARQEN_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MARQEN_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MARQEN_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MARQEN_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"MARQEN_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"MARQEN_AUTO_MIGRATE" default:"false"`
}

// UpstreamConfig points at the merchant backend REST API that owns
// product, order, and auth persistence.
type UpstreamConfig struct {
	BaseURL        string        `envconfig:"MARQEN_UPSTREAM_BASE_URL" required:"true"`
	Timeout        time.Duration `envconfig:"MARQEN_UPSTREAM_TIMEOUT" default:"10s"`
	BreakerName    string        `envconfig:"MARQEN_UPSTREAM_BREAKER_NAME" default:"storefront-api"`
	BreakerMaxFail uint32        `envconfig:"MARQEN_UPSTREAM_BREAKER_MAX_FAILURES" default:"5"`
	BreakerCooloff time.Duration `envconfig:"MARQEN_UPSTREAM_BREAKER_COOLOFF" default:"30s"`
}

type ResendConfig struct {
	APIKey     string `envconfig:"RESEND_API_KEY"`
	FromEmail  string `envconfig:"MARQEN_RESEND_FROM" default:"Marqen <onboarding@resend.dev>"`
	AdminEmail string `envconfig:"MARQEN_RESEND_ADMIN_EMAIL" default:"marqenbd@gmail.com"`
}

type PixelConfig struct {
	PixelID     string        `envconfig:"MARQEN_META_PIXEL_ID"`
	AccessToken string        `envconfig:"MARQEN_META_PIXEL_ACCESS_TOKEN"`
	BaseURL     string        `envconfig:"MARQEN_META_PIXEL_BASE_URL" default:"https://graph.facebook.com/v19.0"`
	DedupTTL    time.Duration `envconfig:"MARQEN_META_PIXEL_DEDUP_TTL" default:"60m"`
}

type OrdersConfig struct {
	SnapshotTTL time.Duration `envconfig:"MARQEN_ORDER_SNAPSHOT_TTL" default:"24h"`
}

type CatalogConfig struct {
	CacheTTL time.Duration `envconfig:"MARQEN_CATALOG_CACHE_TTL" default:"60s"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
