package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// devJWTSecret is only accepted outside production.
const devJWTSecret = "cocktail_bar_dev_secret"

type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig selects the storage backend. Driver is one of
// "sqlite", "postgres" or "memory".
type DatabaseConfig struct {
	Driver   string
	DSN      string
	LogLevel string
}

type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	CocktailTTL time.Duration
}

type SecurityConfig struct {
	JWTSecret          string
	AdminTTL           time.Duration
	ExternalTTL        time.Duration
	BcryptCost         int
	LoginRatePerSecond float64
	LoginBurst         int
}

type OrdersConfig struct {
	RequireKnownCocktails bool
}

type SeedConfig struct {
	Cocktails bool
}

type MetricsConfig struct {
	Enabled     bool
	RefreshSpec string
}

type AppConfig struct {
	Environment      string
	HTTP             HTTPConfig
	Database         DatabaseConfig
	Redis            RedisConfig
	Security         SecurityConfig
	Orders           OrdersConfig
	Seed             SeedConfig
	Metrics          MetricsConfig
	AllowCORSOrigins []string
}

func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads config.yaml (or the file at path when non-empty) and
// COCKTAILBAR_* environment variables on top of the defaults.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("COCKTAILBAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *AppConfig) validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres", "memory":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.Driver == "postgres" && c.Database.DSN == "" {
		return errors.New("database.dsn is required for postgres")
	}

	if c.Security.JWTSecret == "" {
		if c.IsProduction() {
			return errors.New("security.jwtsecret is required in production")
		}
		c.Security.JWTSecret = devJWTSecret
	}
	if c.Security.AdminTTL <= 0 || c.Security.ExternalTTL <= 0 {
		return errors.New("token ttl must be positive")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "15s")
	v.SetDefault("http.idletimeout", "60s")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "cocktail_bar.db")
	v.SetDefault("database.loglevel", "warn")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.cocktailttl", "5m")

	v.SetDefault("security.jwtsecret", "")
	v.SetDefault("security.adminttl", "1h")
	v.SetDefault("security.externalttl", "168h") // 7 days
	v.SetDefault("security.bcryptcost", 10)
	v.SetDefault("security.loginratepersecond", 1)
	v.SetDefault("security.loginburst", 10)

	v.SetDefault("orders.requireknowncocktails", false)
	v.SetDefault("seed.cocktails", true)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.refreshspec", "@every 30s")

	v.SetDefault("allowcorsorigins", []string{})
}
