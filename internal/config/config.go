package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig         `mapstructure:"app"`
	MySQL       MySQLConfig       `mapstructure:"mysql"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Idempotency IdempotencyConfig `mapstructure:"idempotency"`
	Log         LogConfig         `mapstructure:"log"`
	Principals  PrincipalsConfig  `mapstructure:"principals"`
	Events      EventsConfig      `mapstructure:"events"`
	Transfer    TransferConfig    `mapstructure:"transfer"`
}

type AppConfig struct {
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type MySQLConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	DB   string `mapstructure:"db"`
	User string `mapstructure:"user"`
	Pass string `mapstructure:"pass"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	DB       int    `mapstructure:"db"`
	Password string `mapstructure:"password"`
}

type IdempotencyConfig struct {
	TTLSeconds int `mapstructure:"ttl_seconds"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

// PrincipalsConfig seeds the four privileged slots at start-up.
type PrincipalsConfig struct {
	Owner      string `mapstructure:"owner"`
	Admin      string `mapstructure:"admin"`
	Manager    string `mapstructure:"manager"`
	TdrManager string `mapstructure:"tdr_manager"`
}

type EventsConfig struct {
	Stream     string `mapstructure:"stream"`
	IntervalMs int    `mapstructure:"interval_ms"`
	Batch      int    `mapstructure:"batch"`
	MaxLen     int64  `mapstructure:"max_len"`
}

type TransferConfig struct {
	RequireRegisteredBuyers bool `mapstructure:"require_registered_buyers"`
}

// Load reads defaults, an optional config.yaml and the environment, in that
// order of precedence from lowest to highest. Env keys are the upper-cased
// dotted keys with "_" separators, e.g. MYSQL_HOST or PRINCIPALS_TDR_MANAGER.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.shutdown_timeout", "15s")

	v.SetDefault("mysql.host", "mysql")
	v.SetDefault("mysql.port", "3306")
	v.SetDefault("mysql.db", "tdr")
	v.SetDefault("mysql.user", "tdr")
	v.SetDefault("mysql.pass", "tdr")

	v.SetDefault("redis.addr", "redis:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.password", "")

	v.SetDefault("idempotency.ttl_seconds", 300)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("principals.owner", "")
	v.SetDefault("principals.admin", "")
	v.SetDefault("principals.manager", "")
	v.SetDefault("principals.tdr_manager", "")

	v.SetDefault("events.stream", "tdr:events")
	v.SetDefault("events.interval_ms", 1000)
	v.SetDefault("events.batch", 100)
	v.SetDefault("events.max_len", 100000)

	v.SetDefault("transfer.require_registered_buyers", false)
}

func (c *Config) Validate() error {
	if c.MySQL.Host == "" || c.MySQL.Port == "" || c.MySQL.DB == "" || c.MySQL.User == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQL.Port); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQL.Port, err)
	}
	if c.App.Port == "" {
		return errors.New("missing APP_PORT")
	}
	if c.Redis.Addr == "" {
		return errors.New("missing REDIS_ADDR")
	}
	if c.Idempotency.TTLSeconds <= 0 {
		return fmt.Errorf("IDEMPOTENCY_TTL_SECONDS must be positive, got %d", c.Idempotency.TTLSeconds)
	}
	if c.Events.Stream == "" {
		return errors.New("missing EVENTS_STREAM")
	}
	if c.Events.Batch <= 0 || c.Events.IntervalMs <= 0 {
		return errors.New("EVENTS_BATCH and EVENTS_INTERVAL_MS must be positive")
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Log.Format)
	}
	return nil
}

func (c *Config) IdempotencyTTL() time.Duration {
	return time.Duration(c.Idempotency.TTLSeconds) * time.Second
}

func (c *Config) EventsInterval() time.Duration {
	return time.Duration(c.Events.IntervalMs) * time.Millisecond
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQL.Host, c.MySQL.Port) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQL.User, c.MySQL.Pass, c.mysqlAddr(), c.MySQL.DB)
}
