package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultAddr          = ":8080"
	defaultDatabaseURL   = "eventhire.db"
	defaultNumLocations  = 8
	defaultWarnThreshold = 3
	defaultExchange      = "eventhire.events"
)

type Config struct {
	AppEnv   string         `yaml:"app_env"`
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Calendar CalendarConfig `yaml:"calendar"`
	Logging  LoggingConfig  `yaml:"logging"`
	Broker   BrokerConfig   `yaml:"broker"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL         string `yaml:"url"`
	AutoMigrate bool   `yaml:"auto_migrate"`
}

// CalendarConfig tunes slot allocation and availability badges.
type CalendarConfig struct {
	NumLocations  int `yaml:"num_locations"`
	WarnThreshold int `yaml:"warn_threshold"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// BrokerConfig enables the RabbitMQ publisher when URL is set.
type BrokerConfig struct {
	URL        string        `yaml:"url"`
	Exchange   string        `yaml:"exchange"`
	RetryCount int           `yaml:"retry_count"`
	RetryDelay time.Duration `yaml:"retry_delay"`
}

func (b BrokerConfig) Enabled() bool {
	return strings.TrimSpace(b.URL) != ""
}

func DefaultConfig() *Config {
	return &Config{
		AppEnv: "dev",
		HTTP: HTTPConfig{
			Addr: defaultAddr,
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost:5173",
				"http://127.0.0.1:3000",
				"http://127.0.0.1:5173",
			},
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			URL:         defaultDatabaseURL,
			AutoMigrate: true,
		},
		Calendar: CalendarConfig{
			NumLocations:  defaultNumLocations,
			WarnThreshold: defaultWarnThreshold,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Broker: BrokerConfig{
			Exchange:   defaultExchange,
			RetryCount: 3,
			RetryDelay: 2 * time.Second,
		},
	}
}

// Load reads .env (if any), the YAML file at path (if it exists) and then
// applies environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if env := strings.TrimSpace(getEnv("APP_ENV", os.Getenv("ENV"))); env != "" {
		c.AppEnv = strings.ToLower(env)
	}
	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		c.HTTP.Addr = addr
	} else if port := os.Getenv("PORT"); port != "" {
		c.HTTP.Addr = ":" + port
	}
	if extra := os.Getenv("CORS_ALLOWED_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.HTTP.AllowedOrigins = append(c.HTTP.AllowedOrigins, o)
			}
		}
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		c.Database.URL = dsn
	}
	if v := os.Getenv("AUTO_MIGRATE"); v != "" {
		c.Database.AutoMigrate = parseBoolEnv("AUTO_MIGRATE", "true")
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("LOG_JSON"); v != "" {
		c.Logging.JSON = parseBoolEnv("LOG_JSON", "false")
	}
	if url := os.Getenv("AMQP_URL"); url != "" {
		c.Broker.URL = url
	}
	if ex := os.Getenv("AMQP_EXCHANGE"); ex != "" {
		c.Broker.Exchange = ex
	}

	var err error
	if c.Calendar.NumLocations, err = parseIntEnv("NUM_LOCATIONS", c.Calendar.NumLocations); err != nil {
		return err
	}
	if c.Calendar.WarnThreshold, err = parseIntEnv("STOCK_WARN_THRESHOLD", c.Calendar.WarnThreshold); err != nil {
		return err
	}
	return nil
}

func validateConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		return fmt.Errorf("http.addr must not be empty")
	}
	if strings.TrimSpace(cfg.Database.URL) == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.Calendar.NumLocations < 1 {
		return fmt.Errorf("NUM_LOCATIONS must be >= 1")
	}
	if cfg.Calendar.WarnThreshold < 0 {
		return fmt.Errorf("STOCK_WARN_THRESHOLD must be >= 0")
	}
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error")
	}
	if cfg.Broker.Enabled() {
		if strings.TrimSpace(cfg.Broker.Exchange) == "" {
			return fmt.Errorf("AMQP_EXCHANGE must not be empty when AMQP_URL is set")
		}
		if cfg.Broker.RetryCount < 1 {
			return fmt.Errorf("broker.retry_count must be >= 1")
		}
	}
	if IsProdLike(cfg.AppEnv) && !strings.HasPrefix(cfg.Database.URL, "postgres") {
		return fmt.Errorf("in prod/release DATABASE_URL must point to PostgreSQL")
	}
	return nil
}

func IsProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func parseIntEnv(name string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
