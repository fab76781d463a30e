package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads config from a YAML file, applies environment variable
// overrides, then fills defaults and parses derived values. A missing file
// is not an error; the defaults describe a standalone in-memory deployment.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if cfg.Engine.PushInterval, err = time.ParseDuration(cfg.Engine.PushIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid push_interval: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("STORAGE_MODE"); v != "" {
		cfg.Storage.Mode = v
	}

	if v := os.Getenv("REDIS_HOST"); v != "" {
		cfg.Redis.Host = v
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Redis.Port = port
		}
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}

	if v := os.Getenv("POSTGRES_HOST"); v != "" {
		cfg.PostgreSQL.Host = v
	}
	if v := os.Getenv("POSTGRES_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.PostgreSQL.Port = port
		}
	}
	if v := os.Getenv("POSTGRES_USER"); v != "" {
		cfg.PostgreSQL.User = v
	}
	if v := os.Getenv("POSTGRES_PASSWORD"); v != "" {
		cfg.PostgreSQL.Password = v
	}
	if v := os.Getenv("POSTGRES_DB"); v != "" {
		cfg.PostgreSQL.Database = v
	}

	if v := os.Getenv("KAFKA_BROKER_URL"); v != "" {
		cfg.Kafka.BrokerURL = v
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		cfg.Kafka.Topic = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.Storage.Mode == "" {
		cfg.Storage.Mode = "memory"
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.PostgreSQL.SSLMode == "" {
		cfg.PostgreSQL.SSLMode = "disable"
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "stock-ticks"
	}

	if cfg.Session.Timezone == "" {
		cfg.Session.Timezone = "Local"
	}
	if cfg.Session.Open == "" {
		cfg.Session.Open = "09:30"
	}
	if cfg.Session.Close == "" {
		cfg.Session.Close = "15:30"
	}

	if cfg.Schedule.TickCron == "" {
		cfg.Schedule.TickCron = "*/5 * * * * *"
	}
	if cfg.Schedule.RollupCron == "" {
		cfg.Schedule.RollupCron = "0 */10 * * * *"
	}
	if cfg.Schedule.ResetCron == "" {
		cfg.Schedule.ResetCron = "0 15 9 * * 1-5"
	}

	if cfg.Engine.WindowSize == 0 {
		cfg.Engine.WindowSize = 390
	}
	if cfg.Engine.Workers == 0 {
		cfg.Engine.Workers = 8
	}
	if cfg.Engine.PushIntervalStr == "" {
		cfg.Engine.PushIntervalStr = "5s"
	}

	if cfg.Generator.MinChange == 0 && cfg.Generator.MaxChange == 0 {
		cfg.Generator.MinChange = -0.2
		cfg.Generator.MaxChange = 0.2
	}
	if cfg.Generator.TrendBias == 0 {
		cfg.Generator.TrendBias = 0.005
	}
	if cfg.Generator.TinyWick == 0 {
		cfg.Generator.TinyWick = 1
	}
	if cfg.Generator.SmallWick == 0 {
		cfg.Generator.SmallWick = 2
	}
	if cfg.Generator.LongWick == 0 {
		cfg.Generator.LongWick = 4
	}
	if cfg.Generator.AmendJitter == 0 {
		cfg.Generator.AmendJitter = 1
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}

// Validate checks everything the engine must not start without: a
// parseable trading window, well-formed holidays, a known timezone and
// sane generator ranges. Validation failures are fatal at startup.
func (c *Config) Validate() error {
	switch c.Storage.Mode {
	case "redis", "memory":
	default:
		return fmt.Errorf("storage.mode must be \"redis\" or \"memory\", got %q", c.Storage.Mode)
	}

	var err error
	if c.Session.OpenHour, c.Session.OpenMinute, err = parseHHMM(c.Session.Open); err != nil {
		return fmt.Errorf("session.open: %w", err)
	}
	if c.Session.CloseHour, c.Session.CloseMinute, err = parseHHMM(c.Session.Close); err != nil {
		return fmt.Errorf("session.close: %w", err)
	}
	openMin := c.Session.OpenHour*60 + c.Session.OpenMinute
	closeMin := c.Session.CloseHour*60 + c.Session.CloseMinute
	if openMin >= closeMin {
		return fmt.Errorf("session window is empty: open %s, close %s", c.Session.Open, c.Session.Close)
	}

	if _, err := time.LoadLocation(c.Session.Timezone); err != nil {
		return fmt.Errorf("session.timezone: %w", err)
	}
	for _, h := range c.Session.Holidays {
		if _, err := time.Parse("2006-01-02", h); err != nil {
			return fmt.Errorf("session.holidays: invalid date %q", h)
		}
	}

	if c.Engine.WindowSize <= 0 {
		return fmt.Errorf("engine.window_size must be positive")
	}
	if c.Engine.PushInterval <= 0 {
		return fmt.Errorf("engine.push_interval must be positive")
	}

	if c.Generator.MinChange >= c.Generator.MaxChange {
		return fmt.Errorf("generator change range is empty: [%v, %v]", c.Generator.MinChange, c.Generator.MaxChange)
	}
	if c.Generator.TinyWick < 0 || c.Generator.SmallWick < 0 || c.Generator.LongWick < 0 || c.Generator.AmendJitter < 0 {
		return fmt.Errorf("generator wick ranges must be non-negative")
	}

	for _, seed := range c.Seed {
		if seed.Symbol == "" || seed.Price <= 0 {
			return fmt.Errorf("seed stock %q must have a symbol and a positive price", seed.Symbol)
		}
	}

	return nil
}

// Location resolves the configured timezone. Call after Validate.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Session.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host, c.PostgreSQL.Port, c.PostgreSQL.User,
		c.PostgreSQL.Password, c.PostgreSQL.Database, c.PostgreSQL.SSLMode,
	)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func parseHHMM(s string) (hour, minute int, err error) {
	if _, err := time.Parse("15:04", s); err != nil {
		return 0, 0, fmt.Errorf("expected HH:MM, got %q", s)
	}
	fmt.Sscanf(s, "%d:%d", &hour, &minute)
	return hour, minute, nil
}
