package config

import "time"

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	// Storage selects where the live symbol records live: "redis" for the
	// shared store with optimistic transactions, "memory" for local runs.
	Storage struct {
		Mode string `yaml:"mode"`
	} `yaml:"storage"`

	Redis struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	PostgreSQL struct {
		Enabled  bool   `yaml:"enabled"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Database string `yaml:"database"`
		SSLMode  string `yaml:"ssl_mode"`
	} `yaml:"postgresql"`

	Kafka struct {
		Enabled   bool   `yaml:"enabled"`
		BrokerURL string `yaml:"broker_url"`
		Topic     string `yaml:"topic"`
	} `yaml:"kafka"`

	Session struct {
		Timezone string   `yaml:"timezone"`
		Open     string   `yaml:"open"`
		Close    string   `yaml:"close"`
		Holidays []string `yaml:"holidays"`

		OpenHour    int `yaml:"-"`
		OpenMinute  int `yaml:"-"`
		CloseHour   int `yaml:"-"`
		CloseMinute int `yaml:"-"`
	} `yaml:"session"`

	Schedule struct {
		TickCron   string `yaml:"tick_cron"`
		RollupCron string `yaml:"rollup_cron"`
		ResetCron  string `yaml:"reset_cron"`
	} `yaml:"schedule"`

	Engine struct {
		WindowSize      int           `yaml:"window_size"`
		Workers         int           `yaml:"workers"`
		PushIntervalStr string        `yaml:"push_interval"`
		PushInterval    time.Duration `yaml:"-"`
	} `yaml:"engine"`

	Generator struct {
		MinChange   float64 `yaml:"min_change"`
		MaxChange   float64 `yaml:"max_change"`
		TrendBias   float64 `yaml:"trend_bias"`
		TinyWick    float64 `yaml:"tiny_wick"`
		SmallWick   float64 `yaml:"small_wick"`
		LongWick    float64 `yaml:"long_wick"`
		AmendJitter float64 `yaml:"amend_jitter"`
	} `yaml:"generator"`

	// Seed stocks are registered at startup if absent, so a fresh install
	// has a live feed without manual registration calls.
	Seed []SeedStock `yaml:"seed"`

	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
}

type SeedStock struct {
	Symbol      string  `yaml:"symbol"`
	CompanyName string  `yaml:"company_name"`
	IconURL     string  `yaml:"icon_url"`
	Price       float64 `yaml:"price"`
}
