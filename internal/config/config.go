package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	ListenAddr            string   `yaml:"listen_addr"`
	APIBaseURL            string   `yaml:"api_base_url"`
	InstitutionCode       string   `yaml:"institution_code"`
	ItemsPerPage          int      `yaml:"items_per_page"`
	SearchDebounce        Duration `yaml:"search_debounce"`
	RosterRefreshInterval Duration `yaml:"roster_refresh_interval"`
	SecureCookies         bool     `yaml:"secure_cookies"`
	AllowedOrigins        []string `yaml:"allowed_origins"`
	LogLevel              string   `yaml:"log_level"`
	LogJSON               bool     `yaml:"log_json"`
}

// Duration accepts both "500ms" strings and raw nanosecond integers in yaml.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
		return nil
	}
	var n int64
	if err := unmarshal(&n); err != nil {
		return err
	}
	*d = Duration(n)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

const (
	defaultListenAddr      = ":8081"
	defaultInstitutionCode = "BBPMP-JB"
	defaultItemsPerPage    = 10
	defaultDebounce        = Duration(500 * time.Millisecond)
	defaultRosterRefresh   = Duration(5 * time.Minute)
)

func MustLoad(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	var cfg Config
	if err := yaml.Unmarshal(configFile, &cfg); err != nil {
		panic("can't unmarshal config file")
	}
	cfg.applyDefaults()

	if cfg.APIBaseURL == "" {
		panic("api_base_url is required")
	}
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.ListenAddr == "" {
		c.ListenAddr = defaultListenAddr
	}
	if c.InstitutionCode == "" {
		c.InstitutionCode = defaultInstitutionCode
	}
	if c.ItemsPerPage <= 0 {
		c.ItemsPerPage = defaultItemsPerPage
	}
	if c.SearchDebounce <= 0 {
		c.SearchDebounce = defaultDebounce
	}
	if c.RosterRefreshInterval <= 0 {
		c.RosterRefreshInterval = defaultRosterRefresh
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
