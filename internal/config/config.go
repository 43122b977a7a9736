package config

import (
	"fmt"
	"time"

	"mcmodget/internal/scraper"
)

type Config struct {
	Site          SiteConfig          `yaml:"site"`
	HTTP          HttpConfig          `yaml:"http"`
	Pagination    PaginationConfig    `yaml:"pagination"`
	Browser       BrowserConfig       `yaml:"browser"`
	Observability ObservabilityConfig `yaml:"observability"`
	Selectors     *scraper.Selectors  `yaml:"selectors"`
}

type SiteConfig struct {
	BaseURL    string `yaml:"base_url"`
	SearchPath string `yaml:"search_path"`
}

type HttpConfig struct {
	TotalTimeoutMS            int `yaml:"total_timeout_ms"`
	MaxIdleConnections        int `yaml:"max_idle_connections"`
	MaxIdleConnectionsPerHost int `yaml:"max_idle_connections_per_host"`
	IdleConnectionTimeoutS    int `yaml:"idle_connection_timeout_s"`
}

type PaginationConfig struct {
	// Hard ceilings so a markup change that always renders a "next"
	// affordance cannot loop forever.
	MaxPages     int `yaml:"max_pages"`
	MaxFilePages int `yaml:"max_file_pages"`
}

type BrowserConfig struct {
	ChromePath    string `yaml:"chrome_path"`
	Headless      *bool  `yaml:"headless"`
	WaitTimeoutS  int    `yaml:"wait_timeout_s"`
	TableSettleMS int    `yaml:"table_settle_ms"`
}

type ObservabilityConfig struct {
	LogPath  string `yaml:"log_path"`
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration. mcmodget works with no config
// file at all; a YAML file only overrides these values.
func Default() *Config {
	headless := true
	return &Config{
		Site: SiteConfig{
			BaseURL:    "https://minecraft.curseforge.com",
			SearchPath: "/search",
		},
		HTTP: HttpConfig{
			TotalTimeoutMS:            30000,
			MaxIdleConnections:        100,
			MaxIdleConnectionsPerHost: 10,
			IdleConnectionTimeoutS:    90,
		},
		Pagination: PaginationConfig{
			MaxPages:     50,
			MaxFilePages: 50,
		},
		Browser: BrowserConfig{
			Headless:      &headless,
			WaitTimeoutS:  10,
			TableSettleMS: 500,
		},
		Observability: ObservabilityConfig{
			LogLevel: "info",
		},
	}
}

// Validation
func (c *Config) Validate() error {
	if c.Site.BaseURL == "" {
		return fmt.Errorf("site.base_url is required")
	}
	if c.Site.SearchPath == "" {
		return fmt.Errorf("site.search_path is required")
	}
	if c.HTTP.TotalTimeoutMS <= 0 {
		return fmt.Errorf("http.total_timeout_ms must be > 0")
	}
	if c.Pagination.MaxPages <= 0 {
		return fmt.Errorf("pagination.max_pages must be > 0")
	}
	if c.Pagination.MaxFilePages <= 0 {
		return fmt.Errorf("pagination.max_file_pages must be > 0")
	}
	if c.Browser.WaitTimeoutS <= 0 {
		return fmt.Errorf("browser.wait_timeout_s must be > 0")
	}
	if c.Browser.TableSettleMS < 0 {
		return fmt.Errorf("browser.table_settle_ms must be >= 0")
	}
	if c.Observability.LogLevel == "" {
		return fmt.Errorf("observability.log_level is required")
	}
	return nil
}

// Getters
func (c *Config) GetTotalTimeout() time.Duration {
	return time.Duration(c.HTTP.TotalTimeoutMS) * time.Millisecond
}

func (c *Config) GetIdleConnectionTimeout() time.Duration {
	return time.Duration(c.HTTP.IdleConnectionTimeoutS) * time.Second
}

func (c *Config) GetBrowserWaitTimeout() time.Duration {
	return time.Duration(c.Browser.WaitTimeoutS) * time.Second
}

func (c *Config) GetTableSettleDelay() time.Duration {
	return time.Duration(c.Browser.TableSettleMS) * time.Millisecond
}

// GetSelectors falls back to the built-in CurseForge selectors when the
// config file doesn't override them.
func (c *Config) GetSelectors() *scraper.Selectors {
	if c.Selectors != nil {
		return c.Selectors
	}
	return scraper.DefaultSelectors()
}

func (c *Config) BrowserHeadless() bool {
	if c.Browser.Headless == nil {
		return true
	}
	return *c.Browser.Headless
}
