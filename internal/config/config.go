package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// AppConfig holds the complete application configuration
type AppConfig struct {
	Server    ServerConfig    `yaml:"server"`
	Scraper   ScraperConfig   `yaml:"scraper"`
	Proxies   ProxyConfig     `yaml:"proxies"`
	Browser   BrowserConfig   `yaml:"browser"`
	Workers   WorkerConfig    `yaml:"workers"`
	IO        IOConfig        `yaml:"io"`
	Log       LogConfig       `yaml:"log"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig holds the HTTP API configuration
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// ScraperConfig holds the page fetching configuration.
// BaseURL is the only input of the URL templates.
type ScraperConfig struct {
	BaseURL          string        `yaml:"base_url"`
	Timeout          time.Duration `yaml:"timeout"`
	UserAgents       []string      `yaml:"user_agents,omitempty"`
	CloudflareBypass bool          `yaml:"cloudflare_bypass"`
}

// ProxyConfig holds the proxy configuration
type ProxyConfig struct {
	Enabled bool     `yaml:"enabled"`
	Rotate  bool     `yaml:"rotate"`
	List    []string `yaml:"list"`
	Auth    struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"auth"`
}

// BrowserConfig holds the browser configuration for JavaScript rendering
type BrowserConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Headless  bool          `yaml:"headless"`
	UserAgent string        `yaml:"user_agent"`
	WaitTime  time.Duration `yaml:"wait_time"`
}

// WorkerConfig sizes the batch runner used by the CLI.
type WorkerConfig struct {
	Count     int           `yaml:"count"`
	RateLimit time.Duration `yaml:"rate_limit"`
}

// IOConfig holds the batch input and output configuration. An empty or "-"
// OutputFile means stdout.
type IOConfig struct {
	InputFile    string `yaml:"input_file"`
	OutputFile   string `yaml:"output_file"`
	OutputFormat string `yaml:"output_format"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// TelemetryConfig enables OTLP trace export when OTLPEndpoint is set.
type TelemetryConfig struct {
	ServiceName  string            `yaml:"service_name"`
	OTLPEndpoint string            `yaml:"otlp_endpoint"`
	Headers      map[string]string `yaml:"headers,omitempty"`
}

// Override adjusts a loaded configuration before it is validated.
type Override func(*AppConfig)

// Load builds the configuration from defaults, the optional YAML file at
// path, a .env file in the working directory, TFMKT_* environment variables
// and finally overrides, in that order of increasing priority. The result is
// validated once, after everything is applied.
func Load(path string, overrides ...Override) (*AppConfig, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	for _, o := range overrides {
		o(cfg)
	}

	// Set default user agents if none provided
	if len(cfg.Scraper.UserAgents) == 0 {
		cfg.Scraper.UserAgents = DefaultUserAgents
	}
	if cfg.Browser.UserAgent == "" {
		cfg.Browser.UserAgent = cfg.Scraper.UserAgents[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default creates a default configuration
func Default() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Addr:         ":8000",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
		Scraper: ScraperConfig{
			BaseURL:    DefaultBaseURL,
			Timeout:    30 * time.Second,
			UserAgents: DefaultUserAgents,
		},
		Proxies: ProxyConfig{
			Rotate: true,
			List:   []string{},
		},
		Browser: BrowserConfig{
			Headless:  true,
			UserAgent: DefaultUserAgents[0],
			WaitTime:  2 * time.Second,
		},
		Workers: WorkerConfig{
			Count:     3,
			RateLimit: 500 * time.Millisecond,
		},
		IO: IOConfig{
			OutputFile:   "-",
			OutputFormat: "json",
		},
		Log: LogConfig{
			Level:  "info",
			Pretty: true,
		},
		Telemetry: TelemetryConfig{
			ServiceName: "transfermarkt-api",
		},
	}
}

func (c *AppConfig) applyEnv() {
	if v := os.Getenv("TFMKT_BASE_URL"); v != "" {
		c.Scraper.BaseURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Addr = ":" + v
	}
	if v := os.Getenv("TFMKT_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("TFMKT_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("TFMKT_OTLP_ENDPOINT"); v != "" {
		c.Telemetry.OTLPEndpoint = v
	}
}

// Validate rejects configurations the services cannot run with.
func (c *AppConfig) Validate() error {
	u, err := url.Parse(c.Scraper.BaseURL)
	if err != nil {
		return fmt.Errorf("scraper.base_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("scraper.base_url: want an absolute http(s) URL, got %q", c.Scraper.BaseURL)
	}
	if c.Scraper.Timeout < 0 {
		return fmt.Errorf("scraper.timeout: must not be negative")
	}
	if c.Workers.Count < 1 {
		return fmt.Errorf("workers.count: must be at least 1, got %d", c.Workers.Count)
	}
	switch c.IO.OutputFormat {
	case "json", "jsonl":
	default:
		return fmt.Errorf("io.output_format: unsupported format %q", c.IO.OutputFormat)
	}
	if c.Proxies.Enabled && len(c.Proxies.List) == 0 {
		return fmt.Errorf("proxies.list: proxies enabled but none configured")
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}
