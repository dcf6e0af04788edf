package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/borski/ha-lucidmotors/internal/domain"
)

// DefaultPath is where the setup flow writes credentials.
const DefaultPath = "config.toml"

// envPrefix namespaces every environment variable, e.g. LUCID_USERNAME
// or LUCID_MQTT_BROKER_URL.
const envPrefix = "LUCID_"

type Config struct {
	Locale    string `toml:"locale" env:"LOCALE"`
	LocaleDir string `toml:"locale_dir" env:"LOCALE_DIR"`
	// HTTPDisabled is inverted so the zero value keeps the
	// diagnostics server on.
	HTTPAddr     string `toml:"http_addr" env:"HTTP_ADDR"`
	HTTPDisabled bool   `toml:"http_disabled" env:"HTTP_DISABLED"`
	PollSeconds  int    `toml:"poll_seconds" env:"POLL_SECONDS"`
	LogLevel     string `toml:"log_level" env:"LOG_LEVEL"`
	LogFormat    string `toml:"log_format" env:"LOG_FORMAT"`
	Lucid        Lucid  `toml:"lucid"`
	MQTT         MQTT   `toml:"mqtt" envPrefix:"MQTT_"`
}

// Lucid is the owner account and API endpoint selection. Host overrides
// the region's gateway, for test rigs.
type Lucid struct {
	Username string `toml:"username" env:"USERNAME"`
	Password string `toml:"password" env:"PASSWORD"`
	Region   string `toml:"region" env:"REGION"`
	Host     string `toml:"host" env:"HOST"`
}

type MQTT struct {
	BrokerURL       string `toml:"broker_url" env:"BROKER_URL"`
	ClientID        string `toml:"client_id" env:"CLIENT_ID"`
	Username        string `toml:"username" env:"USERNAME"`
	Password        string `toml:"password" env:"PASSWORD"`
	TopicPrefix     string `toml:"topic_prefix" env:"TOPIC_PREFIX"`
	DiscoveryPrefix string `toml:"discovery_prefix" env:"DISCOVERY_PREFIX"`
}

// Default returns a configuration with every optional field at its
// default value and no account set.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// FromFile reads just the file at path, without environment overrides,
// defaults or validation. The setup flow uses it to inspect an existing
// account.
func FromFile(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := &Config{}
	if err := toml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Load reads the config file at path, then lets environment variables
// override it. A missing file is fine when the environment carries the
// account; a missing path argument selects DefaultPath.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env is optional; production setups inject the environment.
	}

	cfg, err := FromFile(path)
	if errors.Is(err, os.ErrNotExist) {
		// Environment-only deployments carry no file.
		cfg = &Config{}
	} else if err != nil {
		return nil, err
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Locale == "" {
		c.Locale = "en"
	}
	if c.HTTPAddr == "" {
		c.HTTPAddr = ":8099"
	}
	if c.PollSeconds <= 0 {
		c.PollSeconds = 30
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "auto"
	}
	if c.Lucid.Region == "" {
		c.Lucid.Region = domain.DefaultRegion.Name
	}
	if c.MQTT.BrokerURL == "" {
		c.MQTT.BrokerURL = "tcp://localhost:1883"
	}
	if c.MQTT.ClientID == "" {
		c.MQTT.ClientID = "lucidbridge"
	}
	if c.MQTT.TopicPrefix == "" {
		c.MQTT.TopicPrefix = "lucidbridge"
	}
	if c.MQTT.DiscoveryPrefix == "" {
		c.MQTT.DiscoveryPrefix = "homeassistant"
	}
}

// validate applies every rule on the loaded configuration. Error text
// names fields, never their values: credentials must not leak into logs.
func (c *Config) validate() error {
	if strings.TrimSpace(c.Lucid.Username) == "" {
		return fmt.Errorf("config: LUCID_USERNAME (or lucid.username) is required")
	}
	if strings.TrimSpace(c.Lucid.Password) == "" {
		return fmt.Errorf("config: LUCID_PASSWORD (or lucid.password) is required")
	}
	if c.Lucid.Host == "" {
		if _, err := domain.RegionByName(c.Lucid.Region); err != nil {
			return fmt.Errorf("config: unknown region %q", c.Lucid.Region)
		}
	}
	if !strings.Contains(c.MQTT.BrokerURL, "://") {
		return fmt.Errorf("config: mqtt broker_url must be a URL like tcp://host:1883")
	}
	if strings.Contains(c.MQTT.TopicPrefix, "/") || c.MQTT.TopicPrefix == "" {
		return fmt.Errorf("config: mqtt topic_prefix must be a single topic segment")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log_level must be debug, info, warn or error")
	}
	switch c.LogFormat {
	case "auto", "text", "json":
	default:
		return fmt.Errorf("config: log_format must be auto, text or json")
	}
	return nil
}

// Region resolves the configured region, honoring the host override.
func (c *Config) Region() (domain.Region, error) {
	if c.Lucid.Host != "" {
		return domain.Region{Name: "Custom", APIHost: c.Lucid.Host}, nil
	}
	return domain.RegionByName(c.Lucid.Region)
}

// Write persists the file-backed part of the configuration. Used by the
// setup flow; permissions are tight because the password is inside.
func (c *Config) Write(path string) error {
	if path == "" {
		path = DefaultPath
	}
	raw, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
