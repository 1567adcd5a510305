package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

// BankConfig holds credentials and endpoint of one banking provider.
type BankConfig struct {
	BaseURL      string  `yaml:"base_url"`
	APIKey       string  `yaml:"api_key"`
	ClientID     string  `yaml:"client_id"`
	ClientSecret string  `yaml:"client_secret"`
	Environment  string  `yaml:"environment" default:"sandbox"`
	RateLimitRPS float64 `yaml:"rate_limit_rps" default:"5"`
}

// Configured reports whether live credentials are present.
func (b BankConfig) Configured() bool {
	return b.APIKey != "" && b.ClientID != ""
}

// PriceSourceConfig holds one crypto price source endpoint.
type PriceSourceConfig struct {
	Name    string            `yaml:"name"`
	BaseURL string            `yaml:"base_url"`
	APIKey  string            `yaml:"api_key"`
	Symbols []string          `yaml:"symbols"`
	IDs     map[string]string `yaml:"ids"` // symbol -> source specific id
}

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"15s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		DisableCORS     bool          `yaml:"disable_cors"`
	} `yaml:"server"`
	RateLimit struct {
		TransferRPS   float64 `yaml:"transfer_rps" default:"2"`
		TransferBurst int     `yaml:"transfer_burst" default:"5"`
	} `yaml:"rate_limit"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Log struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"log"`
	Aggregator struct {
		CallTimeout time.Duration `yaml:"call_timeout" default:"5s"`
	} `yaml:"aggregator"`
	Banking struct {
		Rakbank     BankConfig `yaml:"rakbank"`
		Mashreq     BankConfig `yaml:"mashreq"`
		Wio         BankConfig `yaml:"wio"`
		EmiratesNBD BankConfig `yaml:"emirates_nbd"`
	} `yaml:"banking"`
	Crypto struct {
		Primary    PriceSourceConfig `yaml:"primary"`
		Fallback   PriceSourceConfig `yaml:"fallback"`
		USDAEDRate float64           `yaml:"usd_aed_rate" default:"3.6725"`
		Timeout    time.Duration     `yaml:"timeout" default:"5s"`
	} `yaml:"crypto"`
	Kafka struct {
		Brokers       []string      `yaml:"brokers"`
		TransferTopic string        `yaml:"transfer_topic" default:"finbridge.transfers"`
		RequiredAcks  *int          `yaml:"required_acks"` // nil means all replicas (-1)
		Compression   string        `yaml:"compression" default:"gzip"`
		MaxAttempts   int           `yaml:"max_attempts" default:"3"`
		WriteTimeout  time.Duration `yaml:"write_timeout" default:"10s"`
	} `yaml:"kafka"`
	Lock struct {
		Backend  string        `yaml:"backend" default:"memory"`
		TTL      time.Duration `yaml:"ttl" default:"30s"`
		Host     string        `yaml:"host" default:"localhost"`
		Port     int           `yaml:"port" default:"6379"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db"`
		Prefix   string        `yaml:"prefix" default:"finbridge"`
	} `yaml:"lock"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML bytes, applies defaults and validates the result.
func Parse(b []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := c.applyDefaults(); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	c.overrideFromEnv()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyDefaults() error {
	if err := defaults.Set(c); err != nil {
		return err
	}
	if c.Crypto.Primary.Name == "" {
		c.Crypto.Primary.Name = "binance"
	}
	if c.Crypto.Primary.BaseURL == "" {
		c.Crypto.Primary.BaseURL = "https://api.binance.com"
	}
	if len(c.Crypto.Primary.Symbols) == 0 {
		c.Crypto.Primary.Symbols = []string{"BTC", "ETH", "SOL", "XRP", "BNB"}
	}
	if c.Crypto.Fallback.Name == "" {
		c.Crypto.Fallback.Name = "coingecko"
	}
	if c.Crypto.Fallback.BaseURL == "" {
		c.Crypto.Fallback.BaseURL = "https://api.coingecko.com"
	}
	if len(c.Crypto.Fallback.IDs) == 0 {
		c.Crypto.Fallback.IDs = map[string]string{
			"BTC":  "bitcoin",
			"ETH":  "ethereum",
			"USDT": "tether",
			"SOL":  "solana",
			"XRP":  "ripple",
			"BNB":  "binancecoin",
		}
	}
	return nil
}

// overrideFromEnv lets credentials live outside the YAML file.
func (c *Config) overrideFromEnv() {
	bankEnv := map[string]*BankConfig{
		"RAKBANK":      &c.Banking.Rakbank,
		"MASHREQ":      &c.Banking.Mashreq,
		"WIO":          &c.Banking.Wio,
		"EMIRATES_NBD": &c.Banking.EmiratesNBD,
	}
	for prefix, b := range bankEnv {
		if v := os.Getenv(prefix + "_API_KEY"); v != "" {
			b.APIKey = v
		}
		if v := os.Getenv(prefix + "_CLIENT_ID"); v != "" {
			b.ClientID = v
		}
		if v := os.Getenv(prefix + "_CLIENT_SECRET"); v != "" {
			b.ClientSecret = v
		}
		if v := os.Getenv(prefix + "_BASE_URL"); v != "" {
			b.BaseURL = v
		}
		if v := os.Getenv(prefix + "_ENVIRONMENT"); v != "" {
			b.Environment = v
		}
	}
	if v := os.Getenv("COINGECKO_API_KEY"); v != "" {
		c.Crypto.Fallback.APIKey = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Lock.Backend = "redis"
		c.Lock.Host = v
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Lock.Port = p
		}
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Lock.Password = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Aggregator.CallTimeout <= 0 {
		return fmt.Errorf("aggregator.call_timeout must be positive")
	}
	for name, b := range map[string]BankConfig{
		"rakbank":      c.Banking.Rakbank,
		"mashreq":      c.Banking.Mashreq,
		"wio":          c.Banking.Wio,
		"emirates_nbd": c.Banking.EmiratesNBD,
	} {
		if b.Environment != "sandbox" && b.Environment != "production" {
			return fmt.Errorf("banking.%s.environment must be 'sandbox' or 'production', got '%s'", name, b.Environment)
		}
		if b.Configured() && b.BaseURL == "" {
			return fmt.Errorf("banking.%s.base_url is required when credentials are set", name)
		}
		if b.RateLimitRPS <= 0 {
			return fmt.Errorf("banking.%s.rate_limit_rps must be positive", name)
		}
	}
	if c.RateLimit.TransferRPS <= 0 || c.RateLimit.TransferBurst <= 0 {
		return fmt.Errorf("rate_limit.transfer_rps and transfer_burst must be positive")
	}
	if c.Crypto.USDAEDRate <= 0 {
		return fmt.Errorf("crypto.usd_aed_rate must be positive")
	}
	if c.Lock.Backend != "memory" && c.Lock.Backend != "redis" {
		return fmt.Errorf("lock.backend must be 'memory' or 'redis', got '%s'", c.Lock.Backend)
	}
	return nil
}

// KafkaRequiredAcks returns the configured acks, -1 when unset.
func (c *Config) KafkaRequiredAcks() int {
	if c.Kafka.RequiredAcks == nil {
		return -1
	}
	return *c.Kafka.RequiredAcks
}

// KafkaEnabled reports whether transfer events should be published.
func (c *Config) KafkaEnabled() bool { return len(c.Kafka.Brokers) > 0 }
