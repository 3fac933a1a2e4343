// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"carport-quote/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// PriceBooks contains price book loading configuration
	PriceBooks PriceBookConfig `json:"pricebooks"`

	// Terms contains default quote terms
	Terms TermsConfig `json:"terms"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// PriceBookConfig contains price book loading settings
type PriceBookConfig struct {
	// Directory is where price book files are loaded from
	Directory string `json:"directory"`

	// DefaultRevision is the revision used when a request names none
	DefaultRevision string `json:"default_revision"`
}

// TermsConfig contains default quote terms
type TermsConfig struct {
	// DiscountRate is the default discount fraction, e.g. 0.10
	DiscountRate decimal.Decimal `json:"discount_rate"`

	// DownPaymentRate is the default down payment fraction of the total
	DownPaymentRate decimal.Decimal `json:"down_payment_rate"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format"`

	// ShowTrace shows per-line resolution trace notes
	ShowTrace bool `json:"show_trace"`

	// ShowWarnings shows quote warnings
	ShowWarnings bool `json:"show_warnings"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Address is the listen address
	Address string `json:"address"`

	// ReadTimeoutSeconds bounds request reads
	ReadTimeoutSeconds int `json:"read_timeout_seconds"`

	// WriteTimeoutSeconds bounds response writes
	WriteTimeoutSeconds int `json:"write_timeout_seconds"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	bookDir := filepath.Join(homeDir, ".carport-quote", "pricebooks")

	return &Config{
		Version: "1.0",
		PriceBooks: PriceBookConfig{
			Directory:       bookDir,
			DefaultRevision: "",
		},
		Terms: TermsConfig{
			DiscountRate:    decimal.Zero,
			DownPaymentRate: decimal.Zero,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
			ShowTrace:     false,
			ShowWarnings:  true,
		},
		Server: ServerConfig{
			Address:             ":8080",
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 30,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
