// Package config loads the settings of sgrid: display formats, the listing
// file and logging.
//
// Settings come from defaults, then an optional YAML file, then the
// environment (a .env file is loaded into it first). Command-line flags come last.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding the configuration.
const (
	EnvCurrencySymbol = "SGRID_CURRENCY_SYMBOL"
	EnvCurrency       = "SGRID_CURRENCY"
	EnvDecimals       = "SGRID_DECIMALS"
	EnvListingFile    = "SGRID_LISTING_FILE"
	EnvExchangeSuffix = "SGRID_EXCHANGE_SUFFIX"
	EnvLogLevel       = "SGRID_LOG_LEVEL"
	// EnvConfigFile locates the YAML file when no path is given.
	EnvConfigFile = "SGRID_CONFIG"
)

// Config is the top-level configuration.
type Config struct {
	Display Display `yaml:"display"`
	Listing Listing `yaml:"listing"`
	Logging Logging `yaml:"logging"`
}

// Display controls how values are printed.
type Display struct {
	CurrencySymbol string `yaml:"currency_symbol"`
	Currency       string `yaml:"currency"`
	Decimals       int    `yaml:"decimals"`       // grid values
	PriceDecimals  int    `yaml:"price_decimals"` // last price and change
}

// Listing locates the reference table of listed companies.
type Listing struct {
	File           string `yaml:"file"`
	ExchangeSuffix string `yaml:"exchange_suffix"`
}

// Logging configures the application logger.
type Logging struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration, for Bursa Malaysia stocks.
func Default() *Config {
	return &Config{
		Display: Display{CurrencySymbol: "RM", Currency: "MYR", Decimals: 4, PriceDecimals: 2},
		Listing: Listing{File: "Stock_Listing.csv", ExchangeSuffix: ".KL"},
		Logging: Logging{Level: "info"},
	}
}

// Load returns the default configuration, overridden by the YAML file at path
// and then by the environment.
//
// An empty path falls back to $SGRID_CONFIG; without either, no file is read.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// LoadDotEnv loads .env files into the environment. Missing files are ignored,
// and variables already set are kept.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// applyEnvOverrides overrides fields with the environment variables that are set.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv(EnvCurrencySymbol); v != "" {
		cfg.Display.CurrencySymbol = v
	}
	if v := os.Getenv(EnvCurrency); v != "" {
		cfg.Display.Currency = v
	}
	if v := os.Getenv(EnvDecimals); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", EnvDecimals, v, err)
		}
		cfg.Display.Decimals = n
	}
	if v := os.Getenv(EnvListingFile); v != "" {
		cfg.Listing.File = v
	}
	if v := os.Getenv(EnvExchangeSuffix); v != "" {
		cfg.Listing.ExchangeSuffix = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	return nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	var errs []error
	if c.Display.Decimals < 0 {
		errs = append(errs, fmt.Errorf("display.decimals must not be negative, got %d", c.Display.Decimals))
	}
	if c.Display.PriceDecimals < 0 {
		errs = append(errs, fmt.Errorf("display.price_decimals must not be negative, got %d", c.Display.PriceDecimals))
	}
	if c.Listing.ExchangeSuffix == "" {
		errs = append(errs, errors.New("listing.exchange_suffix must not be empty"))
	}
	return errors.Join(errs...)
}
