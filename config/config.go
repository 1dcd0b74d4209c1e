// Package config loads client configuration from an optional JSON file
// with environment variable overrides. Credentials resolved here are handed
// to the futures client; they are never persisted elsewhere.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"binance-futures-client/internal/logging"
)

type Config struct {
	Binance BinanceConfig  `json:"binance"`
	Logging logging.Config `json:"logging"`
}

// BinanceConfig holds API access and market selection.
type BinanceConfig struct {
	APIKey    string `json:"api_key"`
	SecretKey string `json:"secret_key"`
	TestNet   bool   `json:"testnet"`
}

// Load reads path if it exists, then applies environment overrides
// (BINANCE_API_KEY, BINANCE_SECRET_KEY, BINANCE_TESTNET, LOG_LEVEL). An
// empty path skips the file entirely.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Logging: logging.Config{Level: "info"},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if v := os.Getenv("BINANCE_API_KEY"); v != "" {
		cfg.Binance.APIKey = v
	}
	if v := os.Getenv("BINANCE_SECRET_KEY"); v != "" {
		cfg.Binance.SecretKey = v
	}
	if v := os.Getenv("BINANCE_TESTNET"); v != "" {
		cfg.Binance.TestNet = v == "true" || v == "1"
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	return cfg, nil
}
