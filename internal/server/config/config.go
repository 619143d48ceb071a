// Package config handles configuration for the development server,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/decipline/internal/shared"
)

// Config holds runtime settings for the Decipline development server.
//
// Fields:
//   - HTTPAddr: bind address of the JSON API.
//   - GRPCAddr: bind address of the gRPC endpoint; empty disables it.
//   - SecretKey: HMAC secret for signing JWTs (HS256). A random key is
//     generated when empty, so tokens do not survive a restart.
//   - AccessTokenValidityDuration: lifetime of issued tokens.
//   - AdviceQuota / AdviceWindow: advice requests a free user may make per window.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	HTTPAddr                    string
	GRPCAddr                    string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	AdviceQuota                 int
	AdviceWindow                time.Duration
	LogLevel                    string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8000"
	c.GRPCAddr = ":50051"
	c.SecretKey = ""
	c.AccessTokenValidityDuration = 24 * time.Hour
	c.AdviceQuota = 3
	c.AdviceWindow = time.Hour
	c.LogLevel = "info"
}

func (c *Config) Validate() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("http address is empty")
	}
	if c.AccessTokenValidityDuration <= 0 {
		return fmt.Errorf("token validity must be positive")
	}
	if c.AdviceQuota < 0 {
		return fmt.Errorf("negative advice quota")
	}
	if c.AdviceQuota > 0 && c.AdviceWindow <= 0 {
		return fmt.Errorf("advice window must be positive")
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from the command-line flags in args.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if cfg.SecretKey == "" {
		key, err := shared.MakeRandHexString(32)
		if err != nil {
			return nil, fmt.Errorf("generate secret key: %w", err)
		}
		cfg.SecretKey = key
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
