package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/decipline/internal/flagx"
	"github.com/dmitrijs2005/decipline/internal/timex"
)

// JsonConfig is the on-disk shape of the server configuration. Durations
// accept both "1m" strings and integer nanoseconds.
type JsonConfig struct {
	HTTPAddr                    string         `json:"http_addr"`
	GRPCAddr                    *string        `json:"grpc_addr"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	AdviceQuota                 *int           `json:"advice_quota"`
	AdviceWindow                timex.Duration `json:"advice_window"`
	LogLevel                    string         `json:"log_level"`
}

// parseJson loads the JSON file named by -c or -config in args into config.
// Absent keys keep their current value; grpc_addr and advice_quota may be
// set to their zero values explicitly.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigPath(args)

	// nothing to load
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if c.HTTPAddr != "" {
		config.HTTPAddr = c.HTTPAddr
	}
	if c.GRPCAddr != nil {
		config.GRPCAddr = *c.GRPCAddr
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.AdviceQuota != nil {
		config.AdviceQuota = *c.AdviceQuota
	}
	if c.AdviceWindow.Duration != 0 {
		config.AdviceWindow = c.AdviceWindow.Duration
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
	return nil
}
