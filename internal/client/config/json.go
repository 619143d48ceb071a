package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/decipline/internal/flagx"
	"github.com/dmitrijs2005/decipline/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify the timeout either as a
// string like "5s" or as integer nanoseconds.
type JsonConfig struct {
	ServerBaseURL    string         `json:"server_base_url"`
	Transport        string         `json:"transport"`
	GRPCEndpointAddr string         `json:"grpc_endpoint_addr"`
	RequestTimeout   timex.Duration `json:"request_timeout"`
	RequestRate      float64        `json:"request_rate"`
	StateDBPath      string         `json:"state_db_path"`
	LogLevel         string         `json:"log_level"`
	MetricsAddr      string         `json:"metrics_addr"`
}

// parseJson overlays cfg with the JSON file named by -c or -config in args.
// Keys that are absent or zero leave the current value untouched.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	setString(&cfg.ServerBaseURL, jc.ServerBaseURL)
	setString(&cfg.Transport, jc.Transport)
	setString(&cfg.GRPCEndpointAddr, jc.GRPCEndpointAddr)
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RequestRate != 0 {
		cfg.RequestRate = jc.RequestRate
	}
	setString(&cfg.StateDBPath, jc.StateDBPath)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.MetricsAddr, jc.MetricsAddr)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
