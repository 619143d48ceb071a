package config

import (
	"fmt"
	"time"
)

// Transport names accepted by Config.Transport.
const (
	TransportHTTP = "http"
	TransportGRPC = "grpc"
)

// Config holds runtime settings for the Decipline client.
//
// Fields:
//   - ServerBaseURL: root URL of the backend JSON API.
//   - Transport: "http" (default) or "grpc".
//   - GRPCEndpointAddr: host:port of the backend gRPC endpoint.
//   - RequestTimeout: upper bound for a single backend call.
//   - RequestRate: outbound requests per second; zero means unlimited.
//   - StateDBPath: SQLite file that keeps the session token between runs.
//   - LogLevel: debug, info, warn or error.
//   - MetricsAddr: listen address of the Prometheus endpoint; empty disables it.
type Config struct {
	ServerBaseURL    string
	Transport        string
	GRPCEndpointAddr string
	RequestTimeout   time.Duration
	RequestRate      float64
	StateDBPath      string
	LogLevel         string
	MetricsAddr      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8000"
	c.Transport = TransportHTTP
	c.GRPCEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 10 * time.Second
	c.RequestRate = 0
	c.StateDBPath = "decipline.db"
	c.LogLevel = "warn"
	c.MetricsAddr = ""
}

// Validate rejects settings the client cannot run with.
func (c *Config) Validate() error {
	switch c.Transport {
	case TransportHTTP, TransportGRPC:
	default:
		return fmt.Errorf("unknown transport %q", c.Transport)
	}
	if c.Transport == TransportHTTP && c.ServerBaseURL == "" {
		return fmt.Errorf("server base url is empty")
	}
	if c.Transport == TransportGRPC && c.GRPCEndpointAddr == "" {
		return fmt.Errorf("grpc endpoint is empty")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("negative request timeout")
	}
	if c.RequestRate < 0 {
		return fmt.Errorf("negative request rate")
	}
	if c.StateDBPath == "" {
		return fmt.Errorf("state db path is empty")
	}
	return nil
}

// LoadConfig constructs a Config from defaults, then overlays the
// environment, the JSON file named by -c/-config (if any) and finally the
// command-line flags in args. Later sources take precedence.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
