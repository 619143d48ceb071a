package config

import (
	"os"
	"time"
)

// Environment variables read by parseEnv.
const (
	EnvBackendURL     = "DECIPLINE_BACKEND_URL"
	EnvTransport      = "DECIPLINE_TRANSPORT"
	EnvGRPCAddr       = "DECIPLINE_GRPC_ADDR"
	EnvRequestTimeout = "DECIPLINE_REQUEST_TIMEOUT"
	EnvStateDB        = "DECIPLINE_STATE_DB"
	EnvLogLevel       = "DECIPLINE_LOG_LEVEL"
)

// parseEnv overlays cfg with non-empty environment variables. Values that
// do not parse are ignored.
func parseEnv(cfg *Config) {
	cfg.ServerBaseURL = getEnvString(EnvBackendURL, cfg.ServerBaseURL)
	cfg.Transport = getEnvString(EnvTransport, cfg.Transport)
	cfg.GRPCEndpointAddr = getEnvString(EnvGRPCAddr, cfg.GRPCEndpointAddr)
	cfg.RequestTimeout = getEnvDuration(EnvRequestTimeout, cfg.RequestTimeout)
	cfg.StateDBPath = getEnvString(EnvStateDB, cfg.StateDBPath)
	cfg.LogLevel = getEnvString(EnvLogLevel, cfg.LogLevel)
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
