// Package config loads runtime configuration for the Decipline client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables (DECIPLINE_BACKEND_URL, DECIPLINE_TRANSPORT,
//     DECIPLINE_GRPC_ADDR, DECIPLINE_REQUEST_TIMEOUT, DECIPLINE_STATE_DB,
//     DECIPLINE_LOG_LEVEL).
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   backend base URL (default http://localhost:8000)
//	-t string   transport: http or grpc
//	-g string   backend gRPC address
//	-r int      request timeout (seconds)
//	-q float    outbound requests per second
//	-d string   local state database file
//	-l string   log level: debug, info, warn, error
//	-m string   metrics listen address, e.g. 127.0.0.1:9100
//
// # JSON schema
//
//	{
//	  "server_base_url": "http://localhost:8000",
//	  "transport": "http",
//	  "grpc_endpoint_addr": "127.0.0.1:50051",
//	  "request_timeout": "10s",
//	  "request_rate": 5,
//	  "state_db_path": "decipline.db",
//	  "log_level": "warn",
//	  "metrics_addr": ""
//	}
package config
