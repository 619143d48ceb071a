package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/decipline/internal/flagx"
)

var knownFlags = []string{"-a", "-t", "-g", "-r", "-q", "-d", "-l", "-m"}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   backend base URL
//	-t string   transport: http or grpc
//	-g string   backend gRPC address
//	-r int      request timeout in seconds
//	-q float    outbound requests per second (0 = unlimited)
//	-d string   local state database file
//	-l string   log level
//	-m string   metrics listen address
//
// Only the flags above are considered; args are filtered with
// flagx.FilterArgs so that -c/-config and foreign flags do not interfere.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("decipline", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "backend base URL")
	fs.StringVar(&cfg.Transport, "t", cfg.Transport, "transport: http or grpc")
	fs.StringVar(&cfg.GRPCEndpointAddr, "g", cfg.GRPCEndpointAddr, "backend gRPC address")
	timeout := fs.Int("r", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.Float64Var(&cfg.RequestRate, "q", cfg.RequestRate, "outbound requests per second")
	fs.StringVar(&cfg.StateDBPath, "d", cfg.StateDBPath, "local state database file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "metrics listen address")

	if err := fs.Parse(args); err != nil {
		return err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["r"] {
		cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	}
	return nil
}
