package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/decipline/internal/flagx"
)

var knownFlags = []string{"-a", "-g", "-s", "-t", "-q", "-w", "-l"}

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8000")
//	-g string   gRPC bind address; empty disables gRPC
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-q int      advice requests per window for free users (0 = unlimited)
//	-w int      advice quota window, minutes
//	-l string   log level
//
// Duration flags are accepted as integers in minutes and applied only when
// given.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address and port to run server")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "gRPC address and port")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	fs.IntVar(&config.AdviceQuota, "q", config.AdviceQuota, "advice requests per window for free users")
	adviceWindow := fs.Int("w", int(config.AdviceWindow.Minutes()), "advice quota window (in minutes)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.AccessTokenValidityDuration = time.Duration(*accessTokenValidity) * time.Minute
		case "w":
			config.AdviceWindow = time.Duration(*adviceWindow) * time.Minute
		}
	})
	return nil
}
