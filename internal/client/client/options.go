package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/decipline/internal/logging"
	"golang.org/x/time/rate"
)

// Option configures a transport.
type Option func(*options)

type options struct {
	timeout    time.Duration
	limiter    *rate.Limiter
	logger     logging.Logger
	httpClient *http.Client
}

func defaultOptions() *options {
	return &options{
		logger:     logging.NewNop(),
		httpClient: &http.Client{},
	}
}

// WithTimeout bounds every call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithRateLimit caps outbound calls at rps requests per second with a burst
// of one. Zero or negative disables limiting.
func WithRateLimit(rps float64) Option {
	return func(o *options) {
		if rps <= 0 {
			o.limiter = nil
			return
		}
		o.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

func WithLogger(l logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithHTTPClient replaces the HTTP client used by HTTPClient.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.httpClient = c
		}
	}
}

// prepare waits for the limiter and applies the call timeout.
func (o *options) prepare(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if o.limiter != nil {
		if err := o.limiter.Wait(ctx); err != nil {
			return ctx, func() {}, fmt.Errorf("%w: rate limiter: %v", ErrUnavailable, err)
		}
	}
	if o.timeout > 0 {
		ctx, cancel := context.WithTimeout(ctx, o.timeout)
		return ctx, cancel, nil
	}
	return ctx, func() {}, nil
}
