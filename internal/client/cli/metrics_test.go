package cli

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/decipline/internal/client/metrics"
	"github.com/dmitrijs2005/decipline/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeMetrics_ServesUntilCancelled(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.NewCollector(reg).RecordAction("login", metrics.OutcomeOK, time.Millisecond)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serveMetricsOn(ctx, ln, metrics.Handler(reg), logging.NewNop()) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "decipline_client_actions_total")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("metrics listener did not stop")
	}
}

func TestServeMetrics_BadAddress(t *testing.T) {
	err := serveMetrics(context.Background(), "256.0.0.1:-1", http.NotFoundHandler(), logging.NewNop())
	require.Error(t, err)
}
