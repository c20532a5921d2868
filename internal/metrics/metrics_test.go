package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", Outcome(true, 200))
	assert.Equal(t, "transport_error", Outcome(false, 0))
	assert.Equal(t, "unauthorized", Outcome(false, 401))
	assert.Equal(t, "client_error", Outcome(false, 404))
	assert.Equal(t, "server_error", Outcome(false, 503))
}

func TestSummary(t *testing.T) {
	before := testutil.ToFloat64(ForcedLogoutsTotal)
	ForcedLogoutsTotal.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(ForcedLogoutsTotal))

	APIRequestsTotal.WithLabelValues("GET", "ok").Inc()
	APIRequestDuration.WithLabelValues("GET").Observe(0.2)

	out, err := Summary()
	require.NoError(t, err)
	assert.Contains(t, out, "secondwear_forced_logouts_total")
	assert.Contains(t, out, `secondwear_api_requests_total{method="GET",outcome="ok"}`)
	assert.Contains(t, out, `secondwear_api_request_duration_seconds{method="GET"} count=`)
}
