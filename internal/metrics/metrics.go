// Package metrics holds the client's Prometheus collectors. They are
// registered on a private registry because the client exposes no HTTP
// endpoint; the CLI prints them with Summary.
package metrics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

var Registry = prometheus.NewRegistry()

var (
	APIRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "secondwear",
		Name:      "api_requests_total",
		Help:      "API calls made through the gateway, by method and outcome.",
	}, []string{"method", "outcome"})

	APIRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "secondwear",
		Name:      "api_request_duration_seconds",
		Help:      "API call latency.",
		Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"method"})

	ForcedLogoutsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "secondwear",
		Name:      "forced_logouts_total",
		Help:      "Sessions ended by a 401 from the API.",
	})

	ListingFetchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "secondwear",
		Name:      "listing_fetches_total",
		Help:      "Listing fetches, by outcome (ok, error, stale).",
	}, []string{"outcome"})
)

func init() {
	Registry.MustRegister(APIRequestsTotal, APIRequestDuration, ForcedLogoutsTotal, ListingFetchesTotal)
}

// Outcome classifies a response status for the outcome label.
func Outcome(ok bool, status int) string {
	switch {
	case ok:
		return "ok"
	case status == 0:
		return "transport_error"
	case status == 401:
		return "unauthorized"
	case status >= 500:
		return "server_error"
	default:
		return "client_error"
	}
}

// Summary renders every counter and histogram count as "name{labels} value"
// lines, sorted.
func Summary() (string, error) {
	families, err := Registry.Gather()
	if err != nil {
		return "", fmt.Errorf("gather metrics: %w", err)
	}

	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			switch {
			case m.GetCounter() != nil:
				lines = append(lines, fmt.Sprintf("%s %g", name, m.GetCounter().GetValue()))
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				lines = append(lines, fmt.Sprintf("%s count=%d sum=%.3fs", name, h.GetSampleCount(), h.GetSampleSum()))
			}
		}
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n"), nil
}
