package stats_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stackmate/walletcfg/pkg/stats"
	"github.com/stretchr/testify/require"
)

func TestSummary(t *testing.T) {
	registry := prometheus.NewRegistry()

	probes := prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "walletcfg_probes_total"},
		[]string{"protocol", "outcome"},
	)
	up := prometheus.NewGauge(prometheus.GaugeOpts{Name: "walletcfg_node_up"})
	other := prometheus.NewCounter(prometheus.CounterOpts{Name: "other_total"})
	registry.MustRegister(probes, up, other)

	probes.WithLabelValues("electrum", "ok").Add(3)
	probes.WithLabelValues("electrum", "network_error").Inc()
	up.Set(1)
	other.Inc()

	values, err := stats.Summary(registry, "walletcfg_")
	require.NoError(t, err)
	require.Equal(t, map[string]float64{
		`walletcfg_probes_total{outcome="ok",protocol="electrum"}`:            3,
		`walletcfg_probes_total{outcome="network_error",protocol="electrum"}`: 1,
		"walletcfg_node_up": 1,
	}, values)

	require.NotPanics(t, func() { stats.PrintStatistics(registry, "walletcfg_") })
}
