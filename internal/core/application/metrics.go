package application

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stackmate/walletcfg/internal/core/domain"
)

var (
	resolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "walletcfg",
			Name:      "resolutions_total",
			Help:      "Number of online wallet config resolutions by protocol and outcome.",
		},
		[]string{"protocol", "outcome"},
	)
	probesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "walletcfg",
			Name:      "probes_total",
			Help:      "Number of node health probes by protocol and outcome.",
		},
		[]string{"protocol", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(resolutionsTotal, probesTotal)
}

func countResolution(protocol domain.Protocol, err error) {
	resolutionsTotal.WithLabelValues(protocol.String(), outcome(err)).Inc()
}

func countProbe(protocol domain.Protocol, err error) {
	probesTotal.WithLabelValues(protocol.String(), outcome(err)).Inc()
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var domainErr *domain.Error
	if errors.As(err, &domainErr) && domainErr.Kind == domain.ErrKindNetwork {
		return "network_error"
	}
	return "internal_error"
}
