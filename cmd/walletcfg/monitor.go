package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/stackmate/walletcfg/internal/config"
	"github.com/stackmate/walletcfg/internal/core/application"
	"github.com/stackmate/walletcfg/internal/core/domain"
	"github.com/stackmate/walletcfg/pkg/circuitbreaker"
	"github.com/stackmate/walletcfg/pkg/stats"
	"github.com/urfave/cli/v2"
	"go.uber.org/ratelimit"
)

var monitor = cli.Command{
	Name:  "monitor",
	Usage: "periodically probe a node and expose its status as prometheus metrics",
	Flags: []cli.Flag{
		&networkFlag,
		&nodeFlag,
		&intervalFlag,
		&metricsAddrFlag,
	},
	Action: monitorAction,
}

var (
	nodeUp = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "walletcfg",
		Name:      "node_up",
		Help:      "Whether the last probe of the monitored node succeeded.",
	})
	lastProbeTimestamp = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "walletcfg",
		Name:      "last_probe_timestamp_seconds",
		Help:      "Unix time of the last probe attempt.",
	})
)

func init() {
	prometheus.MustRegister(nodeUp, lastProbeTimestamp)
}

func monitorAction(ctx *cli.Context) error {
	overrideConfig(ctx, networkFlag.Name, config.NetworkKey)
	overrideConfig(ctx, nodeFlag.Name, config.NodeAddressKey)
	overrideConfig(ctx, metricsAddrFlag.Name, config.MetricsAddrKey)

	network, err := domain.ParseNetwork(config.GetString(config.NetworkKey))
	if err != nil {
		return err
	}
	interval := config.GetMonitorInterval()
	if ctx.IsSet(intervalFlag.Name) {
		interval = ctx.Duration(intervalFlag.Name)
	}
	if interval <= 0 {
		return &invalidUsageError{ctx, ctx.Command.Name}
	}
	node := config.GetString(config.NodeAddressKey)
	metricsAddr := config.GetString(config.MetricsAddrKey)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: metricsAddr, Handler: mux}
	go func() {
		if err := server.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("error serving metrics")
		}
	}()
	log.Infof("metrics are exposed at %s/metrics", metricsAddr)

	runCtx, cancel := context.WithCancel(ctx.Context)
	defer cancel()

	if statsInterval := config.GetStatsInterval(); statsInterval > 0 {
		stats.EnableStatistics(runCtx, statsInterval, "walletcfg_")
	}

	m := newNodeMonitor(newConfigService(), network, node, interval)
	go m.run(runCtx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)
	<-sigChan

	log.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(), 5*time.Second,
	)
	defer shutdownCancel()
	return server.Shutdown(shutdownCtx)
}

type nodeMonitor struct {
	svc     application.ConfigService
	network domain.Network
	node    string
	limiter ratelimit.Limiter
	breaker *gobreaker.CircuitBreaker
}

func newNodeMonitor(
	svc application.ConfigService, network domain.Network, node string,
	interval time.Duration,
) *nodeMonitor {
	return &nodeMonitor{
		svc:     svc,
		network: network,
		node:    node,
		limiter: ratelimit.New(1, ratelimit.Per(interval)),
		// An open breaker skips probes for a few intervals.
		breaker: circuitbreaker.NewCircuitBreaker("node-probe", 5*interval),
	}
}

func (m *nodeMonitor) run(ctx context.Context) {
	for {
		m.limiter.Take()
		select {
		case <-ctx.Done():
			return
		default:
		}
		m.probe(ctx)
	}
}

func (m *nodeMonitor) probe(ctx context.Context) error {
	lastProbeTimestamp.SetToCurrentTime()

	_, err := m.breaker.Execute(func() (interface{}, error) {
		return nil, m.svc.CheckClient(ctx, m.network, m.node)
	})
	logger := log.WithFields(log.Fields{
		"node":    m.node,
		"network": m.network,
		"breaker": m.breaker.State().String(),
	})
	if err != nil {
		nodeUp.Set(0)
		if errors.Is(err, gobreaker.ErrOpenState) {
			logger.Debug("probe skipped")
		} else {
			logger.WithError(err).Warn("node is unreachable")
		}
		return err
	}

	nodeUp.Set(1)
	logger.Debug("node is reachable")
	return nil
}
