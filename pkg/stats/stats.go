package stats

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// EnableStatistics enables go routine that periodically logs the values of
// the metrics named with the given prefix, along with the number of running
// go routines.
func EnableStatistics(
	ctx context.Context, interval time.Duration, prefix string,
) {
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				PrintStatistics(prometheus.DefaultGatherer, prefix)
				PrintNumOfRoutines()
			case <-ctx.Done():
				return
			}
		}
	}()
}

// PrintStatistics logs the current value of every metric named with prefix.
func PrintStatistics(gatherer prometheus.Gatherer, prefix string) {
	values, err := Summary(gatherer, prefix)
	if err != nil {
		log.WithError(err).Warn("unable to gather metrics")
		return
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := log.Fields{}
	for _, k := range keys {
		fields[k] = values[k]
	}
	log.WithFields(fields).Info("statistics")
}

// Summary returns the values of counters and gauges named with prefix,
// indexed by name and labels like name{label="value"}.
func Summary(
	gatherer prometheus.Gatherer, prefix string,
) (map[string]float64, error) {
	families, err := gatherer.Gather()
	if err != nil {
		return nil, err
	}

	values := make(map[string]float64)
	for _, family := range families {
		name := family.GetName()
		if !strings.HasPrefix(name, prefix) {
			continue
		}

		for _, m := range family.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
			}
			key := name
			if len(labels) > 0 {
				key = fmt.Sprintf("%s{%s}", name, strings.Join(labels, ","))
			}

			switch {
			case m.GetCounter() != nil:
				values[key] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				values[key] = m.GetGauge().GetValue()
			}
		}
	}
	return values, nil
}

// PrintNumOfRoutines prints number of go routines currently running
func PrintNumOfRoutines() {
	log.Infof("Num of go routines: %v", runtime.NumGoroutine())
}
