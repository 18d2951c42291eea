package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/helium/helium-ops/pkg/solana/logger"
)

// simpleGauge is an internal implementation for fetching a gauge from the registry
// and share logic for fetching, error handling, and setting.
// simpleGauge should be wrapped for export, not directly exported
type simpleGauge struct {
	log        logger.Logger
	registry   *Registry
	metricName string
}

func newSimpleGauge(r *Registry, name string) simpleGauge {
	if r == nil || r.log == nil {
		panic("simpleGauge registry or logger is nil")
	}
	return simpleGauge{r.log, r, name}
}

func (sg simpleGauge) set(value float64, labels prometheus.Labels) {
	gauge := sg.registry.Gauge(sg.metricName)
	if gauge == nil {
		sg.log.Errorw("gauge not found", "name", sg.metricName)
		return
	}
	gauge.With(labels).Set(value)
}

func (sg simpleGauge) delete(labels prometheus.Labels) {
	gauge := sg.registry.Gauge(sg.metricName)
	if gauge == nil {
		sg.log.Errorw("gauge not found", "name", sg.metricName)
		return
	}
	gauge.Delete(labels)
}
