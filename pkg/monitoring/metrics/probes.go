package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Probes interface {
	SetUp(probe string, up bool)
}

var _ Probes = (*probes)(nil)

type probes struct {
	simpleGauge
}

func NewProbes(r *Registry) Probes {
	return &probes{newSimpleGauge(r, ProbeUpMetric)}
}

func (p *probes) SetUp(probe string, up bool) {
	p.set(boolToFloat(up), prometheus.Labels{"probe": probe})
}

// WatchErrors counts failures of the account watcher per address and source
// (initial, push, refresh, callback).
type WatchErrors interface {
	Inc(address, source string)
}

var _ WatchErrors = (*watchErrors)(nil)

type watchErrors struct {
	registry *Registry
}

func NewWatchErrors(r *Registry) WatchErrors {
	return &watchErrors{r}
}

func (w *watchErrors) Inc(address, source string) {
	counter := w.registry.Counter(AccountWatchErrorsMetric)
	if counter == nil {
		w.registry.log.Errorw("counter not found", "name", AccountWatchErrorsMetric)
		return
	}
	counter.With(prometheus.Labels{"address": address, "source": source}).Inc()
}
