package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type CircuitBreakers interface {
	// SetWindow exports the current window of a breaker.
	SetWindow(level, limit uint64, tripped bool, name string)
	// SetMissing marks a breaker whose account does not exist: not tripped, no level or limit.
	SetMissing(name string)
}

var _ CircuitBreakers = (*circuitBreakers)(nil)

type circuitBreakers struct {
	level   simpleGauge
	limit   simpleGauge
	tripped simpleGauge
}

func NewCircuitBreakers(r *Registry) CircuitBreakers {
	return &circuitBreakers{
		level:   newSimpleGauge(r, CircuitBreakerLevel),
		limit:   newSimpleGauge(r, CircuitBreakerLimit),
		tripped: newSimpleGauge(r, CircuitBreakerTripped),
	}
}

func (cb *circuitBreakers) SetWindow(level, limit uint64, tripped bool, name string) {
	labels := prometheus.Labels{"name": name}
	cb.level.set(float64(level), labels)
	cb.limit.set(float64(limit), labels)
	cb.tripped.set(boolToFloat(tripped), labels)
}

func (cb *circuitBreakers) SetMissing(name string) {
	labels := prometheus.Labels{"name": name}
	cb.level.delete(labels)
	cb.limit.delete(labels)
	cb.tripped.set(0, labels)
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
