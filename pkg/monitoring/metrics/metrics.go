package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/helium/helium-ops/pkg/solana/logger"
)

const (
	SolBalanceMetric         = "solana_balance"
	TokenBalanceMetric       = "token_balance"
	TokenSupplyMetric        = "token_supply"
	CircuitBreakerLevel      = "circuit_breaker_level"
	CircuitBreakerLimit      = "circuit_breaker_limit"
	CircuitBreakerTripped    = "circuit_breaker_tripped"
	ProbeUpMetric            = "monitor_probe_up"
	AccountWatchErrorsMetric = "account_watch_errors_total"
)

var (
	solBalanceLabels   = []string{"name", "is_maker"}
	tokenBalanceLabels = []string{"name", "is_maker", "type"}
	nameLabels         = []string{"name"}
	probeLabels        = []string{"probe"}
	accountWatchLabels = []string{"address", "source"}
)

// Registry owns every metric exported by the monitor. All metrics are
// registered on the Registerer handed to NewRegistry.
type Registry struct {
	log      logger.Logger
	gauges   map[string]*prometheus.GaugeVec
	counters map[string]*prometheus.CounterVec
}

func NewRegistry(reg prometheus.Registerer, log logger.Logger) *Registry {
	factory := promauto.With(reg)
	gauge := func(name, help string, labels []string) *prometheus.GaugeVec {
		return factory.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: help}, labels)
	}
	return &Registry{
		log: log,
		gauges: map[string]*prometheus.GaugeVec{
			SolBalanceMetric:      gauge(SolBalanceMetric, "SOL balance of a watched account", solBalanceLabels),
			TokenBalanceMetric:    gauge(TokenBalanceMetric, "Token balance of a watched token account", tokenBalanceLabels),
			TokenSupplyMetric:     gauge(TokenSupplyMetric, "Total supply of a mint", nameLabels),
			CircuitBreakerLevel:   gauge(CircuitBreakerLevel, "Value aggregated in the current circuit breaker window", nameLabels),
			CircuitBreakerLimit:   gauge(CircuitBreakerLimit, "Configured circuit breaker threshold", nameLabels),
			CircuitBreakerTripped: gauge(CircuitBreakerTripped, "1 when the circuit breaker window reached its limit", nameLabels),
			ProbeUpMetric:         gauge(ProbeUpMetric, "1 when the probe registered successfully", probeLabels),
		},
		counters: map[string]*prometheus.CounterVec{
			AccountWatchErrorsMetric: factory.NewCounterVec(prometheus.CounterOpts{
				Name: AccountWatchErrorsMetric,
				Help: "Errors raised while refreshing or delivering a watched account",
			}, accountWatchLabels),
		},
	}
}

// Gauge returns the gauge vector registered under name, or nil.
func (r *Registry) Gauge(name string) *prometheus.GaugeVec {
	return r.gauges[name]
}

// Counter returns the counter vector registered under name, or nil.
func (r *Registry) Counter(name string) *prometheus.CounterVec {
	return r.counters[name]
}
