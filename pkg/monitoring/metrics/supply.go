package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/helium/helium-ops/internal/utils"
)

type Supplies interface {
	SetSupply(supply uint64, decimals uint8, name string)
}

var _ Supplies = (*supplies)(nil)

type supplies struct {
	simpleGauge
}

func NewSupplies(r *Registry) Supplies {
	return &supplies{newSimpleGauge(r, TokenSupplyMetric)}
}

func (s *supplies) SetSupply(supply uint64, decimals uint8, name string) {
	s.set(utils.TokenAmountToFloat(supply, decimals), prometheus.Labels{"name": name})
}
