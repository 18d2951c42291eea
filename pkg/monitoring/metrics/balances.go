package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/helium/helium-ops/internal/utils"
)

type SolBalances interface {
	SetBalance(lamports uint64, name string, isMaker bool)
}

var _ SolBalances = (*solBalances)(nil)

type solBalances struct {
	simpleGauge
}

func NewSolBalances(r *Registry) SolBalances {
	return &solBalances{newSimpleGauge(r, SolBalanceMetric)}
}

func (sb *solBalances) SetBalance(lamports uint64, name string, isMaker bool) {
	sb.set(utils.LamportsToSol(lamports), solBalanceLabelValues(name, isMaker))
}

func solBalanceLabelValues(name string, isMaker bool) prometheus.Labels {
	return prometheus.Labels{
		"name":     name,
		"is_maker": strconv.FormatBool(isMaker),
	}
}

type TokenBalances interface {
	SetBalance(amount uint64, decimals uint8, name string, isMaker bool, tokenType string)
}

var _ TokenBalances = (*tokenBalances)(nil)

type tokenBalances struct {
	simpleGauge
}

func NewTokenBalances(r *Registry) TokenBalances {
	return &tokenBalances{newSimpleGauge(r, TokenBalanceMetric)}
}

func (tb *tokenBalances) SetBalance(amount uint64, decimals uint8, name string, isMaker bool, tokenType string) {
	tb.set(utils.TokenAmountToFloat(amount, decimals), tokenBalanceLabelValues(name, isMaker, tokenType))
}

func tokenBalanceLabelValues(name string, isMaker bool, tokenType string) prometheus.Labels {
	return prometheus.Labels{
		"name":     name,
		"is_maker": strconv.FormatBool(isMaker),
		"type":     tokenType,
	}
}
