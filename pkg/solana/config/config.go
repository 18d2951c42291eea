package config

import (
	"sync"
	"time"

	"github.com/gagliardetto/solana-go/rpc"
	"gopkg.in/guregu/null.v4"

	"github.com/helium/helium-ops/pkg/solana/logger"
)

// Global solana defaults.
var defaultConfigSet = configSet{
	ReadTimeout:        10 * time.Second, // per rpc read
	ForceRefreshPeriod: 30 * time.Second, // forced re-query of watched accounts
	ResubscribeDelay:   time.Second,      // wait before re-opening a dropped ws subscription
	ConfirmPollPeriod:  time.Second,      // polling for tx confirmation
	TxTimeout:          time.Minute,      // transaction timeout
	SkipPreflight:      false,            // to enable or disable preflight checks
	Commitment:         rpc.CommitmentConfirmed,
}

type Config interface {
	ReadTimeout() time.Duration
	ForceRefreshPeriod() time.Duration
	ResubscribeDelay() time.Duration
	ConfirmPollPeriod() time.Duration
	TxTimeout() time.Duration
	SkipPreflight() bool
	Commitment() rpc.CommitmentType

	// Update sets new chain config values.
	Update(ChainCfg)
}

// ChainCfg holds optional overrides; unset fields fall back to defaults.
type ChainCfg struct {
	ReadTimeout        *time.Duration
	ForceRefreshPeriod *time.Duration
	ResubscribeDelay   *time.Duration
	ConfirmPollPeriod  *time.Duration
	TxTimeout          *time.Duration

	SkipPreflight null.Bool // to enable or disable preflight checks
	Commitment    null.String
}

type configSet struct {
	ReadTimeout        time.Duration
	ForceRefreshPeriod time.Duration
	ResubscribeDelay   time.Duration
	ConfirmPollPeriod  time.Duration
	TxTimeout          time.Duration
	SkipPreflight      bool
	Commitment         rpc.CommitmentType
}

var _ Config = (*config)(nil)

type config struct {
	defaults configSet
	chain    ChainCfg
	chainMu  sync.RWMutex
	lggr     logger.Logger
}

// NewConfig returns a Config with defaults overridden by cfg.
func NewConfig(cfg ChainCfg, lggr logger.Logger) *config {
	return &config{
		defaults: defaultConfigSet,
		chain:    cfg,
		lggr:     lggr,
	}
}

func (c *config) Update(cfg ChainCfg) {
	c.chainMu.Lock()
	c.chain = cfg
	c.chainMu.Unlock()
}

func (c *config) duration(get func(ChainCfg) *time.Duration, fallback time.Duration, name string) time.Duration {
	c.chainMu.RLock()
	ch := get(c.chain)
	c.chainMu.RUnlock()
	if ch == nil {
		return fallback
	}
	if *ch <= 0 {
		c.lggr.Warnf(invalidFallbackMsg, name, ch.String(), fallback, nil)
		return fallback
	}
	return *ch
}

func (c *config) ReadTimeout() time.Duration {
	return c.duration(func(cfg ChainCfg) *time.Duration { return cfg.ReadTimeout }, c.defaults.ReadTimeout, "ReadTimeout")
}

func (c *config) ForceRefreshPeriod() time.Duration {
	return c.duration(func(cfg ChainCfg) *time.Duration { return cfg.ForceRefreshPeriod }, c.defaults.ForceRefreshPeriod, "ForceRefreshPeriod")
}

func (c *config) ResubscribeDelay() time.Duration {
	return c.duration(func(cfg ChainCfg) *time.Duration { return cfg.ResubscribeDelay }, c.defaults.ResubscribeDelay, "ResubscribeDelay")
}

func (c *config) ConfirmPollPeriod() time.Duration {
	return c.duration(func(cfg ChainCfg) *time.Duration { return cfg.ConfirmPollPeriod }, c.defaults.ConfirmPollPeriod, "ConfirmPollPeriod")
}

func (c *config) TxTimeout() time.Duration {
	return c.duration(func(cfg ChainCfg) *time.Duration { return cfg.TxTimeout }, c.defaults.TxTimeout, "TxTimeout")
}

func (c *config) SkipPreflight() bool {
	c.chainMu.RLock()
	ch := c.chain.SkipPreflight
	c.chainMu.RUnlock()
	if ch.Valid {
		return ch.Bool
	}
	return c.defaults.SkipPreflight
}

func (c *config) Commitment() rpc.CommitmentType {
	c.chainMu.RLock()
	ch := c.chain.Commitment
	c.chainMu.RUnlock()
	if ch.Valid {
		str := ch.String
		var commitment rpc.CommitmentType
		switch str {
		case "processed":
			commitment = rpc.CommitmentProcessed
		case "confirmed":
			commitment = rpc.CommitmentConfirmed
		case "finalized":
			commitment = rpc.CommitmentFinalized
		default:
			c.lggr.Warnf(invalidFallbackMsg, "CommitmentType", str, c.defaults.Commitment, nil)
			commitment = c.defaults.Commitment
		}
		return commitment
	}
	return c.defaults.Commitment
}

const invalidFallbackMsg = `Invalid value provided for %s, "%s" - falling back to default "%s": %v`
