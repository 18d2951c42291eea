package monitoring

import (
	"context"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/multierr"

	"github.com/helium/helium-ops/pkg/monitoring/config"
	"github.com/helium/helium-ops/pkg/monitoring/metrics"
	"github.com/helium/helium-ops/pkg/solana/switchboard"
)

// Probe registers one monitor.
type Probe struct {
	Name string
	// Optional probes only warn when they fail.
	Optional bool
	Run      func(ctx context.Context) error
}

type ProbeResult struct {
	Name     string
	Optional bool
	Err      error
}

// Report is the outcome of registering every probe.
type Report struct {
	Results []ProbeResult
}

// Err combines the errors of required probes.
func (r Report) Err() (err error) {
	for _, res := range r.Results {
		if res.Err != nil && !res.Optional {
			err = multierr.Append(err, fmt.Errorf("%s: %w", res.Name, res.Err))
		}
	}
	return err
}

// Warnings combines the errors of optional probes.
func (r Report) Warnings() (err error) {
	for _, res := range r.Results {
		if res.Err != nil && res.Optional {
			err = multierr.Append(err, fmt.Errorf("%s: %w", res.Name, res.Err))
		}
	}
	return err
}

// namedKeyFunc resolves the address a probe watches.
type namedKeyFunc struct {
	name string
	key  func() (solana.PublicKey, error)
}

// Orchestrator resolves the Helium accounts and registers every monitor on them.
type Orchestrator struct {
	env    Env
	cfg    config.Config
	probes metrics.Probes
}

func NewOrchestrator(env Env, cfg config.Config, probes metrics.Probes) *Orchestrator {
	return &Orchestrator{env: env, cfg: cfg, probes: probes}
}

// Run registers the probes one after the other. A failing probe never stops
// the ones after it. The error is only set when addresses could not be derived.
func (o *Orchestrator) Run(ctx context.Context) (Report, error) {
	addrs, err := ResolveAddresses(ctx, o.env.Reader, o.cfg.Helium)
	if err != nil {
		return Report{}, err
	}
	for _, resolveErr := range []error{addrs.DaoErr, addrs.Mobile.Err, addrs.Iot.Err} {
		if resolveErr != nil {
			o.env.Log.Errorw("failed to resolve account, dependent probes will fail", "error", resolveErr)
		}
	}

	var report Report
	for _, probe := range o.Probes(addrs) {
		if ctx.Err() != nil {
			break
		}
		err := probe.Run(ctx)
		report.Results = append(report.Results, ProbeResult{Name: probe.Name, Optional: probe.Optional, Err: err})
		o.probes.SetUp(probe.Name, err == nil)
		switch {
		case err == nil:
			o.env.Log.Debugw("probe registered", "probe", probe.Name)
		case probe.Optional:
			o.env.Log.Warnw("optional probe failed", "probe", probe.Name, "error", err)
		default:
			o.env.Log.Errorw("probe failed", "probe", probe.Name, "error", err)
		}
	}
	return report, nil
}

// Probes lists the monitors in registration order.
func (o *Orchestrator) Probes(addrs Addresses) []Probe {
	env := o.env
	var probes []Probe
	add := func(name string, optional bool, run func(ctx context.Context) error) {
		probes = append(probes, Probe{Name: name, Optional: optional, Run: run})
	}
	daoKey := func(pick func() solana.PublicKey) func() (solana.PublicKey, error) {
		return func() (solana.PublicKey, error) {
			if addrs.DaoErr != nil {
				return solana.PublicKey{}, fmt.Errorf("%w: dao: %v", ErrNotResolved, addrs.DaoErr)
			}
			return pick(), nil
		}
	}
	subDaoKey := func(sd *SubDao, pick func(*SubDao) solana.PublicKey) func() (solana.PublicKey, error) {
		return func() (solana.PublicKey, error) {
			if sd.Err != nil {
				return solana.PublicKey{}, fmt.Errorf("%w: sub-dao %s: %v", ErrNotResolved, sd.Key, sd.Err)
			}
			return pick(sd), nil
		}
	}
	hntMint := daoKey(func() solana.PublicKey { return addrs.Dao.HntMint })
	dcMint := daoKey(func() solana.PublicKey { return addrs.Dao.DcMint })
	mobile, iot := &addrs.Mobile, &addrs.Iot
	dntMint := func(sd *SubDao) solana.PublicKey { return sd.Account.DntMint }
	treasury := func(sd *SubDao) solana.PublicKey { return sd.Account.Treasury }
	escrow := func(sd *SubDao) solana.PublicKey { return sd.Account.RewardsEscrow }
	burnAuthority := func(sd *SubDao) solana.PublicKey { return sd.Account.DcBurnAuthority }

	mints := []namedKeyFunc{
		{"hnt", hntMint},
		{"dc", dcMint},
		{"iot", subDaoKey(iot, dntMint)},
		{"mobile", subDaoKey(mobile, dntMint)},
	}
	for _, m := range mints {
		m := m
		add("supply:"+m.name, false, withKey(m.key, func(ctx context.Context, mint solana.PublicKey) error {
			return MonitorSupply(ctx, env, mint, m.name)
		}))
	}
	for _, m := range mints {
		m := m
		name := m.name + "_mint"
		add("mint_circuit_breaker:"+name, false, withKey(m.key, func(ctx context.Context, mint solana.PublicKey) error {
			return MonitorMintCircuitBreaker(ctx, env, mint, name)
		}))
	}

	tokenAccounts := []namedKeyFunc{
		{"iot_treasury", subDaoKey(iot, treasury)},
		{"mobile_treasury", subDaoKey(mobile, treasury)},
		{"iot_rewards_escrow", subDaoKey(iot, escrow)},
		{"mobile_rewards_escrow", subDaoKey(mobile, escrow)},
	}
	for _, ta := range tokenAccounts {
		ta := ta
		add("token_balance:"+ta.name, false, withKey(ta.key, func(ctx context.Context, account solana.PublicKey) error {
			return MonitorTokenBalance(ctx, env, account, ta.name, false, "")
		}))
	}

	if addrs.MakersErr != nil {
		makersErr := addrs.MakersErr
		add("makers", false, func(context.Context) error { return makersErr })
	}
	for _, maker := range addrs.Makers {
		maker := maker
		name := Underscore(maker.Name)
		add("maker_sol_balance:"+name, false, func(ctx context.Context) error {
			return MonitorSolBalance(ctx, env, maker.IssuingAuthority, name, true)
		})
		add("maker_dc_balance:"+name, false, withKey(dcMint, func(ctx context.Context, dc solana.PublicKey) error {
			return MonitorAssociatedTokenBalance(ctx, env, maker.IssuingAuthority, dc, name, true, "data-credits")
		}))
	}

	solBalances := []namedKeyFunc{
		{"oracle", fixed(addrs.Oracle)},
		{"migration", fixed(addrs.Migration)},
		{"lazy_signer", fixed(addrs.LazySigner)},
	}
	for _, thread := range addrs.Threads {
		solBalances = append(solBalances, namedKeyFunc{thread.Name, fixed(thread.Address)})
	}
	solBalances = append(solBalances, []namedKeyFunc{
		{"mobile_dc_burn_authority", subDaoKey(mobile, burnAuthority)},
		{"iot_dc_burn_authority", subDaoKey(iot, burnAuthority)},
		{"data_credits_account_payer", fixed(addrs.AccountPayer)},
	}...)
	for _, extra := range o.cfg.Accounts.Extra {
		solBalances = append(solBalances, namedKeyFunc{extra.Name, fixed(extra.Address)})
	}
	for _, sb := range solBalances {
		sb := sb
		add("sol_balance:"+sb.name, false, withKey(sb.key, func(ctx context.Context, addr solana.PublicKey) error {
			return MonitorSolBalance(ctx, env, addr, sb.name, false)
		}))
	}

	if !isLocalhost(o.cfg.Solana.RPCEndpoint) {
		cluster := switchboard.ClusterFromEndpoint(o.cfg.Solana.RPCEndpoint)
		for _, lease := range []struct {
			name   string
			subDao *SubDao
		}{
			{"switchboard_mobile_lease_account", mobile},
			{"switchboard_iot_lease_account", iot},
		} {
			lease := lease
			aggregator := subDaoKey(lease.subDao, func(sd *SubDao) solana.PublicKey { return sd.Account.ActiveDeviceAggregator })
			add("switchboard_lease:"+lease.name, true, withKey(aggregator, func(ctx context.Context, agg solana.PublicKey) error {
				key, err := resolveLease(ctx, env, cluster, agg)
				if err != nil {
					return err
				}
				return MonitorSolBalance(ctx, env, key, lease.name, false)
			}))
		}
	}

	for _, ta := range []namedKeyFunc{
		{"mobile_treasury", subDaoKey(mobile, treasury)},
		{"iot_treasury", subDaoKey(iot, treasury)},
		{"iot_rewards_escrow", subDaoKey(iot, escrow)},
		{"mobile_rewards_escrow", subDaoKey(mobile, escrow)},
	} {
		ta := ta
		add("account_circuit_breaker:"+ta.name, false, withKey(ta.key, func(ctx context.Context, account solana.PublicKey) error {
			return MonitorAccountCircuitBreaker(ctx, env, account, ta.name)
		}))
	}
	return probes
}

func resolveLease(ctx context.Context, env Env, cluster switchboard.Cluster, aggregator solana.PublicKey) (solana.PublicKey, error) {
	acc, err := env.Reader.AccountInfo(ctx, aggregator)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("reading aggregator %s: %w", aggregator, err)
	}
	queue, err := switchboard.AggregatorQueue(acc.Data)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("decoding aggregator %s: %w", aggregator, err)
	}
	return switchboard.LeaseKey(cluster.ProgramID(), queue, aggregator)
}

func withKey(key func() (solana.PublicKey, error), run func(context.Context, solana.PublicKey) error) func(context.Context) error {
	return func(ctx context.Context) error {
		k, err := key()
		if err != nil {
			return err
		}
		return run(ctx, k)
	}
}

func fixed(key solana.PublicKey) func() (solana.PublicKey, error) {
	return func() (solana.PublicKey, error) { return key, nil }
}

func isLocalhost(endpoint string) bool {
	return strings.Contains(endpoint, "127.0.0.1") || strings.Contains(endpoint, "localhost")
}
