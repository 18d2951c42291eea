package monitoring

import (
	"context"
	"fmt"
	"sync"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"

	"github.com/helium/helium-ops/pkg/helium/circuitbreaker"
	"github.com/helium/helium-ops/pkg/monitoring/metrics"
	"github.com/helium/helium-ops/pkg/solana/client"
	"github.com/helium/helium-ops/pkg/solana/logger"
)

// Env carries the dependencies shared by every monitor.
type Env struct {
	Reader          client.Reader
	Watcher         Watcher
	SolBalances     metrics.SolBalances
	TokenBalances   metrics.TokenBalances
	Supplies        metrics.Supplies
	CircuitBreakers metrics.CircuitBreakers
	Log             logger.Logger
}

// NewEnv wires the metric families of registry into an Env.
func NewEnv(reader client.Reader, watcher Watcher, registry *metrics.Registry, log logger.Logger) Env {
	return Env{
		Reader:          reader,
		Watcher:         watcher,
		SolBalances:     metrics.NewSolBalances(registry),
		TokenBalances:   metrics.NewTokenBalances(registry),
		Supplies:        metrics.NewSupplies(registry),
		CircuitBreakers: metrics.NewCircuitBreakers(registry),
		Log:             log,
	}
}

// MonitorSolBalance exports the SOL balance of address. A missing account reports 0.
func MonitorSolBalance(ctx context.Context, env Env, address solana.PublicKey, name string, isMaker bool) error {
	return env.Watcher.Watch(ctx, address, func(_ context.Context, acc client.Account, _ Source) error {
		env.SolBalances.SetBalance(acc.Lamports, name, isMaker)
		return nil
	})
}

// MonitorTokenBalance exports the balance of an SPL token account scaled by
// the decimals of its mint. The mint is read once, on the first delivery of
// an existing token account. A missing token account reports 0.
func MonitorTokenBalance(ctx context.Context, env Env, tokenAccount solana.PublicKey, name string, isMaker bool, tokenType string) error {
	var (
		mu       sync.Mutex
		decimals *uint8
	)
	return env.Watcher.Watch(ctx, tokenAccount, func(ctx context.Context, acc client.Account, _ Source) error {
		if !acc.Exists() {
			env.TokenBalances.SetBalance(0, 0, name, isMaker, tokenType)
			return nil
		}
		var tokenAcc token.Account
		if err := bin.NewBinDecoder(acc.Data).Decode(&tokenAcc); err != nil {
			return fmt.Errorf("decoding token account %s: %w", tokenAccount, err)
		}

		mu.Lock()
		defer mu.Unlock()
		if decimals == nil {
			mint, err := fetchMint(ctx, env.Reader, tokenAcc.Mint)
			if err != nil {
				return err
			}
			decimals = &mint.Decimals
		}
		env.TokenBalances.SetBalance(tokenAcc.Amount, *decimals, name, isMaker, tokenType)
		return nil
	})
}

// MonitorAssociatedTokenBalance exports the balance of the associated token
// account of wallet for mint.
func MonitorAssociatedTokenBalance(ctx context.Context, env Env, wallet, mint solana.PublicKey, name string, isMaker bool, tokenType string) error {
	ata, _, err := solana.FindAssociatedTokenAddress(wallet, mint)
	if err != nil {
		return fmt.Errorf("deriving associated token account of %s for mint %s: %w", wallet, mint, err)
	}
	return MonitorTokenBalance(ctx, env, ata, name, isMaker, tokenType)
}

// MonitorSupply exports the supply of mint.
func MonitorSupply(ctx context.Context, env Env, mint solana.PublicKey, name string) error {
	return env.Watcher.Watch(ctx, mint, func(_ context.Context, acc client.Account, _ Source) error {
		if !acc.Exists() {
			return fmt.Errorf("mint %s not found", mint)
		}
		m, err := decodeMint(acc.Data)
		if err != nil {
			return fmt.Errorf("decoding mint %s: %w", mint, err)
		}
		env.Supplies.SetSupply(m.Supply, m.Decimals, name)
		return nil
	})
}

// MonitorMintCircuitBreaker exports the window of the breaker guarding mint.
func MonitorMintCircuitBreaker(ctx context.Context, env Env, mint solana.PublicKey, name string) error {
	breaker, err := circuitbreaker.MintWindowedBreakerKey(mint)
	if err != nil {
		return fmt.Errorf("deriving mint breaker of %s: %w", mint, err)
	}
	return env.Watcher.Watch(ctx, breaker, func(_ context.Context, acc client.Account, _ Source) error {
		if !acc.Exists() {
			env.CircuitBreakers.SetMissing(name)
			return nil
		}
		b, err := circuitbreaker.DecodeMintWindowedBreaker(acc.Data)
		if err != nil {
			return fmt.Errorf("decoding mint breaker %s: %w", breaker, err)
		}
		setBreakerState(env, b.State(), name)
		return nil
	})
}

// MonitorAccountCircuitBreaker exports the window of the breaker guarding tokenAccount.
func MonitorAccountCircuitBreaker(ctx context.Context, env Env, tokenAccount solana.PublicKey, name string) error {
	breaker, err := circuitbreaker.AccountWindowedBreakerKey(tokenAccount)
	if err != nil {
		return fmt.Errorf("deriving account breaker of %s: %w", tokenAccount, err)
	}
	return env.Watcher.Watch(ctx, breaker, func(_ context.Context, acc client.Account, _ Source) error {
		if !acc.Exists() {
			env.CircuitBreakers.SetMissing(name)
			return nil
		}
		b, err := circuitbreaker.DecodeAccountWindowedBreaker(acc.Data)
		if err != nil {
			return fmt.Errorf("decoding account breaker %s: %w", breaker, err)
		}
		setBreakerState(env, b.State(), name)
		return nil
	})
}

func setBreakerState(env Env, state circuitbreaker.State, name string) {
	env.CircuitBreakers.SetWindow(state.Level, state.Limit, state.Tripped(), name)
}

func fetchMint(ctx context.Context, reader client.AccountReader, mint solana.PublicKey) (token.Mint, error) {
	acc, err := reader.AccountInfo(ctx, mint)
	if err != nil {
		return token.Mint{}, fmt.Errorf("reading mint %s: %w", mint, err)
	}
	m, err := decodeMint(acc.Data)
	if err != nil {
		return token.Mint{}, fmt.Errorf("decoding mint %s: %w", mint, err)
	}
	return m, nil
}

func decodeMint(data []byte) (token.Mint, error) {
	var m token.Mint
	err := bin.NewBinDecoder(data).Decode(&m)
	return m, err
}
