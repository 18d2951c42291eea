// package config parses environment variables and an optional yaml file to
// build a Config object that's used througout the monitor.
package config

import (
	"time"

	"github.com/gagliardetto/solana-go"
	"gopkg.in/guregu/null.v4"

	solanaconfig "github.com/helium/helium-ops/pkg/solana/config"
)

type Config struct {
	Solana   Solana
	Helium   Helium
	Accounts Accounts
	Http     Http
}

type Solana struct {
	RPCEndpoint string
	// WSEndpoint defaults to the RPC endpoint on the websocket scheme and the next port.
	WSEndpoint         string
	Wallet             string
	Commitment         null.String
	ReadTimeout        time.Duration
	ForceRefreshPeriod time.Duration
}

type Helium struct {
	OracleKey    solana.PublicKey
	MigrationKey solana.PublicKey
	LazySigner   string
	HntMint      solana.PublicKey
	MobileMint   solana.PublicKey
	IotMint      solana.PublicKey
}

// Accounts are extra wallets whose SOL balance is exported.
type Accounts struct {
	FilePath string
	Extra    []ExtraAccount
}

type ExtraAccount struct {
	Name    string
	Address solana.PublicKey
}

type Http struct {
	Address string
}

// ChainCfg maps the RPC settings onto the chain config overrides.
func (c Config) ChainCfg() solanaconfig.ChainCfg {
	readTimeout := c.Solana.ReadTimeout
	forceRefresh := c.Solana.ForceRefreshPeriod
	return solanaconfig.ChainCfg{
		ReadTimeout:        &readTimeout,
		ForceRefreshPeriod: &forceRefresh,
		Commitment:         c.Solana.Commitment,
	}
}
