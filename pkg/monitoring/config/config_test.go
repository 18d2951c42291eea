package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestParse_Defaults(t *testing.T) {
	t.Setenv("ANCHOR_PROVIDER_URL", "http://127.0.0.1:8899")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "ws://127.0.0.1:8900", cfg.Solana.WSEndpoint)
	assert.Equal(t, "confirmed", cfg.Solana.Commitment.String)
	assert.Equal(t, 10*time.Second, cfg.Solana.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Solana.ForceRefreshPeriod)
	assert.Equal(t, DefaultOracleKey, cfg.Helium.OracleKey)
	assert.Equal(t, DefaultMigrationKey, cfg.Helium.MigrationKey)
	assert.Equal(t, "nJWGUMOK", cfg.Helium.LazySigner)
	assert.Equal(t, DefaultHntMint, cfg.Helium.HntMint)
	assert.Equal(t, DefaultMobileMint, cfg.Helium.MobileMint)
	assert.Equal(t, DefaultIotMint, cfg.Helium.IotMint)
	assert.Equal(t, "0.0.0.0:8082", cfg.Http.Address)
	assert.Empty(t, cfg.Accounts.Extra)
}

func TestParse_Overrides(t *testing.T) {
	oracle := solana.NewWallet().PublicKey()
	hnt := solana.NewWallet().PublicKey()
	t.Setenv("ANCHOR_PROVIDER_URL", "https://api.devnet.solana.com")
	t.Setenv("SOLANA_WS_ENDPOINT", "wss://pubsub.example.com")
	t.Setenv("SOLANA_COMMITMENT", "finalized")
	t.Setenv("SOLANA_READ_TIMEOUT", "3s")
	t.Setenv("FORCE_REFRESH_PERIOD", "1m")
	t.Setenv("ORACLE_KEY", oracle.String())
	t.Setenv("HNT_MINT", hnt.String())
	t.Setenv("LAZY_SIGNER", "devnethelium5")
	t.Setenv("HTTP_ADDRESS", "localhost:9000")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "wss://pubsub.example.com", cfg.Solana.WSEndpoint)
	assert.Equal(t, "finalized", cfg.Solana.Commitment.String)
	assert.Equal(t, 3*time.Second, cfg.Solana.ReadTimeout)
	assert.Equal(t, time.Minute, cfg.Solana.ForceRefreshPeriod)
	assert.Equal(t, oracle, cfg.Helium.OracleKey)
	assert.Equal(t, hnt, cfg.Helium.HntMint)
	assert.Equal(t, "devnethelium5", cfg.Helium.LazySigner)
	assert.Equal(t, "localhost:9000", cfg.Http.Address)
}

func TestParse_Errors(t *testing.T) {
	t.Run("missing rpc endpoint", func(t *testing.T) {
		t.Setenv("ANCHOR_PROVIDER_URL", "")
		_, err := Parse()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ANCHOR_PROVIDER_URL")
	})
	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("ANCHOR_PROVIDER_URL", "http://localhost:8899")
		t.Setenv("SOLANA_READ_TIMEOUT", "soon")
		_, err := Parse()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SOLANA_READ_TIMEOUT")
	})
	t.Run("bad public key", func(t *testing.T) {
		t.Setenv("ANCHOR_PROVIDER_URL", "http://localhost:8899")
		t.Setenv("MIGRATION_KEY", "not-a-key")
		_, err := Parse()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "MIGRATION_KEY")
	})
	t.Run("all validation errors are reported", func(t *testing.T) {
		err := validateConfig(Config{Solana: Solana{RPCEndpoint: "not a url", ReadTimeout: -1, ForceRefreshPeriod: time.Second}})
		require.Error(t, err)
		assert.Len(t, multierr.Errors(err), 4)
	})
}

func TestWebsocketEndpoint(t *testing.T) {
	for in, expected := range map[string]string{
		"http://127.0.0.1:8899":               "ws://127.0.0.1:8900",
		"https://api.mainnet-beta.solana.com": "wss://api.mainnet-beta.solana.com",
		"https://rpc.example.com:443/path":    "wss://rpc.example.com:444/path",
		"ws://localhost:8900":                 "ws://localhost:8901",
	} {
		got, err := websocketEndpoint(in)
		require.NoError(t, err)
		assert.Equal(t, expected, got, in)
	}
	_, err := websocketEndpoint("ftp://example.com")
	require.Error(t, err)
}

func TestPopulateAccounts(t *testing.T) {
	ops := solana.NewWallet().PublicKey()
	path := filepath.Join(t.TempDir(), "accounts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("accounts:\n  - name: ops_wallet\n    address: "+ops.String()+"\n"), 0o600))

	t.Setenv("ANCHOR_PROVIDER_URL", "http://127.0.0.1:8899")
	t.Setenv("MONITOR_EXTRA_ACCOUNTS_FILE", path)
	cfg, err := Parse()
	require.NoError(t, err)
	require.Len(t, cfg.Accounts.Extra, 1)
	assert.Equal(t, ExtraAccount{Name: "ops_wallet", Address: ops}, cfg.Accounts.Extra[0])

	t.Run("invalid address", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("accounts:\n  - name: x\n    address: nope\n"), 0o600))
		err := populateAccounts(&Config{Accounts: Accounts{FilePath: bad}})
		require.Error(t, err)
	})
	t.Run("unknown field", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("acounts: []\n"), 0o600))
		err := populateAccounts(&Config{Accounts: Accounts{FilePath: bad}})
		require.Error(t, err)
	})
}

func TestConfig_ChainCfg(t *testing.T) {
	t.Setenv("ANCHOR_PROVIDER_URL", "http://127.0.0.1:8899")
	t.Setenv("SOLANA_COMMITMENT", "finalized")
	t.Setenv("SOLANA_READ_TIMEOUT", "4s")

	cfg, err := Parse()
	require.NoError(t, err)
	chainCfg := cfg.ChainCfg()
	require.NotNil(t, chainCfg.ReadTimeout)
	assert.Equal(t, 4*time.Second, *chainCfg.ReadTimeout)
	require.NotNil(t, chainCfg.ForceRefreshPeriod)
	assert.Equal(t, 30*time.Second, *chainCfg.ForceRefreshPeriod)
	assert.Equal(t, "finalized", chainCfg.Commitment.String)
}
