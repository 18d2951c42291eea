package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v2"
)

func Parse() (Config, error) {
	cfg := Config{}

	if err := parseEnvVars(&cfg); err != nil {
		return cfg, err
	}

	applyDefaults(&cfg)

	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}

	err := populateAccounts(&cfg)
	return cfg, err
}

func parseEnvVars(cfg *Config) error {
	if value, isPresent := os.LookupEnv("ANCHOR_PROVIDER_URL"); isPresent {
		cfg.Solana.RPCEndpoint = value
	}
	if value, isPresent := os.LookupEnv("SOLANA_WS_ENDPOINT"); isPresent {
		cfg.Solana.WSEndpoint = value
	}
	if value, isPresent := os.LookupEnv("ANCHOR_WALLET"); isPresent {
		cfg.Solana.Wallet = value
	}
	if value, isPresent := os.LookupEnv("SOLANA_COMMITMENT"); isPresent && value != "" {
		cfg.Solana.Commitment.SetValid(value)
	}
	if value, isPresent := os.LookupEnv("SOLANA_READ_TIMEOUT"); isPresent {
		readTimeout, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("failed to parse env var SOLANA_READ_TIMEOUT, see https://pkg.go.dev/time#ParseDuration: %w", err)
		}
		cfg.Solana.ReadTimeout = readTimeout
	}
	if value, isPresent := os.LookupEnv("FORCE_REFRESH_PERIOD"); isPresent {
		period, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("failed to parse env var FORCE_REFRESH_PERIOD, see https://pkg.go.dev/time#ParseDuration: %w", err)
		}
		cfg.Solana.ForceRefreshPeriod = period
	}

	for envVarName, target := range map[string]*solana.PublicKey{
		"ORACLE_KEY":    &cfg.Helium.OracleKey,
		"MIGRATION_KEY": &cfg.Helium.MigrationKey,
		"HNT_MINT":      &cfg.Helium.HntMint,
		"MOBILE_MINT":   &cfg.Helium.MobileMint,
		"IOT_MINT":      &cfg.Helium.IotMint,
	} {
		value, isPresent := os.LookupEnv(envVarName)
		if !isPresent || value == "" {
			continue
		}
		key, err := solana.PublicKeyFromBase58(value)
		if err != nil {
			return fmt.Errorf("failed to parse env var %s='%s' as a public key: %w", envVarName, value, err)
		}
		*target = key
	}
	if value, isPresent := os.LookupEnv("LAZY_SIGNER"); isPresent {
		cfg.Helium.LazySigner = value
	}

	if value, isPresent := os.LookupEnv("MONITOR_EXTRA_ACCOUNTS_FILE"); isPresent {
		cfg.Accounts.FilePath = value
	}

	if value, isPresent := os.LookupEnv("HTTP_ADDRESS"); isPresent {
		cfg.Http.Address = value
	}

	return nil
}

func validateConfig(cfg Config) (err error) {
	// Required config
	for envVarName, currentValue := range map[string]string{
		"ANCHOR_PROVIDER_URL": cfg.Solana.RPCEndpoint,
		"SOLANA_WS_ENDPOINT":  cfg.Solana.WSEndpoint,
		"HTTP_ADDRESS":        cfg.Http.Address,
	} {
		if currentValue == "" {
			err = multierr.Append(err, fmt.Errorf("'%s' env var is required", envVarName))
		}
	}
	// Validate URLs.
	for envVarName, currentValue := range map[string]string{
		"ANCHOR_PROVIDER_URL": cfg.Solana.RPCEndpoint,
		"SOLANA_WS_ENDPOINT":  cfg.Solana.WSEndpoint,
	} {
		if currentValue == "" {
			continue
		}
		if _, parseErr := url.ParseRequestURI(currentValue); parseErr != nil {
			err = multierr.Append(err, fmt.Errorf("%s='%s' is not a valid URL: %w", envVarName, currentValue, parseErr))
		}
	}
	for envVarName, currentValue := range map[string]time.Duration{
		"SOLANA_READ_TIMEOUT":  cfg.Solana.ReadTimeout,
		"FORCE_REFRESH_PERIOD": cfg.Solana.ForceRefreshPeriod,
	} {
		if currentValue <= 0 {
			err = multierr.Append(err, fmt.Errorf("%s must be positive, got %s", envVarName, currentValue))
		}
	}
	return err
}

// websocketEndpoint maps an http(s) RPC endpoint to its pubsub endpoint: the
// ws(s) scheme on the next port, when a port is set.
func websocketEndpoint(rpcEndpoint string) (string, error) {
	u, err := url.Parse(rpcEndpoint)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported scheme '%s'", u.Scheme)
	}
	if port := u.Port(); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return "", fmt.Errorf("invalid port '%s': %w", port, err)
		}
		u.Host = net.JoinHostPort(u.Hostname(), strconv.Itoa(p+1))
	}
	return u.String(), nil
}

type yamlAccountsFile struct {
	Accounts []struct {
		Name    string `yaml:"name"`
		Address string `yaml:"address"`
	} `yaml:"accounts"`
}

func populateAccounts(cfg *Config) error {
	if cfg.Accounts.FilePath == "" {
		return nil
	}
	contents, err := os.ReadFile(cfg.Accounts.FilePath)
	if err != nil {
		return fmt.Errorf("unable to read accounts file '%s': %w", cfg.Accounts.FilePath, err)
	}
	var file yamlAccountsFile
	if err = yaml.UnmarshalStrict(contents, &file); err != nil {
		return fmt.Errorf("unable to unmarshal accounts from file '%s': %w", cfg.Accounts.FilePath, err)
	}
	cfg.Accounts.Extra = make([]ExtraAccount, len(file.Accounts))
	for i, account := range file.Accounts {
		if account.Name == "" {
			return fmt.Errorf("account at index i=%d in '%s' has no name", i, cfg.Accounts.FilePath)
		}
		address, err := solana.PublicKeyFromBase58(account.Address)
		if err != nil {
			return fmt.Errorf("failed to parse address '%s' of account '%s' at index i=%d: %w", account.Address, account.Name, i, err)
		}
		cfg.Accounts.Extra[i] = ExtraAccount{Name: account.Name, Address: address}
	}
	return nil
}
