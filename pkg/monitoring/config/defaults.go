package config

import (
	"time"

	"github.com/gagliardetto/solana-go"
)

var (
	DefaultOracleKey    = solana.MustPublicKeyFromBase58("orc1TYY5L4B4ZWDEMayTqu99ikPM9bQo9fqzoaCPP5Q")
	DefaultMigrationKey = solana.MustPublicKeyFromBase58("mgrArTL62g582wWV6iM4fwU1LKnbUikDN6akKJ76pzK")
	DefaultHntMint      = solana.MustPublicKeyFromBase58("hntyVP6YFm1Hg25TN9WGLqM12b8TQmcknKrdu1oxWux")
	DefaultMobileMint   = solana.MustPublicKeyFromBase58("mb1eu7TzEc71KxDpsmsKoucSSuuoGLv1drys1oP2jh6")
	DefaultIotMint      = solana.MustPublicKeyFromBase58("iotEVVZLEywoTn1QdwNPddxPWszn3zFhEot3MfL9fns")
)

const DefaultLazySigner = "nJWGUMOK"

func applyDefaults(cfg *Config) {
	if cfg.Solana.ReadTimeout == 0 {
		cfg.Solana.ReadTimeout = 10 * time.Second
	}
	if cfg.Solana.ForceRefreshPeriod == 0 {
		cfg.Solana.ForceRefreshPeriod = 30 * time.Second
	}
	if !cfg.Solana.Commitment.Valid {
		cfg.Solana.Commitment.SetValid("confirmed")
	}
	if cfg.Solana.WSEndpoint == "" && cfg.Solana.RPCEndpoint != "" {
		if ws, err := websocketEndpoint(cfg.Solana.RPCEndpoint); err == nil {
			cfg.Solana.WSEndpoint = ws
		}
	}
	if cfg.Helium.OracleKey.IsZero() {
		cfg.Helium.OracleKey = DefaultOracleKey
	}
	if cfg.Helium.MigrationKey.IsZero() {
		cfg.Helium.MigrationKey = DefaultMigrationKey
	}
	if cfg.Helium.LazySigner == "" {
		cfg.Helium.LazySigner = DefaultLazySigner
	}
	if cfg.Helium.HntMint.IsZero() {
		cfg.Helium.HntMint = DefaultHntMint
	}
	if cfg.Helium.MobileMint.IsZero() {
		cfg.Helium.MobileMint = DefaultMobileMint
	}
	if cfg.Helium.IotMint.IsZero() {
		cfg.Helium.IotMint = DefaultIotMint
	}
	if cfg.Http.Address == "" {
		cfg.Http.Address = "0.0.0.0:8082"
	}
}
