package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/helium/helium-ops/pkg/upgrade"
)

const defaultURL = "http://127.0.0.1:8899"

type rootFlags struct {
	wallet string
	url    string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "helium-admin",
		Short:         "Administrative commands for the Helium programs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			flags.url = resolveURL(flags.url)
		},
	}
	cmd.PersistentFlags().StringVarP(&flags.wallet, "wallet", "k", defaultWallet(), "Anchor wallet keypair")
	cmd.PersistentFlags().StringVarP(&flags.url, "url", "u", defaultURL, "The solana url")

	cmd.AddCommand(
		newUpgradeCmd(flags, upgrade.KindIdl),
		newUpgradeCmd(flags, upgrade.KindProgram),
		newInspectCmd(flags),
	)
	return cmd
}

// resolveURL maps cluster names to their public RPC endpoints. Anything else
// is used as a URL.
func resolveURL(url string) string {
	switch strings.ToLower(url) {
	case "mainnet", "mainnet-beta":
		return rpc.MainNetBeta_RPC
	case "testnet":
		return rpc.TestNet_RPC
	case "devnet":
		return rpc.DevNet_RPC
	case "localnet", "localhost":
		return rpc.LocalNet_RPC
	default:
		return url
	}
}

func defaultWallet() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "solana", "id.json")
	}
	return filepath.Join(home, ".config", "solana", "id.json")
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
