package main

import (
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/guregu/null.v4"

	"github.com/helium/helium-ops/pkg/solana/client"
	solanaconfig "github.com/helium/helium-ops/pkg/solana/config"
	"github.com/helium/helium-ops/pkg/solana/fees"
	"github.com/helium/helium-ops/pkg/solana/logger"
	"github.com/helium/helium-ops/pkg/upgrade"
)

func newUpgradeCmd(root *rootFlags, kind upgrade.Kind) *cobra.Command {
	opts := upgrade.Options{}
	var budget fees.Budget
	short := "Point the IDL of a program at a new buffer"
	if kind == upgrade.KindProgram {
		short = "Upgrade the code of a program from a buffer"
	}
	cmd := &cobra.Command{
		Use:   kind.String(),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := opts.Parse()
			if err != nil {
				return err
			}
			wallet, err := solana.PrivateKeyFromSolanaKeygenFile(root.wallet)
			if err != nil {
				return errors.Wrapf(err, "loading wallet %s", root.wallet)
			}
			lggr, err := logger.NewFromEnv()
			if err != nil {
				return err
			}
			// proposals are read back by the multisig program, wait for finalization
			chainCfg := solanaconfig.NewConfig(solanaconfig.ChainCfg{
				Commitment: null.StringFrom(string(rpc.CommitmentFinalized)),
			}, lggr)
			rpcClient := client.NewClient(root.url, chainCfg, lggr.With("component", "rpc-client"))

			sender := upgrade.NewSender(
				rpcClient,
				wallet,
				chainCfg.ConfirmPollPeriod(),
				chainCfg.TxTimeout(),
				cmd.ErrOrStderr(),
				log.Logger.With().Str("command", kind.String()).Logger(),
			).WithBudget(budget)
			return upgrade.Run(cmd.Context(), kind, params, sender, cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.ProgramID, "programId", "", "Program to upgrade (required)")
	f.StringVar(&opts.BufferID, "bufferId", "", "Buffer holding the new contents (required)")
	f.StringVar(&opts.Multisig, "multisig", "", "Address of the squads multisig to be authority. If not provided, your wallet will be the authority")
	f.Uint32Var(&opts.AuthorityIndex, "authorityIndex", 1, "Authority index for squads")
	f.BoolVar(&opts.ExecuteTransaction, "executeTransaction", false, "Execute the multisig proposal after approving it")
	f.Uint64Var((*uint64)(&budget.Price), "computeUnitPrice", 0, "Priority fee in micro-lamports per compute unit")
	f.Uint32Var((*uint32)(&budget.Limit), "computeUnitLimit", 0, "Compute unit limit of each transaction")
	f.BoolVar(&opts.DryRun, "dry-run", false, "Print the instructions without sending them")
	return cmd
}
