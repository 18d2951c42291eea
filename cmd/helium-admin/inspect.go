package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/helium/helium-ops/pkg/helium/subdaos"
	"github.com/helium/helium-ops/pkg/monitoring"
	"github.com/helium/helium-ops/pkg/monitoring/config"
	"github.com/helium/helium-ops/pkg/solana/client"
	solanaconfig "github.com/helium/helium-ops/pkg/solana/config"
	"github.com/helium/helium-ops/pkg/solana/logger"
)

type inspectFlags struct {
	hntMint    string
	mobileMint string
	iotMint    string
	epoch      int64
}

func newInspectCmd(root *rootFlags) *cobra.Command {
	flags := inspectFlags{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Dump the DAO, sub-DAO, maker and epoch accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.helium()
			if err != nil {
				return err
			}
			epoch := subdaos.CurrentEpoch(time.Now().Unix())
			if flags.epoch >= 0 {
				epoch = uint64(flags.epoch)
			}
			lggr, err := logger.NewFromEnv()
			if err != nil {
				return err
			}
			chainCfg := solanaconfig.NewConfig(solanaconfig.ChainCfg{}, lggr)
			reader := client.NewClient(root.url, chainCfg, lggr.With("component", "rpc-client"))
			return inspect(cmd.Context(), reader, cfg, epoch, cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.hntMint, "hntMint", config.DefaultHntMint.String(), "HNT mint")
	f.StringVar(&flags.mobileMint, "mobileMint", config.DefaultMobileMint.String(), "MOBILE mint")
	f.StringVar(&flags.iotMint, "iotMint", config.DefaultIotMint.String(), "IOT mint")
	f.Int64Var(&flags.epoch, "epoch", -1, "Epoch to dump, defaults to the current one")
	return cmd
}

func (f inspectFlags) helium() (config.Helium, error) {
	cfg := config.Helium{
		OracleKey:    config.DefaultOracleKey,
		MigrationKey: config.DefaultMigrationKey,
		LazySigner:   config.DefaultLazySigner,
	}
	for _, m := range []struct {
		flag  string
		value string
		dst   *solana.PublicKey
	}{
		{"hntMint", f.hntMint, &cfg.HntMint},
		{"mobileMint", f.mobileMint, &cfg.MobileMint},
		{"iotMint", f.iotMint, &cfg.IotMint},
	} {
		key, err := solana.PublicKeyFromBase58(m.value)
		if err != nil {
			return config.Helium{}, fmt.Errorf("invalid --%s '%s': %w", m.flag, m.value, err)
		}
		*m.dst = key
	}
	return cfg, nil
}

func inspect(ctx context.Context, reader client.Reader, cfg config.Helium, epoch uint64, out io.Writer) error {
	network, err := reader.ChainID(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "network %s\n", network)

	addrs, err := monitoring.ResolveAddresses(ctx, reader, cfg)
	if err != nil {
		return err
	}
	if addrs.DaoErr != nil {
		return errors.Wrap(addrs.DaoErr, "dao")
	}

	fmt.Fprintf(out, "dao %s\n", addrs.DaoKey)
	spew.Fdump(out, addrs.Dao)
	daoEpoch, err := subdaos.DaoEpochInfoKey(addrs.DaoKey, epoch)
	if err != nil {
		return err
	}
	if err = dumpEpoch(ctx, reader, out, daoEpoch, epoch, subdaos.DecodeDaoEpochInfo); err != nil {
		return err
	}

	for _, sd := range []struct {
		name   string
		subDao monitoring.SubDao
	}{
		{"mobile", addrs.Mobile},
		{"iot", addrs.Iot},
	} {
		if sd.subDao.Err != nil {
			fmt.Fprintf(out, "sub-dao %s %s: %v\n", sd.name, sd.subDao.Key, sd.subDao.Err)
			continue
		}
		fmt.Fprintf(out, "sub-dao %s %s\n", sd.name, sd.subDao.Key)
		spew.Fdump(out, sd.subDao.Account)
		key, err := subdaos.SubDaoEpochInfoKey(sd.subDao.Key, epoch)
		if err != nil {
			return err
		}
		if err = dumpEpoch(ctx, reader, out, key, epoch, subdaos.DecodeSubDaoEpochInfo); err != nil {
			return err
		}
	}

	if addrs.MakersErr != nil {
		fmt.Fprintf(out, "makers: %v\n", addrs.MakersErr)
		return nil
	}
	for _, maker := range addrs.Makers {
		fmt.Fprintf(out, "maker %s issuing authority %s\n", maker.Name, maker.IssuingAuthority)
	}
	return nil
}

func dumpEpoch[T any](ctx context.Context, reader client.AccountReader, out io.Writer, key solana.PublicKey, epoch uint64, decode func([]byte) (T, error)) error {
	acc, err := reader.AccountInfo(ctx, key)
	if errors.Is(err, client.ErrAccountNotFound) {
		fmt.Fprintf(out, "epoch %d %s: not found\n", epoch, key)
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "reading epoch info %s", key)
	}
	info, err := decode(acc.Data)
	if err != nil {
		return errors.Wrapf(err, "decoding epoch info %s", key)
	}
	fmt.Fprintf(out, "epoch %d %s\n", epoch, key)
	spew.Fdump(out, info)
	return nil
}
