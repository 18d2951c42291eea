// Package integration checks the sub-DAO reward accounting of a local
// validator provisioned with a DAO, one sub-DAO, an issued hotspot and burned
// data credits.
package integration

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/rs/zerolog"
	"go.uber.org/multierr"

	"github.com/helium/helium-ops/pkg/helium/subdaos"
	"github.com/helium/helium-ops/pkg/solana/client"
	solanaconfig "github.com/helium/helium-ops/pkg/solana/config"
	"github.com/helium/helium-ops/pkg/solana/logger"
	"github.com/helium/helium-ops/pkg/upgrade"
)

const RPCURLEnv = "HELIUM_TEST_RPC_URL"

// World is the provisioned state the suite runs against.
type World struct {
	Client *client.Client
	Sender *upgrade.Sender

	HntMint solana.PublicKey
	DntMint solana.PublicKey
	Dao     solana.PublicKey
	SubDao  solana.PublicKey
	Epoch   uint64

	// DcBurned is the number of whole data credits burned while provisioning.
	DcBurned      uint64
	ActivationFee uint64
	EpochRewards  uint64
}

// LoadWorld reads the provisioned accounts from the environment.
func LoadWorld(log zerolog.Logger, out io.Writer) (*World, error) {
	url := os.Getenv(RPCURLEnv)
	if url == "" {
		return nil, fmt.Errorf("%s is not set", RPCURLEnv)
	}
	w := &World{Epoch: subdaos.CurrentEpoch(time.Now().Unix())}
	var err error
	w.HntMint = envKey("HELIUM_TEST_HNT_MINT", &err)
	w.DntMint = envKey("HELIUM_TEST_DNT_MINT", &err)
	w.DcBurned = envUint("HELIUM_TEST_DC_BURNED", 400_000, &err)
	w.ActivationFee = envUint("HELIUM_TEST_ACTIVATION_FEE", 50, &err)
	w.EpochRewards = envUint("HELIUM_TEST_EPOCH_REWARDS", 100_000_000, &err)
	w.Epoch = envUint("HELIUM_TEST_EPOCH", w.Epoch, &err)
	if err != nil {
		return nil, err
	}

	walletPath := os.Getenv("HELIUM_TEST_WALLET")
	if walletPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		walletPath = filepath.Join(home, ".config", "solana", "id.json")
	}
	wallet, err := solana.PrivateKeyFromSolanaKeygenFile(walletPath)
	if err != nil {
		return nil, fmt.Errorf("loading wallet %s: %w", walletPath, err)
	}

	if w.Dao, err = subdaos.DaoKey(w.HntMint); err != nil {
		return nil, err
	}
	if w.SubDao, err = subdaos.SubDaoKey(w.DntMint); err != nil {
		return nil, err
	}

	chainCfg := solanaconfig.NewConfig(solanaconfig.ChainCfg{}, logger.Nop())
	w.Client = client.NewClient(url, chainCfg, logger.Nop())
	w.Sender = upgrade.NewSender(w.Client, wallet, chainCfg.ConfirmPollPeriod(), chainCfg.TxTimeout(), out, log)
	return w, nil
}

func envKey(name string, errs *error) solana.PublicKey {
	v := os.Getenv(name)
	if v == "" {
		*errs = multierr.Append(*errs, fmt.Errorf("%s is not set", name))
		return solana.PublicKey{}
	}
	key, err := solana.PublicKeyFromBase58(v)
	if err != nil {
		*errs = multierr.Append(*errs, fmt.Errorf("%s: %w", name, err))
	}
	return key
}

func envUint(name string, fallback uint64, errs *error) uint64 {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		*errs = multierr.Append(*errs, fmt.Errorf("%s: %w", name, err))
	}
	return n
}

func (w *World) FetchSubDao(ctx context.Context) (subdaos.SubDaoV0, error) {
	acc, err := w.Client.AccountInfo(ctx, w.SubDao)
	if err != nil {
		return subdaos.SubDaoV0{}, err
	}
	return subdaos.DecodeSubDao(acc.Data)
}

func (w *World) FetchSubDaoEpochInfo(ctx context.Context) (subdaos.SubDaoEpochInfoV0, error) {
	key, err := subdaos.SubDaoEpochInfoKey(w.SubDao, w.Epoch)
	if err != nil {
		return subdaos.SubDaoEpochInfoV0{}, err
	}
	acc, err := w.Client.AccountInfo(ctx, key)
	if err != nil {
		return subdaos.SubDaoEpochInfoV0{}, err
	}
	return subdaos.DecodeSubDaoEpochInfo(acc.Data)
}

func (w *World) FetchDaoEpochInfo(ctx context.Context) (subdaos.DaoEpochInfoV0, error) {
	key, err := subdaos.DaoEpochInfoKey(w.Dao, w.Epoch)
	if err != nil {
		return subdaos.DaoEpochInfoV0{}, err
	}
	acc, err := w.Client.AccountInfo(ctx, key)
	if err != nil {
		return subdaos.DaoEpochInfoV0{}, err
	}
	return subdaos.DecodeDaoEpochInfo(acc.Data)
}

// TokenBalance returns the raw amount held by a token account.
func (w *World) TokenBalance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	acc, err := w.Client.AccountInfo(ctx, account)
	if err != nil {
		return 0, err
	}
	var tokenAcc token.Account
	if err = bin.NewBinDecoder(acc.Data).Decode(&tokenAcc); err != nil {
		return 0, err
	}
	return tokenAcc.Amount, nil
}

func (w *World) CalculateUtilityScore(ctx context.Context) error {
	ix, err := subdaos.NewCalculateUtilityScoreV0Instruction(w.Epoch, subdaos.CalculateUtilityScoreAccounts{
		Payer:  w.Sender.Wallet(),
		Dao:    w.Dao,
		SubDao: w.SubDao,
	})
	if err != nil {
		return err
	}
	_, err = w.Sender.Send(ctx, "calculate_utility_score_v0", []solana.Instruction{ix})
	return err
}

func (w *World) IssueRewards(ctx context.Context, treasury solana.PublicKey) error {
	ix, err := subdaos.NewIssueRewardsV0Instruction(w.Epoch, subdaos.IssueRewardsAccounts{
		Dao:      w.Dao,
		SubDao:   w.SubDao,
		HntMint:  w.HntMint,
		Treasury: treasury,
	})
	if err != nil {
		return err
	}
	_, err = w.Sender.Send(ctx, "issue_rewards_v0", []solana.Instruction{ix})
	return err
}
