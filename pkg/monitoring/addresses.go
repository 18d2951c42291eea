package monitoring

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/helium/helium-ops/pkg/helium/datacredits"
	"github.com/helium/helium-ops/pkg/helium/entitymanager"
	"github.com/helium/helium-ops/pkg/helium/lazytransactions"
	"github.com/helium/helium-ops/pkg/helium/subdaos"
	"github.com/helium/helium-ops/pkg/monitoring/config"
	"github.com/helium/helium-ops/pkg/solana/client"
)

// ErrNotResolved is wrapped by every probe whose inputs failed to resolve.
var ErrNotResolved = errors.New("address not resolved")

// NamedKey is a labelled account.
type NamedKey struct {
	Name    string
	Address solana.PublicKey
}

// SubDao is a resolved sub-DAO account. Err is set when it could not be read.
type SubDao struct {
	Key     solana.PublicKey
	Account subdaos.SubDaoV0
	Err     error
}

// Addresses holds everything the probes watch. Each part that needs an RPC
// read carries its own error so one failure only affects the probes that
// depend on it.
type Addresses struct {
	DaoKey solana.PublicKey
	Dao    subdaos.DaoV0
	DaoErr error

	Mobile SubDao
	Iot    SubDao

	Makers    []entitymanager.Maker
	MakersErr error

	Oracle       solana.PublicKey
	Migration    solana.PublicKey
	LazySigner   solana.PublicKey
	AccountPayer solana.PublicKey
	Threads      []NamedKey
}

type threadSpec struct {
	owner string
	id    string
}

var threads = []threadSpec{
	{"mobile", "calculate"},
	{"mobile", "issue"},
	{"iot", "calculate"},
	{"iot", "issue"},
	{"dao", "issue_hst"},
}

// ResolveAddresses derives every PDA the monitor needs and reads the DAO,
// sub-DAO and maker accounts. The returned error only reports derivation
// failures; read failures are recorded on the matching Addresses field.
func ResolveAddresses(ctx context.Context, reader client.Reader, cfg config.Helium) (Addresses, error) {
	addrs := Addresses{
		Oracle:    cfg.OracleKey,
		Migration: cfg.MigrationKey,
	}
	var err error
	if addrs.DaoKey, err = subdaos.DaoKey(cfg.HntMint); err != nil {
		return addrs, fmt.Errorf("deriving dao key: %w", err)
	}
	if addrs.Mobile.Key, err = subdaos.SubDaoKey(cfg.MobileMint); err != nil {
		return addrs, fmt.Errorf("deriving mobile sub-dao key: %w", err)
	}
	if addrs.Iot.Key, err = subdaos.SubDaoKey(cfg.IotMint); err != nil {
		return addrs, fmt.Errorf("deriving iot sub-dao key: %w", err)
	}
	if addrs.LazySigner, err = lazytransactions.LazySignerKey(cfg.LazySigner); err != nil {
		return addrs, fmt.Errorf("deriving lazy signer key: %w", err)
	}
	if addrs.AccountPayer, err = datacredits.AccountPayerKey(); err != nil {
		return addrs, fmt.Errorf("deriving data credits account payer: %w", err)
	}

	owners := map[string]solana.PublicKey{
		"mobile": addrs.Mobile.Key,
		"iot":    addrs.Iot.Key,
		"dao":    addrs.DaoKey,
	}
	for _, spec := range threads {
		key, err := subdaos.ThreadKey(owners[spec.owner], spec.id)
		if err != nil {
			return addrs, fmt.Errorf("deriving thread %s/%s: %w", spec.owner, spec.id, err)
		}
		addrs.Threads = append(addrs.Threads, NamedKey{
			Name:    fmt.Sprintf("clockwork_thread_%s_%s", spec.owner, spec.id),
			Address: key,
		})
	}

	addrs.Dao, addrs.DaoErr = fetchDao(ctx, reader, addrs.DaoKey)
	addrs.Mobile.Account, addrs.Mobile.Err = fetchSubDao(ctx, reader, addrs.Mobile.Key)
	addrs.Iot.Account, addrs.Iot.Err = fetchSubDao(ctx, reader, addrs.Iot.Key)
	addrs.Makers, addrs.MakersErr = entitymanager.ListMakers(ctx, reader)
	return addrs, nil
}

func fetchDao(ctx context.Context, reader client.AccountReader, key solana.PublicKey) (subdaos.DaoV0, error) {
	acc, err := reader.AccountInfo(ctx, key)
	if err != nil {
		return subdaos.DaoV0{}, fmt.Errorf("reading dao %s: %w", key, err)
	}
	return subdaos.DecodeDao(acc.Data)
}

func fetchSubDao(ctx context.Context, reader client.AccountReader, key solana.PublicKey) (subdaos.SubDaoV0, error) {
	acc, err := reader.AccountInfo(ctx, key)
	if err != nil {
		return subdaos.SubDaoV0{}, fmt.Errorf("reading sub-dao %s: %w", key, err)
	}
	return subdaos.DecodeSubDao(acc.Data)
}
