// Package entitymanager reads makers registered with the
// helium-entity-manager program.
package entitymanager

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/multierr"

	"github.com/helium/helium-ops/pkg/solana/client"
	"github.com/helium/helium-ops/pkg/solana/codec"
)

var ProgramID = solana.MustPublicKeyFromBase58("hemjuPXBpNvggtaUnN1MwT3wrdhttKEfosTcc2P9Pg8")

const makerAccountName = "MakerV0"

type MakerV0 struct {
	UpdateAuthority    solana.PublicKey
	IssuingAuthority   solana.PublicKey
	Name               string
	BumpSeed           uint8
	Collection         solana.PublicKey
	MerkleTree         solana.PublicKey
	CollectionBumpSeed uint8
	Dao                solana.PublicKey
}

type Maker struct {
	Address solana.PublicKey
	MakerV0
}

// ProgramAccountsReader lists accounts owned by a program.
type ProgramAccountsReader interface {
	ProgramAccounts(ctx context.Context, program solana.PublicKey, filters ...rpc.RPCFilter) ([]client.Account, error)
}

func MakerKey(dao solana.PublicKey, name string) (solana.PublicKey, error) {
	key, _, err := solana.FindProgramAddress([][]byte{[]byte("maker"), dao[:], []byte(name)}, ProgramID)
	return key, err
}

func DecodeMaker(data []byte) (MakerV0, error) {
	var out MakerV0
	err := codec.DecodeAccount(data, makerAccountName, &out)
	return out, err
}

// ListMakers returns every maker account. Accounts that fail to decode are
// skipped and reported in the returned error next to the decoded makers.
func ListMakers(ctx context.Context, reader ProgramAccountsReader) ([]Maker, error) {
	accounts, err := reader.ProgramAccounts(ctx, ProgramID, codec.DiscriminatorFilter(makerAccountName))
	if err != nil {
		return nil, fmt.Errorf("listing makers: %w", err)
	}
	var (
		makers []Maker
		errs   error
	)
	for _, account := range accounts {
		maker, decodeErr := DecodeMaker(account.Data)
		if decodeErr != nil {
			errs = multierr.Append(errs, fmt.Errorf("maker %s: %w", account.Address, decodeErr))
			continue
		}
		makers = append(makers, Maker{Address: account.Address, MakerV0: maker})
	}
	return makers, errs
}
