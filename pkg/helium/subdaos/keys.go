// Package subdaos reads and drives the helium-sub-daos program: DAO and
// sub-DAO accounts, per epoch accounting and reward issuance.
package subdaos

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

var (
	ProgramID = solana.MustPublicKeyFromBase58("hdaoVTCqhfHHo75XdAMxBKdUqvq1i5bF23sisBqVgGR")
	// ThreadProgramID is the clockwork program running the epoch crons.
	ThreadProgramID = solana.MustPublicKeyFromBase58("CLoCKyJ6DXBJqqu2VWx9RLbgnwwR6BMHHuyasVmfMzBh")
)

func findKey(programID solana.PublicKey, seeds ...[]byte) (solana.PublicKey, error) {
	key, _, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("finding program address: %w", err)
	}
	return key, nil
}

// DaoKey derives the DAO account of the hnt mint.
func DaoKey(hntMint solana.PublicKey) (solana.PublicKey, error) {
	return findKey(ProgramID, []byte("dao"), hntMint[:])
}

// SubDaoKey derives the sub-DAO account of a DNT mint.
func SubDaoKey(dntMint solana.PublicKey) (solana.PublicKey, error) {
	return findKey(ProgramID, []byte("sub_dao"), dntMint[:])
}

func SubDaoEpochInfoKey(subDao solana.PublicKey, epoch uint64) (solana.PublicKey, error) {
	return findKey(ProgramID, []byte("sub_dao_epoch_info"), subDao[:], u64LE(epoch))
}

func DaoEpochInfoKey(dao solana.PublicKey, epoch uint64) (solana.PublicKey, error) {
	return findKey(ProgramID, []byte("dao_epoch_info"), dao[:], u64LE(epoch))
}

// ThreadKey derives the clockwork thread id owned by authority.
func ThreadKey(authority solana.PublicKey, id string) (solana.PublicKey, error) {
	return findKey(ThreadProgramID, []byte("thread"), authority[:], []byte(id))
}

func u64LE(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}
