// Package squads builds proposals for Squads v3 multisigs: a transaction
// account holding instructions that execute with the multisig authority
// once enough members approved.
package squads

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/helium/helium-ops/pkg/solana/codec"
)

var ProgramID = solana.MustPublicKeyFromBase58("SMPLecH534NA9acpos4G6x7uf3LWbCAwZQE9e8ZekMu")

var seedPrefix = []byte("squad")

// Multisig is the Ms account of a squad.
type Multisig struct {
	Threshold            uint16
	AuthorityIndex       uint16
	TransactionIndex     uint32
	MsChangeIndex        uint32
	Bump                 uint8
	CreateKey            solana.PublicKey
	AllowExternalExecute bool
	Keys                 []solana.PublicKey
}

type TransactionStatus uint8

const (
	StatusDraft TransactionStatus = iota
	StatusActive
	StatusExecuteReady
	StatusExecuted
	StatusRejected
	StatusCancelled
)

// Transaction is the MsTransaction account of a proposal.
type Transaction struct {
	Creator          solana.PublicKey
	Multisig         solana.PublicKey
	TransactionIndex uint32
	AuthorityIndex   uint32
	AuthorityBump    uint8
	Status           TransactionStatus
	InstructionIndex uint8
	Bump             uint8
	Approved         []solana.PublicKey
	Rejected         []solana.PublicKey
	Cancelled        []solana.PublicKey
	ExecutedIndex    uint8
}

func DecodeMultisig(data []byte) (Multisig, error) {
	var out Multisig
	err := codec.DecodeAccount(data, "Ms", &out)
	return out, err
}

func DecodeTransaction(data []byte) (Transaction, error) {
	var out Transaction
	err := codec.DecodeAccount(data, "MsTransaction", &out)
	return out, err
}

func u32LE(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

// AuthorityKey derives the vault signing for the multisig at authorityIndex.
func AuthorityKey(multisig solana.PublicKey, authorityIndex uint32) (solana.PublicKey, error) {
	key, _, err := solana.FindProgramAddress([][]byte{seedPrefix, multisig[:], u32LE(authorityIndex), []byte("authority")}, ProgramID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("deriving squads authority: %w", err)
	}
	return key, nil
}

func TransactionKey(multisig solana.PublicKey, transactionIndex uint32) (solana.PublicKey, error) {
	key, _, err := solana.FindProgramAddress([][]byte{seedPrefix, multisig[:], u32LE(transactionIndex), []byte("transaction")}, ProgramID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("deriving squads transaction: %w", err)
	}
	return key, nil
}

// InstructionKey derives the account of the instruction at index, instruction
// indexes start at 1.
func InstructionKey(transaction solana.PublicKey, index uint8) (solana.PublicKey, error) {
	key, _, err := solana.FindProgramAddress([][]byte{seedPrefix, transaction[:], {index}, []byte("instruction")}, ProgramID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("deriving squads instruction: %w", err)
	}
	return key, nil
}
