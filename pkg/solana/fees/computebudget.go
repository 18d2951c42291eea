package fees

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// https://github.com/solana-labs/solana/blob/60858d043ca612334de300805d93ea3014e8ab37/sdk/src/compute_budget.rs#L25
const (
	// deprecated: no builder
	InstructionRequestUnitsDeprecated computeBudgetInstruction = iota

	// Request a transaction-wide program heap region size in bytes.
	InstructionRequestHeapFrame

	// Set the compute unit limit the transaction is allowed to consume.
	InstructionSetComputeUnitLimit

	// Set a compute unit price in micro-lamports, raising the priority of the
	// transaction.
	InstructionSetComputeUnitPrice
)

var ComputeBudgetProgram = solana.MustPublicKeyFromBase58("ComputeBudget111111111111111111111111111111")

type computeBudgetInstruction uint8

func (ins computeBudgetInstruction) String() (out string) {
	out = "INVALID"
	switch ins {
	case InstructionRequestUnitsDeprecated:
		out = "RequestUnitsDeprecated"
	case InstructionRequestHeapFrame:
		out = "RequestHeapFrame"
	case InstructionSetComputeUnitLimit:
		out = "SetComputeUnitLimit"
	case InstructionSetComputeUnitPrice:
		out = "SetComputeUnitPrice"
	}
	return out
}

type unsigned interface {
	~uint32 | ~uint64
}

// ComputeUnitPrice is in micro-lamports per compute unit.
// https://docs.solana.com/developing/programming-model/runtime
type ComputeUnitPrice uint64

type ComputeUnitLimit uint32

// Budget holds the optional compute budget of a transaction. Zero values are
// left to the runtime defaults.
type Budget struct {
	Price ComputeUnitPrice
	Limit ComputeUnitLimit
}

// Instructions returns the compute budget instructions to put in front of a
// transaction.
func (b Budget) Instructions() []solana.Instruction {
	var out []solana.Instruction
	if b.Limit > 0 {
		out = append(out, newInstruction(encode(InstructionSetComputeUnitLimit, b.Limit)))
	}
	if b.Price > 0 {
		out = append(out, newInstruction(encode(InstructionSetComputeUnitPrice, b.Price)))
	}
	return out
}

func newInstruction(data []byte) solana.Instruction {
	return solana.NewInstruction(ComputeBudgetProgram, solana.AccountMetaSlice{}, data)
}

// encode prefixes the little endian value with the instruction identifier.
func encode[V unsigned](identifier computeBudgetInstruction, val V) []byte {
	buf := make([]byte, 1+binary.Size(val))
	buf[0] = uint8(identifier)
	switch v := any(val).(type) {
	case ComputeUnitLimit:
		binary.LittleEndian.PutUint32(buf[1:], uint32(v))
	case ComputeUnitPrice:
		binary.LittleEndian.PutUint64(buf[1:], uint64(v))
	}
	return buf
}

func ParseComputeUnitPrice(data []byte) (ComputeUnitPrice, error) {
	v, err := parse(InstructionSetComputeUnitPrice, data, binary.LittleEndian.Uint64)
	return ComputeUnitPrice(v), err
}

func ParseComputeUnitLimit(data []byte) (ComputeUnitLimit, error) {
	v, err := parse(InstructionSetComputeUnitLimit, data, binary.LittleEndian.Uint32)
	return ComputeUnitLimit(v), err
}

// parse decodes the instruction data of ins.
func parse[V unsigned](ins computeBudgetInstruction, data []byte, decoder func([]byte) V) (V, error) {
	if len(data) != (1 + binary.Size(V(0))) { // instruction byte + uintXXX length
		return 0, fmt.Errorf("invalid length: %d", len(data))
	}
	if data[0] != uint8(ins) {
		return 0, fmt.Errorf("not %s identifier: %d", ins, data[0])
	}
	return decoder(data[1:]), nil
}
