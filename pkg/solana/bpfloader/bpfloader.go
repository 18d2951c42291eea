// Package bpfloader builds instructions for the BPF upgradeable loader.
package bpfloader

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

// Instruction variants, bincode encoded as a little endian u32.
const (
	InstructionInitializeBuffer uint32 = iota
	InstructionWrite
	InstructionDeployWithMaxDataLen
	InstructionUpgrade
	InstructionSetAuthority
	InstructionClose
)

// ProgramDataKey derives the account holding the executable data of program.
func ProgramDataKey(program solana.PublicKey) (solana.PublicKey, error) {
	key, _, err := solana.FindProgramAddress([][]byte{program[:]}, solana.BPFLoaderUpgradeableProgramID)
	return key, err
}

// NewUpgradeInstruction replaces the code of program with the content of
// buffer. The loader drains the buffer and sends its lamports to spill.
func NewUpgradeInstruction(program, buffer, authority, spill solana.PublicKey) (solana.Instruction, error) {
	programData, err := ProgramDataKey(program)
	if err != nil {
		return nil, err
	}
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, InstructionUpgrade)
	return solana.NewInstruction(solana.BPFLoaderUpgradeableProgramID, solana.AccountMetaSlice{
		solana.Meta(programData).WRITE(),
		solana.Meta(program).WRITE(),
		solana.Meta(buffer).WRITE(),
		solana.Meta(spill).WRITE(),
		solana.Meta(solana.SysVarRentPubkey),
		solana.Meta(solana.SysVarClockPubkey),
		solana.Meta(authority).SIGNER(),
	}, data), nil
}
