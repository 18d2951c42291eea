package codec

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

const idlSeed = "anchor:idl"

// idlInstructionTag prefixes every instruction handled by Anchor's built in
// IDL management entrypoint (the little endian bytes of 0x0a69e9a778bcf440).
var idlInstructionTag = []byte{0x40, 0xf4, 0xbc, 0x78, 0xa7, 0xe9, 0x69, 0x0a}

type IdlInstruction uint8

// Variants of the IDL instruction enum, in declaration order.
const (
	IdlCreate IdlInstruction = iota
	IdlCreateBuffer
	IdlWrite
	IdlSetBuffer
	IdlSetAuthority
	IdlClose
	IdlResize
)

func (i IdlInstruction) String() string {
	switch i {
	case IdlCreate:
		return "Create"
	case IdlCreateBuffer:
		return "CreateBuffer"
	case IdlWrite:
		return "Write"
	case IdlSetBuffer:
		return "SetBuffer"
	case IdlSetAuthority:
		return "SetAuthority"
	case IdlClose:
		return "Close"
	case IdlResize:
		return "Resize"
	}
	return fmt.Sprintf("IdlInstruction(%d)", uint8(i))
}

// IdlAddress returns the account holding the on-chain IDL of programID.
func IdlAddress(programID solana.PublicKey) (solana.PublicKey, error) {
	base, _, err := solana.FindProgramAddress([][]byte{}, programID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("deriving idl base address: %w", err)
	}
	return solana.CreateWithSeed(base, idlSeed, programID)
}

func idlInstructionData(ix IdlInstruction) []byte {
	return append(append([]byte{}, idlInstructionTag...), byte(ix))
}

// NewIdlSetBufferInstruction replaces the IDL of programID with the content of
// buffer. Both the buffer and the IDL account must be owned by authority.
func NewIdlSetBufferInstruction(programID, buffer, authority solana.PublicKey) (solana.Instruction, error) {
	idl, err := IdlAddress(programID)
	if err != nil {
		return nil, err
	}
	return solana.NewInstruction(programID, solana.AccountMetaSlice{
		solana.Meta(buffer).WRITE(),
		solana.Meta(idl).WRITE(),
		solana.Meta(authority).SIGNER(),
	}, idlInstructionData(IdlSetBuffer)), nil
}

// NewIdlCloseInstruction closes an IDL account or buffer and refunds the rent
// to authority.
func NewIdlCloseInstruction(programID, account, authority solana.PublicKey) solana.Instruction {
	return solana.NewInstruction(programID, solana.AccountMetaSlice{
		solana.Meta(account).WRITE(),
		solana.Meta(authority).SIGNER(),
		solana.Meta(authority).WRITE(),
	}, idlInstructionData(IdlClose))
}
