// Package upgrade replaces the code or the IDL of a deployed program with the
// contents of a buffer account, either signing with a local wallet or through
// a Squads multisig proposal.
package upgrade

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/helium/helium-ops/pkg/solana/bpfloader"
	"github.com/helium/helium-ops/pkg/solana/codec"
	"github.com/helium/helium-ops/pkg/solana/squads"
)

var (
	ErrMissingProgramID = errors.New("--programId is required")
	ErrMissingBufferID  = errors.New("--bufferId is required")
)

type Kind int

const (
	// KindIdl points the Anchor IDL account of a program at a new buffer.
	KindIdl Kind = iota
	// KindProgram upgrades the program code through the upgradeable BPF loader.
	KindProgram
)

func (k Kind) String() string {
	switch k {
	case KindIdl:
		return "upgrade-idl"
	case KindProgram:
		return "upgrade-program"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Options are the raw command line values.
type Options struct {
	ProgramID          string
	BufferID           string
	Multisig           string
	AuthorityIndex     uint32
	ExecuteTransaction bool
	DryRun             bool
}

// Params are validated Options.
type Params struct {
	ProgramID solana.PublicKey
	BufferID  solana.PublicKey
	// Multisig is nil when the wallet is the authority.
	Multisig           *solana.PublicKey
	AuthorityIndex     uint32
	ExecuteTransaction bool
	DryRun             bool
}

// Parse validates the options without touching the network.
func (o Options) Parse() (Params, error) {
	if o.ProgramID == "" {
		return Params{}, ErrMissingProgramID
	}
	if o.BufferID == "" {
		return Params{}, ErrMissingBufferID
	}
	p := Params{
		AuthorityIndex:     o.AuthorityIndex,
		ExecuteTransaction: o.ExecuteTransaction,
		DryRun:             o.DryRun,
	}
	var err error
	if p.ProgramID, err = solana.PublicKeyFromBase58(o.ProgramID); err != nil {
		return Params{}, fmt.Errorf("invalid --programId '%s': %w", o.ProgramID, err)
	}
	if p.BufferID, err = solana.PublicKeyFromBase58(o.BufferID); err != nil {
		return Params{}, fmt.Errorf("invalid --bufferId '%s': %w", o.BufferID, err)
	}
	if o.Multisig != "" {
		multisig, err := solana.PublicKeyFromBase58(o.Multisig)
		if err != nil {
			return Params{}, fmt.Errorf("invalid --multisig '%s': %w", o.Multisig, err)
		}
		p.Multisig = &multisig
	}
	return p, nil
}

// Authority is the account that must sign the upgrade: the wallet, or the
// Squads authority PDA of the multisig.
func (p Params) Authority(wallet solana.PublicKey) (solana.PublicKey, error) {
	if p.Multisig == nil {
		return wallet, nil
	}
	return squads.AuthorityKey(*p.Multisig, p.AuthorityIndex)
}

// Instructions builds the upgrade. The IDL upgrade closes the buffer
// afterwards, refunding its rent to the authority. The program upgrade sends
// the buffer lamports to spill.
func Instructions(kind Kind, p Params, authority, spill solana.PublicKey) ([]solana.Instruction, error) {
	switch kind {
	case KindIdl:
		setBuffer, err := codec.NewIdlSetBufferInstruction(p.ProgramID, p.BufferID, authority)
		if err != nil {
			return nil, err
		}
		return []solana.Instruction{
			setBuffer,
			codec.NewIdlCloseInstruction(p.ProgramID, p.BufferID, authority),
		}, nil
	case KindProgram:
		upgrade, err := bpfloader.NewUpgradeInstruction(p.ProgramID, p.BufferID, authority, spill)
		if err != nil {
			return nil, err
		}
		return []solana.Instruction{upgrade}, nil
	default:
		return nil, fmt.Errorf("unknown upgrade kind %s", kind)
	}
}
