package squads

import (
	"fmt"
	"math"

	"github.com/gagliardetto/solana-go"

	"github.com/helium/helium-ops/pkg/solana/codec"
)

type MsAccountMeta struct {
	Pubkey     solana.PublicKey
	IsSigner   bool
	IsWritable bool
}

// IncomingInstruction is an instruction stored in a proposal.
type IncomingInstruction struct {
	ProgramID solana.PublicKey
	Keys      []MsAccountMeta
	Data      []byte
}

func toIncoming(ix solana.Instruction) (IncomingInstruction, error) {
	data, err := ix.Data()
	if err != nil {
		return IncomingInstruction{}, err
	}
	keys := make([]MsAccountMeta, 0, len(ix.Accounts()))
	for _, meta := range ix.Accounts() {
		keys = append(keys, MsAccountMeta{Pubkey: meta.PublicKey, IsSigner: meta.IsSigner, IsWritable: meta.IsWritable})
	}
	return IncomingInstruction{ProgramID: ix.ProgramID(), Keys: keys, Data: data}, nil
}

// Proposal is the next transaction of a multisig. Its instructions run with
// the authority of AuthorityIndex once executed.
type Proposal struct {
	Multisig       solana.PublicKey
	AuthorityIndex uint32
	Index          uint32
	Transaction    solana.PublicKey
	Instructions   []solana.Instruction
}

// NewProposal prepares the proposal following the last transaction of ms.
func NewProposal(multisig solana.PublicKey, ms Multisig, authorityIndex uint32, instructions []solana.Instruction) (*Proposal, error) {
	if len(instructions) == 0 {
		return nil, fmt.Errorf("proposal needs at least one instruction")
	}
	if len(instructions) > math.MaxUint8 {
		return nil, fmt.Errorf("proposal holds at most %d instructions, got %d", math.MaxUint8, len(instructions))
	}
	index := ms.TransactionIndex + 1
	tx, err := TransactionKey(multisig, index)
	if err != nil {
		return nil, err
	}
	return &Proposal{
		Multisig:       multisig,
		AuthorityIndex: authorityIndex,
		Index:          index,
		Transaction:    tx,
		Instructions:   instructions,
	}, nil
}

func (p *Proposal) CreateInstruction(creator solana.PublicKey) (solana.Instruction, error) {
	data, err := codec.EncodeInstructionData("create_transaction", p.AuthorityIndex)
	if err != nil {
		return nil, err
	}
	return solana.NewInstruction(ProgramID, solana.AccountMetaSlice{
		solana.Meta(p.Multisig).WRITE(),
		solana.Meta(p.Transaction).WRITE(),
		solana.Meta(creator).SIGNER().WRITE(),
		solana.Meta(solana.SystemProgramID),
	}, data), nil
}

// AddInstructions stores each proposed instruction in its own account.
func (p *Proposal) AddInstructions(creator solana.PublicKey) ([]solana.Instruction, error) {
	out := make([]solana.Instruction, 0, len(p.Instructions))
	for i, ix := range p.Instructions {
		incoming, err := toIncoming(ix)
		if err != nil {
			return nil, fmt.Errorf("instruction %d: %w", i, err)
		}
		data, err := codec.EncodeInstructionData("add_instruction", incoming)
		if err != nil {
			return nil, err
		}
		ixKey, err := InstructionKey(p.Transaction, uint8(i+1))
		if err != nil {
			return nil, err
		}
		out = append(out, solana.NewInstruction(ProgramID, solana.AccountMetaSlice{
			solana.Meta(p.Multisig),
			solana.Meta(p.Transaction).WRITE(),
			solana.Meta(ixKey).WRITE(),
			solana.Meta(creator).SIGNER().WRITE(),
			solana.Meta(solana.SystemProgramID),
		}, data))
	}
	return out, nil
}

func (p *Proposal) ActivateInstruction(creator solana.PublicKey) (solana.Instruction, error) {
	data, err := codec.EncodeInstructionData("activate_transaction")
	if err != nil {
		return nil, err
	}
	return solana.NewInstruction(ProgramID, solana.AccountMetaSlice{
		solana.Meta(p.Multisig),
		solana.Meta(p.Transaction).WRITE(),
		solana.Meta(creator).SIGNER().WRITE(),
	}, data), nil
}

func (p *Proposal) ApproveInstruction(member solana.PublicKey) (solana.Instruction, error) {
	data, err := codec.EncodeInstructionData("approve_transaction")
	if err != nil {
		return nil, err
	}
	return solana.NewInstruction(ProgramID, solana.AccountMetaSlice{
		solana.Meta(p.Multisig).WRITE(),
		solana.Meta(p.Transaction).WRITE(),
		solana.Meta(member).SIGNER().WRITE(),
	}, data), nil
}

// ExecuteInstruction runs every stored instruction. The accounts of all
// stored instructions are passed once each, account_list maps every
// (instruction account, program, keys...) position to that deduplicated list.
func (p *Proposal) ExecuteInstruction(member solana.PublicKey) (solana.Instruction, error) {
	var expanded []*solana.AccountMeta
	for i, ix := range p.Instructions {
		ixKey, err := InstructionKey(p.Transaction, uint8(i+1))
		if err != nil {
			return nil, err
		}
		expanded = append(expanded, solana.Meta(ixKey), solana.Meta(ix.ProgramID()))
		for _, meta := range ix.Accounts() {
			expanded = append(expanded, solana.NewAccountMeta(meta.PublicKey, meta.IsWritable, false))
		}
	}

	var unique solana.AccountMetaSlice
	positions := map[solana.PublicKey]int{}
	accountList := make([]byte, 0, len(expanded))
	for _, meta := range expanded {
		pos, ok := positions[meta.PublicKey]
		if !ok {
			pos = len(unique)
			if pos > math.MaxUint8 {
				return nil, fmt.Errorf("proposal references more than %d accounts", math.MaxUint8+1)
			}
			positions[meta.PublicKey] = pos
			unique = append(unique, solana.NewAccountMeta(meta.PublicKey, meta.IsWritable, false))
		} else if meta.IsWritable {
			unique[pos].IsWritable = true
		}
		accountList = append(accountList, byte(pos))
	}

	data, err := codec.EncodeInstructionData("execute_transaction", accountList)
	if err != nil {
		return nil, err
	}
	accounts := solana.AccountMetaSlice{
		solana.Meta(p.Multisig).WRITE(),
		solana.Meta(p.Transaction).WRITE(),
		solana.Meta(member).SIGNER().WRITE(),
	}
	return solana.NewInstruction(ProgramID, append(accounts, unique...), data), nil
}
