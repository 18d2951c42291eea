package upgrade

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/helium/helium-ops/pkg/solana/squads"
)

// Propose wraps ixs in the next transaction of the multisig. The wallet
// creates, fills, activates and approves it; the proposal only executes when
// execute is set, otherwise the remaining members approve and execute it.
func (s *Sender) Propose(ctx context.Context, multisig solana.PublicKey, authorityIndex uint32, ixs []solana.Instruction, execute bool) (*squads.Proposal, error) {
	acc, err := s.client.AccountInfo(ctx, multisig)
	if err != nil {
		return nil, errors.Wrapf(err, "reading multisig %s", multisig)
	}
	ms, err := squads.DecodeMultisig(acc.Data)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding multisig %s", multisig)
	}
	proposal, err := squads.NewProposal(multisig, ms, authorityIndex, ixs)
	if err != nil {
		return nil, err
	}
	wallet := s.Wallet()
	log := s.log.With().Stringer("multisig", multisig).Uint32("index", proposal.Index).Stringer("transaction", proposal.Transaction).Logger()

	create, err := proposal.CreateInstruction(wallet)
	if err != nil {
		return nil, err
	}
	if _, err = s.Send(ctx, "create_transaction", []solana.Instruction{create}); err != nil {
		return nil, err
	}
	log.Info().Msg("proposal created")

	adds, err := proposal.AddInstructions(wallet)
	if err != nil {
		return nil, err
	}
	for i, add := range adds {
		if _, err = s.Send(ctx, fmt.Sprintf("add_instruction_%d", i+1), []solana.Instruction{add}); err != nil {
			return nil, err
		}
	}

	activate, err := proposal.ActivateInstruction(wallet)
	if err != nil {
		return nil, err
	}
	approve, err := proposal.ApproveInstruction(wallet)
	if err != nil {
		return nil, err
	}
	if _, err = s.Send(ctx, "activate_and_approve", []solana.Instruction{activate, approve}); err != nil {
		return nil, err
	}
	log.Info().Int("instructions", len(adds)).Msg("proposal activated and approved")

	if !execute {
		return proposal, nil
	}
	exec, err := proposal.ExecuteInstruction(wallet)
	if err != nil {
		return nil, err
	}
	if _, err = s.Send(ctx, "execute_transaction", []solana.Instruction{exec}); err != nil {
		return nil, err
	}
	log.Info().Msg("proposal executed")
	return proposal, nil
}
