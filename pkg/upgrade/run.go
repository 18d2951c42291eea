package upgrade

import (
	"context"
	"fmt"
	"io"
)

// Run prints the upgrade authority and submits the upgrade, either directly
// or as a multisig proposal. With DryRun the instructions are printed instead.
func Run(ctx context.Context, kind Kind, p Params, s *Sender, out io.Writer) error {
	wallet := s.Wallet()
	authority, err := p.Authority(wallet)
	if err != nil {
		return fmt.Errorf("deriving authority: %w", err)
	}
	fmt.Fprintln(out, authority.String())

	ixs, err := Instructions(kind, p, authority, wallet)
	if err != nil {
		return err
	}
	if p.DryRun {
		return s.Print(kind.String(), ixs)
	}
	if p.Multisig == nil {
		_, err = s.Send(ctx, kind.String(), ixs)
		return err
	}
	_, err = s.Propose(ctx, *p.Multisig, p.AuthorityIndex, ixs, p.ExecuteTransaction)
	return err
}
