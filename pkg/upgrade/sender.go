package upgrade

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/text"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/helium/helium-ops/pkg/solana/client"
	"github.com/helium/helium-ops/pkg/solana/fees"
)

const maxSendAttempts = 3

// Sender signs transactions with a single wallet, submits them and waits for
// their confirmation.
type Sender struct {
	client            client.ReaderWriter
	wallet            solana.PrivateKey
	confirmPollPeriod time.Duration
	txTimeout         time.Duration
	// out receives a tree dump of every transaction before it is signed.
	out    io.Writer
	log    zerolog.Logger
	budget fees.Budget
}

func NewSender(c client.ReaderWriter, wallet solana.PrivateKey, confirmPollPeriod, txTimeout time.Duration, out io.Writer, log zerolog.Logger) *Sender {
	return &Sender{
		client:            c,
		wallet:            wallet,
		confirmPollPeriod: confirmPollPeriod,
		txTimeout:         txTimeout,
		out:               out,
		log:               log,
	}
}

// WithBudget puts the compute budget instructions of b in front of every
// transaction.
func (s *Sender) WithBudget(b fees.Budget) *Sender {
	s.budget = b
	return s
}

func (s *Sender) Wallet() solana.PublicKey {
	return s.wallet.PublicKey()
}

// Print writes the tree of a transaction holding ixs without signing it.
func (s *Sender) Print(name string, ixs []solana.Instruction) error {
	tx, err := solana.NewTransaction(s.withBudget(ixs), solana.Hash{}, solana.TransactionPayer(s.wallet.PublicKey()))
	if err != nil {
		return errors.Wrap(err, "building transaction")
	}
	_, err = tx.EncodeTree(text.NewTreeEncoder(s.out, name))
	return err
}

// Send submits ixs in one transaction paid and signed by the wallet. Sends
// failing with a retryable error are retried with a fresh blockhash.
func (s *Sender) Send(ctx context.Context, name string, ixs []solana.Instruction) (solana.Signature, error) {
	ctx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	var lastErr error
	for attempt := 1; attempt <= maxSendAttempts; attempt++ {
		tx, err := s.build(ctx, name, ixs)
		if err != nil {
			return solana.Signature{}, errors.Wrapf(err, "building %s", name)
		}
		sig, err := s.client.SendTx(ctx, tx)
		if err == nil {
			s.log.Info().Str("tx", name).Stringer("signature", sig).Msg("transaction sent")
			return sig, s.confirm(ctx, sig)
		}
		lastErr = err
		code := client.ClassifySendError(err)
		if code != client.Retryable {
			return solana.Signature{}, errors.Wrapf(err, "sending %s (%s)", name, code)
		}
		s.log.Warn().Err(err).Str("tx", name).Int("attempt", attempt).Msg("retrying transaction")
		select {
		case <-ctx.Done():
			return solana.Signature{}, errors.Wrapf(lastErr, "sending %s", name)
		case <-time.After(s.confirmPollPeriod):
		}
	}
	return solana.Signature{}, errors.Wrapf(lastErr, "sending %s failed after %d attempts", name, maxSendAttempts)
}

// build signs a transaction on the latest blockhash and dumps it to out.
func (s *Sender) build(ctx context.Context, name string, ixs []solana.Instruction) (*solana.Transaction, error) {
	recent, err := s.client.LatestBlockhash(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := solana.NewTransaction(s.withBudget(ixs), recent.Value.Blockhash, solana.TransactionPayer(s.wallet.PublicKey()))
	if err != nil {
		return nil, err
	}
	if _, err = tx.EncodeTree(text.NewTreeEncoder(s.out, name)); err != nil {
		return nil, err
	}
	if _, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(s.wallet.PublicKey()) {
			return &s.wallet
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *Sender) withBudget(ixs []solana.Instruction) []solana.Instruction {
	return append(s.budget.Instructions(), ixs...)
}

// confirm polls the signature status until the transaction is confirmed or fails.
func (s *Sender) confirm(ctx context.Context, sig solana.Signature) error {
	ticker := time.NewTicker(s.confirmPollPeriod)
	defer ticker.Stop()
	for {
		statuses, err := s.client.SignatureStatuses(ctx, []solana.Signature{sig})
		if err != nil {
			s.log.Debug().Err(err).Stringer("signature", sig).Msg("failed to fetch signature status")
		} else if len(statuses) == 1 && statuses[0] != nil {
			status := statuses[0]
			if status.Err != nil {
				return fmt.Errorf("transaction %s failed: %v", sig, status.Err)
			}
			if status.ConfirmationStatus == rpc.ConfirmationStatusConfirmed || status.ConfirmationStatus == rpc.ConfirmationStatusFinalized {
				s.log.Debug().Stringer("signature", sig).Str("status", string(status.ConfirmationStatus)).Msg("transaction confirmed")
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return errors.Wrapf(ctx.Err(), "waiting for confirmation of %s", sig)
		case <-ticker.C:
		}
	}
}
