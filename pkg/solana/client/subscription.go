package client

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"

	"github.com/helium/helium-ops/pkg/solana/internal"
	"github.com/helium/helium-ops/pkg/solana/logger"
)

// AccountNotifier pushes account change notifications.
type AccountNotifier interface {
	// Notify blocks, writing every notification for addr to out, until ctx is done.
	// Dropped subscriptions are re-opened.
	Notify(ctx context.Context, addr solana.PublicKey, out chan<- Account)
}

var _ AccountNotifier = (*WSNotifier)(nil)

// WSNotifier implements AccountNotifier with websocket accountSubscribe calls
// sharing a single lazily dialed connection.
type WSNotifier struct {
	conn             internal.Loader[*ws.Client]
	commitment       rpc.CommitmentType
	resubscribeDelay time.Duration
	log              logger.Logger
}

func NewWSNotifier(endpoint string, commitment rpc.CommitmentType, resubscribeDelay time.Duration, log logger.Logger) *WSNotifier {
	return &WSNotifier{
		conn: internal.NewLoader[*ws.Client](func() (*ws.Client, error) {
			return ws.Connect(context.Background(), endpoint)
		}),
		commitment:       commitment,
		resubscribeDelay: resubscribeDelay,
		log:              log,
	}
}

func (n *WSNotifier) Notify(ctx context.Context, addr solana.PublicKey, out chan<- Account) {
	log := n.log.With("account", addr.String())
SUBSCRIBE_LOOP:
	for {
		log.Debugw("subscribing to account updates")
		conn, err := n.conn.Get()
		if err != nil {
			log.Errorw("error connecting to websocket endpoint", "error", err)
			if !n.wait(ctx) {
				return
			}
			continue SUBSCRIBE_LOOP
		}
		subscription, err := conn.AccountSubscribeWithOpts(addr, n.commitment, solana.EncodingBase64)
		if err != nil {
			log.Errorw("error creating account subscription", "error", err)
			n.conn.Reset()
			if !n.wait(ctx) {
				return
			}
			continue SUBSCRIBE_LOOP
		}
		results := make(chan *ws.AccountResult)
		errs := make(chan error, 1)
		go func() {
			for {
				result, err := subscription.Recv(ctx)
				if err == nil && result == nil {
					err = ws.ErrSubscriptionClosed
				}
				if err != nil {
					if ctx.Err() == nil {
						errs <- err
					}
					return
				}
				select {
				case results <- result:
				case <-ctx.Done():
					return
				}
			}
		}()
		for {
			select {
			case <-ctx.Done():
				subscription.Unsubscribe()
				return
			case err := <-errs:
				log.Errorw("error reading message from account subscription, reconnecting", "error", err)
				subscription.Unsubscribe()
				n.conn.Reset()
				if !n.wait(ctx) {
					return
				}
				continue SUBSCRIBE_LOOP
			case result := <-results:
				account := accountFromRPC(addr, result.Context.Slot, &result.Value.Account)
				select {
				case out <- account:
				case <-ctx.Done():
					subscription.Unsubscribe()
					return
				}
			}
		}
	}
}

// Close tears down the shared websocket connection.
func (n *WSNotifier) Close() {
	if conn, ok := n.conn.Cached(); ok {
		conn.Close()
	}
	n.conn.Reset()
}

func (n *WSNotifier) wait(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(n.resubscribeDelay):
		return true
	}
}
