package monitoring

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/helium/helium-ops/pkg/monitoring/metrics"
	"github.com/helium/helium-ops/pkg/solana/client"
	"github.com/helium/helium-ops/pkg/solana/logger"
)

// Source tells an OnChange callback why it is being invoked.
type Source string

const (
	SourceInitial  Source = "initial"
	SourcePush     Source = "push"
	SourceRefresh  Source = "refresh"
	SourceCallback Source = "callback"
)

var ErrCacheClosed = errors.New("account cache is closed")

// OnChange receives the latest copy of a watched account. A missing account is
// delivered with only its Address set, see client.Account.Exists.
type OnChange func(ctx context.Context, acc client.Account, source Source) error

// Watcher keeps callbacks informed about an account.
type Watcher interface {
	Watch(ctx context.Context, addr solana.PublicKey, onChange OnChange) error
}

var _ Watcher = (*AccountCache)(nil)

// AccountCache watches accounts through push notifications and refetches each
// one when no notification arrived for a full refresh period.
type AccountCache struct {
	reader        client.AccountReader
	notifier      client.AccountNotifier
	refreshPeriod time.Duration
	errs          metrics.WatchErrors
	log           logger.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	closed  bool
	entries map[solana.PublicKey]*watchedAccount
}

// watchedAccount is owned by one run goroutine. deliverMu serializes every
// callback invocation for the address.
type watchedAccount struct {
	address   solana.PublicKey
	deliverMu sync.Mutex
	last      client.Account
	callbacks []OnChange
}

func NewAccountCache(
	ctx context.Context,
	reader client.AccountReader,
	notifier client.AccountNotifier,
	refreshPeriod time.Duration,
	errs metrics.WatchErrors,
	log logger.Logger,
) *AccountCache {
	ctx, cancel := context.WithCancel(ctx)
	return &AccountCache{
		reader:        reader,
		notifier:      notifier,
		refreshPeriod: refreshPeriod,
		errs:          errs,
		log:           log,
		ctx:           ctx,
		cancel:        cancel,
		entries:       map[solana.PublicKey]*watchedAccount{},
	}
}

// Watch fetches addr, hands the result to onChange and keeps onChange up to
// date until the cache is closed. Errors from the first fetch or the first
// callback are returned and onChange is not registered.
func (c *AccountCache) Watch(ctx context.Context, addr solana.PublicKey, onChange OnChange) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrCacheClosed
	}

	if entry, ok := c.entries[addr]; ok {
		entry.deliverMu.Lock()
		defer entry.deliverMu.Unlock()
		if err := onChange(ctx, entry.last, SourceInitial); err != nil {
			return err
		}
		entry.callbacks = append(entry.callbacks, onChange)
		return nil
	}

	acc, err := c.fetch(ctx, addr)
	if err != nil {
		c.errs.Inc(addr.String(), string(SourceInitial))
		return fmt.Errorf("initial fetch of %s: %w", addr, err)
	}
	if err = onChange(ctx, acc, SourceInitial); err != nil {
		return err
	}

	entry := &watchedAccount{
		address:   addr,
		last:      acc,
		callbacks: []OnChange{onChange},
	}
	c.entries[addr] = entry
	c.wg.Add(2)
	pushes := make(chan client.Account)
	go func() {
		defer c.wg.Done()
		c.notifier.Notify(c.ctx, addr, pushes)
	}()
	go func() {
		defer c.wg.Done()
		c.run(entry, pushes)
	}()
	return nil
}

// Close stops every watch loop and waits for them to exit.
func (c *AccountCache) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.cancel()
	c.wg.Wait()
}

func (c *AccountCache) run(entry *watchedAccount, pushes <-chan client.Account) {
	log := c.log.With("account", entry.address.String())
	timer := time.NewTimer(c.refreshPeriod)
	defer timer.Stop()
	for {
		select {
		case <-c.ctx.Done():
			return
		case acc := <-pushes:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(c.refreshPeriod)
			c.deliver(entry, acc, SourcePush, log)
		case <-timer.C:
			acc, err := c.fetch(c.ctx, entry.address)
			if err != nil {
				if c.ctx.Err() != nil {
					return
				}
				log.Warnw("failed to refresh account", "error", err)
				c.errs.Inc(entry.address.String(), string(SourceRefresh))
			} else {
				c.deliver(entry, acc, SourceRefresh, log)
			}
			timer.Reset(c.refreshPeriod)
		}
	}
}

func (c *AccountCache) deliver(entry *watchedAccount, acc client.Account, source Source, log logger.Logger) {
	entry.deliverMu.Lock()
	defer entry.deliverMu.Unlock()
	if acc.Slot != 0 && acc.Slot < entry.last.Slot {
		log.Debugw("dropping stale account update", "source", source, "slot", acc.Slot, "lastSlot", entry.last.Slot)
		return
	}
	entry.last = acc
	for _, onChange := range entry.callbacks {
		if err := onChange(c.ctx, acc, source); err != nil {
			log.Errorw("account callback failed", "source", source, "error", err)
			c.errs.Inc(entry.address.String(), string(SourceCallback))
		}
	}
}

// fetch reads addr, turning a missing account into an empty one.
func (c *AccountCache) fetch(ctx context.Context, addr solana.PublicKey) (client.Account, error) {
	acc, err := c.reader.AccountInfo(ctx, addr)
	if errors.Is(err, client.ErrAccountNotFound) {
		return client.Account{Address: addr}, nil
	}
	if err != nil {
		return client.Account{}, err
	}
	acc.Address = addr
	return acc, nil
}
