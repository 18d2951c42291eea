package testutils

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/helium/helium-ops/pkg/solana/client"
)

// Context returns a context with the test's deadline, if available.
func Context(tb testing.TB) context.Context {
	ctx := context.Background()
	var cancel func()
	switch t := tb.(type) {
	case *testing.T:
		if d, ok := t.Deadline(); ok {
			ctx, cancel = context.WithDeadline(ctx, d)
		}
	}
	if cancel == nil {
		ctx, cancel = context.WithCancel(ctx)
	}
	tb.Cleanup(cancel)
	return ctx
}

// DefaultWaitTimeout is the default wait timeout. If you have a *testing.T, use WaitTimeout instead.
const DefaultWaitTimeout = 30 * time.Second

// WaitTimeout returns a timeout based on the test's Deadline, if available.
// Especially important to use in parallel tests, as their individual execution
// can get paused for arbitrary amounts of time.
func WaitTimeout(t *testing.T) time.Duration {
	if d, ok := t.Deadline(); ok {
		// 10% buffer for cleanup and scheduling delay
		return time.Until(d) * 9 / 10
	}
	return DefaultWaitTimeout
}

// TestInterval is just a sensible poll interval that gives fast tests without
// risk of spamming
const TestInterval = 100 * time.Millisecond

var _ client.AccountNotifier = (*FakeNotifier)(nil)

// FakeNotifier is an in-memory client.AccountNotifier. Tests push account
// updates with Push and they are fanned out to every open Notify call for the
// same address.
type FakeNotifier struct {
	notifyCalls atomic.Int32

	mu   sync.Mutex
	subs map[solana.PublicKey][]chan<- client.Account
	wait map[solana.PublicKey]chan struct{}
}

func NewFakeNotifier() *FakeNotifier {
	return &FakeNotifier{
		subs: map[solana.PublicKey][]chan<- client.Account{},
		wait: map[solana.PublicKey]chan struct{}{},
	}
}

func (f *FakeNotifier) Notify(ctx context.Context, addr solana.PublicKey, out chan<- client.Account) {
	f.notifyCalls.Add(1)
	f.mu.Lock()
	f.subs[addr] = append(f.subs[addr], out)
	if ch, ok := f.wait[addr]; ok {
		close(ch)
		delete(f.wait, addr)
	}
	f.mu.Unlock()

	<-ctx.Done()

	f.mu.Lock()
	defer f.mu.Unlock()
	subs := f.subs[addr]
	for i, sub := range subs {
		if sub == out {
			f.subs[addr] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
}

// Subscribed returns a channel closed once addr has at least one open Notify call.
func (f *FakeNotifier) Subscribed(addr solana.PublicKey) <-chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	if len(f.subs[addr]) > 0 {
		close(ch)
		return ch
	}
	if existing, ok := f.wait[addr]; ok {
		return existing
	}
	f.wait[addr] = ch
	return ch
}

// Push delivers acc to every subscriber of acc.Address. It blocks until each
// subscriber has received it.
func (f *FakeNotifier) Push(acc client.Account) {
	f.mu.Lock()
	subs := append([]chan<- client.Account(nil), f.subs[acc.Address]...)
	f.mu.Unlock()
	for _, sub := range subs {
		sub <- acc
	}
}

func (f *FakeNotifier) NotifyCallCount() int32 {
	return f.notifyCalls.Load()
}
