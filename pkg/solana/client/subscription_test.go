package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helium/helium-ops/pkg/solana/logger"
)

// newMockWSServer acknowledges every accountSubscribe call and then pushes one
// accountNotification per entry in slots. It closes the connection after
// dropAfter notifications when dropAfter > 0.
func newMockWSServer(t *testing.T, owner solana.PublicKey, data []byte, slots []uint64, dropAfter int) (string, *int32) {
	var subscribes int32
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var req struct {
				ID     json.RawMessage `json:"id"`
				Method string          `json:"method"`
			}
			if err = json.Unmarshal(msg, &req); err != nil || req.Method != "accountSubscribe" {
				continue
			}
			atomic.AddInt32(&subscribes, 1)
			ack := fmt.Sprintf(`{"jsonrpc":"2.0","result":7,"id":%s}`, req.ID)
			if err = conn.WriteMessage(websocket.TextMessage, []byte(ack)); err != nil {
				return
			}
			for i, slot := range slots {
				if dropAfter > 0 && i == dropAfter {
					return
				}
				notification := fmt.Sprintf(
					`{"jsonrpc":"2.0","method":"accountNotification","params":{"result":{"context":{"slot":%d},"value":{"data":["%s","base64"],"executable":false,"lamports":%d,"owner":"%s","rentEpoch":0}},"subscription":7}}`,
					slot, base64.StdEncoding.EncodeToString(data), slot*10, owner,
				)
				if err = conn.WriteMessage(websocket.TextMessage, []byte(notification)); err != nil {
					return
				}
			}
		}
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http"), &subscribes
}

func TestWSNotifier_Notify(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	data := []byte{1, 2, 3}
	url, _ := newMockWSServer(t, owner, data, []uint64{5, 6}, 0)

	n := NewWSNotifier(url, rpc.CommitmentConfirmed, 10*time.Millisecond, logger.Test(t))
	defer n.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	addr := solana.NewWallet().PublicKey()
	out := make(chan Account)
	done := make(chan struct{})
	go func() {
		n.Notify(ctx, addr, out)
		close(done)
	}()

	for _, slot := range []uint64{5, 6} {
		select {
		case acc := <-out:
			assert.Equal(t, addr, acc.Address)
			assert.Equal(t, slot, acc.Slot)
			assert.Equal(t, slot*10, acc.Lamports)
			assert.Equal(t, owner, acc.Owner)
			assert.Equal(t, data, acc.Data)
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for account notification")
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Notify did not return after cancellation")
	}
}

func TestWSNotifier_Resubscribes(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	url, subscribes := newMockWSServer(t, owner, []byte{9}, []uint64{1, 2}, 1)

	n := NewWSNotifier(url, rpc.CommitmentConfirmed, 10*time.Millisecond, logger.Test(t))
	defer n.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	out := make(chan Account)
	go n.Notify(ctx, solana.NewWallet().PublicKey(), out)

	// every connection delivers one notification before the server hangs up
	for i := 0; i < 2; i++ {
		select {
		case acc := <-out:
			assert.Equal(t, uint64(1), acc.Slot)
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for account notification")
		}
	}
	require.GreaterOrEqual(t, atomic.LoadInt32(subscribes), int32(2))
}

func TestWSNotifier_DialFailure(t *testing.T) {
	n := NewWSNotifier("ws://127.0.0.1:1", rpc.CommitmentConfirmed, 10*time.Millisecond, logger.Test(t))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		n.Notify(ctx, solana.NewWallet().PublicKey(), make(chan Account))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Notify did not return after context expiry")
	}
	n.Close()
}
