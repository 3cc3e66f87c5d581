package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/quillchain/quillwallet/pkg/types"
)

// pendingStreamBuffer absorbs bursts between the read loop and the
// consumer.
const pendingStreamBuffer = 256

// subNotification is the server-push envelope of an active subscription.
type subNotification struct {
	Method string `json:"method"`
	Params struct {
		Subscription string          `json:"subscription"`
		Result       json.RawMessage `json:"result"`
	} `json:"params"`
}

// SubscribePendingTransactions opens a websocket subscription to the
// node's pending-transaction stream. Only the subscription handshake
// can fail the call; later per-message problems end the stream by
// closing the returned channel, and cancelling ctx tears it down.
func (c *Client) SubscribePendingTransactions(ctx context.Context) (<-chan types.Hash, error) {
	if c.wsEndpoint == "" {
		return nil, netErr("subscribe", fmt.Errorf("no websocket endpoint configured"))
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.wsEndpoint, nil)
	if err != nil {
		return nil, netErr("subscribe", err)
	}

	sub := request{
		JSONRPC: "2.0",
		Method:  "eth_subscribe",
		Params:  []interface{}{"newPendingTransactions"},
		ID:      c.nextID.Add(1),
	}
	if err := conn.WriteJSON(sub); err != nil {
		conn.Close()
		return nil, netErr("subscribe", err)
	}

	var ack response
	if err := conn.ReadJSON(&ack); err != nil {
		conn.Close()
		return nil, netErr("subscribe", err)
	}
	if ack.Error != nil {
		conn.Close()
		return nil, netErr("subscribe", &RPCError{Code: ack.Error.Code, Message: ack.Error.Message})
	}

	c.log.Info().Str("endpoint", c.wsEndpoint).Msg("pending-transaction stream open")

	hashes := make(chan types.Hash, pendingStreamBuffer)

	// Unblock the read loop when the caller gives up.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	go func() {
		defer close(hashes)
		defer conn.Close()
		for {
			var note subNotification
			if err := conn.ReadJSON(&note); err != nil {
				if ctx.Err() == nil {
					c.log.Warn().Err(err).Msg("pending-transaction stream closed")
				}
				return
			}
			if note.Method != "eth_subscription" {
				continue
			}

			var hashHex string
			if err := json.Unmarshal(note.Params.Result, &hashHex); err != nil {
				c.log.Warn().Err(err).Msg("malformed subscription payload")
				continue
			}
			hash, err := types.HexToHash(hashHex)
			if err != nil {
				c.log.Warn().Err(err).Str("payload", hashHex).Msg("malformed pending hash")
				continue
			}

			select {
			case hashes <- hash:
			case <-ctx.Done():
				return
			}
		}
	}()

	return hashes, nil
}
