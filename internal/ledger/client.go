package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/quillchain/quillwallet/internal/log"
	"github.com/quillchain/quillwallet/pkg/types"
)

// Client is a JSON-RPC 2.0 Gateway implementation. Queries and broadcast
// go over HTTP POST; the pending-transaction stream goes over websocket.
type Client struct {
	endpoint   string
	wsEndpoint string
	http       *http.Client
	nextID     atomic.Uint64
	log        zerolog.Logger
}

var _ Gateway = (*Client)(nil)

// NewClient creates a gateway client targeting the given HTTP endpoint.
// wsEndpoint may be empty when the pending stream is not needed.
func NewClient(endpoint, wsEndpoint string) *Client {
	return NewClientWithTimeout(endpoint, wsEndpoint, 10*time.Second)
}

// NewClientWithTimeout creates a gateway client with a custom HTTP timeout.
func NewClientWithTimeout(endpoint, wsEndpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint:   endpoint,
		wsEndpoint: wsEndpoint,
		http: &http.Client{
			Timeout: timeout,
		},
		log: log.RPC,
	}
}

// request is a JSON-RPC 2.0 request.
type request struct {
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	ID      uint64        `json:"id"`
}

// response is a JSON-RPC 2.0 response.
type response struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
	ID      uint64          `json:"id"`
}

// rpcError is a JSON-RPC 2.0 error.
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RPCError is returned when the server responds with an error.
type RPCError struct {
	Code    int
	Message string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// call invokes a JSON-RPC method and unmarshals the result into the
// provided pointer. If result is nil, the response result is discarded.
// A JSON "null" result is reported as ErrTxNotFound.
func (c *Client) call(ctx context.Context, method string, params []interface{}, result interface{}) error {
	req := request{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      c.nextID.Add(1),
	}
	if params == nil {
		req.Params = []interface{}{}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var rpcResp response
	if err := json.Unmarshal(data, &rpcResp); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if rpcResp.Error != nil {
		return &RPCError{
			Code:    rpcResp.Error.Code,
			Message: rpcResp.Error.Message,
		}
	}

	if result != nil {
		if len(rpcResp.Result) == 0 || bytes.Equal(rpcResp.Result, []byte("null")) {
			return ErrTxNotFound
		}
		if err := json.Unmarshal(rpcResp.Result, result); err != nil {
			return fmt.Errorf("decode result: %w", err)
		}
	}
	return nil
}

// Nonce returns the next account nonce for addr including pending
// transactions, so consecutive sends do not collide.
func (c *Client) Nonce(ctx context.Context, addr types.Address) (uint64, error) {
	var raw string
	if err := c.call(ctx, "eth_getTransactionCount", []interface{}{addr.Hex(), "pending"}, &raw); err != nil {
		return 0, netErr("nonce query", err)
	}
	n, err := parseUint64(raw)
	if err != nil {
		return 0, netErr("nonce query", err)
	}
	return n, nil
}

// GasPrice returns the current network gas price.
func (c *Client) GasPrice(ctx context.Context) (*big.Int, error) {
	var raw string
	if err := c.call(ctx, "eth_gasPrice", nil, &raw); err != nil {
		return nil, netErr("gas price query", err)
	}
	price, err := parseQuantity(raw)
	if err != nil {
		return nil, netErr("gas price query", err)
	}
	return price, nil
}

// EstimateGas asks the node for a gas estimate.
func (c *Client) EstimateGas(ctx context.Context, call CallMsg) (uint64, error) {
	msg := map[string]string{"from": call.From.Hex()}
	if call.To != nil {
		msg["to"] = call.To.Hex()
	}
	if call.Value != nil && call.Value.Sign() > 0 {
		msg["value"] = formatQuantity(call.Value)
	}
	if len(call.Data) > 0 {
		msg["data"] = formatData(call.Data)
	}

	var raw string
	if err := c.call(ctx, "eth_estimateGas", []interface{}{msg}, &raw); err != nil {
		return 0, netErr("gas estimation", err)
	}
	gas, err := parseUint64(raw)
	if err != nil {
		return 0, netErr("gas estimation", err)
	}
	return gas, nil
}

// Balance returns the native balance of addr at the latest block.
func (c *Client) Balance(ctx context.Context, addr types.Address) (*big.Int, error) {
	var raw string
	if err := c.call(ctx, "eth_getBalance", []interface{}{addr.Hex(), "latest"}, &raw); err != nil {
		return nil, netErr("balance query", err)
	}
	balance, err := parseQuantity(raw)
	if err != nil {
		return nil, netErr("balance query", err)
	}
	return balance, nil
}

// Transaction fetches a transaction record by hash.
func (c *Client) Transaction(ctx context.Context, hash types.Hash) (*Transaction, error) {
	var record Transaction
	err := c.call(ctx, "eth_getTransactionByHash", []interface{}{hash.String()}, &record)
	if err == ErrTxNotFound {
		return nil, ErrTxNotFound
	}
	if err != nil {
		return nil, netErr("transaction query", err)
	}
	return &record, nil
}

// TransactionReceipt fetches the receipt of a broadcast transaction.
func (c *Client) TransactionReceipt(ctx context.Context, hash types.Hash) (*Receipt, error) {
	var record Receipt
	err := c.call(ctx, "eth_getTransactionReceipt", []interface{}{hash.String()}, &record)
	if err == ErrTxNotFound {
		return nil, ErrTxNotFound
	}
	if err != nil {
		return nil, netErr("receipt query", err)
	}
	return &record, nil
}

// SendRawTransaction broadcasts a signed raw transaction.
func (c *Client) SendRawTransaction(ctx context.Context, rawHex string) (types.Hash, error) {
	var raw string
	if err := c.call(ctx, "eth_sendRawTransaction", []interface{}{rawHex}, &raw); err != nil {
		return types.Hash{}, netErr("broadcast", err)
	}
	hash, err := types.HexToHash(raw)
	if err != nil {
		return types.Hash{}, netErr("broadcast", err)
	}
	c.log.Debug().Str("hash", hash.String()).Msg("raw transaction broadcast")
	return hash, nil
}

// CallContract executes a read-only contract call at the latest block.
func (c *Client) CallContract(ctx context.Context, to types.Address, data []byte) ([]byte, error) {
	msg := map[string]string{
		"to":   to.Hex(),
		"data": formatData(data),
	}
	var raw string
	if err := c.call(ctx, "eth_call", []interface{}{msg, "latest"}, &raw); err != nil {
		return nil, netErr("contract call", err)
	}
	out, err := parseData(raw)
	if err != nil {
		return nil, netErr("contract call", err)
	}
	return out, nil
}

// EncodeCall ABI-encodes a contract call.
func (c *Client) EncodeCall(method string, args ...interface{}) ([]byte, error) {
	return EncodeCall(method, args...)
}
