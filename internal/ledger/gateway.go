// Package ledger defines the abstract client for the ledger node:
// balance, nonce and gas queries, raw broadcast, contract calls, and the
// pending-transaction stream. A JSON-RPC implementation is included.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/quillchain/quillwallet/pkg/types"
)

// ErrTxNotFound is returned when a transaction hash is unknown to the
// node (dropped, replaced, or never seen).
var ErrTxNotFound = errors.New("transaction not found")

// NetworkError wraps any RPC/transport failure. The engine surfaces it
// to callers without retrying; retry policy belongs to the caller.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// netErr wraps err as a NetworkError for the named operation.
func netErr(op string, err error) error {
	return &NetworkError{Op: op, Err: err}
}

// Gateway is the ledger client consumed by the engine and the payment
// monitor. Every blocking operation takes a context.
type Gateway interface {
	// Nonce returns the next account nonce for addr (pending state).
	Nonce(ctx context.Context, addr types.Address) (uint64, error)

	// GasPrice returns the current network gas price in base units.
	GasPrice(ctx context.Context) (*big.Int, error)

	// EstimateGas asks the network for a gas estimate for the call.
	EstimateGas(ctx context.Context, call CallMsg) (uint64, error)

	// Balance returns the native-asset balance of addr in base units.
	Balance(ctx context.Context, addr types.Address) (*big.Int, error)

	// Transaction fetches a transaction record by hash.
	// Returns ErrTxNotFound for unknown hashes.
	Transaction(ctx context.Context, hash types.Hash) (*Transaction, error)

	// TransactionReceipt fetches the receipt of a broadcast transaction.
	// Returns ErrTxNotFound while the transaction is unmined or unknown.
	TransactionReceipt(ctx context.Context, hash types.Hash) (*Receipt, error)

	// SendRawTransaction broadcasts a signed raw transaction
	// ("0x"-prefixed hex) and returns its hash.
	SendRawTransaction(ctx context.Context, rawHex string) (types.Hash, error)

	// SubscribePendingTransactions opens a standing subscription to the
	// node's pending-transaction stream. The channel closes when ctx is
	// cancelled or the stream breaks.
	SubscribePendingTransactions(ctx context.Context) (<-chan types.Hash, error)

	// CallContract executes a read-only contract call at the latest block.
	CallContract(ctx context.Context, to types.Address, data []byte) ([]byte, error)

	// EncodeCall ABI-encodes a contract call for a method signature such
	// as "transfer(address,uint256)".
	EncodeCall(method string, args ...interface{}) ([]byte, error)
}

// CallMsg describes a contract call or transfer for gas estimation.
type CallMsg struct {
	From  types.Address
	To    *types.Address
	Value *big.Int
	Data  []byte
}

// Transaction is the node's view of a transaction.
type Transaction struct {
	Hash        types.Hash
	Nonce       uint64
	From        types.Address
	To          *types.Address
	Value       *big.Int
	Gas         uint64
	GasPrice    *big.Int
	Input       []byte
	BlockNumber *uint64 // nil while pending
}

// Pending reports whether the transaction is not yet mined.
func (t *Transaction) Pending() bool {
	return t.BlockNumber == nil
}

// Receipt is the acknowledgment record of a mined transaction.
type Receipt struct {
	TxHash      types.Hash
	BlockNumber uint64
	GasUsed     uint64
	Status      uint64
}
