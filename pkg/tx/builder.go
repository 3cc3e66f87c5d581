package tx

import (
	"math/big"

	"github.com/quillchain/quillwallet/pkg/types"
)

// Builder constructs transactions incrementally.
type Builder struct {
	tx *Transaction
}

// NewBuilder creates a new transaction builder.
func NewBuilder() *Builder {
	return &Builder{
		tx: &Transaction{Value: new(big.Int)},
	}
}

// Nonce sets the sender's account nonce.
func (b *Builder) Nonce(nonce uint64) *Builder {
	b.tx.Nonce = nonce
	return b
}

// To sets the recipient address.
func (b *Builder) To(addr types.Address) *Builder {
	a := addr
	b.tx.To = &a
	return b
}

// Value sets the native-asset amount in base units.
func (b *Builder) Value(value *big.Int) *Builder {
	b.tx.Value = new(big.Int).Set(value)
	return b
}

// Data sets the encoded contract call payload.
func (b *Builder) Data(data []byte) *Builder {
	b.tx.Data = data
	return b
}

// GasPrice sets the gas price in base units.
func (b *Builder) GasPrice(price *big.Int) *Builder {
	b.tx.GasPrice = new(big.Int).Set(price)
	return b
}

// GasLimit sets the gas limit.
func (b *Builder) GasLimit(limit uint64) *Builder {
	b.tx.GasLimit = limit
	return b
}

// Build returns the constructed transaction. The result is unsigned;
// call Transaction.Sign separately.
func (b *Builder) Build() *Transaction {
	return b.tx
}
