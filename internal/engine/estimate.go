package engine

import (
	"context"
	"fmt"
	"math/big"

	"github.com/quillchain/quillwallet/internal/assets"
	"github.com/quillchain/quillwallet/internal/ledger"
	"github.com/quillchain/quillwallet/pkg/tx"
	"github.com/quillchain/quillwallet/pkg/types"
)

// Estimate is a fee-estimated, unsigned transaction descriptor. For a
// native transfer, To is the recipient and Value the amount; for a
// token transfer, To is the token contract, Value is zero, and Data
// carries the encoded transfer call.
type Estimate struct {
	From     types.Address
	To       types.Address
	Nonce    uint64
	Value    *big.Int
	Data     []byte
	GasLimit uint64
	GasPrice *big.Int
	Asset    assets.Descriptor
}

// Fee returns the worst-case fee in base units (gasLimit * gasPrice).
func (est *Estimate) Fee() *big.Int {
	return new(big.Int).Mul(
		new(big.Int).SetUint64(est.GasLimit),
		est.GasPrice,
	)
}

// EstimateFees builds a fee-estimated descriptor for sending amount
// (human units) of the given asset from one address to another. All
// network failures propagate without retry; an unknown token symbol
// fails with assets.ErrUnknownAsset before any value math.
func (e *Engine) EstimateFees(ctx context.Context, from, to types.Address, amount, symbol string) (*Estimate, error) {
	desc, err := e.registry.Lookup(symbol)
	if err != nil {
		return nil, err
	}

	nonce, err := e.gw.Nonce(ctx, from)
	if err != nil {
		return nil, err
	}
	gasPrice, err := e.gw.GasPrice(ctx)
	if err != nil {
		return nil, err
	}

	value, err := assets.ToBaseUnits(amount, desc.Decimals)
	if err != nil {
		return nil, err
	}

	est := &Estimate{
		From:     from,
		Nonce:    nonce,
		GasPrice: gasPrice,
		Asset:    desc,
	}

	var call ledger.CallMsg
	if desc.IsNative() {
		est.To = to
		est.Value = value
		call = ledger.CallMsg{From: from, To: &est.To, Value: value}
	} else {
		data, err := e.gw.EncodeCall(ledger.MethodTransfer, to, value)
		if err != nil {
			return nil, fmt.Errorf("encode transfer call: %w", err)
		}
		est.To = desc.Contract
		est.Value = new(big.Int)
		est.Data = data
		call = ledger.CallMsg{From: from, To: &est.To, Data: data}
	}

	gas, err := e.gw.EstimateGas(ctx, call)
	if err != nil {
		return nil, err
	}
	// A node estimate below the intrinsic cost cannot cover the
	// transaction at all.
	if floor := tx.IntrinsicGas(est.Data); gas < floor {
		gas = floor
	}
	est.GasLimit = gas

	e.log.Debug().
		Str("from", from.String()).
		Str("to", to.String()).
		Str("asset", desc.Symbol).
		Uint64("nonce", nonce).
		Uint64("gas", gas).
		Str("gas_price", gasPrice.String()).
		Msg("fees estimated")
	return est, nil
}
