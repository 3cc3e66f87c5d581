// Package engine orchestrates key derivation, asset resolution, and the
// ledger gateway into the wallet operations: fee estimation, signing and
// broadcast, and balance queries.
package engine

import (
	"context"
	"fmt"
	"math/big"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"

	"github.com/quillchain/quillwallet/config"
	"github.com/quillchain/quillwallet/internal/assets"
	"github.com/quillchain/quillwallet/internal/ledger"
	"github.com/quillchain/quillwallet/internal/log"
	"github.com/quillchain/quillwallet/pkg/types"
)

// Engine is the wallet engine for one configured network. The gateway
// handle is explicit and fixed at construction; there is no global
// client state.
type Engine struct {
	cfg      *config.Config
	gw       ledger.Gateway
	registry *assets.Registry
	clock    clock.Clock
	log      zerolog.Logger
}

// New builds an engine around an explicit gateway handle.
func New(cfg *config.Config, gw ledger.Gateway, registry *assets.Registry) *Engine {
	return &Engine{
		cfg:      cfg,
		gw:       gw,
		registry: registry,
		clock:    clock.New(),
		log:      log.Engine,
	}
}

// GetBalance returns the human-readable balance of addr: the native
// balance when symbol is empty or the native symbol, otherwise the
// token's balance-of accessor converted at the token's precision.
func (e *Engine) GetBalance(ctx context.Context, addr types.Address, symbol string) (string, error) {
	desc, err := e.registry.Lookup(symbol)
	if err != nil {
		return "", err
	}

	var raw *big.Int
	if desc.IsNative() {
		raw, err = e.gw.Balance(ctx, addr)
		if err != nil {
			return "", err
		}
	} else {
		data, err := e.gw.EncodeCall(ledger.MethodBalanceOf, addr)
		if err != nil {
			return "", fmt.Errorf("encode balance call: %w", err)
		}
		out, err := e.gw.CallContract(ctx, desc.Contract, data)
		if err != nil {
			return "", err
		}
		raw = new(big.Int).SetBytes(out)
	}

	return assets.ToHumanUnits(raw, desc.Decimals), nil
}

// GetTransaction fetches a transaction record by hash.
func (e *Engine) GetTransaction(ctx context.Context, hash types.Hash) (*ledger.Transaction, error) {
	return e.gw.Transaction(ctx, hash)
}
