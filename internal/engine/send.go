package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/quillchain/quillwallet/internal/ledger"
	"github.com/quillchain/quillwallet/pkg/crypto"
	"github.com/quillchain/quillwallet/pkg/tx"
	"github.com/quillchain/quillwallet/pkg/types"
)

// ErrBroadcastFailed is returned when no receipt is observed for a
// broadcast transaction within the configured window.
var ErrBroadcastFailed = errors.New("broadcast failed: no receipt observed")

// receiptPollInterval is how often the engine asks for the receipt
// while awaiting the first acknowledgment.
const receiptPollInterval = 2 * time.Second

// Send signs the estimate with the given private key, broadcasts the
// raw transaction, and awaits the first receipt. The signature is
// bound to the configured chain ID, so it cannot be replayed on another
// network. Send is not idempotent: reusing a nonce is rejected by the
// network, not handled here.
func (e *Engine) Send(ctx context.Context, est *Estimate, privateKeyHex string) (*ledger.Transaction, error) {
	key, err := crypto.PrivateKeyFromHex(privateKeyHex)
	if err != nil {
		return nil, err
	}

	transaction := tx.NewBuilder().
		Nonce(est.Nonce).
		To(est.To).
		Value(est.Value).
		Data(est.Data).
		GasPrice(est.GasPrice).
		GasLimit(est.GasLimit).
		Build()

	if err := transaction.Sign(key, e.cfg.ChainID()); err != nil {
		return nil, err
	}
	rawHex, err := transaction.RawHex()
	if err != nil {
		return nil, err
	}

	hash, err := e.gw.SendRawTransaction(ctx, rawHex)
	if err != nil {
		return nil, err
	}

	e.log.Info().
		Str("hash", hash.String()).
		Str("to", est.To.String()).
		Str("asset", est.Asset.Symbol).
		Msg("transaction broadcast")

	if err := e.awaitReceipt(ctx, hash); err != nil {
		return nil, err
	}
	return e.gw.Transaction(ctx, hash)
}

// awaitReceipt polls for the first receipt of hash until the receipt
// timeout elapses. Transient lookup failures keep the poll alive; only
// the timeout produces ErrBroadcastFailed.
func (e *Engine) awaitReceipt(ctx context.Context, hash types.Hash) error {
	deadline := e.clock.Timer(e.cfg.ReceiptTimeout)
	defer deadline.Stop()
	ticker := e.clock.Ticker(receiptPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return fmt.Errorf("%w: %s", ErrBroadcastFailed, hash)
		case <-ticker.C:
			receipt, err := e.gw.TransactionReceipt(ctx, hash)
			if errors.Is(err, ledger.ErrTxNotFound) {
				continue
			}
			if err != nil {
				e.log.Warn().Err(err).Str("hash", hash.String()).Msg("receipt poll failed")
				continue
			}
			e.log.Info().
				Str("hash", hash.String()).
				Uint64("block", receipt.BlockNumber).
				Msg("receipt observed")
			return nil
		}
	}
}
