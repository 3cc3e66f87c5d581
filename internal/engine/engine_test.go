package engine

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/quillchain/quillwallet/config"
	"github.com/quillchain/quillwallet/internal/assets"
	"github.com/quillchain/quillwallet/internal/ledger"
	"github.com/quillchain/quillwallet/pkg/types"
)

// fakeGateway implements ledger.Gateway with per-method function
// fields. Unset methods fail the calling test.
type fakeGateway struct {
	t *testing.T

	nonce       func(ctx context.Context, addr types.Address) (uint64, error)
	gasPrice    func(ctx context.Context) (*big.Int, error)
	estimateGas func(ctx context.Context, call ledger.CallMsg) (uint64, error)
	balance     func(ctx context.Context, addr types.Address) (*big.Int, error)
	transaction func(ctx context.Context, hash types.Hash) (*ledger.Transaction, error)
	receipt     func(ctx context.Context, hash types.Hash) (*ledger.Receipt, error)
	sendRaw     func(ctx context.Context, rawHex string) (types.Hash, error)
	subscribe   func(ctx context.Context) (<-chan types.Hash, error)
	call        func(ctx context.Context, to types.Address, data []byte) ([]byte, error)
}

var _ ledger.Gateway = (*fakeGateway)(nil)

func (g *fakeGateway) Nonce(ctx context.Context, addr types.Address) (uint64, error) {
	if g.nonce == nil {
		g.t.Fatal("unexpected Nonce call")
	}
	return g.nonce(ctx, addr)
}

func (g *fakeGateway) GasPrice(ctx context.Context) (*big.Int, error) {
	if g.gasPrice == nil {
		g.t.Fatal("unexpected GasPrice call")
	}
	return g.gasPrice(ctx)
}

func (g *fakeGateway) EstimateGas(ctx context.Context, call ledger.CallMsg) (uint64, error) {
	if g.estimateGas == nil {
		g.t.Fatal("unexpected EstimateGas call")
	}
	return g.estimateGas(ctx, call)
}

func (g *fakeGateway) Balance(ctx context.Context, addr types.Address) (*big.Int, error) {
	if g.balance == nil {
		g.t.Fatal("unexpected Balance call")
	}
	return g.balance(ctx, addr)
}

func (g *fakeGateway) Transaction(ctx context.Context, hash types.Hash) (*ledger.Transaction, error) {
	if g.transaction == nil {
		g.t.Fatal("unexpected Transaction call")
	}
	return g.transaction(ctx, hash)
}

func (g *fakeGateway) TransactionReceipt(ctx context.Context, hash types.Hash) (*ledger.Receipt, error) {
	if g.receipt == nil {
		g.t.Fatal("unexpected TransactionReceipt call")
	}
	return g.receipt(ctx, hash)
}

func (g *fakeGateway) SendRawTransaction(ctx context.Context, rawHex string) (types.Hash, error) {
	if g.sendRaw == nil {
		g.t.Fatal("unexpected SendRawTransaction call")
	}
	return g.sendRaw(ctx, rawHex)
}

func (g *fakeGateway) SubscribePendingTransactions(ctx context.Context) (<-chan types.Hash, error) {
	if g.subscribe == nil {
		g.t.Fatal("unexpected SubscribePendingTransactions call")
	}
	return g.subscribe(ctx)
}

func (g *fakeGateway) CallContract(ctx context.Context, to types.Address, data []byte) ([]byte, error) {
	if g.call == nil {
		g.t.Fatal("unexpected CallContract call")
	}
	return g.call(ctx, to, data)
}

func (g *fakeGateway) EncodeCall(method string, args ...interface{}) ([]byte, error) {
	return ledger.EncodeCall(method, args...)
}

func testEngine(t *testing.T, gw ledger.Gateway) *Engine {
	t.Helper()
	cfg := config.DefaultMainnet()
	return New(cfg, gw, assets.NewRegistry(cfg.Network))
}

var (
	testFrom = mustParseAddr("0x9858EfFD232B4033E47d90003D41EC34EcaEda94")
	testTo   = mustParseAddr("0x3535353535353535353535353535353535353535")
)

func mustParseAddr(s string) types.Address {
	addr, err := types.ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return addr
}

func TestEstimateFeesNative(t *testing.T) {
	gw := &fakeGateway{
		t: t,
		nonce: func(_ context.Context, addr types.Address) (uint64, error) {
			if addr != testFrom {
				t.Fatalf("nonce queried for %s, want %s", addr, testFrom)
			}
			return 7, nil
		},
		gasPrice: func(context.Context) (*big.Int, error) {
			return big.NewInt(20_000_000_000), nil
		},
		estimateGas: func(_ context.Context, call ledger.CallMsg) (uint64, error) {
			if call.To == nil || *call.To != testTo {
				t.Fatalf("gas estimated against wrong recipient: %v", call.To)
			}
			if len(call.Data) != 0 {
				t.Fatalf("native estimate carries data: %x", call.Data)
			}
			return 21000, nil
		},
	}
	e := testEngine(t, gw)

	est, err := e.EstimateFees(context.Background(), testFrom, testTo, "1.5", "ETH")
	if err != nil {
		t.Fatalf("EstimateFees: %v", err)
	}
	wantValue, _ := new(big.Int).SetString("1500000000000000000", 10)
	if est.Value.Cmp(wantValue) != 0 {
		t.Errorf("value = %s, want %s", est.Value, wantValue)
	}
	if est.To != testTo {
		t.Errorf("to = %s, want %s", est.To, testTo)
	}
	if len(est.Data) != 0 {
		t.Errorf("native estimate carries data: %x", est.Data)
	}
	if est.Nonce != 7 {
		t.Errorf("nonce = %d, want 7", est.Nonce)
	}
	if est.GasLimit != 21000 {
		t.Errorf("gas limit = %d, want 21000", est.GasLimit)
	}
	wantFee := big.NewInt(21000 * 20_000_000_000)
	if est.Fee().Cmp(wantFee) != 0 {
		t.Errorf("fee = %s, want %s", est.Fee(), wantFee)
	}
}

func TestEstimateFeesToken(t *testing.T) {
	gw := &fakeGateway{
		t: t,
		nonce: func(context.Context, types.Address) (uint64, error) {
			return 0, nil
		},
		gasPrice: func(context.Context) (*big.Int, error) {
			return big.NewInt(1_000_000_000), nil
		},
		estimateGas: func(_ context.Context, call ledger.CallMsg) (uint64, error) {
			if len(call.Data) == 0 {
				t.Fatal("token estimate has no call data")
			}
			return 52000, nil
		},
	}
	e := testEngine(t, gw)

	est, err := e.EstimateFees(context.Background(), testFrom, testTo, "25", "usdc")
	if err != nil {
		t.Fatalf("EstimateFees: %v", err)
	}
	if est.Value.Sign() != 0 {
		t.Errorf("token transfer value = %s, want 0", est.Value)
	}
	if est.To != est.Asset.Contract {
		t.Errorf("to = %s, want token contract %s", est.To, est.Asset.Contract)
	}
	if len(est.Data) == 0 {
		t.Error("token transfer has no call data")
	}
	// 25 USDC at 6 decimals encoded into the second argument word.
	wantArg := big.NewInt(25_000_000)
	if got := new(big.Int).SetBytes(est.Data[len(est.Data)-32:]); got.Cmp(wantArg) != 0 {
		t.Errorf("encoded amount = %s, want %s", got, wantArg)
	}
}

func TestEstimateFeesUnknownAsset(t *testing.T) {
	e := testEngine(t, &fakeGateway{t: t})
	_, err := e.EstimateFees(context.Background(), testFrom, testTo, "1", "NOPE")
	if !errors.Is(err, assets.ErrUnknownAsset) {
		t.Fatalf("err = %v, want ErrUnknownAsset", err)
	}
}

func TestEstimateFeesNetworkError(t *testing.T) {
	wantErr := &ledger.NetworkError{Op: "eth_getTransactionCount", Err: errors.New("connection refused")}
	gw := &fakeGateway{
		t: t,
		nonce: func(context.Context, types.Address) (uint64, error) {
			return 0, wantErr
		},
	}
	e := testEngine(t, gw)

	_, err := e.EstimateFees(context.Background(), testFrom, testTo, "1", "ETH")
	var netErr *ledger.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("err = %v, want NetworkError", err)
	}
}

func TestEstimateFeesIntrinsicFloor(t *testing.T) {
	gw := &fakeGateway{
		t: t,
		nonce: func(context.Context, types.Address) (uint64, error) {
			return 0, nil
		},
		gasPrice: func(context.Context) (*big.Int, error) {
			return big.NewInt(1), nil
		},
		estimateGas: func(context.Context, ledger.CallMsg) (uint64, error) {
			return 100, nil
		},
	}
	e := testEngine(t, gw)

	est, err := e.EstimateFees(context.Background(), testFrom, testTo, "1", "ETH")
	if err != nil {
		t.Fatalf("EstimateFees: %v", err)
	}
	if est.GasLimit != 21000 {
		t.Errorf("gas limit = %d, want intrinsic floor 21000", est.GasLimit)
	}
}

func TestGetBalanceNative(t *testing.T) {
	gw := &fakeGateway{
		t: t,
		balance: func(_ context.Context, addr types.Address) (*big.Int, error) {
			wei, _ := new(big.Int).SetString("2500000000000000000", 10)
			return wei, nil
		},
	}
	e := testEngine(t, gw)

	got, err := e.GetBalance(context.Background(), testFrom, "")
	if err != nil {
		t.Fatalf("GetBalance: %v", err)
	}
	if got != "2.5" {
		t.Errorf("balance = %q, want %q", got, "2.5")
	}
}

func TestGetBalanceToken(t *testing.T) {
	gw := &fakeGateway{
		t: t,
		call: func(_ context.Context, to types.Address, data []byte) ([]byte, error) {
			if len(data) != 36 {
				t.Fatalf("balanceOf call data is %d bytes, want 36", len(data))
			}
			out := make([]byte, 32)
			big.NewInt(1_250_000).FillBytes(out)
			return out, nil
		},
	}
	e := testEngine(t, gw)

	got, err := e.GetBalance(context.Background(), testFrom, "USDC")
	if err != nil {
		t.Fatalf("GetBalance: %v", err)
	}
	if got != "1.25" {
		t.Errorf("balance = %q, want %q", got, "1.25")
	}
}

// 0x46...46 over mainnet chain ID, exercised end to end through Send.
const testKeyHex = "4646464646464646464646464646464646464646464646464646464646464646"

func sendEstimate() *Estimate {
	return &Estimate{
		From:     testFrom,
		To:       testTo,
		Nonce:    9,
		Value:    big.NewInt(1_000_000_000_000_000_000),
		GasLimit: 21000,
		GasPrice: big.NewInt(20_000_000_000),
		Asset:    assets.Native(),
	}
}

func TestSendAwaitsReceipt(t *testing.T) {
	mock := clock.NewMock()
	txHash := types.Hash{0x11, 0x22}

	polls := 0
	gw := &fakeGateway{
		t: t,
		sendRaw: func(_ context.Context, rawHex string) (types.Hash, error) {
			if len(rawHex) < 2 || rawHex[:2] != "0x" {
				t.Errorf("raw tx %q lacks 0x prefix", rawHex)
			}
			return txHash, nil
		},
		receipt: func(_ context.Context, hash types.Hash) (*ledger.Receipt, error) {
			polls++
			if polls < 3 {
				return nil, ledger.ErrTxNotFound
			}
			return &ledger.Receipt{TxHash: hash, BlockNumber: 100, Status: 1}, nil
		},
		transaction: func(_ context.Context, hash types.Hash) (*ledger.Transaction, error) {
			block := uint64(100)
			return &ledger.Transaction{Hash: hash, BlockNumber: &block}, nil
		},
	}
	e := testEngine(t, gw)
	e.clock = mock

	type result struct {
		rec *ledger.Transaction
		err error
	}
	done := make(chan result, 1)
	go func() {
		rec, err := e.Send(context.Background(), sendEstimate(), testKeyHex)
		done <- result{rec, err}
	}()

	for i := 0; i < 10; i++ {
		time.Sleep(10 * time.Millisecond)
		mock.Add(receiptPollInterval)
	}

	res := <-done
	if res.err != nil {
		t.Fatalf("Send: %v", res.err)
	}
	if res.rec.Hash != txHash {
		t.Errorf("hash = %s, want %s", res.rec.Hash, txHash)
	}
	if res.rec.Pending() {
		t.Error("returned record still pending")
	}
	if polls < 3 {
		t.Errorf("receipt polled %d times, want at least 3", polls)
	}
}

func TestSendBroadcastTimeout(t *testing.T) {
	mock := clock.NewMock()
	gw := &fakeGateway{
		t: t,
		sendRaw: func(context.Context, string) (types.Hash, error) {
			return types.Hash{0xaa}, nil
		},
		receipt: func(context.Context, types.Hash) (*ledger.Receipt, error) {
			return nil, ledger.ErrTxNotFound
		},
	}
	e := testEngine(t, gw)
	e.clock = mock
	e.cfg.ReceiptTimeout = 10 * time.Second

	done := make(chan error, 1)
	go func() {
		_, err := e.Send(context.Background(), sendEstimate(), testKeyHex)
		done <- err
	}()

	for i := 0; i < 10; i++ {
		time.Sleep(10 * time.Millisecond)
		mock.Add(2 * time.Second)
	}

	if err := <-done; !errors.Is(err, ErrBroadcastFailed) {
		t.Fatalf("err = %v, want ErrBroadcastFailed", err)
	}
}

func TestSendBadKey(t *testing.T) {
	e := testEngine(t, &fakeGateway{t: t})
	if _, err := e.Send(context.Background(), sendEstimate(), "zz"); err == nil {
		t.Fatal("Send accepted a malformed private key")
	}
}

func TestSendPropagatesBroadcastError(t *testing.T) {
	wantErr := errors.New("nonce too low")
	gw := &fakeGateway{
		t: t,
		sendRaw: func(context.Context, string) (types.Hash, error) {
			return types.Hash{}, &ledger.NetworkError{Op: "eth_sendRawTransaction", Err: wantErr}
		},
	}
	e := testEngine(t, gw)

	_, err := e.Send(context.Background(), sendEstimate(), testKeyHex)
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want wrapped %v", err, wantErr)
	}
}
