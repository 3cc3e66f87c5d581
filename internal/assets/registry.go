// Package assets implements the fungible-token registry and the
// precision-aware conversion between human-readable amounts and integer
// base units.
package assets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/quillchain/quillwallet/config"
	"github.com/quillchain/quillwallet/pkg/types"
)

// ErrUnknownAsset is returned when a symbol has no registry entry on the
// selected network. Callers must handle it; there is no degraded
// zero-address fallback.
var ErrUnknownAsset = errors.New("unknown asset")

// Native asset parameters. The native asset is a sentinel with no
// contract address and a fixed precision.
const (
	NativeSymbol   = "ETH"
	NativeDecimals = 18
)

// Descriptor describes an asset: its symbol, contract address (zero for
// the native asset), decimal precision, and display name.
type Descriptor struct {
	Symbol   string        `json:"symbol"`
	Contract types.Address `json:"contract"`
	Decimals int32         `json:"decimals"`
	Name     string        `json:"name"`
}

// IsNative reports whether the descriptor is the native-asset sentinel.
func (d Descriptor) IsNative() bool {
	return d.Contract.IsZero()
}

// Native returns the native-asset descriptor.
func Native() Descriptor {
	return Descriptor{
		Symbol:   NativeSymbol,
		Decimals: NativeDecimals,
		Name:     "Ether",
	}
}

// Registry is a read-only lookup from token symbol to descriptor for one
// network. Symbols compare case-insensitively.
type Registry struct {
	network config.NetworkType
	table   map[string]Descriptor
}

// NewRegistry returns the built-in registry for the given network.
func NewRegistry(network config.NetworkType) *Registry {
	table := mainnetTokens
	if network == config.Testnet {
		table = testnetTokens
	}
	return &Registry{network: network, table: table}
}

// Network returns the network this registry serves.
func (r *Registry) Network() config.NetworkType {
	return r.network
}

// Lookup resolves a symbol to its descriptor. The empty symbol and the
// native symbol resolve to the native sentinel without a table lookup.
// Unknown symbols fail with ErrUnknownAsset.
func (r *Registry) Lookup(symbol string) (Descriptor, error) {
	if IsNativeSymbol(symbol) {
		return Native(), nil
	}
	desc, ok := r.table[strings.ToLower(symbol)]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %s on %s", ErrUnknownAsset, symbol, r.network)
	}
	return desc, nil
}

// Symbols returns the registered token symbols, native excluded.
func (r *Registry) Symbols() []string {
	out := make([]string, 0, len(r.table))
	for s := range r.table {
		out = append(out, s)
	}
	return out
}

// IsNativeSymbol reports whether symbol denotes the native asset. An
// empty symbol defaults to native.
func IsNativeSymbol(symbol string) bool {
	return symbol == "" || strings.EqualFold(symbol, NativeSymbol)
}

func mustAddr(s string) types.Address {
	a, err := types.ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Built-in per-network token tables, keyed by lowercase symbol.
var mainnetTokens = map[string]Descriptor{
	"usdt": {Symbol: "USDT", Contract: mustAddr("0xdAC17F958D2ee523a2206206994597C13D831ec7"), Decimals: 6, Name: "Tether USD"},
	"usdc": {Symbol: "USDC", Contract: mustAddr("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"), Decimals: 6, Name: "USD Coin"},
	"dai":  {Symbol: "DAI", Contract: mustAddr("0x6B175474E89094C44Da98b954EedeAC495271d0F"), Decimals: 18, Name: "Dai Stablecoin"},
	"link": {Symbol: "LINK", Contract: mustAddr("0x514910771AF9Ca656af840dff83E8264EcF986CA"), Decimals: 18, Name: "ChainLink Token"},
	"weth": {Symbol: "WETH", Contract: mustAddr("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"), Decimals: 18, Name: "Wrapped Ether"},
}

var testnetTokens = map[string]Descriptor{
	"usdc": {Symbol: "USDC", Contract: mustAddr("0x1c7D4B196Cb0C7B01d743Fbc6116a902379C7238"), Decimals: 6, Name: "USD Coin"},
	"link": {Symbol: "LINK", Contract: mustAddr("0x779877A7B0D9E8603169DdbD7836e478b4624789"), Decimals: 18, Name: "ChainLink Token"},
	"weth": {Symbol: "WETH", Contract: mustAddr("0xfFf9976782d46CC05630D1f6eBAb18b2324d6B14"), Decimals: 18, Name: "Wrapped Ether"},
}
