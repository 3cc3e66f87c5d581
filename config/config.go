// Package config handles wallet engine configuration.
//
// Configuration is split into two categories:
//   - Network identity: which ledger network the engine talks to and the
//     chain ID used for replay-protected signing. Must match the node.
//   - Runtime settings: endpoints, timeouts, monitor tuning. Can vary
//     per deployment.
package config

import "time"

// NetworkType identifies mainnet or testnet.
type NetworkType string

const (
	Mainnet NetworkType = "mainnet"
	Testnet NetworkType = "testnet"
)

// Chain IDs per network, baked into every signature (EIP-155).
const (
	MainnetChainID uint64 = 1
	TestnetChainID uint64 = 11155111
)

// Config holds the wallet engine configuration.
type Config struct {
	// Network selects the target ledger network.
	Network NetworkType `json:"network"`

	// RPCEndpoint is the HTTP JSON-RPC URL of the ledger node.
	RPCEndpoint string `json:"rpc_endpoint"`

	// WSEndpoint is the websocket URL used for the pending-transaction
	// subscription. Empty disables the payment monitor.
	WSEndpoint string `json:"ws_endpoint"`

	// RPCTimeout bounds each individual JSON-RPC call.
	RPCTimeout time.Duration `json:"rpc_timeout"`

	// ReceiptTimeout bounds how long Send waits for the first broadcast
	// receipt before failing.
	ReceiptTimeout time.Duration `json:"receipt_timeout"`

	// Monitor tunes the payment monitor.
	Monitor MonitorConfig `json:"monitor"`

	// Log configures logging output.
	Log LogConfig `json:"log"`
}

// MonitorConfig tunes the payment monitor.
type MonitorConfig struct {
	// RecheckDelay is how long after first sight a pending transaction
	// is left to settle before its recipient is re-examined.
	RecheckDelay time.Duration `json:"recheck_delay"`

	// RecheckTimeout bounds each recheck's lookup call.
	RecheckTimeout time.Duration `json:"recheck_timeout"`

	// RechecksPerSecond rate-limits recheck lookups against the node.
	RechecksPerSecond float64 `json:"rechecks_per_second"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `json:"level"`
	JSON  bool   `json:"json"`
	File  string `json:"file"`
}

// ChainID returns the replay-protection chain ID for the configured
// network.
func (c *Config) ChainID() uint64 {
	if c.Network == Testnet {
		return TestnetChainID
	}
	return MainnetChainID
}
