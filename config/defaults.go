package config

import "time"

// DefaultMainnet returns the default configuration for mainnet.
func DefaultMainnet() *Config {
	return &Config{
		Network:        Mainnet,
		RPCEndpoint:    "http://127.0.0.1:8545",
		WSEndpoint:     "ws://127.0.0.1:8546",
		RPCTimeout:     10 * time.Second,
		ReceiptTimeout: 90 * time.Second,
		Monitor: MonitorConfig{
			RecheckDelay:      3 * time.Minute,
			RecheckTimeout:    15 * time.Second,
			RechecksPerSecond: 10,
		},
		Log: LogConfig{
			Level: "info",
			JSON:  false,
		},
	}
}

// DefaultTestnet returns the default configuration for testnet.
func DefaultTestnet() *Config {
	cfg := DefaultMainnet()
	cfg.Network = Testnet
	return cfg
}

// Default returns the default configuration for the given network.
func Default(network NetworkType) *Config {
	switch network {
	case Testnet:
		return DefaultTestnet()
	default:
		return DefaultMainnet()
	}
}
