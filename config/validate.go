package config

import (
	"fmt"
	"strings"
)

// Validate checks the configuration for obvious operator mistakes.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.Network != Mainnet && cfg.Network != Testnet {
		return fmt.Errorf("network must be %q or %q", Mainnet, Testnet)
	}
	if cfg.RPCEndpoint == "" {
		return fmt.Errorf("rpc_endpoint is required")
	}
	if !strings.HasPrefix(cfg.RPCEndpoint, "http://") && !strings.HasPrefix(cfg.RPCEndpoint, "https://") {
		return fmt.Errorf("rpc_endpoint must be an http(s) URL")
	}
	if cfg.WSEndpoint != "" && !strings.HasPrefix(cfg.WSEndpoint, "ws://") && !strings.HasPrefix(cfg.WSEndpoint, "wss://") {
		return fmt.Errorf("ws_endpoint must be a ws(s) URL")
	}
	if cfg.RPCTimeout < 0 {
		return fmt.Errorf("rpc_timeout must not be negative")
	}
	if cfg.ReceiptTimeout <= 0 {
		return fmt.Errorf("receipt_timeout must be positive")
	}
	if cfg.Monitor.RecheckDelay <= 0 {
		return fmt.Errorf("monitor.recheck_delay must be positive")
	}
	if cfg.Monitor.RecheckTimeout <= 0 {
		return fmt.Errorf("monitor.recheck_timeout must be positive")
	}
	if cfg.Monitor.RechecksPerSecond <= 0 {
		return fmt.Errorf("monitor.rechecks_per_second must be positive")
	}
	return nil
}
