package ledger

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// Quantity and data codecs for the node's hex wire conventions:
// quantities are "0x"-prefixed minimal hex, data is "0x"-prefixed
// even-length hex.

func parseQuantity(s string) (*big.Int, error) {
	hexStr := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if hexStr == "" {
		return nil, fmt.Errorf("empty quantity")
	}
	v, ok := new(big.Int).SetString(hexStr, 16)
	if !ok {
		return nil, fmt.Errorf("invalid quantity %q", s)
	}
	return v, nil
}

func parseUint64(s string) (uint64, error) {
	v, err := parseQuantity(s)
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, fmt.Errorf("quantity %q overflows uint64", s)
	}
	return v.Uint64(), nil
}

func formatQuantity(v *big.Int) string {
	if v == nil || v.Sign() == 0 {
		return "0x0"
	}
	return "0x" + v.Text(16)
}

func formatUint64(v uint64) string {
	return formatQuantity(new(big.Int).SetUint64(v))
}

func parseData(s string) ([]byte, error) {
	hexStr := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if hexStr == "" {
		return nil, nil
	}
	b, err := hex.DecodeString(hexStr)
	if err != nil {
		return nil, fmt.Errorf("invalid data %q: %w", s, err)
	}
	return b, nil
}

func formatData(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}
