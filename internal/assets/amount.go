package assets

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// ToBaseUnits converts a human-readable decimal amount to integer base
// units at the given precision. The conversion is exact: amounts with
// more fractional digits than the asset supports are rejected rather
// than rounded, and floating point is never involved.
func ToBaseUnits(amount string, decimals int32) (*big.Int, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("amount %q must not be negative", amount)
	}

	shifted := d.Shift(decimals)
	if !shifted.IsInteger() {
		return nil, fmt.Errorf("amount %q has more than %d decimal places", amount, decimals)
	}
	return shifted.BigInt(), nil
}

// ToHumanUnits converts integer base units to a human-readable decimal
// string at the given precision. The conversion is exact; trailing
// zeros are trimmed ("1.500000" renders as "1.5").
func ToHumanUnits(base *big.Int, decimals int32) string {
	if base == nil {
		return "0"
	}
	return decimal.NewFromBigInt(base, -decimals).String()
}
