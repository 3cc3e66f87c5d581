package tx

// Gas cost constants for the intrinsic cost of a transaction, charged
// before any execution happens.
const (
	// GasTransfer is the base cost of any transaction.
	GasTransfer = 21_000

	// GasDataZeroByte is the cost per zero byte of call data.
	GasDataZeroByte = 4

	// GasDataNonZeroByte is the cost per non-zero byte of call data.
	GasDataNonZeroByte = 16
)

// IntrinsicGas returns the minimum gas any transaction carrying the
// given call data can consume. Used as a floor under network-provided
// gas estimates: an estimate below this value cannot be valid.
func IntrinsicGas(data []byte) uint64 {
	gas := uint64(GasTransfer)
	for _, b := range data {
		if b == 0 {
			gas += GasDataZeroByte
		} else {
			gas += GasDataNonZeroByte
		}
	}
	return gas
}
