package ledger

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/quillchain/quillwallet/pkg/crypto"
	"github.com/quillchain/quillwallet/pkg/types"
)

// ABI method signatures for the fungible-token standard.
const (
	MethodTransfer  = "transfer(address,uint256)"
	MethodBalanceOf = "balanceOf(address)"
)

// word is the fixed argument width of the contract ABI.
const word = 32

// EncodeCall builds the ABI call data for a method signature such as
// "transfer(address,uint256)": the 4-byte selector (Keccak-256 of the
// signature) followed by each argument left-padded to a 32-byte word.
// Supported argument types: types.Address, *big.Int, uint64.
func EncodeCall(method string, args ...interface{}) ([]byte, error) {
	if err := checkArity(method, len(args)); err != nil {
		return nil, err
	}

	sum := crypto.Keccak256([]byte(method))
	out := make([]byte, 4, 4+word*len(args))
	copy(out, sum[:4])

	for i, arg := range args {
		var padded [word]byte
		switch v := arg.(type) {
		case types.Address:
			copy(padded[word-types.AddressSize:], v.Bytes())
		case *big.Int:
			if v == nil || v.Sign() < 0 {
				return nil, fmt.Errorf("arg %d: value must be a non-negative integer", i)
			}
			if v.BitLen() > word*8 {
				return nil, fmt.Errorf("arg %d: value exceeds 256 bits", i)
			}
			v.FillBytes(padded[:])
		case uint64:
			new(big.Int).SetUint64(v).FillBytes(padded[:])
		default:
			return nil, fmt.Errorf("arg %d: unsupported type %T", i, arg)
		}
		out = append(out, padded[:]...)
	}
	return out, nil
}

// checkArity compares the argument count against the signature.
func checkArity(method string, got int) error {
	open := strings.IndexByte(method, '(')
	end := strings.LastIndexByte(method, ')')
	if open < 0 || end < open {
		return fmt.Errorf("malformed method signature %q", method)
	}
	inner := method[open+1 : end]
	want := 0
	if inner != "" {
		want = strings.Count(inner, ",") + 1
	}
	if got != want {
		return fmt.Errorf("method %q takes %d args, got %d", method, want, got)
	}
	return nil
}
