// Package crypto provides the hashing and signing primitives for the
// wallet engine: Keccak-256 and recoverable ECDSA over secp256k1.
package crypto

import (
	"golang.org/x/crypto/sha3"

	"github.com/quillchain/quillwallet/pkg/types"
)

// Keccak256 computes the legacy Keccak-256 hash of the concatenation of
// the inputs. This is the pre-NIST padding variant used by the ledger,
// not standard SHA3-256.
func Keccak256(data ...[]byte) types.Hash {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	var out types.Hash
	h.Sum(out[:0])
	return out
}

// AddressFromPubKey derives an account address from a 65-byte uncompressed
// public key (0x04 prefix). Address = Keccak256(pubkey[1:])[12:].
func AddressFromPubKey(pubKey []byte) types.Address {
	h := Keccak256(pubKey[1:])
	var addr types.Address
	copy(addr[:], h[types.HashSize-types.AddressSize:])
	return addr
}
