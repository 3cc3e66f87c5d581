package crypto

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/quillchain/quillwallet/pkg/types"
)

// Signature is a recoverable ECDSA signature over secp256k1. RecoveryID
// identifies which of the candidate public keys produced the signature
// and feeds the replay-protected V value of a signed transaction.
type Signature struct {
	R          *big.Int
	S          *big.Int
	RecoveryID byte
}

// PrivateKey wraps a secp256k1 private key for ECDSA signing.
type PrivateKey struct {
	key *secp256k1.PrivateKey
}

// GenerateKey creates a new random secp256k1 private key.
func GenerateKey() (*PrivateKey, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return &PrivateKey{key: key}, nil
}

// PrivateKeyFromBytes creates a PrivateKey from a 32-byte secret.
func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != 32 {
		return nil, fmt.Errorf("private key must be 32 bytes, got %d", len(b))
	}
	key := secp256k1.PrivKeyFromBytes(b)
	return &PrivateKey{key: key}, nil
}

// PrivateKeyFromHex creates a PrivateKey from a 64-character hex string,
// with or without "0x" prefix.
func PrivateKeyFromHex(s string) (*PrivateKey, error) {
	hexStr := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(hexStr)
	if err != nil {
		return nil, fmt.Errorf("invalid private key hex: %w", err)
	}
	return PrivateKeyFromBytes(b)
}

// Sign produces a recoverable ECDSA signature over a 32-byte hash.
// The S value is always in the lower half of the curve order.
func (pk *PrivateKey) Sign(hash []byte) (*Signature, error) {
	if len(hash) != 32 {
		return nil, fmt.Errorf("hash must be 32 bytes, got %d", len(hash))
	}
	// Compact format: [header(1), R(32), S(32)], header = 27 + recovery id
	// for an uncompressed public key.
	compact := ecdsa.SignCompact(pk.key, hash, false)
	return &Signature{
		R:          new(big.Int).SetBytes(compact[1:33]),
		S:          new(big.Int).SetBytes(compact[33:65]),
		RecoveryID: compact[0] - 27,
	}, nil
}

// PublicKey returns the uncompressed 65-byte public key (0x04 prefix).
func (pk *PrivateKey) PublicKey() []byte {
	return pk.key.PubKey().SerializeUncompressed()
}

// Address derives the account address from this key's public key.
func (pk *PrivateKey) Address() types.Address {
	return AddressFromPubKey(pk.PublicKey())
}

// Serialize returns the 32-byte private key scalar.
func (pk *PrivateKey) Serialize() []byte {
	return pk.key.Serialize()
}

// Zero securely zeroes the private key memory.
func (pk *PrivateKey) Zero() {
	pk.key.Zero()
}

// RecoverPubKey recovers the uncompressed public key that produced sig
// over a 32-byte hash. Used to verify signatures round trip.
func RecoverPubKey(hash []byte, sig *Signature) ([]byte, error) {
	compact := make([]byte, 65)
	compact[0] = sig.RecoveryID + 27
	sig.R.FillBytes(compact[1:33])
	sig.S.FillBytes(compact[33:65])

	pub, _, err := ecdsa.RecoverCompact(compact, hash)
	if err != nil {
		return nil, fmt.Errorf("recover pubkey: %w", err)
	}
	return pub.SerializeUncompressed(), nil
}
