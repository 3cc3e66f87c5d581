// Package tx defines the account-based transaction type, its canonical
// signing encoding, and the signed raw serialization.
package tx

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/quillchain/quillwallet/pkg/crypto"
	"github.com/quillchain/quillwallet/pkg/rlp"
	"github.com/quillchain/quillwallet/pkg/types"
)

// Transaction is a legacy-format account transaction. A native transfer
// carries a non-nil To and a Value; a contract call carries the contract
// address in To, the encoded call in Data, and usually a zero Value.
type Transaction struct {
	Nonce    uint64         `json:"nonce"`
	GasPrice *big.Int       `json:"gasPrice"`
	GasLimit uint64         `json:"gas"`
	To       *types.Address `json:"to"`
	Value    *big.Int       `json:"value"`
	Data     []byte         `json:"input"`

	// Signature values, populated by Sign. V carries the chain ID per
	// EIP-155 so the signature is not replayable on another network.
	V *big.Int `json:"v"`
	R *big.Int `json:"r"`
	S *big.Int `json:"s"`
}

// SigningHash computes the replay-protected hash that is signed:
// Keccak256(rlp([nonce, gasPrice, gas, to, value, data, chainID, 0, 0])).
func (tx *Transaction) SigningHash(chainID uint64) types.Hash {
	payload := rlp.EncodeList(
		rlp.EncodeUint(tx.Nonce),
		rlp.EncodeBigInt(tx.GasPrice),
		rlp.EncodeUint(tx.GasLimit),
		rlp.EncodeBytes(tx.toBytes()),
		rlp.EncodeBigInt(tx.Value),
		rlp.EncodeBytes(tx.Data),
		rlp.EncodeUint(chainID),
		rlp.EncodeUint(0),
		rlp.EncodeUint(0),
	)
	return crypto.Keccak256(payload)
}

// Sign signs the transaction with the given key, binding it to chainID.
// V = recovery_id + chainID*2 + 35.
func (tx *Transaction) Sign(key *crypto.PrivateKey, chainID uint64) error {
	hash := tx.SigningHash(chainID)
	sig, err := key.Sign(hash.Bytes())
	if err != nil {
		return fmt.Errorf("sign tx: %w", err)
	}

	v := new(big.Int).SetUint64(chainID*2 + 35 + uint64(sig.RecoveryID))
	tx.V = v
	tx.R = sig.R
	tx.S = sig.S
	return nil
}

// Raw returns the canonical signed serialization:
// rlp([nonce, gasPrice, gas, to, value, data, v, r, s]).
func (tx *Transaction) Raw() ([]byte, error) {
	if tx.V == nil || tx.R == nil || tx.S == nil {
		return nil, fmt.Errorf("transaction is not signed")
	}
	return rlp.EncodeList(
		rlp.EncodeUint(tx.Nonce),
		rlp.EncodeBigInt(tx.GasPrice),
		rlp.EncodeUint(tx.GasLimit),
		rlp.EncodeBytes(tx.toBytes()),
		rlp.EncodeBigInt(tx.Value),
		rlp.EncodeBytes(tx.Data),
		rlp.EncodeBigInt(tx.V),
		rlp.EncodeBigInt(tx.R),
		rlp.EncodeBigInt(tx.S),
	), nil
}

// RawHex returns the signed serialization hex-encoded with the "0x"
// marker expected by the broadcast endpoint.
func (tx *Transaction) RawHex() (string, error) {
	raw, err := tx.Raw()
	if err != nil {
		return "", err
	}
	return "0x" + hex.EncodeToString(raw), nil
}

// Hash computes the transaction hash: Keccak256 of the signed raw bytes.
func (tx *Transaction) Hash() (types.Hash, error) {
	raw, err := tx.Raw()
	if err != nil {
		return types.Hash{}, err
	}
	return crypto.Keccak256(raw), nil
}

// IsSigned reports whether signature values are present.
func (tx *Transaction) IsSigned() bool {
	return tx.V != nil && tx.R != nil && tx.S != nil
}

// toBytes returns the recipient bytes, empty for contract creation.
func (tx *Transaction) toBytes() []byte {
	if tx.To == nil {
		return nil
	}
	return tx.To.Bytes()
}
