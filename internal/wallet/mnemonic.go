// Package wallet implements deterministic key derivation: mnemonics,
// seeds, hierarchical keys, and wallet creation.
package wallet

import (
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

// MnemonicEntropyBits is the entropy size for 24-word mnemonics.
const MnemonicEntropyBits = 256

// MinMnemonicWords is the minimum word count accepted from callers.
// This is the sole validation applied to caller-supplied phrases:
// word-list membership and the checksum are deliberately not verified,
// so any 12+ word phrase derives a (phrase-specific) wallet.
const MinMnemonicWords = 12

// GenerateMnemonic creates a new 24-word BIP-39 mnemonic from a
// cryptographically secure entropy source.
func GenerateMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(MnemonicEntropyBits)
	if err != nil {
		return "", fmt.Errorf("generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// ValidateMnemonic checks if a mnemonic is valid per BIP-39
// (correct word count, valid words, valid checksum). Stricter than the
// engine's own acceptance rule; used for advisory warnings.
func ValidateMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(mnemonic)
}

// hasMinimumWords applies the engine's weak acceptance rule.
func hasMinimumWords(mnemonic string) bool {
	return len(strings.Fields(mnemonic)) >= MinMnemonicWords
}
