package wallet

import (
	"fmt"

	"github.com/tyler-smith/go-bip39"
)

// SeedSize is the length of a derived seed in bytes (512 bits).
const SeedSize = 64

// SeedFromMnemonic derives a 512-bit seed from a mnemonic and optional
// passphrase using PBKDF2-SHA512 as specified in BIP-39. Only the weak
// word-count rule is enforced; a phrase with an invalid checksum still
// derives a seed (and thus a distinct, reproducible wallet).
func SeedFromMnemonic(mnemonic, passphrase string) ([]byte, error) {
	if !hasMinimumWords(mnemonic) {
		return nil, fmt.Errorf("%w: need at least %d words", ErrInvalidMnemonic, MinMnemonicWords)
	}
	return bip39.NewSeed(mnemonic, passphrase), nil
}
