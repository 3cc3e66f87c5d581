package wallet

import (
	"errors"
	"fmt"

	"github.com/quillchain/quillwallet/internal/log"
	"github.com/quillchain/quillwallet/pkg/crypto"
	"github.com/quillchain/quillwallet/pkg/types"
)

// Error taxonomy for wallet creation.
var (
	// ErrUnsupportedWalletType is returned for wallet variants the
	// engine does not implement (multi-signature). No derivation runs.
	ErrUnsupportedWalletType = errors.New("unsupported wallet type")

	// ErrInvalidMnemonic is returned when a caller-supplied phrase has
	// fewer than MinMnemonicWords words.
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
)

// Type selects the wallet variant to create.
type Type string

const (
	// TypeDefault is the single-key, HD-derived wallet.
	TypeDefault Type = "default"

	// TypeMultisig is recognized but unsupported; creation fails fast.
	TypeMultisig Type = "multisig"
)

// Derivation path defaults for the primary wallet.
const (
	// DefaultAccount is the hardened account component.
	DefaultAccount = 0

	// DefaultAddressIndex is the address index used by GenerateAddress
	// when the caller does not choose one. Index 0 is the primary
	// wallet's own address.
	DefaultAddressIndex = 1
)

// Options configures wallet creation.
type Options struct {
	// Type selects the wallet variant. Empty means TypeDefault.
	Type Type

	// Mnemonic, when non-empty, is the caller-supplied phrase. A fresh
	// one is generated otherwise.
	Mnemonic string

	// PrivateKey, when non-empty, is a raw hex private key that fully
	// replaces HD derivation: no mnemonic is consumed or reported, and
	// all reported key material matches this key.
	PrivateKey string

	// Passphrase is the optional BIP-39 seed passphrase.
	Passphrase string

	// Index is the terminal address-index component of the derivation
	// path. Zero is the primary wallet.
	Index uint32
}

// Wallet is immutable key material for one address. The caller owns
// persistence; nothing is written to disk here.
type Wallet struct {
	// Mnemonic is the seed phrase, empty for raw-key wallets.
	Mnemonic string

	// PrivateKey is the 32-byte signing key.
	PrivateKey []byte

	// PublicKey is the uncompressed 65-byte public key.
	PublicKey []byte

	// Address is the 20-byte account address. Address.String() renders
	// the mixed-case checksum form.
	Address types.Address
}

// Create builds a wallet per the options: from a raw private key, from a
// caller-supplied mnemonic, or from a freshly generated one. Same
// mnemonic, passphrase, and index always yield the same wallet.
// No network I/O.
func Create(opts Options) (*Wallet, error) {
	switch opts.Type {
	case "", TypeDefault:
	case TypeMultisig:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedWalletType, opts.Type)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedWalletType, opts.Type)
	}

	if opts.PrivateKey != "" {
		return fromRawKey(opts.PrivateKey)
	}

	mnemonic := opts.Mnemonic
	if mnemonic == "" {
		generated, err := GenerateMnemonic()
		if err != nil {
			return nil, err
		}
		mnemonic = generated
	} else if !hasMinimumWords(mnemonic) {
		return nil, fmt.Errorf("%w: need at least %d words", ErrInvalidMnemonic, MinMnemonicWords)
	}

	w, err := derive(mnemonic, opts.Passphrase, opts.Index)
	if err != nil {
		return nil, err
	}

	log.Wallet.Debug().
		Str("address", w.Address.String()).
		Uint32("index", opts.Index).
		Msg("wallet created")
	return w, nil
}

// GenerateAddress derives the wallet at the given address index under an
// existing mnemonic. The phrase is only checked for the minimum word
// count; checksum validity is not enforced. The returned key material is
// the per-index derived key, matching the address.
func GenerateAddress(mnemonic string, index uint32) (*Wallet, error) {
	if !hasMinimumWords(mnemonic) {
		return nil, fmt.Errorf("%w: need at least %d words", ErrInvalidMnemonic, MinMnemonicWords)
	}
	return derive(mnemonic, "", index)
}

// derive walks m/44'/60'/0'/0/index and assembles the wallet.
func derive(mnemonic, passphrase string, index uint32) (*Wallet, error) {
	seed, err := SeedFromMnemonic(mnemonic, passphrase)
	if err != nil {
		return nil, err
	}

	master, err := NewMasterKey(seed)
	if err != nil {
		return nil, err
	}

	node, err := master.DeriveAddress(DefaultAccount, ChangeExternal, index)
	if err != nil {
		return nil, fmt.Errorf("derive address node: %w", err)
	}

	signer, err := node.Signer()
	if err != nil {
		return nil, err
	}

	return &Wallet{
		Mnemonic:   mnemonic,
		PrivateKey: signer.Serialize(),
		PublicKey:  signer.PublicKey(),
		Address:    signer.Address(),
	}, nil
}

// fromRawKey builds a wallet around a caller-supplied private key.
func fromRawKey(rawHex string) (*Wallet, error) {
	signer, err := crypto.PrivateKeyFromHex(rawHex)
	if err != nil {
		return nil, err
	}
	return &Wallet{
		PrivateKey: signer.Serialize(),
		PublicKey:  signer.PublicKey(),
		Address:    signer.Address(),
	}, nil
}
