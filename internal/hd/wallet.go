// Package hd turns a BIP-39 mnemonic into secp256k1 private keys along
// BIP-32 derivation paths.
package hd

import (
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"
)

var ErrInvalidMnemonic = errors.New("invalid mnemonic")

// Wallet holds a BIP-39 seed. Call Clear once the wallet is no longer needed.
type Wallet struct {
	seed []byte
}

// GenerateMnemonic returns a new mnemonic with the given entropy size in bits
// (128 to 256, a multiple of 32).
func GenerateMnemonic(bits int) (string, error) {
	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate entropy")
	}
	defer clear(entropy)

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", errors.Wrap(err, "failed to create mnemonic")
	}
	return mnemonic, nil
}

// NewWallet validates the mnemonic checksum and computes the seed.
func NewWallet(mnemonic string, passphrase string) (*Wallet, error) {
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidMnemonic, err.Error())
	}
	return &Wallet{seed: seed}, nil
}

// DerivePrivateKey derives the raw 32 byte private key at path.
// WARNING: Caller must clear the private key after use
func (w *Wallet) DerivePrivateKey(path string) ([]byte, error) {
	if w.seed == nil {
		return nil, errors.New("wallet has been cleared")
	}

	indices, err := ParsePath(path)
	if err != nil {
		return nil, err
	}

	// Create master key from seed
	key, err := bip32.NewMasterKey(w.seed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create master key")
	}

	// Derive key step by step
	for _, index := range indices {
		key, err = key.NewChildKey(index)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to derive child key at index %d", index)
		}
	}

	privateKey := make([]byte, len(key.Key))
	copy(privateKey, key.Key)
	clear(key.Key)

	return privateKey, nil
}

// Clear zeroes the seed.
func (w *Wallet) Clear() {
	clear(w.seed)
	w.seed = nil
}
