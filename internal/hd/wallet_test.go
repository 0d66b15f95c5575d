package hd_test

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/wallet-core/internal/hd"
)

const testMnemonic = "test test test test test test test test test test test junk"

func TestDerivePrivateKey(t *testing.T) {
	wallet, err := hd.NewWallet(testMnemonic, "")
	require.NoError(t, err)
	defer wallet.Clear()

	tests := []struct {
		path    string
		address string
	}{
		{path: "m/44'/60'/0'/0/0", address: "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"},
		{path: "m/44'/60'/0'/0/1", address: "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"},
	}

	for _, tt := range tests {
		key, err := wallet.DerivePrivateKey(tt.path)
		require.NoError(t, err)
		require.Len(t, key, 32)

		ecdsaKey, err := crypto.ToECDSA(key)
		require.NoError(t, err)
		assert.Equal(t, tt.address, crypto.PubkeyToAddress(ecdsaKey.PublicKey).Hex())
	}
}

func TestPassphraseChangesKeys(t *testing.T) {
	plain, err := hd.NewWallet(testMnemonic, "")
	require.NoError(t, err)
	salted, err := hd.NewWallet(testMnemonic, "TREZOR")
	require.NoError(t, err)

	a, err := plain.DerivePrivateKey("m/44'/60'/0'/0/0")
	require.NoError(t, err)
	b, err := salted.DerivePrivateKey("m/44'/60'/0'/0/0")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestNewWalletRejectsBadMnemonic(t *testing.T) {
	_, err := hd.NewWallet(strings.Repeat("abandon ", 11)+"abandon", "")
	assert.ErrorIs(t, err, hd.ErrInvalidMnemonic)

	_, err = hd.NewWallet("not a mnemonic", "")
	assert.ErrorIs(t, err, hd.ErrInvalidMnemonic)
}

func TestClear(t *testing.T) {
	wallet, err := hd.NewWallet(testMnemonic, "")
	require.NoError(t, err)

	wallet.Clear()
	_, err = wallet.DerivePrivateKey("m/44'/60'/0'/0/0")
	assert.Error(t, err)
}

func TestGenerateMnemonic(t *testing.T) {
	mnemonic, err := hd.GenerateMnemonic(128)
	require.NoError(t, err)
	assert.Len(t, strings.Fields(mnemonic), 12)

	_, err = hd.NewWallet(mnemonic, "")
	require.NoError(t, err)

	mnemonic, err = hd.GenerateMnemonic(256)
	require.NoError(t, err)
	assert.Len(t, strings.Fields(mnemonic), 24)

	_, err = hd.GenerateMnemonic(100)
	assert.Error(t, err)
}
