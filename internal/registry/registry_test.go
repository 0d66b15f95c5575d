package registry_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/wallet-core/internal/coinentry"
	"github/chapool/wallet-core/internal/keypair"
	"github/chapool/wallet-core/internal/registry"
)

func TestDefaultRegistry(t *testing.T) {
	reg, err := registry.Default()
	require.NoError(t, err)

	eth, ok := reg.CoinByType(60)
	require.True(t, ok)
	assert.Equal(t, "ethereum", eth.ID)
	assert.Equal(t, registry.BlockchainEthereum, eth.Blockchain)
	assert.Equal(t, keypair.CurveSecp256k1, eth.Curve())
	assert.Equal(t, keypair.PublicKeyTypeSecp256k1Extended, eth.PublicKeyType())
	require.NotNil(t, eth.ChainID)
	assert.Equal(t, uint64(1), eth.ChainID.Uint64())

	path, ok := eth.DerivationPath(coinentry.DerivationDefault)
	require.True(t, ok)
	assert.Equal(t, "m/44'/60'/0'/0/0", path)
	assert.False(t, eth.SupportsDerivation(coinentry.Derivation(1)))

	bsc, ok := reg.CoinByID("smartchain")
	require.True(t, ok)
	assert.Equal(t, uint32(20000714), bsc.CoinType)
	assert.Equal(t, uint64(56), bsc.ChainID.Uint64())

	btc, ok := reg.CoinByType(0)
	require.True(t, ok)
	assert.Equal(t, registry.BlockchainUnsupported, btc.Blockchain)
	assert.Nil(t, btc.ChainID)
	assert.True(t, btc.SupportsDerivation(coinentry.Derivation(1)))

	_, ok = reg.CoinByType(12345)
	assert.False(t, ok)

	coins := reg.Coins()
	require.NotEmpty(t, coins)
	for i := 1; i < len(coins); i++ {
		assert.Less(t, coins[i-1].CoinType, coins[i].CoinType)
	}
}

func TestBlockchainFromString(t *testing.T) {
	assert.Equal(t, registry.BlockchainEthereum, registry.BlockchainFromString("Ethereum"))
	assert.Equal(t, registry.BlockchainUnsupported, registry.BlockchainFromString("Solana"))
	assert.Equal(t, registry.BlockchainUnsupported, registry.BlockchainFromString(""))
	assert.Equal(t, "Ethereum", registry.BlockchainEthereum.String())
}

func TestParseErrors(t *testing.T) {
	_, err := registry.Parse([]byte(`coins:
  - id: x
    coinId: 1
    blockchain: Ethereum
    curve: bogus
    publicKeyType: secp256k1
`))
	assert.ErrorIs(t, err, registry.ErrUnknownCurve)

	_, err = registry.Parse([]byte(`coins:
  - id: x
    coinId: 1
    curve: secp256k1
    publicKeyType: nope
`))
	assert.ErrorIs(t, err, registry.ErrUnknownPublicKeyType)

	_, err = registry.Parse([]byte(`coins:
  - {id: a, coinId: 1, curve: secp256k1, publicKeyType: secp256k1}
  - {id: b, coinId: 1, curve: secp256k1, publicKeyType: secp256k1}
`))
	assert.ErrorIs(t, err, registry.ErrDuplicateCoin)

	_, err = registry.Parse([]byte("coins: ["))
	assert.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coins.yaml")
	err := os.WriteFile(path, []byte(`coins:
  - id: sepolia
    coinId: 11155111
    blockchain: Ethereum
    curve: secp256k1
    publicKeyType: secp256k1Extended
    chainId: "11155111"
    derivation:
      - {name: default, path: "m/44'/60'/0'/0/0"}
`), 0o600)
	require.NoError(t, err)

	reg, err := registry.Load(path)
	require.NoError(t, err)

	item, ok := reg.CoinByID("sepolia")
	require.True(t, ok)
	assert.Equal(t, uint64(11155111), item.ChainID.Uint64())

	_, err = registry.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coins.toml")
	err := os.WriteFile(path, []byte(`
[[coins]]
id = "base"
name = "Base"
coinId = 8453
blockchain = "Ethereum"
curve = "secp256k1"
publicKeyType = "secp256k1Extended"
chainId = "8453"

  [[coins.derivation]]
  name = "default"
  path = "m/44'/60'/0'/0/0"

[[coins]]
id = "solana"
coinId = 501
blockchain = "Solana"
curve = "ed25519"
publicKeyType = "ed25519"
`), 0o600)
	require.NoError(t, err)

	reg, err := registry.Load(path)
	require.NoError(t, err)

	base, ok := reg.CoinByType(8453)
	require.True(t, ok)
	assert.Equal(t, registry.BlockchainEthereum, base.Blockchain)
	assert.Equal(t, uint64(8453), base.EVMChainID().Uint64())
	assert.True(t, base.SupportsDerivation(coinentry.DerivationDefault))

	sol, ok := reg.CoinByID("solana")
	require.True(t, ok)
	assert.Equal(t, registry.BlockchainUnsupported, sol.Blockchain)
	assert.Equal(t, keypair.CurveEd25519, sol.Curve())
	assert.Nil(t, sol.EVMChainID())
	assert.False(t, sol.SupportsDerivation(coinentry.DerivationDefault))
}
