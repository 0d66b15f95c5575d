package ethereum_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/wallet-core/internal/coinentry"
	"github/chapool/wallet-core/internal/ethereum"
	"github/chapool/wallet-core/internal/proto"
	ethproto "github/chapool/wallet-core/internal/proto/ethereum"
	"github/chapool/wallet-core/internal/proto/txcompiler"
	"github/chapool/wallet-core/internal/registry"
	"golang.org/x/sync/errgroup"
)

const (
	uncompressedKeyOne = "0x0479be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"
	compressedKeyOne   = "0x0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	addressKeyOne      = "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf"
)

func ethereumCoin(t *testing.T) *registry.CoinItem {
	t.Helper()

	reg, err := registry.Default()
	require.NoError(t, err)
	coin, ok := reg.CoinByType(60)
	require.True(t, ok)
	return coin
}

func transferInput() *ethproto.SigningInput {
	return &ethproto.SigningInput{
		ChainID:    uint256.NewInt(1).Bytes(),
		Nonce:      uint256.NewInt(9).Bytes(),
		GasPrice:   uint256.NewInt(20_000_000_000).Bytes(),
		GasLimit:   uint256.NewInt(21000).Bytes(),
		ToAddress:  "0x3535353535353535353535353535353535353535",
		PrivateKey: hexutil.MustDecode("0x4646464646464646464646464646464646464646464646464646464646464646"),
		Transaction: &ethproto.Transaction{
			Transfer: &ethproto.Transfer{Amount: hexutil.MustDecode("0x0de0b6b3a7640000")},
		},
	}
}

func TestDeriveAddress(t *testing.T) {
	coin := ethereumCoin(t)
	entry := ethereum.Entry{}

	for _, key := range []string{uncompressedKeyOne, compressedKeyOne} {
		addr, err := entry.DeriveAddress(coin, hexutil.MustDecode(key), coinentry.DerivationDefault, nil)
		require.NoError(t, err)
		assert.Equal(t, addressKeyOne, addr.String())
	}

	_, err := entry.DeriveAddress(coin, hexutil.MustDecode(uncompressedKeyOne), coinentry.Derivation(1), nil)
	assert.ErrorIs(t, err, coinentry.ErrUnsupported)

	_, err = entry.DeriveAddress(coin, []byte{0x04, 0x01}, coinentry.DerivationDefault, nil)
	assert.ErrorIs(t, err, coinentry.ErrPublicKeyTypeMismatch)

	// 32 bytes is a private key length, not a public key
	_, err = entry.DeriveAddress(coin, make([]byte, 32), coinentry.DerivationDefault, nil)
	assert.ErrorIs(t, err, coinentry.ErrPublicKeyTypeMismatch)
}

func TestAddressRoundTrip(t *testing.T) {
	coin := ethereumCoin(t)
	ext := ethereum.NewExt()

	derived, err := ext.DeriveAddress(coin, hexutil.MustDecode(uncompressedKeyOne), coinentry.DerivationDefault, nil)
	require.NoError(t, err)

	parsed, err := ext.ParseAddress(coin, derived.String(), nil)
	require.NoError(t, err)
	assert.Equal(t, derived.Data(), parsed.Data())
	assert.Equal(t, derived.String(), parsed.String())

	normalized, err := ext.NormalizeAddress(coin, "0x7e5f4552091a69125d5dfcb7b8c2659029395bdf")
	require.NoError(t, err)
	assert.Equal(t, addressKeyOne, normalized)

	err = ext.ValidateAddress(coin, addressKeyOne, &coinentry.PrefixType{Hrp: "eth"})
	assert.ErrorIs(t, err, coinentry.ErrUnexpectedAddressPrefix)
}

func TestOptionalModules(t *testing.T) {
	entry := ethereum.Entry{}

	_, ok := entry.PlanBuilder()
	assert.False(t, ok)
	_, ok = entry.JSONSigner()
	assert.True(t, ok)
	_, ok = entry.SigningInputBuilder()
	assert.True(t, ok)

	ext := ethereum.NewExt()
	assert.True(t, ext.SupportsJSONSigning())
	_, err := ext.Plan(ethereumCoin(t), nil)
	assert.ErrorIs(t, err, coinentry.ErrNotSupported)
}

func TestTypeErasureFidelity(t *testing.T) {
	coin := ethereumCoin(t)
	entry := ethereum.Entry{}
	ext := ethereum.NewExt()
	input := transferInput()

	raw, err := ext.Sign(coin, input.Marshal())
	require.NoError(t, err)
	assert.Equal(t, entry.Sign(coin, input).Marshal(), raw)

	raw, err = ext.PreimageHashes(coin, input.Marshal())
	require.NoError(t, err)
	assert.Equal(t, entry.PreimageHashes(coin, input).Marshal(), raw)

	pre, err := proto.Decode[txcompiler.PreSigningOutput](raw)
	require.NoError(t, err)
	assert.Equal(t,
		"0xdaf5a779ae972f972197303d7b574746c7ef83eadac0f2791ad23db92e4c8e53",
		hexutil.Encode(pre.DataHash))

	out, err := proto.Decode[ethproto.SigningOutput](mustSign(t, ext, coin, input))
	require.NoError(t, err)

	// r || s || recovery id, with v = recid + 35 + 2 * chain id
	signature := append(append(leftPad(out.R), leftPad(out.S)...), out.V[0]-37)
	raw, err = ext.Compile(coin, input.Marshal(), [][]byte{signature}, nil)
	require.NoError(t, err)
	compiled, err := proto.Decode[ethproto.SigningOutput](raw)
	require.NoError(t, err)
	assert.Equal(t, out.Encoded, compiled.Encoded)
}

func TestSignErrorsStayInOutput(t *testing.T) {
	coin := ethereumCoin(t)
	input := transferInput()
	input.ToAddress = "0x0000"

	raw, err := ethereum.NewExt().Sign(coin, input.Marshal())
	require.NoError(t, err)

	out, err := proto.Decode[ethproto.SigningOutput](raw)
	require.NoError(t, err)
	assert.Equal(t, proto.ErrorInvalidAddress, out.Error)
	assert.Empty(t, out.Encoded)
}

func TestConcurrentUse(t *testing.T) {
	coin := ethereumCoin(t)
	ext := ethereum.NewExt()
	input := transferInput().Marshal()

	want, err := ext.Sign(coin, input)
	require.NoError(t, err)

	var group errgroup.Group
	results := make([][]byte, 32)
	for i := range results {
		group.Go(func() error {
			out, err := ext.Sign(coin, input)
			results[i] = out
			return err
		})
	}
	require.NoError(t, group.Wait())

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func mustSign(t *testing.T, ext coinentry.CoinEntryExt, coin coinentry.CoinContext, input *ethproto.SigningInput) []byte {
	t.Helper()
	raw, err := ext.Sign(coin, input.Marshal())
	require.NoError(t, err)
	return raw
}

func leftPad(b []byte) []byte {
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out
}
