package modules_test

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/wallet-core/internal/ethereum/modules"
	"github/chapool/wallet-core/internal/keypair"
	"github/chapool/wallet-core/internal/proto"
	ethproto "github/chapool/wallet-core/internal/proto/ethereum"
)

const (
	privateKeyHex = "0x4646464646464646464646464646464646464646464646464646464646464646"
	signerAddress = "0x9d8A62f656a8d1615C1294fd71e9CFb3E4855A4F"
	recipientHex  = "0x3535353535353535353535353535353535353535"
	tokenHex      = "0x6b175474e89094c44da98b954eedeac495271d0f"
)

func u256(v uint64) []byte {
	return uint256.NewInt(v).Bytes()
}

func legacyTransfer() *ethproto.SigningInput {
	oneEther, _ := uint256.FromDecimal("1000000000000000000")

	return &ethproto.SigningInput{
		ChainID:    u256(1),
		Nonce:      u256(9),
		TxMode:     ethproto.TransactionModeLegacy,
		GasPrice:   u256(20_000_000_000),
		GasLimit:   u256(21000),
		ToAddress:  recipientHex,
		PrivateKey: hexutil.MustDecode(privateKeyHex),
		Transaction: &ethproto.Transaction{
			Transfer: &ethproto.Transfer{Amount: oneEther.Bytes()},
		},
	}
}

func enveloped() *ethproto.SigningInput {
	return &ethproto.SigningInput{
		ChainID:               u256(137),
		Nonce:                 u256(4),
		TxMode:                ethproto.TransactionModeEnveloped,
		GasLimit:              u256(78009),
		MaxInclusionFeePerGas: u256(2_000_000_000),
		MaxFeePerGas:          u256(40_000_000_000),
		ToAddress:             tokenHex,
		PrivateKey:            hexutil.MustDecode(privateKeyHex),
		Transaction: &ethproto.Transaction{
			Erc20Transfer: &ethproto.ERC20Transfer{To: recipientHex, Amount: u256(2_000_000)},
		},
	}
}

func decodeTx(t *testing.T, encoded []byte) *types.Transaction {
	t.Helper()
	var tx types.Transaction
	require.NoError(t, tx.UnmarshalBinary(encoded))
	return &tx
}

func TestSignLegacyMatchesGeth(t *testing.T) {
	out := modules.Sign(legacyTransfer())
	require.Equal(t, proto.SigningOK, out.Error, out.ErrorMessage)

	key, err := crypto.HexToECDSA(privateKeyHex[2:])
	require.NoError(t, err)

	to := common.HexToAddress(recipientHex)
	oracle, err := types.SignTx(types.NewTx(&types.LegacyTx{
		Nonce:    9,
		GasPrice: big.NewInt(20_000_000_000),
		Gas:      21000,
		To:       &to,
		Value:    new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil),
	}), types.NewEIP155Signer(big.NewInt(1)), key)
	require.NoError(t, err)

	want, err := oracle.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, hexutil.Encode(want), hexutil.Encode(out.Encoded))

	v, r, s := oracle.RawSignatureValues()
	assert.Equal(t, v.Bytes(), out.V)
	assert.Equal(t, r.Bytes(), out.R)
	assert.Equal(t, s.Bytes(), out.S)
	assert.Empty(t, out.Data)
}

func TestSignErc20Enveloped(t *testing.T) {
	out := modules.Sign(enveloped())
	require.Equal(t, proto.SigningOK, out.Error, out.ErrorMessage)

	tx := decodeTx(t, out.Encoded)
	assert.Equal(t, uint8(types.DynamicFeeTxType), tx.Type())
	assert.Equal(t, common.HexToAddress(tokenHex), *tx.To())
	assert.Equal(t, 0, tx.Value().Sign())
	assert.Equal(t, "a9059cbb", hexutil.Encode(tx.Data()[:4])[2:])
	assert.Equal(t, out.Data, tx.Data())
	assert.Equal(t, int64(137), tx.ChainId().Int64())

	sender, err := types.Sender(types.NewLondonSigner(big.NewInt(137)), tx)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(signerAddress), sender)
}

func TestSignTokenVariants(t *testing.T) {
	tests := []struct {
		name     string
		tx       *ethproto.Transaction
		selector string
	}{
		{
			name:     "erc20 approve",
			tx:       &ethproto.Transaction{Erc20Approve: &ethproto.ERC20Approve{Spender: recipientHex, Amount: u256(1)}},
			selector: "095ea7b3",
		},
		{
			name: "erc721",
			tx: &ethproto.Transaction{Erc721Transfer: &ethproto.ERC721Transfer{
				From: signerAddress, To: recipientHex, TokenID: u256(7),
			}},
			selector: "23b872dd",
		},
		{
			name: "erc1155",
			tx: &ethproto.Transaction{Erc1155Transfer: &ethproto.ERC1155Transfer{
				From: signerAddress, To: recipientHex, TokenID: u256(7), Value: u256(3), Data: []byte{1},
			}},
			selector: "f242432a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := enveloped()
			input.Transaction = tt.tx

			out := modules.Sign(input)
			require.Equal(t, proto.SigningOK, out.Error, out.ErrorMessage)

			tx := decodeTx(t, out.Encoded)
			assert.Equal(t, tt.selector, hexutil.Encode(tx.Data()[:4])[2:])
			assert.Equal(t, common.HexToAddress(tokenHex), *tx.To())
		})
	}
}

func TestSignContractCreation(t *testing.T) {
	input := legacyTransfer()
	input.ToAddress = ""
	input.Transaction = &ethproto.Transaction{
		ContractGeneric: &ethproto.ContractGeneric{Data: []byte{0x60, 0x80, 0x60, 0x40}},
	}

	out := modules.Sign(input)
	require.Equal(t, proto.SigningOK, out.Error, out.ErrorMessage)

	tx := decodeTx(t, out.Encoded)
	assert.Nil(t, tx.To())
	assert.Equal(t, []byte{0x60, 0x80, 0x60, 0x40}, tx.Data())
}

func TestSignErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *ethproto.SigningInput)
		want   proto.SigningErrorType
	}{
		{name: "missing transaction", mutate: func(in *ethproto.SigningInput) { in.Transaction = nil }, want: proto.ErrorInvalidParams},
		{name: "empty transaction", mutate: func(in *ethproto.SigningInput) { in.Transaction = &ethproto.Transaction{} }, want: proto.ErrorInvalidParams},
		{name: "bad recipient", mutate: func(in *ethproto.SigningInput) { in.ToAddress = "0x123" }, want: proto.ErrorInvalidAddress},
		{name: "missing recipient", mutate: func(in *ethproto.SigningInput) { in.ToAddress = "" }, want: proto.ErrorInvalidAddress},
		{name: "bad key", mutate: func(in *ethproto.SigningInput) { in.PrivateKey = []byte{1, 2, 3} }, want: proto.ErrorInvalidPrivateKey},
		{name: "zero key", mutate: func(in *ethproto.SigningInput) { in.PrivateKey = make([]byte, 32) }, want: proto.ErrorInvalidPrivateKey},
		{name: "oversized nonce", mutate: func(in *ethproto.SigningInput) { in.Nonce = make([]byte, 33) }, want: proto.ErrorInvalidParams},
		{name: "oversized chain id", mutate: func(in *ethproto.SigningInput) { in.ChainID = make([]byte, 40) }, want: proto.ErrorInvalidParams},
		{name: "unknown mode", mutate: func(in *ethproto.SigningInput) { in.TxMode = 5 }, want: proto.ErrorInvalidParams},
		{name: "user operation mode", mutate: func(in *ethproto.SigningInput) { in.TxMode = 2 }, want: proto.ErrorInvalidParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := legacyTransfer()
			tt.mutate(input)

			out := modules.Sign(input)
			assert.Equal(t, tt.want, out.Error)
			assert.NotEmpty(t, out.ErrorMessage)
			assert.Empty(t, out.Encoded)
		})
	}
}

func TestPreimageHashes(t *testing.T) {
	pre := modules.PreimageHashes(legacyTransfer())
	require.Equal(t, proto.SigningOK, pre.Error, pre.ErrorMessage)

	assert.Equal(t,
		"0xdaf5a779ae972f972197303d7b574746c7ef83eadac0f2791ad23db92e4c8e53",
		hexutil.Encode(pre.DataHash))
	assert.Equal(t,
		"0xec098504a817c800825208943535353535353535353535353535353535353535880de0b6b3a764000080018080",
		hexutil.Encode(pre.Data))
	assert.Equal(t, crypto.Keccak256(pre.Data), pre.DataHash)

	// the private key is not needed
	input := legacyTransfer()
	input.PrivateKey = nil
	assert.Equal(t, pre.DataHash, modules.PreimageHashes(input).DataHash)

	input.Transaction = nil
	bad := modules.PreimageHashes(input)
	assert.Equal(t, proto.ErrorInvalidParams, bad.Error)
	assert.Empty(t, bad.DataHash)
}

func signExternally(t *testing.T, digest []byte) ([]byte, []byte) {
	t.Helper()

	key, err := keypair.NewSecp256k1PrivateKey(hexutil.MustDecode(privateKeyHex))
	require.NoError(t, err)
	sig, err := key.Sign(common.BytesToHash(digest))
	require.NoError(t, err)
	return sig.Bytes(), key.PublicKey().Uncompressed()
}

func TestCompileConvergesWithSign(t *testing.T) {
	for name, build := range map[string]func() *ethproto.SigningInput{
		"legacy":    legacyTransfer,
		"enveloped": enveloped,
	} {
		t.Run(name, func(t *testing.T) {
			signed := modules.Sign(build())
			require.Equal(t, proto.SigningOK, signed.Error)

			input := build()
			input.PrivateKey = nil
			pre := modules.PreimageHashes(input)
			require.Equal(t, proto.SigningOK, pre.Error)

			signature, publicKey := signExternally(t, pre.DataHash)

			compiled := modules.Compile(input, [][]byte{signature}, [][]byte{publicKey})
			require.Equal(t, proto.SigningOK, compiled.Error, compiled.ErrorMessage)
			assert.Equal(t, signed.Encoded, compiled.Encoded)
			assert.Equal(t, signed.V, compiled.V)
			assert.Equal(t, signed.R, compiled.R)
			assert.Equal(t, signed.S, compiled.S)

			withoutKey := modules.Compile(input, [][]byte{signature}, nil)
			assert.Equal(t, signed.Encoded, withoutKey.Encoded)
		})
	}
}

func TestCompileErrors(t *testing.T) {
	input := legacyTransfer()
	pre := modules.PreimageHashes(input)
	signature, publicKey := signExternally(t, pre.DataHash)

	flipped := bytes.Clone(signature)
	flipped[64] ^= 1

	otherKey, err := keypair.NewSecp256k1PrivateKey(hexutil.MustDecode("0x0000000000000000000000000000000000000000000000000000000000000001"))
	require.NoError(t, err)

	tests := []struct {
		name       string
		signatures [][]byte
		publicKeys [][]byte
		want       proto.SigningErrorType
	}{
		{name: "no signature", want: proto.ErrorInvalidParams},
		{name: "two signatures", signatures: [][]byte{signature, signature}, want: proto.ErrorInvalidParams},
		{name: "short signature", signatures: [][]byte{signature[:64]}, want: proto.ErrorSigning},
		{name: "wrong public key", signatures: [][]byte{signature}, publicKeys: [][]byte{otherKey.PublicKey().Compressed()}, want: proto.ErrorSigning},
		{name: "wrong recovery id", signatures: [][]byte{flipped}, publicKeys: [][]byte{publicKey}, want: proto.ErrorSigning},
		{name: "bad public key", signatures: [][]byte{signature}, publicKeys: [][]byte{{1, 2}}, want: proto.ErrorInvalidParams},
		{name: "two public keys", signatures: [][]byte{signature}, publicKeys: [][]byte{publicKey, publicKey}, want: proto.ErrorInvalidParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := modules.Compile(input, tt.signatures, tt.publicKeys)
			assert.Equal(t, tt.want, out.Error)
			assert.Empty(t, out.Encoded)
		})
	}
}
