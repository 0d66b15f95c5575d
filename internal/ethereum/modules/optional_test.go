package modules_test

import (
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/wallet-core/internal/coinentry"
	"github/chapool/wallet-core/internal/ethereum/modules"
	"github/chapool/wallet-core/internal/keypair"
	"github/chapool/wallet-core/internal/proto"
	ethproto "github/chapool/wallet-core/internal/proto/ethereum"
)

type evmCoin struct {
	chainID *uint256.Int
}

func (evmCoin) Curve() keypair.Curve                           { return keypair.CurveSecp256k1 }
func (evmCoin) PublicKeyType() keypair.PublicKeyType           { return keypair.PublicKeyTypeSecp256k1Extended }
func (evmCoin) SupportsDerivation(d coinentry.Derivation) bool { return d == coinentry.DerivationDefault }
func (c evmCoin) EVMChainID() *uint256.Int                     { return c.chainID }

func TestSignJSON(t *testing.T) {
	input := enveloped()
	key := input.PrivateKey
	input.PrivateKey = nil

	raw, err := json.Marshal(input)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"txMode":"Enveloped"`)
	assert.NotContains(t, string(raw), "privateKey")

	got, err := modules.JSONSigner{}.SignJSON(evmCoin{}, string(raw), key)
	require.NoError(t, err)

	input.PrivateKey = key
	want := modules.Sign(input)
	assert.Equal(t, hex.EncodeToString(want.Encoded), got)
}

func TestSignJSONNumericMode(t *testing.T) {
	doc := `{
		"chainId": "AQ==",
		"nonce": "CQ==",
		"txMode": 0,
		"gasPrice": "BKgXyAA=",
		"gasLimit": "Ugg=",
		"toAddress": "0x3535353535353535353535353535353535353535",
		"transaction": {"transfer": {"amount": "DeC2s6dkAAA="}}
	}`

	got, err := modules.JSONSigner{}.SignJSON(evmCoin{}, doc, hexutil.MustDecode(privateKeyHex))
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(modules.Sign(legacyTransfer()).Encoded), got)
}

func TestSignJSONErrors(t *testing.T) {
	_, err := modules.JSONSigner{}.SignJSON(evmCoin{}, "{not json", hexutil.MustDecode(privateKeyHex))
	var signingErr *coinentry.SigningError
	require.True(t, errors.As(err, &signingErr))
	assert.Equal(t, proto.ErrorInvalidParams, signingErr.Type)

	_, err = modules.JSONSigner{}.SignJSON(evmCoin{}, `{"txMode":"Sideways"}`, nil)
	require.True(t, errors.As(err, &signingErr))
	assert.Equal(t, proto.ErrorInvalidParams, signingErr.Type)

	_, err = modules.JSONSigner{}.SignJSON(evmCoin{}, `{"toAddress":"0x3535353535353535353535353535353535353535","transaction":{"transfer":{}}}`, []byte{1})
	require.True(t, errors.As(err, &signingErr))
	assert.Equal(t, proto.ErrorInvalidPrivateKey, signingErr.Type)
}

func TestBuildSigningInput(t *testing.T) {
	builder := modules.InputBuilder{}

	input, err := builder.BuildSigningInput(evmCoin{chainID: uint256.NewInt(56)}, coinentry.SigningInputParams{
		From:   signerAddress,
		To:     "0x3535353535353535353535353535353535353535",
		Amount: "1000000000000000000",
	})
	require.NoError(t, err)

	assert.Equal(t, []byte{56}, input.ChainID)
	assert.Equal(t, ethproto.TransactionModeEnveloped, input.TxMode)
	assert.Equal(t, recipientHex, input.ToAddress)
	require.NotNil(t, input.Transaction)
	require.NotNil(t, input.Transaction.Transfer)
	assert.Equal(t, hexutil.MustDecode("0x0de0b6b3a7640000"), input.Transaction.Transfer.Amount)

	// explicit chain id wins
	input, err = builder.BuildSigningInput(evmCoin{chainID: uint256.NewInt(56)}, coinentry.SigningInputParams{
		To: recipientHex, Amount: "0", ChainID: "137",
	})
	require.NoError(t, err)
	assert.Equal(t, []byte{137}, input.ChainID)

	// the built input signs once fees and key are filled in
	input.GasLimit = u256(21000)
	input.MaxFeePerGas = u256(30_000_000_000)
	input.MaxInclusionFeePerGas = u256(1_000_000_000)
	input.PrivateKey = hexutil.MustDecode(privateKeyHex)
	assert.Equal(t, proto.SigningOK, modules.Sign(input).Error)
}

func TestBuildSigningInputErrors(t *testing.T) {
	tests := []struct {
		name   string
		coin   evmCoin
		params coinentry.SigningInputParams
		want   proto.SigningErrorType
	}{
		{name: "memo", params: coinentry.SigningInputParams{To: recipientHex, Amount: "1", ChainID: "1", Memo: "hi"}, want: proto.ErrorNotSupported},
		{name: "token asset", params: coinentry.SigningInputParams{To: recipientHex, Amount: "1", ChainID: "1", Asset: "USDT"}, want: proto.ErrorNotSupported},
		{name: "bad to", params: coinentry.SigningInputParams{To: "nope", Amount: "1", ChainID: "1"}, want: proto.ErrorInvalidAddress},
		{name: "bad from", params: coinentry.SigningInputParams{From: "0x12", To: recipientHex, Amount: "1", ChainID: "1"}, want: proto.ErrorInvalidAddress},
		{name: "fraction", params: coinentry.SigningInputParams{To: recipientHex, Amount: "1.5", ChainID: "1"}, want: proto.ErrorInvalidRequestedTokenAmount},
		{name: "negative", params: coinentry.SigningInputParams{To: recipientHex, Amount: "-1", ChainID: "1"}, want: proto.ErrorInvalidRequestedTokenAmount},
		{name: "not a number", params: coinentry.SigningInputParams{To: recipientHex, Amount: "ten", ChainID: "1"}, want: proto.ErrorInvalidParams},
		{name: "overflow", params: coinentry.SigningInputParams{To: recipientHex, Amount: "1e80", ChainID: "1"}, want: proto.ErrorInvalidParams},
		{name: "no chain id", params: coinentry.SigningInputParams{To: recipientHex, Amount: "1"}, want: proto.ErrorInvalidParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := modules.InputBuilder{}.BuildSigningInput(tt.coin, tt.params)
			require.Error(t, err)
			assert.Equal(t, tt.want, coinentry.AsSigningError(err).Type)
		})
	}
}
