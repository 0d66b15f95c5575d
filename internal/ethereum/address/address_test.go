package address_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/wallet-core/internal/coinentry"
	"github/chapool/wallet-core/internal/ethereum/address"
	"github/chapool/wallet-core/internal/keypair"
)

func TestFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "checksummed", input: "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf", want: "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf"},
		{name: "lowercase", input: "0x7e5f4552091a69125d5dfcb7b8c2659029395bdf", want: "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf"},
		{name: "uppercase", input: "0x7E5F4552091A69125D5DFCB7B8C2659029395BDF", want: "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf"},
		{name: "upper prefix", input: "0X7e5f4552091a69125d5dfcb7b8c2659029395bdf", want: "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf"},
		{name: "no prefix", input: "7e5f4552091a69125d5dfcb7b8c2659029395bdf", wantErr: coinentry.ErrMissingPrefix},
		{name: "short", input: "0x7e5f4552091a69125d5dfcb7b8c2659029395b", wantErr: coinentry.ErrInvalidInput},
		{name: "empty", input: "0x", wantErr: coinentry.ErrInvalidInput},
		{name: "not hex", input: "0x7e5f4552091a69125d5dfcb7b8c2659029395bzz", wantErr: coinentry.ErrFromHex},
		{name: "bad checksum", input: "0x7e5F4552091A69125d5DfCb7b8C2659029395Bdf", wantErr: coinentry.ErrInvalidChecksum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := address.FromString(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, addr.String())
			assert.Len(t, addr.Data(), address.Len)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	addr, err := address.FromString("0x9d8A62f656a8d1615C1294fd71e9CFb3E4855A4F")
	require.NoError(t, err)

	again, err := address.FromString(addr.String())
	require.NoError(t, err)
	assert.Equal(t, addr, again)
	assert.Equal(t, addr.Data(), address.FromBytes(addr.Data()).Data())
}

func TestWithSecp256k1PublicKey(t *testing.T) {
	key, err := keypair.NewSecp256k1PrivateKey(hexutil.MustDecode("0x0000000000000000000000000000000000000000000000000000000000000001"))
	require.NoError(t, err)

	addr := address.WithSecp256k1PublicKey(key.PublicKey())
	assert.Equal(t, "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf", addr.String())

	compressed, err := keypair.ParseSecp256k1PublicKey(key.PublicKey().Compressed())
	require.NoError(t, err)
	assert.Equal(t, addr, address.WithSecp256k1PublicKey(compressed))
}

func TestFromBytesPanics(t *testing.T) {
	assert.Panics(t, func() { address.FromBytes([]byte{1, 2, 3}) })
}
