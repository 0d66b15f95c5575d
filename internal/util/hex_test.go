package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/wallet-core/internal/util"
)

func TestDecodeHex(t *testing.T) {
	b, err := util.DecodeHex("0xdeadBEEF")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, b)

	b, err = util.DecodeHex(" 0102 ")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, b)

	b, err = util.DecodeHex("0x")
	require.NoError(t, err)
	assert.Empty(t, b)

	_, err = util.DecodeHex("0x123")
	assert.Error(t, err)
	_, err = util.DecodeHex("zz")
	assert.Error(t, err)
}

func TestDecodeHexList(t *testing.T) {
	list, err := util.DecodeHexList([]string{"0x01", "02"})
	require.NoError(t, err)
	assert.Equal(t, [][]byte{{1}, {2}}, list)

	_, err = util.DecodeHexList([]string{"0x01", "nope"})
	assert.Error(t, err)
}
