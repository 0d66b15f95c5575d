package hd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/wallet-core/internal/hd"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		path string
		want []uint32
	}{
		{path: "m/44'/60'/0'/0/0", want: []uint32{0x8000002c, 0x8000003c, 0x80000000, 0, 0}},
		{path: "m/44h/60h/0h/0/5", want: []uint32{0x8000002c, 0x8000003c, 0x80000000, 0, 5}},
		{path: "m/84'/0'/0'/1/2147483647", want: []uint32{0x80000054, 0x80000000, 0x80000000, 1, 0x7fffffff}},
		{path: "m", want: []uint32{}},
		{path: "m/", want: []uint32{}},
	}

	for _, tt := range tests {
		got, err := hd.ParsePath(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
}

func TestParsePathErrors(t *testing.T) {
	for _, path := range []string{
		"",
		"44'/60'",
		"m44'",
		"m/44'//0",
		"m/x/0",
		"m/-1",
		"m/2147483648",
		"m/2147483648'",
		"m/1''",
	} {
		_, err := hd.ParsePath(path)
		assert.ErrorIs(t, err, hd.ErrInvalidPath, path)
	}
}
