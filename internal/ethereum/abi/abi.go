// Package abi is the boundary between the signer and the go-ethereum ABI
// encoder. Values are converted here and encoder errors collapse into a
// single kind.
package abi

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github/chapool/wallet-core/internal/ethereum/address"
)

// AbiError is the error kind of ABI encoding.
//
//nolint:revive
type AbiError int

const (
	// ErrInvalidParams is returned for any value the encoder rejects.
	ErrInvalidParams AbiError = iota + 1
)

func (e AbiError) Error() string {
	return "abi: invalid params"
}

// fromEncoder discards the encoder error details.
func fromEncoder(err error) error {
	if err == nil {
		return nil
	}
	return ErrInvalidParams
}

// ConvertU256 converts a 256-bit unsigned integer into the encoder's integer type.
func ConvertU256(num *uint256.Int) *big.Int {
	if num == nil {
		return new(big.Int)
	}
	return num.ToBig()
}

// ConvertAddress converts an address into the encoder's address type.
func ConvertAddress(addr address.Address) common.Address {
	return addr.Common()
}
