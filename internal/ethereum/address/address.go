// Package address implements the Ethereum account address.
package address

import (
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github/chapool/wallet-core/internal/coinentry"
	"github/chapool/wallet-core/internal/keypair"
)

// Len is the length of a raw address.
const Len = common.AddressLength

// Address is a 20 byte account address. It is displayed in EIP-55 checksum form.
type Address struct {
	bytes common.Address
}

var _ coinentry.CoinAddress = Address{}

// FromString parses a 0x prefixed hex address. Input that mixes upper and
// lower case letters has to carry a valid EIP-55 checksum.
func FromString(s string) (Address, error) {
	hexPart, ok := strings.CutPrefix(s, "0x")
	if !ok {
		hexPart, ok = strings.CutPrefix(s, "0X")
	}
	if !ok {
		return Address{}, coinentry.ErrMissingPrefix
	}

	if len(hexPart) != 2*Len {
		return Address{}, coinentry.ErrInvalidInput
	}

	raw, err := hex.DecodeString(hexPart)
	if err != nil {
		return Address{}, coinentry.ErrFromHex
	}

	addr := FromBytes(raw)
	if isMixedCase(hexPart) && addr.String()[2:] != hexPart {
		return Address{}, coinentry.ErrInvalidChecksum
	}

	return addr, nil
}

// FromBytes panics unless raw is exactly Len bytes long.
func FromBytes(raw []byte) Address {
	if len(raw) != Len {
		panic("address: invalid length")
	}
	return Address{bytes: common.BytesToAddress(raw)}
}

// WithSecp256k1PublicKey returns the address owning the given public key:
// the last 20 bytes of keccak256 over the uncompressed point.
func WithSecp256k1PublicKey(publicKey *keypair.Secp256k1PublicKey) Address {
	return Address{bytes: crypto.PubkeyToAddress(*publicKey.ECDSA())}
}

// String returns the EIP-55 checksum form.
func (a Address) String() string {
	return a.bytes.Hex()
}

func (a Address) Data() []byte {
	return a.bytes.Bytes()
}

// Bytes returns the fixed size raw address.
func (a Address) Bytes() [Len]byte {
	return a.bytes
}

// Common converts the address into its go-ethereum representation.
func (a Address) Common() common.Address {
	return a.bytes
}

func isMixedCase(s string) bool {
	return strings.ToLower(s) != s && strings.ToUpper(s) != s
}
