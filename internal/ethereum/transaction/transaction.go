// Package transaction implements the Ethereum transaction types and their
// type-erased boxes. The chain id is a parameter of the signing domain and
// is passed to every operation that needs it instead of being stored.
package transaction

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github/chapool/wallet-core/internal/keypair"
)

type TransactionCommon interface {
	// Payload returns the call data of the transaction.
	Payload() []byte
}

// UnsignedTransaction is a transaction awaiting its signature. Signed is the
// type produced by IntoSigned, Sig the signature view of that type.
type UnsignedTransaction[Signed SignedTransaction[Sig], Sig EthSignature] interface {
	TransactionCommon

	// PreHash returns the digest to sign: keccak256 of Encode(chainID).
	PreHash(chainID *uint256.Int) common.Hash
	// Encode returns the signing preimage.
	Encode(chainID *uint256.Int) []byte
	IntoSigned(signature *keypair.Secp256k1Signature, chainID *uint256.Int) Signed
}

type SignedTransaction[Sig EthSignature] interface {
	TransactionCommon

	// Hash returns the transaction hash: keccak256 of Encode().
	Hash() common.Hash
	// Encode returns the broadcastable encoding.
	Encode() []byte
	Signature() Sig
}

// Keccak256 hashes data. A digest of any length other than 32 bytes is an
// invariant violation and panics.
func Keccak256(data []byte) common.Hash {
	digest := crypto.Keccak256(data)
	if len(digest) != common.HashLength {
		panic("keccak256 must return 32 bytes")
	}
	return common.Hash(digest)
}

func orZero(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}
	return v
}
