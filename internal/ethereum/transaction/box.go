package transaction

import (
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github/chapool/wallet-core/internal/keypair"
)

// UnsignedTransactionBox is the non-generic form of UnsignedTransaction.
// IntoSigned consumes the box; calling it twice panics.
type UnsignedTransactionBox interface {
	TransactionCommon

	PreHash(chainID *uint256.Int) common.Hash
	Encode(chainID *uint256.Int) []byte
	IntoSigned(signature *keypair.Secp256k1Signature, chainID *uint256.Int) SignedTransactionBox
}

// SignedTransactionBox is the non-generic form of SignedTransaction.
type SignedTransactionBox interface {
	TransactionCommon

	Hash() common.Hash
	Encode() []byte
	Signature() EthSignature
}

type unsignedBox[Signed SignedTransaction[Sig], Sig EthSignature] struct {
	tx       UnsignedTransaction[Signed, Sig]
	consumed atomic.Bool
}

// BoxUnsigned erases the type of tx. Every call is forwarded unchanged.
//
//nolint:ireturn
func BoxUnsigned[Signed SignedTransaction[Sig], Sig EthSignature](tx UnsignedTransaction[Signed, Sig]) UnsignedTransactionBox {
	return &unsignedBox[Signed, Sig]{tx: tx}
}

func (b *unsignedBox[Signed, Sig]) Payload() []byte {
	return b.tx.Payload()
}

func (b *unsignedBox[Signed, Sig]) PreHash(chainID *uint256.Int) common.Hash {
	return b.tx.PreHash(chainID)
}

func (b *unsignedBox[Signed, Sig]) Encode(chainID *uint256.Int) []byte {
	return b.tx.Encode(chainID)
}

//nolint:ireturn
func (b *unsignedBox[Signed, Sig]) IntoSigned(signature *keypair.Secp256k1Signature, chainID *uint256.Int) SignedTransactionBox {
	if !b.consumed.CompareAndSwap(false, true) {
		panic("transaction: unsigned transaction box already consumed")
	}
	return BoxSigned[Sig](b.tx.IntoSigned(signature, chainID))
}

type signedBox[Sig EthSignature] struct {
	tx SignedTransaction[Sig]
}

// BoxSigned erases the type of tx. Every call is forwarded unchanged.
//
//nolint:ireturn
func BoxSigned[Sig EthSignature](tx SignedTransaction[Sig]) SignedTransactionBox {
	return signedBox[Sig]{tx: tx}
}

func (b signedBox[Sig]) Payload() []byte { return b.tx.Payload() }

func (b signedBox[Sig]) Hash() common.Hash { return b.tx.Hash() }

func (b signedBox[Sig]) Encode() []byte { return b.tx.Encode() }

//nolint:ireturn
func (b signedBox[Sig]) Signature() EthSignature { return b.tx.Signature() }
