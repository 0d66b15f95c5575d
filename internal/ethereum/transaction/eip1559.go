package transaction

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github/chapool/wallet-core/internal/ethereum/address"
	"github/chapool/wallet-core/internal/keypair"
)

// Eip1559Type is the EIP-2718 type byte of dynamic fee transactions.
const Eip1559Type byte = 0x02

// TransactionEip1559 is a dynamic fee transaction. Access lists are always empty.
type TransactionEip1559 struct {
	Nonce                 *uint256.Int
	MaxInclusionFeePerGas *uint256.Int
	MaxFeePerGas          *uint256.Int
	GasLimit              *uint256.Int
	// To is nil for contract creation.
	To     *address.Address
	Amount *uint256.Int
	Data   []byte
}

var _ UnsignedTransaction[*SignedTransactionEip1559, *Signature] = (*TransactionEip1559)(nil)

type accessTuple struct {
	Address     common.Address
	StorageKeys []common.Hash
}

type eip1559Unsigned struct {
	ChainID               *uint256.Int
	Nonce                 *uint256.Int
	MaxInclusionFeePerGas *uint256.Int
	MaxFeePerGas          *uint256.Int
	GasLimit              *uint256.Int
	To                    []byte
	Amount                *uint256.Int
	Data                  []byte
	AccessList            []accessTuple
}

type eip1559Signed struct {
	ChainID               *uint256.Int
	Nonce                 *uint256.Int
	MaxInclusionFeePerGas *uint256.Int
	MaxFeePerGas          *uint256.Int
	GasLimit              *uint256.Int
	To                    []byte
	Amount                *uint256.Int
	Data                  []byte
	AccessList            []accessTuple
	V                     *uint256.Int
	R                     *uint256.Int
	S                     *uint256.Int
}

func (tx *TransactionEip1559) Payload() []byte {
	return bytes.Clone(tx.Data)
}

func (tx *TransactionEip1559) PreHash(chainID *uint256.Int) common.Hash {
	return Keccak256(tx.Encode(chainID))
}

// Encode returns 0x02 || rlp([chainId, nonce, tip, feeCap, gasLimit, to, value, data, accessList]).
func (tx *TransactionEip1559) Encode(chainID *uint256.Int) []byte {
	return typed(mustEncode(&eip1559Unsigned{
		ChainID:               orZero(chainID),
		Nonce:                 orZero(tx.Nonce),
		MaxInclusionFeePerGas: orZero(tx.MaxInclusionFeePerGas),
		MaxFeePerGas:          orZero(tx.MaxFeePerGas),
		GasLimit:              orZero(tx.GasLimit),
		To:                    toBytes(tx.To),
		Amount:                orZero(tx.Amount),
		Data:                  tx.Data,
		AccessList:            []accessTuple{},
	}))
}

func (tx *TransactionEip1559) IntoSigned(signature *keypair.Secp256k1Signature, chainID *uint256.Int) *SignedTransactionEip1559 {
	return &SignedTransactionEip1559{
		unsigned:  tx.clone(),
		chainID:   new(uint256.Int).Set(orZero(chainID)),
		signature: NewSignature(signature),
	}
}

func (tx *TransactionEip1559) clone() TransactionEip1559 {
	return TransactionEip1559{
		Nonce:                 cloneInt(tx.Nonce),
		MaxInclusionFeePerGas: cloneInt(tx.MaxInclusionFeePerGas),
		MaxFeePerGas:          cloneInt(tx.MaxFeePerGas),
		GasLimit:              cloneInt(tx.GasLimit),
		To:                    cloneAddress(tx.To),
		Amount:                cloneInt(tx.Amount),
		Data:                  bytes.Clone(tx.Data),
	}
}

//nolint:ireturn
func (tx *TransactionEip1559) IntoBoxed() UnsignedTransactionBox {
	return BoxUnsigned[*SignedTransactionEip1559, *Signature](tx)
}

type SignedTransactionEip1559 struct {
	unsigned  TransactionEip1559
	chainID   *uint256.Int
	signature *Signature
}

var _ SignedTransaction[*Signature] = (*SignedTransactionEip1559)(nil)

func (tx *SignedTransactionEip1559) Payload() []byte {
	return bytes.Clone(tx.unsigned.Data)
}

func (tx *SignedTransactionEip1559) Hash() common.Hash {
	return Keccak256(tx.Encode())
}

// Encode returns 0x02 || rlp([chainId, nonce, tip, feeCap, gasLimit, to, value, data, accessList, v, r, s]).
func (tx *SignedTransactionEip1559) Encode() []byte {
	return typed(mustEncode(&eip1559Signed{
		ChainID:               tx.chainID,
		Nonce:                 orZero(tx.unsigned.Nonce),
		MaxInclusionFeePerGas: orZero(tx.unsigned.MaxInclusionFeePerGas),
		MaxFeePerGas:          orZero(tx.unsigned.MaxFeePerGas),
		GasLimit:              orZero(tx.unsigned.GasLimit),
		To:                    toBytes(tx.unsigned.To),
		Amount:                orZero(tx.unsigned.Amount),
		Data:                  tx.unsigned.Data,
		AccessList:            []accessTuple{},
		V:                     tx.signature.V(),
		R:                     tx.signature.R(),
		S:                     tx.signature.S(),
	}))
}

func (tx *SignedTransactionEip1559) Signature() *Signature {
	return tx.signature
}

//nolint:ireturn
func (tx *SignedTransactionEip1559) IntoBoxed() SignedTransactionBox {
	return BoxSigned[*Signature](tx)
}

func typed(payload []byte) []byte {
	return append([]byte{Eip1559Type}, payload...)
}
