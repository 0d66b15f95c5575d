package transaction

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github/chapool/wallet-core/internal/ethereum/address"
	"github/chapool/wallet-core/internal/keypair"
)

// TransactionNonTyped is a legacy transaction signed with EIP-155 replay protection.
type TransactionNonTyped struct {
	Nonce    *uint256.Int
	GasPrice *uint256.Int
	GasLimit *uint256.Int
	// To is nil for contract creation.
	To     *address.Address
	Amount *uint256.Int
	Data   []byte
}

var _ UnsignedTransaction[*SignedTransactionNonTyped, *SignatureEip155] = (*TransactionNonTyped)(nil)

type nonTypedUnsigned struct {
	Nonce    *uint256.Int
	GasPrice *uint256.Int
	GasLimit *uint256.Int
	To       []byte
	Amount   *uint256.Int
	Data     []byte
	ChainID  *uint256.Int
	R        uint64
	S        uint64
}

// nonTypedHomestead is the pre-EIP-155 preimage, used when the chain id is zero.
type nonTypedHomestead struct {
	Nonce    *uint256.Int
	GasPrice *uint256.Int
	GasLimit *uint256.Int
	To       []byte
	Amount   *uint256.Int
	Data     []byte
}

type nonTypedSigned struct {
	Nonce    *uint256.Int
	GasPrice *uint256.Int
	GasLimit *uint256.Int
	To       []byte
	Amount   *uint256.Int
	Data     []byte
	V        *uint256.Int
	R        *uint256.Int
	S        *uint256.Int
}

func (tx *TransactionNonTyped) Payload() []byte {
	return bytes.Clone(tx.Data)
}

func (tx *TransactionNonTyped) PreHash(chainID *uint256.Int) common.Hash {
	return Keccak256(tx.Encode(chainID))
}

// Encode returns rlp([nonce, gasPrice, gasLimit, to, value, data, chainId, 0, 0]).
// A zero chain id yields the homestead preimage rlp([nonce, gasPrice, gasLimit, to, value, data]).
func (tx *TransactionNonTyped) Encode(chainID *uint256.Int) []byte {
	if orZero(chainID).IsZero() {
		return mustEncode(&nonTypedHomestead{
			Nonce:    orZero(tx.Nonce),
			GasPrice: orZero(tx.GasPrice),
			GasLimit: orZero(tx.GasLimit),
			To:       toBytes(tx.To),
			Amount:   orZero(tx.Amount),
			Data:     tx.Data,
		})
	}

	return mustEncode(&nonTypedUnsigned{
		Nonce:    orZero(tx.Nonce),
		GasPrice: orZero(tx.GasPrice),
		GasLimit: orZero(tx.GasLimit),
		To:       toBytes(tx.To),
		Amount:   orZero(tx.Amount),
		Data:     tx.Data,
		ChainID:  orZero(chainID),
	})
}

func (tx *TransactionNonTyped) IntoSigned(signature *keypair.Secp256k1Signature, chainID *uint256.Int) *SignedTransactionNonTyped {
	return &SignedTransactionNonTyped{
		unsigned:  tx.clone(),
		signature: NewSignatureEip155(signature, chainID),
	}
}

func (tx *TransactionNonTyped) clone() TransactionNonTyped {
	return TransactionNonTyped{
		Nonce:    cloneInt(tx.Nonce),
		GasPrice: cloneInt(tx.GasPrice),
		GasLimit: cloneInt(tx.GasLimit),
		To:       cloneAddress(tx.To),
		Amount:   cloneInt(tx.Amount),
		Data:     bytes.Clone(tx.Data),
	}
}

//nolint:ireturn
func (tx *TransactionNonTyped) IntoBoxed() UnsignedTransactionBox {
	return BoxUnsigned[*SignedTransactionNonTyped, *SignatureEip155](tx)
}

type SignedTransactionNonTyped struct {
	unsigned  TransactionNonTyped
	signature *SignatureEip155
}

var _ SignedTransaction[*SignatureEip155] = (*SignedTransactionNonTyped)(nil)

func (tx *SignedTransactionNonTyped) Payload() []byte {
	return bytes.Clone(tx.unsigned.Data)
}

func (tx *SignedTransactionNonTyped) Hash() common.Hash {
	return Keccak256(tx.Encode())
}

// Encode returns rlp([nonce, gasPrice, gasLimit, to, value, data, v, r, s]).
func (tx *SignedTransactionNonTyped) Encode() []byte {
	return mustEncode(&nonTypedSigned{
		Nonce:    orZero(tx.unsigned.Nonce),
		GasPrice: orZero(tx.unsigned.GasPrice),
		GasLimit: orZero(tx.unsigned.GasLimit),
		To:       toBytes(tx.unsigned.To),
		Amount:   orZero(tx.unsigned.Amount),
		Data:     tx.unsigned.Data,
		V:        tx.signature.V(),
		R:        tx.signature.R(),
		S:        tx.signature.S(),
	})
}

func (tx *SignedTransactionNonTyped) Signature() *SignatureEip155 {
	return tx.signature
}

//nolint:ireturn
func (tx *SignedTransactionNonTyped) IntoBoxed() SignedTransactionBox {
	return BoxSigned[*SignatureEip155](tx)
}

func toBytes(addr *address.Address) []byte {
	if addr == nil {
		return nil
	}
	return addr.Data()
}

func cloneAddress(addr *address.Address) *address.Address {
	if addr == nil {
		return nil
	}
	cloned := *addr
	return &cloned
}

func cloneInt(v *uint256.Int) *uint256.Int {
	if v == nil {
		return nil
	}
	return new(uint256.Int).Set(v)
}

func mustEncode(v any) []byte {
	encoded, err := rlp.EncodeToBytes(v)
	if err != nil {
		panic("transaction: rlp encoding failed: " + err.Error())
	}
	return encoded
}
