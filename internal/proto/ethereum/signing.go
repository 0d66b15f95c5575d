// Package ethereum holds the wire messages of the Ethereum family signer.
package ethereum

import (
	"github/chapool/wallet-core/internal/proto"
	"google.golang.org/protobuf/encoding/protowire"
)

// TransactionMode selects the transaction envelope.
type TransactionMode int32

const (
	// TransactionModeLegacy is a non-typed EIP-155 transaction.
	TransactionModeLegacy TransactionMode = 0
	// TransactionModeEnveloped is an EIP-1559 (type 2) transaction.
	TransactionModeEnveloped TransactionMode = 1
	// 2 is reserved for ERC-4337 user operations, which are not supported.
)

var transactionModeNames = map[TransactionMode]string{
	TransactionModeLegacy:    "Legacy",
	TransactionModeEnveloped: "Enveloped",
}

func (m TransactionMode) String() string {
	if name, ok := transactionModeNames[m]; ok {
		return name
	}
	return "Unknown"
}

// SigningInput describes a transaction to sign. Numeric fields are big-endian bytes.
type SigningInput struct {
	ChainID               []byte          `json:"chainId,omitempty"`
	Nonce                 []byte          `json:"nonce,omitempty"`
	TxMode                TransactionMode `json:"txMode,omitempty"`
	GasPrice              []byte          `json:"gasPrice,omitempty"`
	GasLimit              []byte          `json:"gasLimit,omitempty"`
	MaxInclusionFeePerGas []byte          `json:"maxInclusionFeePerGas,omitempty"`
	MaxFeePerGas          []byte          `json:"maxFeePerGas,omitempty"`
	// ToAddress is the recipient, or the token contract for token calls.
	ToAddress   string       `json:"toAddress,omitempty"`
	PrivateKey  []byte       `json:"privateKey,omitempty"`
	Transaction *Transaction `json:"transaction,omitempty"`
}

var _ proto.Message = (*SigningInput)(nil)

func (in *SigningInput) Marshal() []byte {
	var b []byte
	b = proto.AppendBytes(b, 1, in.ChainID)
	b = proto.AppendBytes(b, 2, in.Nonce)
	b = proto.AppendVarint(b, 3, uint64(in.TxMode))
	b = proto.AppendBytes(b, 4, in.GasPrice)
	b = proto.AppendBytes(b, 5, in.GasLimit)
	b = proto.AppendBytes(b, 6, in.MaxInclusionFeePerGas)
	b = proto.AppendBytes(b, 7, in.MaxFeePerGas)
	b = proto.AppendString(b, 8, in.ToAddress)
	b = proto.AppendBytes(b, 9, in.PrivateKey)
	if in.Transaction != nil {
		b = proto.AppendMessage(b, 10, in.Transaction)
	}
	return b
}

func (in *SigningInput) Unmarshal(data []byte) error {
	*in = SigningInput{}
	return proto.Walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return proto.ConsumeBytes(typ, b, &in.ChainID)
		case 2:
			return proto.ConsumeBytes(typ, b, &in.Nonce)
		case 3:
			var mode uint64
			n, err := proto.ConsumeVarint(typ, b, &mode)
			in.TxMode = TransactionMode(mode)
			return n, err
		case 4:
			return proto.ConsumeBytes(typ, b, &in.GasPrice)
		case 5:
			return proto.ConsumeBytes(typ, b, &in.GasLimit)
		case 6:
			return proto.ConsumeBytes(typ, b, &in.MaxInclusionFeePerGas)
		case 7:
			return proto.ConsumeBytes(typ, b, &in.MaxFeePerGas)
		case 8:
			return proto.ConsumeString(typ, b, &in.ToAddress)
		case 9:
			return proto.ConsumeBytes(typ, b, &in.PrivateKey)
		case 10:
			in.Transaction = &Transaction{}
			return proto.ConsumeMessage(typ, b, in.Transaction)
		}
		return 0, nil
	})
}

// SigningOutput is the result of signing or compiling.
type SigningOutput struct {
	// Encoded is the signed transaction ready to broadcast.
	Encoded []byte
	V       []byte
	R       []byte
	S       []byte
	// Data is the transaction payload (call data).
	Data         []byte
	Error        proto.SigningErrorType
	ErrorMessage string
}

var _ proto.Message = (*SigningOutput)(nil)

// SigningOutputFromError returns an output carrying only an error status.
func SigningOutputFromError(errType proto.SigningErrorType, message string) *SigningOutput {
	return &SigningOutput{Error: errType, ErrorMessage: message}
}

func (out *SigningOutput) Marshal() []byte {
	var b []byte
	b = proto.AppendBytes(b, 1, out.Encoded)
	b = proto.AppendBytes(b, 2, out.V)
	b = proto.AppendBytes(b, 3, out.R)
	b = proto.AppendBytes(b, 4, out.S)
	b = proto.AppendBytes(b, 5, out.Data)
	b = proto.AppendVarint(b, 6, uint64(out.Error))
	b = proto.AppendString(b, 7, out.ErrorMessage)
	return b
}

func (out *SigningOutput) Unmarshal(data []byte) error {
	*out = SigningOutput{}
	return proto.Walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return proto.ConsumeBytes(typ, b, &out.Encoded)
		case 2:
			return proto.ConsumeBytes(typ, b, &out.V)
		case 3:
			return proto.ConsumeBytes(typ, b, &out.R)
		case 4:
			return proto.ConsumeBytes(typ, b, &out.S)
		case 5:
			return proto.ConsumeBytes(typ, b, &out.Data)
		case 6:
			var code uint64
			n, err := proto.ConsumeVarint(typ, b, &code)
			out.Error = proto.SigningErrorType(code)
			return n, err
		case 7:
			return proto.ConsumeString(typ, b, &out.ErrorMessage)
		}
		return 0, nil
	})
}
