// Package txcompiler holds the chain-agnostic messages of the external signing flow.
package txcompiler

import (
	"github/chapool/wallet-core/internal/proto"
	"google.golang.org/protobuf/encoding/protowire"
)

// PreSigningOutput carries the digest an external signer has to sign.
type PreSigningOutput struct {
	// DataHash is the digest to sign.
	DataHash []byte
	// Data is the preimage the digest was computed over.
	Data         []byte
	Error        proto.SigningErrorType
	ErrorMessage string
}

var _ proto.Message = (*PreSigningOutput)(nil)

// PreSigningOutputFromError returns an output carrying only an error status.
func PreSigningOutputFromError(errType proto.SigningErrorType, message string) *PreSigningOutput {
	return &PreSigningOutput{Error: errType, ErrorMessage: message}
}

func (out *PreSigningOutput) Marshal() []byte {
	var b []byte
	b = proto.AppendBytes(b, 1, out.DataHash)
	b = proto.AppendBytes(b, 2, out.Data)
	b = proto.AppendVarint(b, 3, uint64(out.Error))
	return proto.AppendString(b, 4, out.ErrorMessage)
}

func (out *PreSigningOutput) Unmarshal(data []byte) error {
	*out = PreSigningOutput{}
	return proto.Walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return proto.ConsumeBytes(typ, b, &out.DataHash)
		case 2:
			return proto.ConsumeBytes(typ, b, &out.Data)
		case 3:
			var code uint64
			n, err := proto.ConsumeVarint(typ, b, &code)
			out.Error = proto.SigningErrorType(code)
			return n, err
		case 4:
			return proto.ConsumeString(typ, b, &out.ErrorMessage)
		}
		return 0, nil
	})
}
