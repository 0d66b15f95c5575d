package modules

import (
	"github/chapool/wallet-core/internal/coinentry"
	"github/chapool/wallet-core/internal/ethereum/transaction"
	"github/chapool/wallet-core/internal/keypair"
	"github/chapool/wallet-core/internal/proto"
	ethproto "github/chapool/wallet-core/internal/proto/ethereum"
)

// Sign signs input with its own private key. Failures are reported in the output.
func Sign(input *ethproto.SigningInput) *ethproto.SigningOutput {
	out, err := sign(input)
	if err != nil {
		signingErr := coinentry.AsSigningError(err)
		return ethproto.SigningOutputFromError(signingErr.Type, signingErr.Message)
	}
	return out
}

func sign(input *ethproto.SigningInput) (*ethproto.SigningOutput, error) {
	privateKey, err := keypair.NewSecp256k1PrivateKey(input.PrivateKey)
	if err != nil {
		return nil, coinentry.NewSigningError(proto.ErrorInvalidPrivateKey, "%v", err)
	}

	chainID, err := U256FromBytes(input.ChainID, "chain id")
	if err != nil {
		return nil, err
	}

	unsigned, err := BuildTransaction(input)
	if err != nil {
		return nil, err
	}

	signature, err := privateKey.Sign(unsigned.PreHash(chainID))
	if err != nil {
		return nil, coinentry.NewSigningError(proto.ErrorSigning, "%v", err)
	}

	return outputFromSigned(unsigned.IntoSigned(signature, chainID)), nil
}

// outputFromSigned reports V, R and S as compact big-endian numbers.
func outputFromSigned(signed transaction.SignedTransactionBox) *ethproto.SigningOutput {
	sig := signed.Signature()

	return &ethproto.SigningOutput{
		Encoded: signed.Encode(),
		V:       sig.V().Bytes(),
		R:       sig.R().Bytes(),
		S:       sig.S().Bytes(),
		Data:    signed.Payload(),
	}
}
