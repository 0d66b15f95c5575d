package modules

import (
	"github/chapool/wallet-core/internal/coinentry"
	"github/chapool/wallet-core/internal/keypair"
	"github/chapool/wallet-core/internal/proto"
	ethproto "github/chapool/wallet-core/internal/proto/ethereum"
	"github/chapool/wallet-core/internal/proto/txcompiler"
)

// PreimageHashes returns the digest an external signer has to sign for input,
// together with the preimage it was computed over.
func PreimageHashes(input *ethproto.SigningInput) *txcompiler.PreSigningOutput {
	chainID, err := U256FromBytes(input.ChainID, "chain id")
	if err != nil {
		return preSigningError(err)
	}

	unsigned, err := BuildTransaction(input)
	if err != nil {
		return preSigningError(err)
	}

	preHash := unsigned.PreHash(chainID)
	return &txcompiler.PreSigningOutput{
		DataHash: preHash.Bytes(),
		Data:     unsigned.Encode(chainID),
	}
}

// Compile assembles the signed transaction from one external signature. If a
// public key is given the signature has to recover to it.
func Compile(input *ethproto.SigningInput, signatures [][]byte, publicKeys [][]byte) *ethproto.SigningOutput {
	out, err := compile(input, signatures, publicKeys)
	if err != nil {
		signingErr := coinentry.AsSigningError(err)
		return ethproto.SigningOutputFromError(signingErr.Type, signingErr.Message)
	}
	return out
}

func compile(input *ethproto.SigningInput, signatures [][]byte, publicKeys [][]byte) (*ethproto.SigningOutput, error) {
	if len(signatures) != 1 {
		return nil, coinentry.NewSigningError(proto.ErrorInvalidParams, "expected exactly one signature, got %d", len(signatures))
	}
	if len(publicKeys) > 1 {
		return nil, coinentry.NewSigningError(proto.ErrorInvalidParams, "expected at most one public key, got %d", len(publicKeys))
	}

	signature, err := keypair.ParseSecp256k1Signature(signatures[0])
	if err != nil {
		return nil, coinentry.NewSigningError(proto.ErrorSigning, "%v", err)
	}

	chainID, err := U256FromBytes(input.ChainID, "chain id")
	if err != nil {
		return nil, err
	}

	unsigned, err := BuildTransaction(input)
	if err != nil {
		return nil, err
	}

	preHash := unsigned.PreHash(chainID)

	// Verify the signer if the caller told us who it is
	if len(publicKeys) == 1 {
		publicKey, err := keypair.ParseSecp256k1PublicKey(publicKeys[0])
		if err != nil {
			return nil, coinentry.NewSigningError(proto.ErrorInvalidParams, "%v", err)
		}
		if !publicKey.Verify(signature, preHash) {
			return nil, coinentry.NewSigningError(proto.ErrorSigning, "signature does not match public key")
		}
		// r and s are valid for the key, the recovery id still has to point at it
		recovered, err := signature.RecoverPublicKey(preHash)
		if err != nil || !recovered.Equal(publicKey) {
			return nil, coinentry.NewSigningError(proto.ErrorSigning, "recovery id does not match public key")
		}
	}

	return outputFromSigned(unsigned.IntoSigned(signature, chainID)), nil
}

func preSigningError(err error) *txcompiler.PreSigningOutput {
	signingErr := coinentry.AsSigningError(err)
	return txcompiler.PreSigningOutputFromError(signingErr.Type, signingErr.Message)
}
