// Package coinentry defines the contract every blockchain implementation
// plugs into: address parsing and derivation, local signing, preimage hashing
// for external signers and compilation of detached signatures.
package coinentry

import (
	"fmt"

	"github/chapool/wallet-core/internal/keypair"
	"github/chapool/wallet-core/internal/proto"
)

// CoinAddress is an address of any chain.
type CoinAddress interface {
	fmt.Stringer

	// Data returns the canonical raw bytes of the address.
	Data() []byte
}

// CoinContext exposes the static registry facts about the coin being processed.
// Implementations must be safe for concurrent reads; entries never retain it.
type CoinContext interface {
	Curve() keypair.Curve
	PublicKeyType() keypair.PublicKeyType
	// SupportsDerivation reports whether the coin lists the given derivation.
	SupportsDerivation(derivation Derivation) bool
}

// CoinEntry is implemented once per blockchain family.
//
// P is the address prefix type, A the address type and In, Out, Pre the wire
// messages for signing input, signing output and pre-signing output. A nil
// prefix selects the chain's default address encoding.
type CoinEntry[P any, A CoinAddress, In, Out, Pre proto.Message] interface {
	// ParseAddress validates and decodes a human-readable address.
	ParseAddress(coin CoinContext, address string, prefix *P) (A, error)

	// DeriveAddress computes the address of the given public key.
	DeriveAddress(coin CoinContext, publicKey []byte, derivation Derivation, prefix *P) (A, error)

	// Sign signs the transaction described by input. Failures are reported
	// inside the returned output.
	Sign(coin CoinContext, input In) Out

	// PreimageHashes returns the digest(s) an external signer has to sign.
	PreimageHashes(coin CoinContext, input In) Pre

	// Compile assembles the signed transaction from external signatures.
	Compile(coin CoinContext, input In, signatures [][]byte, publicKeys [][]byte) Out

	// JSONSigner returns false if the chain cannot sign JSON inputs.
	JSONSigner() (JSONSigner, bool)

	// PlanBuilder returns false if the chain has no planning step.
	PlanBuilder() (PlanBuilder, bool)

	// SigningInputBuilder returns false if the chain cannot build a signing
	// input from simple parameters.
	SigningInputBuilder() (InputBuilder[In], bool)
}
