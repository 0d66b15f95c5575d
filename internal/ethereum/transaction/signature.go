package transaction

import (
	"github.com/holiman/uint256"
	"github/chapool/wallet-core/internal/keypair"
)

// EthSignature is the V, R, S view of a transaction signature.
type EthSignature interface {
	V() *uint256.Int
	R() *uint256.Int
	S() *uint256.Int
}

var (
	_ EthSignature = (*Signature)(nil)
	_ EthSignature = (*SignatureEip155)(nil)
)

// Signature is the signature of typed transactions; V is the recovery id.
type Signature struct {
	sig *keypair.Secp256k1Signature
}

func NewSignature(sig *keypair.Secp256k1Signature) *Signature {
	return &Signature{sig: sig}
}

func (s *Signature) V() *uint256.Int { return uint256.NewInt(uint64(s.sig.V())) }

func (s *Signature) R() *uint256.Int { return scalar(s.sig.R()) }

func (s *Signature) S() *uint256.Int { return scalar(s.sig.S()) }

// SignatureEip155 is the signature of legacy transactions with replay
// protection: V = recovery id + 35 + 2 * chain id. A zero chain id falls
// back to the pre-EIP-155 V of 27 or 28, matching the homestead preimage.
type SignatureEip155 struct {
	sig *keypair.Secp256k1Signature
	v   *uint256.Int
}

func NewSignatureEip155(sig *keypair.Secp256k1Signature, chainID *uint256.Int) *SignatureEip155 {
	chainID = orZero(chainID)
	recid := uint256.NewInt(uint64(sig.V()))

	var v *uint256.Int
	if chainID.IsZero() {
		v = new(uint256.Int).AddUint64(recid, 27)
	} else {
		v = new(uint256.Int).Lsh(chainID, 1)
		v.Add(v, recid)
		v.AddUint64(v, 35)
	}

	return &SignatureEip155{sig: sig, v: v}
}

func (s *SignatureEip155) V() *uint256.Int { return new(uint256.Int).Set(s.v) }

func (s *SignatureEip155) R() *uint256.Int { return scalar(s.sig.R()) }

func (s *SignatureEip155) S() *uint256.Int { return scalar(s.sig.S()) }

func scalar(b [32]byte) *uint256.Int {
	return new(uint256.Int).SetBytes32(b[:])
}
