package keypair

import (
	"bytes"
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

const (
	// Secp256k1PrivateKeyLength is the length of a raw secp256k1 private key.
	Secp256k1PrivateKeyLength = 32
	// Secp256k1CompressedLength is the length of a compressed public key.
	Secp256k1CompressedLength = 33
	// Secp256k1UncompressedLength is the length of an uncompressed (extended) public key.
	Secp256k1UncompressedLength = 65
	// Secp256k1SignatureLength is the length of a recoverable signature: r || s || v.
	Secp256k1SignatureLength = 65
)

var (
	ErrInvalidPrivateKey = errors.New("invalid secp256k1 private key")
	ErrInvalidPublicKey  = errors.New("invalid secp256k1 public key")
	ErrInvalidSignature  = errors.New("invalid secp256k1 signature")
)

// Secp256k1PrivateKey signs 32-byte digests.
type Secp256k1PrivateKey struct {
	key *ecdsa.PrivateKey
}

// NewSecp256k1PrivateKey parses a raw 32 byte private key.
func NewSecp256k1PrivateKey(raw []byte) (*Secp256k1PrivateKey, error) {
	if len(raw) != Secp256k1PrivateKeyLength {
		return nil, errors.Wrapf(ErrInvalidPrivateKey, "expected %d bytes, got %d", Secp256k1PrivateKeyLength, len(raw))
	}

	key, err := crypto.ToECDSA(raw)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidPrivateKey, err.Error())
	}

	return &Secp256k1PrivateKey{key: key}, nil
}

// Sign produces a recoverable signature over the given digest.
func (k *Secp256k1PrivateKey) Sign(digest common.Hash) (*Secp256k1Signature, error) {
	sig, err := crypto.Sign(digest.Bytes(), k.key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign digest")
	}
	return ParseSecp256k1Signature(sig)
}

// PublicKey returns the public key matching the private key.
func (k *Secp256k1PrivateKey) PublicKey() *Secp256k1PublicKey {
	return &Secp256k1PublicKey{key: &k.key.PublicKey}
}

// Bytes returns the raw private key. The caller must clear it after use.
func (k *Secp256k1PrivateKey) Bytes() []byte {
	return crypto.FromECDSA(k.key)
}

// Secp256k1PublicKey is a validated point on the secp256k1 curve.
type Secp256k1PublicKey struct {
	key *ecdsa.PublicKey
}

// ParseSecp256k1PublicKey accepts both the compressed (33 bytes) and the
// uncompressed (65 bytes) encodings.
func ParseSecp256k1PublicKey(raw []byte) (*Secp256k1PublicKey, error) {
	var (
		key *ecdsa.PublicKey
		err error
	)

	switch len(raw) {
	case Secp256k1CompressedLength:
		key, err = crypto.DecompressPubkey(raw)
	case Secp256k1UncompressedLength:
		key, err = crypto.UnmarshalPubkey(raw)
	default:
		return nil, errors.Wrapf(ErrInvalidPublicKey, "unexpected length %d", len(raw))
	}

	if err != nil {
		return nil, errors.Wrap(ErrInvalidPublicKey, err.Error())
	}

	return &Secp256k1PublicKey{key: key}, nil
}

// Compressed returns the 33 byte encoding.
func (p *Secp256k1PublicKey) Compressed() []byte {
	return crypto.CompressPubkey(p.key)
}

// Uncompressed returns the 65 byte encoding, starting with 0x04.
func (p *Secp256k1PublicKey) Uncompressed() []byte {
	return crypto.FromECDSAPub(p.key)
}

// ECDSA exposes the underlying key for go-ethereum helpers.
func (p *Secp256k1PublicKey) ECDSA() *ecdsa.PublicKey {
	return p.key
}

// Equal reports whether both keys are the same point.
func (p *Secp256k1PublicKey) Equal(other *Secp256k1PublicKey) bool {
	if other == nil {
		return false
	}
	return bytes.Equal(p.Uncompressed(), other.Uncompressed())
}

// Verify checks the signature against the digest.
func (p *Secp256k1PublicKey) Verify(sig *Secp256k1Signature, digest common.Hash) bool {
	raw := sig.Bytes()
	return crypto.VerifySignature(p.Uncompressed(), digest.Bytes(), raw[:64])
}

// Secp256k1Signature is a recoverable signature with a 0/1 recovery id.
type Secp256k1Signature struct {
	r [32]byte
	s [32]byte
	v byte
}

// ParseSecp256k1Signature parses r || s || v. A legacy 27/28 recovery id is normalized to 0/1.
func ParseSecp256k1Signature(raw []byte) (*Secp256k1Signature, error) {
	if len(raw) != Secp256k1SignatureLength {
		return nil, errors.Wrapf(ErrInvalidSignature, "expected %d bytes, got %d", Secp256k1SignatureLength, len(raw))
	}

	sig := &Secp256k1Signature{v: raw[64]}
	copy(sig.r[:], raw[:32])
	copy(sig.s[:], raw[32:64])

	if sig.v >= 27 {
		sig.v -= 27
	}

	r := new(big.Int).SetBytes(sig.r[:])
	s := new(big.Int).SetBytes(sig.s[:])
	if !crypto.ValidateSignatureValues(sig.v, r, s, false) {
		return nil, errors.Wrap(ErrInvalidSignature, "signature values out of range")
	}

	return sig, nil
}

// R returns the r component.
func (s *Secp256k1Signature) R() [32]byte { return s.r }

// S returns the s component.
func (s *Secp256k1Signature) S() [32]byte { return s.s }

// V returns the recovery id (0 or 1).
func (s *Secp256k1Signature) V() byte { return s.v }

// Bytes returns r || s || v.
func (s *Secp256k1Signature) Bytes() []byte {
	out := make([]byte, 0, Secp256k1SignatureLength)
	out = append(out, s.r[:]...)
	out = append(out, s.s[:]...)
	return append(out, s.v)
}

// RecoverPublicKey returns the key that produced the signature over digest.
func (s *Secp256k1Signature) RecoverPublicKey(digest common.Hash) (*Secp256k1PublicKey, error) {
	key, err := crypto.SigToPub(digest.Bytes(), s.Bytes())
	if err != nil {
		return nil, errors.Wrap(ErrInvalidSignature, err.Error())
	}
	return &Secp256k1PublicKey{key: key}, nil
}
