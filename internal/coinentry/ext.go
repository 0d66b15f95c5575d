package coinentry

import (
	"github.com/pkg/errors"
	"github/chapool/wallet-core/internal/proto"
)

// CoinEntryExt is the non-generic view of a CoinEntry. Messages travel as
// wire bytes so entries of different chains can be held in one collection.
//
// Sign, PreimageHashes and Compile only return an error if the input bytes
// cannot be decoded; signing failures are carried inside the output message.
type CoinEntryExt interface {
	ParseAddress(coin CoinContext, address string, prefix *PrefixType) (CoinAddress, error)
	ValidateAddress(coin CoinContext, address string, prefix *PrefixType) error
	// NormalizeAddress returns the canonical display form of a valid address.
	NormalizeAddress(coin CoinContext, address string) (string, error)
	DeriveAddress(coin CoinContext, publicKey []byte, derivation Derivation, prefix *PrefixType) (CoinAddress, error)

	Sign(coin CoinContext, input []byte) ([]byte, error)
	PreimageHashes(coin CoinContext, input []byte) ([]byte, error)
	Compile(coin CoinContext, input []byte, signatures [][]byte, publicKeys [][]byte) ([]byte, error)

	SupportsJSONSigning() bool
	SignJSON(coin CoinContext, inputJSON string, privateKey []byte) (string, error)
	BuildSigningInput(coin CoinContext, params SigningInputParams) ([]byte, error)
	Plan(coin CoinContext, input []byte) ([]byte, error)
}

// PrefixFunc converts a chain-agnostic prefix into the chain's prefix type.
type PrefixFunc[P any] func(PrefixType) (P, error)

type entryExt[P any, A CoinAddress, In any, InPtr proto.MessagePtr[In], Out, Pre proto.Message] struct {
	entry  CoinEntry[P, A, InPtr, Out, Pre]
	prefix PrefixFunc[P]
}

// NewExt erases the type parameters of entry.
//
//nolint:ireturn // Returning interface is intentional for type erasure
func NewExt[P any, A CoinAddress, In any, InPtr proto.MessagePtr[In], Out, Pre proto.Message](
	entry CoinEntry[P, A, InPtr, Out, Pre],
	prefix PrefixFunc[P],
) CoinEntryExt {
	return &entryExt[P, A, In, InPtr, Out, Pre]{
		entry:  entry,
		prefix: prefix,
	}
}

func (e *entryExt[P, A, In, InPtr, Out, Pre]) convertPrefix(prefix *PrefixType) (*P, error) {
	if prefix == nil {
		return nil, nil
	}

	p, err := e.prefix(*prefix)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

//nolint:ireturn
func (e *entryExt[P, A, In, InPtr, Out, Pre]) ParseAddress(coin CoinContext, address string, prefix *PrefixType) (CoinAddress, error) {
	p, err := e.convertPrefix(prefix)
	if err != nil {
		return nil, err
	}

	addr, err := e.entry.ParseAddress(coin, address, p)
	if err != nil {
		return nil, err
	}
	return addr, nil
}

func (e *entryExt[P, A, In, InPtr, Out, Pre]) ValidateAddress(coin CoinContext, address string, prefix *PrefixType) error {
	_, err := e.ParseAddress(coin, address, prefix)
	return err
}

func (e *entryExt[P, A, In, InPtr, Out, Pre]) NormalizeAddress(coin CoinContext, address string) (string, error) {
	addr, err := e.entry.ParseAddress(coin, address, nil)
	if err != nil {
		return "", err
	}
	return addr.String(), nil
}

//nolint:ireturn
func (e *entryExt[P, A, In, InPtr, Out, Pre]) DeriveAddress(coin CoinContext, publicKey []byte, derivation Derivation, prefix *PrefixType) (CoinAddress, error) {
	p, err := e.convertPrefix(prefix)
	if err != nil {
		return nil, err
	}

	addr, err := e.entry.DeriveAddress(coin, publicKey, derivation, p)
	if err != nil {
		return nil, err
	}
	return addr, nil
}

func (e *entryExt[P, A, In, InPtr, Out, Pre]) decodeInput(input []byte) (InPtr, error) {
	in, err := proto.Decode[In, InPtr](input)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode signing input")
	}
	return in, nil
}

func (e *entryExt[P, A, In, InPtr, Out, Pre]) Sign(coin CoinContext, input []byte) ([]byte, error) {
	in, err := e.decodeInput(input)
	if err != nil {
		return nil, err
	}
	return e.entry.Sign(coin, in).Marshal(), nil
}

func (e *entryExt[P, A, In, InPtr, Out, Pre]) PreimageHashes(coin CoinContext, input []byte) ([]byte, error) {
	in, err := e.decodeInput(input)
	if err != nil {
		return nil, err
	}
	return e.entry.PreimageHashes(coin, in).Marshal(), nil
}

func (e *entryExt[P, A, In, InPtr, Out, Pre]) Compile(coin CoinContext, input []byte, signatures [][]byte, publicKeys [][]byte) ([]byte, error) {
	in, err := e.decodeInput(input)
	if err != nil {
		return nil, err
	}
	return e.entry.Compile(coin, in, signatures, publicKeys).Marshal(), nil
}

func (e *entryExt[P, A, In, InPtr, Out, Pre]) SupportsJSONSigning() bool {
	_, ok := e.entry.JSONSigner()
	return ok
}

func (e *entryExt[P, A, In, InPtr, Out, Pre]) SignJSON(coin CoinContext, inputJSON string, privateKey []byte) (string, error) {
	signer, ok := e.entry.JSONSigner()
	if !ok {
		return "", errors.Wrap(ErrNotSupported, "json signing")
	}
	return signer.SignJSON(coin, inputJSON, privateKey)
}

func (e *entryExt[P, A, In, InPtr, Out, Pre]) BuildSigningInput(coin CoinContext, params SigningInputParams) ([]byte, error) {
	builder, ok := e.entry.SigningInputBuilder()
	if !ok {
		return nil, errors.Wrap(ErrNotSupported, "signing input builder")
	}

	in, err := builder.BuildSigningInput(coin, params)
	if err != nil {
		return nil, err
	}
	return in.Marshal(), nil
}

func (e *entryExt[P, A, In, InPtr, Out, Pre]) Plan(coin CoinContext, input []byte) ([]byte, error) {
	builder, ok := e.entry.PlanBuilder()
	if !ok {
		return nil, errors.Wrap(ErrNotSupported, "plan builder")
	}
	return builder.Plan(coin, input)
}
