// Package ethereum is the CoinEntry of the Ethereum family and every EVM
// chain that shares its address and transaction formats.
package ethereum

import (
	"github/chapool/wallet-core/internal/coinentry"
	"github/chapool/wallet-core/internal/ethereum/address"
	"github/chapool/wallet-core/internal/ethereum/modules"
	"github/chapool/wallet-core/internal/keypair"
	ethproto "github/chapool/wallet-core/internal/proto/ethereum"
	"github/chapool/wallet-core/internal/proto/txcompiler"
)

// Entry is stateless and safe for concurrent use.
type Entry struct {
	coinentry.NoPlanBuilder
}

var _ coinentry.CoinEntry[
	coinentry.NoPrefix,
	address.Address,
	*ethproto.SigningInput,
	*ethproto.SigningOutput,
	*txcompiler.PreSigningOutput,
] = Entry{}

// NewExt returns the type-erased Ethereum entry.
//
//nolint:ireturn
func NewExt() coinentry.CoinEntryExt {
	return coinentry.NewExt[
		coinentry.NoPrefix,
		address.Address,
		ethproto.SigningInput,
		*ethproto.SigningInput,
		*ethproto.SigningOutput,
		*txcompiler.PreSigningOutput,
	](Entry{}, coinentry.NoPrefixFromType)
}

func (Entry) ParseAddress(_ coinentry.CoinContext, addr string, _ *coinentry.NoPrefix) (address.Address, error) {
	return address.FromString(addr)
}

func (Entry) DeriveAddress(
	coin coinentry.CoinContext,
	publicKey []byte,
	derivation coinentry.Derivation,
	_ *coinentry.NoPrefix,
) (address.Address, error) {
	if !coin.SupportsDerivation(derivation) {
		return address.Address{}, coinentry.ErrUnsupported
	}

	key, err := keypair.ParseSecp256k1PublicKey(publicKey)
	if err != nil {
		return address.Address{}, coinentry.ErrPublicKeyTypeMismatch
	}

	return address.WithSecp256k1PublicKey(key), nil
}

func (Entry) Sign(_ coinentry.CoinContext, input *ethproto.SigningInput) *ethproto.SigningOutput {
	return modules.Sign(input)
}

func (Entry) PreimageHashes(_ coinentry.CoinContext, input *ethproto.SigningInput) *txcompiler.PreSigningOutput {
	return modules.PreimageHashes(input)
}

func (Entry) Compile(
	_ coinentry.CoinContext,
	input *ethproto.SigningInput,
	signatures [][]byte,
	publicKeys [][]byte,
) *ethproto.SigningOutput {
	return modules.Compile(input, signatures, publicKeys)
}

//nolint:ireturn
func (Entry) JSONSigner() (coinentry.JSONSigner, bool) {
	return modules.JSONSigner{}, true
}

//nolint:ireturn
func (Entry) SigningInputBuilder() (coinentry.InputBuilder[*ethproto.SigningInput], bool) {
	return modules.InputBuilder{}, true
}
