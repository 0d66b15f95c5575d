package modules

import (
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"github/chapool/wallet-core/internal/coinentry"
	"github/chapool/wallet-core/internal/proto"
	ethproto "github/chapool/wallet-core/internal/proto/ethereum"
)

// ChainIDProvider is implemented by coin contexts that know their EVM chain id.
type ChainIDProvider interface {
	EVMChainID() *uint256.Int
}

// InputBuilder prepares native transfer inputs. Nonce, gas and fee fields are
// left for the caller to fill in.
type InputBuilder struct{}

var _ coinentry.InputBuilder[*ethproto.SigningInput] = InputBuilder{}

func (InputBuilder) BuildSigningInput(coin coinentry.CoinContext, params coinentry.SigningInputParams) (*ethproto.SigningInput, error) {
	if params.Memo != "" {
		return nil, coinentry.NewSigningError(proto.ErrorNotSupported, "memo is not supported")
	}
	if params.Asset != "" {
		return nil, coinentry.NewSigningError(proto.ErrorNotSupported, "asset %q is not supported, only native transfers", params.Asset)
	}

	if params.From != "" {
		if _, err := parseAddress(params.From, "from address"); err != nil {
			return nil, err
		}
	}
	to, err := parseAddress(params.To, "to address")
	if err != nil {
		return nil, err
	}

	amount, err := parseWei(params.Amount, "amount")
	if err != nil {
		return nil, err
	}

	chainID, err := resolveChainID(coin, params.ChainID)
	if err != nil {
		return nil, err
	}

	return &ethproto.SigningInput{
		ChainID:   chainID.Bytes(),
		TxMode:    ethproto.TransactionModeEnveloped,
		ToAddress: to.String(),
		Transaction: &ethproto.Transaction{
			Transfer: &ethproto.Transfer{Amount: amount.Bytes()},
		},
	}, nil
}

// parseWei parses a non-negative integer that fits in 256 bits.
func parseWei(s, field string) (*uint256.Int, error) {
	value, err := decimal.NewFromString(s)
	if err != nil {
		return nil, coinentry.NewSigningError(proto.ErrorInvalidParams, "invalid %s %q", field, s)
	}
	if value.IsNegative() {
		return nil, coinentry.NewSigningError(proto.ErrorInvalidRequestedTokenAmount, "%s must not be negative", field)
	}
	if !value.Equal(value.Truncate(0)) {
		return nil, coinentry.NewSigningError(proto.ErrorInvalidRequestedTokenAmount, "%s must be an integer amount of wei", field)
	}

	amount, overflow := uint256.FromBig(value.BigInt())
	if overflow {
		return nil, coinentry.NewSigningError(proto.ErrorInvalidParams, "%s exceeds 256 bits", field)
	}
	return amount, nil
}

func resolveChainID(coin coinentry.CoinContext, raw string) (*uint256.Int, error) {
	if raw != "" {
		return parseWei(raw, "chain id")
	}

	if provider, ok := coin.(ChainIDProvider); ok {
		if chainID := provider.EVMChainID(); chainID != nil {
			return chainID, nil
		}
	}
	return nil, coinentry.NewSigningError(proto.ErrorInvalidParams, "chain id is required")
}
