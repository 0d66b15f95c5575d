// Package modules holds the building blocks of the Ethereum entry: the
// transaction builder, the signer, the compiler and the optional modules.
package modules

import (
	"github.com/holiman/uint256"
	"github/chapool/wallet-core/internal/coinentry"
	"github/chapool/wallet-core/internal/ethereum/abi"
	"github/chapool/wallet-core/internal/ethereum/address"
	"github/chapool/wallet-core/internal/ethereum/transaction"
	"github/chapool/wallet-core/internal/proto"
	ethproto "github/chapool/wallet-core/internal/proto/ethereum"
)

const maxU256Len = 32

// BuildTransaction turns a signing input into an unsigned transaction.
// Errors are *coinentry.SigningError values.
//
//nolint:ireturn
func BuildTransaction(input *ethproto.SigningInput) (transaction.UnsignedTransactionBox, error) {
	if input.Transaction == nil {
		return nil, coinentry.NewSigningError(proto.ErrorInvalidParams, "transaction is not set")
	}

	call, err := buildCall(input)
	if err != nil {
		return nil, err
	}

	nonce, err := U256FromBytes(input.Nonce, "nonce")
	if err != nil {
		return nil, err
	}
	gasLimit, err := U256FromBytes(input.GasLimit, "gas limit")
	if err != nil {
		return nil, err
	}

	switch input.TxMode {
	case ethproto.TransactionModeLegacy:
		gasPrice, err := U256FromBytes(input.GasPrice, "gas price")
		if err != nil {
			return nil, err
		}

		tx := &transaction.TransactionNonTyped{
			Nonce:    nonce,
			GasPrice: gasPrice,
			GasLimit: gasLimit,
			To:       call.to,
			Amount:   call.amount,
			Data:     call.data,
		}
		return tx.IntoBoxed(), nil

	case ethproto.TransactionModeEnveloped:
		tip, err := U256FromBytes(input.MaxInclusionFeePerGas, "max inclusion fee per gas")
		if err != nil {
			return nil, err
		}
		feeCap, err := U256FromBytes(input.MaxFeePerGas, "max fee per gas")
		if err != nil {
			return nil, err
		}

		tx := &transaction.TransactionEip1559{
			Nonce:                 nonce,
			MaxInclusionFeePerGas: tip,
			MaxFeePerGas:          feeCap,
			GasLimit:              gasLimit,
			To:                    call.to,
			Amount:                call.amount,
			Data:                  call.data,
		}
		return tx.IntoBoxed(), nil

	default:
		return nil, coinentry.NewSigningError(proto.ErrorInvalidParams, "unsupported transaction mode %d", input.TxMode)
	}
}

// call is the destination, value and payload of a transaction.
type call struct {
	to     *address.Address
	amount *uint256.Int
	data   []byte
}

func buildCall(input *ethproto.SigningInput) (*call, error) {
	tx := input.Transaction

	switch {
	case tx.Transfer != nil:
		to, err := parseAddress(input.ToAddress, "to address")
		if err != nil {
			return nil, err
		}
		amount, err := U256FromBytes(tx.Transfer.Amount, "amount")
		if err != nil {
			return nil, err
		}
		return &call{to: &to, amount: amount, data: tx.Transfer.Data}, nil

	case tx.Erc20Transfer != nil:
		token, err := parseAddress(input.ToAddress, "token address")
		if err != nil {
			return nil, err
		}
		recipient, err := parseAddress(tx.Erc20Transfer.To, "recipient")
		if err != nil {
			return nil, err
		}
		amount, err := U256FromBytes(tx.Erc20Transfer.Amount, "amount")
		if err != nil {
			return nil, err
		}
		return contractCall(token)(abi.ERC20Transfer(recipient, amount))

	case tx.Erc20Approve != nil:
		token, err := parseAddress(input.ToAddress, "token address")
		if err != nil {
			return nil, err
		}
		spender, err := parseAddress(tx.Erc20Approve.Spender, "spender")
		if err != nil {
			return nil, err
		}
		amount, err := U256FromBytes(tx.Erc20Approve.Amount, "amount")
		if err != nil {
			return nil, err
		}
		return contractCall(token)(abi.ERC20Approve(spender, amount))

	case tx.Erc721Transfer != nil:
		token, err := parseAddress(input.ToAddress, "token address")
		if err != nil {
			return nil, err
		}
		from, err := parseAddress(tx.Erc721Transfer.From, "from")
		if err != nil {
			return nil, err
		}
		to, err := parseAddress(tx.Erc721Transfer.To, "to")
		if err != nil {
			return nil, err
		}
		tokenID, err := U256FromBytes(tx.Erc721Transfer.TokenID, "token id")
		if err != nil {
			return nil, err
		}
		return contractCall(token)(abi.ERC721TransferFrom(from, to, tokenID))

	case tx.Erc1155Transfer != nil:
		t := tx.Erc1155Transfer
		token, err := parseAddress(input.ToAddress, "token address")
		if err != nil {
			return nil, err
		}
		from, err := parseAddress(t.From, "from")
		if err != nil {
			return nil, err
		}
		to, err := parseAddress(t.To, "to")
		if err != nil {
			return nil, err
		}
		tokenID, err := U256FromBytes(t.TokenID, "token id")
		if err != nil {
			return nil, err
		}
		value, err := U256FromBytes(t.Value, "value")
		if err != nil {
			return nil, err
		}
		return contractCall(token)(abi.ERC1155SafeTransferFrom(from, to, tokenID, value, t.Data))

	case tx.ContractGeneric != nil:
		amount, err := U256FromBytes(tx.ContractGeneric.Amount, "amount")
		if err != nil {
			return nil, err
		}

		// empty destination deploys a contract
		if input.ToAddress == "" {
			return &call{amount: amount, data: tx.ContractGeneric.Data}, nil
		}

		to, err := parseAddress(input.ToAddress, "contract address")
		if err != nil {
			return nil, err
		}
		return &call{to: &to, amount: amount, data: tx.ContractGeneric.Data}, nil
	}

	return nil, coinentry.NewSigningError(proto.ErrorInvalidParams, "transaction is not set")
}

// contractCall wraps encoded call data sent with zero value to token.
func contractCall(token address.Address) func([]byte, error) (*call, error) {
	return func(data []byte, err error) (*call, error) {
		if err != nil {
			return nil, coinentry.NewSigningError(proto.ErrorInvalidParams, "failed to encode contract call: %v", err)
		}
		return &call{to: &token, amount: new(uint256.Int), data: data}, nil
	}
}

func parseAddress(s, field string) (address.Address, error) {
	addr, err := address.FromString(s)
	if err != nil {
		return address.Address{}, coinentry.NewSigningError(proto.ErrorInvalidAddress, "invalid %s %q: %v", field, s, err)
	}
	return addr, nil
}

// U256FromBytes decodes a big-endian number of at most 32 bytes. Empty input is zero.
func U256FromBytes(b []byte, field string) (*uint256.Int, error) {
	if len(b) > maxU256Len {
		return nil, coinentry.NewSigningError(proto.ErrorInvalidParams, "%s exceeds 256 bits", field)
	}
	return new(uint256.Int).SetBytes(b), nil
}
