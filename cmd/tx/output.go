package tx

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github/chapool/wallet-core/internal/coinentry"
	"github/chapool/wallet-core/internal/proto"
	ethproto "github/chapool/wallet-core/internal/proto/ethereum"
	"github/chapool/wallet-core/internal/proto/txcompiler"
	"github/chapool/wallet-core/internal/registry"
)

type signingOutputView struct {
	Encoded hexutil.Bytes `json:"encoded"`
	V       hexutil.Bytes `json:"v"`
	R       hexutil.Bytes `json:"r"`
	S       hexutil.Bytes `json:"s"`
	Data    hexutil.Bytes `json:"data,omitempty"`
}

type preSigningOutputView struct {
	DataHash hexutil.Bytes `json:"dataHash"`
	Data     hexutil.Bytes `json:"data"`
}

// printSigningOutput prints the output of Ethereum family coins as JSON and
// the raw message hex otherwise. An error embedded in the output is returned.
func printSigningOutput(w io.Writer, coin *registry.CoinItem, out []byte) error {
	if coin.Blockchain != registry.BlockchainEthereum {
		fmt.Fprintln(w, hexutil.Encode(out))
		return nil
	}

	var msg ethproto.SigningOutput
	if err := msg.Unmarshal(out); err != nil {
		return errors.Wrap(err, "failed to decode signing output")
	}
	if msg.Error != proto.SigningOK {
		return &coinentry.SigningError{Type: msg.Error, Message: msg.ErrorMessage}
	}

	return writeJSON(w, signingOutputView{
		Encoded: msg.Encoded,
		V:       msg.V,
		R:       msg.R,
		S:       msg.S,
		Data:    msg.Data,
	})
}

func printPreSigningOutput(w io.Writer, out []byte) error {
	var msg txcompiler.PreSigningOutput
	if err := msg.Unmarshal(out); err != nil {
		return errors.Wrap(err, "failed to decode pre-signing output")
	}
	if msg.Error != proto.SigningOK {
		return &coinentry.SigningError{Type: msg.Error, Message: msg.ErrorMessage}
	}

	return writeJSON(w, preSigningOutputView{
		DataHash: msg.DataHash,
		Data:     msg.Data,
	})
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
