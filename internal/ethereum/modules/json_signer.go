package modules

import (
	"encoding/hex"
	"encoding/json"

	"github/chapool/wallet-core/internal/coinentry"
	"github/chapool/wallet-core/internal/proto"
	ethproto "github/chapool/wallet-core/internal/proto/ethereum"
)

// JSONSigner signs SigningInput messages given in their JSON mapping.
type JSONSigner struct{}

var _ coinentry.JSONSigner = JSONSigner{}

// SignJSON returns the hex encoded signed transaction. The private key
// argument replaces any key present in the JSON.
func (JSONSigner) SignJSON(_ coinentry.CoinContext, inputJSON string, privateKey []byte) (string, error) {
	var input ethproto.SigningInput
	if err := json.Unmarshal([]byte(inputJSON), &input); err != nil {
		return "", coinentry.NewSigningError(proto.ErrorInvalidParams, "invalid signing input json: %v", err)
	}
	input.PrivateKey = privateKey

	out := Sign(&input)
	if out.Error != proto.SigningOK {
		return "", &coinentry.SigningError{Type: out.Error, Message: out.ErrorMessage}
	}

	return hex.EncodeToString(out.Encoded), nil
}
