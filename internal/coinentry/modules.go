package coinentry

// JSONSigner signs a JSON encoded signing input with the given private key
// and returns the hex encoded signed transaction.
type JSONSigner interface {
	SignJSON(coin CoinContext, inputJSON string, privateKey []byte) (string, error)
}

// PlanBuilder computes a transaction plan (e.g. coin selection) from an
// encoded plan request and returns the encoded plan.
type PlanBuilder interface {
	Plan(coin CoinContext, input []byte) ([]byte, error)
}

// SigningInputParams are the chain-agnostic parameters of a simple transfer.
type SigningInputParams struct {
	From    string
	To      string
	Amount  string
	Asset   string
	Memo    string
	ChainID string
}

// InputBuilder prepares a signing input from simple parameters.
type InputBuilder[In any] interface {
	BuildSigningInput(coin CoinContext, params SigningInputParams) (In, error)
}

// NoJSONSigner is embedded by entries that do not support JSON signing.
type NoJSONSigner struct{}

func (NoJSONSigner) JSONSigner() (JSONSigner, bool) { return nil, false }

// NoPlanBuilder is embedded by entries that do not need planning.
type NoPlanBuilder struct{}

func (NoPlanBuilder) PlanBuilder() (PlanBuilder, bool) { return nil, false }

// NoInputBuilder is embedded by entries that cannot build signing inputs.
type NoInputBuilder[In any] struct{}

func (NoInputBuilder[In]) SigningInputBuilder() (InputBuilder[In], bool) { return nil, false }
