// Package dispatch routes coin operations to the CoinEntry of the coin's
// blockchain. Inputs and outputs are wire-encoded messages.
package dispatch

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github/chapool/wallet-core/internal/coinentry"
	"github/chapool/wallet-core/internal/ethereum"
	"github/chapool/wallet-core/internal/registry"
	"github/chapool/wallet-core/internal/util"
)

var (
	ErrUnknownCoin           = errors.New("unknown coin")
	ErrUnsupportedBlockchain = errors.New("unsupported blockchain")
)

const (
	OperationParseAddress      = "parse_address"
	OperationNormalizeAddress  = "normalize_address"
	OperationDeriveAddress     = "derive_address"
	OperationDeriveAccount     = "derive_account"
	OperationSign              = "sign"
	OperationPreimageHashes    = "preimage_hashes"
	OperationCompile           = "compile"
	OperationSignJSON          = "sign_json"
	OperationBuildSigningInput = "build_signing_input"
	OperationPlan              = "plan"
)

// Dispatcher is safe for concurrent use.
type Dispatcher struct {
	registry *registry.Registry
	entries  map[registry.BlockchainType]coinentry.CoinEntryExt
	logger   *zerolog.Logger
	metrics  *Metrics
}

type Option func(*Dispatcher)

// WithLogger replaces the context logger for every operation.
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = &logger
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = metrics
	}
}

func New(reg *registry.Registry, opts ...Option) *Dispatcher {
	entries := map[registry.BlockchainType]coinentry.CoinEntryExt{
		registry.BlockchainEthereum: ethereum.NewExt(),
	}

	d := &Dispatcher{
		registry: reg,
		entries:  entries,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *Dispatcher) Registry() *registry.Registry {
	return d.registry
}

// EntryFor returns the entry and registry record of coinType.
//
//nolint:ireturn
func (d *Dispatcher) EntryFor(coinType uint32) (coinentry.CoinEntryExt, *registry.CoinItem, error) {
	coin, ok := d.registry.CoinByType(coinType)
	if !ok {
		return nil, nil, errors.Wrapf(ErrUnknownCoin, "coin type %d", coinType)
	}

	entry, ok := d.entries[coin.Blockchain]
	if !ok {
		return nil, coin, errors.Wrapf(ErrUnsupportedBlockchain, "%s (%s)", coin.ID, coin.Blockchain)
	}

	return entry, coin, nil
}

func (d *Dispatcher) log(ctx context.Context, coinType uint32, operation string) zerolog.Logger {
	l := d.logger
	if l == nil {
		l = util.LogFromContext(ctx)
	}
	return l.With().
		Str("component", "dispatch").
		Uint32("coin_type", coinType).
		Str("operation", operation).
		Logger()
}

// run resolves the entry of coinType, invokes f and records the outcome.
func (d *Dispatcher) run(
	ctx context.Context,
	coinType uint32,
	operation string,
	f func(entry coinentry.CoinEntryExt, coin *registry.CoinItem) error,
) error {
	log := d.log(ctx, coinType, operation)

	entry, coin, err := d.EntryFor(coinType)
	if err != nil {
		coinID := "unknown"
		if coin != nil {
			coinID = coin.ID
		}
		d.metrics.observe(coinID, operation, err)
		log.Debug().Err(err).Msg("No coin entry")
		return err
	}

	err = f(entry, coin)
	d.metrics.observe(coin.ID, operation, err)
	if err != nil {
		log.Debug().Err(err).Str("coin", coin.ID).Msg("Operation failed")
		return err
	}

	log.Debug().Str("coin", coin.ID).Msg("Operation done")
	return nil
}

//nolint:ireturn
func (d *Dispatcher) ParseAddress(ctx context.Context, coinType uint32, address string, prefix *coinentry.PrefixType) (coinentry.CoinAddress, error) {
	var addr coinentry.CoinAddress
	err := d.run(ctx, coinType, OperationParseAddress, func(entry coinentry.CoinEntryExt, coin *registry.CoinItem) error {
		var err error
		addr, err = entry.ParseAddress(coin, address, prefix)
		return err
	})
	return addr, err
}

func (d *Dispatcher) ValidateAddress(ctx context.Context, coinType uint32, address string) bool {
	_, err := d.ParseAddress(ctx, coinType, address, nil)
	return err == nil
}

func (d *Dispatcher) NormalizeAddress(ctx context.Context, coinType uint32, address string) (string, error) {
	var normalized string
	err := d.run(ctx, coinType, OperationNormalizeAddress, func(entry coinentry.CoinEntryExt, coin *registry.CoinItem) error {
		var err error
		normalized, err = entry.NormalizeAddress(coin, address)
		return err
	})
	return normalized, err
}

//nolint:ireturn
func (d *Dispatcher) DeriveAddress(
	ctx context.Context,
	coinType uint32,
	publicKey []byte,
	derivation coinentry.Derivation,
) (coinentry.CoinAddress, error) {
	var addr coinentry.CoinAddress
	err := d.run(ctx, coinType, OperationDeriveAddress, func(entry coinentry.CoinEntryExt, coin *registry.CoinItem) error {
		var err error
		addr, err = entry.DeriveAddress(coin, publicKey, derivation, nil)
		return err
	})
	return addr, err
}

// Sign signs an encoded signing input. Signing failures are reported inside
// the encoded output; only an undecodable input returns an error.
func (d *Dispatcher) Sign(ctx context.Context, coinType uint32, input []byte) ([]byte, error) {
	var out []byte
	err := d.run(ctx, coinType, OperationSign, func(entry coinentry.CoinEntryExt, coin *registry.CoinItem) error {
		var err error
		out, err = entry.Sign(coin, input)
		return err
	})
	return out, err
}

func (d *Dispatcher) PreimageHashes(ctx context.Context, coinType uint32, input []byte) ([]byte, error) {
	var out []byte
	err := d.run(ctx, coinType, OperationPreimageHashes, func(entry coinentry.CoinEntryExt, coin *registry.CoinItem) error {
		var err error
		out, err = entry.PreimageHashes(coin, input)
		return err
	})
	return out, err
}

func (d *Dispatcher) Compile(ctx context.Context, coinType uint32, input []byte, signatures [][]byte, publicKeys [][]byte) ([]byte, error) {
	var out []byte
	err := d.run(ctx, coinType, OperationCompile, func(entry coinentry.CoinEntryExt, coin *registry.CoinItem) error {
		var err error
		out, err = entry.Compile(coin, input, signatures, publicKeys)
		return err
	})
	return out, err
}

func (d *Dispatcher) SupportsJSONSigning(coinType uint32) bool {
	entry, _, err := d.EntryFor(coinType)
	return err == nil && entry.SupportsJSONSigning()
}

func (d *Dispatcher) SignJSON(ctx context.Context, coinType uint32, inputJSON string, privateKey []byte) (string, error) {
	var out string
	err := d.run(ctx, coinType, OperationSignJSON, func(entry coinentry.CoinEntryExt, coin *registry.CoinItem) error {
		var err error
		out, err = entry.SignJSON(coin, inputJSON, privateKey)
		return err
	})
	return out, err
}

func (d *Dispatcher) BuildSigningInput(ctx context.Context, coinType uint32, params coinentry.SigningInputParams) ([]byte, error) {
	var out []byte
	err := d.run(ctx, coinType, OperationBuildSigningInput, func(entry coinentry.CoinEntryExt, coin *registry.CoinItem) error {
		var err error
		out, err = entry.BuildSigningInput(coin, params)
		return err
	})
	return out, err
}

func (d *Dispatcher) Plan(ctx context.Context, coinType uint32, input []byte) ([]byte, error) {
	var out []byte
	err := d.run(ctx, coinType, OperationPlan, func(entry coinentry.CoinEntryExt, coin *registry.CoinItem) error {
		var err error
		out, err = entry.Plan(coin, input)
		return err
	})
	return out, err
}
