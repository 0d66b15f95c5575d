package dispatch

import (
	"context"

	"github.com/pkg/errors"
	"github/chapool/wallet-core/internal/coinentry"
	"github/chapool/wallet-core/internal/hd"
	"github/chapool/wallet-core/internal/keypair"
	"github/chapool/wallet-core/internal/registry"
)

var ErrUnsupportedCurve = errors.New("unsupported curve")

// Account is an address derived from an HD wallet.
type Account struct {
	Coin      string `json:"coin"`
	Path      string `json:"path"`
	Address   string `json:"address"`
	PublicKey []byte `json:"publicKey"`
}

// DeriveAccount derives the key of coinType at path from wallet and returns
// its address. An empty path selects the registry path of derivation.
func (d *Dispatcher) DeriveAccount(
	ctx context.Context,
	coinType uint32,
	wallet *hd.Wallet,
	derivation coinentry.Derivation,
	path string,
) (Account, error) {
	var account Account
	err := d.run(ctx, coinType, OperationDeriveAccount, func(entry coinentry.CoinEntryExt, coin *registry.CoinItem) error {
		if path == "" {
			var ok bool
			path, ok = coin.DerivationPath(derivation)
			if !ok {
				return errors.Wrapf(coinentry.ErrUnsupported, "derivation %s", derivation)
			}
		}

		publicKey, err := derivePublicKey(coin, wallet, path)
		if err != nil {
			return err
		}

		addr, err := entry.DeriveAddress(coin, publicKey, derivation, nil)
		if err != nil {
			return err
		}

		account = Account{
			Coin:      coin.ID,
			Path:      path,
			Address:   addr.String(),
			PublicKey: publicKey,
		}
		return nil
	})
	return account, err
}

func derivePublicKey(coin *registry.CoinItem, wallet *hd.Wallet, path string) ([]byte, error) {
	if coin.Curve() != keypair.CurveSecp256k1 {
		return nil, errors.Wrapf(ErrUnsupportedCurve, "%s", coin.Curve())
	}

	privateKey, err := wallet.DerivePrivateKey(path)
	if err != nil {
		return nil, err
	}
	defer clear(privateKey)

	key, err := keypair.NewSecp256k1PrivateKey(privateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load derived key")
	}

	if coin.PublicKeyType() == keypair.PublicKeyTypeSecp256k1Extended {
		return key.PublicKey().Uncompressed(), nil
	}
	return key.PublicKey().Compressed(), nil
}
