// Package registry holds the read-only metadata of every known coin.
package registry

import (
	_ "embed"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github/chapool/wallet-core/internal/coinentry"
	"github/chapool/wallet-core/internal/keypair"
	"gopkg.in/yaml.v3"
)

//go:embed registry.yaml
var embeddedRegistry []byte

var (
	ErrUnknownCurve         = errors.New("unknown curve")
	ErrUnknownPublicKeyType = errors.New("unknown public key type")
	ErrDuplicateCoin        = errors.New("duplicate coin")
)

// DerivationPath is one HD derivation a coin supports. The first entry is the default.
type DerivationPath struct {
	Name string `yaml:"name" toml:"name"`
	Path string `yaml:"path" toml:"path"`
}

// CoinItem is the registry record of a coin. It implements coinentry.CoinContext.
type CoinItem struct {
	ID         string
	Name       string
	Symbol     string
	Decimals   int
	CoinType   uint32
	Blockchain BlockchainType
	// ChainID is nil for chains without an EVM chain id.
	ChainID     *uint256.Int
	Derivations []DerivationPath

	curve         keypair.Curve
	publicKeyType keypair.PublicKeyType
}

var _ coinentry.CoinContext = (*CoinItem)(nil)

func (c *CoinItem) Curve() keypair.Curve { return c.curve }

func (c *CoinItem) PublicKeyType() keypair.PublicKeyType { return c.publicKeyType }

func (c *CoinItem) SupportsDerivation(derivation coinentry.Derivation) bool {
	return int(derivation) < len(c.Derivations)
}

// EVMChainID returns a copy of the chain id, or nil.
func (c *CoinItem) EVMChainID() *uint256.Int {
	if c.ChainID == nil {
		return nil
	}
	return new(uint256.Int).Set(c.ChainID)
}

// DerivationPath returns the HD path of the given derivation.
func (c *CoinItem) DerivationPath(derivation coinentry.Derivation) (string, bool) {
	if !c.SupportsDerivation(derivation) {
		return "", false
	}
	return c.Derivations[derivation].Path, true
}

type coinRecord struct {
	ID            string           `yaml:"id" toml:"id"`
	Name          string           `yaml:"name" toml:"name"`
	Symbol        string           `yaml:"symbol" toml:"symbol"`
	Decimals      int              `yaml:"decimals" toml:"decimals"`
	CoinID        uint32           `yaml:"coinId" toml:"coinId"`
	Blockchain    BlockchainType   `yaml:"blockchain" toml:"blockchain"`
	Curve         string           `yaml:"curve" toml:"curve"`
	PublicKeyType string           `yaml:"publicKeyType" toml:"publicKeyType"`
	ChainID       string           `yaml:"chainId" toml:"chainId"`
	Derivation    []DerivationPath `yaml:"derivation" toml:"derivation"`
}

type registryFile struct {
	Coins []coinRecord `yaml:"coins" toml:"coins"`
}

// Registry is safe for concurrent reads; it is never mutated after Parse.
type Registry struct {
	byType map[uint32]*CoinItem
	byID   map[string]*CoinItem
}

// Parse builds a registry from YAML data.
func Parse(data []byte) (*Registry, error) {
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "failed to parse registry")
	}
	return newRegistry(file)
}

// ParseTOML builds a registry from TOML data using a [[coins]] table array.
func ParseTOML(data []byte) (*Registry, error) {
	var file registryFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "failed to parse registry")
	}
	return newRegistry(file)
}

func newRegistry(file registryFile) (*Registry, error) {
	reg := &Registry{
		byType: make(map[uint32]*CoinItem, len(file.Coins)),
		byID:   make(map[string]*CoinItem, len(file.Coins)),
	}

	for _, rec := range file.Coins {
		item, err := rec.toItem()
		if err != nil {
			return nil, errors.Wrapf(err, "coin %q", rec.ID)
		}

		if _, ok := reg.byType[item.CoinType]; ok {
			return nil, errors.Wrapf(ErrDuplicateCoin, "coin type %d", item.CoinType)
		}
		if _, ok := reg.byID[item.ID]; ok {
			return nil, errors.Wrapf(ErrDuplicateCoin, "coin id %q", item.ID)
		}

		reg.byType[item.CoinType] = item
		reg.byID[item.ID] = item
	}

	return reg, nil
}

func (r coinRecord) toItem() (*CoinItem, error) {
	curve, ok := keypair.CurveFromName(r.Curve)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownCurve, "%q", r.Curve)
	}

	pkType, ok := keypair.PublicKeyTypeFromName(r.PublicKeyType)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownPublicKeyType, "%q", r.PublicKeyType)
	}

	item := &CoinItem{
		ID:            r.ID,
		Name:          r.Name,
		Symbol:        r.Symbol,
		Decimals:      r.Decimals,
		CoinType:      r.CoinID,
		Blockchain:    r.Blockchain,
		Derivations:   r.Derivation,
		curve:         curve,
		publicKeyType: pkType,
	}

	if r.ChainID != "" {
		chainID, err := uint256.FromDecimal(r.ChainID)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid chain id %q", r.ChainID)
		}
		item.ChainID = chainID
	}

	return item, nil
}

// Load reads the registry at path, or the embedded registry if path is empty.
// Files ending in .toml are read as TOML, everything else as YAML.
func Load(path string) (*Registry, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read registry %s", path)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return ParseTOML(data)
	}
	return Parse(data)
}

// Default returns the embedded registry.
var Default = sync.OnceValues(func() (*Registry, error) {
	return Parse(embeddedRegistry)
})

// CoinByType looks a coin up by its SLIP-44 coin type.
func (r *Registry) CoinByType(coinType uint32) (*CoinItem, bool) {
	item, ok := r.byType[coinType]
	return item, ok
}

// CoinByID looks a coin up by its registry id, e.g. "ethereum".
func (r *Registry) CoinByID(id string) (*CoinItem, bool) {
	item, ok := r.byID[id]
	return item, ok
}

// Coins returns every coin ordered by coin type.
func (r *Registry) Coins() []*CoinItem {
	coins := make([]*CoinItem, 0, len(r.byType))
	for _, item := range r.byType {
		coins = append(coins, item)
	}
	sort.Slice(coins, func(i, j int) bool { return coins[i].CoinType < coins[j].CoinType })
	return coins
}
