package registry

import "gopkg.in/yaml.v3"

// BlockchainType is the implementation family a coin is dispatched to.
type BlockchainType int

const (
	BlockchainUnsupported BlockchainType = iota
	BlockchainEthereum
)

var blockchainNames = map[BlockchainType]string{
	BlockchainUnsupported: "Unsupported",
	BlockchainEthereum:    "Ethereum",
}

// BlockchainFromString never fails: families without an implementation map
// to BlockchainUnsupported.
func BlockchainFromString(s string) BlockchainType {
	for bt, name := range blockchainNames {
		if name == s {
			return bt
		}
	}
	return BlockchainUnsupported
}

func (b BlockchainType) String() string {
	if name, ok := blockchainNames[b]; ok {
		return name
	}
	return blockchainNames[BlockchainUnsupported]
}

func (b *BlockchainType) UnmarshalText(text []byte) error {
	*b = BlockchainFromString(string(text))
	return nil
}

func (b *BlockchainType) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	*b = BlockchainFromString(s)
	return nil
}
