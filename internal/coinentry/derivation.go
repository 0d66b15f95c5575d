package coinentry

import "strconv"

// Derivation identifies the HD derivation strategy used to compute an address.
type Derivation uint32

const (
	// DerivationDefault is the first derivation path the registry lists for a coin.
	DerivationDefault Derivation = 0
)

var derivationNames = map[Derivation]string{
	DerivationDefault: "default",
}

// DerivationFromRaw maps a numeric code to its derivation. Unknown codes
// return false and are never coerced to the default.
func DerivationFromRaw(raw uint32) (Derivation, bool) {
	switch raw {
	case 0:
		return DerivationDefault, true
	default:
		return 0, false
	}
}

func (d Derivation) String() string {
	if name, ok := derivationNames[d]; ok {
		return name
	}
	return "Derivation(" + strconv.FormatUint(uint64(d), 10) + ")"
}
