package coinentry

// PrefixType is the chain-agnostic form of an address prefix as it crosses
// the type-erased boundary.
type PrefixType struct {
	// Hrp is the human-readable part of bech32 style addresses.
	Hrp string
}

// NoPrefix is the prefix type of chains with a single address encoding.
type NoPrefix struct{}

// NoPrefixFromType rejects every explicit prefix.
func NoPrefixFromType(PrefixType) (NoPrefix, error) {
	return NoPrefix{}, ErrUnexpectedAddressPrefix
}
