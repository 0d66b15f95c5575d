package hd

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip32"
)

var ErrInvalidPath = errors.New("invalid derivation path")

// ParsePath parses a BIP-32 path into child indices.
// Example: "m/44'/60'/0'/0/0" -> [2147483692, 2147483708, 2147483648, 0, 0]
// Hardened segments may be marked with ' or h.
func ParsePath(path string) ([]uint32, error) {
	rest, ok := strings.CutPrefix(path, "m")
	if !ok {
		return nil, errors.Wrapf(ErrInvalidPath, "%q must start with m", path)
	}
	if rest == "" || rest == "/" {
		return []uint32{}, nil
	}

	rest, ok = strings.CutPrefix(rest, "/")
	if !ok {
		return nil, errors.Wrapf(ErrInvalidPath, "%q", path)
	}

	parts := strings.Split(rest, "/")
	indices := make([]uint32, 0, len(parts))
	for _, part := range parts {
		offset := uint32(0)
		if trimmed, hardened := cutHardened(part); hardened {
			part = trimmed
			offset = bip32.FirstHardenedChild
		}

		// hardened flag is the top bit, so the index itself has 31 bits
		index, err := strconv.ParseUint(part, 10, 31)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidPath, "segment %q of %q", part, path)
		}

		indices = append(indices, uint32(index)+offset)
	}

	return indices, nil
}

func cutHardened(part string) (string, bool) {
	for _, suffix := range []string{"'", "h", "H"} {
		if trimmed, ok := strings.CutSuffix(part, suffix); ok {
			return trimmed, true
		}
	}
	return part, false
}
