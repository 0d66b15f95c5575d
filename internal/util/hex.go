package util

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

// DecodeHex decodes a hex string with or without 0x prefix.
func DecodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X") {
		s = s[2:]
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid hex %q", s)
	}
	return b, nil
}

// DecodeHexList decodes each element with DecodeHex.
func DecodeHexList(list []string) ([][]byte, error) {
	out := make([][]byte, 0, len(list))
	for _, s := range list {
		b, err := DecodeHex(s)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}
