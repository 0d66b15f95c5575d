package ethereum

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
)

// MarshalJSON encodes the mode by name.
func (m TransactionMode) MarshalJSON() ([]byte, error) {
	if name, ok := transactionModeNames[m]; ok {
		return json.Marshal(name)
	}
	return []byte(strconv.Itoa(int(m))), nil
}

// UnmarshalJSON accepts either the mode name or its number.
func (m *TransactionMode) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		for mode, n := range transactionModeNames {
			if n == name {
				*m = mode
				return nil
			}
		}
		return errors.Errorf("unknown transaction mode %q", name)
	}

	var code int32
	if err := json.Unmarshal(data, &code); err != nil {
		return errors.Wrap(err, "invalid transaction mode")
	}
	*m = TransactionMode(code)
	return nil
}
