package coinentry

import (
	"github.com/pkg/errors"
	"github/chapool/wallet-core/internal/proto"
)

// AddressError is the kind of failure returned by address parsing and derivation.
type AddressError int

const (
	ErrUnsupported AddressError = iota + 1
	ErrMissingPrefix
	ErrFromHex
	ErrPublicKeyTypeMismatch
	ErrUnexpectedAddressPrefix
	ErrInvalidHrp
	ErrInvalidInput
	ErrInvalidChecksum
	ErrInternal
)

var addressErrorMessages = map[AddressError]string{
	ErrUnsupported:             "unsupported",
	ErrMissingPrefix:           "missing prefix",
	ErrFromHex:                 "invalid hex",
	ErrPublicKeyTypeMismatch:   "public key type mismatch",
	ErrUnexpectedAddressPrefix: "unexpected address prefix",
	ErrInvalidHrp:              "invalid hrp",
	ErrInvalidInput:            "invalid input",
	ErrInvalidChecksum:         "invalid checksum",
	ErrInternal:                "internal error",
}

func (e AddressError) Error() string {
	if msg, ok := addressErrorMessages[e]; ok {
		return "address error: " + msg
	}
	return "address error"
}

// ErrNotSupported is returned by the type-erased entry when a chain does not
// provide the requested optional module.
var ErrNotSupported = errors.New("not supported by this chain")

// SigningError is the internal error of the signing pipeline. It never escapes
// Sign, PreimageHashes or Compile; those fold it into their output message.
type SigningError struct {
	Type    proto.SigningErrorType
	Message string
}

// NewSigningError creates a SigningError with a formatted message.
func NewSigningError(errType proto.SigningErrorType, format string, args ...any) *SigningError {
	return &SigningError{Type: errType, Message: errors.Errorf(format, args...).Error()}
}

func (e *SigningError) Error() string {
	if e.Message == "" {
		return e.Type.String()
	}
	return e.Type.String() + ": " + e.Message
}

// AsSigningError converts any error into a SigningError, keeping the type of
// a wrapped SigningError and defaulting to ErrorGeneral otherwise.
func AsSigningError(err error) *SigningError {
	if err == nil {
		return nil
	}

	var signingErr *SigningError
	if errors.As(err, &signingErr) {
		return signingErr
	}

	return &SigningError{Type: proto.ErrorGeneral, Message: err.Error()}
}
