// Package proto holds the wire-format capability shared by every chain's
// signing messages, plus helpers for hand-encoding protobuf wire data with
// protowire.
package proto

import (
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// ErrMalformed is returned when a buffer is not valid wire data for the target message.
var ErrMalformed = errors.New("malformed wire message")

// Message is any value that round-trips through a byte buffer.
type Message interface {
	Marshal() []byte
	Unmarshal(data []byte) error
}

// MessagePtr constrains a pointer type whose element is a Message, so generic
// code can allocate a fresh value before unmarshaling into it.
type MessagePtr[T any] interface {
	*T
	Message
}

// Decode allocates a T and unmarshals data into it.
func Decode[T any, PT MessagePtr[T]](data []byte) (PT, error) {
	msg := PT(new(T))
	if err := msg.Unmarshal(data); err != nil {
		return nil, err
	}
	return msg, nil
}

// AppendBytes appends a length-delimited field, skipping empty values.
func AppendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

// AppendString appends a string field, skipping empty values.
func AppendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

// AppendVarint appends a varint field, skipping zero.
func AppendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

// AppendMessage appends a nested message. A nil message is omitted, an empty
// one is still written so presence survives the round trip.
func AppendMessage(b []byte, num protowire.Number, m Message) []byte {
	if m == nil {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, m.Marshal())
}

// FieldFunc consumes the value of one field and returns the number of bytes
// used. Returning 0 marks the field as unknown; it is skipped.
type FieldFunc func(num protowire.Number, typ protowire.Type, b []byte) (int, error)

// Walk iterates over the fields in data.
func Walk(data []byte, fn FieldFunc) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return errors.Wrap(ErrMalformed, protowire.ParseError(n).Error())
		}
		data = data[n:]

		m, err := fn(num, typ, data)
		if err != nil {
			return err
		}
		if m == 0 {
			m = protowire.ConsumeFieldValue(num, typ, data)
			if m < 0 {
				return errors.Wrap(ErrMalformed, protowire.ParseError(m).Error())
			}
		}
		data = data[m:]
	}
	return nil
}

// ConsumeBytes reads a length-delimited value into dst.
func ConsumeBytes(typ protowire.Type, b []byte, dst *[]byte) (int, error) {
	if typ != protowire.BytesType {
		return 0, errors.Wrapf(ErrMalformed, "expected bytes, got wire type %d", typ)
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return 0, errors.Wrap(ErrMalformed, protowire.ParseError(n).Error())
	}
	*dst = append([]byte(nil), v...)
	return n, nil
}

// ConsumeString reads a string value into dst.
func ConsumeString(typ protowire.Type, b []byte, dst *string) (int, error) {
	var raw []byte
	n, err := ConsumeBytes(typ, b, &raw)
	if err != nil {
		return 0, err
	}
	*dst = string(raw)
	return n, nil
}

// ConsumeVarint reads a varint value into dst.
func ConsumeVarint(typ protowire.Type, b []byte, dst *uint64) (int, error) {
	if typ != protowire.VarintType {
		return 0, errors.Wrapf(ErrMalformed, "expected varint, got wire type %d", typ)
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, errors.Wrap(ErrMalformed, protowire.ParseError(n).Error())
	}
	*dst = v
	return n, nil
}

// ConsumeMessage reads a nested message into dst.
func ConsumeMessage(typ protowire.Type, b []byte, dst Message) (int, error) {
	var raw []byte
	n, err := ConsumeBytes(typ, b, &raw)
	if err != nil {
		return 0, err
	}
	if err := dst.Unmarshal(raw); err != nil {
		return 0, err
	}
	return n, nil
}
