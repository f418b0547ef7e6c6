package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/wallet/errors"
)

// Protocol buffer wire types used by the models.
const (
	wireVarint = 0
	wireBytes  = 2
)

// Encoder serializes fields using the protocol buffer wire format. Fields
// must be written in the field number order to produce canonical output.
// Zero values are not written, same as proto3 does.
type Encoder struct {
	buf []byte
}

func (e *Encoder) key(field, wire int) {
	e.buf = append(e.buf, proto.EncodeVarint(uint64(field)<<3|uint64(wire))...)
}

// Uint64 writes a varint field.
func (e *Encoder) Uint64(field int, v uint64) {
	if v == 0 {
		return
	}
	e.key(field, wireVarint)
	e.buf = append(e.buf, proto.EncodeVarint(v)...)
}

// Bool writes a varint field holding 1 for true.
func (e *Encoder) Bool(field int, v bool) {
	if v {
		e.Uint64(field, 1)
	}
}

// Bytes writes a length delimited field.
func (e *Encoder) Bytes(field int, b []byte) {
	if len(b) == 0 {
		return
	}
	e.RepeatedBytes(field, b)
}

// RepeatedBytes writes a length delimited field even if it is empty, so
// that the position of every element is preserved.
func (e *Encoder) RepeatedBytes(field int, b []byte) {
	e.key(field, wireBytes)
	e.buf = append(e.buf, proto.EncodeVarint(uint64(len(b)))...)
	e.buf = append(e.buf, b...)
}

// Result returns the serialized message.
func (e *Encoder) Result() []byte {
	return e.buf
}

// Field is a single decoded field of a message.
type Field struct {
	Num    int
	Varint uint64
	Bytes  []byte
}

// Decode parses a protocol buffer wire format message and calls fn for
// every field, in the order of appearance. Only varint and length
// delimited fields are supported.
func Decode(raw []byte, fn func(Field) error) error {
	for len(raw) > 0 {
		key, n := proto.DecodeVarint(raw)
		if n == 0 {
			return errors.Wrap(errors.ErrModel, "malformed field key")
		}
		raw = raw[n:]

		f := Field{Num: int(key >> 3)}
		if f.Num == 0 {
			return errors.Wrap(errors.ErrModel, "invalid field number")
		}
		switch key & 7 {
		case wireVarint:
			v, n := proto.DecodeVarint(raw)
			if n == 0 {
				return errors.Wrapf(errors.ErrModel, "malformed varint of field %d", f.Num)
			}
			f.Varint = v
			raw = raw[n:]
		case wireBytes:
			size, n := proto.DecodeVarint(raw)
			if n == 0 || uint64(len(raw)-n) < size {
				return errors.Wrapf(errors.ErrModel, "malformed bytes of field %d", f.Num)
			}
			raw = raw[n:]
			f.Bytes = append([]byte{}, raw[:size]...)
			raw = raw[size:]
		default:
			return errors.Wrapf(errors.ErrModel, "unsupported wire type %d", key&7)
		}

		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}
