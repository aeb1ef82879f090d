package bcbuf

import "fmt"

// Variable-length integer prefix markers.
const (
	varIntPrefix16 = 0xFD
	varIntPrefix32 = 0xFE
	varIntPrefix64 = 0xFF
)

// ErrNonMinimalVarInt is returned by GetVarIntStrict when the encoding
// uses a wider prefix than the value requires. Peer-originated fields
// reject non-minimal encodings; internal (non peer-originated) callers
// that only need the value use the permissive GetVarInt instead.
type ErrNonMinimalVarInt struct {
	Value  uint64
	Prefix byte
}

func (e ErrNonMinimalVarInt) Error() string {
	return fmt.Sprintf("non-minimal var-int encoding: value %d used prefix 0x%02x", e.Value, e.Prefix)
}

// PutVarInt appends v using the canonical variable-length encoding:
// values up to 0xFC take one byte; up to 0xFFFF take a 0xFD prefix plus
// a little-endian uint16; up to 0xFFFFFFFF take a 0xFE prefix plus a
// little-endian uint32; anything larger takes a 0xFF prefix plus a
// little-endian uint64.
func (buf *Buffer) PutVarInt(v uint64) {
	switch {
	case v <= 0xFC:
		buf.PutUint8(uint8(v))
	case v <= 0xFFFF:
		buf.PutUint8(varIntPrefix16)
		buf.PutUint16LE(uint16(v))
	case v <= 0xFFFFFFFF:
		buf.PutUint8(varIntPrefix32)
		buf.PutUint32LE(uint32(v))
	default:
		buf.PutUint8(varIntPrefix64)
		buf.PutUint64LE(v)
	}
}

// GetVarInt decodes a variable-length integer without enforcing
// minimality, for internal (non peer-originated) use. See GetVarIntStrict
// for the peer-facing form.
func (buf *Buffer) GetVarInt() (uint64, error) {
	v, _, err := buf.getVarInt()
	return v, err
}

// GetVarIntStrict decodes a variable-length integer and rejects
// non-minimal encodings, for any field read directly off a peer
// connection.
func (buf *Buffer) GetVarIntStrict() (uint64, error) {
	v, prefix, err := buf.getVarInt()
	if err != nil {
		return 0, err
	}
	switch {
	case prefix == varIntPrefix16 && v <= 0xFC:
		return 0, ErrNonMinimalVarInt{Value: v, Prefix: prefix}
	case prefix == varIntPrefix32 && v <= 0xFFFF:
		return 0, ErrNonMinimalVarInt{Value: v, Prefix: prefix}
	case prefix == varIntPrefix64 && v <= 0xFFFFFFFF:
		return 0, ErrNonMinimalVarInt{Value: v, Prefix: prefix}
	}
	return v, nil
}

func (buf *Buffer) getVarInt() (value uint64, prefix byte, err error) {
	first, err := buf.GetUint8()
	if err != nil {
		return 0, 0, err
	}

	switch first {
	case varIntPrefix16:
		v, err := buf.GetUint16LE()
		if err != nil {
			return 0, 0, err
		}
		return uint64(v), first, nil
	case varIntPrefix32:
		v, err := buf.GetUint32LE()
		if err != nil {
			return 0, 0, err
		}
		return uint64(v), first, nil
	case varIntPrefix64:
		v, err := buf.GetUint64LE()
		if err != nil {
			return 0, 0, err
		}
		return v, first, nil
	default:
		return uint64(first), 0, nil
	}
}

// VarIntSize returns the number of bytes PutVarInt would use to encode v.
func VarIntSize(v uint64) int {
	switch {
	case v <= 0xFC:
		return 1
	case v <= 0xFFFF:
		return 3
	case v <= 0xFFFFFFFF:
		return 5
	default:
		return 9
	}
}
