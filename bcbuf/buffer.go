// Package bcbuf implements the serialized buffer shared by every message
// encoder and decoder: a single growable byte cursor with bounds-checked
// typed getters and putters, plus the canonical variable-length integer
// codec used throughout the wire protocol.
package bcbuf

import (
	"encoding/binary"
	"fmt"
)

// Buffer is a cursor over a byte slice. The same type backs both
// encoding (Put* methods append and grow the backing slice) and decoding
// (Get* methods advance a read position and bounds-check against the
// slice length), so callers never need two separate types for the two
// directions of the codec.
type Buffer struct {
	b   []byte
	pos int
}

// NewBuffer wraps an existing byte slice for reading. The slice is not
// copied.
func NewBuffer(b []byte) *Buffer {
	return &Buffer{b: b}
}

// NewWriteBuffer returns an empty Buffer ready for Put* calls, with cap
// bytes of backing capacity preallocated.
func NewWriteBuffer(cap int) *Buffer {
	return &Buffer{b: make([]byte, 0, cap)}
}

// Bytes returns the full backing slice (not just what remains to be
// read).
func (buf *Buffer) Bytes() []byte {
	return buf.b
}

// Pos returns the current read/write cursor offset.
func (buf *Buffer) Pos() int {
	return buf.pos
}

// Len returns the total number of bytes held by the buffer.
func (buf *Buffer) Len() int {
	return len(buf.b)
}

// Remaining returns the number of unread bytes left in the buffer.
func (buf *Buffer) Remaining() int {
	return len(buf.b) - buf.pos
}

// ErrEndOfData is returned whenever a Get call needs more bytes than
// remain in the buffer.
type ErrEndOfData struct {
	Want int
	Have int
}

func (e ErrEndOfData) Error() string {
	return fmt.Sprintf("unexpected end of data: need %d bytes, have %d", e.Want, e.Have)
}

func (buf *Buffer) require(n int) error {
	if buf.Remaining() < n {
		return ErrEndOfData{Want: n, Have: buf.Remaining()}
	}
	return nil
}

// Skip advances the read cursor by n bytes without returning them.
func (buf *Buffer) Skip(n int) error {
	if err := buf.require(n); err != nil {
		return err
	}
	buf.pos += n
	return nil
}

// GetBytes reads and returns the next n bytes verbatim. The returned
// slice aliases the buffer's backing array; callers that need to retain
// it past further mutation of buf should copy it.
func (buf *Buffer) GetBytes(n int) ([]byte, error) {
	if err := buf.require(n); err != nil {
		return nil, err
	}
	out := buf.b[buf.pos : buf.pos+n]
	buf.pos += n
	return out, nil
}

// PutBytes appends b verbatim.
func (buf *Buffer) PutBytes(b []byte) {
	buf.b = append(buf.b, b...)
	buf.pos = len(buf.b)
}

// GetUint8 reads a single byte.
func (buf *Buffer) GetUint8() (uint8, error) {
	b, err := buf.GetBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// PutUint8 appends a single byte.
func (buf *Buffer) PutUint8(v uint8) {
	buf.PutBytes([]byte{v})
}

// GetUint16LE reads a little-endian uint16.
func (buf *Buffer) GetUint16LE() (uint16, error) {
	b, err := buf.GetBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// PutUint16LE appends a little-endian uint16.
func (buf *Buffer) PutUint16LE(v uint16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	buf.PutBytes(tmp[:])
}

// GetUint32LE reads a little-endian uint32.
func (buf *Buffer) GetUint32LE() (uint32, error) {
	b, err := buf.GetBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// PutUint32LE appends a little-endian uint32.
func (buf *Buffer) PutUint32LE(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	buf.PutBytes(tmp[:])
}

// GetUint64LE reads a little-endian uint64.
func (buf *Buffer) GetUint64LE() (uint64, error) {
	b, err := buf.GetBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// PutUint64LE appends a little-endian uint64.
func (buf *Buffer) PutUint64LE(v uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	buf.PutBytes(tmp[:])
}

// GetInt32LE reads a little-endian int32 (used for signed 32-bit fields
// such as transaction and block header versions).
func (buf *Buffer) GetInt32LE() (int32, error) {
	v, err := buf.GetUint32LE()
	return int32(v), err
}

// PutInt32LE appends a little-endian int32.
func (buf *Buffer) PutInt32LE(v int32) {
	buf.PutUint32LE(uint32(v))
}

// GetInt64LE reads a little-endian int64.
func (buf *Buffer) GetInt64LE() (int64, error) {
	v, err := buf.GetUint64LE()
	return int64(v), err
}

// PutInt64LE appends a little-endian int64.
func (buf *Buffer) PutInt64LE(v int64) {
	buf.PutUint64LE(uint64(v))
}
