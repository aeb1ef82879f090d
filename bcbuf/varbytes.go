package bcbuf

import "fmt"

// ErrVarBytesTooLong is returned when a length-prefixed field's declared
// length exceeds an explicit cap the caller supplied, e.g. the 255-byte
// user-agent cap in the version message or the 36,000-byte Bloom filter
// cap in filterload.
type ErrVarBytesTooLong struct {
	Len int
	Max int
}

func (e ErrVarBytesTooLong) Error() string {
	return fmt.Sprintf("length-prefixed field too long: %d bytes, max %d", e.Len, e.Max)
}

// PutVarBytes writes b as a var-int length followed by the payload.
func (buf *Buffer) PutVarBytes(b []byte) {
	buf.PutVarInt(uint64(len(b)))
	buf.PutBytes(b)
}

// GetVarBytes reads a var-int length followed by that many bytes. maxLen
// bounds the accepted length (0 means unbounded); callers pass a
// command-specific cap here to reject an oversized length before any
// allocation derived from the count occurs.
func (buf *Buffer) GetVarBytes(maxLen int) ([]byte, error) {
	n, err := buf.GetVarIntStrict()
	if err != nil {
		return nil, err
	}
	if maxLen > 0 && n > uint64(maxLen) {
		return nil, ErrVarBytesTooLong{Len: int(n), Max: maxLen}
	}
	return buf.GetBytes(int(n))
}

// PutVarString writes s as a length-prefixed UTF-8 string.
func (buf *Buffer) PutVarString(s string) {
	buf.PutVarBytes([]byte(s))
}

// GetVarString reads a length-prefixed UTF-8 string, bounded by maxLen
// bytes (0 means unbounded).
func (buf *Buffer) GetVarString(maxLen int) (string, error) {
	b, err := buf.GetVarBytes(maxLen)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Reverse returns a new byte slice holding b's bytes in reverse order.
func Reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}
