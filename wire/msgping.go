package wire

import (
	"github.com/satoshinet/p2pcore/bcbuf"
)

// MsgPing carries an 8-byte nonce a peer echoes back in pong to measure
// round-trip latency and detect a dead connection.
type MsgPing struct {
	Nonce uint64
}

func (m *MsgPing) Command() string { return CmdPing }

func (m *MsgPing) Encode(buf *bcbuf.Buffer, pver uint32) error {
	buf.PutUint64LE(m.Nonce)
	return nil
}

func (m *MsgPing) Decode(buf *bcbuf.Buffer, pver uint32) error {
	nonce, err := buf.GetUint64LE()
	if err != nil {
		return err
	}
	m.Nonce = nonce
	return nil
}

// MsgPong echoes the nonce of the ping it answers.
type MsgPong struct {
	Nonce uint64
}

func (m *MsgPong) Command() string { return CmdPong }

func (m *MsgPong) Encode(buf *bcbuf.Buffer, pver uint32) error {
	buf.PutUint64LE(m.Nonce)
	return nil
}

func (m *MsgPong) Decode(buf *bcbuf.Buffer, pver uint32) error {
	nonce, err := buf.GetUint64LE()
	if err != nil {
		return err
	}
	m.Nonce = nonce
	return nil
}
