package wire

import "github.com/satoshinet/p2pcore/bcbuf"

// MsgUnknown represents a well-framed envelope whose command name falls
// outside the twenty-one this package dispatches. It carries the raw
// payload unparsed so the transport can decide whether to log, ignore,
// or disconnect over it.
type MsgUnknown struct {
	CommandName string
	Payload     []byte
}

func (m *MsgUnknown) Command() string { return m.CommandName }

func (m *MsgUnknown) Encode(buf *bcbuf.Buffer, pver uint32) error {
	buf.PutBytes(m.Payload)
	return nil
}

func (m *MsgUnknown) Decode(buf *bcbuf.Buffer, pver uint32) error {
	m.Payload = buf.Bytes()[buf.Pos():]
	return nil
}
