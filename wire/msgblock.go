package wire

import (
	"github.com/satoshinet/p2pcore/bcbuf"
	"github.com/satoshinet/p2pcore/txmodel"
)

// MsgBlock carries a full block: header plus every transaction.
type MsgBlock struct {
	Block *txmodel.Block
}

func (m *MsgBlock) Command() string { return CmdBlock }

func (m *MsgBlock) Encode(buf *bcbuf.Buffer, pver uint32) error {
	buf.PutBytes(m.Block.Serialize())
	return nil
}

func (m *MsgBlock) Decode(buf *bcbuf.Buffer, pver uint32) error {
	blk, err := txmodel.ParseBlock(buf)
	if err != nil {
		return err
	}
	m.Block = blk
	return nil
}
