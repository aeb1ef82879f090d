package wire

import (
	"github.com/satoshinet/p2pcore/bcbuf"
	"github.com/satoshinet/p2pcore/txmodel"
)

// MsgTx carries a single transaction.
type MsgTx struct {
	Tx *txmodel.Transaction
}

func (m *MsgTx) Command() string { return CmdTx }

func (m *MsgTx) Encode(buf *bcbuf.Buffer, pver uint32) error {
	buf.PutBytes(m.Tx.Bytes())
	return nil
}

func (m *MsgTx) Decode(buf *bcbuf.Buffer, pver uint32) error {
	tx, err := txmodel.ParseTransaction(buf)
	if err != nil {
		return err
	}
	m.Tx = tx
	return nil
}
