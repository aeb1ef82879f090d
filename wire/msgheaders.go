package wire

import (
	"fmt"

	"github.com/satoshinet/p2pcore/bcbuf"
	"github.com/satoshinet/p2pcore/txmodel"
)

// maxHeadersPerMsg bounds headers.
const maxHeadersPerMsg = 2000

// MsgHeaders carries a batch of block headers with no accompanying
// transactions; each is followed on the wire by a single zero byte
// standing in for an empty transaction count.
type MsgHeaders struct {
	Headers []*txmodel.BlockHeader
}

func (m *MsgHeaders) Command() string { return CmdHeaders }

func (m *MsgHeaders) Encode(buf *bcbuf.Buffer, pver uint32) error {
	if len(m.Headers) > maxHeadersPerMsg {
		return fmt.Errorf("headers message carries %d headers, max %d", len(m.Headers), maxHeadersPerMsg)
	}
	buf.PutVarInt(uint64(len(m.Headers)))
	for _, h := range m.Headers {
		buf.PutBytes(h.Serialize())
		buf.PutUint8(0)
	}
	return nil
}

func (m *MsgHeaders) Decode(buf *bcbuf.Buffer, pver uint32) error {
	count, err := buf.GetVarIntStrict()
	if err != nil {
		return err
	}
	if count > maxHeadersPerMsg {
		return fmt.Errorf("headers message carries %d headers, max %d", count, maxHeadersPerMsg)
	}

	m.Headers = make([]*txmodel.BlockHeader, count)
	for i := uint64(0); i < count; i++ {
		h, err := txmodel.ParseBlockHeader(buf)
		if err != nil {
			return err
		}
		txCount, err := buf.GetUint8()
		if err != nil {
			return err
		}
		if txCount != 0 {
			return fmt.Errorf("headers entry carries a nonzero transaction count byte: %d", txCount)
		}
		m.Headers[i] = h
	}
	return nil
}
