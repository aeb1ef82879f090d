package wire

import (
	"fmt"
	"time"

	"github.com/satoshinet/p2pcore/bcbuf"
)

// maxAddrPerMsg is the protocol's cap on addresses in a single addr
// message.
const maxAddrPerMsg = 1000

// addrBuildCap is the lower cap this package applies when building an
// outgoing addr message; a real node has many more candidates than it
// should gossip in one message.
const addrBuildCap = 250

// addrMaxAge is the staleness threshold used both when filtering
// addresses to send and when filtering addresses just received.
const addrMaxAge = 15 * time.Minute

// MsgAddr announces a set of known peer addresses.
type MsgAddr struct {
	AddrList []*NetAddress
}

// NewMsgAddrFromCandidates builds an addr message from candidate
// addresses, dropping any older than addrMaxAge or flagged static, and
// capping the result at addrBuildCap entries.
func NewMsgAddrFromCandidates(candidates []*NetAddress, isStatic func(*NetAddress) bool, now time.Time) *MsgAddr {
	out := make([]*NetAddress, 0, addrBuildCap)
	cutoff := uint32(now.Add(-addrMaxAge).Unix())
	for _, na := range candidates {
		if len(out) >= addrBuildCap {
			break
		}
		if na.Timestamp < cutoff {
			continue
		}
		if isStatic != nil && isStatic(na) {
			continue
		}
		out = append(out, na)
	}
	return &MsgAddr{AddrList: out}
}

func (m *MsgAddr) Command() string { return CmdAddr }

func (m *MsgAddr) Encode(buf *bcbuf.Buffer, pver uint32) error {
	if len(m.AddrList) > maxAddrPerMsg {
		return addrErr(len(m.AddrList))
	}
	buf.PutVarInt(uint64(len(m.AddrList)))
	for _, na := range m.AddrList {
		encodeNetAddress(buf, na, true)
	}
	return nil
}

func (m *MsgAddr) Decode(buf *bcbuf.Buffer, pver uint32) error {
	count, err := buf.GetVarIntStrict()
	if err != nil {
		return err
	}
	if count > maxAddrPerMsg {
		return addrErr(int(count))
	}

	cutoff := uint32(time.Now().Add(-addrMaxAge).Unix())
	m.AddrList = make([]*NetAddress, 0, count)
	for i := uint64(0); i < count; i++ {
		na, err := decodeNetAddress(buf, true)
		if err != nil {
			return err
		}
		if na.Timestamp < cutoff {
			continue
		}
		m.AddrList = append(m.AddrList, na)
	}
	return nil
}

func addrErr(count int) error {
	return fmt.Errorf("addr message carries %d entries, max %d", count, maxAddrPerMsg)
}
