package wire

import "github.com/satoshinet/p2pcore/bcbuf"

// maxInvPerMsg bounds inv and notfound.
const maxInvPerMsg = 1000

// maxGetDataPerMsg bounds getdata, which legitimately requests more
// items per message than an unsolicited inv announces.
const maxGetDataPerMsg = 50000

// MsgInv announces inventory the sender has available.
type MsgInv struct {
	InvList []InvVect
}

func (m *MsgInv) Command() string { return CmdInv }

func (m *MsgInv) Encode(buf *bcbuf.Buffer, pver uint32) error {
	encodeInvList(buf, m.InvList)
	return nil
}

func (m *MsgInv) Decode(buf *bcbuf.Buffer, pver uint32) error {
	items, err := decodeInvList(buf, maxInvPerMsg)
	if err != nil {
		return err
	}
	m.InvList = items
	return nil
}

// MsgGetData requests the full data for a list of previously announced
// inventory items.
type MsgGetData struct {
	InvList []InvVect
}

func (m *MsgGetData) Command() string { return CmdGetData }

func (m *MsgGetData) Encode(buf *bcbuf.Buffer, pver uint32) error {
	encodeInvList(buf, m.InvList)
	return nil
}

func (m *MsgGetData) Decode(buf *bcbuf.Buffer, pver uint32) error {
	items, err := decodeInvList(buf, maxGetDataPerMsg)
	if err != nil {
		return err
	}
	m.InvList = items
	return nil
}

// MsgNotFound reports inventory items a getdata requested that the
// sender could not supply.
type MsgNotFound struct {
	InvList []InvVect
}

func (m *MsgNotFound) Command() string { return CmdNotFound }

func (m *MsgNotFound) Encode(buf *bcbuf.Buffer, pver uint32) error {
	encodeInvList(buf, m.InvList)
	return nil
}

// Decode reads notfound's count as a var-int, per the protocol. (One
// source variant reads it as a fixed 32-bit integer; the protocol
// specifies variable-length, so that's what is implemented here.)
func (m *MsgNotFound) Decode(buf *bcbuf.Buffer, pver uint32) error {
	items, err := decodeInvList(buf, maxInvPerMsg)
	if err != nil {
		return err
	}
	m.InvList = items
	return nil
}
