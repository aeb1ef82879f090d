package wire

import (
	"github.com/satoshinet/p2pcore/bcbuf"
	"github.com/satoshinet/p2pcore/chainhash"
)

// RejectCode classifies why a peer rejected a prior message.
type RejectCode uint8

const (
	RejectMalformed       RejectCode = 0x01
	RejectInvalid         RejectCode = 0x10
	RejectObsolete        RejectCode = 0x11
	RejectDuplicate       RejectCode = 0x12
	RejectNonStandard     RejectCode = 0x40
	RejectDust            RejectCode = 0x41
	RejectInsufficientFee RejectCode = 0x42
	RejectCheckpoint      RejectCode = 0x43
)

const (
	maxRejectCommandLen = CommandSize
	maxRejectReasonLen  = 255
)

// MsgReject reports that a previously received message was refused, and
// why. Hash is only populated when Command names tx or block; it is the
// zero hash otherwise.
type MsgReject struct {
	RejectedCommand string
	Code            RejectCode
	Reason          string
	Hash            chainhash.Hash
}

func (m *MsgReject) Command() string { return CmdReject }

func (m *MsgReject) Encode(buf *bcbuf.Buffer, pver uint32) error {
	buf.PutVarString(m.RejectedCommand)
	buf.PutUint8(uint8(m.Code))
	buf.PutVarString(m.Reason)
	if m.RejectedCommand == CmdTx || m.RejectedCommand == CmdBlock {
		buf.PutBytes(bcbuf.Reverse(m.Hash[:]))
	}
	return nil
}

func (m *MsgReject) Decode(buf *bcbuf.Buffer, pver uint32) error {
	cmd, err := buf.GetVarString(maxRejectCommandLen)
	if err != nil {
		return err
	}
	m.RejectedCommand = cmd

	code, err := buf.GetUint8()
	if err != nil {
		return err
	}
	m.Code = RejectCode(code)

	reason, err := buf.GetVarString(maxRejectReasonLen)
	if err != nil {
		return err
	}
	m.Reason = reason

	if cmd == CmdTx || cmd == CmdBlock {
		raw, err := buf.GetBytes(chainhash.HashSize)
		if err != nil {
			return err
		}
		h, err := chainhash.NewHash(bcbuf.Reverse(raw))
		if err != nil {
			return err
		}
		m.Hash = h
	}
	return nil
}
