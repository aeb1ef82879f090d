package wire

import (
	"github.com/satoshinet/p2pcore/bcbuf"
	"github.com/satoshinet/p2pcore/wireerr"
)

const (
	maxAlertSetSize     = 1000
	maxAlertStringLen   = 65536
	maxAlertSignatureSz = 256
)

// alertPayload is the signed portion of an alert message: everything
// but the trailing signature. It is re-encoded on its own so a listener
// can verify the signature over exactly these bytes.
type alertPayload struct {
	Version     int32
	RelayUntil  int64
	Expiration  int64
	ID          int32
	Cancel      int32
	CancelSet   []int32
	MinVer      int32
	MaxVer      int32
	SubVerSet   []string
	Priority    int32
	Comment     string
	StatusBar   string
	Reserved    string
}

func (p *alertPayload) encode(buf *bcbuf.Buffer) error {
	buf.PutInt32LE(p.Version)
	buf.PutInt64LE(p.RelayUntil)
	buf.PutInt64LE(p.Expiration)
	buf.PutInt32LE(p.ID)
	buf.PutInt32LE(p.Cancel)
	buf.PutVarInt(uint64(len(p.CancelSet)))
	for _, id := range p.CancelSet {
		buf.PutInt32LE(id)
	}
	buf.PutInt32LE(p.MinVer)
	buf.PutInt32LE(p.MaxVer)
	buf.PutVarInt(uint64(len(p.SubVerSet)))
	for _, sv := range p.SubVerSet {
		buf.PutVarString(sv)
	}
	buf.PutInt32LE(p.Priority)
	buf.PutVarString(p.Comment)
	buf.PutVarString(p.StatusBar)
	buf.PutVarString(p.Reserved)
	return nil
}

func (p *alertPayload) decode(buf *bcbuf.Buffer) error {
	var err error
	if p.Version, err = buf.GetInt32LE(); err != nil {
		return err
	}
	if p.RelayUntil, err = buf.GetInt64LE(); err != nil {
		return err
	}
	if p.Expiration, err = buf.GetInt64LE(); err != nil {
		return err
	}
	if p.ID, err = buf.GetInt32LE(); err != nil {
		return err
	}
	if p.Cancel, err = buf.GetInt32LE(); err != nil {
		return err
	}

	cancelCount, err := buf.GetVarIntStrict()
	if err != nil {
		return err
	}
	if cancelCount > maxAlertSetSize {
		return errTooManyAlertEntries("cancel set", cancelCount, maxAlertSetSize)
	}
	p.CancelSet = make([]int32, cancelCount)
	for i := range p.CancelSet {
		if p.CancelSet[i], err = buf.GetInt32LE(); err != nil {
			return err
		}
	}

	if p.MinVer, err = buf.GetInt32LE(); err != nil {
		return err
	}
	if p.MaxVer, err = buf.GetInt32LE(); err != nil {
		return err
	}

	subVerCount, err := buf.GetVarIntStrict()
	if err != nil {
		return err
	}
	if subVerCount > maxAlertSetSize {
		return errTooManyAlertEntries("sub-version set", subVerCount, maxAlertSetSize)
	}
	p.SubVerSet = make([]string, subVerCount)
	for i := range p.SubVerSet {
		if p.SubVerSet[i], err = buf.GetVarString(maxAlertStringLen); err != nil {
			return err
		}
	}

	if p.Priority, err = buf.GetInt32LE(); err != nil {
		return err
	}
	if p.Comment, err = buf.GetVarString(maxAlertStringLen); err != nil {
		return err
	}
	if p.StatusBar, err = buf.GetVarString(maxAlertStringLen); err != nil {
		return err
	}
	if p.Reserved, err = buf.GetVarString(maxAlertStringLen); err != nil {
		return err
	}
	return nil
}

func errTooManyAlertEntries(what string, got uint64, max int) error {
	return wireerr.Newf(wireerr.KindMalformed, "alert %s carries %d entries, max %d", what, got, max)
}

// MsgAlert is the now-retired broadcast alert system: a signed payload
// plus a detached signature. This package decodes the structure but
// leaves signature verification to the listener holding the network's
// alert public key, per the upstream convention of treating an
// unverified alert as advisory only.
type MsgAlert struct {
	Payload   alertPayload
	Signature []byte
}

func (m *MsgAlert) Command() string { return CmdAlert }

func (m *MsgAlert) Encode(buf *bcbuf.Buffer, pver uint32) error {
	payload := bcbuf.NewWriteBuffer(256)
	if err := m.Payload.encode(payload); err != nil {
		return err
	}
	buf.PutVarBytes(payload.Bytes())
	buf.PutVarBytes(m.Signature)
	return nil
}

func (m *MsgAlert) Decode(buf *bcbuf.Buffer, pver uint32) error {
	payloadBytes, err := buf.GetVarBytes(maxAlertStringLen)
	if err != nil {
		return err
	}
	if err := m.Payload.decode(bcbuf.NewBuffer(payloadBytes)); err != nil {
		return err
	}
	sig, err := buf.GetVarBytes(maxAlertSignatureSz)
	if err != nil {
		return err
	}
	m.Signature = sig
	return nil
}
