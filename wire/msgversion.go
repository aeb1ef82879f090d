package wire

import (
	"github.com/satoshinet/p2pcore/bcbuf"
)

// maxUserAgentLen bounds the version message's var-string user agent.
const maxUserAgentLen = 255

// MsgVersion is the first message either side of a connection sends;
// it negotiates protocol version, advertises services, and identifies
// the two endpoints.
type MsgVersion struct {
	ProtocolVersion int32
	Services        ServiceFlag
	Timestamp       int64
	AddrRecv        NetAddress
	AddrFrom        NetAddress
	Nonce           uint64
	UserAgent       string
	LastBlock       int32

	// DisableRelayTx is the inverse of the wire tx-relay byte: when
	// true, this peer asks not to be sent inv announcements for
	// mempool transactions. Exposed as an explicit build parameter
	// rather than derived from Services, which conflates "can relay"
	// with "wants to be relayed to".
	DisableRelayTx bool

	// HasRelayTxField records whether a tx-relay byte was actually
	// present on the wire; it is absent for peers below BIP0037Version,
	// and parsing tolerates its absence.
	HasRelayTxField bool
}

// NewMsgVersion builds a version message advertising the given identity.
func NewMsgVersion(addrRecv, addrFrom NetAddress, nonce uint64, lastBlock int32, wantsTxRelay bool) *MsgVersion {
	return &MsgVersion{
		ProtocolVersion: int32(ProtocolVersion),
		AddrRecv:        addrRecv,
		AddrFrom:        addrFrom,
		Nonce:           nonce,
		UserAgent:       "/p2pcore:0.1.0/",
		LastBlock:       lastBlock,
		DisableRelayTx:  !wantsTxRelay,
		HasRelayTxField: true,
	}
}

func (m *MsgVersion) Command() string { return CmdVersion }

func (m *MsgVersion) Encode(buf *bcbuf.Buffer, pver uint32) error {
	buf.PutInt32LE(m.ProtocolVersion)
	buf.PutUint64LE(uint64(m.Services))
	buf.PutInt64LE(m.Timestamp)
	encodeNetAddress(buf, &m.AddrRecv, false)
	encodeNetAddress(buf, &m.AddrFrom, false)
	buf.PutUint64LE(m.Nonce)
	buf.PutVarString(m.UserAgent)
	buf.PutInt32LE(m.LastBlock)
	if uint32(m.ProtocolVersion) >= BIP0037Version {
		relay := byte(1)
		if m.DisableRelayTx {
			relay = 0
		}
		buf.PutUint8(relay)
	}
	return nil
}

func (m *MsgVersion) Decode(buf *bcbuf.Buffer, pver uint32) error {
	protoVer, err := buf.GetInt32LE()
	if err != nil {
		return err
	}
	m.ProtocolVersion = protoVer

	services, err := buf.GetUint64LE()
	if err != nil {
		return err
	}
	m.Services = ServiceFlag(services)

	ts, err := buf.GetInt64LE()
	if err != nil {
		return err
	}
	m.Timestamp = ts

	recv, err := decodeNetAddress(buf, false)
	if err != nil {
		return err
	}
	m.AddrRecv = *recv

	from, err := decodeNetAddress(buf, false)
	if err != nil {
		return err
	}
	m.AddrFrom = *from

	nonce, err := buf.GetUint64LE()
	if err != nil {
		return err
	}
	m.Nonce = nonce

	userAgent, err := buf.GetVarString(maxUserAgentLen)
	if err != nil {
		return err
	}
	m.UserAgent = userAgent

	lastBlock, err := buf.GetInt32LE()
	if err != nil {
		return err
	}
	m.LastBlock = lastBlock

	// The tx-relay byte is absent on older peers; its absence is not a
	// parse failure.
	if buf.Remaining() > 0 {
		relay, err := buf.GetUint8()
		if err != nil {
			return err
		}
		m.DisableRelayTx = relay == 0
		m.HasRelayTxField = true
	} else {
		m.DisableRelayTx = false
		m.HasRelayTxField = false
	}

	return nil
}
