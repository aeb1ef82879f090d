package peer

import (
	"github.com/davecgh/go-spew/spew"

	"github.com/satoshinet/p2pcore/wire"
	"github.com/satoshinet/p2pcore/wireerr"
)

// HandleInbound parses one fully framed message and drives this
// peer's state machine, ban score, and Bloom filter slot accordingly.
// A non-nil reject is an outgoing reject message the caller should
// send back, built for a well-formed message that violates the
// handshake state machine; err is non-nil when the envelope or the
// payload could not be parsed, in which case the peer has already been
// marked DISCONNECTED.
func (p *Peer) HandleInbound(raw []byte) (reject *wire.MsgReject, err error) {
	msg, err := wire.ReadMessage(raw, p.ProtocolVersion(), p.Params.Net)
	if err != nil {
		// This library's wire.ReadMessage reports both a broken
		// envelope (bad magic, short header, bad checksum) and a
		// payload decode failure the same way: a non-nil error with
		// no recovered message. Without a partial message there is
		// nothing to build a reject around or hand to the listener,
		// so either case is treated as fatal here.
		p.mu.Lock()
		p.disconnect()
		p.mu.Unlock()
		return nil, err
	}

	if unknown, ok := msg.(*wire.MsgUnknown); ok {
		if p.Listener != nil {
			p.Listener.OnMessage(p, unknown)
		}
		return nil, nil
	}

	p.mu.Lock()
	violation := p.applyStateMachine(msg)
	p.mu.Unlock()

	if violation != nil {
		return wireerrToReject(msg.Command(), violation), nil
	}

	switch m := msg.(type) {
	case *wire.MsgFilterLoad:
		p.filterMu.Lock()
		p.filter = m.Filter
		p.filterMu.Unlock()
	case *wire.MsgFilterAdd:
		p.filterMu.Lock()
		if p.filter != nil {
			_ = p.filter.AddChecked(m.Data)
		}
		p.filterMu.Unlock()
	case *wire.MsgInv:
		for _, inv := range m.InvList {
			p.markKnown(inv.Hash)
		}
	default:
		if msg.Command() == wire.CmdFilterClear {
			p.filterMu.Lock()
			p.filter = nil
			p.filterMu.Unlock()
		}
	}

	log.Tracef("dispatched %s from %s:\n%v", msg.Command(), p.Addr, spew.Sdump(msg))

	if p.Listener != nil {
		p.Listener.OnMessage(p, msg)
	}
	return nil, nil
}

// applyStateMachine advances the handshake state machine for msg and
// returns a non-nil error if msg was a protocol violation worth
// reporting to the peer as a reject, recording ban score either way.
// Must be called with p.mu held.
func (p *Peer) applyStateMachine(msg wire.Message) error {
	switch v := msg.(type) {
	case *wire.MsgVersion:
		if p.state != StateNew && p.state != StateVersionSent {
			p.addBanScore(banScoreProtocolViolation)
			return wireerr.New(wireerr.KindInvalid, "version message received outside NEW/VERSION_SENT state")
		}
		if v.Nonce == processNonce {
			p.disconnect()
			return wireerr.New(wireerr.KindInvalid, "rejecting self-connection")
		}
		if uint32(v.ProtocolVersion) < p.Params.MinPeerProtocolVersion {
			p.addBanScore(banScoreDisconnect)
			return wireerr.Newf(wireerr.KindObsolete, "peer protocol version %d below minimum %d", v.ProtocolVersion, p.Params.MinPeerProtocolVersion)
		}
		if v.Services&wire.SFNodeNetwork == 0 {
			p.disconnect()
			return wireerr.New(wireerr.KindNonStandard, "peer lacks NODE_NETWORK service")
		}
		p.protocolVersion = uint32(v.ProtocolVersion)
		p.services = v.Services
		p.userAgent = v.UserAgent
		p.lastBlock = v.LastBlock
		p.state = StateVersionReceived
		return nil

	default:
		if msg.Command() == wire.CmdVerAck {
			if p.state != StateVersionReceived {
				p.addBanScore(banScoreProtocolViolation)
				return wireerr.New(wireerr.KindInvalid, "verack received outside VERSION_RECEIVED state")
			}
			p.state = StateReady
			return nil
		}
		if p.state == StateNew {
			p.addBanScore(banScoreProtocolViolation)
			return wireerr.Newf(wireerr.KindInvalid, "%s received before version", msg.Command())
		}
		return nil
	}
}

// wireerrToReject converts a protocol-violation error into the reject
// message the caller may choose to send back.
func wireerrToReject(command string, err error) *wire.MsgReject {
	code := wire.RejectInvalid
	if we, ok := err.(*wireerr.Error); ok {
		switch we.Kind {
		case wireerr.KindObsolete:
			code = wire.RejectObsolete
		case wireerr.KindMalformed:
			code = wire.RejectMalformed
		case wireerr.KindNonStandard:
			code = wire.RejectNonStandard
		}
	}
	return &wire.MsgReject{
		RejectedCommand: command,
		Code:            code,
		Reason:          err.Error(),
	}
}
