// Package peer implements the per-connection dispatcher: handshake
// state machine, ban score, known-inventory deduplication, and the
// mutex-protected Bloom filter slot a peer's filterload/filteradd/
// filterclear handlers share with concurrent outgoing message
// construction.
package peer

import (
	"crypto/rand"
	"encoding/binary"
	"sync"

	"github.com/decred/dcrd/lru"

	"github.com/satoshinet/p2pcore/bloom"
	"github.com/satoshinet/p2pcore/chaincfg"
	"github.com/satoshinet/p2pcore/chainhash"
	"github.com/satoshinet/p2pcore/wire"
	"github.com/satoshinet/p2pcore/wireerr"
)

// Ban score increments. A peer whose accumulated score reaches
// banScoreDisconnect is marked DISCONNECTED.
const (
	banScoreDisconnect        = 100
	banScoreProtocolViolation = 10

	maxKnownInventory = 5000
)

// processNonce is generated once per process and embedded in every
// outgoing version message, so a connection back to ourselves (e.g.
// over a loopback listener) can be recognized and dropped.
var processNonce = func() uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("peer: failed to seed process nonce: " + err.Error())
	}
	return binary.LittleEndian.Uint64(b[:])
}()

// Peer tracks one connection's handshake progress, ban score,
// known-inventory set, and Bloom filter. It does not itself perform
// I/O: callers feed it inbound bytes via HandleInbound and send
// whatever it returns.
type Peer struct {
	Addr     PeerAddress
	Params   *chaincfg.Params
	Outbound bool
	Listener MessageListener

	mu              sync.Mutex
	state           State
	banScore        int
	protocolVersion uint32
	services        wire.ServiceFlag
	userAgent       string
	lastBlock       int32

	knownInv *lru.Cache

	filterMu sync.Mutex
	filter   *bloom.Filter
}

// New constructs a Peer at StateNew, ready to build or receive a
// version message.
func New(addr PeerAddress, params *chaincfg.Params, outbound bool, listener MessageListener) *Peer {
	return &Peer{
		Addr:            addr,
		Params:          params,
		Outbound:        outbound,
		Listener:        listener,
		protocolVersion: wire.ProtocolVersion,
		knownInv:        lru.NewCache(maxKnownInventory),
	}
}

// State returns the peer's current handshake state.
func (p *Peer) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// BanScore returns the peer's accumulated ban score.
func (p *Peer) BanScore() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.banScore
}

// Disconnected reports whether the peer has been marked for
// disconnect, either by ban score or a broken envelope.
func (p *Peer) Disconnected() bool {
	return p.State() == StateDisconnected
}

// ProtocolVersion, Services, UserAgent, and LastBlock return the
// values learned from the peer's version message. Until
// VERSION_RECEIVED, ProtocolVersion is wire.ProtocolVersion and the
// others are zero.
func (p *Peer) ProtocolVersion() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.protocolVersion
}

func (p *Peer) Services() wire.ServiceFlag {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.services
}

func (p *Peer) UserAgent() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.userAgent
}

func (p *Peer) LastBlock() int32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastBlock
}

// addBanScore increases the peer's ban score by delta and, if it has
// reached the disconnect threshold, marks it DISCONNECTED. Must be
// called with p.mu held.
func (p *Peer) addBanScore(delta int) {
	p.banScore += delta
	if p.banScore >= banScoreDisconnect {
		p.state = StateDisconnected
	}
}

// disconnect marks the peer DISCONNECTED outright, for failures (bad
// magic, short header, bad checksum) that are fatal regardless of
// accumulated score.
func (p *Peer) disconnect() {
	p.state = StateDisconnected
	p.banScore = banScoreDisconnect
}

// BuildVersion constructs this peer's outgoing version message. Called
// from StateNew (the initiating side, before the peer's own version
// has arrived), it advances to StateVersionSent. Called from
// StateVersionReceived (the responding side, answering a version it
// has already received), the state is left unchanged since the
// handshake has already progressed further than VERSION_SENT. It
// fails from any other state, so a repeat call after StateNew fails; a
// repeat call from StateVersionReceived succeeds again.
func (p *Peer) BuildVersion(recv PeerAddress, userAgent string, lastBlock int32, services wire.ServiceFlag, wantsTxRelay bool) (*wire.MsgVersion, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateNew && p.state != StateVersionReceived {
		return nil, wireerr.Newf(wireerr.KindInvalid, "cannot build version from state %s", p.state)
	}

	msg := wire.NewMsgVersion(recv.ToNetAddress(), p.Addr.ToNetAddress(), processNonce, lastBlock, wantsTxRelay)
	msg.Services = services
	msg.UserAgent = userAgent

	if p.state == StateNew {
		p.state = StateVersionSent
	}
	return msg, nil
}

// markKnown records hash as known-to-this-peer inventory, so a future
// inv relay doesn't re-announce it.
func (p *Peer) markKnown(hash chainhash.Hash) {
	p.knownInv.Add(hash)
}

// KnowsInventory reports whether hash has already been seen by or
// announced to this peer.
func (p *Peer) KnowsInventory(hash chainhash.Hash) bool {
	return p.knownInv.Contains(hash)
}

// Filter returns a snapshot of the peer's current Bloom filter, or nil
// if none has been loaded.
func (p *Peer) Filter() *bloom.Filter {
	p.filterMu.Lock()
	defer p.filterMu.Unlock()
	return p.filter
}
