package peer

import "github.com/satoshinet/p2pcore/wire"

// MessageListener is the capability a caller implements to observe a
// peer's traffic. OnMessage is called once per successfully parsed
// message, after the dispatcher's own handshake and ban-score
// bookkeeping for it has run. It is never called for a message that
// caused a disconnect.
type MessageListener interface {
	OnMessage(p *Peer, msg wire.Message)
}
