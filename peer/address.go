package peer

import (
	"fmt"
	"net"

	"github.com/satoshinet/p2pcore/wire"
)

// PeerAddress identifies a peer's endpoint and last-known services,
// independent of any live connection.
type PeerAddress struct {
	IP       net.IP
	Port     uint16
	Services wire.ServiceFlag
}

func (a PeerAddress) String() string {
	return fmt.Sprintf("%s:%d", a.IP, a.Port)
}

// ToNetAddress converts a into the wire form version/addr messages
// carry.
func (a PeerAddress) ToNetAddress() wire.NetAddress {
	return *wire.NewNetAddressIPPort(a.IP, a.Port, a.Services)
}
