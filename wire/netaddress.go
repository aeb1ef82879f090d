package wire

import (
	"encoding/binary"
	"net"

	"github.com/satoshinet/p2pcore/bcbuf"
)

// NetAddress is the wire form of a peer address: a 64-bit service
// bitfield, a 16-byte address (IPv4 addresses are carried IPv4-mapped),
// and a big-endian port. A leading 4-byte timestamp is present in every
// context except the two addresses embedded in a version message.
type NetAddress struct {
	Timestamp uint32
	Services  ServiceFlag
	IP        net.IP
	Port      uint16
}

// NewNetAddressIPPort builds a NetAddress from a plain IP and port.
func NewNetAddressIPPort(ip net.IP, port uint16, services ServiceFlag) *NetAddress {
	return &NetAddress{Services: services, IP: ip, Port: port}
}

func encodeNetAddress(buf *bcbuf.Buffer, na *NetAddress, withTimestamp bool) {
	if withTimestamp {
		buf.PutUint32LE(na.Timestamp)
	}
	buf.PutUint64LE(uint64(na.Services))

	var ip [16]byte
	if v4 := na.IP.To4(); v4 != nil {
		copy(ip[10:], []byte{0xff, 0xff})
		copy(ip[12:], v4)
	} else if v6 := na.IP.To16(); v6 != nil {
		copy(ip[:], v6)
	}
	buf.PutBytes(ip[:])

	var portBytes [2]byte
	binary.BigEndian.PutUint16(portBytes[:], na.Port)
	buf.PutBytes(portBytes[:])
}

func decodeNetAddress(buf *bcbuf.Buffer, withTimestamp bool) (*NetAddress, error) {
	na := &NetAddress{}
	if withTimestamp {
		ts, err := buf.GetUint32LE()
		if err != nil {
			return nil, err
		}
		na.Timestamp = ts
	}

	services, err := buf.GetUint64LE()
	if err != nil {
		return nil, err
	}
	na.Services = ServiceFlag(services)

	ipBytes, err := buf.GetBytes(16)
	if err != nil {
		return nil, err
	}
	ip := make(net.IP, 16)
	copy(ip, ipBytes)
	na.IP = ip

	portBytes, err := buf.GetBytes(2)
	if err != nil {
		return nil, err
	}
	na.Port = binary.BigEndian.Uint16(portBytes)

	return na, nil
}
