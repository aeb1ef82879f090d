// Package wire implements the Bitcoin peer-to-peer message envelope and
// the twenty-one concrete message payloads that travel inside it:
// framing, command dispatch, and per-command encode/decode against the
// shared bcbuf.Buffer cursor.
package wire

import (
	"fmt"
	"strconv"
	"strings"
)

// Protocol version milestones. A peer's negotiated version gates which
// optional fields and messages are legal to send it.
const (
	// ProtocolVersion is the latest protocol version this package speaks.
	ProtocolVersion uint32 = 70015

	// MultipleAddressVersion is the version from which an addr message
	// may carry more than one entry.
	MultipleAddressVersion uint32 = 209

	// NetAddressTimeVersion is the version from which a NetAddress
	// carries a leading timestamp field.
	NetAddressTimeVersion uint32 = 31402

	// BIP0031Version is the version after which ping carries a nonce and
	// pong exists at all.
	BIP0031Version uint32 = 60000

	// BIP0035Version is the version from which mempool exists.
	BIP0035Version uint32 = 60002

	// BIP0037Version is the version from which Bloom filtering
	// (filterload/filteradd/filterclear/merkleblock) and the version
	// message's relay flag exist. This package's minimum supported
	// version.
	BIP0037Version uint32 = 70001

	// RejectVersion is the version from which reject exists.
	RejectVersion uint32 = 70002
)

// ServiceFlag identifies services supported by a peer, advertised in
// version and addr.
type ServiceFlag uint64

const (
	// SFNodeNetwork means the peer can serve the full block chain.
	SFNodeNetwork ServiceFlag = 1 << iota

	// SFNodeGetUTXO means the peer supports the getutxos/utxos commands
	// (BIP0064). Not implemented by any handler in this package; the
	// flag exists so a peer can correctly report and recognize it.
	SFNodeGetUTXO

	// SFNodeBloom means the peer supports the Bloom-filter commands.
	SFNodeBloom

	// SFNodeWitness means the peer can serve witness-carrying blocks
	// and transactions (BIP0144). This package has no witness
	// serialization; the flag exists for peers to advertise accurately.
	SFNodeWitness
)

var sfStrings = map[ServiceFlag]string{
	SFNodeNetwork: "SFNodeNetwork",
	SFNodeGetUTXO: "SFNodeGetUTXO",
	SFNodeBloom:   "SFNodeBloom",
	SFNodeWitness: "SFNodeWitness",
}

var orderedSFStrings = []ServiceFlag{
	SFNodeNetwork,
	SFNodeGetUTXO,
	SFNodeBloom,
	SFNodeWitness,
}

// HasFlag reports whether f has every bit of s set.
func (f ServiceFlag) HasFlag(s ServiceFlag) bool {
	return f&s == s
}

// String returns f in human-readable form.
func (f ServiceFlag) String() string {
	if f == 0 {
		return "0x0"
	}
	s := ""
	for _, flag := range orderedSFStrings {
		if f&flag == flag {
			s += sfStrings[flag] + "|"
			f -= flag
		}
	}
	s = strings.TrimRight(s, "|")
	if f != 0 {
		s += "|0x" + strconv.FormatUint(uint64(f), 16)
	}
	return strings.TrimLeft(s, "|")
}

// BitcoinNet identifies which network a framed message belongs to; it is
// carried as the envelope's magic number.
type BitcoinNet uint32

const (
	// MainNet is the production Bitcoin network magic.
	MainNet BitcoinNet = 0xd9b4bef9

	// TestNet is the regression test network magic.
	TestNet BitcoinNet = 0xdab5bffa
)

var bnStrings = map[BitcoinNet]string{
	MainNet: "MainNet",
	TestNet: "TestNet",
}

// String returns n in human-readable form.
func (n BitcoinNet) String() string {
	if s, ok := bnStrings[n]; ok {
		return s
	}
	return fmt.Sprintf("Unknown BitcoinNet (%d)", uint32(n))
}
