package chaincfg

import (
	"errors"
	"math/big"

	"github.com/satoshinet/p2pcore/chainhash"
	"github.com/satoshinet/p2pcore/txmodel"
	"github.com/satoshinet/p2pcore/wire"
)

// bigOne is 1 as a big.Int, defined once to avoid reallocating it.
var bigOne = big.NewInt(1)

// mainPowLimit is the highest allowed proof-of-work target on the
// production network: 2^224 - 1.
var mainPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 224), bigOne)

// testPowLimit is the highest allowed proof-of-work target on the test
// network: 2^255 - 1, the same permissive limit regtest-style networks
// use so a test miner never has to do real work.
var testPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne)

// Params is the fixed set of network-identifying values a peer must
// agree on before a handshake can succeed: the wire magic, address and
// WIF version bytes, HD extended key version bytes, genesis block, and
// proof-of-work limit. Exactly one of MainNetParams or TestNetParams is
// selected process-wide by the configuration loader before any handler
// runs.
type Params struct {
	Name        string
	Net         wire.BitcoinNet
	DefaultPort string

	GenesisBlock *txmodel.Block
	GenesisHash  chainhash.Hash

	PowLimit     *big.Int
	PowLimitBits uint32

	// PubKeyHashAddrID is the first byte of a Base58Check P2PKH
	// address; ScriptHashAddrID the same for P2SH; PrivateKeyID the
	// first byte of a WIF-encoded private key.
	PubKeyHashAddrID byte
	ScriptHashAddrID byte
	PrivateKeyID     byte

	// HDPrivateKeyID and HDPublicKeyID are the four-byte version
	// prefixes of a BIP32 extended private/public key.
	HDPrivateKeyID [4]byte
	HDPublicKeyID  [4]byte

	// MinPeerProtocolVersion is the lowest wire.ProtocolVersion this
	// network will accept in a peer's version message before
	// disconnecting it as KindObsolete.
	MinPeerProtocolVersion uint32
}

// ErrDuplicateNet is returned by Register when the network's magic is
// already registered, either because it is one of this package's two
// built-in networks or because of an earlier Register call.
var ErrDuplicateNet = errors.New("chaincfg: duplicate network")

var registeredNets = make(map[wire.BitcoinNet]*Params)

// Register adds params to the set of known networks, keyed by its
// magic. Network parameters should be registered as early as possible,
// ordinarily from an init function or the configuration loader, before
// any handler that might look a network up by magic runs.
func Register(params *Params) error {
	if _, ok := registeredNets[params.Net]; ok {
		return ErrDuplicateNet
	}
	registeredNets[params.Net] = params
	return nil
}

// mustRegister is Register but panics on error; only safe to call from
// an init function with a hard-coded, known-good Params.
func mustRegister(params *Params) {
	if err := Register(params); err != nil {
		panic("chaincfg: failed to register " + params.Name + ": " + err.Error())
	}
}

// Lookup returns the registered Params for the given wire magic, or
// false if no network was registered under it.
func Lookup(net wire.BitcoinNet) (*Params, bool) {
	p, ok := registeredNets[net]
	return p, ok
}

// MainNetParams is the production Bitcoin network: magic 0xd9b4bef9,
// address version 0, WIF version 128, compact target ceiling
// 0x1d00ffff.
var MainNetParams = Params{
	Name:        "mainnet",
	Net:         wire.MainNet,
	DefaultPort: "8333",

	GenesisBlock: mainNetGenesisBlock,
	GenesisHash:  mainNetGenesisBlock.Header.Hash,

	PowLimit:     mainPowLimit,
	PowLimitBits: 0x1d00ffff,

	PubKeyHashAddrID: 0x00,
	ScriptHashAddrID: 0x05,
	PrivateKeyID:     0x80,

	HDPrivateKeyID: [4]byte{0x04, 0x88, 0xad, 0xe4}, // xprv
	HDPublicKeyID:  [4]byte{0x04, 0x88, 0xb2, 0x1e}, // xpub

	MinPeerProtocolVersion: wire.BIP0037Version,
}

// TestNetParams is the test network: magic 0xdab5bffa, address version
// 111, WIF version 239, compact target ceiling 0x207fffff (the
// permissive regtest-style limit, so test miners never do real work).
var TestNetParams = Params{
	Name:        "testnet",
	Net:         wire.TestNet,
	DefaultPort: "18333",

	GenesisBlock: testNetGenesisBlock,
	GenesisHash:  testNetGenesisBlock.Header.Hash,

	PowLimit:     testPowLimit,
	PowLimitBits: 0x207fffff,

	PubKeyHashAddrID: 0x6f,
	ScriptHashAddrID: 0xc4,
	PrivateKeyID:     0xef,

	HDPrivateKeyID: [4]byte{0x04, 0x35, 0x83, 0x94}, // tprv
	HDPublicKeyID:  [4]byte{0x04, 0x35, 0x87, 0xcf}, // tpub

	MinPeerProtocolVersion: wire.BIP0037Version,
}

func init() {
	mustRegister(&MainNetParams)
	mustRegister(&TestNetParams)
}
