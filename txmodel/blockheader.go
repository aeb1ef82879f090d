package txmodel

import (
	"math/big"
	"time"

	"github.com/satoshinet/p2pcore/bcbuf"
	"github.com/satoshinet/p2pcore/chainhash"
	"github.com/satoshinet/p2pcore/wireerr"
)

// maxFutureDrift bounds how far a header's timestamp may sit ahead of
// the local clock before it's rejected.
const maxFutureDrift = 2 * time.Hour

// blockHeaderSize is the fixed wire size of everything ValidateProofOfWork
// checks: version, prev hash, merkle root, time, bits, nonce.
const blockHeaderSize = 80

// BlockHeader is a parsed block header plus the chain-position metadata
// a full node tracks alongside it: whether it's on the active chain, its
// height, and cumulative work. MatchedTxHashes is populated only when
// the header arrived inside a merkleblock message.
type BlockHeader struct {
	Version    int32
	PrevBlock  chainhash.Hash
	MerkleRoot chainhash.Hash
	Timestamp  int64
	Bits       uint32
	Nonce      uint32

	Hash            chainhash.Hash
	OnChain         bool
	Height          int32
	ChainWork       *big.Int
	MatchedTxHashes []chainhash.Hash
}

// ParseBlockHeader decodes the fixed 80-byte header from buf and
// computes its hash. It does not validate proof-of-work; call
// ValidateProofOfWork separately once the network's target limit is
// known.
func ParseBlockHeader(buf *bcbuf.Buffer) (*BlockHeader, error) {
	start := buf.Pos()

	version, err := buf.GetInt32LE()
	if err != nil {
		return nil, err
	}
	prevBytes, err := buf.GetBytes(chainhash.HashSize)
	if err != nil {
		return nil, err
	}
	prev, err := chainhash.NewHash(bcbuf.Reverse(prevBytes))
	if err != nil {
		return nil, err
	}
	rootBytes, err := buf.GetBytes(chainhash.HashSize)
	if err != nil {
		return nil, err
	}
	root, err := chainhash.NewHash(bcbuf.Reverse(rootBytes))
	if err != nil {
		return nil, err
	}
	ts, err := buf.GetUint32LE()
	if err != nil {
		return nil, err
	}
	bits, err := buf.GetUint32LE()
	if err != nil {
		return nil, err
	}
	nonce, err := buf.GetUint32LE()
	if err != nil {
		return nil, err
	}

	raw := buf.Bytes()[start:buf.Pos()]
	hash := chainhash.DoubleSum(raw).Reversed()

	return &BlockHeader{
		Version:    version,
		PrevBlock:  prev,
		MerkleRoot: root,
		Timestamp:  int64(ts),
		Bits:       bits,
		Nonce:      nonce,
		Hash:       hash,
	}, nil
}

// Serialize encodes the header's fixed 80-byte wire form.
func (h *BlockHeader) Serialize() []byte {
	buf := bcbuf.NewWriteBuffer(blockHeaderSize)
	buf.PutInt32LE(h.Version)
	buf.PutBytes(bcbuf.Reverse(h.PrevBlock[:]))
	buf.PutBytes(bcbuf.Reverse(h.MerkleRoot[:]))
	buf.PutUint32LE(uint32(h.Timestamp))
	buf.PutUint32LE(h.Bits)
	buf.PutUint32LE(h.Nonce)
	return buf.Bytes()
}

// ValidateProofOfWork checks the header's target is within (0, powLimit]
// and that the header's hash, read as a big-endian integer, does not
// exceed that target. It also rejects timestamps more than two hours
// ahead of now.
func ValidateProofOfWork(h *BlockHeader, powLimit *big.Int, now time.Time) error {
	target := CompactToBig(h.Bits)
	if target.Sign() <= 0 {
		return wireerr.New(wireerr.KindInvalid, "block target is non-positive")
	}
	if target.Cmp(powLimit) > 0 {
		return wireerr.New(wireerr.KindInvalid, "block target exceeds network proof-of-work limit")
	}
	if h.Hash.Big().Cmp(target) > 0 {
		return wireerr.New(wireerr.KindInvalid, "block hash is above target difficulty")
	}
	if h.Timestamp > now.Add(maxFutureDrift).Unix() {
		return wireerr.New(wireerr.KindInvalid, "block timestamp too far in the future")
	}
	return nil
}
