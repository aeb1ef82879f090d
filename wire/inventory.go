package wire

import (
	"fmt"

	"github.com/satoshinet/p2pcore/bcbuf"
	"github.com/satoshinet/p2pcore/chainhash"
)

// InvType identifies what an InvVect's hash refers to.
type InvType uint32

const (
	InvError         InvType = 0
	InvTx            InvType = 1
	InvBlock         InvType = 2
	InvFilteredBlock InvType = 3
)

func (t InvType) String() string {
	switch t {
	case InvError:
		return "ERROR"
	case InvTx:
		return "MSG_TX"
	case InvBlock:
		return "MSG_BLOCK"
	case InvFilteredBlock:
		return "MSG_FILTERED_BLOCK"
	default:
		return fmt.Sprintf("Unknown InvType (%d)", uint32(t))
	}
}

// InvVect is an inventory item: a (type, hash) pair used by inv,
// getdata, and notfound to advertise or request a transaction or block.
type InvVect struct {
	Type InvType
	Hash chainhash.Hash
}

func encodeInvVect(buf *bcbuf.Buffer, iv *InvVect) {
	buf.PutUint32LE(uint32(iv.Type))
	buf.PutBytes(bcbuf.Reverse(iv.Hash[:]))
}

func decodeInvVect(buf *bcbuf.Buffer) (InvVect, error) {
	var iv InvVect
	t, err := buf.GetUint32LE()
	if err != nil {
		return iv, err
	}
	iv.Type = InvType(t)

	raw, err := buf.GetBytes(chainhash.HashSize)
	if err != nil {
		return iv, err
	}
	hash, err := chainhash.NewHash(bcbuf.Reverse(raw))
	if err != nil {
		return iv, err
	}
	iv.Hash = hash
	return iv, nil
}

// encodeInvList writes a var-int count followed by each InvVect.
func encodeInvList(buf *bcbuf.Buffer, items []InvVect) {
	buf.PutVarInt(uint64(len(items)))
	for i := range items {
		encodeInvVect(buf, &items[i])
	}
}

// decodeInvList reads a var-int count, capped at max, followed by that
// many InvVects.
func decodeInvList(buf *bcbuf.Buffer, max uint64) ([]InvVect, error) {
	count, err := buf.GetVarIntStrict()
	if err != nil {
		return nil, err
	}
	if count > max {
		return nil, fmt.Errorf("inventory list count %d exceeds max %d", count, max)
	}
	items := make([]InvVect, count)
	for i := range items {
		iv, err := decodeInvVect(buf)
		if err != nil {
			return nil, err
		}
		items[i] = iv
	}
	return items, nil
}
