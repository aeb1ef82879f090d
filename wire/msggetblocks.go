package wire

import (
	"fmt"

	"github.com/satoshinet/p2pcore/bcbuf"
	"github.com/satoshinet/p2pcore/chainhash"
)

// maxBlockLocatorsPerMsg bounds getblocks and getheaders.
const maxBlockLocatorsPerMsg = 500

func encodeLocator(buf *bcbuf.Buffer, protoVer uint32, hashes []chainhash.Hash, stop chainhash.Hash) error {
	if len(hashes) > maxBlockLocatorsPerMsg {
		return fmt.Errorf("block locator carries %d hashes, max %d", len(hashes), maxBlockLocatorsPerMsg)
	}
	buf.PutUint32LE(protoVer)
	buf.PutVarInt(uint64(len(hashes)))
	for _, h := range hashes {
		buf.PutBytes(bcbuf.Reverse(h[:]))
	}
	buf.PutBytes(bcbuf.Reverse(stop[:]))
	return nil
}

func decodeLocator(buf *bcbuf.Buffer) (protoVer uint32, hashes []chainhash.Hash, stop chainhash.Hash, err error) {
	protoVer, err = buf.GetUint32LE()
	if err != nil {
		return
	}

	count, err := buf.GetVarIntStrict()
	if err != nil {
		return
	}
	if count > maxBlockLocatorsPerMsg {
		err = fmt.Errorf("block locator carries %d hashes, max %d", count, maxBlockLocatorsPerMsg)
		return
	}

	hashes = make([]chainhash.Hash, count)
	for i := range hashes {
		raw, gerr := buf.GetBytes(chainhash.HashSize)
		if gerr != nil {
			err = gerr
			return
		}
		h, herr := chainhash.NewHash(bcbuf.Reverse(raw))
		if herr != nil {
			err = herr
			return
		}
		hashes[i] = h
	}

	raw, gerr := buf.GetBytes(chainhash.HashSize)
	if gerr != nil {
		err = gerr
		return
	}
	stop, err = chainhash.NewHash(bcbuf.Reverse(raw))
	return
}

// MsgGetBlocks requests an inv listing block hashes following the last
// common ancestor found in Locator.
type MsgGetBlocks struct {
	ProtocolVersion uint32
	Locator         []chainhash.Hash
	StopHash        chainhash.Hash
}

func (m *MsgGetBlocks) Command() string { return CmdGetBlocks }

func (m *MsgGetBlocks) Encode(buf *bcbuf.Buffer, pver uint32) error {
	return encodeLocator(buf, m.ProtocolVersion, m.Locator, m.StopHash)
}

func (m *MsgGetBlocks) Decode(buf *bcbuf.Buffer, pver uint32) error {
	protoVer, hashes, stop, err := decodeLocator(buf)
	if err != nil {
		return err
	}
	m.ProtocolVersion, m.Locator, m.StopHash = protoVer, hashes, stop
	return nil
}

// MsgGetHeaders requests a headers message following the last common
// ancestor found in Locator. Same wire shape as getblocks.
type MsgGetHeaders struct {
	ProtocolVersion uint32
	Locator         []chainhash.Hash
	StopHash        chainhash.Hash
}

func (m *MsgGetHeaders) Command() string { return CmdGetHeaders }

func (m *MsgGetHeaders) Encode(buf *bcbuf.Buffer, pver uint32) error {
	return encodeLocator(buf, m.ProtocolVersion, m.Locator, m.StopHash)
}

func (m *MsgGetHeaders) Decode(buf *bcbuf.Buffer, pver uint32) error {
	protoVer, hashes, stop, err := decodeLocator(buf)
	if err != nil {
		return err
	}
	m.ProtocolVersion, m.Locator, m.StopHash = protoVer, hashes, stop
	return nil
}
