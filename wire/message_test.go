package wire

import (
	"testing"

	"github.com/satoshinet/p2pcore/chainhash"
	"github.com/stretchr/testify/require"
)

func TestZeroLengthPayloadChecksum(t *testing.T) {
	require.Equal(t, [4]byte{0x5d, 0xf6, 0xe0, 0xe2}, zeroChecksum)
}

func TestWriteReadMessageRoundTrip(t *testing.T) {
	msg := &MsgPing{Nonce: 0x0123456789ABCDEF}
	raw, err := WriteMessage(msg, ProtocolVersion, MainNet)
	require.NoError(t, err)

	got, err := ReadMessage(raw, ProtocolVersion, MainNet)
	require.NoError(t, err)
	require.Equal(t, msg, got)
}

func TestReadMessageRejectsWrongMagic(t *testing.T) {
	msg := &MsgPing{Nonce: 1}
	raw, err := WriteMessage(msg, ProtocolVersion, MainNet)
	require.NoError(t, err)

	_, err = ReadMessage(raw, ProtocolVersion, TestNet)
	require.Error(t, err)
}

func TestReadMessageRejectsBadChecksum(t *testing.T) {
	msg := &MsgPing{Nonce: 1}
	raw, err := WriteMessage(msg, ProtocolVersion, MainNet)
	require.NoError(t, err)

	raw[len(raw)-1] ^= 0xff
	_, err = ReadMessage(raw, ProtocolVersion, MainNet)
	require.Error(t, err)
}

func TestReadMessageRejectsTruncatedHeader(t *testing.T) {
	_, err := ReadMessage([]byte{0x01, 0x02, 0x03}, ProtocolVersion, MainNet)
	require.Error(t, err)
}

func TestReadMessageReportsUnknownCommandWithoutError(t *testing.T) {
	raw, err := WriteMessage(newEmptyMessage("notarealcmd"), ProtocolVersion, MainNet)
	require.NoError(t, err)

	got, err := ReadMessage(raw, ProtocolVersion, MainNet)
	require.NoError(t, err)
	unk, ok := got.(*MsgUnknown)
	require.True(t, ok)
	require.Equal(t, "notarealcmd", unk.CommandName)
}

func TestReadMessageRejectsOversizedLength(t *testing.T) {
	msg := &MsgPing{Nonce: 1}
	raw, err := WriteMessage(msg, ProtocolVersion, MainNet)
	require.NoError(t, err)

	// Corrupt the declared length field to claim a payload larger than
	// the cap.
	raw[16] = 0xff
	raw[17] = 0xff
	raw[18] = 0xff
	raw[19] = 0x7f
	_, err = ReadMessage(raw, ProtocolVersion, MainNet)
	require.Error(t, err)
}

func TestVersionMessageEndToEnd(t *testing.T) {
	recv := sampleNetAddress()
	from := sampleNetAddress()
	msg := NewMsgVersion(recv, from, 0, 0, true)
	msg.Services = SFNodeNetwork
	msg.UserAgent = "app"

	raw, err := WriteMessage(msg, ProtocolVersion, MainNet)
	require.NoError(t, err)

	got, err := ReadMessage(raw, ProtocolVersion, MainNet)
	require.NoError(t, err)

	gotVer, ok := got.(*MsgVersion)
	require.True(t, ok)
	require.Equal(t, int32(ProtocolVersion), gotVer.ProtocolVersion)
	require.Equal(t, SFNodeNetwork, gotVer.Services)
	require.Equal(t, "app", gotVer.UserAgent)
	require.Equal(t, int32(0), gotVer.LastBlock)
	require.False(t, gotVer.DisableRelayTx)
	require.True(t, gotVer.HasRelayTxField)
}

func TestVersionMessageToleratesMissingRelayByte(t *testing.T) {
	recv := sampleNetAddress()
	from := sampleNetAddress()
	msg := NewMsgVersion(recv, from, 42, 100, true)
	msg.ProtocolVersion = int32(BIP0037Version - 1)

	raw, err := WriteMessage(msg, ProtocolVersion, MainNet)
	require.NoError(t, err)

	got, err := ReadMessage(raw, ProtocolVersion, MainNet)
	require.NoError(t, err)

	gotVer := got.(*MsgVersion)
	require.False(t, gotVer.HasRelayTxField)
	require.False(t, gotVer.DisableRelayTx)
}

func TestPingMessageEndToEnd(t *testing.T) {
	msg := &MsgPing{Nonce: 0x0123456789ABCDEF}
	raw, err := WriteMessage(msg, ProtocolVersion, MainNet)
	require.NoError(t, err)

	got, err := ReadMessage(raw, ProtocolVersion, MainNet)
	require.NoError(t, err)
	require.Equal(t, msg.Nonce, got.(*MsgPing).Nonce)
}

func TestMerkleBlockEndToEnd(t *testing.T) {
	blk := sampleBlock(t, 4)
	matchIdx := 2

	built, err := NewMsgMerkleBlock(blk, func(i int) bool { return i == matchIdx })
	require.NoError(t, err)

	raw, err := WriteMessage(built, ProtocolVersion, MainNet)
	require.NoError(t, err)

	got, err := ReadMessage(raw, ProtocolVersion, MainNet)
	require.NoError(t, err)

	gotMB := got.(*MsgMerkleBlock)
	require.Equal(t, blk.Header.MerkleRoot, gotMB.Header.MerkleRoot)
	require.Len(t, gotMB.MatchedHashes, 1)
	require.Equal(t, blk.Transactions[matchIdx].Hash(), gotMB.MatchedHashes[0])
}

func TestMerkleBlockRejectsTamperedRoot(t *testing.T) {
	blk := sampleBlock(t, 4)
	built, err := NewMsgMerkleBlock(blk, func(i int) bool { return i == 0 })
	require.NoError(t, err)

	raw, err := WriteMessage(built, ProtocolVersion, MainNet)
	require.NoError(t, err)

	parsed, err := ReadMessage(raw, ProtocolVersion, MainNet)
	require.NoError(t, err)
	mb := parsed.(*MsgMerkleBlock)
	mb.Header.MerkleRoot = chainhash.Hash{0x01}

	reEncoded, err := WriteMessage(mb, ProtocolVersion, MainNet)
	require.NoError(t, err)

	_, err = ReadMessage(reEncoded, ProtocolVersion, MainNet)
	require.Error(t, err)
}
