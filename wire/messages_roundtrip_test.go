package wire

import (
	"testing"
	"time"

	"github.com/satoshinet/p2pcore/bloom"
	"github.com/satoshinet/p2pcore/chainhash"
	"github.com/satoshinet/p2pcore/txmodel"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, msg Message) Message {
	t.Helper()
	raw, err := WriteMessage(msg, ProtocolVersion, MainNet)
	require.NoError(t, err)
	got, err := ReadMessage(raw, ProtocolVersion, MainNet)
	require.NoError(t, err)
	return got
}

func TestAddrRoundTrip(t *testing.T) {
	now := time.Now()
	na := sampleNetAddress()
	na.Timestamp = uint32(now.Add(-time.Minute).Unix())
	stale := sampleNetAddress()
	stale.Timestamp = uint32(now.Add(-time.Hour).Unix())

	msg := NewMsgAddrFromCandidates(
		[]*NetAddress{&na, &stale},
		func(*NetAddress) bool { return false },
		now,
	)
	got := roundTrip(t, msg).(*MsgAddr)
	require.Len(t, got.AddrList, 1)
	require.Equal(t, na.Port, got.AddrList[0].Port)
}

func TestAddrRejectsOversizedList(t *testing.T) {
	list := make([]*NetAddress, maxAddrPerMsg+1)
	for i := range list {
		na := sampleNetAddress()
		list[i] = &na
	}
	msg := &MsgAddr{AddrList: list}
	_, err := WriteMessage(msg, ProtocolVersion, MainNet)
	require.Error(t, err)
}

func TestInvGetDataNotFoundRoundTrip(t *testing.T) {
	items := []InvVect{
		{Type: InvTx, Hash: chainhash.Hash{0x01}},
		{Type: InvBlock, Hash: chainhash.Hash{0x02}},
	}

	gotInv := roundTrip(t, &MsgInv{InvList: items}).(*MsgInv)
	require.Equal(t, items, gotInv.InvList)

	gotGetData := roundTrip(t, &MsgGetData{InvList: items}).(*MsgGetData)
	require.Equal(t, items, gotGetData.InvList)

	gotNotFound := roundTrip(t, &MsgNotFound{InvList: items}).(*MsgNotFound)
	require.Equal(t, items, gotNotFound.InvList)
}

func TestGetBlocksRoundTrip(t *testing.T) {
	msg := &MsgGetBlocks{
		ProtocolVersion: ProtocolVersion,
		Locator:         []chainhash.Hash{{0x01}, {0x02}},
		StopHash:        chainhash.Hash{0x03},
	}
	got := roundTrip(t, msg).(*MsgGetBlocks)
	require.Equal(t, msg.Locator, got.Locator)
	require.Equal(t, msg.StopHash, got.StopHash)
}

func TestGetHeadersRoundTrip(t *testing.T) {
	msg := &MsgGetHeaders{
		ProtocolVersion: ProtocolVersion,
		Locator:         []chainhash.Hash{{0x0a}},
		StopHash:        chainhash.Hash{},
	}
	got := roundTrip(t, msg).(*MsgGetHeaders)
	require.Equal(t, msg.Locator, got.Locator)
}

func TestHeadersRoundTrip(t *testing.T) {
	blk := sampleBlock(t, 1)
	msg := &MsgHeaders{Headers: []*txmodel.BlockHeader{blk.Header}}
	got := roundTrip(t, msg).(*MsgHeaders)
	require.Len(t, got.Headers, 1)
	require.Equal(t, blk.Header.MerkleRoot, got.Headers[0].MerkleRoot)
}

func TestTxRoundTrip(t *testing.T) {
	tx := sampleTx(t)
	got := roundTrip(t, &MsgTx{Tx: tx}).(*MsgTx)
	require.Equal(t, tx.Hash(), got.Tx.Hash())
}

func TestBlockRoundTrip(t *testing.T) {
	blk := sampleBlock(t, 3)
	got := roundTrip(t, &MsgBlock{Block: blk}).(*MsgBlock)
	require.Equal(t, blk.Header.MerkleRoot, got.Block.Header.MerkleRoot)
	require.Len(t, got.Block.Transactions, 3)
}

func TestRejectRoundTrip(t *testing.T) {
	msg := &MsgReject{
		RejectedCommand: CmdTx,
		Code:            RejectDuplicate,
		Reason:          "already in mempool",
		Hash:            chainhash.Hash{0x07},
	}
	got := roundTrip(t, msg).(*MsgReject)
	require.Equal(t, msg.RejectedCommand, got.RejectedCommand)
	require.Equal(t, msg.Code, got.Code)
	require.Equal(t, msg.Reason, got.Reason)
	require.Equal(t, msg.Hash, got.Hash)
}

func TestRejectWithoutHashRoundTrip(t *testing.T) {
	msg := &MsgReject{
		RejectedCommand: CmdVersion,
		Code:            RejectObsolete,
		Reason:          "version too old",
	}
	got := roundTrip(t, msg).(*MsgReject)
	require.Equal(t, chainhash.Hash{}, got.Hash)
}

func TestAlertRoundTrip(t *testing.T) {
	msg := &MsgAlert{
		Payload: alertPayload{
			Version:    1,
			RelayUntil: 1700000100,
			Expiration: 1700003600,
			ID:         1,
			Cancel:     0,
			CancelSet:  []int32{2, 3},
			MinVer:     int32(BIP0037Version),
			MaxVer:     int32(ProtocolVersion),
			SubVerSet:  []string{"/app:0.1/"},
			Priority:   100,
			Comment:    "",
			StatusBar:  "urgent: upgrade now",
			Reserved:   "",
		},
		Signature: []byte{0xde, 0xad, 0xbe, 0xef},
	}
	got := roundTrip(t, msg).(*MsgAlert)
	require.Equal(t, msg.Payload.StatusBar, got.Payload.StatusBar)
	require.Equal(t, msg.Payload.CancelSet, got.Payload.CancelSet)
	require.Equal(t, msg.Signature, got.Signature)
}

func TestFilterLoadFilterAddRoundTrip(t *testing.T) {
	filter := bloom.New(10, 0.001, 5, bloom.UpdateAll)
	filter.Add([]byte("hello"))

	gotLoad := roundTrip(t, &MsgFilterLoad{Filter: filter}).(*MsgFilterLoad)
	require.True(t, gotLoad.Filter.Contains([]byte("hello")))
	require.Equal(t, filter.HashFuncs(), gotLoad.Filter.HashFuncs())

	gotAdd := roundTrip(t, &MsgFilterAdd{Data: []byte("world")}).(*MsgFilterAdd)
	require.Equal(t, []byte("world"), gotAdd.Data)
}

func TestFilterAddRejectsOversizedElement(t *testing.T) {
	msg := &MsgFilterAdd{Data: make([]byte, bloom.MaxFilterAddDataSize+1)}
	_, err := WriteMessage(msg, ProtocolVersion, MainNet)
	require.Error(t, err)
}

func TestEmptyMessagesRoundTrip(t *testing.T) {
	for _, cmd := range []string{CmdVerAck, CmdGetAddr, CmdMemPool, CmdFilterClear} {
		got := roundTrip(t, newEmptyMessage(cmd))
		require.Equal(t, cmd, got.Command())
	}
}
