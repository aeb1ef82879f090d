package peer

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/satoshinet/p2pcore/bloom"
	"github.com/satoshinet/p2pcore/chaincfg"
	"github.com/satoshinet/p2pcore/wire"
)

type recordingListener struct {
	received []wire.Message
}

func (l *recordingListener) OnMessage(p *Peer, msg wire.Message) {
	l.received = append(l.received, msg)
}

func newTestPeer(t *testing.T, listener MessageListener) *Peer {
	t.Helper()
	addr := PeerAddress{IP: net.ParseIP("127.0.0.1"), Port: 18333, Services: wire.SFNodeNetwork}
	return New(addr, &chaincfg.TestNetParams, true, listener)
}

func frame(t *testing.T, msg wire.Message, net wire.BitcoinNet) []byte {
	t.Helper()
	raw, err := wire.WriteMessage(msg, wire.ProtocolVersion, net)
	require.NoError(t, err)
	return raw
}

func versionMessage(t *testing.T, nonce uint64) *wire.MsgVersion {
	t.Helper()
	recv := *wire.NewNetAddressIPPort(net.ParseIP("127.0.0.1"), 18333, wire.SFNodeNetwork)
	from := *wire.NewNetAddressIPPort(net.ParseIP("127.0.0.2"), 18333, wire.SFNodeNetwork)
	msg := wire.NewMsgVersion(recv, from, nonce, 0, true)
	msg.Services = wire.SFNodeNetwork
	return msg
}

func TestHandshakeAdvancesToReady(t *testing.T) {
	l := &recordingListener{}
	p := newTestPeer(t, l)
	require.Equal(t, StateNew, p.State())

	raw := frame(t, versionMessage(t, 0xdeadbeef), chaincfg.TestNetParams.Net)
	reject, err := p.HandleInbound(raw)
	require.NoError(t, err)
	require.Nil(t, reject)
	require.Equal(t, StateVersionReceived, p.State())
	require.Equal(t, "/p2pcore:0.1.0/", p.UserAgent())

	raw = frame(t, wire.NewMsgVerAck(), chaincfg.TestNetParams.Net)
	reject, err = p.HandleInbound(raw)
	require.NoError(t, err)
	require.Nil(t, reject)
	require.Equal(t, StateReady, p.State())

	require.Len(t, l.received, 2)
}

func TestTwoSidedHandshakeReachesReady(t *testing.T) {
	initiatorAddr := PeerAddress{IP: net.ParseIP("127.0.0.1"), Port: 18333, Services: wire.SFNodeNetwork}
	responderAddr := PeerAddress{IP: net.ParseIP("127.0.0.2"), Port: 18333, Services: wire.SFNodeNetwork}
	params := &chaincfg.TestNetParams

	initiator := New(initiatorAddr, params, true, nil)
	responder := New(responderAddr, params, false, nil)

	initVersion, err := initiator.BuildVersion(responderAddr, "/initiator:0.1.0/", 0, wire.SFNodeNetwork, true)
	require.NoError(t, err)
	require.Equal(t, StateVersionSent, initiator.State())

	raw := frame(t, initVersion, params.Net)
	_, err = responder.HandleInbound(raw)
	require.NoError(t, err)
	require.Equal(t, StateVersionReceived, responder.State())

	respVersion, err := responder.BuildVersion(initiatorAddr, "/responder:0.1.0/", 0, wire.SFNodeNetwork, true)
	require.NoError(t, err)
	require.Equal(t, StateVersionReceived, responder.State())

	raw = frame(t, respVersion, params.Net)
	_, err = initiator.HandleInbound(raw)
	require.NoError(t, err)
	require.Equal(t, StateVersionReceived, initiator.State())

	ackRaw := frame(t, wire.NewMsgVerAck(), params.Net)
	_, err = initiator.HandleInbound(ackRaw)
	require.NoError(t, err)
	require.Equal(t, StateReady, initiator.State())

	_, err = responder.HandleInbound(ackRaw)
	require.NoError(t, err)
	require.Equal(t, StateReady, responder.State())
}

func TestVersionMissingNodeNetworkServiceDisconnects(t *testing.T) {
	p := newTestPeer(t, nil)
	msg := versionMessage(t, 1)
	msg.Services = 0
	raw := frame(t, msg, chaincfg.TestNetParams.Net)

	_, err := p.HandleInbound(raw)
	require.NoError(t, err)
	require.True(t, p.Disconnected())
}

func TestNonVersionBeforeHandshakeIsProtocolViolation(t *testing.T) {
	p := newTestPeer(t, nil)
	raw := frame(t, &wire.MsgPing{Nonce: 1}, chaincfg.TestNetParams.Net)

	reject, err := p.HandleInbound(raw)
	require.NoError(t, err)
	require.NotNil(t, reject)
	require.Equal(t, wire.CmdPing, reject.RejectedCommand)
	require.Equal(t, banScoreProtocolViolation, p.BanScore())
	require.Equal(t, StateNew, p.State())
}

func TestSelfConnectionIsDisconnected(t *testing.T) {
	p := newTestPeer(t, nil)
	raw := frame(t, versionMessage(t, processNonce), chaincfg.TestNetParams.Net)

	_, err := p.HandleInbound(raw)
	require.NoError(t, err)
	require.True(t, p.Disconnected())
}

func TestObsoleteProtocolVersionDisconnects(t *testing.T) {
	p := newTestPeer(t, nil)
	msg := versionMessage(t, 1)
	msg.ProtocolVersion = int32(wire.BIP0037Version) - 1
	raw := frame(t, msg, chaincfg.TestNetParams.Net)

	_, err := p.HandleInbound(raw)
	require.NoError(t, err)
	require.True(t, p.Disconnected())
}

func TestBrokenEnvelopeDisconnectsImmediately(t *testing.T) {
	p := newTestPeer(t, nil)
	raw := frame(t, versionMessage(t, 1), chaincfg.TestNetParams.Net)
	raw[0] ^= 0xff // corrupt magic

	_, err := p.HandleInbound(raw)
	require.Error(t, err)
	require.True(t, p.Disconnected())
}

func TestUnknownCommandIsDeliveredNotFatal(t *testing.T) {
	l := &recordingListener{}
	p := newTestPeer(t, l)
	raw := frame(t, versionMessage(t, 1), chaincfg.TestNetParams.Net)
	_, err := p.HandleInbound(raw)
	require.NoError(t, err)

	raw = frame(t, &wire.MsgUnknown{CommandName: "futurecmd", Payload: []byte{1, 2, 3}}, chaincfg.TestNetParams.Net)
	_, err = p.HandleInbound(raw)
	require.NoError(t, err)
	require.False(t, p.Disconnected())
	require.Len(t, l.received, 2)
}

func TestFilterLoadAddClearUpdatesSlot(t *testing.T) {
	p := newTestPeer(t, nil)
	raw := frame(t, versionMessage(t, 1), chaincfg.TestNetParams.Net)
	_, err := p.HandleInbound(raw)
	require.NoError(t, err)

	require.Nil(t, p.Filter())

	f := bloom.New(10, 0.001, 0, bloom.UpdateAll)
	raw = frame(t, &wire.MsgFilterLoad{Filter: f}, chaincfg.TestNetParams.Net)
	_, err = p.HandleInbound(raw)
	require.NoError(t, err)
	require.NotNil(t, p.Filter())

	raw = frame(t, &wire.MsgFilterAdd{Data: []byte("hello")}, chaincfg.TestNetParams.Net)
	_, err = p.HandleInbound(raw)
	require.NoError(t, err)
	require.True(t, p.Filter().Contains([]byte("hello")))

	clearRaw, err := wire.WriteMessage(wire.NewMsgFilterClear(), wire.ProtocolVersion, chaincfg.TestNetParams.Net)
	require.NoError(t, err)
	_, err = p.HandleInbound(clearRaw)
	require.NoError(t, err)
	require.Nil(t, p.Filter())
}
