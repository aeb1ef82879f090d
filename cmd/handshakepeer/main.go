// Command handshakepeer drives a single version/verack handshake by
// passing framed messages directly between two Peer instances, demonstrating how
// config, chaincfg, and peer wire together end to end.
package main

import (
	"fmt"
	"net"
	"os"

	"github.com/satoshinet/p2pcore/config"
	"github.com/satoshinet/p2pcore/peer"
	"github.com/satoshinet/p2pcore/wire"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "handshakepeer:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	if err := initLogging("logs/handshakepeer.log"); err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	setLogLevel("info")

	initiatorAddr := peer.PeerAddress{IP: net.ParseIP("127.0.0.1"), Port: 18555, Services: cfg.Services}
	responderAddr := peer.PeerAddress{IP: net.ParseIP("127.0.0.1"), Port: 18556, Services: cfg.Services}

	initiatorListener := &loggingListener{name: "initiator"}
	responderListener := &loggingListener{name: "responder"}

	initiator := peer.New(initiatorAddr, cfg.Params, true, initiatorListener)
	responder := peer.New(responderAddr, cfg.Params, false, responderListener)

	versionMsg, err := initiator.BuildVersion(responderAddr, cfg.UserAgent, 0, cfg.Services, true)
	if err != nil {
		return fmt.Errorf("building version message: %w", err)
	}

	raw, err := wire.WriteMessage(versionMsg, wire.ProtocolVersion, cfg.Params.Net)
	if err != nil {
		return fmt.Errorf("framing version message: %w", err)
	}
	if _, err := responder.HandleInbound(raw); err != nil {
		return fmt.Errorf("responder rejected version: %w", err)
	}

	ackMsg, err := wire.WriteMessage(wire.NewMsgVerAck(), wire.ProtocolVersion, cfg.Params.Net)
	if err != nil {
		return fmt.Errorf("framing verack: %w", err)
	}

	responderVersionMsg, err := responder.BuildVersion(initiatorAddr, cfg.UserAgent, 0, cfg.Services, true)
	if err != nil {
		return fmt.Errorf("building responder version message: %w", err)
	}
	responderRaw, err := wire.WriteMessage(responderVersionMsg, wire.ProtocolVersion, cfg.Params.Net)
	if err != nil {
		return fmt.Errorf("framing responder version message: %w", err)
	}
	if _, err := initiator.HandleInbound(responderRaw); err != nil {
		return fmt.Errorf("initiator rejected version: %w", err)
	}

	if _, err := initiator.HandleInbound(ackMsg); err != nil {
		return fmt.Errorf("initiator rejected verack: %w", err)
	}
	if _, err := responder.HandleInbound(ackMsg); err != nil {
		return fmt.Errorf("responder rejected verack: %w", err)
	}

	mainLog.Infof("handshake complete: initiator=%s responder=%s", initiator.State(), responder.State())
	return nil
}

type loggingListener struct {
	name string
}

func (l *loggingListener) OnMessage(p *peer.Peer, msg wire.Message) {
	peerLog.Infof("%s received %s, state now %s", l.name, msg.Command(), p.State())
}
