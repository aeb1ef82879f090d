package main

import (
	"github.com/btcsuite/btclog"

	"github.com/satoshinet/p2pcore/internal/rpclog"
	"github.com/satoshinet/p2pcore/peer"
)

var (
	logBackend *rpclog.Backend
	peerLog    = btclog.Disabled
	mainLog    = btclog.Disabled
)

// initLogging opens the shared rotating-file backend at logFile and
// routes every subsystem logger through it.
func initLogging(logFile string) error {
	b, err := rpclog.New(logFile)
	if err != nil {
		return err
	}
	logBackend = b

	peerLog = b.Logger("PEER")
	mainLog = b.Logger("MAIN")
	peer.UseLogger(peerLog)
	return nil
}

func setLogLevel(level string) {
	l := rpclog.ParseLevel(level)
	peerLog.SetLevel(l)
	mainLog.SetLevel(l)
}
