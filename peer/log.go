package peer

import "github.com/btcsuite/btclog"

// log is the package-wide logger. It is disabled by default until a
// caller supplies one with UseLogger, matching the rest of this
// module's packages that log at all.
var log btclog.Logger

// UseLogger sets the logger this package writes peer-level events to.
func UseLogger(logger btclog.Logger) {
	log = logger
}

func init() {
	DisableLog()
}

// DisableLog turns off this package's log output.
func DisableLog() {
	log = btclog.Disabled
}
