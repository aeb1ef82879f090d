package wire

import "fmt"

// CommandSize is the fixed width of a message command name in the
// envelope: ASCII, zero-padded to this length.
const CommandSize = 12

// The closed set of twenty-one command names this package dispatches.
const (
	CmdVersion     = "version"
	CmdVerAck      = "verack"
	CmdAddr        = "addr"
	CmdInv         = "inv"
	CmdGetData     = "getdata"
	CmdNotFound    = "notfound"
	CmdGetBlocks   = "getblocks"
	CmdGetHeaders  = "getheaders"
	CmdHeaders     = "headers"
	CmdBlock       = "block"
	CmdTx          = "tx"
	CmdMerkleBlock = "merkleblock"
	CmdFilterLoad  = "filterload"
	CmdFilterAdd   = "filteradd"
	CmdFilterClear = "filterclear"
	CmdGetAddr     = "getaddr"
	CmdMemPool     = "mempool"
	CmdPing        = "ping"
	CmdPong        = "pong"
	CmdReject      = "reject"
	CmdAlert       = "alert"
)

// knownCommands is the closed set used to validate an envelope's command
// field; a name outside this set is reported rather than treated as
// fatal (the transport may choose to discard it).
var knownCommands = map[string]bool{
	CmdVersion:     true,
	CmdVerAck:      true,
	CmdAddr:        true,
	CmdInv:         true,
	CmdGetData:     true,
	CmdNotFound:    true,
	CmdGetBlocks:   true,
	CmdGetHeaders:  true,
	CmdHeaders:     true,
	CmdBlock:       true,
	CmdTx:          true,
	CmdMerkleBlock: true,
	CmdFilterLoad:  true,
	CmdFilterAdd:   true,
	CmdFilterClear: true,
	CmdGetAddr:     true,
	CmdMemPool:     true,
	CmdPing:        true,
	CmdPong:        true,
	CmdReject:      true,
	CmdAlert:       true,
}

// IsKnownCommand reports whether cmd is one of the twenty-one commands
// this package understands.
func IsKnownCommand(cmd string) bool {
	return knownCommands[cmd]
}

// makeEmptyMessage returns a newly allocated, zero-valued Message for
// the given command so the envelope dispatcher has something to decode
// into, or an error if the command isn't one this package can build.
func makeEmptyMessage(command string) (Message, error) {
	switch command {
	case CmdVersion:
		return &MsgVersion{}, nil
	case CmdVerAck:
		return newEmptyMessage(CmdVerAck), nil
	case CmdAddr:
		return &MsgAddr{}, nil
	case CmdInv:
		return &MsgInv{}, nil
	case CmdGetData:
		return &MsgGetData{}, nil
	case CmdNotFound:
		return &MsgNotFound{}, nil
	case CmdGetBlocks:
		return &MsgGetBlocks{}, nil
	case CmdGetHeaders:
		return &MsgGetHeaders{}, nil
	case CmdHeaders:
		return &MsgHeaders{}, nil
	case CmdBlock:
		return &MsgBlock{}, nil
	case CmdTx:
		return &MsgTx{}, nil
	case CmdMerkleBlock:
		return &MsgMerkleBlock{}, nil
	case CmdFilterLoad:
		return &MsgFilterLoad{}, nil
	case CmdFilterAdd:
		return &MsgFilterAdd{}, nil
	case CmdFilterClear:
		return newEmptyMessage(CmdFilterClear), nil
	case CmdGetAddr:
		return newEmptyMessage(CmdGetAddr), nil
	case CmdMemPool:
		return newEmptyMessage(CmdMemPool), nil
	case CmdPing:
		return &MsgPing{}, nil
	case CmdPong:
		return &MsgPong{}, nil
	case CmdReject:
		return &MsgReject{}, nil
	case CmdAlert:
		return &MsgAlert{}, nil
	default:
		return nil, fmt.Errorf("unhandled command %q", command)
	}
}
