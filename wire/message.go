package wire

import (
	"github.com/satoshinet/p2pcore/bcbuf"
	"github.com/satoshinet/p2pcore/chainhash"
	"github.com/satoshinet/p2pcore/wireerr"
)

// MaxMessagePayload is the largest payload, including its own header,
// this package will read or write for any command.
const MaxMessagePayload = 2 * 1024 * 1024 // 2 MiB

// MaxBlockPayload is the largest payload accepted for a block message.
const MaxBlockPayload = 1 * 1024 * 1024 // 1 MiB

// zeroChecksum is the envelope checksum of a zero-length payload,
// computed rather than hard-coded so it stays correct if the checksum
// algorithm ever changes.
var zeroChecksum = func() [4]byte {
	var out [4]byte
	sum := chainhash.DoubleSum(nil)
	copy(out[:], sum[:4])
	return out
}()

// Message is implemented by every concrete payload type. Encode/Decode
// operate against the shared bcbuf.Buffer cursor rather than an
// io.Reader/io.Writer pair, matching the rest of this module's
// serialization primitives.
type Message interface {
	Command() string
	Encode(buf *bcbuf.Buffer, pver uint32) error
	Decode(buf *bcbuf.Buffer, pver uint32) error
}

// emptyMessage implements the four commands with no payload at all:
// verack, getaddr, mempool, and filterclear. They differ only in the
// command name they report.
type emptyMessage struct {
	command string
}

func newEmptyMessage(command string) *emptyMessage {
	return &emptyMessage{command: command}
}

func (m *emptyMessage) Command() string { return m.command }

func (m *emptyMessage) Encode(buf *bcbuf.Buffer, pver uint32) error { return nil }

func (m *emptyMessage) Decode(buf *bcbuf.Buffer, pver uint32) error { return nil }

// NewMsgVerAck, NewMsgGetAddr, NewMsgMemPool, and NewMsgFilterClear
// build the four payload-less messages for a caller outside this
// package; makeEmptyMessage builds the same values when one arrives
// over the wire.
func NewMsgVerAck() Message      { return newEmptyMessage(CmdVerAck) }
func NewMsgGetAddr() Message     { return newEmptyMessage(CmdGetAddr) }
func NewMsgMemPool() Message     { return newEmptyMessage(CmdMemPool) }
func NewMsgFilterClear() Message { return newEmptyMessage(CmdFilterClear) }

// messageHeader is the 24-byte envelope that precedes every payload.
type messageHeader struct {
	magic    BitcoinNet
	command  string
	length   uint32
	checksum [4]byte
}

const messageHeaderSize = 4 + CommandSize + 4 + 4

func writeCommand(buf *bcbuf.Buffer, command string) error {
	var raw [CommandSize]byte
	if len(command) > CommandSize {
		return wireerr.Newf(wireerr.KindMalformed, "command name %q longer than %d bytes", command, CommandSize)
	}
	copy(raw[:], command)
	buf.PutBytes(raw[:])
	return nil
}

func readCommand(buf *bcbuf.Buffer) (string, error) {
	raw, err := buf.GetBytes(CommandSize)
	if err != nil {
		return "", wireerr.Newf(wireerr.KindMalformed, "reading command name: %v", err)
	}
	n := 0
	for n < len(raw) && raw[n] != 0 {
		n++
	}
	return string(raw[:n]), nil
}

// WriteMessage encodes msg into a fully framed envelope: magic, command,
// length, checksum, then payload.
func WriteMessage(msg Message, pver uint32, net BitcoinNet) ([]byte, error) {
	payload := bcbuf.NewWriteBuffer(256)
	if err := msg.Encode(payload, pver); err != nil {
		return nil, wireerr.Newf(wireerr.KindMalformed, "encoding %s payload: %v", msg.Command(), err)
	}
	payloadBytes := payload.Bytes()

	if len(payloadBytes)+messageHeaderSize > MaxMessagePayload {
		return nil, wireerr.Newf(wireerr.KindMalformed, "%s payload exceeds max message size of %d bytes", msg.Command(), MaxMessagePayload)
	}
	if msg.Command() == CmdBlock && len(payloadBytes) > MaxBlockPayload {
		return nil, wireerr.Newf(wireerr.KindMalformed, "block payload of %d bytes exceeds max of %d", len(payloadBytes), MaxBlockPayload)
	}

	out := bcbuf.NewWriteBuffer(messageHeaderSize + len(payloadBytes))
	out.PutUint32LE(uint32(net))
	if err := writeCommand(out, msg.Command()); err != nil {
		return nil, err
	}
	out.PutUint32LE(uint32(len(payloadBytes)))

	var checksum [4]byte
	if len(payloadBytes) == 0 {
		checksum = zeroChecksum
	} else {
		sum := chainhash.DoubleSum(payloadBytes)
		copy(checksum[:], sum[:4])
	}
	out.PutBytes(checksum[:])
	out.PutBytes(payloadBytes)
	return out.Bytes(), nil
}

// ReadMessage parses a fully framed envelope from raw, validating magic,
// length, checksum, and dispatching the payload to the command's
// decoder. It fails with a Malformed wireerr for any envelope defect and
// reports, but does not fail on, an unrecognized command name.
func ReadMessage(raw []byte, pver uint32, net BitcoinNet) (Message, error) {
	buf := bcbuf.NewBuffer(raw)

	if buf.Remaining() < messageHeaderSize {
		return nil, wireerr.Newf(wireerr.KindMalformed, "message header needs %d bytes, have %d", messageHeaderSize, buf.Remaining())
	}

	magic, err := buf.GetUint32LE()
	if err != nil {
		return nil, wireerr.Newf(wireerr.KindMalformed, "reading magic: %v", err)
	}
	if BitcoinNet(magic) != net {
		return nil, wireerr.Newf(wireerr.KindMalformed, "message magic %08x does not match configured network %08x", magic, uint32(net))
	}

	command, err := readCommand(buf)
	if err != nil {
		return nil, err
	}

	length, err := buf.GetUint32LE()
	if err != nil {
		return nil, wireerr.Newf(wireerr.KindMalformed, "reading payload length: %v", err)
	}
	if int(length)+messageHeaderSize > MaxMessagePayload {
		return nil, wireerr.Newf(wireerr.KindMalformed, "%s declares payload of %d bytes, exceeds max message size", command, length)
	}
	if command == CmdBlock && length > MaxBlockPayload {
		return nil, wireerr.Newf(wireerr.KindMalformed, "block payload of %d bytes exceeds max of %d", length, MaxBlockPayload)
	}

	wantChecksum, err := buf.GetBytes(4)
	if err != nil {
		return nil, wireerr.Newf(wireerr.KindMalformed, "reading checksum: %v", err)
	}

	payload, err := buf.GetBytes(int(length))
	if err != nil {
		return nil, wireerr.Newf(wireerr.KindMalformed, "reading payload: %v", err)
	}

	var gotChecksum [4]byte
	if len(payload) == 0 {
		gotChecksum = zeroChecksum
	} else {
		sum := chainhash.DoubleSum(payload)
		copy(gotChecksum[:], sum[:4])
	}
	for i := range gotChecksum {
		if gotChecksum[i] != wantChecksum[i] {
			return nil, wireerr.Newf(wireerr.KindMalformed, "checksum mismatch for %s message", command)
		}
	}

	if !IsKnownCommand(command) {
		// An unrecognized command is reported to the caller as a typed
		// value rather than a parse failure: the envelope itself is
		// well-formed, and it's the transport's call whether to log,
		// discard, or disconnect over it.
		return &MsgUnknown{CommandName: command, Payload: payload}, nil
	}

	msg, err := makeEmptyMessage(command)
	if err != nil {
		return nil, wireerr.Newf(wireerr.KindMalformed, "%v", err)
	}
	payloadBuf := bcbuf.NewBuffer(payload)
	if err := msg.Decode(payloadBuf, pver); err != nil {
		return nil, wireerr.Newf(wireerr.KindMalformed, "decoding %s payload: %v", command, err)
	}
	return msg, nil
}
