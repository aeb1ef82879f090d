package wire

import (
	"github.com/satoshinet/p2pcore/bcbuf"
	"github.com/satoshinet/p2pcore/bloom"
	"github.com/satoshinet/p2pcore/wireerr"
)

// MsgFilterLoad installs a Bloom filter on the connection, after which
// matching inv/merkleblock traffic is restricted to what the filter
// matches.
type MsgFilterLoad struct {
	Filter *bloom.Filter
}

func (m *MsgFilterLoad) Command() string { return CmdFilterLoad }

func (m *MsgFilterLoad) Encode(buf *bcbuf.Buffer, pver uint32) error {
	buf.PutVarBytes(m.Filter.Data())
	buf.PutUint32LE(m.Filter.HashFuncs())
	buf.PutUint32LE(m.Filter.Tweak())
	buf.PutUint8(uint8(m.Filter.UpdateFlag()))
	return nil
}

func (m *MsgFilterLoad) Decode(buf *bcbuf.Buffer, pver uint32) error {
	data, err := buf.GetVarBytes(bloom.MaxFilterBytes)
	if err != nil {
		return err
	}
	hashFuncs, err := buf.GetUint32LE()
	if err != nil {
		return err
	}
	tweak, err := buf.GetUint32LE()
	if err != nil {
		return err
	}
	update, err := buf.GetUint8()
	if err != nil {
		return err
	}

	filter, err := bloom.LoadFromWire(data, hashFuncs, tweak, bloom.UpdateFlag(update))
	if err != nil {
		return err
	}
	m.Filter = filter
	return nil
}

// MsgFilterAdd adds a single element to the connection's installed
// filter without replacing it.
type MsgFilterAdd struct {
	Data []byte
}

func (m *MsgFilterAdd) Command() string { return CmdFilterAdd }

func (m *MsgFilterAdd) Encode(buf *bcbuf.Buffer, pver uint32) error {
	if len(m.Data) > bloom.MaxFilterAddDataSize {
		return errFilterAddTooLarge(len(m.Data))
	}
	buf.PutVarBytes(m.Data)
	return nil
}

func (m *MsgFilterAdd) Decode(buf *bcbuf.Buffer, pver uint32) error {
	data, err := buf.GetVarBytes(bloom.MaxFilterAddDataSize)
	if err != nil {
		return err
	}
	m.Data = data
	return nil
}

func errFilterAddTooLarge(n int) error {
	return wireerr.Newf(wireerr.KindMalformed, "filteradd element is %d bytes, max %d", n, bloom.MaxFilterAddDataSize)
}
