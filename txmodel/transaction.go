package txmodel

import (
	"github.com/satoshinet/p2pcore/bcbuf"
	"github.com/satoshinet/p2pcore/chainhash"
	"github.com/satoshinet/p2pcore/wireerr"
)

// Transaction is a parsed or constructed Bitcoin transaction. Its
// serialized bytes, hash, normalized ID, and coinbase flag are derived
// once at construction and cached; none of them are recomputed if the
// exported fields are changed afterwards.
type Transaction struct {
	Version  int32
	Inputs   []TransactionInput
	Outputs  []TransactionOutput
	LockTime uint32

	serialized   []byte
	hash         chainhash.Hash
	normalizedID chainhash.Hash
	coinbase     bool
}

// NewTransaction validates and constructs a Transaction, computing and
// caching its serialized form, hash, normalized ID, and coinbase flag.
func NewTransaction(version int32, inputs []TransactionInput, outputs []TransactionOutput, lockTime uint32) (*Transaction, error) {
	if len(inputs) == 0 {
		return nil, wireerr.New(wireerr.KindInvalid, "transaction has no inputs")
	}
	if len(outputs) == 0 {
		return nil, wireerr.New(wireerr.KindInvalid, "transaction has no outputs")
	}

	tx := &Transaction{
		Version:  version,
		Inputs:   inputs,
		Outputs:  outputs,
		LockTime: lockTime,
	}
	tx.coinbase = len(inputs) == 1 && inputs[0].PreviousOut.IsCoinbase()
	tx.serialized = tx.serialize()
	tx.hash = chainhash.DoubleSum(tx.serialized).Reversed()
	tx.normalizedID = tx.computeNormalizedID()
	return tx, nil
}

// ParseTransaction decodes a Transaction from buf, applying the same
// invariants NewTransaction enforces.
func ParseTransaction(buf *bcbuf.Buffer) (*Transaction, error) {
	version, err := buf.GetInt32LE()
	if err != nil {
		return nil, err
	}

	inCount, err := buf.GetVarIntStrict()
	if err != nil {
		return nil, err
	}
	inputs := make([]TransactionInput, inCount)
	for i := range inputs {
		in, err := parseInput(buf, i)
		if err != nil {
			return nil, err
		}
		inputs[i] = in
	}

	outCount, err := buf.GetVarIntStrict()
	if err != nil {
		return nil, err
	}
	outputs := make([]TransactionOutput, outCount)
	for i := range outputs {
		out, err := parseOutput(buf, i)
		if err != nil {
			return nil, err
		}
		outputs[i] = out
	}

	lockTime, err := buf.GetUint32LE()
	if err != nil {
		return nil, err
	}

	return NewTransaction(version, inputs, outputs, lockTime)
}

func parseInput(buf *bcbuf.Buffer, idx int) (TransactionInput, error) {
	hashBytes, err := buf.GetBytes(chainhash.HashSize)
	if err != nil {
		return TransactionInput{}, err
	}
	wireHash, err := chainhash.NewHash(bcbuf.Reverse(hashBytes))
	if err != nil {
		return TransactionInput{}, err
	}
	index, err := buf.GetInt32LE()
	if err != nil {
		return TransactionInput{}, err
	}
	script, err := buf.GetVarBytes(0)
	if err != nil {
		return TransactionInput{}, err
	}
	seq, err := buf.GetUint32LE()
	if err != nil {
		return TransactionInput{}, err
	}
	return TransactionInput{
		Index:           idx,
		PreviousOut:     NewOutPoint(wireHash, index),
		SignatureScript: script,
		Sequence:        seq,
	}, nil
}

func parseOutput(buf *bcbuf.Buffer, idx int) (TransactionOutput, error) {
	value, err := buf.GetInt64LE()
	if err != nil {
		return TransactionOutput{}, err
	}
	script, err := buf.GetVarBytes(0)
	if err != nil {
		return TransactionOutput{}, err
	}
	return TransactionOutput{Index: idx, Value: value, PkScript: script}, nil
}

// Hash returns the transaction's id: double-SHA-256 of its serialized
// bytes, byte-reversed.
func (tx *Transaction) Hash() chainhash.Hash {
	return tx.hash
}

// NormalizedID returns the hash over outpoints and outputs only (tx
// inputs' scripts excluded), stable under input-script malleability.
func (tx *Transaction) NormalizedID() chainhash.Hash {
	return tx.normalizedID
}

// IsCoinbase reports whether the transaction is a coinbase: a single
// input whose outpoint is the coinbase sentinel.
func (tx *Transaction) IsCoinbase() bool {
	return tx.coinbase
}

// Bytes returns the transaction's cached canonical serialization.
func (tx *Transaction) Bytes() []byte {
	return tx.serialized
}

func (tx *Transaction) serialize() []byte {
	buf := bcbuf.NewWriteBuffer(256)
	buf.PutInt32LE(tx.Version)
	buf.PutVarInt(uint64(len(tx.Inputs)))
	for _, in := range tx.Inputs {
		writeInput(buf, in)
	}
	buf.PutVarInt(uint64(len(tx.Outputs)))
	for _, out := range tx.Outputs {
		writeOutput(buf, out)
	}
	buf.PutUint32LE(tx.LockTime)
	return buf.Bytes()
}

func writeInput(buf *bcbuf.Buffer, in TransactionInput) {
	buf.PutBytes(bcbuf.Reverse(in.PreviousOut.Hash[:]))
	buf.PutInt32LE(in.PreviousOut.Index)
	buf.PutVarBytes(in.SignatureScript)
	buf.PutUint32LE(in.Sequence)
}

func writeOutput(buf *bcbuf.Buffer, out TransactionOutput) {
	buf.PutInt64LE(out.Value)
	buf.PutVarBytes(out.PkScript)
}

// computeNormalizedID hashes the concatenated serialization of every
// outpoint and output, omitting outpoints entirely when the transaction
// is a coinbase (its single outpoint carries no economic identity).
func (tx *Transaction) computeNormalizedID() chainhash.Hash {
	buf := bcbuf.NewWriteBuffer(256)
	if !tx.coinbase {
		for _, in := range tx.Inputs {
			buf.PutBytes(bcbuf.Reverse(in.PreviousOut.Hash[:]))
			buf.PutInt32LE(in.PreviousOut.Index)
		}
	}
	for _, out := range tx.Outputs {
		writeOutput(buf, out)
	}
	return chainhash.DoubleSum(buf.Bytes())
}
