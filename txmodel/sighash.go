package txmodel

import (
	"github.com/satoshinet/p2pcore/bcbuf"
	"github.com/satoshinet/p2pcore/chainhash"
	"github.com/satoshinet/p2pcore/script"
	"github.com/satoshinet/p2pcore/wireerr"
)

var placeholderOutput = TransactionOutput{Value: -1}

// CalcSignatureHash computes the digest ECDSA signs for input idx of tx,
// given the script of the output that input spends (scriptCode) and the
// requested signature-hash type. It builds a modified copy of tx's
// serialization per the six (base-type, ANYONE_CAN_PAY) combinations
// and double-hashes it; the original tx is left untouched.
func CalcSignatureHash(tx *Transaction, idx int, scriptCode []byte, hashType script.SigHashType) (chainhash.Hash, error) {
	if idx < 0 || idx >= len(tx.Inputs) {
		return chainhash.Hash{}, wireerr.Newf(wireerr.KindInvalid, "signature hash: input index %d out of range", idx)
	}
	base := hashType.Base()
	if base == script.SigHashSingle && idx >= len(tx.Outputs) {
		return chainhash.Hash{}, wireerr.Newf(wireerr.KindInvalid, "SIGHASH_SINGLE: input index %d has no matching output", idx)
	}

	buf := bcbuf.NewWriteBuffer(256)
	buf.PutInt32LE(tx.Version)

	writeSigHashInputs(buf, tx, idx, scriptCode, hashType, base)
	writeSigHashOutputs(buf, tx, idx, base)

	buf.PutUint32LE(tx.LockTime)
	buf.PutUint32LE(uint32(hashType))

	return chainhash.DoubleSum(buf.Bytes()), nil
}

func writeSigHashInputs(buf *bcbuf.Buffer, tx *Transaction, idx int, scriptCode []byte, hashType script.SigHashType, base script.SigHashType) {
	if hashType.HasAnyOneCanPay() {
		buf.PutVarInt(1)
		in := tx.Inputs[idx]
		writeInput(buf, TransactionInput{
			PreviousOut:     in.PreviousOut,
			SignatureScript: scriptCode,
			Sequence:        in.Sequence,
		})
		return
	}

	buf.PutVarInt(uint64(len(tx.Inputs)))
	for i, in := range tx.Inputs {
		if i == idx {
			writeInput(buf, TransactionInput{
				PreviousOut:     in.PreviousOut,
				SignatureScript: scriptCode,
				Sequence:        in.Sequence,
			})
			continue
		}

		seq := in.Sequence
		if base != script.SigHashAll {
			seq = 0
		}
		writeInput(buf, TransactionInput{
			PreviousOut:     in.PreviousOut,
			SignatureScript: nil,
			Sequence:        seq,
		})
	}
}

func writeSigHashOutputs(buf *bcbuf.Buffer, tx *Transaction, idx int, base script.SigHashType) {
	switch base {
	case script.SigHashNone:
		buf.PutVarInt(0)

	case script.SigHashSingle:
		buf.PutVarInt(uint64(idx + 1))
		for i := 0; i < idx; i++ {
			writeOutput(buf, placeholderOutput)
		}
		writeOutput(buf, tx.Outputs[idx])

	default: // SigHashAll and any unrecognized base default to ALL semantics.
		buf.PutVarInt(uint64(len(tx.Outputs)))
		for _, out := range tx.Outputs {
			writeOutput(buf, out)
		}
	}
}
