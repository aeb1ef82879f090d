package script

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/satoshinet/p2pcore/chainhash"
)

// SigHasher computes the signature hash a CHECKSIG/CHECKMULTISIG
// opcode needs to verify against, for the input and hash type the
// engine is currently evaluating. Decoupling this from a concrete
// transaction type keeps the evaluator independent of the txmodel
// package; txmodel.CalcSignatureHash implements the actual procedure.
type SigHasher func(hashType SigHashType, scriptCode []byte) (chainhash.Hash, error)

// Engine is a minimal stack-based script evaluator, sufficient to check
// the standard P2PKH, bare-multisig, and OP_RETURN templates. For P2SH
// it checks only the script-hash commitment; the redeem script is not
// executed. The field names (scripts/scriptIdx) mirror the real btcsuite
// txscript.Engine's internal layout, which this library's teacher
// extends rather than redefines.
type Engine struct {
	scripts   [][]byte
	scriptIdx int
	stack     [][]byte
	altStack  [][]byte
	sigHasher SigHasher
}

// NewEngine constructs an Engine ready to execute sigScript followed by
// pkScript. hasher supplies the signature hash for CHECKSIG-family
// opcodes.
func NewEngine(sigScript, pkScript []byte, hasher SigHasher) *Engine {
	return &Engine{
		scripts:   [][]byte{sigScript, pkScript},
		sigHasher: hasher,
	}
}

// Execute runs every script in order, verifying the top stack element is
// truthy at the end. The stack is not checked between scripts. It
// returns nil on success, or an error identifying the failing opcode.
func (e *Engine) Execute() error {
	for e.scriptIdx = 0; e.scriptIdx < len(e.scripts); e.scriptIdx++ {
		if err := e.executeScript(e.scripts[e.scriptIdx]); err != nil {
			return err
		}
	}
	if len(e.stack) == 0 {
		return fmt.Errorf("script evaluated false: empty stack")
	}
	if !asBool(e.stack[len(e.stack)-1]) {
		return fmt.Errorf("script evaluated false")
	}
	return nil
}

func (e *Engine) executeScript(s []byte) error {
	pos := 0
	for pos < len(s) {
		op := s[pos]
		pos++

		switch {
		case op == OP_0:
			e.push(nil)
		case op >= OP_DATA_1 && op <= OP_DATA_75:
			if pos+int(op) > len(s) {
				return fmt.Errorf("data push past end of script")
			}
			e.push(s[pos : pos+int(op)])
			pos += int(op)
		case op == OP_PUSHDATA1:
			if pos+1 > len(s) {
				return fmt.Errorf("truncated OP_PUSHDATA1")
			}
			n := int(s[pos])
			pos++
			if pos+n > len(s) {
				return fmt.Errorf("OP_PUSHDATA1 past end of script")
			}
			e.push(s[pos : pos+n])
			pos += n
		case op == OP_PUSHDATA2:
			if pos+2 > len(s) {
				return fmt.Errorf("truncated OP_PUSHDATA2")
			}
			n := int(s[pos]) | int(s[pos+1])<<8
			pos += 2
			if pos+n > len(s) {
				return fmt.Errorf("OP_PUSHDATA2 past end of script")
			}
			e.push(s[pos : pos+n])
			pos += n
		case IsSmallInt(op):
			e.push([]byte{byte(AsSmallInt(op))})
		case op == OP_1NEGATE:
			e.push([]byte{0x81})
		case op == OP_DUP:
			if len(e.stack) == 0 {
				return fmt.Errorf("OP_DUP on empty stack")
			}
			e.push(e.top())
		case op == OP_HASH160:
			v, err := e.pop()
			if err != nil {
				return err
			}
			h := chainhash.Hash160(v)
			e.push(h[:])
		case op == OP_HASH256:
			v, err := e.pop()
			if err != nil {
				return err
			}
			h := chainhash.DoubleSum(v)
			e.push(h[:])
		case op == OP_EQUAL || op == OP_EQUALVERIFY:
			a, err := e.pop()
			if err != nil {
				return err
			}
			b, err := e.pop()
			if err != nil {
				return err
			}
			eq := bytes.Equal(a, b)
			if op == OP_EQUALVERIFY {
				if !eq {
					return fmt.Errorf("OP_EQUALVERIFY failed")
				}
				continue
			}
			e.pushBool(eq)
		case op == OP_VERIFY:
			v, err := e.pop()
			if err != nil {
				return err
			}
			if !asBool(v) {
				return fmt.Errorf("OP_VERIFY failed")
			}
		case op == OP_RETURN:
			return fmt.Errorf("OP_RETURN: script is provably unspendable")
		case op == OP_CHECKSIG || op == OP_CHECKSIGVERIFY:
			ok, err := e.checkSig()
			if err != nil {
				return err
			}
			if op == OP_CHECKSIGVERIFY {
				if !ok {
					return fmt.Errorf("OP_CHECKSIGVERIFY failed")
				}
				continue
			}
			e.pushBool(ok)
		case op == OP_CHECKMULTISIG || op == OP_CHECKMULTISIGVERIFY:
			ok, err := e.checkMultiSig()
			if err != nil {
				return err
			}
			if op == OP_CHECKMULTISIGVERIFY {
				if !ok {
					return fmt.Errorf("OP_CHECKMULTISIGVERIFY failed")
				}
				continue
			}
			e.pushBool(ok)
		case op == OP_NOP:
			// no-op
		default:
			return fmt.Errorf("unsupported opcode 0x%02x", op)
		}
	}
	return nil
}

func (e *Engine) push(v []byte) {
	e.stack = append(e.stack, v)
}

func (e *Engine) pushBool(b bool) {
	if b {
		e.push([]byte{1})
	} else {
		e.push(nil)
	}
}

func (e *Engine) top() []byte {
	return e.stack[len(e.stack)-1]
}

func (e *Engine) pop() ([]byte, error) {
	if len(e.stack) == 0 {
		return nil, fmt.Errorf("pop from empty stack")
	}
	v := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]
	return v, nil
}

func asBool(v []byte) bool {
	for i, b := range v {
		if b != 0 {
			// The negative-zero encoding (trailing 0x80 byte) still
			// counts as false.
			if i == len(v)-1 && b == 0x80 {
				return false
			}
			return true
		}
	}
	return false
}

// checkSig pops a pubkey and a DER+hashtype signature and verifies it
// against the signature hash the configured SigHasher computes.
func (e *Engine) checkSig() (bool, error) {
	pubKeyBytes, err := e.pop()
	if err != nil {
		return false, err
	}
	sigBytes, err := e.pop()
	if err != nil {
		return false, err
	}
	if len(sigBytes) == 0 {
		return false, nil
	}

	hashType := SigHashType(sigBytes[len(sigBytes)-1])
	derSig := sigBytes[:len(sigBytes)-1]

	pubKey, err := btcec.ParsePubKey(pubKeyBytes)
	if err != nil {
		return false, nil
	}
	sig, err := ecdsa.ParseDERSignature(derSig)
	if err != nil {
		return false, nil
	}

	digest, err := e.sigHasher(hashType, e.scripts[len(e.scripts)-1])
	if err != nil {
		return false, err
	}
	return sig.Verify(digest[:], pubKey), nil
}

// checkMultiSig implements bare OP_CHECKMULTISIG: pop N pubkeys, M
// signatures, and a required count, and verify the signatures appear
// against the pubkeys in order (not necessarily contiguous).
func (e *Engine) checkMultiSig() (bool, error) {
	nBytes, err := e.pop()
	if err != nil {
		return false, err
	}
	n := scriptNumToInt(nBytes)
	pubKeys := make([][]byte, n)
	for i := n - 1; i >= 0; i-- {
		pubKeys[i], err = e.pop()
		if err != nil {
			return false, err
		}
	}

	mBytes, err := e.pop()
	if err != nil {
		return false, err
	}
	m := scriptNumToInt(mBytes)
	sigs := make([][]byte, m)
	for i := m - 1; i >= 0; i-- {
		sigs[i], err = e.pop()
		if err != nil {
			return false, err
		}
	}

	// Historical off-by-one bug in CHECKMULTISIG pops one extra stack
	// item; consume it the same way.
	if _, err := e.pop(); err != nil {
		return false, err
	}

	pkIdx := 0
	for _, sig := range sigs {
		if len(sig) == 0 {
			continue
		}
		hashType := SigHashType(sig[len(sig)-1])
		derSig := sig[:len(sig)-1]
		parsedSig, err := ecdsa.ParseDERSignature(derSig)
		if err != nil {
			return false, nil
		}
		digest, err := e.sigHasher(hashType, e.scripts[len(e.scripts)-1])
		if err != nil {
			return false, err
		}

		matched := false
		for pkIdx < len(pubKeys) {
			pubKey, err := btcec.ParsePubKey(pubKeys[pkIdx])
			pkIdx++
			if err != nil {
				continue
			}
			if parsedSig.Verify(digest[:], pubKey) {
				matched = true
				break
			}
		}
		if !matched {
			return false, nil
		}
	}
	return true, nil
}

func scriptNumToInt(b []byte) int {
	if len(b) == 0 {
		return 0
	}
	v := 0
	for i, by := range b {
		if i == len(b)-1 {
			v |= int(by&0x7f) << (8 * i)
			if by&0x80 != 0 {
				v = -v
			}
		} else {
			v |= int(by) << (8 * i)
		}
	}
	return v
}

// Disassemble renders a script as a human-readable opcode stream, for
// debug logging and tests. It does not execute the script.
func Disassemble(s []byte) string {
	var out bytes.Buffer
	pos := 0
	for pos < len(s) {
		op := s[pos]
		pos++
		switch {
		case op >= OP_DATA_1 && op <= OP_DATA_75:
			end := pos + int(op)
			if end > len(s) {
				end = len(s)
			}
			fmt.Fprintf(&out, "%x ", s[pos:end])
			pos = end
		default:
			fmt.Fprintf(&out, "OP_%02x ", op)
		}
	}
	return out.String()
}
