package script

// SigHashType is the one-byte signature-hash type appended to a DER
// signature in a scriptSig.
type SigHashType uint32

const (
	// SigHashAll commits to every input and every output.
	SigHashAll SigHashType = 1
	// SigHashNone commits to every input and no outputs.
	SigHashNone SigHashType = 2
	// SigHashSingle commits to every input and the single output at
	// the same index as the signed input.
	SigHashSingle SigHashType = 3
	// SigHashAnyOneCanPay is a modifier: when set, only the signed
	// input itself is committed to, not the others.
	SigHashAnyOneCanPay SigHashType = 0x80

	sigHashMask = 0x1f
)

// Base returns the base mode (ALL/NONE/SINGLE) with the
// ANYONE_CAN_PAY modifier bit stripped off.
func (t SigHashType) Base() SigHashType {
	return t & sigHashMask
}

// HasAnyOneCanPay reports whether the ANYONE_CAN_PAY modifier is set.
func (t SigHashType) HasAnyOneCanPay() bool {
	return t&SigHashAnyOneCanPay != 0
}

func (t SigHashType) String() string {
	s := ""
	switch t.Base() {
	case SigHashAll:
		s = "ALL"
	case SigHashNone:
		s = "NONE"
	case SigHashSingle:
		s = "SINGLE"
	default:
		s = "UNKNOWN"
	}
	if t.HasAnyOneCanPay() {
		s += "|ANYONECANPAY"
	}
	return s
}
