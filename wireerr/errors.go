// Package wireerr defines the typed error taxonomy shared by the decode
// and validation paths across this module. Error kinds are a closed set
// modeled as a sum type (a Kind byte) rather than an open hierarchy of
// error types, so callers can switch on Kind instead of chaining type
// assertions.
package wireerr

import (
	"fmt"

	"github.com/satoshinet/p2pcore/chainhash"
)

// Kind identifies which of the seven taxonomy buckets an Error belongs
// to.
type Kind uint8

const (
	// KindEndOfData: a decoder ran out of bytes. Never recovered; the
	// current message is rejected outright.
	KindEndOfData Kind = iota

	// KindMalformed: a size exceeds a documented cap, a var-length
	// string is too long, or envelope framing (magic/checksum) fails.
	// Surfaced as reject/malformed; increases ban score.
	KindMalformed

	// KindInvalid: a semantic invariant is violated (e.g. block hash
	// above target, duplicate tx, zero inputs/outputs). Surfaced as
	// reject/invalid; increases ban score.
	KindInvalid

	// KindObsolete: peer's protocol version is below the configured
	// floor. Surfaced as reject/obsolete; peer is disconnected.
	KindObsolete

	// KindNonStandard: peer lacks a required service. Peer is
	// disconnected.
	KindNonStandard

	// KindCryptographicFailure: a signing/verification/encryption
	// operation failed. Surfaced to the caller that requested the
	// operation; never affects peer state unless the failing item was
	// peer-supplied.
	KindCryptographicFailure

	// KindConfiguration: configuration was invoked after first use, or
	// required network properties are missing. Fatal to the process.
	KindConfiguration
)

func (k Kind) String() string {
	switch k {
	case KindEndOfData:
		return "end-of-data"
	case KindMalformed:
		return "malformed"
	case KindInvalid:
		return "invalid"
	case KindObsolete:
		return "obsolete"
	case KindNonStandard:
		return "non-standard"
	case KindCryptographicFailure:
		return "cryptographic-failure"
	case KindConfiguration:
		return "configuration"
	default:
		return "unknown"
	}
}

// Error is the concrete error type produced by the validation paths in
// this module and by wire.ReadMessage, which wraps any envelope or
// payload decode failure in one. It carries enough information for a
// dispatcher to decide whether to emit a reject message, increase a
// peer's ban score, or disconnect, without re-parsing the description
// string.
type Error struct {
	Kind        Kind
	Description string
	Hash        *chainhash.Hash // optional: the tx/block hash this error concerns
}

func (e *Error) Error() string {
	if e.Hash != nil {
		return fmt.Sprintf("%s: %s (hash %s)", e.Kind, e.Description, e.Hash)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Description)
}

// New constructs an Error of the given kind.
func New(kind Kind, description string) *Error {
	return &Error{Kind: kind, Description: description}
}

// Newf constructs an Error of the given kind with a formatted
// description.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Description: fmt.Sprintf(format, args...)}
}

// WithHash returns a copy of e with Hash set, for attaching the tx or
// block hash a validation failure concerns.
func (e *Error) WithHash(h chainhash.Hash) *Error {
	out := *e
	out.Hash = &h
	return &out
}

// Is reports whether err is a wireerr.Error of the given kind, so
// callers can write `wireerr.Is(err, wireerr.KindMalformed)` instead of
// a type assertion followed by a field compare.
func Is(err error, kind Kind) bool {
	var e *Error
	if x, ok := err.(*Error); ok {
		e = x
	} else {
		return false
	}
	return e.Kind == kind
}
