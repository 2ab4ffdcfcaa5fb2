package effects

import "errors"

// Structural errors abort the whole analysis of an operation: no partial
// effect list is ever returned alongside one of these.
var (
	// ErrMissingSource is returned for an operation without a source account.
	ErrMissingSource = errors.New("operation has no source account")

	// ErrUnexpectedChange is returned when a ledger change violates the
	// change-record contract (unknown action for its kind, malformed
	// snapshot pairing, or an unmapped sponsorship action/kind pair).
	ErrUnexpectedChange = errors.New("unexpected ledger change")

	// ErrNonStandardEvent is returned when a token event's topics do not
	// match the declared shape of its vocabulary entry.
	ErrNonStandardEvent = errors.New("non-standard token event")

	// ErrUnexpectedEvent is returned when a diagnostic event arrives in a
	// context where it cannot occur, e.g. outside a successful contract
	// call or a return without a matching invocation.
	ErrUnexpectedEvent = errors.New("unexpected diagnostic event")

	// ErrUnexpectedHostFunction is returned for an unrecognized
	// host-function call shape.
	ErrUnexpectedHostFunction = errors.New("unexpected host function")

	// ErrNotImplemented marks paths that are deliberately unsupported
	// pending an upstream policy decision. Distinct from the structural
	// errors above: the input may be well-formed.
	ErrNotImplemented = errors.New("not implemented")
)

// Diagnostic is a non-fatal note produced during analysis, returned
// alongside the effect list instead of being logged.
type Diagnostic struct {
	Msg   string `json:"msg"`
	Event *Event `json:"event,omitempty"`
}
