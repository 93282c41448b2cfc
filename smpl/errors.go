package smpl

import "fmt"

// ErrorKind classifies a kernel error. The set is closed: §7 of the
// spec names exactly these five kinds.
type ErrorKind string

const (
	// BadArg: caller violated an input precondition (negative dt,
	// nil token, zero-server facility).
	BadArg ErrorKind = "BadArg"
	// NoSuchFacility: unknown facility id.
	NoSuchFacility ErrorKind = "NoSuchFacility"
	// NotHeld: release called for a (facility, token) not currently
	// holding a server.
	NotHeld ErrorKind = "NotHeld"
	// RequestOutsideDispatch: request would return Queued but there
	// is no in-flight event to re-schedule.
	RequestOutsideDispatch ErrorKind = "RequestOutsideDispatch"
	// NoSuchPending: invariant 5 breach — a queued waiter had no
	// corresponding pending retry. Fatal; indicates a kernel bug.
	NoSuchPending ErrorKind = "NoSuchPending"
)

// Error is the kernel's error type. All kernel-raised errors can be
// inspected with errors.Is against the ErrKind sentinels below, or
// matched directly with errors.As.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("smpl: %s: %s", e.Kind, e.Msg)
}

// Is reports whether target is a *Error with the same Kind, so that
// errors.Is(err, smpl.ErrNotHeld) works regardless of the message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Sentinels for errors.Is comparisons. Only Kind is compared; Msg is
// ignored by Error.Is.
var (
	ErrBadArg                 = &Error{Kind: BadArg}
	ErrNoSuchFacility         = &Error{Kind: NoSuchFacility}
	ErrNotHeld                = &Error{Kind: NotHeld}
	ErrRequestOutsideDispatch = &Error{Kind: RequestOutsideDispatch}
	ErrNoSuchPending          = &Error{Kind: NoSuchPending}
)
