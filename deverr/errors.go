// Package deverr holds the error vocabulary shared by the device drivers.
package deverr

import "errors"

var (
	// ErrAlreadyExists reports that an entity already exists.
	ErrAlreadyExists = errors.New("already exists")
	// ErrAgain asks the caller to try again (non-blocking APIs).
	ErrAgain = errors.New("try again")
	// ErrBadState reports an operation issued before its prerequisite ran.
	ErrBadState = errors.New("bad internal state")
	// ErrInvalidParam reports an out-of-range or malformed argument.
	ErrInvalidParam = errors.New("invalid parameter")
	// ErrIo reports a register access or transfer that could not complete.
	ErrIo = errors.New("input/output error")
	// ErrNoMemory reports an allocation failure.
	ErrNoMemory = errors.New("not enough memory")
	// ErrResourceBusy reports a device or resource in use.
	ErrResourceBusy = errors.New("resource busy")
	// ErrUnsupported reports an unsupported or unimplemented operation.
	ErrUnsupported = errors.New("unsupported operation")
)

// OpError attaches the failing operation and a short detail to one of the
// sentinel errors above. errors.Is sees through it.
type OpError struct {
	Op     string
	Detail string
	Err    error
}

// New returns an *OpError for op wrapping err.
func New(op string, err error, detail string) *OpError {
	return &OpError{Op: op, Detail: detail, Err: err}
}

func (e *OpError) Error() string {
	msg := e.Op + ": " + e.Err.Error()
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *OpError) Unwrap() error {
	return e.Err
}
