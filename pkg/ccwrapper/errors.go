package ccwrapper

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per failure Status. Callers classify failures with
// errors.Is; ErrNotVerified is a normal outcome of authenticated decryption
// and signature verification, not a program bug.
var (
	// ErrParam indicates an illegal parameter value
	ErrParam = errors.New("ccwrapper: illegal parameter value")

	// ErrBufferTooSmall indicates an insufficient output buffer for the operation
	ErrBufferTooSmall = errors.New("ccwrapper: insufficient buffer provided for specified operation")

	// ErrMemory indicates a memory allocation failure
	ErrMemory = errors.New("ccwrapper: memory allocation failure")

	// ErrAlignment indicates input that is not aligned to the cipher block size
	ErrAlignment = errors.New("ccwrapper: input size was not aligned properly")

	// ErrDecode indicates input data that did not decode or decrypt properly
	ErrDecode = errors.New("ccwrapper: input data did not decode or decrypt properly")

	// ErrUnimplemented indicates a function unavailable for the current algorithm or mode
	ErrUnimplemented = errors.New("ccwrapper: function not implemented for the current algorithm")

	// ErrOverflow indicates a length computation that would overflow
	ErrOverflow = errors.New("ccwrapper: buffer length would overflow")

	// ErrRNG indicates a random number generator failure
	ErrRNG = errors.New("ccwrapper: random number generator failure")

	// ErrUnspecified indicates a failure with no more specific classification
	ErrUnspecified = errors.New("ccwrapper: unspecified failure")

	// ErrCallSequence indicates an operation invoked out of order on a context
	ErrCallSequence = errors.New("ccwrapper: call sequence error")

	// ErrKeySize indicates a key length invalid for the selected algorithm
	ErrKeySize = errors.New("ccwrapper: invalid key size")

	// ErrInvalidKey indicates a key that is malformed or unusable
	ErrInvalidKey = errors.New("ccwrapper: invalid key")

	// ErrNotVerified indicates an authentication tag or signature that did not verify
	ErrNotVerified = errors.New("ccwrapper: not verified")
)

var statusErrors = map[Status]error{
	ParamError:        ErrParam,
	BufferTooSmall:    ErrBufferTooSmall,
	MemoryFailure:     ErrMemory,
	AlignmentError:    ErrAlignment,
	DecodeError:       ErrDecode,
	Unimplemented:     ErrUnimplemented,
	Overflow:          ErrOverflow,
	RNGFailure:        ErrRNG,
	UnspecifiedError:  ErrUnspecified,
	CallSequenceError: ErrCallSequence,
	KeySizeError:      ErrKeySize,
	InvalidKey:        ErrInvalidKey,
	NotVerified:       ErrNotVerified,
}

// Err returns the sentinel error for s, nil for Success, or an
// UnknownStatusError carrying the raw code for unrecognized values.
func (s Status) Err() error {
	if s == Success {
		return nil
	}
	if err, ok := statusErrors[s]; ok {
		return err
	}
	return &UnknownStatusError{Raw: int32(s)}
}

// UnknownStatusError preserves a raw status code that is not part of the
// recognized taxonomy.
type UnknownStatusError struct {
	Raw int32
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("ccwrapper: unknown status (%d)", e.Raw)
}

// StatusOf extracts the Status from an error chain. A nil error is Success;
// an error that carries no taxonomy member maps to UnspecifiedError.
func StatusOf(err error) Status {
	if err == nil {
		return Success
	}
	var unknown *UnknownStatusError
	if errors.As(err, &unknown) {
		return Status(unknown.Raw)
	}
	for status, sentinel := range statusErrors {
		if errors.Is(err, sentinel) {
			return status
		}
	}
	return UnspecifiedError
}

// Error wraps an underlying error with the operation that produced it.
type Error struct {
	Op  string // Operation that failed, e.g. "cryptor.Update"
	Err error  // Underlying error
}

func (e *Error) Error() string {
	return fmt.Sprintf("ccwrapper.%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap attaches the failing operation to err. A nil err stays nil.
// This is exported for use by the primitive subpackages.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}
