package ccwrapper

import "fmt"

// Status is a CommonCrypto style operation result code. The zero value is
// Success; every other recognized value identifies one failure class. Raw
// values match CCCryptorStatus so they can be exchanged with systems speaking
// the native encoding.
type Status int32

const (
	Success           Status = 0
	ParamError        Status = -4300
	BufferTooSmall    Status = -4301
	MemoryFailure     Status = -4302
	AlignmentError    Status = -4303
	DecodeError       Status = -4304
	Unimplemented     Status = -4305
	Overflow          Status = -4306
	RNGFailure        Status = -4307
	UnspecifiedError  Status = -4308
	CallSequenceError Status = -4309
	KeySizeError      Status = -4310
	InvalidKey        Status = -4311
	NotVerified       Status = -4312
)

// FromRaw converts a raw status code into a Status. Unrecognized codes are
// preserved as-is; Known reports whether the value is part of the taxonomy.
func FromRaw(raw int32) Status {
	return Status(raw)
}

// Raw returns the native status code.
func (s Status) Raw() int32 {
	return int32(s)
}

// Known reports whether s is one of the recognized taxonomy values.
func (s Status) Known() bool {
	return s == Success || (s <= ParamError && s >= NotVerified)
}

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case ParamError:
		return "parameter error"
	case BufferTooSmall:
		return "buffer too small"
	case MemoryFailure:
		return "memory failure"
	case AlignmentError:
		return "alignment error"
	case DecodeError:
		return "decode error"
	case Unimplemented:
		return "unimplemented"
	case Overflow:
		return "overflow"
	case RNGFailure:
		return "rng failure"
	case UnspecifiedError:
		return "unspecified error"
	case CallSequenceError:
		return "call sequence error"
	case KeySizeError:
		return "key size error"
	case InvalidKey:
		return "invalid key"
	case NotVerified:
		return "not verified"
	default:
		return fmt.Sprintf("unknown status (%d)", int32(s))
	}
}
