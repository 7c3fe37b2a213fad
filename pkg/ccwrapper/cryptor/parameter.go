package cryptor

import "github.com/Craz1k0ek/CCWrapper/pkg/ccwrapper"

// Parameter identifies a per-context tuning value. Raw values match
// CCParameter.
type Parameter int32

const (
	// ParameterIV carries the initialization vector, or the nonce for the
	// authenticated modes. Set with AddParameter, read with GetParameter.
	ParameterIV Parameter = 0
	// ParameterAuthData carries additional authenticated data for GCM and
	// CCM. It may be supplied in multiple chunks, all before the first
	// Update call.
	ParameterAuthData Parameter = 1
	// ParameterMacSize declares the authentication tag length in bytes for
	// GCM and CCM. Set with AddParameterSize.
	ParameterMacSize Parameter = 2
	// ParameterDataSize declares the total payload length in bytes. CCM
	// requires it before any payload is processed.
	ParameterDataSize Parameter = 3
	// ParameterAuthTag carries the expected tag on decryption, and yields
	// the computed tag after Final.
	ParameterAuthTag Parameter = 4
)

// String returns a human-readable name for the parameter.
func (p Parameter) String() string {
	switch p {
	case ParameterIV:
		return "IV"
	case ParameterAuthData:
		return "AuthData"
	case ParameterMacSize:
		return "MacSize"
	case ParameterDataSize:
		return "DataSize"
	case ParameterAuthTag:
		return "AuthTag"
	default:
		return "Unknown"
	}
}

// AddParameter attaches byte-valued tuning data to the context. The accepted
// parameters are ParameterIV, ParameterAuthData and ParameterAuthTag; the
// size-valued parameters must go through AddParameterSize instead.
//
// IV and AuthData are only accepted before any payload has been processed.
// AuthTag carries the expected tag for an authenticated decryption and may be
// supplied any time before Final.
func (c *Cryptor) AddParameter(p Parameter, data []byte) error {
	const op = "cryptor.AddParameter"
	if c == nil || c.state == stateClosed {
		return ccwrapper.Wrap(op, ccwrapper.ErrParam)
	}
	if c.state == stateFinal {
		return ccwrapper.Wrap(op, ccwrapper.ErrCallSequence)
	}
	switch p {
	case ParameterIV:
		return ccwrapper.Wrap(op, c.setIV(data))
	case ParameterAuthData:
		if !c.mode.authenticated() {
			return ccwrapper.Wrap(op, ccwrapper.ErrUnimplemented)
		}
		if c.state != stateInitial || c.phase > phaseAuthData {
			return ccwrapper.Wrap(op, ccwrapper.ErrCallSequence)
		}
		c.phase = phaseAuthData
		c.aad = append(c.aad, data...)
		return nil
	case ParameterAuthTag:
		if !c.mode.authenticated() {
			return ccwrapper.Wrap(op, ccwrapper.ErrUnimplemented)
		}
		if c.op != Decrypt {
			return ccwrapper.Wrap(op, ccwrapper.ErrParam)
		}
		ccwrapper.ZeroizeBytes(c.expectedTag)
		c.expectedTag = append(c.expectedTag[:0], data...)
		return nil
	case ParameterMacSize, ParameterDataSize:
		return ccwrapper.Wrap(op, ccwrapper.ErrParam)
	default:
		return ccwrapper.Wrap(op, ccwrapper.ErrUnimplemented)
	}
}

// AddParameterSize attaches an integer-valued tuning value to the context.
// The accepted parameters are ParameterMacSize (GCM and CCM) and
// ParameterDataSize (CCM), both of which must be set before any payload has
// been processed.
func (c *Cryptor) AddParameterSize(p Parameter, size int) error {
	const op = "cryptor.AddParameterSize"
	if c == nil || c.state == stateClosed {
		return ccwrapper.Wrap(op, ccwrapper.ErrParam)
	}
	if c.state == stateFinal {
		return ccwrapper.Wrap(op, ccwrapper.ErrCallSequence)
	}
	switch p {
	case ParameterMacSize:
		if !c.mode.authenticated() {
			return ccwrapper.Wrap(op, ccwrapper.ErrUnimplemented)
		}
		if c.state != stateInitial {
			return ccwrapper.Wrap(op, ccwrapper.ErrCallSequence)
		}
		if !validMacSize(c.mode, size) {
			return ccwrapper.Wrap(op, ccwrapper.ErrParam)
		}
		c.macSize = size
		return nil
	case ParameterDataSize:
		if c.mode != ModeCCM {
			return ccwrapper.Wrap(op, ccwrapper.ErrUnimplemented)
		}
		if c.state != stateInitial {
			return ccwrapper.Wrap(op, ccwrapper.ErrCallSequence)
		}
		if size < 0 {
			return ccwrapper.Wrap(op, ccwrapper.ErrParam)
		}
		c.dataSize = size
		return nil
	case ParameterIV, ParameterAuthData, ParameterAuthTag:
		return ccwrapper.Wrap(op, ccwrapper.ErrParam)
	default:
		return ccwrapper.Wrap(op, ccwrapper.ErrUnimplemented)
	}
}

// GetParameter copies the current value of a parameter into out and returns
// the number of bytes written. If out is too small the required size is
// returned alongside ErrBufferTooSmall.
//
// ParameterIV yields the working IV or nonce. ParameterAuthTag yields the
// authentication tag and is only available after Final.
func (c *Cryptor) GetParameter(p Parameter, out []byte) (int, error) {
	const op = "cryptor.GetParameter"
	if c == nil || c.state == stateClosed {
		return 0, ccwrapper.Wrap(op, ccwrapper.ErrParam)
	}
	var src []byte
	switch p {
	case ParameterIV:
		if c.mode.authenticated() {
			src = c.nonce
		} else if c.mode == ModeECB || c.mode == ModeRC4 || c.mode == ModeXTS {
			return 0, ccwrapper.Wrap(op, ccwrapper.ErrUnimplemented)
		} else {
			src = c.iv
		}
	case ParameterAuthTag:
		if !c.mode.authenticated() {
			return 0, ccwrapper.Wrap(op, ccwrapper.ErrUnimplemented)
		}
		if c.state != stateFinal {
			return 0, ccwrapper.Wrap(op, ccwrapper.ErrCallSequence)
		}
		src = c.tag
	default:
		return 0, ccwrapper.Wrap(op, ccwrapper.ErrUnimplemented)
	}
	if len(out) < len(src) {
		return len(src), ccwrapper.Wrap(op, ccwrapper.ErrBufferTooSmall)
	}
	return copy(out, src), nil
}

// validMacSize reports whether n is an acceptable tag length for the mode.
// GCM accepts 12 through 16 bytes, CCM the even lengths 4 through 16.
func validMacSize(m Mode, n int) bool {
	switch m {
	case ModeGCM:
		return n >= 12 && n <= 16
	case ModeCCM:
		return n >= 4 && n <= 16 && n%2 == 0
	default:
		return false
	}
}
