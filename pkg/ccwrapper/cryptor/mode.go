package cryptor

// Mode identifies a block cipher mode of operation. Raw values match CCMode.
type Mode int32

const (
	ModeECB  Mode = 1
	ModeCBC  Mode = 2
	ModeCFB  Mode = 3
	ModeCTR  Mode = 4
	ModeOFB  Mode = 7
	ModeXTS  Mode = 8
	ModeRC4  Mode = 9
	ModeCFB8 Mode = 10
	ModeGCM  Mode = 11
	ModeCCM  Mode = 12
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeECB:
		return "ECB"
	case ModeCBC:
		return "CBC"
	case ModeCFB:
		return "CFB"
	case ModeCTR:
		return "CTR"
	case ModeOFB:
		return "OFB"
	case ModeXTS:
		return "XTS"
	case ModeRC4:
		return "RC4"
	case ModeCFB8:
		return "CFB8"
	case ModeGCM:
		return "GCM"
	case ModeCCM:
		return "CCM"
	default:
		return "Unknown"
	}
}

func (m Mode) valid() bool {
	switch m {
	case ModeECB, ModeCBC, ModeCFB, ModeCTR, ModeOFB, ModeXTS, ModeRC4, ModeCFB8, ModeGCM, ModeCCM:
		return true
	default:
		return false
	}
}

// authenticated reports whether the mode carries an authentication tag.
func (m Mode) authenticated() bool {
	return m == ModeGCM || m == ModeCCM
}

// streaming reports whether the mode produces output byte for byte.
func (m Mode) streaming() bool {
	switch m {
	case ModeCFB, ModeCTR, ModeOFB, ModeRC4, ModeCFB8:
		return true
	default:
		return false
	}
}

// Padding selects the plaintext padding scheme. Raw values match CCPadding.
type Padding int32

const (
	PaddingNone  Padding = 0
	PaddingPKCS7 Padding = 1
)

// String returns a human-readable name for the padding scheme.
func (p Padding) String() string {
	switch p {
	case PaddingNone:
		return "none"
	case PaddingPKCS7:
		return "PKCS7"
	default:
		return "Unknown"
	}
}

func (p Padding) valid() bool {
	return p == PaddingNone || p == PaddingPKCS7
}
