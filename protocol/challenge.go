package protocol

import (
	"fmt"

	"SIS-Sigma/modring"
	"SIS-Sigma/sampling"
)

// GenerateChallenge samples a uniform ternary challenge of the given
// length. In a deployment the verifier owns this call.
func GenerateChallenge(src *sampling.Source, length int) (modring.Vector, error) {
	return sampling.Ternary(src, length)
}

// Two-bit challenge digit codes: 00 -> 0, 01 -> 1, 11 -> -1. The code 10
// is reserved and rejected on decode.
const (
	digitZero     = 0b00
	digitOne      = 0b01
	digitMinusOne = 0b11
	digitReserved = 0b10
)

// EncodeChallenge packs a ternary vector into the canonical two-bit
// encoding, digit i occupying bits 2(i%4) and 2(i%4)+1 of byte i/4.
func EncodeChallenge(c modring.Vector) ([]byte, error) {
	out := make([]byte, (len(c)+3)/4)
	for i, ci := range c {
		var code byte
		switch {
		case ci.Sign() == 0:
			code = digitZero
		case ci.Cmp(bigOne) == 0:
			code = digitOne
		case ci.Cmp(bigMinusOne) == 0:
			code = digitMinusOne
		default:
			return nil, fmt.Errorf("%w: challenge entry %d is %s, not ternary", ErrInvalidParameter, i, ci)
		}
		out[i/4] |= code << uint((i%4)*2)
	}
	return out, nil
}

// DecodeChallenge unpacks length ternary digits from the canonical
// two-bit encoding.
func DecodeChallenge(data []byte, length int) (modring.Vector, error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: negative challenge length %d", ErrInvalidParameter, length)
	}
	if need := (length + 3) / 4; len(data) < need {
		return nil, fmt.Errorf("%w: challenge encoding has %d bytes, want %d", ErrDimensionMismatch, len(data), need)
	}
	c := make(modring.Vector, length)
	for i := 0; i < length; i++ {
		code := (data[i/4] >> uint((i%4)*2)) & 0b11
		switch code {
		case digitZero:
			c[i] = newInt(0)
		case digitOne:
			c[i] = newInt(1)
		case digitMinusOne:
			c[i] = newInt(-1)
		default: // digitReserved
			return nil, fmt.Errorf("%w: reserved challenge code at digit %d", ErrInvalidParameter, i)
		}
	}
	return c, nil
}
